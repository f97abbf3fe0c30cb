package pharmacy

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/internal/domain/prescription"
	"github.com/hims/hims/pkg/errs"
)

type mockRepo struct {
	items        map[uuid.UUID]*Inventory
	fulfillments []*Fulfillment
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Inventory)}
}

func (m *mockRepo) CreateItem(_ context.Context, item *Inventory) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	m.items[item.ID] = item
	return nil
}

func (m *mockRepo) GetItem(_ context.Context, id uuid.UUID) (*Inventory, error) {
	item, ok := m.items[id]
	if !ok || item.DeletedAt != nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (m *mockRepo) UpdateItem(_ context.Context, item *Inventory) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockRepo) SoftDeleteItem(_ context.Context, id uuid.UUID) error {
	if item, ok := m.items[id]; ok {
		now := time.Now()
		item.DeletedAt = &now
	}
	return nil
}

func (m *mockRepo) List(_ context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Inventory, int, error) {
	var result []*Inventory
	for _, item := range m.items {
		if item.HospitalID == hospitalID && item.DeletedAt == nil {
			result = append(result, item)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) LowStock(_ context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Inventory, int, error) {
	var result []*Inventory
	for _, item := range m.items {
		if item.HospitalID == hospitalID && item.DeletedAt == nil && item.StockQuantity < item.ReorderThreshold {
			result = append(result, item)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, hospitalID uuid.UUID, query string, limit, offset int) ([]*Inventory, int, error) {
	q := strings.ToLower(query)
	var result []*Inventory
	for _, item := range m.items {
		if item.HospitalID != hospitalID || item.DeletedAt != nil {
			continue
		}
		generic := ""
		if item.GenericName != nil {
			generic = *item.GenericName
		}
		if strings.Contains(strings.ToLower(item.MedicationName), q) ||
			strings.Contains(strings.ToLower(generic), q) {
			result = append(result, item)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) (bool, error) {
	item, ok := m.items[id]
	if !ok || item.DeletedAt != nil || item.StockQuantity < quantity {
		return false, nil
	}
	item.StockQuantity -= quantity
	return true, nil
}

func (m *mockRepo) RestockItem(_ context.Context, id uuid.UUID, quantity int) error {
	item, ok := m.items[id]
	if !ok || item.DeletedAt != nil {
		return ErrNotFound
	}
	item.StockQuantity += quantity
	return nil
}

func (m *mockRepo) CreateFulfillment(_ context.Context, f *Fulfillment) error {
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	m.fulfillments = append(m.fulfillments, f)
	return nil
}

func (m *mockRepo) ListFulfillments(_ context.Context, prescriptionID uuid.UUID) ([]*Fulfillment, error) {
	var result []*Fulfillment
	for _, f := range m.fulfillments {
		if f.PrescriptionID == prescriptionID {
			result = append(result, f)
		}
	}
	return result, nil
}

type mockPrescriptions struct {
	rows      map[uuid.UUID]*prescription.Prescription
	fulfilled map[uuid.UUID]int
}

func newMockPrescriptions() *mockPrescriptions {
	return &mockPrescriptions{
		rows:      make(map[uuid.UUID]*prescription.Prescription),
		fulfilled: make(map[uuid.UUID]int),
	}
}

func (m *mockPrescriptions) GetByID(_ context.Context, id uuid.UUID) (*prescription.Prescription, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, prescription.ErrNotFound
	}
	return p, nil
}

func (m *mockPrescriptions) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	if p, ok := m.rows[id]; ok {
		p.Status = status
	}
	return nil
}

func (m *mockPrescriptions) SumFulfilled(_ context.Context, id uuid.UUID) (int, error) {
	return m.fulfilled[id], nil
}

func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *mockRepo, *mockPrescriptions) {
	repo := newMockRepo()
	prs := newMockPrescriptions()
	return NewService(repo, prs, passthroughTx), repo, prs
}

func seedItem(repo *mockRepo, hospitalID uuid.UUID, stock, threshold int) *Inventory {
	item := &Inventory{
		HospitalID:       hospitalID,
		MedicationName:   "Amoxicillin",
		StockQuantity:    stock,
		ReorderThreshold: threshold,
	}
	_ = repo.CreateItem(context.Background(), item)
	return item
}

func seedPrescription(prs *mockPrescriptions, quantity int) *prescription.Prescription {
	p := &prescription.Prescription{
		ID:                 uuid.New(),
		VisitID:            uuid.New(),
		MedicationName:     "Amoxicillin",
		QuantityPrescribed: quantity,
		Status:             prescription.StatusPending,
	}
	prs.rows[p.ID] = p
	return p
}

func TestAddItem_NameRequired(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddItem(context.Background(), uuid.New(), nil, AddInput{StockQuantity: 5})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddItem_NegativeStockRejected(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddItem(context.Background(), uuid.New(), nil, AddInput{
		MedicationName: "Ibuprofen",
		StockQuantity:  -1,
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLowStock_StrictlyBelowThreshold(t *testing.T) {
	svc, repo, _ := newTestService()
	hospitalID := uuid.New()

	low := seedItem(repo, hospitalID, 10, 20)
	seedItem(repo, hospitalID, 20, 20)
	seedItem(repo, hospitalID, 50, 20)

	items, total, err := svc.LowStock(context.Background(), hospitalID, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected exactly one low-stock item, got %d", len(items))
	}
	if items[0].ID != low.ID {
		t.Errorf("expected the 10/20 item, got %s", items[0].MedicationName)
	}
}

func TestFulfill_PartialDispense(t *testing.T) {
	svc, repo, prs := newTestService()
	item := seedItem(repo, uuid.New(), 10, 20)
	p := seedPrescription(prs, 15)

	f, err := svc.Fulfill(context.Background(), p.ID, uuid.New(), FulfillInput{
		InventoryID: item.ID,
		Quantity:    4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.QuantityFulfilled != 4 {
		t.Errorf("expected quantity 4, got %d", f.QuantityFulfilled)
	}
	if item.StockQuantity != 6 {
		t.Errorf("expected stock 6 after dispensing 4 of 10, got %d", item.StockQuantity)
	}
	if p.Status != prescription.StatusPartiallyFilled {
		t.Errorf("expected partially_filled, got %s", p.Status)
	}
}

func TestFulfill_CompletingDispenseMarksFilled(t *testing.T) {
	svc, repo, prs := newTestService()
	item := seedItem(repo, uuid.New(), 10, 20)
	p := seedPrescription(prs, 4)

	_, err := svc.Fulfill(context.Background(), p.ID, uuid.New(), FulfillInput{
		InventoryID: item.ID,
		Quantity:    4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != prescription.StatusFilled {
		t.Errorf("expected filled, got %s", p.Status)
	}
	if item.StockQuantity != 6 {
		t.Errorf("expected stock 6, got %d", item.StockQuantity)
	}
}

func TestFulfill_InsufficientStockRejectedNotClamped(t *testing.T) {
	svc, repo, prs := newTestService()
	item := seedItem(repo, uuid.New(), 3, 20)
	p := seedPrescription(prs, 10)

	_, err := svc.Fulfill(context.Background(), p.ID, uuid.New(), FulfillInput{
		InventoryID: item.ID,
		Quantity:    5,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if item.StockQuantity != 3 {
		t.Errorf("stock must be untouched on rejection, got %d", item.StockQuantity)
	}
	if len(repo.fulfillments) != 0 {
		t.Errorf("no fulfillment row may exist after rejection, found %d", len(repo.fulfillments))
	}
	if p.Status != prescription.StatusPending {
		t.Errorf("expected status unchanged, got %s", p.Status)
	}
}

func TestFulfill_EmptyStockMarksOutOfStock(t *testing.T) {
	svc, repo, prs := newTestService()
	item := seedItem(repo, uuid.New(), 0, 20)
	p := seedPrescription(prs, 5)

	_, err := svc.Fulfill(context.Background(), p.ID, uuid.New(), FulfillInput{
		InventoryID: item.ID,
		Quantity:    2,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if p.Status != prescription.StatusOutOfStock {
		t.Errorf("expected out_of_stock on empty inventory, got %s", p.Status)
	}
}

func TestFulfill_ExceedsRemainingPrescribed(t *testing.T) {
	svc, repo, prs := newTestService()
	item := seedItem(repo, uuid.New(), 100, 20)
	p := seedPrescription(prs, 5)
	p.Status = prescription.StatusPartiallyFilled
	prs.fulfilled[p.ID] = 3

	_, err := svc.Fulfill(context.Background(), p.ID, uuid.New(), FulfillInput{
		InventoryID: item.ID,
		Quantity:    4,
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if item.StockQuantity != 100 {
		t.Errorf("stock must be untouched, got %d", item.StockQuantity)
	}
}

func TestFulfill_ClosedPrescriptionRejected(t *testing.T) {
	svc, repo, prs := newTestService()
	item := seedItem(repo, uuid.New(), 100, 20)
	p := seedPrescription(prs, 5)
	p.Status = prescription.StatusFilled

	_, err := svc.Fulfill(context.Background(), p.ID, uuid.New(), FulfillInput{
		InventoryID: item.ID,
		Quantity:    1,
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFulfill_RetryAfterRestock(t *testing.T) {
	svc, repo, prs := newTestService()
	item := seedItem(repo, uuid.New(), 0, 20)
	p := seedPrescription(prs, 3)
	p.Status = prescription.StatusOutOfStock

	if err := svc.Restock(context.Background(), item.ID, 10); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Fulfill(context.Background(), p.ID, uuid.New(), FulfillInput{
		InventoryID: item.ID,
		Quantity:    3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != prescription.StatusFilled {
		t.Errorf("expected filled, got %s", p.Status)
	}
	if item.StockQuantity != 7 {
		t.Errorf("expected stock 7, got %d", item.StockQuantity)
	}
}

func TestSearch_MatchesGenericName(t *testing.T) {
	svc, repo, _ := newTestService()
	hospitalID := uuid.New()

	generic := "acetaminophen"
	item := &Inventory{
		HospitalID:     hospitalID,
		MedicationName: "Tylenol",
		GenericName:    &generic,
		StockQuantity:  30,
	}
	_ = repo.CreateItem(context.Background(), item)
	seedItem(repo, hospitalID, 10, 20)

	items, _, err := svc.Search(context.Background(), hospitalID, "acetamin", 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].MedicationName != "Tylenol" {
		t.Fatalf("expected the generic-name match, got %d items", len(items))
	}
}
