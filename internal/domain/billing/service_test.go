package billing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/internal/domain/visit"
	"github.com/hims/hims/pkg/errs"
)

type mockRepo struct {
	bills map[uuid.UUID]*Bill
}

func newMockRepo() *mockRepo {
	return &mockRepo{bills: make(map[uuid.UUID]*Bill)}
}

func (m *mockRepo) Create(_ context.Context, b *Bill) error {
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	m.bills[b.ID] = b
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Bill, error) {
	b, ok := m.bills[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (m *mockRepo) GetByVisit(_ context.Context, visitID uuid.UUID) (*Bill, error) {
	for _, b := range m.bills {
		if b.VisitID != nil && *b.VisitID == visitID {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) AddPayment(_ context.Context, id uuid.UUID, amount float64) (bool, error) {
	b, ok := m.bills[id]
	if !ok || b.PaidAmount+amount > b.TotalAmount {
		return false, nil
	}
	b.PaidAmount += amount
	if b.PaidAmount >= b.TotalAmount {
		b.Status = StatusPaid
	} else {
		b.Status = StatusPartiallyPaid
	}
	return true, nil
}

func (m *mockRepo) List(_ context.Context, hospitalID uuid.UUID, status string, limit, offset int) ([]*Bill, int, error) {
	var result []*Bill
	for _, b := range m.bills {
		if b.HospitalID != hospitalID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		result = append(result, b)
	}
	return result, len(result), nil
}

type mockVisits struct {
	visits map[uuid.UUID]*visit.Visit
}

func (m *mockVisits) GetByID(_ context.Context, id uuid.UUID) (*visit.Visit, error) {
	v, ok := m.visits[id]
	if !ok {
		return nil, visit.ErrNotFound
	}
	return v, nil
}

func newTestService() (*Service, *mockRepo, *mockVisits) {
	repo := newMockRepo()
	visits := &mockVisits{visits: make(map[uuid.UUID]*visit.Visit)}
	return NewService(repo, visits), repo, visits
}

func seedVisit(visits *mockVisits, hospitalID uuid.UUID, status string) *visit.Visit {
	v := &visit.Visit{ID: uuid.New(), HospitalID: hospitalID, Status: status}
	visits.visits[v.ID] = v
	return v
}

func TestCreateForVisit_OpensPending(t *testing.T) {
	svc, _, visits := newTestService()
	hospitalID := uuid.New()
	v := seedVisit(visits, hospitalID, visit.StatusCompleted)

	b, err := svc.CreateForVisit(context.Background(), hospitalID, v.ID, 250.00)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusPending {
		t.Errorf("expected pending, got %s", b.Status)
	}
	if b.PaidAmount != 0 {
		t.Errorf("expected zero paid, got %f", b.PaidAmount)
	}
	if !strings.HasPrefix(b.BillNumber, "B") {
		t.Errorf("expected B-prefixed bill number, got %s", b.BillNumber)
	}
}

func TestCreateForVisit_ActiveVisitRejected(t *testing.T) {
	svc, _, visits := newTestService()
	hospitalID := uuid.New()
	v := seedVisit(visits, hospitalID, visit.StatusActive)

	_, err := svc.CreateForVisit(context.Background(), hospitalID, v.ID, 100)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateForVisit_DuplicateRejected(t *testing.T) {
	svc, _, visits := newTestService()
	hospitalID := uuid.New()
	v := seedVisit(visits, hospitalID, visit.StatusCompleted)

	if _, err := svc.CreateForVisit(context.Background(), hospitalID, v.ID, 100); err != nil {
		t.Fatal(err)
	}
	_, err := svc.CreateForVisit(context.Background(), hospitalID, v.ID, 100)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error on double billing, got %v", err)
	}
}

func TestCreateForVisit_OtherHospitalRejected(t *testing.T) {
	svc, _, visits := newTestService()
	v := seedVisit(visits, uuid.New(), visit.StatusCompleted)

	_, err := svc.CreateForVisit(context.Background(), uuid.New(), v.ID, 100)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordPayment_PartialThenSettled(t *testing.T) {
	svc, _, visits := newTestService()
	hospitalID := uuid.New()
	v := seedVisit(visits, hospitalID, visit.StatusCompleted)
	b, err := svc.CreateForVisit(context.Background(), hospitalID, v.ID, 200)
	if err != nil {
		t.Fatal(err)
	}

	b, err = svc.RecordPayment(context.Background(), b.ID, 80)
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != StatusPartiallyPaid || b.PaidAmount != 80 {
		t.Errorf("expected partially_paid/80, got %s/%f", b.Status, b.PaidAmount)
	}

	b, err = svc.RecordPayment(context.Background(), b.ID, 120)
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != StatusPaid || b.PaidAmount != 200 {
		t.Errorf("expected paid/200, got %s/%f", b.Status, b.PaidAmount)
	}
}

func TestRecordPayment_OverpaymentRejected(t *testing.T) {
	svc, _, visits := newTestService()
	hospitalID := uuid.New()
	v := seedVisit(visits, hospitalID, visit.StatusCompleted)
	b, err := svc.CreateForVisit(context.Background(), hospitalID, v.ID, 100)
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.RecordPayment(context.Background(), b.ID, 150)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if b.PaidAmount != 0 {
		t.Errorf("paid amount must be untouched on rejection, got %f", b.PaidAmount)
	}
}

func TestRecordPayment_SettledBillFrozen(t *testing.T) {
	svc, _, visits := newTestService()
	hospitalID := uuid.New()
	v := seedVisit(visits, hospitalID, visit.StatusCompleted)
	b, err := svc.CreateForVisit(context.Background(), hospitalID, v.ID, 50)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordPayment(context.Background(), b.ID, 50); err != nil {
		t.Fatal(err)
	}

	_, err = svc.RecordPayment(context.Background(), b.ID, 10)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordPayment_NonPositiveRejected(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.RecordPayment(context.Background(), uuid.New(), 0)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestList_FiltersByStatus(t *testing.T) {
	svc, _, visits := newTestService()
	hospitalID := uuid.New()

	v1 := seedVisit(visits, hospitalID, visit.StatusCompleted)
	v2 := seedVisit(visits, hospitalID, visit.StatusCompleted)
	b1, err := svc.CreateForVisit(context.Background(), hospitalID, v1.ID, 100)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateForVisit(context.Background(), hospitalID, v2.ID, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordPayment(context.Background(), b1.ID, 100); err != nil {
		t.Fatal(err)
	}

	bills, total, err := svc.List(context.Background(), hospitalID, StatusPending, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(bills) != 1 {
		t.Fatalf("expected one pending bill, got %d", len(bills))
	}
}
