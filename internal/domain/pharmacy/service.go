package pharmacy

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/internal/domain/prescription"
	"github.com/hims/hims/pkg/errs"
)

// ErrInsufficientStock signals that a dispense asked for more than the
// inventory line holds. The fulfillment is rejected whole, never clamped.
var ErrInsufficientStock = errors.New("insufficient stock to fulfill requested quantity")

// PrescriptionStore is the slice of the prescription repository the
// pharmacy needs during fulfillment.
type PrescriptionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*prescription.Prescription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SumFulfilled(ctx context.Context, id uuid.UUID) (int, error)
}

// TxFunc runs fn atomically. Production wiring passes db.WithTx bound to
// the pool.
type TxFunc func(ctx context.Context, fn func(context.Context) error) error

type Service struct {
	repo          Repository
	prescriptions PrescriptionStore
	tx            TxFunc
}

func NewService(repo Repository, prescriptions PrescriptionStore, tx TxFunc) *Service {
	if tx == nil {
		tx = func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }
	}
	return &Service{repo: repo, prescriptions: prescriptions, tx: tx}
}

// AddInput carries the stock-entry form for a new inventory line.
type AddInput struct {
	MedicationName   string     `json:"medication_name"`
	GenericName      *string    `json:"generic_name"`
	Category         *string    `json:"category"`
	Manufacturer     *string    `json:"manufacturer"`
	BatchNumber      *string    `json:"batch_number"`
	ExpiryDate       *time.Time `json:"expiry_date"`
	StockQuantity    int        `json:"stock_quantity"`
	ReorderThreshold int        `json:"reorder_threshold"`
	UnitPrice        *float64   `json:"unit_price"`
}

func (s *Service) AddItem(ctx context.Context, hospitalID uuid.UUID, createdBy *uuid.UUID, in AddInput) (*Inventory, error) {
	if in.MedicationName == "" {
		return nil, errs.Validation("medication_name", "is required")
	}
	if in.StockQuantity < 0 {
		return nil, errs.Validation("stock_quantity", "must not be negative")
	}
	if in.ReorderThreshold < 0 {
		return nil, errs.Validation("reorder_threshold", "must not be negative")
	}
	item := &Inventory{
		HospitalID:       hospitalID,
		MedicationName:   in.MedicationName,
		GenericName:      in.GenericName,
		Category:         in.Category,
		Manufacturer:     in.Manufacturer,
		BatchNumber:      in.BatchNumber,
		ExpiryDate:       in.ExpiryDate,
		StockQuantity:    in.StockQuantity,
		ReorderThreshold: in.ReorderThreshold,
		UnitPrice:        in.UnitPrice,
		CreatedBy:        createdBy,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, errs.Repository("add inventory item", err)
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*Inventory, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, item *Inventory) error {
	if item.MedicationName == "" {
		return errs.Validation("medication_name", "is required")
	}
	if item.ReorderThreshold < 0 {
		return errs.Validation("reorder_threshold", "must not be negative")
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return errs.Repository("update inventory item", err)
	}
	return nil
}

func (s *Service) RemoveItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteItem(ctx, id); err != nil {
		return errs.Repository("remove inventory item", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Inventory, int, error) {
	return s.repo.List(ctx, hospitalID, limit, offset)
}

func (s *Service) LowStock(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Inventory, int, error) {
	return s.repo.LowStock(ctx, hospitalID, limit, offset)
}

func (s *Service) Search(ctx context.Context, hospitalID uuid.UUID, query string, limit, offset int) ([]*Inventory, int, error) {
	if query == "" {
		return s.repo.List(ctx, hospitalID, limit, offset)
	}
	return s.repo.Search(ctx, hospitalID, query, limit, offset)
}

func (s *Service) Restock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity < 1 {
		return errs.Validation("quantity", "must be at least 1")
	}
	return s.repo.RestockItem(ctx, id, quantity)
}

// FulfillInput carries one dispense against a prescription.
type FulfillInput struct {
	InventoryID uuid.UUID `json:"inventory_id"`
	Quantity    int       `json:"quantity"`
	Notes       *string   `json:"notes"`
}

// fulfillable lists the statuses a dispense may run against. out_of_stock
// is included so a prescription can be retried once inventory is restocked.
var fulfillable = map[string]bool{
	prescription.StatusPending:         true,
	prescription.StatusPartiallyFilled: true,
	prescription.StatusOutOfStock:      true,
}

// Fulfill dispenses quantity from an inventory line against a prescription.
// The stock decrement, the fulfillment record and the prescription status
// change commit together or not at all. A dispense larger than the
// available stock fails with ErrInsufficientStock; if the line is fully
// empty the prescription is marked out_of_stock.
func (s *Service) Fulfill(ctx context.Context, prescriptionID, pharmacistID uuid.UUID, in FulfillInput) (*Fulfillment, error) {
	if in.Quantity < 1 {
		return nil, errs.Validation("quantity", "must be at least 1")
	}
	if in.InventoryID == uuid.Nil {
		return nil, errs.Validation("inventory_id", "is required")
	}

	pr, err := s.prescriptions.GetByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if !fulfillable[pr.Status] {
		return nil, errs.Validation("status", "prescription is not open for fulfillment")
	}

	sum, err := s.prescriptions.SumFulfilled(ctx, prescriptionID)
	if err != nil {
		return nil, errs.Repository("sum fulfillments", err)
	}
	if remaining := pr.QuantityPrescribed - sum; in.Quantity > remaining {
		return nil, errs.Validation("quantity", "exceeds remaining prescribed quantity")
	}

	f := &Fulfillment{
		PrescriptionID:    prescriptionID,
		InventoryID:       &in.InventoryID,
		PharmacistID:      pharmacistID,
		QuantityFulfilled: in.Quantity,
		FulfilledAt:       time.Now().UTC(),
		Notes:             in.Notes,
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		ok, err := s.repo.DecrementStock(ctx, in.InventoryID, in.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientStock
		}
		if err := s.repo.CreateFulfillment(ctx, f); err != nil {
			return err
		}
		status := prescription.StatusPartiallyFilled
		if sum+in.Quantity >= pr.QuantityPrescribed {
			status = prescription.StatusFilled
		}
		return s.prescriptions.UpdateStatus(ctx, prescriptionID, status)
	})
	if errors.Is(err, ErrInsufficientStock) {
		if item, e := s.repo.GetItem(ctx, in.InventoryID); e == nil && item.StockQuantity == 0 {
			_ = s.prescriptions.UpdateStatus(ctx, prescriptionID, prescription.StatusOutOfStock)
		}
		return nil, err
	}
	if err != nil {
		return nil, errs.Repository("fulfill prescription", err)
	}
	return f, nil
}

func (s *Service) Fulfillments(ctx context.Context, prescriptionID uuid.UUID) ([]*Fulfillment, error) {
	return s.repo.ListFulfillments(ctx, prescriptionID)
}
