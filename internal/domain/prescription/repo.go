package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("prescription not found")

type Repository interface {
	// CreateBatch persists the whole set in one transaction: either every
	// row lands or none do.
	CreateBatch(ctx context.Context, batch []*Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	ListByVisit(ctx context.Context, visitID uuid.UUID) ([]*Prescription, error)
	// ListPending returns pending and partially filled prescriptions for the
	// hospital, newest first, via the visit join.
	ListPending(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*PendingItem, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// SumFulfilled reports the total quantity already dispensed against the
	// prescription.
	SumFulfilled(ctx context.Context, id uuid.UUID) (int, error)
}
