package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("bill not found")

type Repository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	GetByVisit(ctx context.Context, visitID uuid.UUID) (*Bill, error)
	// AddPayment adds amount to paid_amount and recomputes the status in a
	// single statement. The WHERE guard keeps paid_amount bounded by
	// total_amount under concurrent payments; false means the guard failed.
	AddPayment(ctx context.Context, id uuid.UUID, amount float64) (bool, error)
	List(ctx context.Context, hospitalID uuid.UUID, status string, limit, offset int) ([]*Bill, int, error)
}
