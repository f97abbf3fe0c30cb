package visit

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("visit not found")

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*Visit, error)
	GetSummary(ctx context.Context, id uuid.UUID) (*Summary, error)
	Update(ctx context.Context, v *Visit) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, hospitalID uuid.UUID, filter ListFilter, limit, offset int) ([]*Summary, int, error)
}
