package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("appointment not found")

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// List returns appointments ordered by appointment_date ascending.
	List(ctx context.Context, hospitalID uuid.UUID, filter ListFilter, limit, offset int) ([]*Summary, int, error)
}
