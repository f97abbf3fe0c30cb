package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("patient not found")

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	// Search matches patient_number or contact_number, case-insensitive
	// substring.
	Search(ctx context.Context, hospitalID uuid.UUID, query string, limit, offset int) ([]*Patient, int, error)
}
