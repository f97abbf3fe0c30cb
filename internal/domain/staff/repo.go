package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hims/hims/internal/platform/auth"
)

// ErrNotFound is returned when a row does not exist or is soft-deleted.
var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	CreateMembership(ctx context.Context, hu *HospitalUser) error
	GetMembership(ctx context.Context, id uuid.UUID) (*HospitalUser, error)
	GetMembershipByUser(ctx context.Context, userID, hospitalID uuid.UUID) (*HospitalUser, error)
	UpdateMembership(ctx context.Context, hu *HospitalUser) error
	SoftDeleteMembership(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*StaffMember, int, error)
	ListByRole(ctx context.Context, hospitalID uuid.UUID, role auth.Role, limit, offset int) ([]*StaffMember, int, error)
}
