package staff

import (
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/internal/platform/auth"
)

// User maps to the app_user table. Identity is hospital-independent; the
// membership row below scopes a user to a hospital with a role.
type User struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Email         string     `db:"email" json:"email"`
	FirstName     *string    `db:"first_name" json:"first_name,omitempty"`
	LastName      *string    `db:"last_name" json:"last_name,omitempty"`
	Phone         *string    `db:"phone" json:"phone,omitempty"`
	EmailVerified bool       `db:"email_verified" json:"email_verified"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// HospitalUser maps to the hospital_user table: the join of a user to a
// hospital with a role. At most one live row per user per hospital.
type HospitalUser struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	HospitalID uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	UserID     uuid.UUID  `db:"user_id" json:"user_id"`
	Role       auth.Role  `db:"role" json:"role"`
	EmployeeID *string    `db:"employee_id" json:"employee_id,omitempty"`
	Department *string    `db:"department" json:"department,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy  *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	DeletedAt  *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// StaffMember is the directory projection: a membership joined with the
// user's contact fields.
type StaffMember struct {
	HospitalUser
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}
