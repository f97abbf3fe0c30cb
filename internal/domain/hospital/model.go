package hospital

import (
	"time"

	"github.com/google/uuid"
)

// Hospital maps to the hospital table. It is the tenant root: every scoped
// entity carries its id and is never visible across hospitals.
type Hospital struct {
	ID           uuid.UUID              `db:"id" json:"id"`
	Name         string                 `db:"name" json:"name"`
	LogoURL      *string                `db:"logo_url" json:"logo_url,omitempty"`
	Address      *string                `db:"address" json:"address,omitempty"`
	ContactEmail *string                `db:"contact_email" json:"contact_email,omitempty"`
	ContactPhone *string                `db:"contact_phone" json:"contact_phone,omitempty"`
	Settings     map[string]interface{} `db:"settings" json:"settings"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time              `db:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time             `db:"deleted_at" json:"deleted_at,omitempty"`
}
