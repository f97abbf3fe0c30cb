package billing

import (
	"time"

	"github.com/google/uuid"
)

// Bill settlement statuses. A bill opens pending and moves through
// partially_paid to paid as payments land; paid is terminal.
const (
	StatusPending       = "pending"
	StatusPartiallyPaid = "partially_paid"
	StatusPaid          = "paid"
)

// Bill maps to the bill table: the charge raised when a visit closes.
// paid_amount never exceeds total_amount.
type Bill struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	VisitID     *uuid.UUID `db:"visit_id" json:"visit_id,omitempty"`
	HospitalID  uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	BillNumber  string     `db:"bill_number" json:"bill_number"`
	TotalAmount float64    `db:"total_amount" json:"total_amount"`
	PaidAmount  float64    `db:"paid_amount" json:"paid_amount"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
