package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription statuses. Issued rows start pending; fulfillment advances
// them to partially_filled and filled; out_of_stock marks a rejected
// dispense against empty inventory.
const (
	StatusPending         = "pending"
	StatusPartiallyFilled = "partially_filled"
	StatusFilled          = "filled"
	StatusCancelled       = "cancelled"
	StatusOutOfStock      = "out_of_stock"
)

var validStatuses = map[string]bool{
	StatusPending:         true,
	StatusPartiallyFilled: true,
	StatusFilled:          true,
	StatusCancelled:       true,
	StatusOutOfStock:      true,
}

// Prescription maps to the prescription table: one medication line issued
// against a visit.
type Prescription struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	VisitID            uuid.UUID  `db:"visit_id" json:"visit_id"`
	PrescribedBy       uuid.UUID  `db:"prescribed_by" json:"prescribed_by"`
	MedicationName     string     `db:"medication_name" json:"medication_name"`
	GenericName        *string    `db:"generic_name" json:"generic_name,omitempty"`
	Dosage             string     `db:"dosage" json:"dosage"`
	Frequency          string     `db:"frequency" json:"frequency"`
	Duration           string     `db:"duration" json:"duration"`
	QuantityPrescribed int        `db:"quantity_prescribed" json:"quantity_prescribed"`
	Instructions       *string    `db:"instructions" json:"instructions,omitempty"`
	Status             string     `db:"status" json:"status"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy          *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

// PendingItem is the pharmacist-queue projection: the prescription joined
// with its visit number, patient and prescriber.
type PendingItem struct {
	Prescription
	VisitNumber      string  `json:"visit_number"`
	PatientNumber    string  `json:"patient_number"`
	PatientFirstName *string `json:"patient_first_name,omitempty"`
	PatientLastName  *string `json:"patient_last_name,omitempty"`
	DoctorFirstName  *string `json:"doctor_first_name,omitempty"`
	DoctorLastName   *string `json:"doctor_last_name,omitempty"`
}
