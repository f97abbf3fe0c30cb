package visit

import (
	"time"

	"github.com/google/uuid"
)

// Visit statuses. A visit opens active and is closed by completion or
// cancellation; rows are never hard-deleted.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusActive:    true,
	StatusCompleted: true,
	StatusCancelled: true,
}

var validTypes = map[string]bool{
	"consultation":    true,
	"follow_up":       true,
	"emergency":       true,
	"routine_checkup": true,
}

// Visit maps to the visit table: one clinical encounter between a patient
// and a doctor, the anchor for prescriptions and billing.
type Visit struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	HospitalID     uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	VisitNumber    string     `db:"visit_number" json:"visit_number"`
	VisitDate      time.Time  `db:"visit_date" json:"visit_date"`
	VisitType      string     `db:"visit_type" json:"visit_type"`
	ChiefComplaint string     `db:"chief_complaint" json:"chief_complaint"`
	Symptoms       *string    `db:"symptoms" json:"symptoms,omitempty"`
	Diagnosis      *string    `db:"diagnosis" json:"diagnosis,omitempty"`
	TreatmentPlan  *string    `db:"treatment_plan" json:"treatment_plan,omitempty"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	Status         string     `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy      *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

// Summary is the typed projection for visit lists: the visit joined with
// patient number/name and doctor name.
type Summary struct {
	Visit
	PatientNumber    string  `json:"patient_number"`
	PatientFirstName *string `json:"patient_first_name,omitempty"`
	PatientLastName  *string `json:"patient_last_name,omitempty"`
	DoctorFirstName  *string `json:"doctor_first_name,omitempty"`
	DoctorLastName   *string `json:"doctor_last_name,omitempty"`
}

// ListFilter narrows visit lists to one doctor and/or patient.
type ListFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
}
