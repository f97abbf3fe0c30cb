package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. Booking always starts scheduled; the transitions
// map in service.go governs every later move.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// MinDurationMinutes is the shortest bookable slot.
const MinDurationMinutes = 15

// Appointment maps to the appointment table: a future slot between a
// patient and a doctor.
type Appointment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	HospitalID      uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	AppointmentDate time.Time  `db:"appointment_date" json:"appointment_date"`
	DurationMinutes int        `db:"duration_minutes" json:"duration_minutes"`
	Reason          *string    `db:"reason" json:"reason,omitempty"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy       *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

// Summary is the schedule projection: the appointment joined with patient
// number/name and doctor name.
type Summary struct {
	Appointment
	PatientNumber    string  `json:"patient_number"`
	PatientFirstName *string `json:"patient_first_name,omitempty"`
	PatientLastName  *string `json:"patient_last_name,omitempty"`
	DoctorFirstName  *string `json:"doctor_first_name,omitempty"`
	DoctorLastName   *string `json:"doctor_last_name,omitempty"`
}

// ListFilter narrows schedule lists to one doctor, patient and/or status.
type ListFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Status    string
}
