package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Optionally linked to a portal user;
// always owned by one hospital.
type Patient struct {
	ID                     uuid.UUID  `db:"id" json:"id"`
	UserID                 *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	HospitalID             uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	PatientNumber          string     `db:"patient_number" json:"patient_number"`
	DateOfBirth            *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender                 *string    `db:"gender" json:"gender,omitempty"`
	ContactNumber          *string    `db:"contact_number" json:"contact_number,omitempty"`
	EmergencyContactName   *string    `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber *string    `db:"emergency_contact_number" json:"emergency_contact_number,omitempty"`
	Address                *string    `db:"address" json:"address,omitempty"`
	BloodGroup             *string    `db:"blood_group" json:"blood_group,omitempty"`
	Allergies              *string    `db:"allergies" json:"allergies,omitempty"`
	MedicalHistory         *string    `db:"medical_history" json:"medical_history,omitempty"`
	FirstName              *string    `db:"first_name" json:"first_name,omitempty"`
	LastName               *string    `db:"last_name" json:"last_name,omitempty"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy              *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	DeletedAt              *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

var validGenders = map[string]bool{
	"male":              true,
	"female":            true,
	"other":             true,
	"prefer_not_to_say": true,
}
