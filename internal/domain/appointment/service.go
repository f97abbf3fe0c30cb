package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/internal/domain/patient"
	"github.com/hims/hims/internal/domain/staff"
	"github.com/hims/hims/internal/platform/auth"
	"github.com/hims/hims/pkg/errs"
)

// PatientDirectory is the slice of the patient repository booking needs.
type PatientDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// StaffDirectory is the slice of the staff repository booking needs.
type StaffDirectory interface {
	GetMembership(ctx context.Context, id uuid.UUID) (*staff.HospitalUser, error)
}

// transitions lists the allowed status moves. completed, cancelled and
// no_show are terminal.
var transitions = map[string][]string{
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func canTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	staff    StaffDirectory
}

func NewService(repo Repository, patients PatientDirectory, staff StaffDirectory) *Service {
	return &Service{repo: repo, patients: patients, staff: staff}
}

// BookInput is the scheduling form.
type BookInput struct {
	PatientID       uuid.UUID  `json:"patient_id"`
	DoctorID        uuid.UUID  `json:"doctor_id"`
	AppointmentDate time.Time  `json:"appointment_date"`
	DurationMinutes int        `json:"duration_minutes"`
	Reason          *string    `json:"reason"`
	CreatedBy       *uuid.UUID `json:"-"`
}

// Book creates a scheduled appointment. The patient must be registered at
// the hospital and the doctor must be a live membership with the doctor
// role there.
func (s *Service) Book(ctx context.Context, hospitalID uuid.UUID, in BookInput) (*Appointment, error) {
	if in.PatientID == uuid.Nil {
		return nil, errs.Validation("patient_id", "is required")
	}
	if in.DoctorID == uuid.Nil {
		return nil, errs.Validation("doctor_id", "is required")
	}
	if in.AppointmentDate.IsZero() {
		return nil, errs.Validation("appointment_date", "is required")
	}
	if in.DurationMinutes < MinDurationMinutes {
		return nil, errs.Validation("duration_minutes", "must be at least 15")
	}

	p, err := s.patients.GetByID(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return nil, errs.Validation("patient_id", "patient not found")
		}
		return nil, errs.Repository("load patient", err)
	}
	if p.HospitalID != hospitalID {
		return nil, errs.Validation("patient_id", "patient not found")
	}

	d, err := s.staff.GetMembership(ctx, in.DoctorID)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return nil, errs.Validation("doctor_id", "doctor not found")
		}
		return nil, errs.Repository("load doctor", err)
	}
	if d.HospitalID != hospitalID || d.Role != auth.RoleDoctor {
		return nil, errs.Validation("doctor_id", "doctor not found")
	}

	a := &Appointment{
		PatientID:       in.PatientID,
		DoctorID:        in.DoctorID,
		HospitalID:      hospitalID,
		AppointmentDate: in.AppointmentDate,
		DurationMinutes: in.DurationMinutes,
		Reason:          in.Reason,
		Status:          StatusScheduled,
		CreatedBy:       in.CreatedBy,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, errs.Repository("book appointment", err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// RescheduleInput moves an open appointment to a new slot.
type RescheduleInput struct {
	AppointmentDate time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Reason          *string   `json:"reason"`
}

func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, in RescheduleInput) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusScheduled && a.Status != StatusConfirmed {
		return nil, errs.Validation("status", "only open appointments can be rescheduled")
	}
	if in.AppointmentDate.IsZero() {
		return nil, errs.Validation("appointment_date", "is required")
	}
	if in.DurationMinutes < MinDurationMinutes {
		return nil, errs.Validation("duration_minutes", "must be at least 15")
	}

	a.AppointmentDate = in.AppointmentDate
	a.DurationMinutes = in.DurationMinutes
	if in.Reason != nil {
		a.Reason = in.Reason
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, errs.Repository("reschedule appointment", err)
	}
	return a, nil
}

// UpdateStatus applies one transition. Terminal states never move again.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canTransition(a.Status, status) {
		return errs.Validation("status", "transition from "+a.Status+" to "+status+" is not allowed")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return errs.Repository("update appointment status", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, hospitalID uuid.UUID, filter ListFilter, limit, offset int) ([]*Summary, int, error) {
	return s.repo.List(ctx, hospitalID, filter, limit, offset)
}
