package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/pkg/errs"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// newVisitNumber is a millisecond timestamp plus a short random suffix so two
// intakes in the same millisecond cannot collide. The composite unique index
// per hospital is the backstop.
func newVisitNumber() string {
	return fmt.Sprintf("V%d-%s", time.Now().UnixMilli(), uuid.NewString()[:4])
}

// RecordInput is the intake form for a new visit.
type RecordInput struct {
	PatientID      uuid.UUID  `json:"patient_id"`
	DoctorID       uuid.UUID  `json:"doctor_id"`
	VisitType      string     `json:"visit_type"`
	VisitDate      time.Time  `json:"visit_date"`
	ChiefComplaint string     `json:"chief_complaint"`
	Symptoms       *string    `json:"symptoms"`
	Diagnosis      *string    `json:"diagnosis"`
	TreatmentPlan  *string    `json:"treatment_plan"`
	Notes          *string    `json:"notes"`
	CreatedBy      *uuid.UUID `json:"-"`
}

// Record opens a visit. The chief complaint is mandatory; all other
// narrative fields are optional free text. The visit always starts active.
func (s *Service) Record(ctx context.Context, hospitalID uuid.UUID, in RecordInput) (*Visit, error) {
	if in.PatientID == uuid.Nil {
		return nil, errs.Validation("patient_id", "is required")
	}
	if in.DoctorID == uuid.Nil {
		return nil, errs.Validation("doctor_id", "is required")
	}
	if in.ChiefComplaint == "" {
		return nil, errs.Validation("chief_complaint", "is required")
	}
	if !validTypes[in.VisitType] {
		return nil, errs.Validation("visit_type", "must be one of consultation, follow_up, emergency, routine_checkup")
	}
	if in.VisitDate.IsZero() {
		in.VisitDate = time.Now().UTC()
	}

	v := &Visit{
		PatientID:      in.PatientID,
		DoctorID:       in.DoctorID,
		HospitalID:     hospitalID,
		VisitNumber:    newVisitNumber(),
		VisitDate:      in.VisitDate,
		VisitType:      in.VisitType,
		ChiefComplaint: in.ChiefComplaint,
		Symptoms:       in.Symptoms,
		Diagnosis:      in.Diagnosis,
		TreatmentPlan:  in.TreatmentPlan,
		Notes:          in.Notes,
		Status:         StatusActive,
		CreatedBy:      in.CreatedBy,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, errs.Repository("record visit", err)
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetSummary(ctx context.Context, id uuid.UUID) (*Summary, error) {
	return s.repo.GetSummary(ctx, id)
}

func (s *Service) Update(ctx context.Context, v *Visit) error {
	if v.ID == uuid.Nil {
		return errs.Validation("id", "is required")
	}
	if v.ChiefComplaint == "" {
		return errs.Validation("chief_complaint", "is required")
	}
	if !validStatuses[v.Status] {
		return errs.Validation("status", "must be one of active, completed, cancelled")
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return errs.Repository("update visit", err)
	}
	return nil
}

// Complete closes the visit; billing anchors on this transition.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errs.Repository("load visit", err)
	}
	if v.Status != StatusActive {
		return errs.Validation("status", "only active visits can be completed")
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCompleted); err != nil {
		return errs.Repository("complete visit", err)
	}
	return nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errs.Repository("load visit", err)
	}
	if v.Status != StatusActive {
		return errs.Validation("status", "only active visits can be cancelled")
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return errs.Repository("cancel visit", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, hospitalID uuid.UUID, filter ListFilter, limit, offset int) ([]*Summary, int, error) {
	return s.repo.List(ctx, hospitalID, filter, limit, offset)
}
