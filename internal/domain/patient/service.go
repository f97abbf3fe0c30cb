package patient

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

// newPatientNumber generates a registration number unique within a hospital:
// millisecond timestamp plus a short random suffix. The composite unique
// index is the backstop.
func newPatientNumber() string {
	return fmt.Sprintf("P%d-%s", time.Now().UnixMilli(), uuid.NewString()[:4])
}

func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.HospitalID == uuid.Nil {
		return errs.Validation("hospital_id", "is required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return errs.Validation("gender", "must be one of male, female, other, prefer_not_to_say")
	}
	if p.PatientNumber == "" {
		p.PatientNumber = newPatientNumber()
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return errs.Repository("register patient", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		return errs.Validation("id", "is required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return errs.Validation("gender", "must be one of male, female, other, prefer_not_to_say")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return errs.Repository("update patient", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return errs.Repository("delete patient", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, hospitalID, limit, offset)
}

func (s *Service) Search(ctx context.Context, hospitalID uuid.UUID, query string, limit, offset int) ([]*Patient, int, error) {
	if query == "" {
		return s.repo.List(ctx, hospitalID, limit, offset)
	}
	return s.repo.Search(ctx, hospitalID, query, limit, offset)
}
