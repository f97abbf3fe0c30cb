package hospital

import (
	"context"

	"github.com/google/uuid"

	"github.com/hims/hims/pkg/errs"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, h *Hospital) error {
	if h.Name == "" {
		return errs.Validation("name", "is required")
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return errs.Repository("create hospital", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, h *Hospital) error {
	if h.ID == uuid.Nil {
		return errs.Validation("id", "is required")
	}
	if h.Name == "" {
		return errs.Validation("name", "is required")
	}
	if err := s.repo.Update(ctx, h); err != nil {
		return errs.Repository("update hospital", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return errs.Repository("delete hospital", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	return s.repo.List(ctx, limit, offset)
}
