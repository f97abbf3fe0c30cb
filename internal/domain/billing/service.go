package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/internal/domain/visit"
	"github.com/hims/hims/pkg/errs"
)

// VisitStore is the slice of the visit repository billing needs.
type VisitStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*visit.Visit, error)
}

type Service struct {
	repo   Repository
	visits VisitStore
}

func NewService(repo Repository, visits VisitStore) *Service {
	return &Service{repo: repo, visits: visits}
}

func newBillNumber() string {
	return fmt.Sprintf("B%d-%s", time.Now().UnixMilli(), uuid.NewString()[:4])
}

// CreateForVisit opens the bill for a completed visit. One bill per visit.
func (s *Service) CreateForVisit(ctx context.Context, hospitalID, visitID uuid.UUID, totalAmount float64) (*Bill, error) {
	if totalAmount <= 0 {
		return nil, errs.Validation("total_amount", "must be greater than zero")
	}

	v, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		if errors.Is(err, visit.ErrNotFound) {
			return nil, errs.Validation("visit_id", "visit not found")
		}
		return nil, errs.Repository("load visit", err)
	}
	if v.HospitalID != hospitalID {
		return nil, errs.Validation("visit_id", "visit not found")
	}
	if v.Status != visit.StatusCompleted {
		return nil, errs.Validation("visit_id", "only completed visits can be billed")
	}
	if _, err := s.repo.GetByVisit(ctx, visitID); err == nil {
		return nil, errs.Validation("visit_id", "visit is already billed")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, errs.Repository("check existing bill", err)
	}

	b := &Bill{
		VisitID:     &visitID,
		HospitalID:  hospitalID,
		BillNumber:  newBillNumber(),
		TotalAmount: totalAmount,
		PaidAmount:  0,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, errs.Repository("create bill", err)
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByVisit(ctx context.Context, visitID uuid.UUID) (*Bill, error) {
	return s.repo.GetByVisit(ctx, visitID)
}

// RecordPayment applies one payment against the bill. A payment that would
// push paid_amount past total_amount is rejected whole.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, amount float64) (*Bill, error) {
	if amount <= 0 {
		return nil, errs.Validation("amount", "must be greater than zero")
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusPaid {
		return nil, errs.Validation("status", "bill is already settled")
	}

	ok, err := s.repo.AddPayment(ctx, id, amount)
	if err != nil {
		return nil, errs.Repository("record payment", err)
	}
	if !ok {
		return nil, errs.Validation("amount", "exceeds outstanding balance")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, hospitalID uuid.UUID, status string, limit, offset int) ([]*Bill, int, error) {
	return s.repo.List(ctx, hospitalID, status, limit, offset)
}
