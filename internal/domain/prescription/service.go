package prescription

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hims/hims/pkg/errs"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Item is one medication line on the prescribing form.
type Item struct {
	MedicationName     string  `json:"medication_name"`
	GenericName        *string `json:"generic_name"`
	Dosage             string  `json:"dosage"`
	Frequency          string  `json:"frequency"`
	Duration           string  `json:"duration"`
	QuantityPrescribed int     `json:"quantity_prescribed"`
	Instructions       *string `json:"instructions"`
}

func (it Item) validate(i int) error {
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
	if it.MedicationName == "" {
		return errs.Validation(field("medication_name"), "is required")
	}
	if it.Dosage == "" {
		return errs.Validation(field("dosage"), "is required")
	}
	if it.Frequency == "" {
		return errs.Validation(field("frequency"), "is required")
	}
	if it.Duration == "" {
		return errs.Validation(field("duration"), "is required")
	}
	if it.QuantityPrescribed < 1 {
		return errs.Validation(field("quantity_prescribed"), "must be at least 1")
	}
	return nil
}

// Issue validates every item before any persistence, then writes the whole
// batch in one transaction. A failure leaves no partial prescription set.
// Every created row starts pending.
func (s *Service) Issue(ctx context.Context, visitID, prescriberID uuid.UUID, items []Item) ([]*Prescription, error) {
	if visitID == uuid.Nil {
		return nil, errs.Validation("visit_id", "is required")
	}
	if prescriberID == uuid.Nil {
		return nil, errs.Validation("prescribed_by", "is required")
	}
	if len(items) == 0 {
		return nil, errs.Validation("items", "at least one item is required")
	}
	for i, it := range items {
		if err := it.validate(i); err != nil {
			return nil, err
		}
	}

	batch := make([]*Prescription, len(items))
	for i, it := range items {
		batch[i] = &Prescription{
			VisitID:            visitID,
			PrescribedBy:       prescriberID,
			MedicationName:     it.MedicationName,
			GenericName:        it.GenericName,
			Dosage:             it.Dosage,
			Frequency:          it.Frequency,
			Duration:           it.Duration,
			QuantityPrescribed: it.QuantityPrescribed,
			Instructions:       it.Instructions,
			Status:             StatusPending,
			CreatedBy:          &prescriberID,
		}
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, errs.Repository("issue prescriptions", err)
	}
	return batch, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByVisit(ctx context.Context, visitID uuid.UUID) ([]*Prescription, error) {
	return s.repo.ListByVisit(ctx, visitID)
}

func (s *Service) ListPending(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*PendingItem, int, error) {
	return s.repo.ListPending(ctx, hospitalID, limit, offset)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return errs.Validation("status", "unknown prescription status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return errs.Repository("update prescription status", err)
	}
	return nil
}
