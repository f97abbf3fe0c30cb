package visit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/pkg/errs"
)

type mockRepo struct {
	visits map[uuid.UUID]*Visit
}

func newMockRepo() *mockRepo {
	return &mockRepo{visits: make(map[uuid.UUID]*Visit)}
}

func (m *mockRepo) Create(_ context.Context, v *Visit) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	m.visits[v.ID] = v
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Visit, error) {
	v, ok := m.visits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *mockRepo) GetSummary(_ context.Context, id uuid.UUID) (*Summary, error) {
	v, ok := m.visits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Summary{Visit: *v}, nil
}

func (m *mockRepo) Update(_ context.Context, v *Visit) error {
	m.visits[v.ID] = v
	return nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	if v, ok := m.visits[id]; ok {
		v.Status = status
	}
	return nil
}

func (m *mockRepo) List(_ context.Context, hospitalID uuid.UUID, filter ListFilter, limit, offset int) ([]*Summary, int, error) {
	var result []*Summary
	for _, v := range m.visits {
		if v.HospitalID != hospitalID {
			continue
		}
		if filter.DoctorID != nil && v.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && v.PatientID != *filter.PatientID {
			continue
		}
		result = append(result, &Summary{Visit: *v})
	}
	return result, len(result), nil
}

func validInput() RecordInput {
	return RecordInput{
		PatientID:      uuid.New(),
		DoctorID:       uuid.New(),
		VisitType:      "consultation",
		ChiefComplaint: "fever",
	}
}

func TestRecordVisit(t *testing.T) {
	svc := NewService(newMockRepo())

	v, err := svc.Record(context.Background(), uuid.New(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusActive {
		t.Errorf("new visit must start active, got %s", v.Status)
	}
	if !strings.HasPrefix(v.VisitNumber, "V") || len(v.VisitNumber) < 10 {
		t.Errorf("unexpected visit number %q", v.VisitNumber)
	}
	if v.VisitDate.IsZero() {
		t.Error("visit date must default to now")
	}
}

func TestRecordVisit_VisitNumbersUnique(t *testing.T) {
	svc := NewService(newMockRepo())
	hospitalID := uuid.New()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		v, err := svc.Record(context.Background(), hospitalID, validInput())
		if err != nil {
			t.Fatal(err)
		}
		if seen[v.VisitNumber] {
			t.Fatalf("duplicate visit number %q", v.VisitNumber)
		}
		seen[v.VisitNumber] = true
	}
}

func TestRecordVisit_ChiefComplaintRequired(t *testing.T) {
	svc := NewService(newMockRepo())

	in := validInput()
	in.ChiefComplaint = ""
	_, err := svc.Record(context.Background(), uuid.New(), in)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordVisit_RejectsUnknownType(t *testing.T) {
	svc := NewService(newMockRepo())

	in := validInput()
	in.VisitType = "walk_in"
	_, err := svc.Record(context.Background(), uuid.New(), in)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCompleteVisit(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	v, err := svc.Record(context.Background(), uuid.New(), validInput())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Complete(context.Background(), v.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), v.ID)
	if got.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}

	// A closed visit cannot be completed again.
	if err := svc.Complete(context.Background(), v.ID); !errs.IsValidation(err) {
		t.Fatalf("expected validation error on double completion, got %v", err)
	}
}

func TestCancelVisit_OnlyActive(t *testing.T) {
	svc := NewService(newMockRepo())

	v, err := svc.Record(context.Background(), uuid.New(), validInput())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Complete(context.Background(), v.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Cancel(context.Background(), v.ID); !errs.IsValidation(err) {
		t.Fatalf("expected validation error cancelling a completed visit, got %v", err)
	}
}

func TestListVisits_FilterByDoctor(t *testing.T) {
	svc := NewService(newMockRepo())
	hospitalID := uuid.New()
	doctorID := uuid.New()

	in := validInput()
	in.DoctorID = doctorID
	if _, err := svc.Record(context.Background(), hospitalID, in); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Record(context.Background(), hospitalID, validInput()); err != nil {
		t.Fatal(err)
	}

	visits, total, err := svc.List(context.Background(), hospitalID, ListFilter{DoctorID: &doctorID}, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(visits) != 1 {
		t.Fatalf("expected one visit for the doctor, got %d", len(visits))
	}
}
