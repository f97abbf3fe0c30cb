package patient

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/pkg/errs"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok || p.DeletedAt != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := m.patients[id]; ok {
		now := time.Now()
		p.DeletedAt = &now
	}
	return nil
}

func (m *mockRepo) List(_ context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		if p.HospitalID == hospitalID && p.DeletedAt == nil {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, hospitalID uuid.UUID, query string, limit, offset int) ([]*Patient, int, error) {
	q := strings.ToLower(query)
	var result []*Patient
	for _, p := range m.patients {
		if p.HospitalID != hospitalID || p.DeletedAt != nil {
			continue
		}
		contact := ""
		if p.ContactNumber != nil {
			contact = *p.ContactNumber
		}
		if strings.Contains(strings.ToLower(p.PatientNumber), q) ||
			strings.Contains(strings.ToLower(contact), q) {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func TestRegisterPatient_AssignsNumber(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{HospitalID: uuid.New()}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(p.PatientNumber, "P") {
		t.Errorf("expected generated patient number, got %q", p.PatientNumber)
	}
}

func TestRegisterPatient_NumbersDiffer(t *testing.T) {
	svc := NewService(newMockRepo())
	hospitalID := uuid.New()

	a := &Patient{HospitalID: hospitalID}
	b := &Patient{HospitalID: hospitalID}
	if err := svc.Register(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if err := svc.Register(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	if a.PatientNumber == b.PatientNumber {
		t.Errorf("patient numbers must be unique, both %q", a.PatientNumber)
	}
}

func TestRegisterPatient_RejectsBadGender(t *testing.T) {
	svc := NewService(newMockRepo())

	g := "unspecified"
	err := svc.Register(context.Background(), &Patient{HospitalID: uuid.New(), Gender: &g})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSearchPatients_MatchesContactNumber(t *testing.T) {
	svc := NewService(newMockRepo())
	hospitalID := uuid.New()

	contact := "555-0142"
	if err := svc.Register(context.Background(), &Patient{HospitalID: hospitalID, ContactNumber: &contact}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Register(context.Background(), &Patient{HospitalID: hospitalID}); err != nil {
		t.Fatal(err)
	}

	found, total, err := svc.Search(context.Background(), hospitalID, "0142", 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(found) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(found))
	}
}

func TestDeletedPatientExcluded(t *testing.T) {
	svc := NewService(newMockRepo())
	hospitalID := uuid.New()

	p := &Patient{HospitalID: hospitalID}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatal(err)
	}
	patients, _, _ := svc.List(context.Background(), hospitalID, 20, 0)
	if len(patients) != 0 {
		t.Error("soft-deleted patient must not appear in lists")
	}
	if _, err := svc.Get(context.Background(), p.ID); err == nil {
		t.Error("soft-deleted patient must not be readable")
	}
}
