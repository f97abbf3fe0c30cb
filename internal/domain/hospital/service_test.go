package hospital

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hims/hims/pkg/errs"
)

type mockRepo struct {
	hospitals map[uuid.UUID]*Hospital
}

func newMockRepo() *mockRepo {
	return &mockRepo{hospitals: make(map[uuid.UUID]*Hospital)}
}

func (m *mockRepo) Create(_ context.Context, h *Hospital) error {
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	h.UpdatedAt = time.Now()
	m.hospitals[h.ID] = h
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Hospital, error) {
	h, ok := m.hospitals[id]
	if !ok || h.DeletedAt != nil {
		return nil, fmt.Errorf("not found")
	}
	return h, nil
}

func (m *mockRepo) Update(_ context.Context, h *Hospital) error {
	m.hospitals[h.ID] = h
	return nil
}

func (m *mockRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if h, ok := m.hospitals[id]; ok {
		now := time.Now()
		h.DeletedAt = &now
	}
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Hospital, int, error) {
	var result []*Hospital
	for _, h := range m.hospitals {
		if h.DeletedAt == nil {
			result = append(result, h)
		}
	}
	return result, len(result), nil
}

func TestCreateHospital(t *testing.T) {
	svc := NewService(newMockRepo())

	h := &Hospital{Name: "City General"}
	if err := svc.Create(context.Background(), h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.ID == uuid.Nil {
		t.Error("expected id assigned")
	}
}

func TestCreateHospital_NameRequired(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Create(context.Background(), &Hospital{})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteHospital_ExcludedFromReads(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	h := &Hospital{Name: "City General"}
	if err := svc.Create(context.Background(), h); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), h.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(context.Background(), h.ID); err == nil {
		t.Error("soft-deleted hospital must not be readable")
	}
	hs, _, _ := svc.List(context.Background(), 20, 0)
	if len(hs) != 0 {
		t.Error("soft-deleted hospital must not appear in lists")
	}
}
