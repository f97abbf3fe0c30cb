package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/hims/hims/pkg/errs"
)

type mockResolver struct {
	mu          sync.Mutex
	memberships map[uuid.UUID]*Membership // keyed by user id
	block       chan struct{}             // when set, Resolve waits until closed
}

func newMockResolver() *mockResolver {
	return &mockResolver{memberships: make(map[uuid.UUID]*Membership)}
}

func (m *mockResolver) ResolveMembership(_ context.Context, userID, hospitalID uuid.UUID) (*Membership, error) {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.memberships[userID]
	if !ok || mem.HospitalID != hospitalID {
		return nil, ErrNoMembership
	}
	return mem, nil
}

func (m *mockResolver) add(userID, hospitalID uuid.UUID, role Role) *Membership {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem := &Membership{StaffID: uuid.New(), HospitalID: hospitalID, UserID: userID, Role: role}
	m.memberships[userID] = mem
	return mem
}

func TestGate_NoAssociation(t *testing.T) {
	resolver := newMockResolver()
	gate := NewGate(resolver)

	d, err := gate.Authorize(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State != Denied {
		t.Errorf("expected denied, got %s", d.State)
	}
	if d.Reason != errs.ReasonNoAssociation {
		t.Errorf("expected no-association, got %s", d.Reason)
	}
}

func TestGate_RoleMismatchCarriesLanding(t *testing.T) {
	resolver := newMockResolver()
	gate := NewGate(resolver)
	userID, hospitalID := uuid.New(), uuid.New()
	resolver.add(userID, hospitalID, RolePharmacist)

	d, err := gate.Authorize(context.Background(), userID, hospitalID, RoleDoctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State != Denied || d.Reason != errs.ReasonRoleMismatch {
		t.Fatalf("expected role-mismatch denial, got %+v", d)
	}
	if d.Landing != "/pharmacist" {
		t.Errorf("expected landing /pharmacist, got %s", d.Landing)
	}
}

func TestGate_Allowed(t *testing.T) {
	resolver := newMockResolver()
	gate := NewGate(resolver)
	userID, hospitalID := uuid.New(), uuid.New()
	resolver.add(userID, hospitalID, RoleDoctor)

	d, err := gate.Authorize(context.Background(), userID, hospitalID, RoleDoctor, RoleReceptionist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State != Allowed {
		t.Errorf("expected allowed, got %+v", d)
	}
	if d.Membership == nil || d.Membership.Role != RoleDoctor {
		t.Errorf("expected doctor membership on decision")
	}
}

func TestGate_WrongHospitalIsNoAssociation(t *testing.T) {
	resolver := newMockResolver()
	gate := NewGate(resolver)
	userID := uuid.New()
	resolver.add(userID, uuid.New(), RoleAdmin)

	d, err := gate.Authorize(context.Background(), userID, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State != Denied || d.Reason != errs.ReasonNoAssociation {
		t.Errorf("expected no-association for foreign hospital, got %+v", d)
	}
}

func TestWatcher_StartsPending(t *testing.T) {
	w := NewWatcher(NewGate(newMockResolver()))
	if d := w.Current(); d.State != Pending {
		t.Errorf("expected pending before any event, got %s", d.State)
	}
}

func TestWatcher_SignInResolves(t *testing.T) {
	resolver := newMockResolver()
	w := NewWatcher(NewGate(resolver))
	userID, hospitalID := uuid.New(), uuid.New()
	resolver.add(userID, hospitalID, RoleReceptionist)

	w.OnSessionChange(context.Background(), SessionEvent{UserID: userID, HospitalID: hospitalID, SignedIn: true})

	d := w.Current()
	if d.State != Allowed {
		t.Fatalf("expected allowed after sign-in, got %+v", d)
	}
	if d.Membership.Role != RoleReceptionist {
		t.Errorf("expected receptionist role, got %s", d.Membership.Role)
	}
}

func TestWatcher_SignOutTearsDown(t *testing.T) {
	resolver := newMockResolver()
	w := NewWatcher(NewGate(resolver))
	userID, hospitalID := uuid.New(), uuid.New()
	resolver.add(userID, hospitalID, RoleDoctor)

	w.OnSessionChange(context.Background(), SessionEvent{UserID: userID, HospitalID: hospitalID, SignedIn: true})
	w.OnSessionChange(context.Background(), SessionEvent{SignedIn: false})

	d := w.Current()
	if d.State != Denied || d.Reason != errs.ReasonNoAssociation {
		t.Errorf("expected denied after sign-out, got %+v", d)
	}
}

func TestWatcher_StaleResolutionDropped(t *testing.T) {
	resolver := newMockResolver()
	w := NewWatcher(NewGate(resolver))
	userID, hospitalID := uuid.New(), uuid.New()
	resolver.add(userID, hospitalID, RoleDoctor)

	w.OnSessionChange(context.Background(), SessionEvent{UserID: userID, HospitalID: hospitalID, SignedIn: true})
	if w.Current().State != Allowed {
		t.Fatal("expected allowed after initial sign-in")
	}

	// Second event blocks mid-resolution; a sign-out supersedes it.
	block := make(chan struct{})
	resolver.block = block

	done := make(chan struct{})
	go func() {
		w.OnSessionChange(context.Background(), SessionEvent{UserID: userID, HospitalID: hospitalID, SignedIn: true})
		close(done)
	}()

	for w.Current().State != Pending {
	}
	w.OnSessionChange(context.Background(), SessionEvent{SignedIn: false})

	close(block)
	<-done

	d := w.Current()
	if d.State != Denied {
		t.Errorf("stale allowed resolution must not supersede the sign-out, got %+v", d)
	}
}
