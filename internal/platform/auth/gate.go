package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/hims/hims/pkg/errs"
)

// ErrNoMembership is returned by resolvers when the principal has no active
// HospitalUser row in the target hospital.
var ErrNoMembership = errors.New("no hospital membership")

// Membership is the resolved join of a principal to a hospital. It is the
// unit of authorization for every scoped operation.
type Membership struct {
	StaffID    uuid.UUID
	HospitalID uuid.UUID
	UserID     uuid.UUID
	Role       Role
}

// MembershipResolver looks up the active membership for a user within a
// hospital, excluding soft-deleted rows. The staff repository implements it.
type MembershipResolver interface {
	ResolveMembership(ctx context.Context, userID, hospitalID uuid.UUID) (*Membership, error)
}

// DecisionState is the outcome of an authorization check. Pending means a
// resolution is still in flight and callers must withhold allow/deny — this
// is what prevents a flash of unauthorized content.
type DecisionState string

const (
	Pending DecisionState = "pending"
	Allowed DecisionState = "allowed"
	Denied  DecisionState = "denied"
)

// Decision is the result of authorizing a principal against a hospital scope.
type Decision struct {
	State      DecisionState
	Reason     string // no-association | role-mismatch when denied
	Landing    string // resolved role's landing path on role-mismatch
	Membership *Membership
}

// Gate maps an authenticated principal to a hospital-scoped role and decides
// whether a requested action is permitted. Pure decision; resolution is the
// only read and nothing is written.
type Gate struct {
	resolver MembershipResolver
}

func NewGate(resolver MembershipResolver) *Gate {
	return &Gate{resolver: resolver}
}

// Authorize resolves the principal's membership in the hospital and checks it
// against requiredRoles. An empty requiredRoles list admits any member.
func (g *Gate) Authorize(ctx context.Context, userID, hospitalID uuid.UUID, requiredRoles ...Role) (Decision, error) {
	m, err := g.resolver.ResolveMembership(ctx, userID, hospitalID)
	if errors.Is(err, ErrNoMembership) {
		return Decision{State: Denied, Reason: errs.ReasonNoAssociation}, nil
	}
	if err != nil {
		return Decision{}, errs.Repository("resolve membership", err)
	}

	if len(requiredRoles) > 0 {
		allowed := false
		for _, r := range requiredRoles {
			if m.Role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			return Decision{
				State:      Denied,
				Reason:     errs.ReasonRoleMismatch,
				Landing:    m.Role.Landing(),
				Membership: m,
			}, nil
		}
	}

	return Decision{State: Allowed, Membership: m}, nil
}

// SessionEvent is an identity-change notification from the session provider:
// sign-in, sign-out, or token refresh.
type SessionEvent struct {
	UserID     uuid.UUID
	HospitalID uuid.UUID
	SignedIn   bool
}

// Watcher tracks the gate decision for the current session. Every identity
// change triggers a re-resolution; overlapping resolutions are coalesced with
// a generation counter so only the latest event's result becomes visible.
type Watcher struct {
	gate *Gate

	mu      sync.RWMutex
	gen     uint64
	current Decision
}

func NewWatcher(gate *Gate) *Watcher {
	return &Watcher{gate: gate, current: Decision{State: Pending}}
}

// Current returns the latest visible decision. While a resolution is in
// flight it reports Pending.
func (w *Watcher) Current() Decision {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnSessionChange re-resolves the membership for the event's identity. A
// sign-out tears the scope down immediately without a repository read.
func (w *Watcher) OnSessionChange(ctx context.Context, ev SessionEvent) {
	w.mu.Lock()
	w.gen++
	gen := w.gen
	if !ev.SignedIn {
		w.current = Decision{State: Denied, Reason: errs.ReasonNoAssociation}
		w.mu.Unlock()
		return
	}
	w.current = Decision{State: Pending}
	w.mu.Unlock()

	d, err := w.gate.Authorize(ctx, ev.UserID, ev.HospitalID)
	if err != nil {
		d = Decision{State: Denied, Reason: errs.ReasonNoAssociation}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		// A newer event superseded this resolution; drop it.
		return
	}
	w.current = d
}
