package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hims/hims/internal/platform/auth"
	"github.com/hims/hims/pkg/errs"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveMembership implements auth.MembershipResolver. A missing or
// soft-deleted membership surfaces as auth.ErrNoMembership so the gate can
// deny with no-association.
func (s *Service) ResolveMembership(ctx context.Context, userID, hospitalID uuid.UUID) (*auth.Membership, error) {
	hu, err := s.repo.GetMembershipByUser(ctx, userID, hospitalID)
	if errors.Is(err, ErrNotFound) {
		return nil, auth.ErrNoMembership
	}
	if err != nil {
		return nil, err
	}
	return &auth.Membership{
		StaffID:    hu.ID,
		HospitalID: hu.HospitalID,
		UserID:     hu.UserID,
		Role:       hu.Role,
	}, nil
}

// AddInput is the admin's staff-creation form: a user (found by email or
// created) plus a membership in the acting hospital.
type AddInput struct {
	Email      string     `json:"email"`
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	Phone      *string    `json:"phone"`
	Role       auth.Role  `json:"role"`
	EmployeeID *string    `json:"employee_id"`
	Department *string    `json:"department"`
	CreatedBy  *uuid.UUID `json:"-"`
}

func (s *Service) Add(ctx context.Context, hospitalID uuid.UUID, in AddInput) (*HospitalUser, error) {
	if in.Email == "" {
		return nil, errs.Validation("email", "is required")
	}
	if !in.Role.Valid() {
		return nil, errs.Validation("role", "must be one of admin, doctor, pharmacist, receptionist, patient")
	}

	user, err := s.repo.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, ErrNotFound) {
		user = &User{Email: in.Email, FirstName: in.FirstName, LastName: in.LastName, Phone: in.Phone}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, errs.Repository("create user", err)
		}
	} else if err != nil {
		return nil, errs.Repository("lookup user", err)
	}

	if existing, err := s.repo.GetMembershipByUser(ctx, user.ID, hospitalID); err == nil && existing != nil {
		return nil, errs.Validation("email", "already a member of this hospital")
	}

	hu := &HospitalUser{
		HospitalID: hospitalID,
		UserID:     user.ID,
		Role:       in.Role,
		EmployeeID: in.EmployeeID,
		Department: in.Department,
		CreatedBy:  in.CreatedBy,
	}
	if err := s.repo.CreateMembership(ctx, hu); err != nil {
		return nil, errs.Repository("create membership", err)
	}
	return hu, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*HospitalUser, error) {
	return s.repo.GetMembership(ctx, id)
}

func (s *Service) List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*StaffMember, int, error) {
	return s.repo.List(ctx, hospitalID, limit, offset)
}

func (s *Service) ListByRole(ctx context.Context, hospitalID uuid.UUID, role auth.Role, limit, offset int) ([]*StaffMember, int, error) {
	if !role.Valid() {
		return nil, 0, errs.Validation("role", "unknown role")
	}
	return s.repo.ListByRole(ctx, hospitalID, role, limit, offset)
}

func (s *Service) Update(ctx context.Context, hu *HospitalUser) error {
	if hu.ID == uuid.Nil {
		return errs.Validation("id", "is required")
	}
	if !hu.Role.Valid() {
		return errs.Validation("role", "unknown role")
	}
	if err := s.repo.UpdateMembership(ctx, hu); err != nil {
		return errs.Repository("update membership", err)
	}
	return nil
}

// Remove soft-deletes the membership; the user record and history are kept.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteMembership(ctx, id); err != nil {
		return errs.Repository("remove membership", err)
	}
	return nil
}
