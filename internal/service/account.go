package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/hrms/internal/domain"
)

// Decision actions accepted by the HR panel.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// AccountService owns the registration and approval lifecycle of a user id:
// Pending at registration, then Approved or Rejected by HR, any number of
// times. Only Approved users may log in.
type AccountService struct {
	users domain.UserRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(users domain.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// Register stores a new applicant with status Pending. Field formats are not
// validated; any string, including an empty one, is accepted.
func (s *AccountService) Register(ctx context.Context, user *domain.User) error {
	user.Status = domain.StatusPending
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUserID) {
			return err
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login checks credentials and the approval status. It returns
// ErrInvalidCredentials when no user matches both userID and password, so the
// caller cannot tell an unknown id from a wrong password.
func (s *AccountService) Login(ctx context.Context, userID, password string) (*domain.User, error) {
	user, err := s.users.GetByCredentials(ctx, userID, password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	switch user.Status {
	case domain.StatusApproved:
		return user, nil
	case domain.StatusRejected:
		return nil, domain.ErrApplicationRejected
	default:
		return nil, domain.ErrApplicationPending
	}
}

// Status returns the approval status of userID.
func (s *AccountService) Status(ctx context.Context, userID string) (domain.Status, error) {
	user, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Status, nil
}

// Decide applies an HR decision. "approve" approves; every other action
// rejects. The target is not checked for existence, so deciding on an
// unknown id changes nothing.
func (s *AccountService) Decide(ctx context.Context, userID, action string) (domain.Status, error) {
	status := domain.StatusRejected
	if action == ActionApprove {
		status = domain.StatusApproved
	}
	if err := s.users.SetStatus(ctx, userID, status); err != nil {
		return "", fmt.Errorf("set status: %w", err)
	}
	return status, nil
}
