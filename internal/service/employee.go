package service

import (
	"context"
	"fmt"

	"github.com/msomdec/hrms/internal/domain"
)

// EmployeeService reads and edits employee records.
type EmployeeService struct {
	users domain.UserRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(users domain.UserRepository) *EmployeeService {
	return &EmployeeService{users: users}
}

// Get returns the employee with the given user id or domain.ErrNotFound.
func (s *EmployeeService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByUserID(ctx, userID)
}

// Update overwrites all editable fields of the employee. Empty values clear
// the stored value; UserID selects the row and Status is left alone.
func (s *EmployeeService) Update(ctx context.Context, user *domain.User) error {
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// List returns every user's summary in registration order.
func (s *EmployeeService) List(ctx context.Context) ([]domain.UserSummary, error) {
	summaries, err := s.users.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return summaries, nil
}
