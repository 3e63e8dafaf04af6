package domain

import (
	"context"
	"fmt"
)

// Status is the approval state of a registered user id. It gates login.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus converts a stored status string into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}

// User is an applicant or employee. Password is stored in clear text.
type User struct {
	ID          int64
	UserID      string
	Password    string
	FirstName   string
	MiddleName  string
	LastName    string
	FatherName  string
	DOB         string
	Address     string
	AadharNo    string // national ID number
	PanNo       string // tax ID number
	BankAccount string
	IFSC        string // bank routing code
	MICRCore    string // secondary routing code
	JoiningDate string
	Status      Status
}

// UserSummary is the row shape listed on the HR panel.
type UserSummary struct {
	UserID      string
	FirstName   string
	MiddleName  string
	LastName    string
	JoiningDate string
	Status      Status
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByCredentials(ctx context.Context, userID, password string) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
	// Update overwrites every field except UserID and Status. Updating an
	// unknown user id is a no-op.
	Update(ctx context.Context, user *User) error
	// SetStatus does not check that the user exists.
	SetStatus(ctx context.Context, userID string, status Status) error
	ListSummaries(ctx context.Context) ([]UserSummary, error)
}
