package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateUserID     = errors.New("user id already exists")
	ErrInvalidCredentials  = errors.New("invalid user id or password")
	ErrApplicationPending  = errors.New("application pending")
	ErrApplicationRejected = errors.New("application rejected")
)
