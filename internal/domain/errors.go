package domain

import (
	"errors"
	"fmt"
)

// Error classes. Concrete sentinels wrap one of these, so callers can match
// either the exact condition or the whole class with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrSession        = errors.New("session error")
	ErrStorage        = errors.New("storage error")
)

// Validation errors
var (
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be positive with at most two decimal places", ErrValidation)
	ErrInsufficientFunds   = fmt.Errorf("%w: insufficient funds", ErrValidation)
	ErrInvalidBudgetLimit  = fmt.Errorf("%w: budget limit must be positive with at most two decimal places", ErrValidation)
	ErrInvalidCategoryType = fmt.Errorf("%w: unknown category type", ErrValidation)
	ErrCategoryNameEmpty   = fmt.Errorf("%w: category name is required", ErrValidation)
	ErrInvalidLogin        = fmt.Errorf("%w: login does not satisfy the login policy", ErrValidation)
	ErrInvalidPassword     = fmt.Errorf("%w: password does not satisfy the password policy", ErrValidation)
	ErrLoginTaken          = fmt.Errorf("%w: login is already registered", ErrValidation)
)

// Authentication errors
var (
	ErrUnknownLogin  = fmt.Errorf("%w: unknown login", ErrAuthentication)
	ErrWrongPassword = fmt.Errorf("%w: wrong password", ErrAuthentication)
	ErrUnknownUser   = fmt.Errorf("%w: user not found", ErrAuthentication)
)

// Session errors
var (
	ErrNoActiveSession = fmt.Errorf("%w: no active session", ErrSession)
)

// Lookup outcomes. Repositories return these for a missing file; they are not
// storage failures and carry no error class of their own.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrWalletNotFound = errors.New("wallet not found")
)

// ErrTransfersUnavailable is returned by the transfer stubs.
var ErrTransfersUnavailable = errors.New("transfers are not available")

// StorageError wraps a failed repository I/O or decode operation. Matching
// errors.Is(err, ErrStorage) identifies the class; Unwrap exposes the cause.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
