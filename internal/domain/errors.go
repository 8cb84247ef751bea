package domain

import "errors"

var (
	// Validation errors. These are resolved at the boundary and never
	// reach the retry protocol.
	ErrEmptyName       = errors.New("entry name cannot be empty")
	ErrNameTooLong     = errors.New("entry name too long")
	ErrDuplicateName   = errors.New("entry name already exists")
	ErrZeroAmount      = errors.New("amount must be non-zero")
	ErrIndexOutOfRange = errors.New("entry index out of range")
	ErrShapeMismatch   = errors.New("names, values and rates must have equal length")

	// ErrConflictExhausted means the retry budget ran out without a
	// successful conditional write. Transient: the caller may re-invoke.
	ErrConflictExhausted = errors.New("state contended, retries exhausted")

	// ErrStateUnavailable means the state record could not be read at all.
	ErrStateUnavailable = errors.New("state record unavailable")

	// ErrLogWriteFailed marks a failed log append after a committed
	// subtraction. The mutation result stays success; this only decorates
	// the message.
	ErrLogWriteFailed = errors.New("transaction log write failed")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
