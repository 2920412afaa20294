package repository

import "errors"

// Sentinel errors returned by repository implementations. The application
// layer branches on these with errors.Is and maps them to domain errors.
var (
	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrRoleNotFound is returned when a role lookup matches no row.
	ErrRoleNotFound = errors.New("role not found")

	// ErrOTPNotFound is returned when no OTP record exists for a (user, purpose) pair.
	ErrOTPNotFound = errors.New("otp record not found")

	// ErrUnknownColumn is returned when an order-by or search column is not
	// registered for the target entity. This is a programming error, not user input.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrAmbiguousMatch is returned when a single-row field lookup matches
	// more than one row.
	ErrAmbiguousMatch = errors.New("field lookup matched more than one row")
)
