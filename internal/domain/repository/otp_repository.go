package repository

import (
	"context"

	"stencil/internal/domain/entity"

	"github.com/google/uuid"
)

// OTPRepository defines the operations for one-time-code persistence.
// A (user, purpose) pair holds at most one record, enforced by a unique
// constraint rather than read-then-insert.
type OTPRepository interface {
	// FindByUserAndPurpose retrieves the single OTP record for the pair,
	// returning ErrOTPNotFound when none exists.
	FindByUserAndPurpose(ctx context.Context, userID uuid.UUID, purpose entity.OTPPurpose) (*entity.OTP, error)

	// Upsert atomically inserts the record or, when a record for the same
	// (user, purpose) pair already exists, rotates its code, expiry and
	// verified flag in place.
	Upsert(ctx context.Context, otp *entity.OTP) error

	// MarkVerified sets is_verified on the record and clears any
	// standalone expiry.
	MarkVerified(ctx context.Context, id uuid.UUID) error
}
