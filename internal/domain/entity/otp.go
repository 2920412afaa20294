// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OTPPurpose discriminates which verification flow an OTP record belongs to.
type OTPPurpose string

const (
	// OTPPurposeEmail marks a code issued to verify the user's email address.
	OTPPurposeEmail OTPPurpose = "email"
	// OTPPurposeSMS marks a code issued to verify the user's contact number.
	OTPPurposeSMS OTPPurpose = "sms"
	// OTPPurposePassword marks a code issued for a password reset.
	OTPPurposePassword OTPPurpose = "password"
)

// String returns the string representation of the OTPPurpose.
func (p OTPPurpose) String() string {
	return string(p)
}

// IsValid checks if the OTPPurpose is a valid value.
func (p OTPPurpose) IsValid() bool {
	switch p {
	case OTPPurposeEmail, OTPPurposeSMS, OTPPurposePassword:
		return true
	default:
		return false
	}
}

// Slug returns the purpose formatted for use in verification link paths,
// e.g. "verify-email" or "reset-password".
func (p OTPPurpose) Slug() string {
	switch p {
	case OTPPurposeEmail:
		return "verify-email"
	case OTPPurposeSMS:
		return "verify-contact-no"
	case OTPPurposePassword:
		return "reset-password"
	default:
		return string(p)
	}
}

// OTP represents a one-time verification code issued to a user for a single
// purpose. At most one record exists per (user, purpose) pair; re-requesting
// a code rotates the stored code in place.
type OTP struct {
	ID         uuid.UUID
	UserID     uuid.UUID  // Links this code to the User it was issued for.
	Purpose    OTPPurpose // Which verification flow this code belongs to.
	Code       string     // The current 6-digit code. Rotated on every request.
	Expiry     *time.Time // Wall-clock expiry, set for the SMS flow only; email/password tokens self-expire.
	IsVerified bool       // Terminal for email/sms; the password flow may always be re-entered.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expired reports whether the record carries an expiry that is in the past.
func (o *OTP) Expired(now time.Time) bool {
	return o.Expiry != nil && o.Expiry.Before(now)
}
