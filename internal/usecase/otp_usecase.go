package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RequestEmailVerificationInput identifies the account to send a
// verification email to.
type RequestEmailVerificationInput struct {
	Email string
}

// VerifyEmailInput carries the signed verification token from the emailed link.
type VerifyEmailInput struct {
	Token string
}

// RequestContactVerificationInput identifies the account and the contact
// number to send the SMS code to. The number must match the stored one.
type RequestContactVerificationInput struct {
	UserID    uuid.UUID
	ContactNo string
}

// VerifyContactInput carries the 6-digit code received over SMS.
type VerifyContactInput struct {
	UserID uuid.UUID
	Code   string
}

// RequestPasswordResetInput identifies the account to send a password reset
// email to.
type RequestPasswordResetInput struct {
	Email string
}

// ResetPasswordInput carries the signed reset token plus the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// DispatchOutput acknowledges that a code was scheduled for delivery. The
// send itself happens in the background after the response is written.
type DispatchOutput struct {
	Message string
}

// VerifyOutput returns the session tokens issued after a successful email or
// password-reset verification.
type VerifyOutput struct {
	AccessToken  string
	RefreshToken string
}

// OTPUsecase defines the interface for one-time-code verification flows.
type OTPUsecase interface {
	// RequestEmailVerification issues a code for the email flow and
	// schedules the verification email.
	RequestEmailVerification(ctx context.Context, input *RequestEmailVerificationInput) (*DispatchOutput, error)

	// VerifyEmail consumes an emailed verification token, marks the email
	// flow verified and issues session tokens.
	VerifyEmail(ctx context.Context, input *VerifyEmailInput) (*VerifyOutput, error)

	// RequestContactVerification issues a code for the SMS flow and
	// schedules the text message.
	RequestContactVerification(ctx context.Context, input *RequestContactVerificationInput) (*DispatchOutput, error)

	// VerifyContact consumes an SMS code and marks the contact flow verified.
	VerifyContact(ctx context.Context, input *VerifyContactInput) (*DispatchOutput, error)

	// RequestPasswordReset issues a code for the password flow and
	// schedules the reset email. Unlike the other flows it may be
	// re-entered after a successful verification.
	RequestPasswordReset(ctx context.Context, input *RequestPasswordResetInput) (*DispatchOutput, error)

	// ResetPassword consumes a reset token, stores the new password hash
	// and issues session tokens.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) (*VerifyOutput, error)
}
