package handler

import (
	"log/slog"
	"net/http"

	"stencil/internal/delivery/http/response"
	"stencil/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OTPHandler holds dependencies for the one-time-code verification handlers.
type OTPHandler struct {
	uc     usecase.OTPUsecase
	logger *slog.Logger
}

// NewOTPHandler is the constructor for OTPHandler, injected by Fx.
func NewOTPHandler(uc usecase.OTPUsecase, logger *slog.Logger) *OTPHandler {
	return &OTPHandler{
		uc:     uc,
		logger: logger,
	}
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type requestContactRequest struct {
	ContactNo string `json:"contact_no" validate:"required,e164"`
}

type verifyContactRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type sessionView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RequestEmailVerification schedules a verification email for the account.
func (h *OTPHandler) RequestEmailVerification(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RequestEmailVerification(c.Request().Context(), &usecase.RequestEmailVerificationInput{
		Email: req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, output.Message)
}

// VerifyEmail consumes an emailed verification token and issues session tokens.
func (h *OTPHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.VerifyEmail(c.Request().Context(), &usecase.VerifyEmailInput{Token: req.Token})
	if err != nil {
		return errors.WithStack(err)
	}

	view := sessionView{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}

	return response.Success(c, http.StatusOK, view, "Email verified successfully")
}

// RequestContactVerification schedules an SMS code for the caller's stored
// contact number.
func (h *OTPHandler) RequestContactVerification(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req requestContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RequestContactVerification(c.Request().Context(), &usecase.RequestContactVerificationInput{
		UserID:    userID,
		ContactNo: req.ContactNo,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, output.Message)
}

// VerifyContact consumes an SMS code for the caller's contact number.
func (h *OTPHandler) VerifyContact(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req verifyContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid code input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.VerifyContact(c.Request().Context(), &usecase.VerifyContactInput{
		UserID: userID,
		Code:   req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, output.Message)
}

// RequestPasswordReset schedules a password reset email for the account.
func (h *OTPHandler) RequestPasswordReset(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RequestPasswordReset(c.Request().Context(), &usecase.RequestPasswordResetInput{
		Email: req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, output.Message)
}

// ResetPassword consumes a reset token, stores the new password and issues
// session tokens.
func (h *OTPHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	view := sessionView{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}

	return response.Success(c, http.StatusOK, view, "Password reset successfully")
}
