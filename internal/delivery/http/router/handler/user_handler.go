package handler

import (
	"log/slog"
	"net/http"

	"stencil/internal/delivery/http/response"
	"stencil/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerUserRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	ContactNo  string `json:"contact_no" validate:"omitempty,e164"`
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Address    string `json:"address" validate:"max=255"`
	City       string `json:"city" validate:"max=100"`
	State      string `json:"state" validate:"max=100"`
	Country    string `json:"country" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
}

func (r registerUserRequest) toInput() *usecase.RegisterUserInput {
	return &usecase.RegisterUserInput{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		ContactNo:  r.ContactNo,
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		Address:    r.Address,
		City:       r.City,
		State:      r.State,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
}

type updateUserRequest struct {
	FirstName        *string `json:"first_name" validate:"omitempty,max=100"`
	LastName         *string `json:"last_name" validate:"omitempty,max=100"`
	ContactNo        *string `json:"contact_no" validate:"omitempty,e164"`
	Address          *string `json:"address" validate:"omitempty,max=255"`
	City             *string `json:"city" validate:"omitempty,max=100"`
	State            *string `json:"state" validate:"omitempty,max=100"`
	Country          *string `json:"country" validate:"omitempty,max=100"`
	PostalCode       *string `json:"postal_code" validate:"omitempty,max=20"`
	ProfileImagePath *string `json:"profile_image_path" validate:"omitempty,max=255"`
}

func (r updateUserRequest) toInput() *usecase.UpdateUserInput {
	return &usecase.UpdateUserInput{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		ContactNo:        r.ContactNo,
		Address:          r.Address,
		City:             r.City,
		State:            r.State,
		Country:          r.Country,
		PostalCode:       r.PostalCode,
		ProfileImagePath: r.ProfileImagePath,
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toUserView(user), "User registered successfully")
}

// GetProfile returns the authenticated caller's own account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	user, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile retrieved successfully")
}

// GetUser returns a single user by id.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user id")
	}

	user, err := h.uc.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "User retrieved successfully")
}

// ListUsers returns a page of users with optional search and ordering.
func (h *UserHandler) ListUsers(c echo.Context) error {
	var query listQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list parameters")
	}
	if err := c.Validate(&query); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.uc.ListUsers(c.Request().Context(), query.toListInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPageView(page, toUserViews), "Users retrieved successfully")
}

// UpdateProfile applies a partial update to the caller's own account.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile updated successfully")
}

// ChangePassword changes the caller's password after verifying the current one.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}
	if err := h.uc.ChangePassword(c.Request().Context(), userID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// DeleteAccount removes the caller's own account.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted successfully")
}
