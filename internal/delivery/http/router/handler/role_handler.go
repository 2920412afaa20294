package handler

import (
	"log/slog"
	"net/http"

	"stencil/internal/delivery/http/response"
	"stencil/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RoleHandler holds dependencies for role-related handlers.
type RoleHandler struct {
	uc     usecase.RoleUsecase
	logger *slog.Logger
}

// NewRoleHandler is the constructor for RoleHandler, injected by Fx.
func NewRoleHandler(uc usecase.RoleUsecase, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{
		uc:     uc,
		logger: logger,
	}
}

type createRoleRequest struct {
	RoleName        string `json:"role_name" validate:"required,max=100"`
	RoleDescription string `json:"role_description" validate:"max=255"`
}

func (r createRoleRequest) toInput() *usecase.CreateRoleInput {
	return &usecase.CreateRoleInput{
		RoleName:        r.RoleName,
		RoleDescription: r.RoleDescription,
	}
}

type updateRoleRequest struct {
	RoleName        *string `json:"role_name" validate:"omitempty,max=100"`
	RoleDescription *string `json:"role_description" validate:"omitempty,max=255"`
}

func (r updateRoleRequest) toInput() *usecase.UpdateRoleInput {
	return &usecase.UpdateRoleInput{
		RoleName:        r.RoleName,
		RoleDescription: r.RoleDescription,
	}
}

type bulkUpdateRoleRequest struct {
	ID     string            `json:"id" validate:"required,uuid"`
	Update updateRoleRequest `json:"update"`
}

// CreateRole handles the creation of a single role.
func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	role, err := h.uc.CreateRole(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toRoleView(role), "Role created successfully")
}

// CreateRoles handles the creation of multiple roles in one transaction.
func (h *RoleHandler) CreateRoles(c echo.Context) error {
	var reqs []createRoleRequest
	if err := c.Bind(&reqs); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if len(reqs) == 0 {
		return response.BadRequest(c, "INVALID_INPUT", "At least one role is required")
	}

	inputs := make([]*usecase.CreateRoleInput, 0, len(reqs))
	for _, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return errors.WithStack(err)
		}
		inputs = append(inputs, req.toInput())
	}

	roles, err := h.uc.CreateRoles(c.Request().Context(), inputs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toRoleViews(roles), "Roles created successfully")
}

// GetRole returns a single role by id.
func (h *RoleHandler) GetRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid role id")
	}

	role, err := h.uc.GetRole(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRoleView(role), "Role retrieved successfully")
}

// GetRoles returns the roles matching the given ids.
func (h *RoleHandler) GetRoles(c echo.Context) error {
	var req idList
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid id list")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	roles, err := h.uc.GetRoles(c.Request().Context(), req.IDs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRoleViews(roles), "Roles retrieved successfully")
}

// GetRoleByName returns a single role by its unique name.
func (h *RoleHandler) GetRoleByName(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Role name is required")
	}

	role, err := h.uc.GetRoleByName(c.Request().Context(), name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRoleView(role), "Role retrieved successfully")
}

// ListRoles returns a page of roles with optional search and ordering.
func (h *RoleHandler) ListRoles(c echo.Context) error {
	var query listQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list parameters")
	}
	if err := c.Validate(&query); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.uc.ListRoles(c.Request().Context(), query.toListInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPageView(page, toRoleViews), "Roles retrieved successfully")
}

// UpdateRole applies a partial update to a single role.
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid role id")
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	role, err := h.uc.UpdateRole(c.Request().Context(), id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRoleView(role), "Role updated successfully")
}

// UpdateRoles applies partial updates to multiple roles, each paired with
// its own id. Unknown ids are skipped.
func (h *RoleHandler) UpdateRoles(c echo.Context) error {
	var reqs []bulkUpdateRoleRequest
	if err := c.Bind(&reqs); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if len(reqs) == 0 {
		return response.BadRequest(c, "INVALID_INPUT", "At least one update is required")
	}

	inputs := make([]*usecase.BulkUpdateRoleInput, 0, len(reqs))
	for _, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return errors.WithStack(err)
		}
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid role id")
		}
		inputs = append(inputs, &usecase.BulkUpdateRoleInput{
			ID:     id,
			Update: *req.Update.toInput(),
		})
	}

	roles, err := h.uc.UpdateRoles(c.Request().Context(), inputs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRoleViews(roles), "Roles updated successfully")
}

// DeleteRole removes a single role by id.
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid role id")
	}

	if err := h.uc.DeleteRole(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Role deleted successfully")
}

// DeleteRoles removes the roles matching the given ids. Missing ids are
// ignored.
func (h *RoleHandler) DeleteRoles(c echo.Context) error {
	var req idList
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid id list")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteRoles(c.Request().Context(), req.IDs); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Roles deleted successfully")
}
