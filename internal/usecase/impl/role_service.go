// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "stencil/internal/delivery/context"
	"stencil/internal/domain/entity"
	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/domain/repository"
	"stencil/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// roleService implements the RoleUsecase interface.
type roleService struct {
	roleRepo repository.RoleRepository
	logger   *slog.Logger
}

// RoleServiceParams holds dependencies for RoleService, injected by Fx.
type RoleServiceParams struct {
	fx.In

	RoleRepo repository.RoleRepository
	Logger   *slog.Logger
}

// NewRoleService is the constructor for roleService. It receives all dependencies as interfaces.
func NewRoleService(params RoleServiceParams) usecase.RoleUsecase {
	return &roleService{
		roleRepo: params.RoleRepo,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *roleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateRole persists a single new role.
func (srv *roleService) CreateRole(ctx context.Context, input *usecase.CreateRoleInput) (*entity.Role, error) {
	role := &entity.Role{
		RoleName:        input.RoleName,
		RoleDescription: input.RoleDescription,
	}

	if err := srv.roleRepo.Create(ctx, role); err != nil {
		srv.log(ctx).Warn("Failed to create role", slog.String("roleName", input.RoleName), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create role")
	}

	srv.log(ctx).Info("Role created", slog.Any("roleID", role.ID), slog.String("roleName", role.RoleName))

	return role, nil
}

// CreateRoles persists a batch of roles; the whole batch commits or fails.
func (srv *roleService) CreateRoles(ctx context.Context, inputs []*usecase.CreateRoleInput) ([]*entity.Role, error) {
	roles := make([]*entity.Role, 0, len(inputs))
	for _, input := range inputs {
		roles = append(roles, &entity.Role{
			RoleName:        input.RoleName,
			RoleDescription: input.RoleDescription,
		})
	}

	if err := srv.roleRepo.CreateBulk(ctx, roles); err != nil {
		srv.log(ctx).Warn("Failed to create roles", slog.Int("count", len(inputs)), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create roles")
	}

	return roles, nil
}

// GetRole retrieves a single role by id.
func (srv *roleService) GetRole(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	role, err := srv.roleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRoleNotFound, "role lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find role by id")
	}

	return role, nil
}

// GetRoles retrieves the subset of the given ids that exist.
func (srv *roleService) GetRoles(ctx context.Context, ids []uuid.UUID) ([]*entity.Role, error) {
	roles, err := srv.roleRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find roles by ids")
	}

	return roles, nil
}

// GetRoleByName retrieves a single role by its unique name.
func (srv *roleService) GetRoleByName(ctx context.Context, name string) (*entity.Role, error) {
	role, err := srv.roleRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRoleNotFound, "role lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find role by name")
	}

	return role, nil
}

// ListRoles returns one page of roles with pagination metadata.
func (srv *roleService) ListRoles(ctx context.Context, input usecase.ListInput) (*repository.Page[*entity.Role], error) {
	page, err := srv.roleRepo.List(ctx, input.ToPageQuery())
	if err != nil {
		if errors.Is(err, repository.ErrUnknownColumn) {
			return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
		}

		return nil, errors.Wrap(err, "failed to list roles")
	}

	return page, nil
}

// UpdateRole applies a partial update to one role.
func (srv *roleService) UpdateRole(ctx context.Context, id uuid.UUID, input *usecase.UpdateRoleInput) (*entity.Role, error) {
	role, err := srv.roleRepo.UpdateByID(ctx, id, input.ToChanges())
	if err != nil {
		srv.log(ctx).Warn("Failed to update role", slog.Any("roleID", id), slog.Any("error", err))

		if errors.Is(err, repository.ErrRoleNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRoleNotFound, "role update failed")
		}

		return nil, errors.Wrap(err, "failed to update role")
	}

	return role, nil
}

// UpdateRoles applies each partial update to its role, paired by id.
func (srv *roleService) UpdateRoles(ctx context.Context, inputs []*usecase.BulkUpdateRoleInput) ([]*entity.Role, error) {
	changes := make([]repository.BulkChange, 0, len(inputs))
	for _, input := range inputs {
		changes = append(changes, repository.BulkChange{
			ID:      input.ID,
			Changes: input.Update.ToChanges(),
		})
	}

	roles, err := srv.roleRepo.UpdateBulk(ctx, changes)
	if err != nil {
		srv.log(ctx).Warn("Failed to update roles", slog.Int("count", len(inputs)), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update roles")
	}

	return roles, nil
}

// DeleteRole removes a single role.
func (srv *roleService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	if err := srv.roleRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return errors.Wrap(domainerrors.ErrRoleNotFound, "role delete failed")
		}

		return errors.Wrap(err, "failed to delete role")
	}

	srv.log(ctx).Info("Role deleted", slog.Any("roleID", id))

	return nil
}

// DeleteRoles removes all roles whose ids exist.
func (srv *roleService) DeleteRoles(ctx context.Context, ids []uuid.UUID) error {
	if err := srv.roleRepo.DeleteBulk(ctx, ids); err != nil {
		return errors.Wrap(err, "failed to delete roles")
	}

	return nil
}
