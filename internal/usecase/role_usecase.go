package usecase

import (
	"context"

	"stencil/internal/domain/entity"
	"stencil/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateRoleInput defines the data required to create a new role.
type CreateRoleInput struct {
	RoleName        string
	RoleDescription string
}

// UpdateRoleInput defines a partial role update. Nil fields are left untouched.
type UpdateRoleInput struct {
	RoleName        *string
	RoleDescription *string
}

// ToChanges converts the input to a column change-set holding only the
// fields that were provided.
func (in UpdateRoleInput) ToChanges() map[string]any {
	changes := make(map[string]any)
	if in.RoleName != nil {
		changes["role_name"] = *in.RoleName
	}
	if in.RoleDescription != nil {
		changes["role_description"] = *in.RoleDescription
	}

	return changes
}

// BulkUpdateRoleInput pairs one partial update with the id of the role it
// applies to.
type BulkUpdateRoleInput struct {
	ID     uuid.UUID
	Update UpdateRoleInput
}

// RoleUsecase defines the interface for role-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type RoleUsecase interface {
	CreateRole(ctx context.Context, input *CreateRoleInput) (*entity.Role, error)
	CreateRoles(ctx context.Context, inputs []*CreateRoleInput) ([]*entity.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	GetRoles(ctx context.Context, ids []uuid.UUID) ([]*entity.Role, error)
	GetRoleByName(ctx context.Context, name string) (*entity.Role, error)
	ListRoles(ctx context.Context, input ListInput) (*repository.Page[*entity.Role], error)
	UpdateRole(ctx context.Context, id uuid.UUID, input *UpdateRoleInput) (*entity.Role, error)
	UpdateRoles(ctx context.Context, inputs []*BulkUpdateRoleInput) ([]*entity.Role, error)
	DeleteRole(ctx context.Context, id uuid.UUID) error
	DeleteRoles(ctx context.Context, ids []uuid.UUID) error
}
