package repository

import (
	"context"

	"stencil/internal/domain/entity"

	"github.com/google/uuid"
)

// BulkChange is one element of a bulk partial update: the id of the row to
// update plus the column change-set to apply to it. Changes are paired with
// rows strictly by id; ids with no matching row are skipped and never shift
// another row's update.
type BulkChange struct {
	ID      uuid.UUID
	Changes map[string]any
}

// RoleRepository defines the standard operations for role persistence.
// The application layer depends on this interface, not the concrete implementation.
type RoleRepository interface {
	// Create persists a new role and fills in its generated id and timestamps.
	Create(ctx context.Context, role *entity.Role) error

	// CreateBulk persists the given roles in one transaction; the whole
	// batch commits or the whole batch fails.
	CreateBulk(ctx context.Context, roles []*entity.Role) error

	// FindByID retrieves a single role by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error)

	// FindByIDs retrieves the subset of the given ids that exist; missing
	// ids are silently dropped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Role, error)

	// FindByName retrieves a single role by its unique name.
	FindByName(ctx context.Context, name string) (*entity.Role, error)

	// List returns one page of roles with pagination metadata.
	List(ctx context.Context, query PageQuery) (*Page[*entity.Role], error)

	// UpdateByID applies the change-set to the role with the given id and
	// returns the updated role. Columns absent from the change-set are
	// left untouched.
	UpdateByID(ctx context.Context, id uuid.UUID, changes map[string]any) (*entity.Role, error)

	// UpdateBulk applies each change-set to its row, paired by id, and
	// commits once. Returns the updated roles that were found.
	UpdateBulk(ctx context.Context, changes []BulkChange) ([]*entity.Role, error)

	// DeleteByID removes the role with the given id, returning
	// ErrRoleNotFound when it does not exist.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteBulk removes all roles whose ids exist; missing ids are
	// silently ignored.
	DeleteBulk(ctx context.Context, ids []uuid.UUID) error
}
