package postgres

import (
	"context"

	"stencil/internal/domain/entity"
	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/domain/repository"
	"stencil/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// roleRepository implements the domain.RoleRepository interface using GORM.
type roleRepository struct {
	core *Repository[model.RoleModel]
}

// NewRoleRepository is the constructor for roleRepository.
// It returns the repository as a domain.RoleRepository interface, adhering to dependency inversion.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{
		core: NewRepository[model.RoleModel](db, repository.ErrRoleNotFound),
	}
}

// Create persists a new role and fills in its generated id and timestamps.
func (repo *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	roleM := fromRoleDomain(role)
	if err := repo.core.Create(ctx, roleM); err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRoleAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create role")
	}

	*role = *toRoleDomain(roleM)

	return nil
}

// CreateBulk persists all roles in one transaction.
func (repo *roleRepository) CreateBulk(ctx context.Context, roles []*entity.Role) error {
	roleMs := make([]*model.RoleModel, 0, len(roles))
	for _, role := range roles {
		roleMs = append(roleMs, fromRoleDomain(role))
	}

	if err := repo.core.CreateBulk(ctx, roleMs); err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRoleAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create roles")
	}

	for i, roleM := range roleMs {
		*roles[i] = *toRoleDomain(roleM)
	}

	return nil
}

// FindByID retrieves a single role by its unique ID.
func (repo *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	roleM, err := repo.core.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toRoleDomain(roleM), nil
}

// FindByIDs retrieves the subset of the given ids that exist.
func (repo *roleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Role, error) {
	roleMs, err := repo.core.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return toRoleDomains(roleMs), nil
}

// FindByName retrieves a single role by its unique name.
func (repo *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	roleM, err := repo.core.FindByField(ctx, "role_name", name)
	if err != nil {
		return nil, err
	}

	return toRoleDomain(roleM), nil
}

// List returns one page of roles with pagination metadata.
func (repo *roleRepository) List(ctx context.Context, query repository.PageQuery) (*repository.Page[*entity.Role], error) {
	page, err := repo.core.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &repository.Page[*entity.Role]{
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   page.TotalPages,
		TotalRecords: page.TotalRecords,
		Records:      toRoleDomains(page.Records),
	}, nil
}

// UpdateByID applies the change-set to the role with the given id.
func (repo *roleRepository) UpdateByID(ctx context.Context, id uuid.UUID, changes map[string]any) (*entity.Role, error) {
	roleM, err := repo.core.UpdateByID(ctx, id, changes)
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrRoleAlreadyExists
		}

		return nil, err
	}

	return toRoleDomain(roleM), nil
}

// UpdateBulk applies each change-set to its row, paired by id.
func (repo *roleRepository) UpdateBulk(ctx context.Context, changes []repository.BulkChange) ([]*entity.Role, error) {
	roleMs, err := repo.core.UpdateBulk(ctx, changes)
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrRoleAlreadyExists
		}

		return nil, err
	}

	return toRoleDomains(roleMs), nil
}

// DeleteByID removes the role with the given id.
func (repo *roleRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return repo.core.DeleteByID(ctx, id)
}

// DeleteBulk removes all roles whose ids exist.
func (repo *roleRepository) DeleteBulk(ctx context.Context, ids []uuid.UUID) error {
	return repo.core.DeleteBulk(ctx, ids)
}

// toRoleDomain maps the persistence model back to a pure domain entity.
func toRoleDomain(roleM *model.RoleModel) *entity.Role {
	return &entity.Role{
		ID:              roleM.ID,
		RoleName:        roleM.RoleName,
		RoleDescription: roleM.RoleDescription,
		CreatedAt:       roleM.CreatedAt,
		UpdatedAt:       roleM.UpdatedAt,
	}
}

func toRoleDomains(roleMs []*model.RoleModel) []*entity.Role {
	roles := make([]*entity.Role, 0, len(roleMs))
	for _, roleM := range roleMs {
		roles = append(roles, toRoleDomain(roleM))
	}

	return roles
}

// fromRoleDomain maps a domain entity to its GORM persistence model.
func fromRoleDomain(role *entity.Role) *model.RoleModel {
	return &model.RoleModel{
		Base: model.Base{
			ID:        role.ID,
			CreatedAt: role.CreatedAt,
			UpdatedAt: role.UpdatedAt,
		},
		RoleName:        role.RoleName,
		RoleDescription: role.RoleDescription,
	}
}
