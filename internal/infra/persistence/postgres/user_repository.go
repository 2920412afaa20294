package postgres

import (
	"context"

	"stencil/internal/domain/entity"
	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/domain/repository"
	"stencil/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db   *gorm.DB
	core *Repository[model.UserModel]
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db:   db,
		core: NewRepository[model.UserModel](db, repository.ErrUserNotFound),
	}
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	if err := repo.core.Create(ctx, userM); err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	*user = *toUserDomain(userM)

	return nil
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	userM, err := repo.core.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserDomain(userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	userM, err := repo.core.FindByField(ctx, "email", email)
	if err != nil {
		return nil, err
	}

	return toUserDomain(userM), nil
}

// FindByLogin retrieves a single user whose username or email equals the
// given login identifier. Both columns are unique so at most one row matches
// each, but the same value may hit one user's username and another's email;
// username takes precedence in that case.
func (repo *userRepository) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("username = ?", login).
		Or("email = ?", login).
		Order("CASE WHEN username = ? THEN 0 ELSE 1 END").
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by login")
	}

	return toUserDomain(&userM), nil
}

// FindByIDAndContactNo retrieves the user only when both the id and the
// stored contact number match.
func (repo *userRepository) FindByIDAndContactNo(ctx context.Context, id uuid.UUID, contactNo string) (*entity.User, error) {
	userM, err := repo.core.FindByFields(ctx, []repository.FieldMatch{
		{Column: "id", Value: id},
		{Column: "contact_no", Value: contactNo},
	})
	if err != nil {
		return nil, err
	}

	return toUserDomain(userM), nil
}

// List returns one page of users with pagination metadata.
func (repo *userRepository) List(ctx context.Context, query repository.PageQuery) (*repository.Page[*entity.User], error) {
	page, err := repo.core.List(ctx, query)
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(page.Records))
	for _, userM := range page.Records {
		users = append(users, toUserDomain(userM))
	}

	return &repository.Page[*entity.User]{
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   page.TotalPages,
		TotalRecords: page.TotalRecords,
		Records:      users,
	}, nil
}

// UpdateByID applies the change-set to the user with the given id.
func (repo *userRepository) UpdateByID(ctx context.Context, id uuid.UUID, changes map[string]any) (*entity.User, error) {
	userM, err := repo.core.UpdateByID(ctx, id, changes)
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, err
	}

	return toUserDomain(userM), nil
}

// UpdatePassword overwrites the stored password hash for the user.
func (repo *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	if res.Error != nil {
		return domainerrors.NewDatabaseExecuteError(res.Error, "failed to update password")
	}
	if res.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// DeleteByID removes the user with the given id.
func (repo *userRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return repo.core.DeleteByID(ctx, id)
}

// toUserDomain maps the persistence model back to a pure domain entity.
func toUserDomain(userM *model.UserModel) *entity.User {
	return &entity.User{
		ID:               userM.ID,
		FirstName:        userM.FirstName,
		LastName:         userM.LastName,
		ContactNo:        userM.ContactNo,
		Username:         userM.Username,
		Email:            userM.Email,
		PasswordHash:     userM.Password,
		Address:          userM.Address,
		City:             userM.City,
		State:            userM.State,
		Country:          userM.Country,
		PostalCode:       userM.PostalCode,
		ProfileImagePath: userM.ProfileImagePath,
		IsActive:         userM.IsActive,
		CreatedAt:        userM.CreatedAt,
		UpdatedAt:        userM.UpdatedAt,
	}
}

// fromUserDomain maps a domain entity to its GORM persistence model.
func fromUserDomain(user *entity.User) *model.UserModel {
	return &model.UserModel{
		Base: model.Base{
			ID:        user.ID,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		ContactNo:        user.ContactNo,
		Username:         user.Username,
		Email:            user.Email,
		Password:         user.PasswordHash,
		Address:          user.Address,
		City:             user.City,
		State:            user.State,
		Country:          user.Country,
		PostalCode:       user.PostalCode,
		ProfileImagePath: user.ProfileImagePath,
		IsActive:         user.IsActive,
	}
}
