package repository

import (
	"context"

	"stencil/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// Create persists a new user and fills in its generated id and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByLogin retrieves a single user whose username or email equals
	// the given login identifier.
	FindByLogin(ctx context.Context, login string) (*entity.User, error)

	// FindByIDAndContactNo retrieves the user only when both the id and the
	// stored contact number match, which the SMS flow requires.
	FindByIDAndContactNo(ctx context.Context, id uuid.UUID, contactNo string) (*entity.User, error)

	// List returns one page of users with pagination metadata.
	List(ctx context.Context, query PageQuery) (*Page[*entity.User], error)

	// UpdateByID applies the change-set to the user with the given id and
	// returns the updated user. Columns absent from the change-set are
	// left untouched.
	UpdateByID(ctx context.Context, id uuid.UUID, changes map[string]any) (*entity.User, error)

	// UpdatePassword overwrites the stored password hash for the user.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// DeleteByID removes the user with the given id, returning
	// ErrUserNotFound when it does not exist.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
