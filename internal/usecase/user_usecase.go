package usecase

import (
	"context"

	"stencil/internal/domain/entity"
	"stencil/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	FirstName  string
	LastName   string
	ContactNo  string
	Username   string
	Email      string
	Password   string
	Address    string
	City       string
	State      string
	Country    string
	PostalCode string
}

// UpdateUserInput defines a partial profile update. Nil fields are left untouched.
type UpdateUserInput struct {
	FirstName        *string
	LastName         *string
	ContactNo        *string
	Address          *string
	City             *string
	State            *string
	Country          *string
	PostalCode       *string
	ProfileImagePath *string
	IsActive         *bool
}

// ToChanges converts the input to a column change-set holding only the
// fields that were provided.
func (in UpdateUserInput) ToChanges() map[string]any {
	changes := make(map[string]any)
	if in.FirstName != nil {
		changes["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		changes["last_name"] = *in.LastName
	}
	if in.ContactNo != nil {
		changes["contact_no"] = *in.ContactNo
	}
	if in.Address != nil {
		changes["address"] = *in.Address
	}
	if in.City != nil {
		changes["city"] = *in.City
	}
	if in.State != nil {
		changes["state"] = *in.State
	}
	if in.Country != nil {
		changes["country"] = *in.Country
	}
	if in.PostalCode != nil {
		changes["postal_code"] = *in.PostalCode
	}
	if in.ProfileImagePath != nil {
		changes["profile_image_path"] = *in.ProfileImagePath
	}
	if in.IsActive != nil {
		changes["is_active"] = *in.IsActive
	}

	return changes
}

// ChangePasswordInput defines the data required for an authenticated
// password change.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// UserUsecase defines the interface for user-related business operations.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ListUsers(ctx context.Context, input ListInput) (*repository.Page[*entity.User], error)
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, input *ChangePasswordInput) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
