package handler

import (
	"time"

	"stencil/internal/domain/entity"
	"stencil/internal/domain/repository"

	"github.com/google/uuid"
)

// roleView is the wire representation of a role.
type roleView struct {
	ID              uuid.UUID `json:"id"`
	RoleName        string    `json:"role_name"`
	RoleDescription string    `json:"role_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// userView is the wire representation of a user. The password hash is never
// part of it.
type userView struct {
	ID               uuid.UUID `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	ContactNo        string    `json:"contact_no"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Country          string    `json:"country"`
	PostalCode       string    `json:"postal_code"`
	ProfileImagePath string    `json:"profile_image_path"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// pageView wraps a page of records with its pagination metadata.
type pageView[T any] struct {
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	Records      []T   `json:"records"`
}

func toRoleView(role *entity.Role) roleView {
	return roleView{
		ID:              role.ID,
		RoleName:        role.RoleName,
		RoleDescription: role.RoleDescription,
		CreatedAt:       role.CreatedAt,
		UpdatedAt:       role.UpdatedAt,
	}
}

func toRoleViews(roles []*entity.Role) []roleView {
	views := make([]roleView, 0, len(roles))
	for _, role := range roles {
		views = append(views, toRoleView(role))
	}

	return views
}

func toUserView(user *entity.User) userView {
	return userView{
		ID:               user.ID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		ContactNo:        user.ContactNo,
		Username:         user.Username,
		Email:            user.Email,
		Address:          user.Address,
		City:             user.City,
		State:            user.State,
		Country:          user.Country,
		PostalCode:       user.PostalCode,
		ProfileImagePath: user.ProfileImagePath,
		IsActive:         user.IsActive,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

func toUserViews(users []*entity.User) []userView {
	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return views
}

func toPageView[T any, V any](page *repository.Page[T], convert func([]T) []V) pageView[V] {
	return pageView[V]{
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   page.TotalPages,
		TotalRecords: page.TotalRecords,
		Records:      convert(page.Records),
	}
}
