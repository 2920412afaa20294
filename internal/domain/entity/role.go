// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is a named permission group that can be assigned to users.
type Role struct {
	ID              uuid.UUID
	RoleName        string // Unique role name, e.g. "admin" or "editor".
	RoleDescription string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
