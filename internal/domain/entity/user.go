// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. Email and Username are unique,
// case-normalized to lowercase at the input boundary.
type User struct {
	ID               uuid.UUID // Unique identifier assigned at creation, immutable thereafter.
	FirstName        string    // The user's given name.
	LastName         string    // The user's family name.
	ContactNo        string    // Optional phone number in E.164 format; required for the SMS verification flow.
	Username         string    // Unique login handle.
	Email            string    // Unique primary contact email, also usable as a login identifier.
	PasswordHash     string    // The bcrypt hash of the password. Never serialized to clients.
	Address          string    // Optional street address.
	City             string    // Optional city.
	State            string    // Optional state or province.
	Country          string    // Optional country.
	PostalCode       string    // Optional postal code.
	ProfileImagePath string    // Optional path to the user's profile image.
	IsActive         bool      // Gates all authenticated operations; inactive accounts are rejected with 403.
	CreatedAt        time.Time // Timestamp of when this account was created.
	UpdatedAt        time.Time // Timestamp of the last modification to this account.
}

// FullName returns the display name used in outbound email and SMS bodies.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
