package domain

import "time"

// UserType distinguishes the two kinds of marketplace accounts.
type UserType string

const (
	TypeStudent UserType = "student"
	TypeBroker  UserType = "broker"
)

// User models a marketplace account. Students bookmark listings; brokers own
// them. Both membership sets are de-duplicated lists of property ids.
// Removal is a soft delete: the record stays, IsActive flips to false, and the
// email becomes reusable by a new registration.
type User struct {
	ID                   string    `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Email                string    `json:"email"` // stored lowercase, login key
	Type                 UserType  `json:"user_type"`
	Contact              string    `json:"contact"`
	PasswordHash         string    `json:"-"`
	BookmarkedProperties []string  `json:"bookmarked_properties"`
	OwnedProperties      []string  `json:"owned_properties"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
