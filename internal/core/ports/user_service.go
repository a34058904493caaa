package ports

import (
	"context"

	"github.com/offcampus/housing-api/internal/core/domain"
)

// RegisterUserInput carries all data needed to create an account.
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	UserType  string
	Contact   string
	Password  string
}

// UpdateUserInput carries the mutable profile fields. Email identifies the
// account and is itself immutable.
type UpdateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Contact   string
}

// UserProfile is the hydrated account view: each membership id resolved to a
// full property record, in the order the ids were stored.
type UserProfile struct {
	User *domain.User
	// BookmarkedPropertyDetails is populated for students.
	BookmarkedPropertyDetails []*domain.Property
	// OwnedPropertyDetails is populated for brokers.
	OwnedPropertyDetails []*domain.Property
}

// UserService defines the account use cases.
type UserService interface {
	// Register validates, rejects duplicate active emails, hashes the
	// password, persists, and sends a best-effort confirmation email.
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// Login authenticates and returns a signed session token plus the
	// account record. Failure is indistinguishable between unknown email
	// and wrong password.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	UpdateProfile(ctx context.Context, input UpdateUserInput) error
	Remove(ctx context.Context, email string) error
	GetProfile(ctx context.Context, email string) (*UserProfile, error)

	// ToggleBookmark flips the student's bookmark on a property: present
	// ids are removed, absent ids added. Reports true when added.
	ToggleBookmark(ctx context.Context, studentEmail, propertyID string) (bool, error)

	// ToggleOwnership applies the same flip to a broker's owned set.
	ToggleOwnership(ctx context.Context, brokerEmail, propertyID string) (bool, error)

	// ShowInterest notifies the owning broker that a student is
	// interested in a listing. Repeat interest within the guard window is
	// silently dropped.
	ShowInterest(ctx context.Context, studentEmail, propertyID string) error
}
