package ports

import (
	"context"

	"github.com/offcampus/housing-api/internal/core/domain"
)

// UserRepository defines persistence operations for the users collection.
// All email arguments are expected pre-normalized (trimmed, lowercased).
type UserRepository interface {
	// Insert persists a new user and returns the stored record.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindActiveByEmail retrieves the active user with the given email.
	// Inactive (removed) users are never returned.
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile overwrites the mutable profile fields of the active
	// user matching email.
	UpdateProfile(ctx context.Context, email, firstName, lastName, contact string) error

	// Deactivate soft-deletes the active user matching email.
	Deactivate(ctx context.Context, email string) error

	// AddBookmark / RemoveBookmark mutate the bookmarked-property set.
	// Adds are idempotent set inserts; removes pull the id wherever present.
	AddBookmark(ctx context.Context, email, propertyID string) error
	RemoveBookmark(ctx context.Context, email, propertyID string) error

	// AddOwned / RemoveOwned mutate the owned-property set analogously.
	AddOwned(ctx context.Context, email, propertyID string) error
	RemoveOwned(ctx context.Context, email, propertyID string) error
}
