package ports

import (
	"context"

	"github.com/offcampus/housing-api/internal/core/domain"
)

// PropertyRepository defines persistence operations for the properties
// collection. Every lookup except FindByID filters is_active=true; the
// explicit by-id fetch deliberately includes soft-deleted records so that a
// student's bookmarks keep resolving after a listing is taken down.
type PropertyRepository interface {
	// Insert persists a new listing and returns the stored record with its
	// generated id.
	Insert(ctx context.Context, property *domain.Property) (*domain.Property, error)

	// FindActiveByName retrieves an active listing by case-folded name.
	FindActiveByName(ctx context.Context, name string) (*domain.Property, error)

	// FindByID retrieves a listing by id, active or not.
	FindByID(ctx context.Context, id string) (*domain.Property, error)

	// ListActive returns every active listing in storage order.
	ListActive(ctx context.Context) ([]*domain.Property, error)

	// Update overwrites all mutable fields of the listing with the given
	// id. Returns domain.ErrNoChange when the write matched but modified
	// nothing.
	Update(ctx context.Context, property *domain.Property) error

	// Deactivate soft-deletes the active listing with the given name.
	Deactivate(ctx context.Context, name string) error

	// SetRentedOut sets the rental status flag on the listing.
	SetRentedOut(ctx context.Context, id string, rentedOut bool) error
}
