package ports

import (
	"context"

	"github.com/offcampus/housing-api/internal/core/domain"
)

// PropertyInput is the DTO passed from the transport layer for listing
// creation and update. ID is required for update and ignored on create.
type PropertyInput struct {
	ID                 string
	Name               string
	Address            string
	Pincode            string
	City               string
	State              string
	Type               string
	Beds               int
	Bath               int
	Balcony            int
	CentralAir         bool
	PetFriendly        bool
	PartyFriendly      bool
	Garage             bool
	NearbyMedical      string
	NearbySchools      string
	NearbyCommute      string
	Rent               float64
	Brokerage          float64
	Deposit            float64
	MinimumLeasePeriod int
	Images             []string
	Broker             string
}

// RemovePropertyResult reports what a removal deactivated, so callers can
// see which broker's owned list was cascaded.
type RemovePropertyResult struct {
	PropertyID string
	Broker     string
}

// PropertyService defines the listing use cases.
type PropertyService interface {
	// Create validates, enforces name uniqueness among active listings,
	// persists with rented_out=false, and adds the new id to the owning
	// broker's owned-property set.
	Create(ctx context.Context, input PropertyInput) (*domain.Property, error)

	// Update overwrites all mutable fields of an existing active listing.
	Update(ctx context.Context, input PropertyInput) (*domain.Property, error)

	ListAll(ctx context.Context) ([]*domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	GetByName(ctx context.Context, name string) (*domain.Property, error)

	// Remove soft-deletes the listing and pulls its id from the owning
	// broker's owned-property set.
	Remove(ctx context.Context, name string) (*RemovePropertyResult, error)

	// ToggleRentalStatus flips the listing between rented and available.
	// Only the owning broker may call it. Reports the new rented state.
	ToggleRentalStatus(ctx context.Context, brokerEmail, propertyID string) (bool, error)
}
