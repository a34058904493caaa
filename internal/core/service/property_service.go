package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/offcampus/housing-api/internal/core/domain"
	"github.com/offcampus/housing-api/internal/core/ports"
)

// PropertyService implements the listing use cases. It also holds the user
// repository: creating or removing a listing writes the owning broker's
// owned-property set, and the rental toggle checks the acting account.
type PropertyService struct {
	properties ports.PropertyRepository
	users      ports.UserRepository
	log        zerolog.Logger
}

func NewPropertyService(properties ports.PropertyRepository, users ports.UserRepository, log zerolog.Logger) *PropertyService {
	return &PropertyService{properties: properties, users: users, log: log}
}

// Create persists a new listing and adds its id to the broker's owned set.
// The two writes are not transactional: when the second leg fails the
// listing stays durable and the error surfaces as ErrMembershipSync.
func (s *PropertyService) Create(ctx context.Context, in ports.PropertyInput) (*domain.Property, error) {
	property := propertyFromInput(in)
	if err := property.Validate(); err != nil {
		return nil, err
	}

	broker, err := s.users.FindActiveByEmail(ctx, property.Broker)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: broker %s is not an active account", domain.ErrValidation, property.Broker)
		}
		return nil, err
	}
	if broker.Type != domain.TypeBroker {
		return nil, fmt.Errorf("%w: %s is not a broker account", domain.ErrValidation, property.Broker)
	}

	if _, err := s.properties.FindActiveByName(ctx, property.Name); err == nil {
		return nil, domain.ErrPropertyExists
	} else if !errors.Is(err, domain.ErrPropertyNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	property.RentedOut = false
	property.IsActive = true
	property.CreatedAt = now
	property.UpdatedAt = now

	created, err := s.properties.Insert(ctx, property)
	if err != nil {
		return nil, err
	}

	if err := s.users.AddOwned(ctx, created.Broker, created.ID); err != nil {
		s.log.Error().Err(err).
			Str("property_id", created.ID).
			Str("broker", created.Broker).
			Msg("listing created but broker owned list not updated")
		return nil, fmt.Errorf("%w: property %s: %v", domain.ErrMembershipSync, created.ID, err)
	}

	s.log.Info().Str("property_id", created.ID).Str("name", created.Name).Str("broker", created.Broker).Msg("property created")
	return created, nil
}

// Update overwrites all mutable fields of an existing active listing.
// Existence is verified before the write, so a zero-modified result is a
// true no-op and reported as ErrNoChange rather than a not-found.
func (s *PropertyService) Update(ctx context.Context, in ports.PropertyInput) (*domain.Property, error) {
	if err := domain.ValidatePropertyID(in.ID); err != nil {
		return nil, err
	}
	property := propertyFromInput(in)
	if err := property.Validate(); err != nil {
		return nil, err
	}

	current, err := s.properties.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !current.IsActive {
		return nil, domain.ErrPropertyNotFound
	}

	// Renaming must not collide with another active listing.
	if !strings.EqualFold(current.Name, property.Name) {
		if _, err := s.properties.FindActiveByName(ctx, property.Name); err == nil {
			return nil, domain.ErrPropertyExists
		} else if !errors.Is(err, domain.ErrPropertyNotFound) {
			return nil, err
		}
	}

	property.ID = in.ID
	property.UpdatedAt = time.Now().UTC()
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return s.properties.FindByID(ctx, in.ID)
}

// ListAll returns every active listing. No pagination; storage order.
func (s *PropertyService) ListAll(ctx context.Context) ([]*domain.Property, error) {
	return s.properties.ListActive(ctx)
}

// GetByID fetches a listing by id, including soft-deleted ones: an explicit
// id fetch is the one lookup that sees inactive records.
func (s *PropertyService) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if err := domain.ValidatePropertyID(id); err != nil {
		return nil, err
	}
	return s.properties.FindByID(ctx, id)
}

// GetByName fetches an active listing by case-folded name.
func (s *PropertyService) GetByName(ctx context.Context, name string) (*domain.Property, error) {
	if err := domain.RequireString("name", name); err != nil {
		return nil, err
	}
	return s.properties.FindActiveByName(ctx, name)
}

// Remove soft-deletes the listing and pulls its id from the owning broker's
// owned set. As with Create, a second-leg failure is surfaced, not hidden:
// the listing is already deactivated when ErrMembershipSync is returned.
func (s *PropertyService) Remove(ctx context.Context, name string) (*ports.RemovePropertyResult, error) {
	if err := domain.RequireString("name", name); err != nil {
		return nil, err
	}

	property, err := s.properties.FindActiveByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.properties.Deactivate(ctx, name); err != nil {
		return nil, err
	}

	if err := s.users.RemoveOwned(ctx, property.Broker, property.ID); err != nil && !errors.Is(err, domain.ErrNoChange) {
		s.log.Error().Err(err).
			Str("property_id", property.ID).
			Str("broker", property.Broker).
			Msg("listing deactivated but broker owned list not updated")
		return nil, fmt.Errorf("%w: property %s: %v", domain.ErrMembershipSync, property.ID, err)
	}

	s.log.Info().Str("property_id", property.ID).Str("name", property.Name).Msg("property removed")
	return &ports.RemovePropertyResult{PropertyID: property.ID, Broker: property.Broker}, nil
}

// ToggleRentalStatus flips the listing between rented and available. The
// acting account must be the active broker the listing names as its owner;
// the email comparison is case-insensitive.
func (s *PropertyService) ToggleRentalStatus(ctx context.Context, brokerEmail, propertyID string) (bool, error) {
	email, err := domain.NormalizeEmail(brokerEmail)
	if err != nil {
		return false, err
	}
	if err := domain.ValidatePropertyID(propertyID); err != nil {
		return false, err
	}

	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return false, err
	}
	if !property.IsActive {
		return false, domain.ErrPropertyNotFound
	}

	broker, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, domain.ErrNotOwner
		}
		return false, err
	}
	if broker.Type != domain.TypeBroker {
		return false, domain.ErrNotOwner
	}
	if !strings.EqualFold(property.Broker, email) {
		return false, domain.ErrNotOwner
	}

	rented := !property.RentedOut
	if err := s.properties.SetRentedOut(ctx, propertyID, rented); err != nil {
		return false, err
	}

	s.log.Info().Str("property_id", propertyID).Bool("rented_out", rented).Msg("rental status toggled")
	return rented, nil
}

func propertyFromInput(in ports.PropertyInput) *domain.Property {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Property{
		Name:               strings.TrimSpace(in.Name),
		Address:            in.Address,
		Pincode:            in.Pincode,
		City:               in.City,
		State:              in.State,
		Type:               strings.ToLower(strings.TrimSpace(in.Type)),
		Beds:               in.Beds,
		Bath:               in.Bath,
		Balcony:            in.Balcony,
		CentralAir:         in.CentralAir,
		PetFriendly:        in.PetFriendly,
		PartyFriendly:      in.PartyFriendly,
		Garage:             in.Garage,
		NearbyMedical:      in.NearbyMedical,
		NearbySchools:      in.NearbySchools,
		NearbyCommute:      in.NearbyCommute,
		Rent:               in.Rent,
		Brokerage:          in.Brokerage,
		Deposit:            in.Deposit,
		MinimumLeasePeriod: in.MinimumLeasePeriod,
		Images:             images,
		Broker:             strings.ToLower(strings.TrimSpace(in.Broker)),
	}
}
