package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/offcampus/housing-api/internal/core/domain"
	"github.com/offcampus/housing-api/internal/core/ports"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 12

// InterestGuard suppresses repeat interest notifications for the same
// (student, property) pair within a TTL window (Redis-backed in production).
type InterestGuard interface {
	RecentlyNotified(ctx context.Context, studentEmail, propertyID string) (bool, error)
	MarkNotified(ctx context.Context, studentEmail, propertyID string) error
}

// UserService implements the account use cases against the users collection.
// Property lookups are needed for profile hydration, so it also holds the
// property repository.
type UserService struct {
	users      ports.UserRepository
	properties ports.PropertyRepository
	notifier   ports.Notifier
	guard      InterestGuard
	jwtSecret  string
	tokenTTL   time.Duration
	log        zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	properties ports.PropertyRepository,
	notifier ports.Notifier,
	guard InterestGuard,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{
		users:      users,
		properties: properties,
		notifier:   notifier,
		guard:      guard,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		log:        log,
	}
}

// Register creates a new account. Email uniqueness is checked among active
// users only: a removed account's email is free for re-registration.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	if err := domain.ValidatePersonName("first name", in.FirstName); err != nil {
		return nil, err
	}
	if err := domain.ValidatePersonName("last name", in.LastName); err != nil {
		return nil, err
	}
	email, err := domain.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	userType, err := domain.ParseUserType(in.UserType)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateContact(in.Contact); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if userType == domain.TypeStudent && !domain.IsStudentEmail(email) {
		return nil, fmt.Errorf("%w: a student must register with a '.edu' email address", domain.ErrValidation)
	}

	if _, err := s.users.FindActiveByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		Email:                email,
		Type:                 userType,
		Contact:              in.Contact,
		PasswordHash:         string(hash),
		BookmarkedProperties: []string{},
		OwnedProperties:      []string{},
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	// Confirmation email is best effort: account usability does not
	// depend on it, so a send failure is logged and swallowed.
	if err := s.notifier.SendAccountConfirmation(ctx, created, in.Password); err != nil {
		s.log.Warn().Err(err).Str("email", created.Email).Msg("account confirmation email failed")
	}

	s.log.Info().Str("email", created.Email).Str("user_type", string(created.Type)).Msg("user registered")
	return created, nil
}

// Login authenticates against the stored hash and issues a session token.
// Unknown email and wrong password fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"email": user.Email,
		"role":  string(user.Type),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// UpdateProfile mutates name and contact of the active user matching email.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateUserInput) error {
	if err := domain.ValidatePersonName("first name", in.FirstName); err != nil {
		return err
	}
	if err := domain.ValidatePersonName("last name", in.LastName); err != nil {
		return err
	}
	email, err := domain.NormalizeEmail(in.Email)
	if err != nil {
		return err
	}
	if err := domain.ValidateContact(in.Contact); err != nil {
		return err
	}

	if _, err := s.users.FindActiveByEmail(ctx, email); err != nil {
		return err
	}
	return s.users.UpdateProfile(ctx, email, in.FirstName, in.LastName, in.Contact)
}

// Remove soft-deactivates the account. The record and its membership sets
// survive; only active-filtered lookups stop seeing it.
func (s *UserService) Remove(ctx context.Context, email string) error {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return err
	}
	if _, err := s.users.FindActiveByEmail(ctx, email); err != nil {
		return err
	}
	if err := s.users.Deactivate(ctx, email); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("user deactivated")
	return nil
}

// GetProfile returns the account hydrated with full property records for its
// membership set: bookmarks for students, owned listings for brokers. A
// membership id that no longer resolves is a data-integrity failure and
// aborts the hydration.
func (s *UserService) GetProfile(ctx context.Context, email string) (*ports.UserProfile, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	profile := &ports.UserProfile{User: user}
	if user.Type == domain.TypeStudent {
		profile.BookmarkedPropertyDetails, err = s.hydrate(ctx, user.BookmarkedProperties)
		if err != nil {
			return nil, fmt.Errorf("hydrate bookmarked properties for %s: %w", email, err)
		}
	} else {
		profile.OwnedPropertyDetails, err = s.hydrate(ctx, user.OwnedProperties)
		if err != nil {
			return nil, fmt.Errorf("hydrate owned properties for %s: %w", email, err)
		}
	}
	return profile, nil
}

// hydrate resolves property ids in their stored order. Soft-deleted listings
// still resolve (the by-id fetch includes them); only a genuinely missing
// document fails.
func (s *UserService) hydrate(ctx context.Context, ids []string) ([]*domain.Property, error) {
	properties := make([]*domain.Property, 0, len(ids))
	for _, id := range ids {
		p, err := s.properties.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", id, err)
		}
		properties = append(properties, p)
	}
	return properties, nil
}

// ToggleBookmark flips the presence of propertyID in the student's bookmark
// set: read the current set, then add or pull. Not atomic against a
// concurrent toggle of the same id by the same user, which is acceptable for
// a user-initiated, rare-collision operation.
func (s *UserService) ToggleBookmark(ctx context.Context, studentEmail, propertyID string) (bool, error) {
	email, err := domain.NormalizeEmail(studentEmail)
	if err != nil {
		return false, err
	}
	if err := domain.ValidatePropertyID(propertyID); err != nil {
		return false, err
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	if contains(user.BookmarkedProperties, propertyID) {
		if err := s.users.RemoveBookmark(ctx, email, propertyID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.users.AddBookmark(ctx, email, propertyID); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleOwnership flips the presence of propertyID in the broker's owned set
// with the same read-then-decide pattern as ToggleBookmark.
func (s *UserService) ToggleOwnership(ctx context.Context, brokerEmail, propertyID string) (bool, error) {
	email, err := domain.NormalizeEmail(brokerEmail)
	if err != nil {
		return false, err
	}
	if err := domain.ValidatePropertyID(propertyID); err != nil {
		return false, err
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	if contains(user.OwnedProperties, propertyID) {
		if err := s.users.RemoveOwned(ctx, email, propertyID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.users.AddOwned(ctx, email, propertyID); err != nil {
		return false, err
	}
	return true, nil
}

// ShowInterest emails the owning broker that a student wants to see a
// listing. The guard drops repeat interest in the same listing within its
// TTL window so brokers are not spammed.
func (s *UserService) ShowInterest(ctx context.Context, studentEmail, propertyID string) error {
	email, err := domain.NormalizeEmail(studentEmail)
	if err != nil {
		return err
	}
	if err := domain.ValidatePropertyID(propertyID); err != nil {
		return err
	}

	if _, err := s.users.FindActiveByEmail(ctx, email); err != nil {
		return err
	}
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if !property.IsActive {
		return domain.ErrPropertyNotFound
	}

	recent, err := s.guard.RecentlyNotified(ctx, email, propertyID)
	if err != nil {
		s.log.Warn().Err(err).Str("student", email).Msg("interest guard check failed, notifying anyway")
	} else if recent {
		s.log.Debug().Str("student", email).Str("property_id", propertyID).Msg("repeat interest suppressed")
		return nil
	}

	if err := s.notifier.SendInterestNotification(ctx, property.Broker, email, property); err != nil {
		return fmt.Errorf("notify broker %s: %w", property.Broker, err)
	}
	if err := s.guard.MarkNotified(ctx, email, propertyID); err != nil {
		s.log.Warn().Err(err).Str("student", email).Msg("failed to set interest guard key")
	}

	s.log.Info().Str("student", email).Str("broker", property.Broker).Str("property", property.Name).Msg("interest notification sent")
	return nil
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
