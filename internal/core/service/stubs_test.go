package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/offcampus/housing-api/internal/core/domain"
	"github.com/offcampus/housing-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users       map[string]*domain.User // keyed by email, active and inactive
	addOwnedErr error                   // if set, AddOwned fails
	removeErr   error                   // if set, RemoveOwned fails
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.BookmarkedProperties = append([]string{}, u.BookmarkedProperties...)
	clone.OwnedProperties = append([]string{}, u.OwnedProperties...)
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	if existing, ok := r.users[user.Email]; ok && existing.IsActive {
		return nil, domain.ErrUserExists
	}
	stored := cloneUser(user)
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok || !u.IsActive {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, email, firstName, lastName, contact string) error {
	u, ok := r.users[email]
	if !ok || !u.IsActive {
		return domain.ErrUserNotFound
	}
	if u.FirstName == firstName && u.LastName == lastName && u.Contact == contact {
		return domain.ErrNoChange
	}
	u.FirstName, u.LastName, u.Contact = firstName, lastName, contact
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, email string) error {
	u, ok := r.users[email]
	if !ok || !u.IsActive {
		return domain.ErrUserNotFound
	}
	u.IsActive = false
	return nil
}

func (r *stubUserRepo) AddBookmark(_ context.Context, email, propertyID string) error {
	return r.addMembership(email, propertyID, func(u *domain.User) *[]string { return &u.BookmarkedProperties })
}

func (r *stubUserRepo) RemoveBookmark(_ context.Context, email, propertyID string) error {
	return r.removeMembership(email, propertyID, func(u *domain.User) *[]string { return &u.BookmarkedProperties })
}

func (r *stubUserRepo) AddOwned(_ context.Context, email, propertyID string) error {
	if r.addOwnedErr != nil {
		return r.addOwnedErr
	}
	return r.addMembership(email, propertyID, func(u *domain.User) *[]string { return &u.OwnedProperties })
}

func (r *stubUserRepo) RemoveOwned(_ context.Context, email, propertyID string) error {
	if r.removeErr != nil {
		return r.removeErr
	}
	return r.removeMembership(email, propertyID, func(u *domain.User) *[]string { return &u.OwnedProperties })
}

func (r *stubUserRepo) addMembership(email, propertyID string, set func(*domain.User) *[]string) error {
	u, ok := r.users[email]
	if !ok || !u.IsActive {
		return domain.ErrUserNotFound
	}
	ids := set(u)
	for _, id := range *ids {
		if id == propertyID {
			return nil // set semantics: already present
		}
	}
	*ids = append(*ids, propertyID)
	return nil
}

func (r *stubUserRepo) removeMembership(email, propertyID string, set func(*domain.User) *[]string) error {
	u, ok := r.users[email]
	if !ok || !u.IsActive {
		return domain.ErrUserNotFound
	}
	ids := set(u)
	kept := (*ids)[:0]
	found := false
	for _, id := range *ids {
		if id == propertyID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return domain.ErrNoChange
	}
	*ids = kept
	return nil
}

// seedUser stores an active account directly, bypassing registration.
func (r *stubUserRepo) seedUser(email string, userType domain.UserType) *domain.User {
	u := &domain.User{
		ID:                   fmt.Sprintf("user-%d", len(r.users)+1),
		FirstName:            "Test",
		LastName:             "User",
		Email:                email,
		Type:                 userType,
		Contact:              "2015550100",
		PasswordHash:         "$2a$12$fakefakefakefakefakefake",
		BookmarkedProperties: []string{},
		OwnedProperties:      []string{},
		IsActive:             true,
	}
	r.users[email] = u
	return u
}

// ---------------------------------------------------------------------------
// In-memory property repository
// ---------------------------------------------------------------------------

type stubPropertyRepo struct {
	byID  map[string]*domain.Property
	order []string // insertion order for ListActive
	seq   int
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{byID: make(map[string]*domain.Property)}
}

func cloneProperty(p *domain.Property) *domain.Property {
	clone := *p
	clone.Images = append([]string{}, p.Images...)
	return &clone
}

func (r *stubPropertyRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("%024x", r.seq)
}

func (r *stubPropertyRepo) Insert(_ context.Context, p *domain.Property) (*domain.Property, error) {
	stored := cloneProperty(p)
	stored.ID = r.nextID()
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneProperty(stored), nil
}

func (r *stubPropertyRepo) FindActiveByName(_ context.Context, name string) (*domain.Property, error) {
	for _, id := range r.order {
		p := r.byID[id]
		if p.IsActive && strings.EqualFold(p.Name, name) {
			return cloneProperty(p), nil
		}
	}
	return nil, domain.ErrPropertyNotFound
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return cloneProperty(p), nil
}

func (r *stubPropertyRepo) ListActive(_ context.Context) ([]*domain.Property, error) {
	var active []*domain.Property
	for _, id := range r.order {
		if p := r.byID[id]; p.IsActive {
			active = append(active, cloneProperty(p))
		}
	}
	return active, nil
}

func (r *stubPropertyRepo) Update(_ context.Context, p *domain.Property) error {
	current, ok := r.byID[p.ID]
	if !ok {
		return domain.ErrPropertyNotFound
	}
	updated := cloneProperty(p)
	updated.RentedOut = current.RentedOut
	updated.IsActive = current.IsActive
	updated.CreatedAt = current.CreatedAt

	// Mirror the real store's modified-count check: identical field sets
	// modify nothing.
	probe := cloneProperty(updated)
	probe.UpdatedAt = current.UpdatedAt
	if fmt.Sprintf("%+v", *probe) == fmt.Sprintf("%+v", *current) {
		return domain.ErrNoChange
	}
	r.byID[p.ID] = updated
	return nil
}

func (r *stubPropertyRepo) Deactivate(_ context.Context, name string) error {
	for _, id := range r.order {
		p := r.byID[id]
		if p.IsActive && strings.EqualFold(p.Name, name) {
			p.IsActive = false
			return nil
		}
	}
	return domain.ErrPropertyNotFound
}

func (r *stubPropertyRepo) SetRentedOut(_ context.Context, id string, rentedOut bool) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrPropertyNotFound
	}
	p.RentedOut = rentedOut
	return nil
}

// ---------------------------------------------------------------------------
// Notifier and interest guard stubs
// ---------------------------------------------------------------------------

type stubNotifier struct {
	confirmations []string // emails that got a confirmation
	interests     []string // "<broker>|<student>|<propertyID>"
	sendErr       error
}

func (n *stubNotifier) SendAccountConfirmation(_ context.Context, user *domain.User, _ string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.confirmations = append(n.confirmations, user.Email)
	return nil
}

func (n *stubNotifier) SendInterestNotification(_ context.Context, brokerEmail, studentEmail string, property *domain.Property) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.interests = append(n.interests, brokerEmail+"|"+studentEmail+"|"+property.ID)
	return nil
}

type stubGuard struct {
	marked map[string]bool
}

func newStubGuard() *stubGuard {
	return &stubGuard{marked: make(map[string]bool)}
}

func (g *stubGuard) RecentlyNotified(_ context.Context, studentEmail, propertyID string) (bool, error) {
	return g.marked[studentEmail+"|"+propertyID], nil
}

func (g *stubGuard) MarkNotified(_ context.Context, studentEmail, propertyID string) error {
	g.marked[studentEmail+"|"+propertyID] = true
	return nil
}

// ---------------------------------------------------------------------------
// Shared fixtures
// ---------------------------------------------------------------------------

func newTestUserService(users *stubUserRepo, props *stubPropertyRepo, notifier *stubNotifier) *UserService {
	return NewUserService(users, props, notifier, newStubGuard(), "secret", 0, discardLogger)
}

func listingInput(name, broker string) ports.PropertyInput {
	return ports.PropertyInput{
		Name:               name,
		Address:            "801 Castle Point Terrace",
		Pincode:            "07030",
		City:               "Hoboken",
		State:              "NJ",
		Type:               "apartment",
		Beds:               2,
		Bath:               1,
		Balcony:            1,
		PetFriendly:        true,
		NearbyMedical:      "CarePoint Health",
		NearbySchools:      "Stevens Institute",
		NearbyCommute:      "PATH 9th St",
		Rent:               2400,
		Brokerage:          1200,
		Deposit:            2400,
		MinimumLeasePeriod: 12,
		Images:             []string{"img/front.jpg"},
		Broker:             broker,
	}
}
