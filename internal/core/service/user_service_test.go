package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/offcampus/housing-api/internal/core/domain"
	"github.com/offcampus/housing-api/internal/core/ports"
)

func registerInput(email, userType string) ports.RegisterUserInput {
	return ports.RegisterUserInput{
		FirstName: "Priya",
		LastName:  "Sharma",
		Email:     email,
		UserType:  userType,
		Contact:   "2015550142",
		Password:  "Secret1",
	}
}

func TestUserService_Register_And_Login(t *testing.T) {
	users := newStubUserRepo()
	notifier := &stubNotifier{}
	svc := newTestUserService(users, newStubPropertyRepo(), notifier)

	created, err := svc.Register(context.Background(), registerInput("priya@stevens.edu", "student"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.PasswordHash == "Secret1" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if created.Type != domain.TypeStudent {
		t.Fatalf("unexpected user type %q", created.Type)
	}
	if len(created.BookmarkedProperties) != 0 || len(created.OwnedProperties) != 0 {
		t.Fatal("membership sets must start empty")
	}

	token, user, err := svc.Login(context.Background(), "Priya@Stevens.EDU", "Secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "priya@stevens.edu" {
		t.Fatalf("unexpected email %q", user.Email)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "student" {
		t.Fatalf("expected role student, got %v", claims["role"])
	}
	if claims["email"] != "priya@stevens.edu" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
}

func TestUserService_Register_SendsConfirmation(t *testing.T) {
	users := newStubUserRepo()
	notifier := &stubNotifier{}
	svc := newTestUserService(users, newStubPropertyRepo(), notifier)

	if _, err := svc.Register(context.Background(), registerInput("priya@stevens.edu", "student")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(notifier.confirmations) != 1 || notifier.confirmations[0] != "priya@stevens.edu" {
		t.Fatalf("expected one confirmation to priya@stevens.edu, got %v", notifier.confirmations)
	}
}

func TestUserService_Register_ConfirmationFailureSwallowed(t *testing.T) {
	users := newStubUserRepo()
	notifier := &stubNotifier{sendErr: errors.New("smtp down")}
	svc := newTestUserService(users, newStubPropertyRepo(), notifier)

	if _, err := svc.Register(context.Background(), registerInput("priya@stevens.edu", "student")); err != nil {
		t.Fatalf("confirmation failure must not fail registration: %v", err)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users, newStubPropertyRepo(), &stubNotifier{})

	if _, err := svc.Register(context.Background(), registerInput("b@x.com", "broker")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput("b@x.com", "broker"))
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("duplicate register must not mutate storage, got %d users", len(users.users))
	}
}

func TestUserService_Register_EmailReusableAfterRemoval(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users, newStubPropertyRepo(), &stubNotifier{})

	if _, err := svc.Register(context.Background(), registerInput("b@x.com", "broker")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Remove(context.Background(), "b@x.com"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("b@x.com", "broker")); err != nil {
		t.Fatalf("removed user's email must be reusable: %v", err)
	}
}

func TestUserService_Register_StudentRequiresEduEmail(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newStubPropertyRepo(), &stubNotifier{})

	_, err := svc.Register(context.Background(), registerInput("priya@gmail.com", "student"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for non-.edu student email, got %v", err)
	}

	// Brokers have no domain restriction.
	if _, err := svc.Register(context.Background(), registerInput("bob@gmail.com", "broker")); err != nil {
		t.Fatalf("broker with non-.edu email: %v", err)
	}
}

func TestUserService_Register_FieldValidation(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newStubPropertyRepo(), &stubNotifier{})

	cases := []struct {
		name   string
		mutate func(*ports.RegisterUserInput)
	}{
		{"blank first name", func(in *ports.RegisterUserInput) { in.FirstName = "  " }},
		{"numeric last name", func(in *ports.RegisterUserInput) { in.LastName = "Sharma42" }},
		{"malformed email", func(in *ports.RegisterUserInput) { in.Email = "not-an-email" }},
		{"unknown user type", func(in *ports.RegisterUserInput) { in.UserType = "landlord" }},
		{"short contact", func(in *ports.RegisterUserInput) { in.Contact = "12345" }},
		{"short password", func(in *ports.RegisterUserInput) { in.Password = "Ab1" }},
		{"password without digit", func(in *ports.RegisterUserInput) { in.Password = "Secretive" }},
	}
	for _, tc := range cases {
		in := registerInput("priya@stevens.edu", "student")
		tc.mutate(&in)
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestUserService_Login_IndistinguishableFailures(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users, newStubPropertyRepo(), &stubNotifier{})

	if _, err := svc.Register(context.Background(), registerInput("b@x.com", "broker")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, unknownErr := svc.Login(context.Background(), "ghost@x.com", "Secret1")
	_, _, wrongPassErr := svc.Login(context.Background(), "b@x.com", "WrongPass9")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Fatal("login failure messages must be identical to prevent enumeration")
	}
}

func TestUserService_Login_InactiveUser(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users, newStubPropertyRepo(), &stubNotifier{})

	if _, err := svc.Register(context.Background(), registerInput("b@x.com", "broker")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Remove(context.Background(), "b@x.com"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "b@x.com", "Secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("inactive user login: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	users := newStubUserRepo()
	users.seedUser("s@uni.edu", domain.TypeStudent)
	svc := newTestUserService(users, newStubPropertyRepo(), &stubNotifier{})

	err := svc.UpdateProfile(context.Background(), ports.UpdateUserInput{
		Email: "s@uni.edu", FirstName: "Asha", LastName: "Rao", Contact: "2015550177",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := users.users["s@uni.edu"].FirstName; got != "Asha" {
		t.Fatalf("expected first name Asha, got %q", got)
	}

	err = svc.UpdateProfile(context.Background(), ports.UpdateUserInput{
		Email: "ghost@uni.edu", FirstName: "Asha", LastName: "Rao", Contact: "2015550177",
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ToggleBookmark_RoundTrip(t *testing.T) {
	users := newStubUserRepo()
	props := newStubPropertyRepo()
	student := users.seedUser("s@uni.edu", domain.TypeStudent)
	listing, _ := props.Insert(context.Background(), &domain.Property{Name: "Oak St", Broker: "b@x.com", IsActive: true})
	svc := newTestUserService(users, props, &stubNotifier{})

	added, err := svc.ToggleBookmark(context.Background(), student.Email, listing.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !added {
		t.Fatal("first toggle must add")
	}
	if got := users.users[student.Email].BookmarkedProperties; len(got) != 1 || got[0] != listing.ID {
		t.Fatalf("bookmark not stored: %v", got)
	}

	added, err = svc.ToggleBookmark(context.Background(), student.Email, listing.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if added {
		t.Fatal("second toggle must remove")
	}
	if got := users.users[student.Email].BookmarkedProperties; len(got) != 0 {
		t.Fatalf("bookmark set must return to original state, got %v", got)
	}
}

func TestUserService_ToggleBookmark_UnknownUser(t *testing.T) {
	props := newStubPropertyRepo()
	listing, _ := props.Insert(context.Background(), &domain.Property{Name: "Oak St", IsActive: true})
	svc := newTestUserService(newStubUserRepo(), props, &stubNotifier{})

	if _, err := svc.ToggleBookmark(context.Background(), "ghost@uni.edu", listing.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ToggleOwnership_RoundTrip(t *testing.T) {
	users := newStubUserRepo()
	props := newStubPropertyRepo()
	broker := users.seedUser("b@x.com", domain.TypeBroker)
	listing, _ := props.Insert(context.Background(), &domain.Property{Name: "Maple Villa", Broker: broker.Email, IsActive: true})
	svc := newTestUserService(users, props, &stubNotifier{})

	added, err := svc.ToggleOwnership(context.Background(), broker.Email, listing.ID)
	if err != nil || !added {
		t.Fatalf("first toggle: added=%v err=%v", added, err)
	}
	added, err = svc.ToggleOwnership(context.Background(), broker.Email, listing.ID)
	if err != nil || added {
		t.Fatalf("second toggle: added=%v err=%v", added, err)
	}
	if got := users.users[broker.Email].OwnedProperties; len(got) != 0 {
		t.Fatalf("owned set must return to original state, got %v", got)
	}
}

func TestUserService_GetProfile_HydratesBookmarks(t *testing.T) {
	users := newStubUserRepo()
	props := newStubPropertyRepo()
	student := users.seedUser("s@uni.edu", domain.TypeStudent)
	first, _ := props.Insert(context.Background(), &domain.Property{Name: "Oak St", IsActive: true})
	second, _ := props.Insert(context.Background(), &domain.Property{Name: "Maple Villa", IsActive: true})
	student.BookmarkedProperties = []string{second.ID, first.ID}
	svc := newTestUserService(users, props, &stubNotifier{})

	profile, err := svc.GetProfile(context.Background(), student.Email)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	details := profile.BookmarkedPropertyDetails
	if len(details) != 2 {
		t.Fatalf("expected 2 hydrated bookmarks, got %d", len(details))
	}
	// Original order preserved.
	if details[0].Name != "Maple Villa" || details[1].Name != "Oak St" {
		t.Fatalf("hydration order wrong: %s, %s", details[0].Name, details[1].Name)
	}
	if profile.OwnedPropertyDetails != nil {
		t.Fatal("student profile must not hydrate owned properties")
	}
}

func TestUserService_GetProfile_HydratesInactiveListing(t *testing.T) {
	users := newStubUserRepo()
	props := newStubPropertyRepo()
	student := users.seedUser("s@uni.edu", domain.TypeStudent)
	listing, _ := props.Insert(context.Background(), &domain.Property{Name: "Oak St", IsActive: true})
	student.BookmarkedProperties = []string{listing.ID}
	if err := props.Deactivate(context.Background(), "Oak St"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	svc := newTestUserService(users, props, &stubNotifier{})

	profile, err := svc.GetProfile(context.Background(), student.Email)
	if err != nil {
		t.Fatalf("a bookmarked listing that was taken down must still hydrate: %v", err)
	}
	if len(profile.BookmarkedPropertyDetails) != 1 || profile.BookmarkedPropertyDetails[0].IsActive {
		t.Fatalf("expected the inactive record, got %+v", profile.BookmarkedPropertyDetails)
	}
}

func TestUserService_GetProfile_DanglingIDFailsHard(t *testing.T) {
	users := newStubUserRepo()
	student := users.seedUser("s@uni.edu", domain.TypeStudent)
	student.BookmarkedProperties = []string{"00000000000000000000dead"}
	svc := newTestUserService(users, newStubPropertyRepo(), &stubNotifier{})

	_, err := svc.GetProfile(context.Background(), student.Email)
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("dangling membership id must fail hydration, got %v", err)
	}
	if !strings.Contains(err.Error(), "00000000000000000000dead") {
		t.Fatalf("error should name the dangling id: %v", err)
	}
}

func TestUserService_GetProfile_HydratesOwnedForBroker(t *testing.T) {
	users := newStubUserRepo()
	props := newStubPropertyRepo()
	broker := users.seedUser("b@x.com", domain.TypeBroker)
	listing, _ := props.Insert(context.Background(), &domain.Property{Name: "Maple Villa", Broker: broker.Email, IsActive: true})
	broker.OwnedProperties = []string{listing.ID}
	svc := newTestUserService(users, props, &stubNotifier{})

	profile, err := svc.GetProfile(context.Background(), broker.Email)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if len(profile.OwnedPropertyDetails) != 1 || profile.OwnedPropertyDetails[0].Name != "Maple Villa" {
		t.Fatalf("unexpected owned details: %+v", profile.OwnedPropertyDetails)
	}
	if profile.BookmarkedPropertyDetails != nil {
		t.Fatal("broker profile must not hydrate bookmarks")
	}
}

func TestUserService_ShowInterest_NotifiesBrokerOnce(t *testing.T) {
	users := newStubUserRepo()
	props := newStubPropertyRepo()
	student := users.seedUser("s@uni.edu", domain.TypeStudent)
	listing, _ := props.Insert(context.Background(), &domain.Property{Name: "Oak St", Broker: "b@x.com", IsActive: true})
	notifier := &stubNotifier{}
	svc := newTestUserService(users, props, notifier)

	if err := svc.ShowInterest(context.Background(), student.Email, listing.ID); err != nil {
		t.Fatalf("show interest: %v", err)
	}
	if len(notifier.interests) != 1 || notifier.interests[0] != "b@x.com|s@uni.edu|"+listing.ID {
		t.Fatalf("unexpected notifications: %v", notifier.interests)
	}

	// Repeat interest within the guard window is dropped silently.
	if err := svc.ShowInterest(context.Background(), student.Email, listing.ID); err != nil {
		t.Fatalf("repeat interest: %v", err)
	}
	if len(notifier.interests) != 1 {
		t.Fatalf("repeat interest must not re-notify, got %d sends", len(notifier.interests))
	}
}

func TestUserService_ShowInterest_InactiveListing(t *testing.T) {
	users := newStubUserRepo()
	props := newStubPropertyRepo()
	student := users.seedUser("s@uni.edu", domain.TypeStudent)
	listing, _ := props.Insert(context.Background(), &domain.Property{Name: "Oak St", Broker: "b@x.com", IsActive: true})
	if err := props.Deactivate(context.Background(), "Oak St"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	svc := newTestUserService(users, props, &stubNotifier{})

	if err := svc.ShowInterest(context.Background(), student.Email, listing.ID); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound for inactive listing, got %v", err)
	}
}
