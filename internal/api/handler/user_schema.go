package handler

import "github.com/offcampus/housing-api/internal/core/domain"

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	UserType  string `json:"user_type"  validate:"required,oneof=student broker"`
	Contact   string `json:"contact"    validate:"required"`
	Password  string `json:"password"   validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Contact   string `json:"contact"    validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type profileResponse struct {
	User                 *domain.User       `json:"user"`
	BookmarkedProperties []*domain.Property `json:"bookmarked_properties,omitempty"`
	OwnedProperties      []*domain.Property `json:"owned_properties,omitempty"`
}

type toggleResponse struct {
	PropertyID string `json:"property_id"`
	// State is "added"/"removed" for membership toggles and
	// "rented_out"/"available" for rental toggles.
	State string `json:"state"`
}

type messageResponse struct {
	Message string `json:"message"`
}
