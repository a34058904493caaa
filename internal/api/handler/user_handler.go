package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/offcampus/housing-api/internal/api/metrics"
	"github.com/offcampus/housing-api/internal/core/ports"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterUserInput{
		FirstName: sanitize(req.FirstName),
		LastName:  sanitize(req.LastName),
		Email:     sanitize(req.Email),
		UserType:  sanitize(req.UserType),
		Contact:   sanitize(req.Contact),
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(string(user.Type)).Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates an account and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.service.Login(c.Request().Context(), sanitize(req.Email), req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// GetProfile returns the caller's account with membership ids resolved to
// full listings.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/me [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		User:                 profile.User,
		BookmarkedProperties: profile.BookmarkedPropertyDetails,
		OwnedProperties:      profile.OwnedPropertyDetails,
	})
}

// UpdateProfile overwrites the caller's mutable profile fields.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.service.UpdateProfile(c.Request().Context(), ports.UpdateUserInput{
		Email:     email,
		FirstName: sanitize(req.FirstName),
		LastName:  sanitize(req.LastName),
		Contact:   sanitize(req.Contact),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "profile updated"})
}

// Remove soft-deletes the caller's account.
//
// @Summary      Remove own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/me [delete]
func (h *UserHandler) Remove(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "account removed"})
}

// ToggleBookmark flips the caller's bookmark on a listing.
//
// @Summary      Toggle a bookmark
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  toggleResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/properties/{id}/bookmark [post]
func (h *UserHandler) ToggleBookmark(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}
	propertyID := c.Param("id")

	added, err := h.service.ToggleBookmark(c.Request().Context(), email, propertyID)
	if err != nil {
		return err
	}

	state := "removed"
	if added {
		state = "added"
	}
	metrics.BookmarkTogglesTotal.WithLabelValues(state).Inc()
	return c.JSON(http.StatusOK, toggleResponse{PropertyID: propertyID, State: state})
}

// ToggleOwnership flips a listing in the caller's owned set.
//
// @Summary      Toggle listing ownership
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  toggleResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/properties/{id}/ownership [post]
func (h *UserHandler) ToggleOwnership(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}
	propertyID := c.Param("id")

	added, err := h.service.ToggleOwnership(c.Request().Context(), email, propertyID)
	if err != nil {
		return err
	}

	state := "removed"
	if added {
		state = "added"
	}
	return c.JSON(http.StatusOK, toggleResponse{PropertyID: propertyID, State: state})
}

// ShowInterest notifies the listing broker that the caller wants to hear
// about a listing.
//
// @Summary      Show interest in a listing
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      202  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/properties/{id}/interest [post]
func (h *UserHandler) ShowInterest(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}
	propertyID := c.Param("id")

	if err := h.service.ShowInterest(c.Request().Context(), email, propertyID); err != nil {
		return err
	}

	metrics.InterestRequestsTotal.Inc()
	return c.JSON(http.StatusAccepted, messageResponse{Message: "interest recorded"})
}
