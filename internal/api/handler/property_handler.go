package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/offcampus/housing-api/internal/api/metrics"
	"github.com/offcampus/housing-api/internal/core/ports"
)

// PropertyHandler handles HTTP requests for listing operations.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Create registers a new listing owned by the calling broker.
//
// @Summary      Create a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      propertyRequest  true  "Listing details"
// @Success      201   {object}  domain.Property
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	property, err := h.service.Create(c.Request().Context(), req.toInput("", email))
	if err != nil {
		return err
	}

	metrics.PropertiesCreatedTotal.WithLabelValues(property.Type).Inc()
	return c.JSON(http.StatusCreated, property)
}

// Update overwrites an existing listing.
//
// @Summary      Update a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Property id"
// @Param        body  body      propertyRequest  true  "Listing details"
// @Success      200   {object}  domain.Property
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	property, err := h.service.Update(c.Request().Context(), req.toInput(c.Param("id"), email))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, property)
}

// List returns every active listing, or a single listing when a name query
// parameter is present.
//
// @Summary      List active listings, optionally filtered by exact name
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  false  "Listing name"
// @Success      200   {object}  propertyListResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	if name := sanitize(c.QueryParam("name")); name != "" {
		property, err := h.service.GetByName(c.Request().Context(), name)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, property)
	}

	properties, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, propertyListResponse{
		Count:      len(properties),
		Properties: properties,
	})
}

// Get resolves a single listing by id.
//
// @Summary      Get a listing by id
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  domain.Property
// @Failure      404  {object}  map[string]string
// @Router       /v1/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	property, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

// Remove soft-deletes the listing named in the query string.
//
// @Summary      Remove a listing by name
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  true  "Listing name"
// @Success      200   {object}  removePropertyResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/properties [delete]
func (h *PropertyHandler) Remove(c echo.Context) error {
	name := sanitize(c.QueryParam("name"))
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name query parameter is required")
	}

	result, err := h.service.Remove(c.Request().Context(), name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, removePropertyResponse{
		PropertyID: result.PropertyID,
		Broker:     result.Broker,
	})
}

// ToggleRental flips a listing between rented out and available. Only the
// owning broker may call it.
//
// @Summary      Toggle rental status
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  toggleResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/properties/{id}/rental [post]
func (h *PropertyHandler) ToggleRental(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}
	propertyID := c.Param("id")

	rented, err := h.service.ToggleRentalStatus(c.Request().Context(), email, propertyID)
	if err != nil {
		return err
	}

	state := "available"
	if rented {
		state = "rented_out"
	}
	metrics.RentalTogglesTotal.WithLabelValues(state).Inc()
	return c.JSON(http.StatusOK, toggleResponse{PropertyID: propertyID, State: state})
}
