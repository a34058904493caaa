package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/offcampus/housing-api/internal/api"
	"github.com/offcampus/housing-api/internal/api/handler"
	"github.com/offcampus/housing-api/internal/core/domain"
	"github.com/offcampus/housing-api/internal/core/ports"
)

// newEcho builds an echo instance wired the way the router wires it, so
// handler errors render through the central error handler.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

// request builds a context carrying an optional JSON body and auth claims.
func request(e *echo.Echo, method, target, body, email, role string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if email != "" {
		c.Set("email", email)
	}
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

// serve invokes the handler and renders any returned error the way echo
// would.
func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

type stubUserService struct {
	registerFn       func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	updateFn         func(ctx context.Context, in ports.UpdateUserInput) error
	removeFn         func(ctx context.Context, email string) error
	profileFn        func(ctx context.Context, email string) (*ports.UserProfile, error)
	toggleBookmarkFn func(ctx context.Context, studentEmail, propertyID string) (bool, error)
	toggleOwnedFn    func(ctx context.Context, brokerEmail, propertyID string) (bool, error)
	showInterestFn   func(ctx context.Context, studentEmail, propertyID string) error
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, in ports.UpdateUserInput) error {
	return s.updateFn(ctx, in)
}

func (s *stubUserService) Remove(ctx context.Context, email string) error {
	return s.removeFn(ctx, email)
}

func (s *stubUserService) GetProfile(ctx context.Context, email string) (*ports.UserProfile, error) {
	return s.profileFn(ctx, email)
}

func (s *stubUserService) ToggleBookmark(ctx context.Context, studentEmail, propertyID string) (bool, error) {
	return s.toggleBookmarkFn(ctx, studentEmail, propertyID)
}

func (s *stubUserService) ToggleOwnership(ctx context.Context, brokerEmail, propertyID string) (bool, error) {
	return s.toggleOwnedFn(ctx, brokerEmail, propertyID)
}

func (s *stubUserService) ShowInterest(ctx context.Context, studentEmail, propertyID string) error {
	return s.showInterestFn(ctx, studentEmail, propertyID)
}

type stubPropertyService struct {
	createFn    func(ctx context.Context, in ports.PropertyInput) (*domain.Property, error)
	updateFn    func(ctx context.Context, in ports.PropertyInput) (*domain.Property, error)
	listFn      func(ctx context.Context) ([]*domain.Property, error)
	getByIDFn   func(ctx context.Context, id string) (*domain.Property, error)
	getByNameFn func(ctx context.Context, name string) (*domain.Property, error)
	removeFn    func(ctx context.Context, name string) (*ports.RemovePropertyResult, error)
	toggleFn    func(ctx context.Context, brokerEmail, propertyID string) (bool, error)
}

func (s *stubPropertyService) Create(ctx context.Context, in ports.PropertyInput) (*domain.Property, error) {
	return s.createFn(ctx, in)
}

func (s *stubPropertyService) Update(ctx context.Context, in ports.PropertyInput) (*domain.Property, error) {
	return s.updateFn(ctx, in)
}

func (s *stubPropertyService) ListAll(ctx context.Context) ([]*domain.Property, error) {
	return s.listFn(ctx)
}

func (s *stubPropertyService) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubPropertyService) GetByName(ctx context.Context, name string) (*domain.Property, error) {
	return s.getByNameFn(ctx, name)
}

func (s *stubPropertyService) Remove(ctx context.Context, name string) (*ports.RemovePropertyResult, error) {
	return s.removeFn(ctx, name)
}

func (s *stubPropertyService) ToggleRentalStatus(ctx context.Context, brokerEmail, propertyID string) (bool, error) {
	return s.toggleFn(ctx, brokerEmail, propertyID)
}
