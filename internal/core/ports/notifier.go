package ports

import (
	"context"

	"github.com/offcampus/housing-api/internal/core/domain"
)

// Notifier sends outbound email. Account confirmation is fire-and-forget:
// the caller logs failures and never propagates them.
type Notifier interface {
	// SendAccountConfirmation welcomes a new account. The plaintext
	// password is passed through for the confirmation message only and is
	// never persisted.
	SendAccountConfirmation(ctx context.Context, user *domain.User, password string) error

	// SendInterestNotification tells a broker that a student wants to see
	// one of their listings.
	SendInterestNotification(ctx context.Context, brokerEmail, studentEmail string, property *domain.Property) error
}
