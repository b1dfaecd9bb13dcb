// Package auth issues and verifies member identities for tripsplit.
package auth

import (
	"context"

	"github.com/mmynk/tripsplit/internal/models"
)

// Authenticator turns credentials into a registered user.
// The user ID it returns is the member identifier used in groups.
type Authenticator interface {
	// Register creates a new account. The credential format depends on the
	// implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user owning email if credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
