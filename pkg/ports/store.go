package ports

import (
	"context"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

// SetupStore defines the interface for persisting a representative's setup
// between calls, keyed by profile name.
type SetupStore interface {
	// Save persists the setup for a given profile.
	Save(ctx context.Context, profile string, setup domain.Setup) error

	// Load retrieves the setup for a given profile.
	// Returns domain.ErrSetupNotFound if the profile does not exist.
	Load(ctx context.Context, profile string) (domain.Setup, error)

	// Delete removes the setup for a given profile.
	Delete(ctx context.Context, profile string) error

	// List returns all stored profile names.
	List(ctx context.Context) ([]string, error)
}
