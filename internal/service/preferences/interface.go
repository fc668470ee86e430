// Package preferences provides interfaces for types to be in compliance with.
package preferences

import (
	"context"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
)

// Syncer defines a set of methods for types implementing Syncer.
type Syncer interface {
	GetDefaults(ctx context.Context, userID int64) (modelshot.Preferences, error)
	SetDefaults(ctx context.Context, userID int64, patch modelshot.PreferencesPatch) (modelshot.Preferences, error)
	GetDefaultsByExternalID(ctx context.Context, externalID string) (modelshot.Preferences, error)
	SetDefaultsByExternalID(ctx context.Context, externalID string, patch modelshot.PreferencesPatch) (modelshot.Preferences, error)
}
