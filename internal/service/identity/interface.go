// Package identity provides interfaces for types to be in compliance with.
package identity

import (
	"context"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
)

// Resolver defines a set of methods for types implementing Resolver.
type Resolver interface {
	ResolveAndSyncUser(ctx context.Context, profile modelshot.Profile) (modelshot.User, error)
	ResolveOwner(ctx context.Context, externalID string) (int64, error)
	LookupUser(ctx context.Context, externalID string) (modelshot.User, error)
}
