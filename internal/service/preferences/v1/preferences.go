// Package preferences keeps per-user capture defaults in sync with storage.
package preferences

import (
	"context"
	"errors"
	"log"

	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/identity"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/preferences"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
)

// Check interface implementation explicitly
var (
	_ preferences.Syncer = (*Syncer)(nil)
)

// Syncer struct defines data structure handling and provides support for adding new implementations.
type Syncer struct {
	storage  storage.Storage
	identity identity.Resolver
}

// InitSyncer initializes a Syncer object and sets its attributes.
func InitSyncer(s storage.Storage, r identity.Resolver) (*Syncer, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if r == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil identity resolver was passed to service initializer"}
	}
	return &Syncer{storage: s, identity: r}, nil
}

// GetDefaults returns the stored preferences of userID, or seed defaults when none are stored.
func (s *Syncer) GetDefaults(ctx context.Context, userID int64) (modelshot.Preferences, error) {
	prefs, err := s.storage.GetPreferences(ctx, userID)
	var notFound *storageErrors.NotFoundError
	if errors.As(err, &notFound) {
		return seed(userID), nil
	}
	return prefs, err
}

// SetDefaults validates and stores patch, creating the preferences row from seed defaults first
// if the user has none.
func (s *Syncer) SetDefaults(ctx context.Context, userID int64, patch modelshot.PreferencesPatch) (modelshot.Preferences, error) {
	if err := patch.Validate(); err != nil {
		return modelshot.Preferences{}, err
	}
	_, err := s.storage.GetPreferences(ctx, userID)
	var notFound *storageErrors.NotFoundError
	if errors.As(err, &notFound) {
		_, err = s.storage.CreatePreferences(ctx, modelshot.SeedPreferences(userID))
		var exists *storageErrors.AlreadyExistsError
		if errors.As(err, &exists) {
			// created concurrently, patch it below
			err = nil
		}
	}
	if err != nil {
		return modelshot.Preferences{}, userNotFound(err)
	}
	prefs, err := s.storage.UpdatePreferences(ctx, userID, patch)
	if err != nil {
		return modelshot.Preferences{}, err
	}
	log.Println("Preferences: updated defaults of user", userID)
	return prefs, nil
}

// GetDefaultsByExternalID is GetDefaults for a user addressed by external id.
func (s *Syncer) GetDefaultsByExternalID(ctx context.Context, externalID string) (modelshot.Preferences, error) {
	user, err := s.lookup(ctx, externalID)
	if err != nil {
		return modelshot.Preferences{}, err
	}
	return s.GetDefaults(ctx, user.ID)
}

// SetDefaultsByExternalID is SetDefaults for a user addressed by external id.
func (s *Syncer) SetDefaultsByExternalID(ctx context.Context, externalID string, patch modelshot.PreferencesPatch) (modelshot.Preferences, error) {
	if err := patch.Validate(); err != nil {
		return modelshot.Preferences{}, err
	}
	user, err := s.lookup(ctx, externalID)
	if err != nil {
		return modelshot.Preferences{}, err
	}
	return s.SetDefaults(ctx, user.ID, patch)
}

// lookup resolves a registered user; the placeholder owner is not addressable by external id.
func (s *Syncer) lookup(ctx context.Context, externalID string) (modelshot.User, error) {
	if externalID == modelshot.AnonymousExternalID {
		return modelshot.User{}, &serviceErrors.NotFoundError{Entity: "user", ID: externalID}
	}
	return s.identity.LookupUser(ctx, externalID)
}

func seed(userID int64) modelshot.Preferences {
	p := modelshot.SeedPreferences(userID)
	return modelshot.Preferences{
		UserID:                 userID,
		DefaultDeviceType:      p.DefaultDeviceType,
		DefaultBackgroundColor: p.DefaultBackgroundColor,
		DefaultFrameStyle:      p.DefaultFrameStyle,
		DefaultFrameColor:      p.DefaultFrameColor,
	}
}

func userNotFound(err error) error {
	var notFound *storageErrors.NotFoundError
	if errors.As(err, &notFound) && notFound.Entity == "user" {
		return &serviceErrors.NotFoundError{Entity: "user", ID: notFound.Key, Err: err}
	}
	return err
}
