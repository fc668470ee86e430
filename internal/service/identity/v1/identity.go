// Package identity maps identities issued by the external auth provider onto internal users.
package identity

import (
	"context"
	"errors"
	"log"
	"strings"

	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/identity"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
)

// Check interface implementation explicitly
var (
	_ identity.Resolver = (*Resolver)(nil)
)

// Resolver struct defines data structure handling and provides support for adding new implementations.
type Resolver struct {
	storage storage.Storage
}

// InitResolver initializes a Resolver object and sets its attributes.
func InitResolver(s storage.Storage) (*Resolver, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	return &Resolver{storage: s}, nil
}

// ResolveAndSyncUser creates the user with seed preferences on first sign-in and refreshes
// its profile fields on every later one.
func (r *Resolver) ResolveAndSyncUser(ctx context.Context, profile modelshot.Profile) (modelshot.User, error) {
	if err := profile.Validate(); err != nil {
		return modelshot.User{}, err
	}
	_, err := r.storage.GetUserByExternalID(ctx, profile.ExternalID)
	var notFound *storageErrors.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return r.create(ctx, profile)
	case err != nil:
		return modelshot.User{}, err
	}
	patch := modelshot.UserPatch{
		Email:       modelshot.Some(profile.Email),
		DisplayName: modelshot.Some(optionalString(profile.DisplayName)),
		AvatarURL:   modelshot.Some(optionalString(profile.AvatarURL)),
	}
	user, err := r.storage.UpdateUser(ctx, profile.ExternalID, patch)
	if err != nil {
		return modelshot.User{}, conflict(err)
	}
	log.Println("Identity: synced user", user.ID)
	return user, nil
}

func (r *Resolver) create(ctx context.Context, profile modelshot.Profile) (modelshot.User, error) {
	newUser := modelshot.NewUser{
		ExternalID:  profile.ExternalID,
		Email:       profile.Email,
		DisplayName: optionalString(profile.DisplayName),
		AvatarURL:   optionalString(profile.AvatarURL),
	}
	user, _, err := r.storage.CreateUserWithPreferences(ctx, newUser, modelshot.SeedPreferences(0))
	if err != nil {
		return modelshot.User{}, conflict(err)
	}
	log.Println("Identity: created user", user.ID)
	return user, nil
}

// ResolveOwner returns the internal owner for externalID, falling back to the anonymous
// placeholder owner for empty or unknown identities.
func (r *Resolver) ResolveOwner(ctx context.Context, externalID string) (int64, error) {
	if strings.TrimSpace(externalID) == "" {
		return modelshot.AnonymousUserID, nil
	}
	user, err := r.storage.GetUserByExternalID(ctx, externalID)
	var notFound *storageErrors.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return modelshot.AnonymousUserID, nil
	case err != nil:
		return 0, err
	}
	return user.ID, nil
}

// LookupUser returns the user registered under externalID.
func (r *Resolver) LookupUser(ctx context.Context, externalID string) (modelshot.User, error) {
	user, err := r.storage.GetUserByExternalID(ctx, externalID)
	var notFound *storageErrors.NotFoundError
	if errors.As(err, &notFound) {
		return modelshot.User{}, &serviceErrors.NotFoundError{Entity: "user", ID: externalID, Err: err}
	}
	return user, err
}

// conflict converts uniqueness violations into a service-level conflict.
func conflict(err error) error {
	var exists *storageErrors.AlreadyExistsError
	if errors.As(err, &exists) {
		return &serviceErrors.ConflictError{Msg: "user identity conflicts with an existing user", Err: err}
	}
	return err
}

// optionalString turns empty profile fields into absent values.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
