// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
)

// UserGetter defines a set of methods for types implementing UserGetter.
type UserGetter interface {
	GetUserByExternalID(ctx context.Context, externalID string) (modelshot.User, error)
}

// UserSetter defines a set of methods for types implementing UserSetter.
type UserSetter interface {
	CreateUser(ctx context.Context, user modelshot.NewUser) (modelshot.User, error)
	UpdateUser(ctx context.Context, externalID string, patch modelshot.UserPatch) (modelshot.User, error)
	// CreateUserWithPreferences stores a user and its preferences as one unit; prefs.UserID is ignored.
	CreateUserWithPreferences(ctx context.Context, user modelshot.NewUser, prefs modelshot.NewPreferences) (modelshot.User, modelshot.Preferences, error)
}

// PreferencesGetter defines a set of methods for types implementing PreferencesGetter.
type PreferencesGetter interface {
	GetPreferences(ctx context.Context, userID int64) (modelshot.Preferences, error)
}

// PreferencesSetter defines a set of methods for types implementing PreferencesSetter.
type PreferencesSetter interface {
	CreatePreferences(ctx context.Context, prefs modelshot.NewPreferences) (modelshot.Preferences, error)
	UpdatePreferences(ctx context.Context, userID int64, patch modelshot.PreferencesPatch) (modelshot.Preferences, error)
}

// ScreenshotGetter defines a set of methods for types implementing ScreenshotGetter.
type ScreenshotGetter interface {
	GetScreenshot(ctx context.Context, id int64) (modelshot.Screenshot, error)
	GetRecentScreenshots(ctx context.Context, filter modelshot.ScreenshotFilter) ([]modelshot.Screenshot, error)
}

// ScreenshotSetter defines a set of methods for types implementing ScreenshotSetter.
type ScreenshotSetter interface {
	CreateScreenshot(ctx context.Context, shot modelshot.NewScreenshot) (modelshot.Screenshot, error)
	DeleteScreenshot(ctx context.Context, id int64) error
}

// StatsGetter defines a set of methods for types implementing StatsGetter.
type StatsGetter interface {
	GetStats(ctx context.Context) (modelshot.Stats, error)
}

// Pinger defines a set of methods for types implementing Pinger.
type Pinger interface {
	PingDB() error
}

// Closer defines a set of methods for types implementing Closer.
type Closer interface {
	CloseDB() error
}

// Storage defines a set of embedded interfaces for types implementing Storage.
type Storage interface {
	UserGetter
	UserSetter
	PreferencesGetter
	PreferencesSetter
	ScreenshotGetter
	ScreenshotSetter
	StatsGetter
	Pinger
	Closer
}
