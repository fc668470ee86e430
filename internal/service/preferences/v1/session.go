package preferences

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
)

// Settings are the capture options a client is currently working with.
type Settings struct {
	DeviceType      modelshot.DeviceType `json:"deviceType"`
	BackgroundColor string               `json:"backgroundColor"`
	FrameStyle      modelshot.FrameStyle `json:"frameStyle"`
	FrameColor      string               `json:"frameColor"`
}

// SeedSettings returns the settings of a fresh or anonymous session.
func SeedSettings() Settings {
	return Settings{
		DeviceType:      modelshot.SeedDeviceType,
		BackgroundColor: modelshot.SeedBackgroundColor,
		FrameStyle:      modelshot.SeedFrameStyle,
		FrameColor:      modelshot.SeedFrameColor,
	}
}

func settingsOf(p modelshot.Preferences) Settings {
	return Settings{
		DeviceType:      p.DefaultDeviceType,
		BackgroundColor: p.DefaultBackgroundColor,
		FrameStyle:      p.DefaultFrameStyle,
		FrameColor:      p.DefaultFrameColor,
	}
}

// Session holds the local working settings of one client. Authenticated sessions write every
// change through to stored defaults.
type Session struct {
	syncer   *Syncer
	userID   int64
	settings Settings
}

// StartSession opens a session for externalID. Known users start from their stored defaults
// when they have any; everybody else starts from seed settings and is never written through.
func (s *Syncer) StartSession(ctx context.Context, externalID string) (*Session, error) {
	session := &Session{syncer: s, settings: SeedSettings()}
	switch strings.TrimSpace(externalID) {
	case "", modelshot.AnonymousExternalID:
		return session, nil
	}
	user, err := s.storage.GetUserByExternalID(ctx, externalID)
	var notFound *storageErrors.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return session, nil
	case err != nil:
		return nil, err
	}
	session.userID = user.ID
	prefs, err := s.storage.GetPreferences(ctx, user.ID)
	switch {
	case errors.As(err, &notFound):
	case err != nil:
		return nil, err
	default:
		session.settings = settingsOf(prefs)
	}
	return session, nil
}

// Authenticated reports whether changes are written through to storage.
func (s *Session) Authenticated() bool {
	return s.userID != 0
}

// Settings returns the current local settings.
func (s *Session) Settings() Settings {
	return s.settings
}

// Apply validates patch and updates the local settings. Authenticated sessions then persist it;
// a persistence failure is returned alongside the new settings and does not revert them.
func (s *Session) Apply(ctx context.Context, patch modelshot.PreferencesPatch) (Settings, error) {
	if err := patch.Validate(); err != nil {
		return s.settings, err
	}
	s.settings = Settings{
		DeviceType:      patch.DefaultDeviceType.Or(s.settings.DeviceType),
		BackgroundColor: patch.DefaultBackgroundColor.Or(s.settings.BackgroundColor),
		FrameStyle:      patch.DefaultFrameStyle.Or(s.settings.FrameStyle),
		FrameColor:      patch.DefaultFrameColor.Or(s.settings.FrameColor),
	}
	if !s.Authenticated() || patch.Empty() {
		return s.settings, nil
	}
	if _, err := s.syncer.SetDefaults(ctx, s.userID, patch); err != nil {
		log.Println("Preferences: write-through failed:", err)
		return s.settings, err
	}
	return s.settings, nil
}
