// Package modelstorage provides locally used types and their structure for storage objects.
package modelstorage

import (
	"database/sql"
	"time"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
)

type UserPostgresEntry struct {
	ID          int64          `db:"id"`
	ExternalID  string         `db:"firebase_uid"`
	Email       string         `db:"email"`
	DisplayName sql.NullString `db:"display_name"`
	PhotoURL    sql.NullString `db:"photo_url"`
	CreatedAt   time.Time      `db:"created_at"`
}

type PreferencesPostgresEntry struct {
	ID                     int64     `db:"id"`
	UserID                 int64     `db:"user_id"`
	DefaultDeviceType      string    `db:"default_device_type"`
	DefaultBackgroundColor string    `db:"default_background_color"`
	DefaultFrameStyle      string    `db:"default_frame_style"`
	DefaultFrameColor      string    `db:"default_frame_color"`
	UpdatedAt              time.Time `db:"updated_at"`
}

type ScreenshotPostgresEntry struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	URL             string    `db:"url"`
	Title           string    `db:"title"`
	DeviceType      string    `db:"device_type"`
	BackgroundColor string    `db:"background_color"`
	FrameStyle      string    `db:"frame_style"`
	FrameColor      string    `db:"frame_color"`
	ScreenshotURL   string    `db:"screenshot_url"`
	CreatedAt       time.Time `db:"created_at"`
}

// ToModel converts a row into the shared entity.
func (e UserPostgresEntry) ToModel() modelshot.User {
	return modelshot.User{
		ID:          e.ID,
		ExternalID:  e.ExternalID,
		Email:       e.Email,
		DisplayName: fromNull(e.DisplayName),
		AvatarURL:   fromNull(e.PhotoURL),
		CreatedAt:   modelshot.Timestamp(e.CreatedAt),
	}
}

// ToModel converts a row into the shared entity.
func (e PreferencesPostgresEntry) ToModel() modelshot.Preferences {
	return modelshot.Preferences{
		ID:                     e.ID,
		UserID:                 e.UserID,
		DefaultDeviceType:      modelshot.DeviceType(e.DefaultDeviceType),
		DefaultBackgroundColor: e.DefaultBackgroundColor,
		DefaultFrameStyle:      modelshot.FrameStyle(e.DefaultFrameStyle),
		DefaultFrameColor:      e.DefaultFrameColor,
		UpdatedAt:              modelshot.Timestamp(e.UpdatedAt),
	}
}

// ToModel converts a row into the shared entity.
func (e ScreenshotPostgresEntry) ToModel() modelshot.Screenshot {
	return modelshot.Screenshot{
		ID:              e.ID,
		UserID:          e.UserID,
		URL:             e.URL,
		Title:           e.Title,
		DeviceType:      modelshot.DeviceType(e.DeviceType),
		BackgroundColor: e.BackgroundColor,
		FrameStyle:      modelshot.FrameStyle(e.FrameStyle),
		FrameColor:      e.FrameColor,
		ScreenshotURL:   e.ScreenshotURL,
		CreatedAt:       modelshot.Timestamp(e.CreatedAt),
	}
}

// ToNull converts an optional string into its nullable column value.
func ToNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
