// Package modelshot provides entity types shared between the service and storage layers.
package modelshot

import "time"

// AnonymousUserID owns every screenshot captured without a resolved identity.
// It is a placeholder row seeded by each storage backend, not a real account.
const AnonymousUserID int64 = 1

// AnonymousExternalID is the reserved external identifier of the placeholder owner.
const AnonymousExternalID = "anonymous"

// DefaultRecentLimit is used when a listing does not specify a positive limit.
const DefaultRecentLimit = 10

// Seed capture settings applied to new users and anonymous sessions.
const (
	SeedDeviceType      = DeviceMobile
	SeedBackgroundColor = "#6366F1"
	SeedFrameStyle      = FrameFramed
	SeedFrameColor      = "#FFFFFF"
)

type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceDesktop DeviceType = "desktop"
)

// Valid reports whether d is one of the known device types.
func (d DeviceType) Valid() bool {
	return d == DeviceMobile || d == DeviceDesktop
}

type FrameStyle string

const (
	FrameFramed  FrameStyle = "framed"
	FrameRounded FrameStyle = "rounded"
)

// Valid reports whether f is one of the known frame styles.
func (f FrameStyle) Valid() bool {
	return f == FrameFramed || f == FrameRounded
}

type (
	User struct {
		ID          int64     `json:"id"`
		ExternalID  string    `json:"externalId"`
		Email       string    `json:"email"`
		DisplayName *string   `json:"displayName"`
		AvatarURL   *string   `json:"avatarUrl"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	Preferences struct {
		ID                     int64      `json:"id"`
		UserID                 int64      `json:"userId"`
		DefaultDeviceType      DeviceType `json:"defaultDeviceType"`
		DefaultBackgroundColor string     `json:"defaultBackgroundColor"`
		DefaultFrameStyle      FrameStyle `json:"defaultFrameStyle"`
		DefaultFrameColor      string     `json:"defaultFrameColor"`
		UpdatedAt              time.Time  `json:"updatedAt"`
	}

	Screenshot struct {
		ID              int64      `json:"id"`
		UserID          int64      `json:"userId"`
		URL             string     `json:"url"`
		Title           string     `json:"title"`
		DeviceType      DeviceType `json:"deviceType"`
		BackgroundColor string     `json:"backgroundColor"`
		FrameStyle      FrameStyle `json:"frameStyle"`
		FrameColor      string     `json:"frameColor"`
		ScreenshotURL   string     `json:"screenshotUrl"`
		CreatedAt       time.Time  `json:"createdAt"`
	}
)

type (
	NewUser struct {
		ExternalID  string
		Email       string
		DisplayName *string
		AvatarURL   *string
	}

	NewPreferences struct {
		UserID                 int64
		DefaultDeviceType      DeviceType
		DefaultBackgroundColor string
		DefaultFrameStyle      FrameStyle
		DefaultFrameColor      string
	}

	NewScreenshot struct {
		UserID          int64
		URL             string
		Title           string
		DeviceType      DeviceType
		BackgroundColor string
		FrameStyle      FrameStyle
		FrameColor      string
		ScreenshotURL   string
	}

	// ScreenshotFilter narrows GetRecentScreenshots; a nil UserID lists every owner.
	ScreenshotFilter struct {
		UserID *int64
		Limit  int
	}

	Stats struct {
		Users       int `json:"users"`
		Screenshots int `json:"screenshots"`
	}
)

// SeedPreferences returns the preferences every new user starts with.
func SeedPreferences(userID int64) NewPreferences {
	return NewPreferences{
		UserID:                 userID,
		DefaultDeviceType:      SeedDeviceType,
		DefaultBackgroundColor: SeedBackgroundColor,
		DefaultFrameStyle:      SeedFrameStyle,
		DefaultFrameColor:      SeedFrameColor,
	}
}

// EffectiveLimit returns the listing limit with the default applied.
func (f ScreenshotFilter) EffectiveLimit() int {
	if f.Limit <= 0 {
		return DefaultRecentLimit
	}
	return f.Limit
}

// Timestamp returns the current time in the precision both storage backends keep.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
