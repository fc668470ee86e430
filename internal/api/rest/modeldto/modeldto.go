// Package modeldto provides locally used types and their structure for data transfer objects.
package modeldto

import (
	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
)

type (
	// RequestSyncUser carries the identity reported by the auth provider. FirebaseUID is the
	// legacy name of ExternalID and is accepted as a fallback.
	RequestSyncUser struct {
		ExternalID  string `json:"externalId"`
		FirebaseUID string `json:"firebaseUid"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		AvatarURL   string `json:"avatarUrl"`
	}

	RequestCapture struct {
		URL             string `json:"url"`
		DeviceType      string `json:"deviceType"`
		BackgroundColor string `json:"backgroundColor"`
		FrameStyle      string `json:"frameStyle"`
		FrameColor      string `json:"frameColor"`
		ExternalID      string `json:"externalId"`
		FirebaseUID     string `json:"firebaseUid"`
	}

	// RequestPreferences is a partial update; absent fields are left unchanged.
	RequestPreferences struct {
		DefaultDeviceType      *string `json:"defaultDeviceType"`
		DefaultBackgroundColor *string `json:"defaultBackgroundColor"`
		DefaultFrameStyle      *string `json:"defaultFrameStyle"`
		DefaultFrameColor      *string `json:"defaultFrameColor"`
	}

	ResponseMessage struct {
		Message string `json:"message"`
	}

	ResponseValidation struct {
		Message string                     `json:"message"`
		Errors  []serviceErrors.FieldError `json:"errors"`
	}
)

// Profile converts the request into the identity profile.
func (r RequestSyncUser) Profile() modelshot.Profile {
	return modelshot.Profile{
		ExternalID:  firstNonEmpty(r.ExternalID, r.FirebaseUID),
		Email:       r.Email,
		DisplayName: r.DisplayName,
		AvatarURL:   r.AvatarURL,
	}
}

// CaptureRequest converts the request into the capture input.
func (r RequestCapture) CaptureRequest() modelshot.CaptureRequest {
	return modelshot.CaptureRequest{
		URL:             r.URL,
		DeviceType:      modelshot.DeviceType(r.DeviceType),
		BackgroundColor: r.BackgroundColor,
		FrameStyle:      modelshot.FrameStyle(r.FrameStyle),
		FrameColor:      r.FrameColor,
	}
}

// Owner returns the external id given in the body, if any.
func (r RequestCapture) Owner() string {
	return firstNonEmpty(r.ExternalID, r.FirebaseUID)
}

// Patch converts the request into a preferences patch.
func (r RequestPreferences) Patch() modelshot.PreferencesPatch {
	var patch modelshot.PreferencesPatch
	if r.DefaultDeviceType != nil {
		patch.DefaultDeviceType = modelshot.Some(modelshot.DeviceType(*r.DefaultDeviceType))
	}
	if r.DefaultFrameStyle != nil {
		patch.DefaultFrameStyle = modelshot.Some(modelshot.FrameStyle(*r.DefaultFrameStyle))
	}
	patch.DefaultBackgroundColor = modelshot.FromPtr(r.DefaultBackgroundColor)
	patch.DefaultFrameColor = modelshot.FromPtr(r.DefaultFrameColor)
	return patch
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
