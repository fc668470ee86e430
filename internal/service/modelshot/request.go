package modelshot

import (
	"errors"
	"net/url"
	"strings"

	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
)

type (
	// CaptureRequest holds the fields a client submits to capture a screenshot.
	CaptureRequest struct {
		URL             string
		DeviceType      DeviceType
		BackgroundColor string
		FrameStyle      FrameStyle
		FrameColor      string
	}

	// Profile is what the external identity provider tells us about a user.
	Profile struct {
		ExternalID  string
		Email       string
		DisplayName string
		AvatarURL   string
	}
)

// Validate reports every violated field of the request at once.
func (r CaptureRequest) Validate() error {
	verr := &serviceErrors.ValidationError{}
	if r.URL == "" {
		verr.Add("url", "Required")
	} else if _, err := parseAbsoluteURL(r.URL); err != nil {
		verr.Add("url", "Please enter a valid URL")
	}
	if !r.DeviceType.Valid() {
		verr.Add("deviceType", "Invalid enum value. Expected 'mobile' | 'desktop'")
	}
	if !r.FrameStyle.Valid() {
		verr.Add("frameStyle", "Invalid enum value. Expected 'framed' | 'rounded'")
	}
	return verr.OrNil()
}

// Validate checks the enumerated fields of a patch.
func (p PreferencesPatch) Validate() error {
	verr := &serviceErrors.ValidationError{}
	if p.DefaultDeviceType.Set && !p.DefaultDeviceType.Value.Valid() {
		verr.Add("defaultDeviceType", "Invalid enum value. Expected 'mobile' | 'desktop'")
	}
	if p.DefaultFrameStyle.Set && !p.DefaultFrameStyle.Value.Valid() {
		verr.Add("defaultFrameStyle", "Invalid enum value. Expected 'framed' | 'rounded'")
	}
	return verr.OrNil()
}

// Validate checks that the identity provider supplied the mandatory fields.
func (p Profile) Validate() error {
	verr := &serviceErrors.ValidationError{}
	switch strings.TrimSpace(p.ExternalID) {
	case "":
		verr.Add("externalId", "Required")
	case AnonymousExternalID:
		verr.Add("externalId", "Reserved identifier")
	}
	if strings.TrimSpace(p.Email) == "" {
		verr.Add("email", "Required")
	}
	return verr.OrNil()
}

// Title derives a screenshot title from its source URL: the hostname without a leading "www.".
func Title(rawURL string) (string, error) {
	u, err := parseAbsoluteURL(rawURL)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www."), nil
}

func parseAbsoluteURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: rawURL, Err: errNotAbsolute}
	}
	return u, nil
}

var errNotAbsolute = errors.New("not an absolute URL")
