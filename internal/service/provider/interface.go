// Package provider provides interfaces for types to be in compliance with.
package provider

import (
	"context"
	"io"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
)

// Params describes a single capture request sent to the provider.
type Params struct {
	URL        string
	DeviceType modelshot.DeviceType
}

// Artifact is a captured image streamed back from the provider. Body must be closed by the caller.
type Artifact struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Provider defines a set of methods for types implementing Provider.
type Provider interface {
	BuildURL(p Params) (string, error)
	Take(ctx context.Context, captureURL string) error
	Fetch(ctx context.Context, captureURL string) (*Artifact, error)
}

// Viewport returns the capture viewport in CSS pixels for a device type.
func Viewport(d modelshot.DeviceType) (width, height int) {
	if d == modelshot.DeviceMobile {
		return 375, 667
	}
	return 1920, 1080
}
