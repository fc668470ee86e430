// Package capture provides interfaces for types to be in compliance with.
package capture

import (
	"context"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/provider"
)

// Processor defines a set of methods for types implementing Processor.
type Processor interface {
	Capture(ctx context.Context, req modelshot.CaptureRequest, externalID string) (modelshot.Screenshot, error)
	GetScreenshot(ctx context.Context, id int64) (modelshot.Screenshot, error)
	ListRecent(ctx context.Context, limit int, externalID string) ([]modelshot.Screenshot, error)
	Delete(ctx context.Context, id int64) error
	Download(ctx context.Context, id int64) (artifact *provider.Artifact, filename string, err error)
	GetStats(ctx context.Context) (modelshot.Stats, error)
	PingDB() error
}
