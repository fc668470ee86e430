// Package capture orchestrates screenshot captures: validation, ownership, the provider call
// and persistence of the resulting record.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/capture"
	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/identity"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/provider"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
)

// Check interface implementation explicitly
var (
	_ capture.Processor = (*Processor)(nil)
)

// Processor struct defines data structure handling and provides support for adding new implementations.
type Processor struct {
	storage     storage.Storage
	provider    provider.Provider
	identity    identity.Resolver
	passThrough bool
}

// InitProcessor initializes a Processor object and sets its attributes. In pass-through mode
// the provider is not called at capture time and the stored capture URL is dereferenced lazily.
func InitProcessor(s storage.Storage, p provider.Provider, r identity.Resolver, passThrough bool) (*Processor, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if p == nil {
		return nil, &serviceErrors.ServiceFoundNilProvider{Msg: "nil provider was passed to service initializer"}
	}
	if r == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil identity resolver was passed to service initializer"}
	}
	return &Processor{storage: s, provider: p, identity: r, passThrough: passThrough}, nil
}

// Capture validates req, has the provider render the page and stores the resulting record under
// the owner resolved from externalID.
func (proc *Processor) Capture(ctx context.Context, req modelshot.CaptureRequest, externalID string) (modelshot.Screenshot, error) {
	if err := req.Validate(); err != nil {
		return modelshot.Screenshot{}, err
	}
	captureURL, err := proc.provider.BuildURL(provider.Params{URL: req.URL, DeviceType: req.DeviceType})
	if err != nil {
		return modelshot.Screenshot{}, err
	}
	ownerID, err := proc.identity.ResolveOwner(ctx, externalID)
	if err != nil {
		return modelshot.Screenshot{}, err
	}
	title, err := modelshot.Title(req.URL)
	if err != nil {
		return modelshot.Screenshot{}, err
	}
	if !proc.passThrough {
		if err := proc.provider.Take(ctx, captureURL); err != nil {
			return modelshot.Screenshot{}, err
		}
	}
	shot, err := proc.storage.CreateScreenshot(ctx, modelshot.NewScreenshot{
		UserID:          ownerID,
		URL:             req.URL,
		Title:           title,
		DeviceType:      req.DeviceType,
		BackgroundColor: req.BackgroundColor,
		FrameStyle:      req.FrameStyle,
		FrameColor:      req.FrameColor,
		ScreenshotURL:   captureURL,
	})
	if err != nil {
		return modelshot.Screenshot{}, err
	}
	log.Println("Capture: stored screenshot", shot.ID, "of", title, "for owner", ownerID)
	return shot, nil
}

// GetScreenshot returns a stored screenshot by id.
func (proc *Processor) GetScreenshot(ctx context.Context, id int64) (modelshot.Screenshot, error) {
	shot, err := proc.storage.GetScreenshot(ctx, id)
	if err != nil {
		return modelshot.Screenshot{}, notFound(err, id)
	}
	return shot, nil
}

// ListRecent returns the most recent screenshots, limited to one owner when externalID is given.
// An unknown externalID yields an empty list.
func (proc *Processor) ListRecent(ctx context.Context, limit int, externalID string) ([]modelshot.Screenshot, error) {
	filter := modelshot.ScreenshotFilter{Limit: limit}
	if strings.TrimSpace(externalID) != "" {
		user, err := proc.identity.LookupUser(ctx, externalID)
		var nf *serviceErrors.NotFoundError
		switch {
		case errors.As(err, &nf):
			return []modelshot.Screenshot{}, nil
		case err != nil:
			return nil, err
		}
		filter.UserID = &user.ID
	}
	return proc.storage.GetRecentScreenshots(ctx, filter)
}

// Delete removes a screenshot; deleting an unknown id is not an error.
func (proc *Processor) Delete(ctx context.Context, id int64) error {
	return proc.storage.DeleteScreenshot(ctx, id)
}

// Download streams the image of a stored screenshot along with a suggested file name.
func (proc *Processor) Download(ctx context.Context, id int64) (*provider.Artifact, string, error) {
	shot, err := proc.GetScreenshot(ctx, id)
	if err != nil {
		return nil, "", err
	}
	artifact, err := proc.provider.Fetch(ctx, shot.ScreenshotURL)
	if err != nil {
		return nil, "", err
	}
	return artifact, Filename(shot), nil
}

// GetStats returns counters for the internal stats endpoint.
func (proc *Processor) GetStats(ctx context.Context) (modelshot.Stats, error) {
	return proc.storage.GetStats(ctx)
}

// PingDB checks storage availability.
func (proc *Processor) PingDB() error {
	return proc.storage.PingDB()
}

// Filename returns the download name of a screenshot, e.g. "example.com-mobile.png".
func Filename(shot modelshot.Screenshot) string {
	return fmt.Sprintf("%s-%s.png", shot.Title, shot.DeviceType)
}

func notFound(err error, id int64) error {
	var nf *storageErrors.NotFoundError
	if errors.As(err, &nf) {
		return &serviceErrors.NotFoundError{Entity: "screenshot", ID: fmt.Sprintf("%d", id), Err: err}
	}
	return err
}
