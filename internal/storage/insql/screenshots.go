package insql

import (
	"context"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage/modelstorage"
)

const screenshotColumns = "id, user_id, url, title, device_type, background_color, frame_style, frame_color, screenshot_url, created_at"

// GetScreenshot returns a screenshot by id.
func (s *Storage) GetScreenshot(ctx context.Context, id int64) (modelshot.Screenshot, error) {
	query := s.DB.Rebind("SELECT " + screenshotColumns + " FROM screenshots WHERE id = ?")
	var row modelstorage.ScreenshotPostgresEntry
	err := classify(s.DB.GetContext(ctx, &row, query, id), "screenshot", idKey(id))
	logResult("Retrieving screenshot", err)
	if err != nil {
		return modelshot.Screenshot{}, err
	}
	return row.ToModel(), nil
}

// GetRecentScreenshots returns screenshots newest first, optionally for one owner only.
func (s *Storage) GetRecentScreenshots(ctx context.Context, filter modelshot.ScreenshotFilter) ([]modelshot.Screenshot, error) {
	query := "SELECT " + screenshotColumns + " FROM screenshots"
	var args []interface{}
	if filter.UserID != nil {
		query += " WHERE user_id = ?"
		args = append(args, *filter.UserID)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, filter.EffectiveLimit())

	var rows []modelstorage.ScreenshotPostgresEntry
	err := classify(s.DB.SelectContext(ctx, &rows, s.DB.Rebind(query), args...), "screenshot", "")
	logResult("Retrieving recent screenshots", err)
	if err != nil {
		return nil, err
	}
	shots := make([]modelshot.Screenshot, 0, len(rows))
	for _, row := range rows {
		shots = append(shots, row.ToModel())
	}
	return shots, nil
}

// CreateScreenshot stores a new screenshot record.
func (s *Storage) CreateScreenshot(ctx context.Context, shot modelshot.NewScreenshot) (modelshot.Screenshot, error) {
	created := modelshot.Screenshot{
		UserID:          shot.UserID,
		URL:             shot.URL,
		Title:           shot.Title,
		DeviceType:      shot.DeviceType,
		BackgroundColor: shot.BackgroundColor,
		FrameStyle:      shot.FrameStyle,
		FrameColor:      shot.FrameColor,
		ScreenshotURL:   shot.ScreenshotURL,
		CreatedAt:       s.timestamp(),
	}
	query := s.DB.Rebind(`INSERT INTO screenshots
		(user_id, url, title, device_type, background_color, frame_style, frame_color, screenshot_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err := s.DB.GetContext(ctx, &created.ID, query,
		shot.UserID,
		shot.URL,
		shot.Title,
		string(shot.DeviceType),
		shot.BackgroundColor,
		string(shot.FrameStyle),
		shot.FrameColor,
		shot.ScreenshotURL,
		created.CreatedAt,
	)
	err = classify(err, "screenshot", idKey(shot.UserID))
	logResult("Dumping screenshot", err)
	if err != nil {
		return modelshot.Screenshot{}, err
	}
	return created, nil
}

// DeleteScreenshot removes a screenshot; unknown ids are ignored.
func (s *Storage) DeleteScreenshot(ctx context.Context, id int64) error {
	query := s.DB.Rebind("DELETE FROM screenshots WHERE id = ?")
	_, err := s.DB.ExecContext(ctx, query, id)
	err = classify(err, "screenshot", idKey(id))
	logResult("Deleting screenshot", err)
	return err
}

// GetStats counts registered users (the anonymous owner excluded) and screenshots.
func (s *Storage) GetStats(ctx context.Context) (modelshot.Stats, error) {
	query := s.DB.Rebind(`SELECT
		(SELECT COUNT(*) FROM users WHERE id <> ?) AS users,
		(SELECT COUNT(*) FROM screenshots) AS screenshots`)
	var row struct {
		Users       int `db:"users"`
		Screenshots int `db:"screenshots"`
	}
	err := classify(s.DB.GetContext(ctx, &row, query, modelshot.AnonymousUserID), "stats", "")
	logResult("Retrieving stats", err)
	if err != nil {
		return modelshot.Stats{}, err
	}
	return modelshot.Stats{Users: row.Users, Screenshots: row.Screenshots}, nil
}
