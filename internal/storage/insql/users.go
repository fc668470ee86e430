package insql

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage/modelstorage"
)

const (
	userColumns        = "id, firebase_uid, email, display_name, photo_url, created_at"
	preferencesColumns = "id, user_id, default_device_type, default_background_color, default_frame_style, default_frame_color, updated_at"
)

// GetUserByExternalID returns the user registered under externalID.
func (s *Storage) GetUserByExternalID(ctx context.Context, externalID string) (modelshot.User, error) {
	query := s.DB.Rebind("SELECT " + userColumns + " FROM users WHERE firebase_uid = ?")
	var row modelstorage.UserPostgresEntry
	err := classify(s.DB.GetContext(ctx, &row, query, externalID), "user", externalID)
	logResult("Retrieving user", err)
	if err != nil {
		return modelshot.User{}, err
	}
	return row.ToModel(), nil
}

// CreateUser stores a new user; external id and email must be unused.
func (s *Storage) CreateUser(ctx context.Context, user modelshot.NewUser) (modelshot.User, error) {
	created, err := s.insertUser(ctx, s.DB, user)
	logResult("Dumping user", err)
	return created, err
}

// CreateUserWithPreferences stores a user and its preferences in one transaction so no reader
// ever observes a user without preferences.
func (s *Storage) CreateUserWithPreferences(ctx context.Context, user modelshot.NewUser, prefs modelshot.NewPreferences) (modelshot.User, modelshot.Preferences, error) {
	var (
		createdUser  modelshot.User
		createdPrefs modelshot.Preferences
	)
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		createdUser, err = s.insertUser(ctx, tx, user)
		if err != nil {
			return err
		}
		prefs.UserID = createdUser.ID
		createdPrefs, err = s.insertPreferences(ctx, tx, prefs)
		return err
	})
	logResult("Dumping user with preferences", err)
	if err != nil {
		return modelshot.User{}, modelshot.Preferences{}, err
	}
	return createdUser, createdPrefs, nil
}

// UpdateUser applies patch to the user registered under externalID.
func (s *Storage) UpdateUser(ctx context.Context, externalID string, patch modelshot.UserPatch) (modelshot.User, error) {
	var (
		sets []string
		args []interface{}
	)
	if patch.Email.Set {
		sets = append(sets, "email = ?")
		args = append(args, patch.Email.Value)
	}
	if patch.DisplayName.Set {
		sets = append(sets, "display_name = ?")
		args = append(args, modelstorage.ToNull(patch.DisplayName.Value))
	}
	if patch.AvatarURL.Set {
		sets = append(sets, "photo_url = ?")
		args = append(args, modelstorage.ToNull(patch.AvatarURL.Value))
	}
	if len(sets) == 0 {
		return s.GetUserByExternalID(ctx, externalID)
	}
	args = append(args, externalID)
	query := s.DB.Rebind("UPDATE users SET " + strings.Join(sets, ", ") + " WHERE firebase_uid = ? RETURNING " + userColumns)
	var row modelstorage.UserPostgresEntry
	err := classify(s.DB.GetContext(ctx, &row, query, args...), "user", externalID)
	logResult("Updating user", err)
	if err != nil {
		return modelshot.User{}, err
	}
	return row.ToModel(), nil
}

// GetPreferences returns the preferences owned by userID.
func (s *Storage) GetPreferences(ctx context.Context, userID int64) (modelshot.Preferences, error) {
	query := s.DB.Rebind("SELECT " + preferencesColumns + " FROM user_preferences WHERE user_id = ?")
	var row modelstorage.PreferencesPostgresEntry
	err := classify(s.DB.GetContext(ctx, &row, query, userID), "preferences", idKey(userID))
	logResult("Retrieving preferences", err)
	if err != nil {
		return modelshot.Preferences{}, err
	}
	return row.ToModel(), nil
}

// CreatePreferences stores preferences for a user that has none yet.
func (s *Storage) CreatePreferences(ctx context.Context, prefs modelshot.NewPreferences) (modelshot.Preferences, error) {
	created, err := s.insertPreferences(ctx, s.DB, prefs)
	logResult("Dumping preferences", err)
	return created, err
}

// UpdatePreferences applies patch with COALESCE semantics and refreshes the update timestamp.
func (s *Storage) UpdatePreferences(ctx context.Context, userID int64, patch modelshot.PreferencesPatch) (modelshot.Preferences, error) {
	query := s.DB.Rebind(`UPDATE user_preferences SET
		default_device_type = COALESCE(?, default_device_type),
		default_background_color = COALESCE(?, default_background_color),
		default_frame_style = COALESCE(?, default_frame_style),
		default_frame_color = COALESCE(?, default_frame_color),
		updated_at = ?
		WHERE user_id = ?
		RETURNING ` + preferencesColumns)
	var row modelstorage.PreferencesPostgresEntry
	err := s.DB.GetContext(ctx, &row, query,
		optional(patch.DefaultDeviceType.Set, string(patch.DefaultDeviceType.Value)),
		optional(patch.DefaultBackgroundColor.Set, patch.DefaultBackgroundColor.Value),
		optional(patch.DefaultFrameStyle.Set, string(patch.DefaultFrameStyle.Value)),
		optional(patch.DefaultFrameColor.Set, patch.DefaultFrameColor.Value),
		s.timestamp(),
		userID,
	)
	err = classify(err, "preferences", idKey(userID))
	logResult("Updating preferences", err)
	if err != nil {
		return modelshot.Preferences{}, err
	}
	return row.ToModel(), nil
}

func (s *Storage) insertUser(ctx context.Context, ext sqlx.ExtContext, user modelshot.NewUser) (modelshot.User, error) {
	created := modelshot.User{
		ExternalID:  user.ExternalID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		CreatedAt:   s.timestamp(),
	}
	query := ext.Rebind("INSERT INTO users (firebase_uid, email, display_name, photo_url, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id")
	err := sqlx.GetContext(ctx, ext, &created.ID, query,
		user.ExternalID,
		user.Email,
		modelstorage.ToNull(user.DisplayName),
		modelstorage.ToNull(user.AvatarURL),
		created.CreatedAt,
	)
	if err != nil {
		return modelshot.User{}, classify(err, "user", user.ExternalID)
	}
	return created, nil
}

func (s *Storage) insertPreferences(ctx context.Context, ext sqlx.ExtContext, prefs modelshot.NewPreferences) (modelshot.Preferences, error) {
	created := modelshot.Preferences{
		UserID:                 prefs.UserID,
		DefaultDeviceType:      prefs.DefaultDeviceType,
		DefaultBackgroundColor: prefs.DefaultBackgroundColor,
		DefaultFrameStyle:      prefs.DefaultFrameStyle,
		DefaultFrameColor:      prefs.DefaultFrameColor,
		UpdatedAt:              s.timestamp(),
	}
	query := ext.Rebind(`INSERT INTO user_preferences
		(user_id, default_device_type, default_background_color, default_frame_style, default_frame_color, updated_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	err := sqlx.GetContext(ctx, ext, &created.ID, query,
		prefs.UserID,
		string(prefs.DefaultDeviceType),
		prefs.DefaultBackgroundColor,
		string(prefs.DefaultFrameStyle),
		prefs.DefaultFrameColor,
		created.UpdatedAt,
	)
	if err != nil {
		return modelshot.Preferences{}, classify(err, "preferences", idKey(prefs.UserID))
	}
	return created, nil
}

// optional returns v when set, or a NULL parameter that COALESCE skips.
func optional(set bool, v string) interface{} {
	if !set {
		return nil
	}
	return v
}
