package insql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage/storagetest"
)

func newSQLiteStorage(t testing.TB) *Storage {
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	st, err := open(context.Background(), db, DialectSQLite)
	require.NoError(t, err)
	return st
}

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st := NewWithDB(sqlx.NewDb(db, "pgx"), DialectPostgres)
	st.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return st, mock
}

// Tests

func TestStorageContract_SQLite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		NewStorage: func(t *testing.T) storage.Storage {
			return newSQLiteStorage(t)
		},
	})
}

func TestMigrate(t *testing.T) {
	st, _ := newMockStorage(t)
	saved := gooseUpContext
	defer func() { gooseUpContext = saved }()

	var dir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, d string, opts ...goose.OptionsFunc) error {
		dir = d
		return nil
	}
	assert.NoError(t, st.migrate(context.Background()))
	assert.Equal(t, "postgres", dir)

	gooseUpContext = func(ctx context.Context, db *sql.DB, d string, opts ...goose.OptionsFunc) error {
		return errors.New("relation already exists")
	}
	err := st.migrate(context.Background())
	var migrationErr *storageErrors.MigrationSQLError
	assert.ErrorAs(t, err, &migrationErr)
}

func TestGetUserByExternalID_Postgres(t *testing.T) {
	st, mock := newMockStorage(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "firebase_uid", "email", "display_name", "photo_url", "created_at"}).
		AddRow(int64(2), "u1", "a@b.com", "Ann", nil, created)
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE firebase_uid = \$1`).WithArgs("u1").WillReturnRows(rows)
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE firebase_uid = \$1`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	user, err := st.GetUserByExternalID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
	assert.Equal(t, "Ann", *user.DisplayName)
	assert.Nil(t, user.AvatarURL)
	assert.Equal(t, created, user.CreatedAt)

	_, err = st.GetUserByExternalID(context.Background(), "ghost")
	var notFound *storageErrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	st, mock := newMockStorage(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "a@b.com", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := st.CreateUser(context.Background(), modelshot.NewUser{ExternalID: "u1", Email: "a@b.com"})
	var exists *storageErrors.AlreadyExistsError
	assert.ErrorAs(t, err, &exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateScreenshot_ForeignKeyViolation(t *testing.T) {
	st, mock := newMockStorage(t)
	mock.ExpectQuery(`INSERT INTO screenshots`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	_, err := st.CreateScreenshot(context.Background(), modelshot.NewScreenshot{UserID: 42, URL: "https://a.dev"})
	var notFound *storageErrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user", notFound.Entity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserWithPreferences_RollsBack(t *testing.T) {
	st, mock := newMockStorage(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectQuery(`INSERT INTO user_preferences`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, _, err := st.CreateUserWithPreferences(context.Background(),
		modelshot.NewUser{ExternalID: "u1", Email: "a@b.com"}, modelshot.SeedPreferences(0))
	var execErr *storageErrors.ExecutionSQLError
	assert.ErrorAs(t, err, &execErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserWithPreferences_Commits(t *testing.T) {
	st, mock := newMockStorage(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectQuery(`INSERT INTO user_preferences`).
		WithArgs(int64(2), "mobile", "#6366F1", "framed", "#FFFFFF", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectCommit()

	user, prefs, err := st.CreateUserWithPreferences(context.Background(),
		modelshot.NewUser{ExternalID: "u1", Email: "a@b.com"}, modelshot.SeedPreferences(0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
	assert.Equal(t, int64(5), prefs.ID)
	assert.Equal(t, int64(2), prefs.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePreferences_Coalesce(t *testing.T) {
	st, mock := newMockStorage(t)
	updated := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "default_device_type", "default_background_color", "default_frame_style", "default_frame_color", "updated_at"}).
		AddRow(int64(5), int64(2), "mobile", "#6366F1", "rounded", "#FFFFFF", updated)
	mock.ExpectQuery(`UPDATE user_preferences SET`).
		WithArgs(nil, nil, "rounded", nil, updated, int64(2)).
		WillReturnRows(rows)

	prefs, err := st.UpdatePreferences(context.Background(), 2, modelshot.PreferencesPatch{
		DefaultFrameStyle: modelshot.Some(modelshot.FrameRounded),
	})
	require.NoError(t, err)
	assert.Equal(t, modelshot.FrameRounded, prefs.DefaultFrameStyle)
	assert.Equal(t, modelshot.DeviceMobile, prefs.DefaultDeviceType)
	assert.Equal(t, updated, prefs.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentScreenshots_Postgres(t *testing.T) {
	st, mock := newMockStorage(t)
	owner := int64(2)
	mock.ExpectQuery(`SELECT (.+) FROM screenshots WHERE user_id = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2`).
		WithArgs(owner, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "url", "title", "device_type", "background_color", "frame_style", "frame_color", "screenshot_url", "created_at"}))

	shots, err := st.GetRecentScreenshots(context.Background(), modelshot.ScreenshotFilter{UserID: &owner})
	require.NoError(t, err)
	assert.NotNil(t, shots)
	assert.Empty(t, shots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats_Postgres(t *testing.T) {
	st, mock := newMockStorage(t)
	mock.ExpectQuery(`SELECT`).WithArgs(modelshot.AnonymousUserID).
		WillReturnRows(sqlmock.NewRows([]string{"users", "screenshots"}).AddRow(3, 7))

	stats, err := st.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, modelshot.Stats{Users: 3, Screenshots: 7}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteScreenshot_DeadlineExceeded(t *testing.T) {
	st, mock := newMockStorage(t)
	mock.ExpectExec(`DELETE FROM screenshots WHERE id = \$1`).WithArgs(int64(3)).WillReturnError(context.DeadlineExceeded)

	err := st.DeleteScreenshot(context.Background(), 3)
	var timeout *storageErrors.ContextTimeoutExceededError
	assert.ErrorAs(t, err, &timeout)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteUniqueViolationClassified(t *testing.T) {
	st := newSQLiteStorage(t)
	defer st.CloseDB()
	ctx := context.Background()
	_, err := st.CreateUser(ctx, modelshot.NewUser{ExternalID: "u1", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = st.CreateUser(ctx, modelshot.NewUser{ExternalID: "u2", Email: "a@b.com"})
	var exists *storageErrors.AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	assert.True(t, isUniqueViolation(err))
}

// Benchmarks

func BenchmarkStorage_CreateScreenshot_SQLite(b *testing.B) {
	st := newSQLiteStorage(b)
	defer st.CloseDB()
	ctx := context.Background()
	shot := modelshot.NewScreenshot{UserID: modelshot.AnonymousUserID, URL: "https://www.some-url.com", Title: "some-url.com",
		DeviceType: modelshot.DeviceDesktop, FrameStyle: modelshot.FrameFramed}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = st.CreateScreenshot(ctx, shot)
	}
}
