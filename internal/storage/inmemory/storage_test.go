package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage/storagetest"
)

// Tests

func TestStorageContract(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		NewStorage: func(t *testing.T) storage.Storage {
			return InitStorage()
		},
	})
}

func TestReturnedUserDoesNotAliasStorage(t *testing.T) {
	st := InitStorage()
	ctx := context.Background()
	name := "Ann"
	user, _, err := st.CreateUserWithPreferences(ctx, modelshot.NewUser{ExternalID: "u1", Email: "a@b.com", DisplayName: &name}, modelshot.SeedPreferences(0))
	assert.NoError(t, err)
	name = "changed by caller"
	*user.DisplayName = "changed again"
	got, err := st.GetUserByExternalID(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "Ann", *got.DisplayName)
}

func TestPingAndClose(t *testing.T) {
	st := InitStorage()
	assert.NoError(t, st.PingDB())
	assert.NoError(t, st.CloseDB())
}

func TestTimedOutWriteLeavesNothing(t *testing.T) {
	st := InitStorage()
	shot := modelshot.NewScreenshot{UserID: modelshot.AnonymousUserID, URL: "https://test.dev", Title: "test.dev"}
	user := modelshot.NewUser{ExternalID: "u1", Email: "a@b.com"}

	// the lock stays busy past both deadlines
	st.mu.Lock()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := st.CreateScreenshot(ctx, shot)
	var timeoutErr *storageErrors.ContextTimeoutExceededError
	assert.True(t, errors.As(err, &timeoutErr))
	_, _, err = st.CreateUserWithPreferences(ctx, user, modelshot.SeedPreferences(0))
	assert.True(t, errors.As(err, &timeoutErr))
	st.mu.Unlock()

	ctx = context.Background()
	shots, err := st.GetRecentScreenshots(ctx, modelshot.ScreenshotFilter{})
	require.NoError(t, err)
	assert.Empty(t, shots)
	_, err = st.GetUserByExternalID(ctx, "u1")
	var notFound *storageErrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestWriteCompletedBeforeDeadlineIsReported(t *testing.T) {
	st := InitStorage()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	shot, err := st.CreateScreenshot(ctx, modelshot.NewScreenshot{UserID: modelshot.AnonymousUserID, URL: "https://test.dev", Title: "test.dev"})
	require.NoError(t, err)
	got, err := st.GetScreenshot(context.Background(), shot.ID)
	require.NoError(t, err)
	assert.Equal(t, shot.ID, got.ID)
}

// Benchmarks

func BenchmarkStorage_CreateScreenshot(b *testing.B) {
	st := InitStorage()
	ctx := context.Background()
	shot := modelshot.NewScreenshot{UserID: modelshot.AnonymousUserID, URL: "https://www.some-url.com", Title: "some-url.com"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = st.CreateScreenshot(ctx, shot)
	}
}

func BenchmarkStorage_GetRecentScreenshots(b *testing.B) {
	st := InitStorage()
	ctx := context.Background()
	shot := modelshot.NewScreenshot{UserID: modelshot.AnonymousUserID, URL: "https://www.some-url.com", Title: "some-url.com"}
	for i := 0; i < 100; i++ {
		_, _ = st.CreateScreenshot(ctx, shot)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = st.GetRecentScreenshots(ctx, modelshot.ScreenshotFilter{})
	}
}
