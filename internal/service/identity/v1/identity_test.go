package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_snapshooter/internal/mocks"
	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage/inmemory"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
)

// Tests

func TestInitResolver(t *testing.T) {
	_, err := InitResolver(nil)
	assert.Equal(t, "nil storage was passed to service initializer", err.Error())
}

func TestResolveAndSyncUser_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockStorage(ctrl)
	ctx := context.Background()
	name := "Ann"
	created := modelshot.User{ID: 2, ExternalID: "u1", Email: "a@b.com", DisplayName: &name}
	s.EXPECT().GetUserByExternalID(ctx, "u1").Return(modelshot.User{}, &storageErrors.NotFoundError{Entity: "user", Key: "u1"})
	s.EXPECT().CreateUserWithPreferences(ctx,
		modelshot.NewUser{ExternalID: "u1", Email: "a@b.com", DisplayName: &name},
		modelshot.SeedPreferences(0),
	).Return(created, modelshot.Preferences{}, nil)

	r, _ := InitResolver(s)
	user, err := r.ResolveAndSyncUser(ctx, modelshot.Profile{ExternalID: "u1", Email: "a@b.com", DisplayName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, created, user)
}

func TestResolveAndSyncUser_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockStorage(ctrl)
	ctx := context.Background()
	avatar := "https://img/a.png"
	s.EXPECT().GetUserByExternalID(ctx, "u1").Return(modelshot.User{ID: 2, ExternalID: "u1", Email: "old@b.com"}, nil)
	s.EXPECT().UpdateUser(ctx, "u1", modelshot.UserPatch{
		Email:       modelshot.Some("new@b.com"),
		DisplayName: modelshot.Some[*string](nil),
		AvatarURL:   modelshot.Some(&avatar),
	}).Return(modelshot.User{ID: 2, ExternalID: "u1", Email: "new@b.com", AvatarURL: &avatar}, nil)

	r, _ := InitResolver(s)
	user, err := r.ResolveAndSyncUser(ctx, modelshot.Profile{ExternalID: "u1", Email: "new@b.com", AvatarURL: avatar})
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
	assert.Equal(t, "new@b.com", user.Email)
}

func TestResolveAndSyncUser_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _ := InitResolver(mocks.NewMockStorage(ctrl))
	tests := []struct {
		name    string
		profile modelshot.Profile
	}{
		{name: "no external id", profile: modelshot.Profile{Email: "a@b.com"}},
		{name: "no email", profile: modelshot.Profile{ExternalID: "u1"}},
		{name: "reserved external id", profile: modelshot.Profile{ExternalID: modelshot.AnonymousExternalID, Email: "a@b.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ResolveAndSyncUser(context.Background(), tt.profile)
			var verr *serviceErrors.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestResolveAndSyncUser_Conflict(t *testing.T) {
	r, _ := InitResolver(inmemory.InitStorage())
	ctx := context.Background()
	_, err := r.ResolveAndSyncUser(ctx, modelshot.Profile{ExternalID: "u1", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = r.ResolveAndSyncUser(ctx, modelshot.Profile{ExternalID: "u2", Email: "a@b.com"})
	var conflict *serviceErrors.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestResolveAndSyncUser_Idempotent(t *testing.T) {
	st := inmemory.InitStorage()
	r, _ := InitResolver(st)
	ctx := context.Background()
	first, err := r.ResolveAndSyncUser(ctx, modelshot.Profile{ExternalID: "u1", Email: "a@b.com", DisplayName: "Ann"})
	require.NoError(t, err)
	second, err := r.ResolveAndSyncUser(ctx, modelshot.Profile{ExternalID: "u1", Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, modelshot.AnonymousUserID, first.ID)
	assert.Nil(t, second.DisplayName)

	prefs, err := st.GetPreferences(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, modelshot.SeedDeviceType, prefs.DefaultDeviceType)
	stats, err := st.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Users)
}

func TestResolveOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockStorage(ctrl)
	ctx := context.Background()
	s.EXPECT().GetUserByExternalID(ctx, "u1").Return(modelshot.User{ID: 7}, nil)
	s.EXPECT().GetUserByExternalID(ctx, "ghost").Return(modelshot.User{}, &storageErrors.NotFoundError{Entity: "user", Key: "ghost"})
	s.EXPECT().GetUserByExternalID(ctx, "broken").Return(modelshot.User{}, errors.New("generic error"))
	r, _ := InitResolver(s)

	id, err := r.ResolveOwner(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)

	id, err = r.ResolveOwner(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, modelshot.AnonymousUserID, id)

	id, err = r.ResolveOwner(ctx, "ghost")
	assert.NoError(t, err)
	assert.Equal(t, modelshot.AnonymousUserID, id)

	_, err = r.ResolveOwner(ctx, "broken")
	assert.Equal(t, errors.New("generic error"), err)
}

func TestLookupUser_NotFound(t *testing.T) {
	r, _ := InitResolver(inmemory.InitStorage())
	_, err := r.LookupUser(context.Background(), "ghost")
	var notFound *serviceErrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user", notFound.Entity)
}

// Benchmarks

func BenchmarkResolver_ResolveOwner(b *testing.B) {
	r, _ := InitResolver(inmemory.InitStorage())
	ctx := context.Background()
	_, _ = r.ResolveAndSyncUser(ctx, modelshot.Profile{ExternalID: "u1", Email: "a@b.com"})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.ResolveOwner(ctx, "u1")
	}
}
