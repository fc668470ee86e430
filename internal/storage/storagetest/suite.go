// Package storagetest provides a conformance suite every storage.Storage implementation must pass.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
)

// Suite runs the shared storage contract against the backend built by NewStorage.
type Suite struct {
	suite.Suite
	NewStorage func(t *testing.T) storage.Storage
	st         storage.Storage
	ctx        context.Context
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.st = s.NewStorage(s.T())
}

func (s *Suite) TearDownTest() {
	_ = s.st.CloseDB()
}

func (s *Suite) newUser(externalID string) modelshot.User {
	user, _, err := s.st.CreateUserWithPreferences(s.ctx, modelshot.NewUser{
		ExternalID: externalID,
		Email:      externalID + "@example.com",
	}, modelshot.SeedPreferences(0))
	s.Require().NoError(err)
	return user
}

func (s *Suite) newScreenshot(userID int64, n int) modelshot.Screenshot {
	shot, err := s.st.CreateScreenshot(s.ctx, modelshot.NewScreenshot{
		UserID:          userID,
		URL:             fmt.Sprintf("https://www.site%d.dev", n),
		Title:           fmt.Sprintf("site%d.dev", n),
		DeviceType:      modelshot.DeviceDesktop,
		BackgroundColor: "#000",
		FrameStyle:      modelshot.FrameRounded,
		FrameColor:      "#111",
		ScreenshotURL:   fmt.Sprintf("https://api.screenshotone.com/take?url=site%d", n),
	})
	s.Require().NoError(err)
	return shot
}

func (s *Suite) TestAnonymousOwnerSeeded() {
	user, err := s.st.GetUserByExternalID(s.ctx, modelshot.AnonymousExternalID)
	s.Require().NoError(err)
	s.Equal(modelshot.AnonymousUserID, user.ID)
	prefs, err := s.st.GetPreferences(s.ctx, modelshot.AnonymousUserID)
	s.Require().NoError(err)
	s.Equal(modelshot.SeedDeviceType, prefs.DefaultDeviceType)
}

func (s *Suite) TestCreateUserWithPreferences() {
	name := "Ann"
	user, prefs, err := s.st.CreateUserWithPreferences(s.ctx, modelshot.NewUser{
		ExternalID:  "u1",
		Email:       "a@b.com",
		DisplayName: &name,
	}, modelshot.SeedPreferences(0))
	s.Require().NoError(err)
	s.Greater(user.ID, modelshot.AnonymousUserID)
	s.Equal(user.ID, prefs.UserID)
	s.Equal(modelshot.DeviceMobile, prefs.DefaultDeviceType)
	s.Equal("#6366F1", prefs.DefaultBackgroundColor)
	s.Equal(modelshot.FrameFramed, prefs.DefaultFrameStyle)
	s.Equal("#FFFFFF", prefs.DefaultFrameColor)

	got, err := s.st.GetUserByExternalID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(user, got)
	s.Require().NotNil(got.DisplayName)
	s.Equal("Ann", *got.DisplayName)
	s.Nil(got.AvatarURL)

	stored, err := s.st.GetPreferences(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(prefs, stored)
}

func (s *Suite) TestCreateUserWithPreferences_ConflictLeavesNothing() {
	s.newUser("u1")
	_, _, err := s.st.CreateUserWithPreferences(s.ctx, modelshot.NewUser{
		ExternalID: "u2",
		Email:      "u1@example.com",
	}, modelshot.SeedPreferences(0))
	var alreadyExists *storageErrors.AlreadyExistsError
	s.True(errors.As(err, &alreadyExists))
	_, err = s.st.GetUserByExternalID(s.ctx, "u2")
	var notFound *storageErrors.NotFoundError
	s.True(errors.As(err, &notFound))
}

func (s *Suite) TestCreateUser_Conflict() {
	_, err := s.st.CreateUser(s.ctx, modelshot.NewUser{ExternalID: "u1", Email: "a@b.com"})
	s.Require().NoError(err)
	var alreadyExists *storageErrors.AlreadyExistsError
	_, err = s.st.CreateUser(s.ctx, modelshot.NewUser{ExternalID: "u1", Email: "other@b.com"})
	s.True(errors.As(err, &alreadyExists))
	_, err = s.st.CreateUser(s.ctx, modelshot.NewUser{ExternalID: "u2", Email: "a@b.com"})
	s.True(errors.As(err, &alreadyExists))
}

func (s *Suite) TestGetUserByExternalID_NotFound() {
	_, err := s.st.GetUserByExternalID(s.ctx, "missing")
	var notFound *storageErrors.NotFoundError
	s.True(errors.As(err, &notFound))
}

func (s *Suite) TestUpdateUser() {
	created := s.newUser("u1")
	avatar := "https://img.example.com/a.png"
	updated, err := s.st.UpdateUser(s.ctx, "u1", modelshot.UserPatch{
		Email:     modelshot.Some("new@b.com"),
		AvatarURL: modelshot.Some(&avatar),
	})
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID)
	s.Equal("new@b.com", updated.Email)
	s.Require().NotNil(updated.AvatarURL)
	s.Equal(avatar, *updated.AvatarURL)
	s.Equal(created.CreatedAt, updated.CreatedAt)

	cleared, err := s.st.UpdateUser(s.ctx, "u1", modelshot.UserPatch{AvatarURL: modelshot.Some[*string](nil)})
	s.Require().NoError(err)
	s.Nil(cleared.AvatarURL)
	s.Equal("new@b.com", cleared.Email)

	// the old email is free again
	_, err = s.st.CreateUser(s.ctx, modelshot.NewUser{ExternalID: "u2", Email: "u1@example.com"})
	s.NoError(err)
}

func (s *Suite) TestUpdateUser_Fail() {
	s.newUser("u1")
	s.newUser("u2")
	var notFound *storageErrors.NotFoundError
	_, err := s.st.UpdateUser(s.ctx, "missing", modelshot.UserPatch{Email: modelshot.Some("x@y.z")})
	s.True(errors.As(err, &notFound))
	var alreadyExists *storageErrors.AlreadyExistsError
	_, err = s.st.UpdateUser(s.ctx, "u1", modelshot.UserPatch{Email: modelshot.Some("u2@example.com")})
	s.True(errors.As(err, &alreadyExists))
}

func (s *Suite) TestCreatePreferences() {
	user, err := s.st.CreateUser(s.ctx, modelshot.NewUser{ExternalID: "u1", Email: "a@b.com"})
	s.Require().NoError(err)
	_, err = s.st.GetPreferences(s.ctx, user.ID)
	var notFound *storageErrors.NotFoundError
	s.True(errors.As(err, &notFound))

	prefs, err := s.st.CreatePreferences(s.ctx, modelshot.SeedPreferences(user.ID))
	s.Require().NoError(err)
	s.Equal(user.ID, prefs.UserID)

	var alreadyExists *storageErrors.AlreadyExistsError
	_, err = s.st.CreatePreferences(s.ctx, modelshot.SeedPreferences(user.ID))
	s.True(errors.As(err, &alreadyExists))

	_, err = s.st.CreatePreferences(s.ctx, modelshot.SeedPreferences(9999))
	s.True(errors.As(err, &notFound))
}

func (s *Suite) TestUpdatePreferences() {
	user := s.newUser("u1")
	prior, err := s.st.GetPreferences(s.ctx, user.ID)
	s.Require().NoError(err)

	updated, err := s.st.UpdatePreferences(s.ctx, user.ID, modelshot.PreferencesPatch{
		DefaultFrameStyle: modelshot.Some(modelshot.FrameRounded),
	})
	s.Require().NoError(err)
	s.Equal(modelshot.FrameRounded, updated.DefaultFrameStyle)
	s.False(updated.UpdatedAt.Before(prior.UpdatedAt))
	expected := prior
	expected.DefaultFrameStyle = modelshot.FrameRounded
	expected.UpdatedAt = updated.UpdatedAt
	s.Equal(expected, updated)

	stored, err := s.st.GetPreferences(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(updated, stored)

	var notFound *storageErrors.NotFoundError
	_, err = s.st.UpdatePreferences(s.ctx, 9999, modelshot.PreferencesPatch{})
	s.True(errors.As(err, &notFound))
}

func (s *Suite) TestScreenshotRoundTrip() {
	user := s.newUser("u1")
	created := s.newScreenshot(user.ID, 1)
	s.Greater(created.ID, int64(0))
	got, err := s.st.GetScreenshot(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, got)

	var notFound *storageErrors.NotFoundError
	_, err = s.st.CreateScreenshot(s.ctx, modelshot.NewScreenshot{UserID: 9999, URL: "https://x.dev"})
	s.True(errors.As(err, &notFound))
}

func (s *Suite) TestGetRecentScreenshots() {
	user := s.newUser("u1")
	var ownIDs []int64
	for i := 0; i < 12; i++ {
		owner := modelshot.AnonymousUserID
		if i%3 == 0 {
			owner = user.ID
		}
		shot := s.newScreenshot(owner, i)
		if owner == user.ID {
			ownIDs = append(ownIDs, shot.ID)
		}
	}

	all, err := s.st.GetRecentScreenshots(s.ctx, modelshot.ScreenshotFilter{})
	s.Require().NoError(err)
	s.Len(all, modelshot.DefaultRecentLimit)
	s.assertNewestFirst(all)

	limited, err := s.st.GetRecentScreenshots(s.ctx, modelshot.ScreenshotFilter{Limit: 3})
	s.Require().NoError(err)
	s.Len(limited, 3)
	s.Equal(all[:3], limited)

	own, err := s.st.GetRecentScreenshots(s.ctx, modelshot.ScreenshotFilter{UserID: &user.ID, Limit: 50})
	s.Require().NoError(err)
	s.Len(own, len(ownIDs))
	s.assertNewestFirst(own)
	for i, shot := range own {
		s.Equal(user.ID, shot.UserID)
		s.Equal(ownIDs[len(ownIDs)-1-i], shot.ID)
	}

	nobody := int64(9999)
	none, err := s.st.GetRecentScreenshots(s.ctx, modelshot.ScreenshotFilter{UserID: &nobody})
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *Suite) assertNewestFirst(shots []modelshot.Screenshot) {
	for i := 1; i < len(shots); i++ {
		s.False(shots[i-1].CreatedAt.Before(shots[i].CreatedAt), "row %d is older than row %d", i-1, i)
		if shots[i-1].CreatedAt.Equal(shots[i].CreatedAt) {
			s.Greater(shots[i-1].ID, shots[i].ID)
		}
	}
}

func (s *Suite) TestDeleteScreenshot() {
	kept := s.newScreenshot(modelshot.AnonymousUserID, 1)
	deleted := s.newScreenshot(modelshot.AnonymousUserID, 2)

	s.Require().NoError(s.st.DeleteScreenshot(s.ctx, deleted.ID))
	s.Require().NoError(s.st.DeleteScreenshot(s.ctx, deleted.ID))
	s.Require().NoError(s.st.DeleteScreenshot(s.ctx, 9999))

	_, err := s.st.GetScreenshot(s.ctx, deleted.ID)
	var notFound *storageErrors.NotFoundError
	s.True(errors.As(err, &notFound))
	got, err := s.st.GetScreenshot(s.ctx, kept.ID)
	s.Require().NoError(err)
	s.Equal(kept, got)

	// ids are never reused
	next := s.newScreenshot(modelshot.AnonymousUserID, 3)
	s.Greater(next.ID, deleted.ID)
}

func (s *Suite) TestGetStats() {
	stats, err := s.st.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(modelshot.Stats{}, stats)

	user := s.newUser("u1")
	s.newScreenshot(user.ID, 1)
	s.newScreenshot(modelshot.AnonymousUserID, 2)
	stats, err = s.st.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(modelshot.Stats{Users: 1, Screenshots: 2}, stats)
}

func (s *Suite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.st.GetUserByExternalID(ctx, modelshot.AnonymousExternalID)
	var timeout *storageErrors.ContextTimeoutExceededError
	s.True(errors.As(err, &timeout))
}
