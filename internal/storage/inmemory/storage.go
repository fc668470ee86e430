// Package inmemory provides an ephemeral storage implementation keeping users, preferences and
// screenshots in process memory.
package inmemory

import (
	"context"
	"log"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
)

// Check interface implementation explicitly
var (
	_ storage.Storage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu               sync.Mutex
	users            map[int64]modelshot.User
	byExternalID     map[string]int64
	byEmail          map[string]int64
	prefs            map[int64]modelshot.Preferences
	screenshots      map[int64]modelshot.Screenshot
	lastUserID       int64
	lastPrefsID      int64
	lastScreenshotID int64
	now              func() time.Time
}

// InitStorage initializes a Storage object and seeds the anonymous placeholder owner.
func InitStorage() *Storage {
	st := &Storage{
		users:        make(map[int64]modelshot.User),
		byExternalID: make(map[string]int64),
		byEmail:      make(map[string]int64),
		prefs:        make(map[int64]modelshot.Preferences),
		screenshots:  make(map[int64]modelshot.Screenshot),
		now:          time.Now,
	}
	anonymous := st.insertUser(modelshot.NewUser{
		ExternalID: modelshot.AnonymousExternalID,
		Email:      modelshot.AnonymousExternalID + "@localhost",
	})
	st.insertPreferences(modelshot.SeedPreferences(anonymous.ID))
	return st
}

// GetUserByExternalID returns the user registered under externalID.
func (s *Storage) GetUserByExternalID(ctx context.Context, externalID string) (modelshot.User, error) {
	return run(ctx, "Retrieving user", &s.mu, func() (modelshot.User, error) {
		id, ok := s.byExternalID[externalID]
		if !ok {
			return modelshot.User{}, &storageErrors.NotFoundError{Entity: "user", Key: externalID}
		}
		return cloneUser(s.users[id]), nil
	})
}

// CreateUser stores a new user; external id and email must be unused.
func (s *Storage) CreateUser(ctx context.Context, user modelshot.NewUser) (modelshot.User, error) {
	return run(ctx, "Dumping user", &s.mu, func() (modelshot.User, error) {
		if err := s.checkUserUnique(user); err != nil {
			return modelshot.User{}, err
		}
		return cloneUser(s.insertUser(user)), nil
	})
}

// CreateUserWithPreferences stores a user together with its preferences under one lock.
func (s *Storage) CreateUserWithPreferences(ctx context.Context, user modelshot.NewUser, prefs modelshot.NewPreferences) (modelshot.User, modelshot.Preferences, error) {
	type pair struct {
		user  modelshot.User
		prefs modelshot.Preferences
	}
	res, err := run(ctx, "Dumping user with preferences", &s.mu, func() (pair, error) {
		if err := s.checkUserUnique(user); err != nil {
			return pair{}, err
		}
		created := s.insertUser(user)
		prefs.UserID = created.ID
		return pair{user: cloneUser(created), prefs: s.insertPreferences(prefs)}, nil
	})
	return res.user, res.prefs, err
}

// UpdateUser applies patch to the user registered under externalID.
func (s *Storage) UpdateUser(ctx context.Context, externalID string, patch modelshot.UserPatch) (modelshot.User, error) {
	return run(ctx, "Updating user", &s.mu, func() (modelshot.User, error) {
		id, ok := s.byExternalID[externalID]
		if !ok {
			return modelshot.User{}, &storageErrors.NotFoundError{Entity: "user", Key: externalID}
		}
		prior := s.users[id]
		updated := patch.Apply(prior)
		if updated.Email != prior.Email {
			if owner, taken := s.byEmail[updated.Email]; taken && owner != id {
				return modelshot.User{}, &storageErrors.AlreadyExistsError{Entity: "user", Key: updated.Email}
			}
			delete(s.byEmail, prior.Email)
			s.byEmail[updated.Email] = id
		}
		updated = cloneUser(updated)
		s.users[id] = updated
		return cloneUser(updated), nil
	})
}

// GetPreferences returns the preferences owned by userID.
func (s *Storage) GetPreferences(ctx context.Context, userID int64) (modelshot.Preferences, error) {
	return run(ctx, "Retrieving preferences", &s.mu, func() (modelshot.Preferences, error) {
		prefs, ok := s.prefs[userID]
		if !ok {
			return modelshot.Preferences{}, &storageErrors.NotFoundError{Entity: "preferences", Key: strconv.FormatInt(userID, 10)}
		}
		return prefs, nil
	})
}

// CreatePreferences stores preferences for a user that has none yet.
func (s *Storage) CreatePreferences(ctx context.Context, prefs modelshot.NewPreferences) (modelshot.Preferences, error) {
	return run(ctx, "Dumping preferences", &s.mu, func() (modelshot.Preferences, error) {
		if _, ok := s.users[prefs.UserID]; !ok {
			return modelshot.Preferences{}, &storageErrors.NotFoundError{Entity: "user", Key: strconv.FormatInt(prefs.UserID, 10)}
		}
		if _, ok := s.prefs[prefs.UserID]; ok {
			return modelshot.Preferences{}, &storageErrors.AlreadyExistsError{Entity: "preferences", Key: strconv.FormatInt(prefs.UserID, 10)}
		}
		return s.insertPreferences(prefs), nil
	})
}

// UpdatePreferences applies patch and refreshes the update timestamp.
func (s *Storage) UpdatePreferences(ctx context.Context, userID int64, patch modelshot.PreferencesPatch) (modelshot.Preferences, error) {
	return run(ctx, "Updating preferences", &s.mu, func() (modelshot.Preferences, error) {
		prior, ok := s.prefs[userID]
		if !ok {
			return modelshot.Preferences{}, &storageErrors.NotFoundError{Entity: "preferences", Key: strconv.FormatInt(userID, 10)}
		}
		updated := patch.Apply(prior)
		updated.UpdatedAt = modelshot.Timestamp(s.now())
		s.prefs[userID] = updated
		return updated, nil
	})
}

// GetScreenshot returns a screenshot by id.
func (s *Storage) GetScreenshot(ctx context.Context, id int64) (modelshot.Screenshot, error) {
	return run(ctx, "Retrieving screenshot", &s.mu, func() (modelshot.Screenshot, error) {
		shot, ok := s.screenshots[id]
		if !ok {
			return modelshot.Screenshot{}, &storageErrors.NotFoundError{Entity: "screenshot", Key: strconv.FormatInt(id, 10)}
		}
		return shot, nil
	})
}

// GetRecentScreenshots returns screenshots newest first, optionally for one owner only.
func (s *Storage) GetRecentScreenshots(ctx context.Context, filter modelshot.ScreenshotFilter) ([]modelshot.Screenshot, error) {
	return run(ctx, "Retrieving recent screenshots", &s.mu, func() ([]modelshot.Screenshot, error) {
		shots := make([]modelshot.Screenshot, 0, len(s.screenshots))
		for _, shot := range s.screenshots {
			if filter.UserID != nil && shot.UserID != *filter.UserID {
				continue
			}
			shots = append(shots, shot)
		}
		sort.Slice(shots, func(i, j int) bool {
			if !shots[i].CreatedAt.Equal(shots[j].CreatedAt) {
				return shots[i].CreatedAt.After(shots[j].CreatedAt)
			}
			return shots[i].ID > shots[j].ID
		})
		if limit := filter.EffectiveLimit(); len(shots) > limit {
			shots = shots[:limit]
		}
		return shots, nil
	})
}

// CreateScreenshot stores a new screenshot record.
func (s *Storage) CreateScreenshot(ctx context.Context, shot modelshot.NewScreenshot) (modelshot.Screenshot, error) {
	return run(ctx, "Dumping screenshot", &s.mu, func() (modelshot.Screenshot, error) {
		if _, ok := s.users[shot.UserID]; !ok {
			return modelshot.Screenshot{}, &storageErrors.NotFoundError{Entity: "user", Key: strconv.FormatInt(shot.UserID, 10)}
		}
		s.lastScreenshotID++
		created := modelshot.Screenshot{
			ID:              s.lastScreenshotID,
			UserID:          shot.UserID,
			URL:             shot.URL,
			Title:           shot.Title,
			DeviceType:      shot.DeviceType,
			BackgroundColor: shot.BackgroundColor,
			FrameStyle:      shot.FrameStyle,
			FrameColor:      shot.FrameColor,
			ScreenshotURL:   shot.ScreenshotURL,
			CreatedAt:       modelshot.Timestamp(s.now()),
		}
		s.screenshots[created.ID] = created
		return created, nil
	})
}

// DeleteScreenshot removes a screenshot; unknown ids are ignored.
func (s *Storage) DeleteScreenshot(ctx context.Context, id int64) error {
	_, err := run(ctx, "Deleting screenshot", &s.mu, func() (struct{}, error) {
		delete(s.screenshots, id)
		return struct{}{}, nil
	})
	return err
}

// GetStats counts registered users (the anonymous owner excluded) and screenshots.
func (s *Storage) GetStats(ctx context.Context) (modelshot.Stats, error) {
	return run(ctx, "Retrieving stats", &s.mu, func() (modelshot.Stats, error) {
		return modelshot.Stats{Users: len(s.users) - 1, Screenshots: len(s.screenshots)}, nil
	})
}

// PingDB is a stub satisfying storage.Pinger; memory is always reachable.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB is a stub satisfying storage.Closer.
func (s *Storage) CloseDB() error {
	return nil
}

func (s *Storage) checkUserUnique(user modelshot.NewUser) error {
	if _, ok := s.byExternalID[user.ExternalID]; ok {
		return &storageErrors.AlreadyExistsError{Entity: "user", Key: user.ExternalID}
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return &storageErrors.AlreadyExistsError{Entity: "user", Key: user.Email}
	}
	return nil
}

func (s *Storage) insertUser(user modelshot.NewUser) modelshot.User {
	s.lastUserID++
	created := cloneUser(modelshot.User{
		ID:          s.lastUserID,
		ExternalID:  user.ExternalID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		CreatedAt:   modelshot.Timestamp(s.now()),
	})
	s.users[created.ID] = created
	s.byExternalID[created.ExternalID] = created.ID
	s.byEmail[created.Email] = created.ID
	return created
}

func (s *Storage) insertPreferences(prefs modelshot.NewPreferences) modelshot.Preferences {
	s.lastPrefsID++
	created := modelshot.Preferences{
		ID:                     s.lastPrefsID,
		UserID:                 prefs.UserID,
		DefaultDeviceType:      prefs.DefaultDeviceType,
		DefaultBackgroundColor: prefs.DefaultBackgroundColor,
		DefaultFrameStyle:      prefs.DefaultFrameStyle,
		DefaultFrameColor:      prefs.DefaultFrameColor,
		UpdatedAt:              modelshot.Timestamp(s.now()),
	}
	s.prefs[created.UserID] = created
	return created
}

// cloneUser copies the optional profile fields so callers never alias stored values.
func cloneUser(u modelshot.User) modelshot.User {
	u.DisplayName = clonePtr(u.DisplayName)
	u.AvatarURL = clonePtr(u.AvatarURL)
	return u
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Call states shared by run and its worker goroutine.
const (
	callPending int32 = iota
	callRunning
	callAbandoned
)

// run executes fn under the storage lock in a goroutine and waits for either its result or
// context cancellation. A call abandoned before it acquired the lock never runs fn, and a call
// that already started is always awaited, so a reported failure never leaves a write behind.
func run[T any](ctx context.Context, op string, mu sync.Locker, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		log.Println(op+":", err)
		return zero, &storageErrors.ContextTimeoutExceededError{Err: err}
	}
	type result struct {
		val T
		err error
	}
	var state atomic.Int32
	// buffered so the goroutine never blocks after the caller gave up
	done := make(chan result, 1)
	go func() {
		mu.Lock()
		defer mu.Unlock()
		if !state.CompareAndSwap(callPending, callRunning) {
			return
		}
		if err := ctx.Err(); err != nil {
			done <- result{err: &storageErrors.ContextTimeoutExceededError{Err: err}}
			return
		}
		val, err := fn()
		done <- result{val: val, err: err}
	}()

	var res result
	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		if state.CompareAndSwap(callPending, callAbandoned) {
			log.Println(op+":", ctx.Err())
			return zero, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
		}
		res = <-done
	case res = <-done:
	}
	if res.err != nil {
		log.Println(op+":", res.err)
		return zero, res.err
	}
	log.Println(op + ": done")
	return res.val, nil
}
