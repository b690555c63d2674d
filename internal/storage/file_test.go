package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/sleepdiary/internal"
	"go.uber.org/zap"
)

func newFileStorage(t *testing.T, dir string) *FileStorage {
	t.Helper()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	store, err := NewFileStorage(filepath.Join(dir, "users.json"), filepath.Join(dir, "sleep_logs.json"), logger)
	assert.NoError(t, err)
	return store
}

func TestFileStorageDuplicateUser(t *testing.T) {
	store := newFileStorage(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	u := &internal.User{ID: "u1", Username: "alice", Email: "alice@example.com", CreatedAt: time.Now()}
	assert.NoError(t, store.CreateUser(ctx, u))

	sameName := &internal.User{ID: "u2", Username: "alice", Email: "other@example.com"}
	assert.ErrorIs(t, store.CreateUser(ctx, sameName), ErrDuplicateUser)

	sameEmail := &internal.User{ID: "u3", Username: "bob", Email: "alice@example.com"}
	assert.ErrorIs(t, store.CreateUser(ctx, sameEmail), ErrDuplicateUser)
}

func TestFileStorageUserLookups(t *testing.T) {
	store := newFileStorage(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	u := &internal.User{ID: "u1", Username: "alice", Email: "alice@example.com", CreatedAt: time.Now()}
	assert.NoError(t, store.CreateUser(ctx, u))

	byID, err := store.GetUserByID(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := store.GetUserByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, "u1", byName.ID)

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	missing, err := store.GetUserByID(ctx, "u2")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFileStorageRangeQuery(t *testing.T) {
	store := newFileStorage(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	day := func(offset int) time.Time {
		return time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}
	for i, offset := range []int{0, -10, -29, -30, -45} {
		log := &internal.SleepLog{ID: string(rune('a' + i)), UserID: "u1", Date: day(offset), MorningFeeling: internal.FeelingOK}
		assert.NoError(t, store.SaveSleepLog(ctx, log))
	}

	// Window bounds are inclusive on both ends.
	logs, err := store.ListSleepLogsInRange(ctx, "u1", day(-29), day(0))
	assert.NoError(t, err)
	assert.Len(t, logs, 3)

	logs, err = store.ListSleepLogsInRange(ctx, "u2", day(-29), day(0))
	assert.NoError(t, err)
	assert.Empty(t, logs)
}

func TestFileStorageLastSleepLog(t *testing.T) {
	store := newFileStorage(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	d1 := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, store.SaveSleepLog(ctx, &internal.SleepLog{ID: "l2", UserID: "u1", Date: d2, WakeTime: d2.Add(6 * time.Hour)}))
	assert.NoError(t, store.SaveSleepLog(ctx, &internal.SleepLog{ID: "l1", UserID: "u1", Date: d1, WakeTime: d1.Add(7 * time.Hour)}))

	last, err := store.GetLastSleepLog(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "l2", last.ID)

	none, err := store.GetLastSleepLog(ctx, "u2")
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestFileStoragePersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := newFileStorage(t, dir)
	u := &internal.User{ID: "u1", Username: "alice", Email: "alice@example.com", CreatedAt: time.Now()}
	assert.NoError(t, store.CreateUser(ctx, u))
	log := &internal.SleepLog{ID: "l1", UserID: "u1", Date: time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC), TimeInBedMinutes: 480, MorningFeeling: internal.FeelingGood}
	assert.NoError(t, store.SaveSleepLog(ctx, log))
	assert.NoError(t, store.Close())

	reloaded := newFileStorage(t, dir)
	defer reloaded.Close()

	user, err := reloaded.GetUserByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	logs, err := reloaded.ListSleepLogsByUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, int64(480), logs[0].TimeInBedMinutes)
	assert.Equal(t, internal.FeelingGood, logs[0].MorningFeeling)
}
