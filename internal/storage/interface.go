package storage

import (
	"context"
	"errors"
	"time"

	"github.com/yourname/sleepdiary/internal"
)

// ErrDuplicateUser is returned by CreateUser when a unique index on
// username or email rejects the insert. The service layer normally
// catches duplicates before the insert; this is the backstop for the
// check-then-act race between concurrent requests.
var ErrDuplicateUser = errors.New("storage: duplicate username or email")

// Single-entity lookups return (nil, nil) when the entity is absent;
// an error means the store itself failed.
type UserRepository interface {
	CreateUser(ctx context.Context, user *internal.User) error
	GetUserByID(ctx context.Context, id string) (*internal.User, error)
	GetUserByUsername(ctx context.Context, username string) (*internal.User, error)
	GetUserByEmail(ctx context.Context, email string) (*internal.User, error)
	ListUsers(ctx context.Context) ([]internal.User, error)
}

type SleepLogRepository interface {
	SaveSleepLog(ctx context.Context, log *internal.SleepLog) error
	// ListSleepLogsByUser returns the user's logs in insertion order.
	ListSleepLogsByUser(ctx context.Context, userID string) ([]internal.SleepLog, error)
	// GetLastSleepLog returns the log with the greatest (date, wakeTime),
	// both compared descending, or (nil, nil) when the user has none.
	GetLastSleepLog(ctx context.Context, userID string) (*internal.SleepLog, error)
	// ListSleepLogsInRange returns logs whose date falls in [start, end]
	// inclusive, in insertion order.
	ListSleepLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepLog, error)
}
