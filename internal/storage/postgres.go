package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/sleepdiary/internal"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_username_idx ON users (username);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (email);

CREATE TABLE IF NOT EXISTS sleep_logs (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users (id),
	date DATE NOT NULL,
	bed_time TIMESTAMP NOT NULL,
	wake_time TIMESTAMP NOT NULL,
	time_in_bed_minutes BIGINT NOT NULL,
	morning_feeling TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	seq BIGSERIAL
);
CREATE INDEX IF NOT EXISTS sleep_logs_user_date_idx ON sleep_logs (user_id, date);
`

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// Migrate applies the schema. Idempotent; run via the migrate command.
func (p *PostgresStorage) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schema)
	if err != nil {
		p.logger.Errorf("failed to apply schema: %v", err)
	}
	return err
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- UserRepository ---

func (p *PostgresStorage) CreateUser(ctx context.Context, user *internal.User) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, username, email, created_at) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.Email, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	return p.getUser(ctx, `SELECT id, username, email, created_at FROM users WHERE id = $1`, id)
}

func (p *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*internal.User, error) {
	return p.getUser(ctx, `SELECT id, username, email, created_at FROM users WHERE username = $1`, username)
}

func (p *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	return p.getUser(ctx, `SELECT id, username, email, created_at FROM users WHERE email = $1`, email)
}

func (p *PostgresStorage) getUser(ctx context.Context, query, arg string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, query, arg)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		p.logger.Errorf("failed to query user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, username, email, created_at FROM users ORDER BY created_at`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := []internal.User{}
	for rows.Next() {
		var u internal.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// --- SleepLogRepository ---

func (p *PostgresStorage) SaveSleepLog(ctx context.Context, log *internal.SleepLog) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO sleep_logs (id, user_id, date, bed_time, wake_time, time_in_bed_minutes, morning_feeling, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID, log.UserID, log.Date, log.BedTime, log.WakeTime, log.TimeInBedMinutes, log.MorningFeeling, log.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert sleep log: %v", err)
		return err
	}
	return nil
}

const sleepLogColumns = `id, user_id, date, bed_time, wake_time, time_in_bed_minutes, morning_feeling, created_at`

func (p *PostgresStorage) ListSleepLogsByUser(ctx context.Context, userID string) ([]internal.SleepLog, error) {
	return p.querySleepLogs(ctx, `SELECT `+sleepLogColumns+` FROM sleep_logs WHERE user_id = $1 ORDER BY seq`, userID)
}

func (p *PostgresStorage) ListSleepLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepLog, error) {
	return p.querySleepLogs(ctx, `SELECT `+sleepLogColumns+` FROM sleep_logs WHERE user_id = $1 AND date BETWEEN $2 AND $3 ORDER BY seq`, userID, start, end)
}

func (p *PostgresStorage) GetLastSleepLog(ctx context.Context, userID string) (*internal.SleepLog, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+sleepLogColumns+` FROM sleep_logs WHERE user_id = $1 ORDER BY date DESC, wake_time DESC LIMIT 1`, userID)
	var l internal.SleepLog
	if err := row.Scan(&l.ID, &l.UserID, &l.Date, &l.BedTime, &l.WakeTime, &l.TimeInBedMinutes, &l.MorningFeeling, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		p.logger.Errorf("failed to query last sleep log: %v", err)
		return nil, err
	}
	return &l, nil
}

func (p *PostgresStorage) querySleepLogs(ctx context.Context, query string, args ...interface{}) ([]internal.SleepLog, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query sleep logs: %v", err)
		return nil, err
	}
	defer rows.Close()

	logs := []internal.SleepLog{}
	for rows.Next() {
		var l internal.SleepLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.BedTime, &l.WakeTime, &l.TimeInBedMinutes, &l.MorningFeeling, &l.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan sleep log: %v", err)
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ SleepLogRepository = (*PostgresStorage)(nil)
