package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/yourname/sleepdiary/internal"
)

// FileStorage keeps everything in memory and persists to JSON files with
// debounced background writers. Slices preserve insertion order, which is
// the order read operations report in; the JSON files are written in that
// same order so a restart keeps it.
type FileStorage struct {
	users          []*internal.User
	usersByID      map[string]*internal.User
	usersByName    map[string]*internal.User
	usersByEmail   map[string]*internal.User
	sleepLogs      []*internal.SleepLog
	userSleepIndex map[string][]*internal.SleepLog
	mu             sync.RWMutex
	usersFile      string
	sleepFile      string
	saveUsersChan  chan struct{}
	saveLogsChan   chan struct{}
	shutdownChan   chan struct{}
	saveDelay      time.Duration
	logger         internal.Logger
}

func NewFileStorage(usersFile, sleepFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		usersByID:      make(map[string]*internal.User),
		usersByName:    make(map[string]*internal.User),
		usersByEmail:   make(map[string]*internal.User),
		userSleepIndex: make(map[string][]*internal.SleepLog),
		usersFile:      usersFile,
		sleepFile:      sleepFile,
		saveUsersChan:  make(chan struct{}, 1),
		saveLogsChan:   make(chan struct{}, 1),
		shutdownChan:   make(chan struct{}),
		saveDelay:      500 * time.Millisecond,
		logger:         logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadSleepLogs(); err != nil {
		logger.Errorf("storage: failed to load sleep logs: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveUsersChan, s.saveUsers, "users")
	go s.saveWorker(s.saveLogsChan, s.saveSleepLogs, "sleep logs")

	return s, nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users = append(s.users, u)
		s.usersByID[u.ID] = u
		s.usersByName[u.Username] = u
		s.usersByEmail[u.Email] = u
	}
	return nil
}

func (s *FileStorage) loadSleepLogs() error {
	file, err := os.Open(s.sleepFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var logs []*internal.SleepLog
	if err := json.NewDecoder(file).Decode(&logs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range logs {
		s.sleepLogs = append(s.sleepLogs, l)
		s.userSleepIndex[l.UserID] = append(s.userSleepIndex[l.UserID], l)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, len(s.users))
	copy(users, s.users)
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveSleepLogs() error {
	s.mu.RLock()
	logs := make([]*internal.SleepLog, len(s.sleepLogs))
	copy(logs, s.sleepLogs)
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.sleepFile, logs)
}

// saveWorker batches save signals to avoid a disk write per request.
func (s *FileStorage) saveWorker(signal chan struct{}, save func() error, what string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

// Close stops the background writers and flushes pending data.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveUsers(); err != nil {
		return err
	}
	return s.saveSleepLogs()
}

// --- UserRepository ---

func (s *FileStorage) CreateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByName[user.Username]; taken {
		return ErrDuplicateUser
	}
	if _, taken := s.usersByEmail[user.Email]; taken {
		return ErrDuplicateUser
	}

	u := *user
	s.users = append(s.users, &u)
	s.usersByID[u.ID] = &u
	s.usersByName[u.Username] = &u
	s.usersByEmail[u.Email] = &u

	select {
	case s.saveUsersChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	return s.lookupUser(s.usersByID, id)
}

func (s *FileStorage) GetUserByUsername(ctx context.Context, username string) (*internal.User, error) {
	return s.lookupUser(s.usersByName, username)
}

func (s *FileStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	return s.lookupUser(s.usersByEmail, email)
}

func (s *FileStorage) lookupUser(index map[string]*internal.User, key string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := index[key]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *FileStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]internal.User, len(s.users))
	for i, u := range s.users {
		users[i] = *u
	}
	return users, nil
}

// --- SleepLogRepository ---

func (s *FileStorage) SaveSleepLog(ctx context.Context, log *internal.SleepLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := *log
	s.sleepLogs = append(s.sleepLogs, &l)
	s.userSleepIndex[l.UserID] = append(s.userSleepIndex[l.UserID], &l)

	select {
	case s.saveLogsChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) ListSleepLogsByUser(ctx context.Context, userID string) ([]internal.SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logsPtr := s.userSleepIndex[userID]
	logs := make([]internal.SleepLog, len(logsPtr))
	for i, l := range logsPtr {
		logs[i] = *l
	}
	return logs, nil
}

func (s *FileStorage) ListSleepLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := []internal.SleepLog{}
	for _, l := range s.userSleepIndex[userID] {
		if l.Date.Before(start) || l.Date.After(end) {
			continue
		}
		logs = append(logs, *l)
	}
	return logs, nil
}

func (s *FileStorage) GetLastSleepLog(ctx context.Context, userID string) (*internal.SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last *internal.SleepLog
	for _, l := range s.userSleepIndex[userID] {
		if last == nil || l.Date.After(last.Date) ||
			(l.Date.Equal(last.Date) && l.WakeTime.After(last.WakeTime)) {
			last = l
		}
	}
	if last == nil {
		return nil, nil
	}
	copied := *last
	return &copied, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*FileStorage)(nil)
var _ SleepLogRepository = (*FileStorage)(nil)
