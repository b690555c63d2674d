package storage

import "github.com/yourname/sleepdiary/internal"

func NewFileRepositories(usersFile, sleepFile string, logger internal.Logger) (UserRepository, SleepLogRepository, error) {
	storage, err := NewFileStorage(usersFile, sleepFile, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (UserRepository, SleepLogRepository, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}
