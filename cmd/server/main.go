package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yourname/sleepdiary/internal"
	"github.com/yourname/sleepdiary/internal/api"
	"github.com/yourname/sleepdiary/internal/config"
	"github.com/yourname/sleepdiary/internal/storage"
)

type application struct {
	logger    internal.Logger
	users     storage.UserRepository
	sleepLogs storage.SleepLogRepository
}

func (a *application) Logger() internal.Logger               { return a.logger }
func (a *application) Users() storage.UserRepository         { return a.users }
func (a *application) SleepLogs() storage.SleepLogRepository { return a.sleepLogs }

func setup() (*config.Config, internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	var users storage.UserRepository
	var sleepLogs storage.SleepLogRepository
	switch cfg.StorageBackend {
	case "postgres":
		users, sleepLogs, err = storage.NewPostgresRepositories(cfg.PostgresDSN, logger)
	default:
		for _, f := range []string{cfg.UsersFile, cfg.SleepFile} {
			if err := os.MkdirAll(filepath.Dir(f), 0755); err != nil {
				return err
			}
		}
		users, sleepLogs, err = storage.NewFileRepositories(cfg.UsersFile, cfg.SleepFile, logger)
	}
	if err != nil {
		return err
	}
	if closer, ok := users.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	app := &application{logger: logger, users: users, sleepLogs: sleepLogs}
	r := api.NewRouter(app)

	logger.Infof("server running on %s (storage=%s)", cfg.HTTPAddr, cfg.StorageBackend)
	return r.Run(cfg.HTTPAddr)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if cfg.PostgresDSN == "" {
		return errors.New("migrate requires POSTGRES_DSN")
	}
	store, err := storage.NewPostgresStorage(cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		return err
	}
	logger.Info("schema applied")
	return nil
}

func main() {
	root := &cobra.Command{
		Use:          "sleepdiary",
		Short:        "Sleep diary backend",
		SilenceUsage: true,
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres schema",
		RunE:  runMigrate,
	})

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
