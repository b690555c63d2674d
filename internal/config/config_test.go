package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	cfg := &Config{Env: "development", StorageBackend: "file", UsersFile: "u.json", SleepFile: "s.json"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Env: "development", StorageBackend: "postgres"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Env: "development", StorageBackend: "postgres", PostgresDSN: "postgres://localhost/sleep"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Env: "development", StorageBackend: "redis"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Env: "qa", StorageBackend: "file", UsersFile: "u.json", SleepFile: "s.json"}
	assert.Error(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "STORAGE_BACKEND", "HTTP_ADDR"} {
		t.Setenv(key, "") // register restore
		os.Unsetenv(key)
	}

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, ":8088", cfg.HTTPAddr)
}
