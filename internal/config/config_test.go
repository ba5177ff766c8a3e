package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.HTTP.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "real_estate", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "public", cfg.Storage.LocalRoot)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "token", cfg.Auth.CookieName)
	assert.Empty(t, cfg.Redis.Address)
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("http:\n  port: \"8080\"\nmongo:\n  database: from_file\nstorage:\n  driver: s3\n  endpoint: minio:9000\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("ESTATE_MONGO_DATABASE", "from_env")
	t.Setenv("ESTATE_AUTH_JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "from_env", cfg.Mongo.Database)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "minio:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "Missing JWT secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "" },
			wantErr: "jwt_secret",
		},
		{
			name:    "Unknown storage driver",
			mutate:  func(c *Config) { c.Storage.Driver = "ftp" },
			wantErr: "unknown storage driver",
		},
		{
			name:    "S3 without bucket",
			mutate:  func(c *Config) { c.Storage.Driver = "s3"; c.Storage.Endpoint = "minio:9000"; c.Storage.Bucket = "" },
			wantErr: "storage.bucket",
		},
		{
			name:   "Valid local",
			mutate: func(c *Config) {},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Auth:    AuthConfig{JWTSecret: "secret"},
				Storage: StorageConfig{Driver: "local", LocalRoot: "public", Bucket: "uploads"},
			}
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
