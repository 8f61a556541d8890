package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads; t.Setenv restores them after the test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS",
		"STORAGE_DRIVER", "PROFILE_SLOT", "PROFILE_FILE", "DATABASE_URL",
		"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_PREFIX",
		"GITHUB_API_URL", "LOOKUP_TIMEOUT_SECONDS", "LOOKUP_RATE", "LOOKUP_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, StorageFile, cfg.StorageDriver)
	assert.Equal(t, "user", cfg.ProfileSlot)
	assert.Equal(t, "./data/profile.json", cfg.ProfileFile)
	assert.Equal(t, "https://api.github.com/", cfg.GitHubAPIURL)
	assert.Equal(t, 10*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 0.5, cfg.LookupRate)
	assert.Equal(t, 5, cfg.LookupBurst)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("GITHUB_API_URL", "http://localhost:9999/api/v3")
	t.Setenv("LOOKUP_TIMEOUT_SECONDS", "3")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "http://localhost:9999/api/v3/", cfg.GitHubAPIURL)
	assert.Equal(t, 3*time.Second, cfg.LookupTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non-numeric port", map[string]string{"PORT": "invalid"}},
		{"privileged port", map[string]string{"PORT": "80"}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "redis"}},
		{"postgres without dsn in production", map[string]string{"ENVIRONMENT": "production", "STORAGE_DRIVER": "postgres"}},
		{"s3 without bucket", map[string]string{"STORAGE_DRIVER": "s3", "S3_ENDPOINT": "http://minio:9000"}},
		{"zero timeout", map[string]string{"LOOKUP_TIMEOUT_SECONDS": "0"}},
		{"negative rate", map[string]string{"LOOKUP_RATE": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()

			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_PostgresDevelopmentDefaultDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Contains(t, cfg.DatabaseDSN, "postgres://")
}

func TestLoadConfig_S3(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET_NAME", "profiles")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_PREFIX", "ghprofile/")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "profiles", cfg.S3BucketName)
	assert.Equal(t, "ghprofile/", cfg.S3Prefix)
}
