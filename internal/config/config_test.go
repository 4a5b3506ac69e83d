package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DB_URL", "")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.HTTPAddress())
	assert.Equal(t, "HospCare", cfg.DatabaseName)
	assert.Equal(t, 3*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, UploadDisk, cfg.UploadBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(5<<20), cfg.UploadMaxBytes)
	assert.Equal(t, 60*time.Second, cfg.DoctorsCacheTTL)
	assert.False(t, cfg.IsProduction())

	driver, err := cfg.StoreDriver()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, driver)
}

func TestLoadFallsBackToDBURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/hospcare")

	cfg, err := Load()
	require.NoError(t, err)
	driver, err := cfg.StoreDriver()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, driver)
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("UPLOAD_BACKEND", "S3")
	t.Setenv("S3_BUCKET", "profiles")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, UploadS3, cfg.UploadBackend)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing database", map[string]string{"DATABASE_URL": ""}, "DATABASE_URL is required"},
		{"unknown scheme", map[string]string{"DATABASE_URL": "mysql://x"}, "unsupported DATABASE_URL scheme"},
		{"missing secret", map[string]string{"JWT_SECRET": " "}, "JWT_SECRET is required"},
		{"s3 without bucket", map[string]string{"UPLOAD_BACKEND": "s3"}, "S3_BUCKET is required"},
		{"unknown upload backend", map[string]string{"UPLOAD_BACKEND": "ftp"}, "unsupported UPLOAD_BACKEND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv("S3_BUCKET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
