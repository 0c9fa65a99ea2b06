package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.App.Port)
	assert.False(t, cfg.App.Debug)
	assert.False(t, cfg.Storage.Durable(), "no connection string means transient storage")
	assert.False(t, cfg.Email.Enabled(), "no API key means notifications are skipped")
	assert.Equal(t, 10*time.Second, cfg.Email.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 86400, cfg.CORS.MaxAge)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"PORT":             "9090",
		"DEBUG":            "true",
		"DATABASE_URL":     "  mongodb://localhost:27017  ",
		"MONGODB_DATABASE": "forms",
		"SENDGRID_API_KEY": "SG.key",
		"EMAIL_NOTIFY_TO":  "ops@example.com",
		"EMAIL_TIMEOUT":    "3s",
		"ALLOWED_HOSTS":    "https://a.example,https://b.example",
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.URL)
	assert.True(t, cfg.Storage.IsMongo())
	assert.Equal(t, "forms", cfg.Storage.MongoDatabase)
	assert.True(t, cfg.Email.Enabled())
	assert.Equal(t, 3*time.Second, cfg.Email.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := Parse(map[string]string{"EMAIL_TIMEOUT": "0s"})
	assert.Error(t, err)

	_, err = Parse(map[string]string{"DEBUG": "not-a-bool"})
	assert.Error(t, err)
}

func TestStorageURLKinds(t *testing.T) {
	tests := []struct {
		url      string
		mongo    bool
		postgres bool
		sqlite   bool
		scheme   string
	}{
		{url: "mongodb+srv://user:pw@cluster0.example.net/db", mongo: true, scheme: "mongodb+srv"},
		{url: "postgresql://user:pw@localhost:5432/forms", postgres: true, scheme: "postgresql"},
		{url: "postgres://localhost/forms", postgres: true, scheme: "postgres"},
		{url: "sqlite:///./inquiries.db", sqlite: true, scheme: "sqlite"},
		{url: "redis://localhost", scheme: "redis"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			c := StorageConfig{URL: tt.url}
			assert.Equal(t, tt.mongo, c.IsMongo())
			assert.Equal(t, tt.postgres, c.IsPostgres())
			assert.Equal(t, tt.sqlite, c.IsSQLite())
			assert.Equal(t, tt.scheme, c.Scheme())
		})
	}
}

func TestGetSQLitePath(t *testing.T) {
	assert.Equal(t, "./inquiries.db", (&StorageConfig{URL: "sqlite:///./inquiries.db"}).GetSQLitePath())
	assert.Equal(t, "file::memory:", (&StorageConfig{URL: "sqlite://file::memory:"}).GetSQLitePath())
}
