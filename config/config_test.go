package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "DB_NAME", "JWT_TTL", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "blog", cfg.DBName)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "posts")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "posts", cfg.DBName)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "blog",
		DBPassword: "secret",
		DBName:     "blog",
		DBSSLMode:  "require",
	}

	assert.Equal(t, "host=db port=5433 user=blog password=secret dbname=blog sslmode=require", cfg.DatabaseURL())
}
