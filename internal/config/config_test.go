package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secureSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "GIN_MODE", "DB_HOST", "DB_PORT", "DB_USER", "DB_NAME", "DB_SCHEMA", "DB_SSLMODE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8006", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "fibershare_db", cfg.Database.DBName)
	assert.Equal(t, "fibershare", cfg.Database.Schema)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("DB_HOST", "db.internal")

	cfg := Load()
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.JWT.SecretKey = secureSecret
	cfg.InternalSecret = secureSecret
	require.NoError(t, cfg.Validate())
}

func TestValidate_RejectsInsecureSecrets(t *testing.T) {
	cases := []struct {
		name     string
		jwt      string
		internal string
	}{
		{"empty jwt", "", secureSecret},
		{"known default jwt", "your-secret-key-change-in-production", secureSecret},
		{"short jwt", "tooshort", secureSecret},
		{"empty internal", secureSecret, ""},
		{"known default internal", secureSecret, "internal-secret"},
		{"short internal", secureSecret, strings.Repeat("x", 31)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.JWT.SecretKey = tc.jwt
			cfg.InternalSecret = tc.internal
			require.Error(t, cfg.Validate())
		})
	}
}

func TestDSN(t *testing.T) {
	db := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "u",
		Password: "p",
		DBName:   "d",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/d?sslmode=disable", db.DSN())
}
