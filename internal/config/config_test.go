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
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("APP_ENV", "unit")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "referral", cfg.Service.Name)
	assert.Equal(t, "mt_ref_code", cfg.Referral.CookieName)
	assert.Equal(t, 90*24*time.Hour, cfg.Referral.CookieMaxAge)
	assert.Equal(t, 6, cfg.Referral.MinCodeLength)
	assert.Equal(t, RegistrySourceDatabase, cfg.Service.Supabase.RegistrySource)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTP.Addr())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	body := []byte("referral:\n  min_code_length: 8\nservice:\n  supabase:\n    registry_source: supabase\n    project_url: http://supabase.local\n    api_key: anon\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "referral.yaml"), body, 0o644))
	t.Setenv("CONFIG_PATH", dir)
	t.Setenv("REFERRAL_DATABASE_HOST", "db.internal")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Referral.MinCodeLength)
	assert.Equal(t, RegistrySourceSupabase, cfg.Service.Supabase.RegistrySource)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Service:  ServiceConfig{Environment: "development", Supabase: SupabaseConfig{RegistrySource: RegistrySourceDatabase}},
			Referral: ReferralConfig{MinCodeLength: 6, CookieMaxAge: time.Hour},
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Service.Supabase.RegistrySource = "ldap"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Service.Supabase.RegistrySource = RegistrySourceSupabase
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Service.Environment = "production"
	assert.Error(t, cfg.Validate(), "production requires an IP hash key")

	cfg.Referral.IPHashKey = "k"
	cfg.Service.Supabase.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())
}
