package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/ArtLegends/medtravel-main-sub002/pkg/config"
)

type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mail     MailConfig     `mapstructure:"mail"`
	Referral ReferralConfig `mapstructure:"referral"`
	GeoIP    GeoIPConfig    `mapstructure:"geoip"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Output      string `mapstructure:"output"`
	Development bool   `mapstructure:"development"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type MailConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	SenderEmail string `mapstructure:"sender_email"`
	SMTPHost    string `mapstructure:"smtp_host"`
	SMTPPort    int    `mapstructure:"smtp_port"`
	SMTPUser    string `mapstructure:"smtp_user"`
	SMTPPass    string `mapstructure:"smtp_pass"`
}

type GeoIPConfig struct {
	// DatabasePath points at a GeoLite2-Country/City mmdb file. Empty disables lookups.
	DatabasePath string `mapstructure:"database_path"`
}

// ReferralConfig holds attribution pipeline settings.
type ReferralConfig struct {
	CookieName    string        `mapstructure:"cookie_name"`
	CookieMaxAge  time.Duration `mapstructure:"cookie_max_age"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
	CookieDomain  string        `mapstructure:"cookie_domain"`
	MinCodeLength int           `mapstructure:"min_code_length"`
	LoginRedirect string        `mapstructure:"login_redirect"`
	// IPHashKey keys the BLAKE2b hash applied to client IPs before storage.
	IPHashKey string `mapstructure:"ip_hash_key"`

	// SideEffectTimeout bounds each notification step. Steps run inline, so a
	// bind or lead attach can wait up to this long per step on a slow SMTP relay.
	SideEffectTimeout time.Duration `mapstructure:"side_effect_timeout"`
	PrincipalCacheTTL time.Duration `mapstructure:"principal_cache_ttl"`
	PrincipalCacheMax int           `mapstructure:"principal_cache_max"`
}

// Defaults are registered with viper so env overrides resolve for every key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":                     "referral",
		"service.environment":              "development",
		"service.version":                  "dev",
		"service.supabase.registry_source": RegistrySourceDatabase,
		"service.supabase.jwt_secret":      "",
		"service.supabase.project_url":     "",
		"service.supabase.api_key":         "",
		"service.supabase.timeout":         "5s",

		"database.host":               "localhost",
		"database.port":               5432,
		"database.name":               "medtravel",
		"database.user":               "postgres",
		"database.password":           "",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     20,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "30m",
		"database.conn_max_idle_time": "5m",
		"database.slow_threshold":     "200ms",
		"database.auto_migrate":       true,

		"server.http.host":    "0.0.0.0",
		"server.http.port":    8080,
		"server.http.timeout": "30s",
		"server.grpc.host":    "0.0.0.0",
		"server.grpc.port":    9090,

		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.development": false,

		"redis.enabled":  false,
		"redis.addr":     "localhost:6379",
		"redis.password": "",
		"redis.db":       0,
		"redis.channel":  "referral.events",

		"mail.enabled":      false,
		"mail.sender_email": "",
		"mail.smtp_host":    "",
		"mail.smtp_port":    587,
		"mail.smtp_user":    "",
		"mail.smtp_pass":    "",

		"referral.cookie_name":         "mt_ref_code",
		"referral.cookie_max_age":      "2160h",
		"referral.cookie_secure":       false,
		"referral.cookie_domain":       "",
		"referral.min_code_length":     6,
		"referral.login_redirect":      "/login",
		"referral.ip_hash_key":         "",
		"referral.side_effect_timeout": "3s",
		"referral.principal_cache_ttl": "5m",
		"referral.principal_cache_max": 10000,

		"geoip.database_path": "",
	}
}

func LoadConfig() (*Config, error) {
	raw, err := pkgconfig.Load("referral", Defaults())
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := raw.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	if c.Referral.MinCodeLength < 1 {
		return fmt.Errorf("referral.min_code_length must be positive, got %d", c.Referral.MinCodeLength)
	}
	if c.Referral.CookieMaxAge <= 0 {
		return fmt.Errorf("referral.cookie_max_age must be positive")
	}
	switch c.Service.Supabase.RegistrySource {
	case RegistrySourceDatabase:
	case RegistrySourceSupabase:
		if c.Service.Supabase.ProjectURL == "" || c.Service.Supabase.APIKey == "" {
			return fmt.Errorf("supabase registry source requires project_url and api_key")
		}
	default:
		return fmt.Errorf("unknown registry source %q", c.Service.Supabase.RegistrySource)
	}
	if c.Service.IsProduction() {
		if c.Referral.IPHashKey == "" {
			return fmt.Errorf("referral.ip_hash_key is required in production")
		}
		if c.Service.Supabase.JWTSecret == "" {
			return fmt.Errorf("service.supabase.jwt_secret is required in production")
		}
	}
	return nil
}
