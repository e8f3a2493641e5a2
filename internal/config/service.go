package config

import "time"

const (
	RegistrySourceDatabase = "database"
	RegistrySourceSupabase = "supabase"
)

type ServiceConfig struct {
	Name        string         `mapstructure:"name"`
	Environment string         `mapstructure:"environment"`
	Version     string         `mapstructure:"version"`
	Supabase    SupabaseConfig `mapstructure:"supabase"`
}

func (c ServiceConfig) IsProduction() bool {
	return c.Environment == "production"
}

type SupabaseConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	ProjectURL string `mapstructure:"project_url"`
	APIKey     string `mapstructure:"api_key"`
	// RegistrySource selects where referral codes are resolved: "database" or "supabase".
	RegistrySource string        `mapstructure:"registry_source"`
	Timeout        time.Duration `mapstructure:"timeout"`
}
