package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string   `mapstructure:"PORT"`
	Env                  string   `mapstructure:"ENV"`
	DatabaseURL          string   `mapstructure:"DATABASE_URL"`
	DBMaxConns           int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns           int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins          []string `mapstructure:"CORS_ORIGINS"`
	AuthSecret           string   `mapstructure:"AUTH_SECRET"`
	HorizonWeeks         int      `mapstructure:"HORIZON_WEEKS"`
	RenewalLookaheadDays int      `mapstructure:"RENEWAL_LOOKAHEAD_DAYS"`
	FormatterURL         string   `mapstructure:"FORMATTER_URL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("HORIZON_WEEKS", 12)
	v.SetDefault("RENEWAL_LOOKAHEAD_DAYS", 14)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("HORIZON_WEEKS")
	v.BindEnv("RENEWAL_LOOKAHEAD_DAYS")
	v.BindEnv("FORMATTER_URL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside of
// development an AUTH_SECRET must be set so that real JWT authentication
// is enforced, and the scheduling windows must be positive.
func (c *Config) Validate() error {
	if !c.IsDev() && c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET must be set when ENV=%q; refusing to start without authentication", c.Env)
	}
	if c.HorizonWeeks <= 0 {
		return fmt.Errorf("HORIZON_WEEKS must be positive, got %d", c.HorizonWeeks)
	}
	if c.RenewalLookaheadDays <= 0 {
		return fmt.Errorf("RENEWAL_LOOKAHEAD_DAYS must be positive, got %d", c.RenewalLookaheadDays)
	}
	return nil
}
