package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string `mapstructure:"port"`
	DBDriver        string `mapstructure:"db_driver"`
	DBPath          string `mapstructure:"db_path"`
	DatabaseURL     string `mapstructure:"database_url"`
	LogMode         string `mapstructure:"log_mode"`
	DashboardMonths int    `mapstructure:"dashboard_months"`
	SeedOnStart     bool   `mapstructure:"seed_on_start"`
	CORSOrigins     string `mapstructure:"cors_allowed_origins"`
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Load reads .env (if present), an optional config.yaml from ./ or ./config/,
// and environment variables. Environment wins over file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config/")

	v.SetDefault("port", "8080")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_path", "data/app.db")
	v.SetDefault("database_url", "")
	v.SetDefault("log_mode", "development")
	v.SetDefault("dashboard_months", 6)
	v.SetDefault("seed_on_start", false)
	v.SetDefault("cors_allowed_origins", "*")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if cfg.DBDriver == "postgres" {
		cfg.DBDriver = "pgx"
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite":
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	case "pgx":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.DashboardMonths < 1 {
		return fmt.Errorf("DASHBOARD_MONTHS must be positive, got %d", c.DashboardMonths)
	}
	return nil
}

// Origins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	out := []string{}
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
