package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DevJWTSecret is the signing key used when none is configured. It is
// refused in production.
const DevJWTSecret = "worktrack-dev-secret-change-me"

type Config struct {
	Port            string        `yaml:"port"             env:"PORT"             env-default:"8081"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Env      string `yaml:"env"       env:"ENV"       env-default:"development"`

	JWTSecret  string        `yaml:"jwt_secret"  env:"JWT_SECRET"  env-default:"worktrack-dev-secret-change-me"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"24h"`

	// Both optional. Without DatabaseURL workspaces live in memory only;
	// without RedisURL events are delivered within this process.
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL    string `yaml:"redis_url"    env:"REDIS_URL"`

	CascadeJobDelete bool `yaml:"cascade_job_delete" env:"CASCADE_JOB_DELETE" env-default:"false"`
	SeedDemo         bool `yaml:"seed_demo"          env:"SEED_DEMO"          env-default:"true"`
}

// LoadConfig reads configuration with priority ENV > YAML > defaults. The
// YAML path comes from CONFIG_PATH (fallback "./config.yaml"); a missing
// file is only an error when CONFIG_PATH was set explicitly.
func LoadConfig() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must be set")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %v)", c.SessionTTL)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must be set")
	}
	if c.IsProduction() {
		if c.JWTSecret == DevJWTSecret {
			return fmt.Errorf("jwt_secret must be changed in production")
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(c.JWTSecret))
		}
	}
	return nil
}
