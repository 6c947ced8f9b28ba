package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Config struct {
	Env        string        `env:"ENVIRONMENT"`
	ServerPort int           `env:"PORT" envDefault:"3000"`
	DBPath     string        `env:"DB_PATH" envDefault:"bunkmate.sqlite"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	log *zap.Logger
}

func NewConfig(lc fx.Lifecycle, log *zap.Logger) *Config {
	cfg := &Config{log: log}
	env.Parse(cfg)

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			cfg.log.Sugar().Panic("JWT_SECRET envvar must be populated")
		}
		cfg.log.Sugar().Info("JWT_SECRET not set, using insecure default outside production")
		cfg.JWTSecret = "insecure-dev-secret"
	}

	return cfg
}
