// File: /config/config.go
package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"user:password@tcp(localhost:3306)/loopline?charset=utf8mb4&parseTime=True&loc=Local"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"your-secret-key"`

	// Sessions that sit logged-out longer than this get pruned.
	SessionMaxIdle time.Duration `env:"SESSION_MAX_IDLE" envDefault:"720h"`

	// Email configuration. Leaving SMTP_HOST empty disables outgoing mail.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"2525"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	FromEmail    string `env:"FROM_EMAIL" envDefault:"noreply@loopline.app"`
	FromName     string `env:"FROM_NAME" envDefault:"Loopline"`
}

func Load() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
