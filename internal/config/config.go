package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const EnvDevelopment = "development"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string   `env:"BASE_URL" envDefault:"http://localhost:3000"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`
	Database    Database

	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
	Mail     Mail     `envPrefix:"MAIL_"`
	Auth     Auth     `envPrefix:"AUTH_"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
}

type Mail struct {
	FromAddress    string `env:"FROM_ADDRESS" envDefault:"no-reply@localhost"`
	FromName       string `env:"FROM_NAME" envDefault:"Lab Dashboard"`
	SendgridAPIKey string `env:"SENDGRID_API_KEY"`
}

type Auth struct {
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	SessionSecret string        `env:"SESSION_SECRET"`
}

type Database struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
	URL    string `env:"DATABASE_URL" envDefault:"lab-portal.db"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsDevelopment() bool {
	return e.Name == EnvDevelopment
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host      string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port      string `env:"HTTP_PORT" envDefault:"8080"`
	BodyLimit string `env:"HTTP_BODY_LIMIT" envDefault:"16M"`
}

func (h HTTPServer) Address() string {
	return h.Host + ":" + h.Port
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Environment.IsDevelopment() {
		return nil
	}
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("AUTH_SESSION_SECRET is required outside development")
	}
	if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
		return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required outside development")
	}
	return nil
}
