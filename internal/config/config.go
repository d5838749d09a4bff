package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all server configuration parameters.
type Config struct {
	Addr    string `env:"ADDR" envDefault:":8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	Database Database `envPrefix:"DB_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Auth     Auth     `envPrefix:"AUTH_"`
	Mail     Mail     `envPrefix:"MAIL_"`
	Reminder Reminder `envPrefix:"REMINDER_"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
}

// Database contains database connection parameters.
// Driver selects the gorm dialect: "postgres" or "mysql".
type Database struct {
	Driver   string `env:"DRIVER" envDefault:"postgres"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"jobtrack"`
	Password string `env:"PASSWORD" envDefault:"jobtrack"`
	Name     string `env:"NAME" envDefault:"jobtrack"`
}

// Redis contains session store parameters.
type Redis struct {
	Host string `env:"HOST" envDefault:"localhost"`
	Port string `env:"PORT" envDefault:"6379"`
}

// Auth contains session and token parameters.
type Auth struct {
	SessionSecret  string        `env:"SESSION_SECRET" envDefault:"default-secret-key-change-me"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"devsecret"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"72h"`
}

// Mail contains outbound SMTP parameters. When Host is empty the mailer
// logs messages instead of sending them.
type Mail struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"reminders@jobtrack.local"`
}

// Reminder contains reminder engine parameters.
type Reminder struct {
	ScanInterval time.Duration `env:"SCAN_INTERVAL" envDefault:"1m"`
	BatchSize    int           `env:"DISPATCH_BATCH_SIZE" envDefault:"100"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
