package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the shortest HS256 secret the server accepts.
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath    string `env:"INKWELL_DB_PATH" envDefault:"data/badger"`
	InMemory  bool   `env:"INKWELL_DB_IN_MEMORY" envDefault:"false"`
	BackupDir string `env:"INKWELL_BACKUP_DIR" envDefault:"data/backups"`

	ServerHost string `env:"INKWELL_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"INKWELL_SERVER_PORT" envDefault:"5000"`
	Env        string `env:"INKWELL_ENV" envDefault:"development"`

	LogLevel  string `env:"INKWELL_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"INKWELL_LOG_FORMAT" envDefault:"text"`

	JWTSecret   string        `env:"INKWELL_JWT_SECRET"`
	JWTExpire   time.Duration `env:"INKWELL_JWT_EXPIRE" envDefault:"720h"`
	BcryptCost  int           `env:"INKWELL_BCRYPT_COST" envDefault:"10"`
	AdminEmails []string      `env:"INKWELL_ADMIN_EMAILS" envSeparator:","`

	DefaultPageSize int `env:"INKWELL_DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize     int `env:"INKWELL_MAX_PAGE_SIZE" envDefault:"100"`

	// APIURL is where client commands send their requests.
	APIURL string `env:"INKWELL_API_URL" envDefault:"http://localhost:5000/api"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// ValidateServer checks the settings only the HTTP server needs.
func (c Config) ValidateServer() error {
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("INKWELL_JWT_SECRET must be at least %d bytes long, got %d bytes",
			MinJWTSecretLength, len(c.JWTSecret))
	}
	if c.JWTExpire <= 0 {
		return errors.New("INKWELL_JWT_EXPIRE must be positive")
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize <= 0 {
		return errors.New("page sizes must be positive")
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("INKWELL_DEFAULT_PAGE_SIZE (%d) exceeds INKWELL_MAX_PAGE_SIZE (%d)",
			c.DefaultPageSize, c.MaxPageSize)
	}
	return nil
}

// Load reads an optional .env file and then parses environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
