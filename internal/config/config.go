package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/booking-calendar/internal/timezone"
)

const (
	BackendRemote   = "remote"
	BackendPostgres = "postgres"
)

type Config struct {
	ServerPort string `yaml:"server_port"`
	LogLevel   string `yaml:"log_level"`

	// remote talks to the booking API, postgres keeps bookings locally
	Backend string `yaml:"booking_backend"`
	DBUrl   string `yaml:"database_url"`

	BookingAPIURL     string        `yaml:"booking_api_url"`
	BookingAPIToken   string        `yaml:"booking_api_token"`
	BookingAPITimeout time.Duration `yaml:"booking_api_timeout"`

	// empty disables token checks on workspace routes
	JWTSecret string `yaml:"jwt_secret"`

	RedisURL      string        `yaml:"redis_url"`
	SubmitLockTTL time.Duration `yaml:"submit_lock_ttl"`

	Timezone    string `yaml:"timezone"`
	RowHeightPx int    `yaml:"row_height_px"`
}

func Default() *Config {
	return &Config{
		ServerPort:        "8080",
		LogLevel:          "info",
		Backend:           BackendRemote,
		BookingAPIURL:     "https://api.oyau.kz",
		BookingAPITimeout: 10 * time.Second,
		SubmitLockTTL:     30 * time.Second,
		Timezone:          timezone.DefaultTimezone,
		RowHeightPx:       96,
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE
// (if set), then the environment. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Backend = strings.ToLower(getEnv("BOOKING_BACKEND", c.Backend))
	c.DBUrl = getEnv("DATABASE_URL", c.DBUrl)
	c.BookingAPIURL = getEnv("BOOKING_API_URL", c.BookingAPIURL)
	c.BookingAPIToken = getEnv("BOOKING_API_TOKEN", c.BookingAPIToken)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.Timezone = getEnv("TIMEZONE", c.Timezone)

	var err error
	if c.BookingAPITimeout, err = getDuration("BOOKING_API_TIMEOUT", c.BookingAPITimeout); err != nil {
		return err
	}
	if c.SubmitLockTTL, err = getDuration("SUBMIT_LOCK_TTL", c.SubmitLockTTL); err != nil {
		return err
	}
	if c.RowHeightPx, err = getInt("ROW_HEIGHT_PX", c.RowHeightPx); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendRemote:
		if c.BookingAPIURL == "" {
			return errors.New("config: BOOKING_API_URL is required for the remote backend")
		}
	case BackendPostgres:
		if c.DBUrl == "" {
			return errors.New("config: DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config: unknown BOOKING_BACKEND %q", c.Backend)
	}

	if c.BookingAPITimeout <= 0 {
		return errors.New("config: BOOKING_API_TIMEOUT must be positive")
	}
	if c.SubmitLockTTL <= 0 {
		return errors.New("config: SUBMIT_LOCK_TTL must be positive")
	}
	if c.RowHeightPx <= 0 {
		return errors.New("config: ROW_HEIGHT_PX must be positive")
	}
	if !timezone.IsValid(c.Timezone) {
		return fmt.Errorf("config: invalid TIMEZONE %q", c.Timezone)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return n, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
