package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultFeedURL    = "https://archlinux.org/feeds/news/"
	DefaultStatePath  = "/var/cache/informant.json"
	DefaultDateFormat = "Mon, 02 Jan 2006 15:04:05"
	DefaultWidth      = 80

	// EnvFile is the only .env file consulted. The working directory is never
	// searched because check runs as root from a package manager hook.
	EnvFile = "/etc/informant.env"
)

type Config struct {
	FeedURL    string        `envconfig:"INFORMANT_FEED_URL" default:"https://archlinux.org/feeds/news/"`
	File       string        `envconfig:"INFORMANT_FILE" default:"/var/cache/informant.json"`
	Timeout    time.Duration `envconfig:"INFORMANT_TIMEOUT" default:"30s"`
	Agent      string        `envconfig:"INFORMANT_USER_AGENT"`
	DateFormat string        `envconfig:"INFORMANT_DATE_FORMAT" default:"Mon, 02 Jan 2006 15:04:05"`

	// Columns is only consulted when stdout is not a terminal.
	Columns int `envconfig:"COLUMNS" default:"0"`
}

// Load reads configuration from the environment, after merging EnvFile if it
// exists.
func Load() (*Config, error) {
	return LoadFile(EnvFile)
}

// LoadFile is Load with an explicit .env path. Variables already set in the
// environment take precedence over the file. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.FeedURL)
	if err != nil {
		return fmt.Errorf("invalid feed url %q: %w", c.FeedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid feed url %q: must start with http:// or https://", c.FeedURL)
	}
	if c.File == "" {
		return fmt.Errorf("state file path must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.Columns < 0 {
		return fmt.Errorf("columns must not be negative, got %d", c.Columns)
	}
	return nil
}

// UserAgent falls back to "informant/<version>" when no agent is configured.
func (c *Config) UserAgent(version string) string {
	if c.Agent != "" {
		return c.Agent
	}
	return "informant/" + version
}

// Width returns the configured fallback width, or DefaultWidth.
func (c *Config) Width() int {
	if c.Columns > 0 {
		return c.Columns
	}
	return DefaultWidth
}
