package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"movielist-cli/catalog"
	"movielist-cli/service"
	"movielist-cli/store"
)

const appDir = "movielist-cli"

type Config struct {
	APIBaseURL   string         `yaml:"api_base_url"`
	Timeout      time.Duration  `yaml:"timeout"`
	MaxAttempts  int            `yaml:"max_attempts"`
	RateLimit    float64        `yaml:"rate_limit"`
	FilterPolicy catalog.Policy `yaml:"filter_policy"`
	Locale       string         `yaml:"locale"`
	CacheTTL     time.Duration  `yaml:"cache_ttl"`
	LogFile      string         `yaml:"log_file"`
	Debug        bool           `yaml:"debug"`
}

func Defaults() Config {
	return Config{
		APIBaseURL:   service.DefaultBaseURL,
		Timeout:      12 * time.Second,
		MaxAttempts:  3,
		RateLimit:    8,
		FilterPolicy: catalog.PolicyIndependent,
		Locale:       "en",
		CacheTTL:     store.DefaultTTL,
		LogFile:      defaultLogFile(),
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, "config.yaml")
}

// Load applies defaults, then the YAML file at path (a missing file is fine),
// then MOVIELIST_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.APIBaseURL = env("MOVIELIST_API_URL", c.APIBaseURL)
	c.Locale = env("MOVIELIST_LOCALE", c.Locale)
	c.LogFile = env("MOVIELIST_LOG_FILE", c.LogFile)
	c.FilterPolicy = catalog.Policy(env("MOVIELIST_FILTER_POLICY", string(c.FilterPolicy)))
	if v := os.Getenv("MOVIELIST_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MOVIELIST_DEBUG: %w", err)
		}
		c.Debug = debug
	}
	if v := os.Getenv("MOVIELIST_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MOVIELIST_CACHE_TTL: %w", err)
		}
		c.CacheTTL = ttl
	}
	if v := os.Getenv("MOVIELIST_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MOVIELIST_MAX_ATTEMPTS: %w", err)
		}
		c.MaxAttempts = n
	}
	return nil
}

func (c *Config) Validate() error {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		return errors.New("api base url is required")
	}
	policy, err := catalog.ParsePolicy(string(c.FilterPolicy))
	if err != nil {
		return err
	}
	c.FilterPolicy = policy
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.Timeout <= 0 {
		c.Timeout = Defaults().Timeout
	}
	return nil
}

// Language is the collation tag for title sorting.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDir+".log")
	}
	return filepath.Join(dir, appDir, appDir+".log")
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
