package pubdesk

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a pubdesk instance.
type SiteConfig struct {
	Name string `yaml:"name"` // Shown in titles and the sidebar (default "pubdesk")
	Addr string `yaml:"addr"` // Listen address (default ":3000")

	APIURL         string        `yaml:"api_url"`         // Required: content API root
	AuthURL        string        `yaml:"auth_url"`        // Auth API root (default APIURL)
	RequestTimeout time.Duration `yaml:"request_timeout"` // Per upstream call (default 15s)

	SessionSecret string `yaml:"session_secret"` // Required: session cookie key
	CookieSecure  bool   `yaml:"cookie_secure"`  // Set true for HTTPS

	PrefsDatabasePath string        `yaml:"prefs_database_path"` // SQLite path (default "data/prefs.db")
	CacheTTL          time.Duration `yaml:"cache_ttl"`           // Content type/media cache TTL (default 2min)
	EditorTimeZone    string        `yaml:"editor_time_zone"`    // Zone for schedule inputs (default "UTC")
	LogLevel          string        `yaml:"log_level"`           // debug, info, warn, error (default "info")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "pubdesk"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.AuthURL == "" {
		c.AuthURL = c.APIURL
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 15 * time.Second
	}
	if c.PrefsDatabasePath == "" {
		c.PrefsDatabasePath = "data/prefs.db"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 2 * time.Minute
	}
	if c.EditorTimeZone == "" {
		c.EditorTimeZone = "UTC"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *SiteConfig) validate() error {
	var errs []error
	if c.APIURL == "" {
		errs = append(errs, errors.New("APIURL is required"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SessionSecret is required"))
	} else if len(c.SessionSecret) < 32 {
		errs = append(errs, errors.New("SessionSecret must be at least 32 bytes"))
	}
	if _, err := time.LoadLocation(c.EditorTimeZone); err != nil {
		errs = append(errs, fmt.Errorf("EditorTimeZone: %w", err))
	}
	return errors.Join(errs...)
}

// location returns the editor time zone, falling back to UTC.
func (c *SiteConfig) location() *time.Location {
	loc, err := time.LoadLocation(c.EditorTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfig builds a SiteConfig from, in increasing priority: the YAML
// file at path (optional), .env files, and PUBDESK_* environment variables.
// .env files are read from ENV_FILE if set, otherwise .env.local then .env;
// missing files are ignored.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if err := loadEnvFiles(); err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("pubdesk: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("pubdesk: parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("pubdesk: load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("pubdesk: load %s: %w", f, err)
		}
	}
	return nil
}

func (c *SiteConfig) applyEnv() error {
	strs := map[string]*string{
		"PUBDESK_NAME":           &c.Name,
		"PUBDESK_ADDR":           &c.Addr,
		"PUBDESK_API_URL":        &c.APIURL,
		"PUBDESK_AUTH_URL":       &c.AuthURL,
		"PUBDESK_SESSION_SECRET": &c.SessionSecret,
		"PUBDESK_PREFS_DB":       &c.PrefsDatabasePath,
		"PUBDESK_EDITOR_TZ":      &c.EditorTimeZone,
		"PUBDESK_LOG_LEVEL":      &c.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	durations := map[string]*time.Duration{
		"PUBDESK_REQUEST_TIMEOUT": &c.RequestTimeout,
		"PUBDESK_CACHE_TTL":       &c.CacheTTL,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("pubdesk: %s: %w", key, err)
			}
			*dst = d
		}
	}
	if v := os.Getenv("PUBDESK_COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("pubdesk: PUBDESK_COOKIE_SECURE: %w", err)
		}
		c.CookieSecure = b
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger replaces the default logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}

// WithClock overrides the submission clock. Tests use it to pin "now".
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
