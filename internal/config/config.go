// Package config loads and saves debtburn settings.
//
// Settings live in a TOML file under the XDG config directory. A .env file in
// the working directory and DEBTBURN_* environment variables override the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const appName = "debtburn"

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all debtburn configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Appearance AppearanceConfig `toml:"appearance"`
	Notify     NotifyConfig     `toml:"notify"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds planning preferences.
type GeneralConfig struct {
	DefaultExtraPayment float64 `toml:"default_extra_payment"`
	SeedSample          bool    `toml:"seed_sample"` // seed sample data into an empty store
}

// StoreConfig selects where loans and bills are kept.
type StoreConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path,omitempty"`
	DSN    string `toml:"dsn,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// NotifyConfig configures change-event publishing.
type NotifyConfig struct {
	AMQPURL       string `toml:"amqp_url,omitempty"`
	Exchange      string `toml:"exchange"`
	RoutingPrefix string `toml:"routing_prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
	File   string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			SeedSample: true,
		},
		Store: StoreConfig{
			Driver: DriverSQLite,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Notify: NotifyConfig{
			Exchange:      "debtburn.events",
			RoutingPrefix: "debtburn.",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8788",
			EventsBuffer: 200,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultDBPath returns the default sqlite database location.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "debtburn.db")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies .env and environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// loadDotEnv loads ./.env when present. Variables already set win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading .env: %w", err)
}

// ApplyEnv overlays DEBTBURN_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("DEBTBURN_DB_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("DEBTBURN_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("DEBTBURN_DB_DSN"); v != "" {
		cfg.Store.DSN = v
		if os.Getenv("DEBTBURN_DB_DRIVER") == "" {
			cfg.Store.Driver = DriverPostgres
		}
	}
	if v := os.Getenv("DEBTBURN_AMQP_URL"); v != "" {
		cfg.Notify.AMQPURL = v
	}
	if v := os.Getenv("DEBTBURN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DEBTBURN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// StorePath returns the configured sqlite path or the default.
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return DefaultDBPath()
}

// MaskURL hides the password in a URL-shaped secret (AMQP URL, postgres DSN).
// Key/value DSNs that carry a password are masked entirely.
func MaskURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if strings.Contains(raw, "password=") {
			return "****"
		}
		return raw
	}
	// Redacted writes "xxxxx" for the password; the escaped username cannot
	// contain ':' so the first ":xxxxx@" is the password.
	return strings.Replace(u.Redacted(), ":xxxxx@", ":****@", 1)
}
