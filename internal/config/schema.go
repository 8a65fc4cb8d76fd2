package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config holds langextract configuration.
// Stored at: ~/.langextract/config.yaml
type Config struct {
	// APIURL is the extraction backend root
	APIURL string `mapstructure:"api_url" yaml:"api_url"`
	// RequestTimeout bounds each backend call. Zero means no timeout.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	// SessionTTL is how long an idle browser session is kept
	SessionTTL time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	// MaxSessions bounds live browser sessions. Zero means no limit.
	MaxSessions int `mapstructure:"max_sessions" yaml:"max_sessions"`
	// PresetsFile adds schema presets (default: ~/.langextract/presets.yaml if present)
	PresetsFile string    `mapstructure:"presets_file" yaml:"presets_file"`
	Server      ServerCfg `mapstructure:"server" yaml:"server"`
	Log         LogCfg    `mapstructure:"log" yaml:"log"`
}

// ServerCfg configures the web server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// LogCfg configures structured logging.
type LogCfg struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text, json
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIURL:         DefaultAPIURL,
		RequestTimeout: 0,
		SessionTTL:     30 * time.Minute,
		MaxSessions:    1000,
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "3000",
		},
		Log: LogCfg{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("api_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api_url: scheme must be http or https, got %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("api_url: missing host in %q", c.APIURL))
	}

	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout: must not be negative, got %s", c.RequestTimeout))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl: must be positive, got %s", c.SessionTTL))
	}
	if c.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("max_sessions: must not be negative, got %d", c.MaxSessions))
	}

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: invalid port %q", c.Server.Port))
	}

	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (l LogCfg) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: unknown level %q", l.Level)
	}
	return level, nil
}

// SlogLevel returns the configured level, falling back to info.
func (l LogCfg) SlogLevel() slog.Level {
	level, _ := l.level()
	return level
}

// NewLogger builds a logger writing to w. The handler reads its level from
// levelVar so it can be changed on config reload; levelVar is set to the
// configured level.
func NewLogger(cfg LogCfg, w io.Writer, levelVar *slog.LevelVar) *slog.Logger {
	levelVar.Set(cfg.SlogLevel())
	opts := &slog.HandlerOptions{Level: levelVar}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
