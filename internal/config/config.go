package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/hxnotify/internal/logging"
	"github.com/aretw0/hxnotify/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Config is the file-backed configuration of the hxnotify server.
type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	Messages  Messages  `yaml:"messages"`
	Animation Animation `yaml:"animation"`
	Redis     Redis     `yaml:"redis"`
	HTTP      HTTP      `yaml:"http"`

	// ThemeFile optionally points at a YAML palette overlay.
	ThemeFile string `yaml:"theme_file"`
}

// Messages are the user-facing texts of the error paths.
type Messages struct {
	Error       string `yaml:"error"`
	ButtonLabel string `yaml:"button_label"`
	Fallback    string `yaml:"fallback"`
}

// Animation configures the confirm-modal entrance.
type Animation struct {
	Seconds float64 `yaml:"seconds"`
}

// Duration converts the configured seconds.
func (a Animation) Duration() time.Duration {
	return time.Duration(a.Seconds * float64(time.Second))
}

// Redis enables the pub/sub event sink when Addr is set.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

// HTTP configures the middleware.
type HTTP struct {
	RewriteStatus *bool `yaml:"rewrite_status"`
	ErrorModal    *bool `yaml:"error_modal"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:     "8080",
		LogLevel: "info",
		Messages: Messages{
			Error:       domain.DefaultErrorMessage,
			ButtonLabel: domain.DefaultButtonLabel,
			Fallback:    domain.DefaultErrorMessage,
		},
		Animation: Animation{Seconds: domain.DefaultAnimationDuration.Seconds()},
		Redis:     Redis{Channel: "hxnotify:events"},
	}
}

// RewriteStatus reports whether the middleware sends redirected responses as 200.
func (c Config) RewriteStatus() bool {
	return c.HTTP.RewriteStatus == nil || *c.HTTP.RewriteStatus
}

// ErrorModal reports whether server errors render the modal instead of an alert.
func (c Config) ErrorModal() bool {
	return c.HTTP.ErrorModal == nil || *c.HTTP.ErrorModal
}

// ModalOptions returns the server-error modal texts.
func (c Config) ModalOptions() domain.ModalOptions {
	return domain.ModalOptions{Message: c.Messages.Error, BtnLabel: c.Messages.ButtonLabel}
}

// Validate checks the values a server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Messages.Error == "" || c.Messages.Fallback == "" {
		errs = append(errs, errors.New("error messages must not be empty"))
	}
	if c.Animation.Seconds <= 0 {
		errs = append(errs, fmt.Errorf("animation seconds must be positive, got %v", c.Animation.Seconds))
	}
	return errors.Join(errs...)
}

// Decode reads YAML over the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Load reads the file at path (if any), applies environment overrides and validates.
// An empty path means defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if cfg, err = Decode(f); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("HXNOTIFY_PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("HXNOTIFY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("HXNOTIFY_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
}
