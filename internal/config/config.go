package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	pErrors "github.com/darkai/darkchat/internal/errors"
)

const (
	// DefaultBaseURL is the backend used when nothing else is configured
	DefaultBaseURL = "http://localhost:8000/"

	// DefaultRequestTimeout bounds a single backend round trip so the chat
	// view can never stay in the pending state forever
	DefaultRequestTimeout = 60 * time.Second

	// DefaultKeyboardThresholdRows is the row loss that counts as an
	// on-screen keyboard appearing (terminal emulators on phones shrink the
	// window when the keyboard opens)
	DefaultKeyboardThresholdRows = 8

	// DefaultSpeechLanguage is the text-to-speech language used when none is chosen
	DefaultSpeechLanguage = "en"
)

// SpeechLanguages lists the language codes the text-to-speech endpoint accepts
var SpeechLanguages = []string{"en", "es", "hi", "fr", "de"}

// Config holds the client configuration.
// Values come from defaults, then ~/.darkchat/config.yaml, then a .env file
// in the working directory, then the process environment.
type Config struct {
	BaseURL               string        `yaml:"base_url" env:"DARKCHAT_BASE_URL"`
	OAuthClientID         string        `yaml:"oauth_client_id,omitempty" env:"DARKCHAT_OAUTH_CLIENT_ID"`
	RequestTimeout        time.Duration `yaml:"request_timeout" env:"DARKCHAT_REQUEST_TIMEOUT"`
	Theme                 string        `yaml:"theme,omitempty" env:"DARKCHAT_THEME"`
	NotificationsEnabled  bool          `yaml:"notifications_enabled,omitempty" env:"DARKCHAT_NOTIFICATIONS"`
	KeyboardThresholdRows int           `yaml:"keyboard_threshold_rows" env:"DARKCHAT_KEYBOARD_THRESHOLD"`
	SpeechLanguage        string        `yaml:"speech_language,omitempty" env:"DARKCHAT_SPEECH_LANG"`

	mu       sync.RWMutex
	filePath string
}

// Default returns a config with every field at its default value
func Default() *Config {
	return &Config{
		BaseURL:               DefaultBaseURL,
		RequestTimeout:        DefaultRequestTimeout,
		KeyboardThresholdRows: DefaultKeyboardThresholdRows,
		SpeechLanguage:        DefaultSpeechLanguage,
	}
}

// Dir returns the path to the darkchat state directory
func Dir() (string, error) {
	if dir := os.Getenv("DARKCHAT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".darkchat"), nil
}

// Path returns the default config file location
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default directory
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	// A missing .env is the normal case
	_ = godotenv.Load()
	return LoadFrom(path)
}

// LoadFrom reads the config file at path (a missing file is not an error),
// applies environment overrides and validates the result
func LoadFrom(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	cfg.BaseURL = normalizeBaseURL(cfg.BaseURL)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads only the defaults and the file at path, without
// environment overrides. Edit a config loaded this way before calling Save
// so values from the environment are not written to disk.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, pErrors.ConfigLoadFailed(path, err)
		}
	}
	return cfg, nil
}

// normalizeBaseURL makes sure endpoint paths can be appended directly
func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasSuffix(raw, "/") {
		return raw
	}
	return raw + "/"
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result *multierror.Error

	if c.BaseURL == "" {
		result = multierror.Append(result, fmt.Errorf("base_url is empty"))
	} else if u, err := url.Parse(c.BaseURL); err != nil {
		result = multierror.Append(result, fmt.Errorf("base_url %q: %w", c.BaseURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		result = multierror.Append(result, fmt.Errorf("base_url %q must use http or https", c.BaseURL))
	}
	if c.RequestTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.KeyboardThresholdRows < 0 {
		result = multierror.Append(result, fmt.Errorf("keyboard_threshold_rows must not be negative, got %d", c.KeyboardThresholdRows))
	}
	if c.SpeechLanguage != "" && !slices.Contains(SpeechLanguages, c.SpeechLanguage) {
		result = multierror.Append(result, fmt.Errorf("speech_language %q is not one of %s", c.SpeechLanguage, strings.Join(SpeechLanguages, ", ")))
	}

	if err := result.ErrorOrNil(); err != nil {
		return pErrors.ConfigInvalid(err)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return pErrors.ConfigSaveFailed("", fmt.Errorf("config has no file path"))
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// FilePath returns where the config is read from and saved to
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetBaseURL returns the backend base URL, always ending in "/"
func (c *Config) GetBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BaseURL
}

// ResolveURL turns a reference returned by the backend (absolute URL,
// absolute path or relative path) into an absolute URL
func (c *Config) ResolveURL(ref string) string {
	base, err := url.Parse(c.GetBaseURL())
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}

// GetRequestTimeout returns the per-request timeout
func (c *Config) GetRequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RequestTimeout
}

// GetOAuthClientID returns the third-party sign-in client identifier, if any
func (c *Config) GetOAuthClientID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.OAuthClientID
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetKeyboardThresholdRows returns the row loss treated as a keyboard opening
func (c *Config) GetKeyboardThresholdRows() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.KeyboardThresholdRows
}

// GetSpeechLanguage returns the default text-to-speech language
func (c *Config) GetSpeechLanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.SpeechLanguage == "" {
		return DefaultSpeechLanguage
	}
	return c.SpeechLanguage
}
