// Package config loads the suite configuration: where the site under test
// lives, how long matchers wait, and which browser driver to launch.
package config

import (
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/ilyakaznacheev/cleanenv"
)

// Supported values for Capabilities.Driver.
const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
)

// Config is the suite configuration. Every field can be set from the YAML
// file passed to Load and overridden by its E2E_* environment variable.
type Config struct {
	// Environment selects the logger flavour (development, production).
	Environment string `env:"E2E_ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set.
	LogLevel string `env:"E2E_LOG_LEVEL" yaml:"logLevel"`

	// BaseURL is the site under test. Empty means the embedded fixture site is
	// started for the run and its address is used instead.
	BaseURL string `env:"E2E_BASE_URL" yaml:"baseUrl"`

	// WaitforTimeout bounds element lookups and matcher polling.
	WaitforTimeout time.Duration `env:"E2E_WAITFOR_TIMEOUT" env-default:"10s" yaml:"waitforTimeout"`
	// WaitforInterval is the initial pause between matcher polls.
	WaitforInterval time.Duration `env:"E2E_WAITFOR_INTERVAL" env-default:"100ms" yaml:"waitforInterval"`
	// TestTimeout bounds a single scenario.
	TestTimeout time.Duration `env:"E2E_TEST_TIMEOUT" env-default:"60s" yaml:"testTimeout"`

	// ConnectionRetryTimeout bounds one browser launch attempt.
	ConnectionRetryTimeout time.Duration `env:"E2E_CONNECTION_RETRY_TIMEOUT" env-default:"120s" yaml:"connectionRetryTimeout"` //nolint: lll
	// ConnectionRetryCount is how many times a failed launch is retried.
	ConnectionRetryCount int `env:"E2E_CONNECTION_RETRY_COUNT" yaml:"connectionRetryCount"`

	Capabilities struct {
		Driver      string `env:"E2E_DRIVER" env-default:"rod" yaml:"driver"`
		BrowserName string `env:"E2E_BROWSER_NAME" env-default:"chromium" yaml:"browserName"`
		Headless    bool   `env:"E2E_HEADLESS" yaml:"headless"`
		NoSandbox   bool   `env:"E2E_NO_SANDBOX" yaml:"noSandbox"`
		// Bin points at a browser executable; empty lets the driver pick or download one.
		Bin string `env:"E2E_BROWSER_BIN" yaml:"bin"`
	} `yaml:"capabilities"`

	Fixture struct {
		Addr         string        `env:"E2E_FIXTURE_ADDR" env-default:":0" yaml:"addr"`
		ReadTimeout  time.Duration `env:"E2E_FIXTURE_READ_TIMEOUT" env-default:"30s" yaml:"readTimeout"`
		WriteTimeout time.Duration `env:"E2E_FIXTURE_WRITE_TIMEOUT" env-default:"30s" yaml:"writeTimeout"`
	} `yaml:"fixture"`

	// ArtifactsDir receives a screenshot of every failed scenario. Empty disables it.
	ArtifactsDir string `env:"E2E_ARTIFACTS_DIR" yaml:"artifactsDir"`
}

// defaults seeds the fields whose zero value is a valid setting. cleanenv
// applies env-default to every field still zero after the file is read, so
// these cannot use the tag.
func defaults() Config {
	var cfg Config
	cfg.ConnectionRetryCount = 3
	cfg.Capabilities.Headless = true
	cfg.Capabilities.NoSandbox = true

	return cfg
}

// Load reads the YAML file at path and applies environment overrides. An
// empty path, or a path that does not exist, reads the environment only.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, errors.Wrapf(err, "read config %q", path)
			}

			return &cfg, cfg.Validate()
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "read config from environment")
	}

	return &cfg, cfg.Validate()
}

// Validate rejects settings no driver can honour.
func (c *Config) Validate() error {
	switch c.Capabilities.Driver {
	case DriverRod, DriverPlaywright:
	default:
		return errors.Errorf("unknown driver %q (want %q or %q)", c.Capabilities.Driver, DriverRod, DriverPlaywright)
	}

	for name, d := range map[string]time.Duration{
		"waitforTimeout":         c.WaitforTimeout,
		"waitforInterval":        c.WaitforInterval,
		"testTimeout":            c.TestTimeout,
		"connectionRetryTimeout": c.ConnectionRetryTimeout,
	} {
		if d <= 0 {
			return errors.Errorf("%s must be positive, got %v", name, d)
		}
	}

	if c.ConnectionRetryCount < 0 {
		return errors.Errorf("connectionRetryCount must not be negative, got %d", c.ConnectionRetryCount)
	}

	return nil
}
