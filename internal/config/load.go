// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Env overrides, applied after the file.
const (
	EnvHubHost = "GRIDWAIT_HUB_HOST"
	EnvBrowser = "GRIDWAIT_BROWSER"
	EnvProfile = "GRIDWAIT_PROFILE"
)

// Default returns the configuration used for anything the file leaves out.
func Default() Config {
	return Config{
		Wait: WaitConfig{
			PollIntervalMs: 500,
			TimeoutMs:      30000,
			ShortTimeoutMs: 5000,
			Ignore:         []string{"no_such_element", "stale_reference"},
		},
		Browser: BrowserConfig{
			Name:                BrowserFirefox,
			Profile:             ProfileLocal,
			NavigationTimeoutMs: 30000,
		},
		Grid: GridConfig{
			HubHost:         "localhost",
			HubPort:         4444,
			LookupTimeoutMs: 5000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over Default and applies env overrides.
// An empty path yields defaults plus env.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decode(raw, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func decode(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvHubHost); v != "" {
		cfg.Grid.HubHost = v
	}
	if v := os.Getenv(EnvBrowser); v != "" {
		cfg.Browser.Name = v
	}
	if v := os.Getenv(EnvProfile); v != "" {
		cfg.Browser.Profile = v
	}
}
