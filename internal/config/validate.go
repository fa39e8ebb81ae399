// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// browserAliases maps lower-cased accepted names to canonical names.
var browserAliases = map[string]string{
	"firefox":           BrowserFirefox,
	"chrome":            BrowserChrome,
	"ie":                BrowserIE,
	"iexplore":          BrowserIE,
	"internet explorer": BrowserIE,
	"safari":            BrowserSafari,
	"robotsafari":       BrowserRobotSafari,
}

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// WAIT
	// ------------------------------------------------------------

	w := cfg.Wait
	if w.PollIntervalMs <= 0 {
		return fmt.Errorf("wait.poll_interval_ms must be > 0, got %d", w.PollIntervalMs)
	}
	// Zero timeouts are degenerate but valid: one attempt is still made.
	if w.TimeoutMs < 0 {
		return fmt.Errorf("wait.timeout_ms must be >= 0, got %d", w.TimeoutMs)
	}
	if w.ShortTimeoutMs < 0 {
		return fmt.Errorf("wait.short_timeout_ms must be >= 0, got %d", w.ShortTimeoutMs)
	}
	for i, k := range w.Ignore {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("wait.ignore[%d]: empty error kind", i)
		}
	}

	// ------------------------------------------------------------
	// BROWSER
	// ------------------------------------------------------------

	if _, ok := browserAliases[strings.ToLower(strings.TrimSpace(cfg.Browser.Name))]; !ok {
		return fmt.Errorf("browser.name %q is not supported", cfg.Browser.Name)
	}

	profile := strings.ToLower(strings.TrimSpace(cfg.Browser.Profile))
	if profile != ProfileLocal && profile != ProfileRemote {
		return fmt.Errorf("browser.profile must be %q or %q, got %q", ProfileLocal, ProfileRemote, cfg.Browser.Profile)
	}
	if cfg.Browser.NavigationTimeoutMs < 0 {
		return fmt.Errorf("browser.navigation_timeout_ms must be >= 0, got %d", cfg.Browser.NavigationTimeoutMs)
	}

	// ------------------------------------------------------------
	// GRID (only consulted by the remote profile)
	// ------------------------------------------------------------

	if profile == ProfileRemote && strings.TrimSpace(cfg.Grid.HubHost) == "" {
		return fmt.Errorf("grid.hub_host is required for the remote profile")
	}
	if cfg.Grid.HubPort < 1 || cfg.Grid.HubPort > 65535 {
		return fmt.Errorf("grid.hub_port must be in 1..65535, got %d", cfg.Grid.HubPort)
	}
	if cfg.Grid.LookupTimeoutMs < 0 {
		return fmt.Errorf("grid.lookup_timeout_ms must be >= 0, got %d", cfg.Grid.LookupTimeoutMs)
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	if cfg.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(cfg.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}

	return nil
}
