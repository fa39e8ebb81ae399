// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// Canonical browser name (aliases already validated).
	if canon, ok := browserAliases[strings.ToLower(strings.TrimSpace(cfg.Browser.Name))]; ok {
		cfg.Browser.Name = canon
	}
	cfg.Browser.Profile = strings.ToLower(strings.TrimSpace(cfg.Browser.Profile))
	cfg.Grid.HubHost = strings.TrimSpace(cfg.Grid.HubHost)

	// Ignore kinds: trimmed, lower-case, first occurrence wins.
	seen := make(map[string]bool, len(cfg.Wait.Ignore))
	kinds := cfg.Wait.Ignore[:0]
	for _, k := range cfg.Wait.Ignore {
		k = strings.ToLower(strings.TrimSpace(k))
		if seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	cfg.Wait.Ignore = kinds

	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
}

// IsSafariFamily reports browsers without page-load timeout support.
func (b BrowserConfig) IsSafariFamily() bool {
	return b.Name == BrowserSafari || b.Name == BrowserRobotSafari
}
