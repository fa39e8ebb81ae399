// internal/config/config.go
package config

type Config struct {
	Wait    WaitConfig    `yaml:"wait"`
	Browser BrowserConfig `yaml:"browser"`
	Grid    GridConfig    `yaml:"grid"`
	Logging LoggingConfig `yaml:"logging"`
}

// ---- WAIT ----

type WaitConfig struct {
	PollIntervalMs int `yaml:"poll_interval_ms"`
	TimeoutMs      int `yaml:"timeout_ms"`
	ShortTimeoutMs int `yaml:"short_timeout_ms"`

	// Error kinds treated as transient by every wait.
	Ignore []string `yaml:"ignore"`
}

// ---- BROWSER ----

const (
	BrowserFirefox     = "firefox"
	BrowserChrome      = "chrome"
	BrowserIE          = "internet explorer"
	BrowserSafari      = "safari"
	BrowserRobotSafari = "robotSafari"
)

const (
	ProfileLocal  = "local"
	ProfileRemote = "remote"
)

type BrowserConfig struct {
	Name    string `yaml:"name"`
	Profile string `yaml:"profile"` // local | remote

	ControlURL          string `yaml:"control_url"`
	Headless            bool   `yaml:"headless"`
	NavigationTimeoutMs int    `yaml:"navigation_timeout_ms"`
}

// ---- GRID ----

type GridConfig struct {
	HubHost         string `yaml:"hub_host"`
	HubPort         int    `yaml:"hub_port"`
	LookupTimeoutMs int    `yaml:"lookup_timeout_ms"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}
