// internal/harness/builder.go
package harness

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/gridwait/internal/browser"
	cfg "github.com/tamzrod/gridwait/internal/config"
	"github.com/tamzrod/gridwait/internal/grid"
	"github.com/tamzrod/gridwait/internal/poller"
	"github.com/tamzrod/gridwait/internal/wait"
)

// Harness is the wired set of waits for one browser environment.
type Harness struct {
	// Default reports the grid node on timeout for remote profiles.
	Default *wait.Wait
	// Short is for quick checks; it carries no environment.
	Short *wait.Wait

	// Environment names the execution host for any profile.
	Environment grid.HostResolver
	Browser     cfg.BrowserConfig

	// PageLoadTimeouts is false for browsers that reject page-load timeouts.
	PageLoadTimeouts bool
}

// Wait returns the short or default wait.
func (h *Harness) Wait(short bool) *wait.Wait {
	if short {
		return h.Short
	}
	return h.Default
}

// Build wires waits and the execution environment from a validated,
// normalized config.
func Build(c *cfg.Config, log *zap.Logger) (*Harness, error) {
	if c == nil {
		return nil, errors.New("harness: config required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	env, err := environment(c, log)
	if err != nil {
		return nil, err
	}

	ignore := make([]poller.Kind, 0, len(c.Wait.Ignore))
	for _, k := range c.Wait.Ignore {
		kind := poller.Kind(k)
		if !browser.Known(kind) {
			log.Warn("ignoring unknown error kind", zap.String("kind", k))
		}
		ignore = append(ignore, kind)
	}

	interval := ms(c.Wait.PollIntervalMs)

	defOpts := []wait.Option{wait.WithLogger(log)}
	if c.Browser.Profile == cfg.ProfileRemote {
		defOpts = append(defOpts, wait.WithEnvironment(env))
	}

	def, err := wait.New(wait.Config{
		Name:     "default",
		Interval: interval,
		Timeout:  ms(c.Wait.TimeoutMs),
		Ignore:   ignore,
	}, defOpts...)
	if err != nil {
		return nil, fmt.Errorf("harness: default wait: %w", err)
	}

	short, err := wait.New(wait.Config{
		Name:     "short",
		Interval: interval,
		Timeout:  ms(c.Wait.ShortTimeoutMs),
		Ignore:   ignore,
	}, wait.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("harness: short wait: %w", err)
	}

	h := &Harness{
		Default:          def,
		Short:            short,
		Environment:      env,
		Browser:          c.Browser,
		PageLoadTimeouts: !c.Browser.IsSafariFamily(),
	}
	h.handleFlakyBrowser(log)
	return h, nil
}

// handleFlakyBrowser widens the default wait once the browser is known.
// IE raises generic driver errors while a page is still loading, so true
// failures there surface as timeouts instead of failing fast.
func (h *Harness) handleFlakyBrowser(log *zap.Logger) {
	if h.Browser.Name == cfg.BrowserIE {
		h.Default.Ignoring(browser.KindDriver)
		log.Info("driver errors are transient for this browser", zap.String("browser", h.Browser.Name))
	}
}

func environment(c *cfg.Config, log *zap.Logger) (grid.HostResolver, error) {
	switch c.Browser.Profile {
	case cfg.ProfileRemote:
		l, err := grid.NewLookup(grid.Config{
			HubHost: c.Grid.HubHost,
			HubPort: c.Grid.HubPort,
			Timeout: ms(c.Grid.LookupTimeoutMs),
			Logger:  log.Named("grid"),
		})
		if err != nil {
			return nil, fmt.Errorf("harness: grid lookup: %w", err)
		}
		return l, nil
	case cfg.ProfileLocal:
		return grid.Local{}, nil
	default:
		return nil, fmt.Errorf("harness: unknown profile %q", c.Browser.Profile)
	}
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }
