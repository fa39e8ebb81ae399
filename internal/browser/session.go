// internal/browser/session.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Config is the minimal connect config.
type Config struct {
	// ControlURL attaches to a running browser; empty launches one.
	ControlURL string
	Headless   bool

	// NavigationTimeout bounds page load; zero waits without a bound.
	NavigationTimeout time.Duration
	Logger            *zap.Logger
}

// Session is an open page plus the browser that owns it.
type Session struct {
	Browser *rod.Browser
	Page    *rod.Page

	launched *launcher.Launcher
}

// Open connects (or launches), then opens url in a new page.
func Open(ctx context.Context, cfg Config, url string) (*Session, error) {
	if url == "" {
		return nil, errors.New("browser: url required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{}
	controlURL := cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(cfg.Headless)
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		s.launched = l
		controlURL = u
		log.Debug("browser launched", zap.String("control_url", u))
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		s.cleanupLauncher()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	s.Browser = b

	page, err := b.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("browser: open page: %w", err)
	}
	loading := page
	if cfg.NavigationTimeout > 0 {
		loading = page.Timeout(cfg.NavigationTimeout)
	}
	if err := loading.WaitLoad(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("browser: wait load %s: %w", url, err)
	}
	s.Page = page

	log.Info("page opened", zap.String("url", url))
	return s, nil
}

// Close closes the page and browser; a launched browser process is killed.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.Page != nil {
		err = errors.Join(err, s.Page.Close())
	}
	if s.Browser != nil {
		err = errors.Join(err, s.Browser.Close())
	}
	s.cleanupLauncher()
	return err
}

func (s *Session) cleanupLauncher() {
	if s.launched != nil {
		s.launched.Kill()
		s.launched = nil
	}
}
