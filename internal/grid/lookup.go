// internal/grid/lookup.go
package grid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// UnknownHost is returned whenever a host cannot be resolved.
const UnknownHost = "unknown-host"

// DefaultHubPort is the grid coordinator port.
const DefaultHubPort = 4444

const maxBody = 1 << 20

// HostResolver maps a browser session to the host that executed it.
// Implementations never fail; they return UnknownHost instead.
type HostResolver interface {
	ResolveHost(ctx context.Context, session fmt.Stringer) string
}

// Config is minimal coordinator config.
type Config struct {
	HubHost string
	HubPort int

	// Timeout bounds one lookup. Zero means 5s.
	Timeout time.Duration

	Client *http.Client
	Logger *zap.Logger
}

// Lookup asks the grid coordinator which node ran a session.
// One attempt per call, no retries, no caching.
type Lookup struct {
	hubHost string
	hubPort int
	timeout time.Duration
	client  *http.Client
	log     *zap.Logger
}

// NewLookup creates a coordinator lookup.
func NewLookup(cfg Config) (*Lookup, error) {
	if cfg.HubHost == "" {
		return nil, errors.New("grid: hub host required")
	}
	if cfg.HubPort == 0 {
		cfg.HubPort = DefaultHubPort
	}
	if cfg.HubPort < 0 || cfg.HubPort > 65535 {
		return nil, fmt.Errorf("grid: invalid hub port %d", cfg.HubPort)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Lookup{
		hubHost: cfg.HubHost,
		hubPort: cfg.HubPort,
		timeout: cfg.Timeout,
		client:  cfg.Client,
		log:     cfg.Logger,
	}, nil
}

// lookupError carries the metrics outcome label for a failed lookup.
type lookupError struct {
	outcome string
	err     error
}

func (e *lookupError) Error() string { return e.outcome + ": " + e.err.Error() }
func (e *lookupError) Unwrap() error { return e.err }

func fail(outcome string, err error) error { return &lookupError{outcome: outcome, err: err} }

// ResolveHost returns the host portion of the node address that ran session,
// or UnknownHost on any failure.
func (l *Lookup) ResolveHost(ctx context.Context, session fmt.Stringer) (host string) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Debug("grid lookup panicked", zap.Any("panic", r))
			lookupsTotal.WithLabelValues(outcomePanic).Inc()
			host = UnknownHost
		}
	}()

	if session == nil {
		lookupsTotal.WithLabelValues(outcomeNoSession).Inc()
		return UnknownHost
	}
	id := session.String()

	host, err := l.resolve(ctx, id)
	if err != nil {
		outcome := outcomeTransport
		var le *lookupError
		if errors.As(err, &le) {
			outcome = le.outcome
		}
		lookupsTotal.WithLabelValues(outcome).Inc()
		l.log.Debug("grid lookup failed",
			zap.String("session", id),
			zap.String("outcome", outcome),
			zap.Error(err))
		return UnknownHost
	}

	lookupsTotal.WithLabelValues(outcomeOK).Inc()
	l.log.Debug("grid lookup resolved", zap.String("session", id), zap.String("host", host))
	return host
}

// Endpoint returns the coordinator URL queried for a session id.
func (l *Lookup) Endpoint(sessionID string) string {
	u := url.URL{
		Scheme:   "http",
		Host:     net.JoinHostPort(l.hubHost, strconv.Itoa(l.hubPort)),
		Path:     "/grid/api/testsession",
		RawQuery: url.Values{"session": []string{sessionID}}.Encode(),
	}
	return u.String()
}

func (l *Lookup) resolve(ctx context.Context, sessionID string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.Endpoint(sessionID), nil)
	if err != nil {
		return "", fail(outcomeTransport, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fail(outcomeTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fail(outcomeStatus, fmt.Errorf("coordinator status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fail(outcomeTransport, err)
	}

	return nodeHost(body)
}

// nodeHost extracts the host of the "proxyId" node URL from a coordinator payload.
func nodeHost(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fail(outcomeDecode, errors.New("malformed coordinator response"))
	}

	proxy := gjson.GetBytes(body, "proxyId")
	if !proxy.Exists() || proxy.Type != gjson.String || proxy.Str == "" {
		return "", fail(outcomeMissingField, errors.New("proxyId missing"))
	}

	u, err := url.Parse(proxy.Str)
	if err != nil {
		return "", fail(outcomeDecode, fmt.Errorf("proxyId %q: %w", proxy.Str, err))
	}
	host := u.Hostname()
	if host == "" {
		return "", fail(outcomeDecode, fmt.Errorf("proxyId %q has no host", proxy.Str))
	}
	return host, nil
}
