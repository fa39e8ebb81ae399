// cmd/gridwait/cmd_wait_test.go
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/gridwait/internal/browser"
	"github.com/tamzrod/gridwait/internal/grid"
	"github.com/tamzrod/gridwait/internal/poller"
	"github.com/tamzrod/gridwait/internal/status"
	"github.com/tamzrod/gridwait/internal/wait"
)

// scriptedPage answers selectors from fixed tables and tracks how many
// lookups run at once.
type scriptedPage struct {
	title  string
	found  map[string]bool
	broken map[string]error

	mu       sync.Mutex
	inflight int
	peak     int
}

func (p *scriptedPage) Has(sel string) (bool, *rod.Element, error) {
	p.mu.Lock()
	p.inflight++
	if p.inflight > p.peak {
		p.peak = p.inflight
	}
	p.mu.Unlock()

	time.Sleep(time.Millisecond)

	p.mu.Lock()
	p.inflight--
	p.mu.Unlock()

	if err := p.broken[sel]; err != nil {
		return false, nil, err
	}
	if p.found[sel] {
		return true, &rod.Element{}, nil
	}
	return false, nil, nil
}

func (p *scriptedPage) Info() (*proto.TargetTargetInfo, error) {
	return &proto.TargetTargetInfo{Title: p.title}, nil
}

type recordingResolver struct {
	host string

	mu       sync.Mutex
	sessions []string
}

func (r *recordingResolver) ResolveHost(_ context.Context, s fmt.Stringer) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, s.String())
	return r.host
}

func quickWait(t *testing.T, opts ...wait.Option) *wait.Wait {
	t.Helper()
	w, err := wait.New(wait.Config{
		Name:     t.Name(),
		Interval: 2 * time.Millisecond,
		Timeout:  20 * time.Millisecond,
		Ignore:   []poller.Kind{browser.KindNoSuchElement, browser.KindStaleReference},
	}, opts...)
	require.NoError(t, err)
	return w
}

func reportLines(t *testing.T, out *bytes.Buffer) []string {
	t.Helper()
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func TestWaitAll_OneLinePerSelectorInOrder(t *testing.T) {
	page := &scriptedPage{
		found:  map[string]bool{"#ok": true},
		broken: map[string]error{"#bad": errors.New("invalid selector")},
	}
	env := &recordingResolver{host: "node-7"}
	w := quickWait(t, wait.WithEnvironment(env))

	var out bytes.Buffer
	err := waitAll(context.Background(), &out, page, w, waitPlan{
		selectors: []string{"#ok", "#slow", "#bad"},
		parallel:  4,
		session:   grid.SessionID("s-9"),
	})

	lines := reportLines(t, &out)
	require.Len(t, lines, 3)
	assert.Equal(t, `target="#ok" outcome=ok`, lines[0])
	assert.Contains(t, lines[1], `target="#slow" outcome=timeout`)
	assert.Contains(t, lines[1], "host=node-7")
	assert.Contains(t, lines[2], `target="#bad" outcome=fatal error="unexpected error:`)
	assert.Contains(t, lines[2], "invalid selector")
	assert.Equal(t, []string{"s-9"}, env.sessions, "only the timeout looks up the host")

	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, status.ExitFatal, ee.code)
}

func TestWaitAll_TimeoutExitCode(t *testing.T) {
	page := &scriptedPage{found: map[string]bool{"#ok": true}}

	var out bytes.Buffer
	err := waitAll(context.Background(), &out, page, quickWait(t), waitPlan{
		selectors: []string{"#ok", "#missing"},
	})

	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, status.ExitTimeout, ee.code)
	assert.NotContains(t, out.String(), "host=", "no session, no host")
}

func TestWaitAll_AllSatisfiedWithTitle(t *testing.T) {
	page := &scriptedPage{
		title: "Dashboard - Portal",
		found: map[string]bool{"#a": true, "#b": true},
	}

	var out bytes.Buffer
	err := waitAll(context.Background(), &out, page, quickWait(t), waitPlan{
		selectors: []string{"#a", "#b"},
		title:     "Dashboard",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		`target="#a" outcome=ok`,
		`target="#b" outcome=ok`,
		`target="title:Dashboard" outcome=ok`,
	}, reportLines(t, &out))
}

func TestWaitAll_TitleOnlyTimesOut(t *testing.T) {
	page := &scriptedPage{title: "Sign in"}

	var out bytes.Buffer
	err := waitAll(context.Background(), &out, page, quickWait(t), waitPlan{title: "Dashboard"})

	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, status.ExitTimeout, ee.code)
	assert.Contains(t, out.String(), `target="title:Dashboard" outcome=timeout`)
}

func TestWaitAll_ParallelLimit(t *testing.T) {
	selectors := []string{"#1", "#2", "#3", "#4", "#5", "#6"}
	found := make(map[string]bool, len(selectors))
	for _, s := range selectors {
		found[s] = true
	}

	for _, limit := range []int{1, 2} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			page := &scriptedPage{found: found}

			var out bytes.Buffer
			err := waitAll(context.Background(), &out, page, quickWait(t), waitPlan{
				selectors: selectors,
				parallel:  limit,
			})

			require.NoError(t, err)
			assert.Len(t, reportLines(t, &out), len(selectors))
			assert.LessOrEqual(t, page.peak, limit)
		})
	}
}

func TestWaitAll_VisibleRequiresPresence(t *testing.T) {
	page := &scriptedPage{}

	var out bytes.Buffer
	err := waitAll(context.Background(), &out, page, quickWait(t), waitPlan{
		selectors: []string{"#hidden"},
		visible:   true,
	})

	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, status.ExitTimeout, ee.code)
	assert.Contains(t, out.String(), "no_such_element")
}

func TestWaitCommand_RequiresATarget(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: error\n")

	_, err := runCLI(t, "--config", path, "wait", "http://localhost:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to wait for")
}
