// cmd/gridwait/cmd_wait.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/gridwait/internal/browser"
	"github.com/tamzrod/gridwait/internal/grid"
	"github.com/tamzrod/gridwait/internal/status"
	"github.com/tamzrod/gridwait/internal/wait"
)

var (
	waitShort     bool
	waitVisible   bool
	waitTitle     string
	waitSessionID string
	waitParallel  int
)

var waitCmd = &cobra.Command{
	Use:   "wait [url] [selector...]",
	Short: "Open a page and wait for every selector to be present",
	Long: `Opens url in a browser (attaching to browser.control_url when set) and waits
for each CSS selector independently, plus the page title when --title is set.
One report line is printed per target.

Exit codes: 0 all satisfied, 2 at least one timeout, 1 an unexpected error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWait,
}

func init() {
	waitCmd.Flags().BoolVar(&waitShort, "short", false, "use the short wait")
	waitCmd.Flags().BoolVar(&waitVisible, "visible", false, "require elements to be visible")
	waitCmd.Flags().StringVar(&waitTitle, "title", "", "also wait for the page title to contain this text")
	waitCmd.Flags().StringVar(&waitSessionID, "session", "", "grid session id reported on timeout")
	waitCmd.Flags().IntVar(&waitParallel, "parallel", 4, "targets waited on concurrently")
}

// waitPlan is what one wait invocation checks on a page.
type waitPlan struct {
	selectors []string
	title     string
	visible   bool
	parallel  int
	session   fmt.Stringer
}

func runWait(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	url, selectors := args[0], args[1:]
	if len(selectors) == 0 && waitTitle == "" {
		return errors.New("wait: nothing to wait for; pass a selector or --title")
	}

	var navTimeout time.Duration
	if h.PageLoadTimeouts {
		navTimeout = time.Duration(cfg.Browser.NavigationTimeoutMs) * time.Millisecond
	}

	sess, err := browser.Open(ctx, browser.Config{
		ControlURL:        cfg.Browser.ControlURL,
		Headless:          cfg.Browser.Headless,
		NavigationTimeout: navTimeout,
		Logger:            logger.Named("browser"),
	}, url)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Warn("browser close failed", zap.Error(err))
		}
	}()

	plan := waitPlan{
		selectors: selectors,
		title:     waitTitle,
		visible:   waitVisible,
		parallel:  waitParallel,
	}
	if waitSessionID != "" {
		plan.session = grid.SessionID(waitSessionID)
	}
	return waitAll(ctx, cmd.OutOrStdout(), sess.Page, h.Wait(waitShort), plan)
}

// waitAll waits for every target in plan, prints one report line per target
// in plan order and returns an *exitError unless all were satisfied.
func waitAll(ctx context.Context, out io.Writer, page browser.Page, w *wait.Wait, plan waitPlan) error {
	n := len(plan.selectors)
	if plan.title != "" {
		n++
	}
	reports := make([]status.Report, n)

	var g errgroup.Group
	if plan.parallel > 0 {
		g.SetLimit(plan.parallel)
	}
	for i, sel := range plan.selectors {
		i, sel := i, sel
		g.Go(func() error {
			cond := browser.ElementPresent(page, sel)
			if plan.visible {
				cond = browser.ElementVisible(page, sel)
			}
			_, err := wait.UntilSession[*rod.Element](ctx, w, plan.session, cond)
			reports[i] = status.FromError(sel, err)
			return nil
		})
	}
	if plan.title != "" {
		g.Go(func() error {
			_, err := wait.UntilSession(ctx, w, plan.session, browser.TitleContains(page, plan.title))
			reports[n-1] = status.FromError("title:"+plan.title, err)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range reports {
		fmt.Fprintln(out, status.Encode(r))
	}

	if code := status.ExitCode(reports); code != status.ExitOK {
		return &exitError{code: code}
	}
	return nil
}
