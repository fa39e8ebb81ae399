// cmd/gridwait/cmd_host.go
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tamzrod/gridwait/internal/grid"
)

var hostCmd = &cobra.Command{
	Use:   "host [session-id]",
	Short: "Print the execution host that ran a session",
	Long: `Asks the grid coordinator which node ran the session and prints its host.
Prints "` + grid.UnknownHost + `" when the coordinator cannot say; this never fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runHost,
}

func runHost(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	host := h.Environment.ResolveHost(ctx, grid.SessionID(args[0]))
	logger.Debug("host resolved",
		zap.String("session", args[0]),
		zap.String("profile", cfg.Browser.Profile),
		zap.String("host", host))

	fmt.Fprintln(cmd.OutOrStdout(), host)
	return nil
}
