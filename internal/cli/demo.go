package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/replicaudit/internal/network"
	"github.com/roach88/replicaudit/internal/replica"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	Keep bool
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a self-contained divergence walkthrough",
		Long: `Run a three-replica divergence walkthrough against scratch databases.

Two replicas receive an identical event sequence; the third receives a
diverging one. The demo prints each replica's status, the pairwise
comparisons, and the network sync-group report, then removes its scratch
directory.

Examples:
  replicaudit demo
  replicaudit demo --keep --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Keep, "keep", false, "keep the scratch databases for inspection")

	return cmd
}

func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	dir, err := os.MkdirTemp("", "replicaudit-demo-")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create scratch directory", err)
	}
	if opts.Keep {
		fmt.Fprintf(out, "Scratch directory: %s\n\n", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	// Unique file names so repeated demos never collide on a kept dir.
	scratchDB := func(name string) string {
		return filepath.Join(dir, fmt.Sprintf("%s-%s.db", name, uuid.New()))
	}

	replicas := []*replica.Replica{
		replica.New("alpha", scratchDB("alpha")),
		replica.New("beta", scratchDB("beta")),
		replica.New("gamma", scratchDB("gamma")),
	}
	defer closeAll(replicas)
	for _, r := range replicas {
		if err := r.Initialize(ctx); err != nil {
			return WrapExitError(ExitCommandError, "failed to initialize demo replicas", err)
		}
	}
	alpha, beta, gamma := replicas[0], replicas[1], replicas[2]

	// alpha and beta receive the same ordered sequence; gamma diverges on
	// the third event.
	shared := []string{
		"order placed: #1001",
		"payment received: #1001",
		"order shipped: #1001",
	}
	diverged := []string{
		"order placed: #1001",
		"payment received: #1001",
		"order cancelled: #1001",
	}
	for _, payload := range shared {
		if _, err := alpha.AddEvent(ctx, payload); err != nil {
			return WrapExitError(ExitCommandError, "demo append failed", err)
		}
		if _, err := beta.AddEvent(ctx, payload); err != nil {
			return WrapExitError(ExitCommandError, "demo append failed", err)
		}
	}
	for _, payload := range diverged {
		if _, err := gamma.AddEvent(ctx, payload); err != nil {
			return WrapExitError(ExitCommandError, "demo append failed", err)
		}
	}

	fmt.Fprintln(out, "== Replica status ==")
	for i, r := range replicas {
		if i > 0 {
			fmt.Fprintln(out)
		}
		status, err := r.Status(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "demo status failed", err)
		}
		renderStatus(out, status, opts.Verbose)
	}

	fmt.Fprintln(out, "\n== Pairwise comparison ==")
	pairs := [][2]*replica.Replica{{alpha, beta}, {alpha, gamma}}
	for i, pair := range pairs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		report, err := pair[0].Compare(ctx, pair[1])
		if err != nil {
			return WrapExitError(ExitCommandError, "demo comparison failed", err)
		}
		renderDivergence(out, report, opts.Verbose)
	}

	fmt.Fprintln(out, "\n== Network analysis ==")
	netReport, err := network.Compare(ctx, replicas)
	if err != nil {
		return WrapExitError(ExitCommandError, "demo network analysis failed", err)
	}
	renderNetwork(out, netReport)

	return nil
}
