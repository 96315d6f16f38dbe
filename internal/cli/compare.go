package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/replicaudit/internal/replica"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Topology string
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <replica-a> <replica-b>",
		Short: "Compare two replicas' ledger fingerprints",
		Long: `Compare two replicas of the same logical ledger.

Both Merkle roots and record counts are computed fresh, then the pair is
classified: identical, content divergence (equal counts, different content)
or count divergence (one side holds more records).

Exits with status 1 when the replicas diverge.

Examples:
  replicaudit compare --topology replicas.yaml alpha beta
  replicaudit compare --topology replicas.yaml alpha beta --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.Topology, "topology", "", "path to topology YAML (required)")
	_ = cmd.MarkFlagRequired("topology")

	return cmd
}

func runCompare(opts *CompareOptions, cmd *cobra.Command, nameA, nameB string) error {
	ctx := context.Background()

	topo, err := LoadTopology(opts.Topology)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load topology", err)
	}

	rcA, ok := topo.Lookup(nameA)
	if !ok {
		return WrapExitError(ExitCommandError, "unknown replica", fmt.Errorf("no replica named %q in topology", nameA))
	}
	rcB, ok := topo.Lookup(nameB)
	if !ok {
		return WrapExitError(ExitCommandError, "unknown replica", fmt.Errorf("no replica named %q in topology", nameB))
	}

	a := replica.New(rcA.Name, rcA.DB)
	b := replica.New(rcB.Name, rcB.DB)

	var report replica.DivergenceReport
	err = a.With(ctx, func(a *replica.Replica) error {
		return b.With(ctx, func(b *replica.Replica) error {
			var err error
			report, err = a.Compare(ctx, b)
			return err
		})
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "comparison failed", err)
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		renderDivergence(cmd.OutOrStdout(), report, opts.Verbose)
	}

	if !report.Identical {
		return &ExitError{Code: ExitFailure, Message: "replicas diverge"}
	}
	return nil
}
