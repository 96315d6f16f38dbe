package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/replicaudit/internal/network"
	"github.com/roach88/replicaudit/internal/replica"
)

// NetworkOptions holds flags for the network command.
type NetworkOptions struct {
	*RootOptions
	Topology string
}

// NewNetworkCommand creates the network command.
func NewNetworkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NetworkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "network",
		Short: "Partition a replica set into sync groups",
		Long: `Analyze every replica in a topology and partition them into sync
groups by Merkle root equality.

The report lists each group, the per-replica roots, and whether the network
clears the health threshold (at least 80% of replicas in a non-singleton
group). Exits with status 1 when the network is unhealthy.

Examples:
  replicaudit network --topology replicas.yaml
  replicaudit network --topology replicas.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetwork(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Topology, "topology", "", "path to topology YAML (required)")
	_ = cmd.MarkFlagRequired("topology")

	return cmd
}

func runNetwork(opts *NetworkOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	topo, err := LoadTopology(opts.Topology)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load topology", err)
	}

	replicas := topo.Build()
	defer closeAll(replicas)
	for _, r := range replicas {
		if err := r.Initialize(ctx); err != nil {
			return WrapExitError(ExitCommandError, "failed to initialize replicas", err)
		}
	}

	report, err := network.Compare(ctx, replicas)
	if err != nil {
		return WrapExitError(ExitCommandError, "network analysis failed", err)
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		renderNetwork(cmd.OutOrStdout(), report)
	}

	if !report.Healthy {
		return &ExitError{Code: ExitFailure, Message: "network is unhealthy"}
	}
	return nil
}

// closeAll closes every replica, ignoring individual close errors; the
// analysis result has already been produced by the time it runs.
func closeAll(replicas []*replica.Replica) {
	for _, r := range replicas {
		_ = r.Close()
	}
}
