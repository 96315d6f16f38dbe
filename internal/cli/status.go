package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/replicaudit/internal/replica"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	Topology string
	Name     string // optional - single replica
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show replica status snapshots",
		Long: `Show a status snapshot for each replica in a topology.

Each snapshot includes the record count, the current Merkle root, and the
most recent payloads. Roots are recomputed from the full ledger on every
invocation.

Examples:
  replicaudit status --topology replicas.yaml
  replicaudit status --topology replicas.yaml --name alpha
  replicaudit status --topology replicas.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Topology, "topology", "", "path to topology YAML (required)")
	_ = cmd.MarkFlagRequired("topology")
	cmd.Flags().StringVar(&opts.Name, "name", "", "limit to a single replica")

	return cmd
}

func runStatus(opts *StatusOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	topo, err := LoadTopology(opts.Topology)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load topology", err)
	}

	configs := topo.Replicas
	if opts.Name != "" {
		rc, ok := topo.Lookup(opts.Name)
		if !ok {
			return WrapExitError(ExitCommandError, "unknown replica", fmt.Errorf("no replica named %q in topology", opts.Name))
		}
		configs = []ReplicaConfig{rc}
	}

	statuses := make([]replica.Status, 0, len(configs))
	for _, rc := range configs {
		r := replica.New(rc.Name, rc.DB)
		err := r.With(ctx, func(r *replica.Replica) error {
			status, err := r.Status(ctx)
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
			return nil
		})
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read replica %q", rc.Name), err)
		}
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), statuses)
	}

	out := cmd.OutOrStdout()
	for i, status := range statuses {
		if i > 0 {
			fmt.Fprintln(out)
		}
		renderStatus(out, status, opts.Verbose)
	}
	return nil
}
