package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/replicaudit/internal/replica"
)

// AppendOptions holds flags for the append command.
type AppendOptions struct {
	*RootOptions
	Topology string
	Name     string
}

// appendResult is the JSON payload for a successful append.
type appendResult struct {
	Replica string `json:"replica"`
	Seq     int64  `json:"seq"`
	Payload string `json:"payload"`
}

// NewAppendCommand creates the append command.
func NewAppendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AppendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "append <payload>",
		Short: "Append an event to one replica's ledger",
		Long: `Append an event payload to a replica's append-only ledger.

The store assigns the next sequence number; records are never updated or
removed afterwards.

Examples:
  replicaudit append --topology replicas.yaml --name alpha "user signed up"
  replicaudit append --topology replicas.yaml --name alpha --format json "payment 42"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppend(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Topology, "topology", "", "path to topology YAML (required)")
	_ = cmd.MarkFlagRequired("topology")
	cmd.Flags().StringVar(&opts.Name, "name", "", "replica to append to (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runAppend(opts *AppendOptions, cmd *cobra.Command, payload string) error {
	ctx := context.Background()

	topo, err := LoadTopology(opts.Topology)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load topology", err)
	}

	rc, ok := topo.Lookup(opts.Name)
	if !ok {
		return WrapExitError(ExitCommandError, "unknown replica", fmt.Errorf("no replica named %q in topology", opts.Name))
	}

	var seq int64
	r := replica.New(rc.Name, rc.DB)
	err = r.With(ctx, func(r *replica.Replica) error {
		var err error
		seq, err = r.AddEvent(ctx, payload)
		return err
	})
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to append to replica %q", rc.Name), err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), appendResult{Replica: rc.Name, Seq: seq, Payload: payload})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Appended record %d to %s\n", seq, rc.Name)
	return nil
}
