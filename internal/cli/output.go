package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/replicaudit/internal/network"
	"github.com/roach88/replicaudit/internal/replica"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Divergence detected / unhealthy network
	ExitCommandError = 2 // Command error (invalid topology, unknown replica, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// writeJSON encodes v as a single indented JSON document.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// shortRoot abbreviates a root hash for text output: first and last 16
// characters, matching how operators eyeball fingerprints.
func shortRoot(root string) string {
	if len(root) <= 32 {
		return root
	}
	return root[:16] + "..." + root[len(root)-16:]
}

// renderStatus writes a replica status snapshot as text.
func renderStatus(w io.Writer, status replica.Status, verbose bool) {
	fmt.Fprintf(w, "Replica: %s\n", status.Name)
	fmt.Fprintf(w, "  Database: %s\n", status.DBPath)
	if !status.Initialized {
		fmt.Fprintf(w, "  Status: not initialized\n")
		return
	}
	fmt.Fprintf(w, "  Status: active\n")
	fmt.Fprintf(w, "  Records: %d\n", status.RecordCount)
	if verbose {
		fmt.Fprintf(w, "  Merkle root: %s\n", status.Root)
	} else {
		fmt.Fprintf(w, "  Merkle root: %s\n", shortRoot(status.Root))
	}
	if len(status.RecentPayloads) > 0 {
		fmt.Fprintf(w, "  Recent records:\n")
		for _, payload := range status.RecentPayloads {
			fmt.Fprintf(w, "    - %s\n", truncatePayload(payload))
		}
	}
}

// truncatePayload limits a payload to 50 characters for listings.
func truncatePayload(payload string) string {
	if len(payload) <= 50 {
		return payload
	}
	return payload[:50] + "..."
}

// renderDivergence writes a pairwise divergence report as text.
func renderDivergence(w io.Writer, report replica.DivergenceReport, verbose bool) {
	fmt.Fprintf(w, "Comparing %s and %s\n", report.SelfName, report.OtherName)
	if verbose {
		fmt.Fprintf(w, "  %s root: %s\n", report.SelfName, report.RootSelf)
		fmt.Fprintf(w, "  %s root: %s\n", report.OtherName, report.RootOther)
	} else {
		fmt.Fprintf(w, "  %s root: %s\n", report.SelfName, shortRoot(report.RootSelf))
		fmt.Fprintf(w, "  %s root: %s\n", report.OtherName, shortRoot(report.RootOther))
	}
	fmt.Fprintf(w, "  Records: %d vs %d\n", report.CountSelf, report.CountOther)

	switch report.Kind {
	case replica.DivergenceNone:
		fmt.Fprintf(w, "  Result: identical\n")
	case replica.DivergenceContent:
		fmt.Fprintf(w, "  Result: content divergence (same record count, different content)\n")
	case replica.DivergenceCount:
		fmt.Fprintf(w, "  Result: count divergence (%s has %d more records)\n", report.Ahead, report.Lead)
	}
}

// renderNetwork writes a network report as text.
func renderNetwork(w io.Writer, report *network.Report) {
	fmt.Fprintf(w, "Network: %d replicas\n", report.TotalReplicas)
	fmt.Fprintf(w, "Sync groups:\n")
	for i, group := range report.SyncGroups {
		fmt.Fprintf(w, "  %d. %s\n", i+1, strings.Join(group, ", "))
	}
	fmt.Fprintf(w, "Synced: %d of %d (%.1f%%)\n", report.SyncedCount, report.TotalReplicas, report.SyncPercentage)
	if report.Healthy {
		fmt.Fprintf(w, "Health: healthy\n")
	} else {
		fmt.Fprintf(w, "Health: unhealthy (below %.0f%% threshold)\n", network.HealthyThreshold)
	}
}
