package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"

	"github.com/roach88/replicaudit/internal/network"
	"github.com/roach88/replicaudit/internal/replica"
)

// Harness executes scenarios against real SQLite stores.
type Harness struct {
	dir    string
	logger *slog.Logger
}

// New creates a harness that places scenario databases under dir.
// Logging is discarded by default; use WithLogger for diagnostics.
func New(dir string) *Harness {
	return &Harness{
		dir:    dir,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger returns a copy of the harness that logs scenario progress.
func (h *Harness) WithLogger(logger *slog.Logger) *Harness {
	return &Harness{dir: h.dir, logger: logger}
}

// Run executes a scenario and returns the resulting network report.
//
// Execution flow:
//  1. Create one fresh database per replica under the harness directory.
//  2. Initialize every replica and append its event feed in order.
//  3. Run the network analysis.
//  4. Close every replica, on success or failure.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*network.Report, error) {
	replicas := make([]*replica.Replica, len(scenario.Replicas))
	for i, feed := range scenario.Replicas {
		dbPath := filepath.Join(h.dir, fmt.Sprintf("%s-%s.db", scenario.Name, feed.Name))
		replicas[i] = replica.New(feed.Name, dbPath)
	}
	defer func() {
		for _, r := range replicas {
			_ = r.Close()
		}
	}()

	for i, r := range replicas {
		if err := r.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		for _, event := range scenario.Replicas[i].Events {
			seq, err := r.AddEvent(ctx, event)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
			}
			h.logger.Debug("appended event",
				"scenario", scenario.Name,
				"replica", r.Name(),
				"seq", seq,
			)
		}
	}

	report, err := network.Compare(ctx, replicas)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	h.logger.Info("scenario analyzed",
		"scenario", scenario.Name,
		"groups", len(report.SyncGroups),
		"synced", report.SyncedCount,
		"healthy", report.Healthy,
	)
	return report, nil
}

// CheckExpectations compares a report against a scenario's expectations
// and returns one message per failed check. An empty slice means the
// scenario passed.
func CheckExpectations(scenario *Scenario, report *network.Report) []string {
	var failures []string

	if !reflect.DeepEqual(scenario.Expect.SyncGroups, report.SyncGroups) {
		failures = append(failures, fmt.Sprintf(
			"sync groups: expected %v, got %v",
			scenario.Expect.SyncGroups, report.SyncGroups,
		))
	}
	if want := scenario.Expect.SyncedCount; want != nil && *want != report.SyncedCount {
		failures = append(failures, fmt.Sprintf(
			"synced count: expected %d, got %d", *want, report.SyncedCount,
		))
	}
	if want := scenario.Expect.Healthy; want != nil && *want != report.Healthy {
		failures = append(failures, fmt.Sprintf(
			"health: expected %v, got %v", *want, report.Healthy,
		))
	}

	return failures
}
