package harness

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/replicaudit/internal/network"
)

// ReportSnapshot is the serialized form of a scenario's network report
// used for golden comparison. Fields marshal in declared order and the
// roots map marshals with sorted keys, so identical reports always produce
// identical bytes.
type ReportSnapshot struct {
	ScenarioName   string            `json:"scenario_name"`
	SyncGroups     [][]string        `json:"sync_groups"`
	Roots          map[string]string `json:"roots"`
	TotalReplicas  int               `json:"total_replicas"`
	SyncedCount    int               `json:"synced_count"`
	SyncPercentage float64           `json:"sync_percentage"`
	NetworkHealthy bool              `json:"network_healthy"`
}

// NewReportSnapshot builds the golden snapshot for a scenario run.
// The sync percentage is rounded to one decimal place so the JSON
// rendering of thirds and the like stays stable.
func NewReportSnapshot(scenarioName string, report *network.Report) ReportSnapshot {
	return ReportSnapshot{
		ScenarioName:   scenarioName,
		SyncGroups:     report.SyncGroups,
		Roots:          report.Roots,
		TotalReplicas:  report.TotalReplicas,
		SyncedCount:    report.SyncedCount,
		SyncPercentage: math.Round(report.SyncPercentage*10) / 10,
		NetworkHealthy: report.Healthy,
	}
}

// RunWithGolden executes a scenario, checks its expectations, and compares
// the report snapshot against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	h := New(t.TempDir())
	report, err := h.Run(context.Background(), scenario)
	if err != nil {
		t.Fatalf("scenario %s failed: %v", scenario.Name, err)
	}

	for _, failure := range CheckExpectations(scenario, report) {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	snapshot := NewReportSnapshot(scenario.Name, report)
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		t.Fatalf("scenario %s: marshal snapshot: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
