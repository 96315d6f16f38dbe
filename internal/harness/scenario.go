package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one divergence conformance case.
type Scenario struct {
	// Name uniquely identifies this scenario; it doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Replicas lists the member replicas and their event feeds, in the
	// order the network analyzer will see them.
	Replicas []ReplicaFeed `yaml:"replicas"`

	// Expect describes the required analysis outcome.
	Expect Expectation `yaml:"expect"`
}

// ReplicaFeed is one replica's ordered event sequence.
type ReplicaFeed struct {
	// Name identifies the replica within the scenario.
	Name string `yaml:"name"`

	// Events are appended in order before analysis. May be empty: an
	// untouched ledger carries the canonical empty-tree root.
	Events []string `yaml:"events,omitempty"`
}

// Expectation validates the network report produced by a scenario run.
// Zero-valued fields are not checked, except SyncGroups which is required.
type Expectation struct {
	// SyncGroups is the exact expected partition: group order and member
	// order both follow replica input order.
	SyncGroups [][]string `yaml:"sync_groups"`

	// SyncedCount, when non-nil, is the exact expected synced replica
	// count.
	SyncedCount *int `yaml:"synced_count,omitempty"`

	// Healthy, when non-nil, is the expected health verdict.
	Healthy *bool `yaml:"healthy,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file.
// Unknown fields are rejected so typos fail loudly instead of silently
// weakening a scenario.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}

	if err := scenario.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// LoadScenarioDir loads every .yaml scenario in a directory, sorted by
// file name for stable test ordering.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// validate checks structural requirements shared by every scenario.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(s.Replicas) < 2 {
		return fmt.Errorf("scenario needs at least 2 replicas, got %d", len(s.Replicas))
	}

	seen := make(map[string]bool, len(s.Replicas))
	for i, feed := range s.Replicas {
		if feed.Name == "" {
			return fmt.Errorf("replica %d has no name", i)
		}
		if seen[feed.Name] {
			return fmt.Errorf("duplicate replica name %q", feed.Name)
		}
		seen[feed.Name] = true
	}

	if len(s.Expect.SyncGroups) == 0 {
		return fmt.Errorf("expect.sync_groups is required")
	}
	for _, group := range s.Expect.SyncGroups {
		for _, name := range group {
			if !seen[name] {
				return fmt.Errorf("expect.sync_groups names unknown replica %q", name)
			}
		}
	}

	return nil
}
