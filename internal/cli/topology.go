package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/replicaudit/internal/replica"
)

// Topology describes a set of replicas of one logical ledger.
type Topology struct {
	// Replicas lists the member replicas. Order matters: network reports
	// group replicas in topology order.
	Replicas []ReplicaConfig `yaml:"replicas"`
}

// ReplicaConfig is one topology entry.
type ReplicaConfig struct {
	// Name uniquely identifies the replica within the topology.
	Name string `yaml:"name"`

	// DB is the SQLite database path, relative to the topology file
	// unless absolute.
	DB string `yaml:"db"`
}

// LoadTopology reads and validates a topology YAML file. Relative database
// paths are resolved against the file's directory.
func LoadTopology(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}

	var topo Topology
	if err := yaml.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("parse topology %s: %w", path, err)
	}

	if len(topo.Replicas) == 0 {
		return nil, fmt.Errorf("topology %s: no replicas defined", path)
	}

	base := filepath.Dir(path)
	seen := make(map[string]bool, len(topo.Replicas))
	for i, rc := range topo.Replicas {
		if rc.Name == "" {
			return nil, fmt.Errorf("topology %s: replica %d has no name", path, i)
		}
		if rc.DB == "" {
			return nil, fmt.Errorf("topology %s: replica %q has no db path", path, rc.Name)
		}
		if seen[rc.Name] {
			return nil, fmt.Errorf("topology %s: duplicate replica name %q", path, rc.Name)
		}
		seen[rc.Name] = true
		if !filepath.IsAbs(rc.DB) {
			topo.Replicas[i].DB = filepath.Join(base, rc.DB)
		}
	}

	return &topo, nil
}

// Lookup returns the config for a named replica.
func (t *Topology) Lookup(name string) (ReplicaConfig, bool) {
	for _, rc := range t.Replicas {
		if rc.Name == name {
			return rc, true
		}
	}
	return ReplicaConfig{}, false
}

// Build constructs Uninitialized replicas in topology order.
func (t *Topology) Build() []*replica.Replica {
	replicas := make([]*replica.Replica, len(t.Replicas))
	for i, rc := range t.Replicas {
		replicas[i] = replica.New(rc.Name, rc.DB)
	}
	return replicas
}
