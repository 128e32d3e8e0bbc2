package graph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Node is one entity in the network (a person, a group, ...).
type Node struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Edge is a relationship between two nodes, referenced by id. Category is an
// optional classification token used for color lookup; it may name a category
// the palette doesn't know, in which case rendering falls back to a default.
type Edge struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Category string `yaml:"category,omitempty"`
}

// Snapshot is one full data refresh: the complete node and edge lists, in
// input order. Snapshots are immutable once loaded; a new refresh produces a
// new Snapshot and the view is rebuilt wholesale.
type Snapshot struct {
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

// Load parses a YAML snapshot. Duplicate node ids are rejected; edges that
// reference unknown nodes are kept — dropping them is a rendering concern,
// not a data error.
func Load(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	seen := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node with empty id (label %q)", n.Label)
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	return &s, nil
}

// LoadFile reads and parses a YAML snapshot file.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return Load(data)
}

// HasNode reports whether the snapshot contains a node with the given id.
func (s *Snapshot) HasNode(id string) bool {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return true
		}
	}
	return false
}
