// Package models defines the domain types shared by storage and index.
package models

import "time"

// FragmentMetadata describes one navigation data file in the docs directory.
type FragmentMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entry is one row of the flattened navigation tree, in depth-first order.
type Entry struct {
	Seq      int    `json:"seq"`
	NodeID   string `json:"node_id"`
	ParentID string `json:"parent_id,omitempty"`
	Title    string `json:"title"`
	Target   string `json:"target,omitempty"`
	Depth    int    `json:"depth"`
}
