package api

import (
	"time"

	"github.com/starford/doxnav/internal/index"
	"github.com/starford/doxnav/internal/models"
	"github.com/starford/doxnav/internal/navtree"
)

// NodeDTO is a navigation node in API responses. Children holds inline
// children; deferred children are announced with Deferred and Ref and
// fetched through GET /nav/nodes/{id}. Resolved marks deferred nodes whose
// fragment is already loaded.
type NodeDTO struct {
	ID       string    `json:"id" example:"0.1.0" validate:"required"`
	Title    string    `json:"title" example:"Class List" validate:"required"`
	Target   string    `json:"target,omitempty" example:"annotated.html"`
	Leaf     bool      `json:"leaf"`
	Deferred bool      `json:"deferred,omitempty"`
	Ref      string    `json:"ref,omitempty" example:"annotated_dup"`
	Resolved bool      `json:"resolved,omitempty"`
	Children []NodeDTO `json:"children,omitempty"`
}

// NavResponse is the tree as far as it is known without fetching fragments.
type NavResponse struct {
	Revision   string    `json:"revision" validate:"required"`
	LoadedAt   time.Time `json:"loaded_at"`
	SyncOnMsg  string    `json:"sync_on_msg,omitempty"`
	SyncOffMsg string    `json:"sync_off_msg,omitempty"`
	Roots      []NodeDTO `json:"roots" validate:"required"`
}

// NodeResponse is one node with its resolved direct children. Seq and Depth
// come from the entry index and are absent for nodes not indexed yet.
type NodeResponse struct {
	NodeDTO
	ParentID string `json:"parent_id,omitempty" example:"0.1"`
	Seq      *int   `json:"seq,omitempty" example:"5"`
	Depth    *int   `json:"depth,omitempty" example:"2"`
}

// PathResponse is the breadcrumb from the root to a node.
type PathResponse struct {
	Path []NodeDTO `json:"path" validate:"required"`
}

// IndexResponse is the flat sequence index. Indexed is the number of tree
// entries in the search index.
type IndexResponse struct {
	Count   int      `json:"count" example:"5" validate:"required"`
	Indexed int      `json:"indexed" example:"42"`
	Entries []string `json:"entries" validate:"required"`
}

// IndexEntryResponse is one flat index position.
type IndexEntryResponse struct {
	Seq    int    `json:"seq" example:"3" validate:"required"`
	Target string `json:"target" example:"class_wi_m_o_d___s_a_p___dev_mgmt.html" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult = index.SearchResult

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// LocateResponse lists the entries pointing at a page.
type LocateResponse struct {
	Target  string         `json:"target" example:"index.html" validate:"required"`
	Entries []models.Entry `json:"entries" validate:"required"`
}

// nodeDTO converts n. Inline children are included down to depth levels
// (negative for unlimited); deferred children are never fetched here.
func nodeDTO(nav *navtree.Index, n *navtree.Node, depth int) NodeDTO {
	d := NodeDTO{
		ID:       n.ID,
		Title:    n.Title,
		Target:   n.Target,
		Leaf:     n.IsLeaf(),
		Deferred: n.Children.IsDeferred(),
		Ref:      n.Children.Ref(),
	}
	d.Resolved = d.Deferred && nav.IsResolved(n)
	if depth != 0 && !d.Deferred {
		for _, c := range n.Children.Nodes() {
			d.Children = append(d.Children, nodeDTO(nav, c, depth-1))
		}
	}
	return d
}

func nodeDTOs(nav *navtree.Index, nodes []*navtree.Node, depth int) []NodeDTO {
	out := make([]NodeDTO, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeDTO(nav, n, depth))
	}
	return out
}
