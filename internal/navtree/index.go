package navtree

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/starford/doxnav/internal/apperr"
)

// Index is a navigation tree plus its flat, depth-first sequence index.
//
// An Index is safe for concurrent use. Resolved fragments are cached for the
// lifetime of the Index; concurrent resolutions of the same node share a
// single fetch. Failed fetches are not cached.
type Index struct {
	roots  []*Node
	flat   []string
	loader FragmentLoader

	group    singleflight.Group
	mu       sync.RWMutex
	resolved map[string][]*Node
}

// New builds an Index from decoded roots and flat index entries. Node IDs are
// assigned here. loader may be nil when the tree has no deferred nodes.
func New(roots []*Node, flat []string, loader FragmentLoader) *Index {
	f := make([]string, len(flat))
	copy(f, flat)
	return &Index{
		roots:    assignIDs("", roots),
		flat:     f,
		loader:   loader,
		resolved: make(map[string][]*Node),
	}
}

// Root returns the first top-level node, or nil for an empty tree.
func (x *Index) Root() *Node {
	if len(x.roots) == 0 {
		return nil
	}
	return x.roots[0]
}

// Roots returns all top-level nodes in description order.
func (x *Index) Roots() []*Node {
	out := make([]*Node, len(x.roots))
	copy(out, x.roots)
	return out
}

// Resolve returns the children of n. Inline children are returned as is;
// deferred children are loaded from their fragment on first use and served
// from the cache afterwards. Load failures wrap apperr.ErrResourceUnavailable.
func (x *Index) Resolve(ctx context.Context, n *Node) ([]*Node, error) {
	if n == nil {
		return nil, nil
	}
	if !n.Children.IsDeferred() {
		return n.Children.Nodes(), nil
	}
	if kids, ok := x.cached(n.ID); ok {
		return cloneNodes(kids), nil
	}

	// The shared load outlives any single caller; each caller waits on its
	// own ctx. The loader bounds the load with its own timeout.
	loadCtx := context.WithoutCancel(ctx)
	ch := x.group.DoChan(n.ID, func() (any, error) {
		if kids, ok := x.cached(n.ID); ok {
			return kids, nil
		}
		if x.loader == nil {
			return nil, errors.New("no fragment loader configured")
		}
		loaded, err := x.loader.Load(loadCtx, n.Children.Ref())
		if err != nil {
			return nil, err
		}
		kids := assignIDs(n.ID, loaded)

		x.mu.Lock()
		x.resolved[n.ID] = kids
		x.mu.Unlock()
		return kids, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: fragment %q of node %s: %w",
			apperr.ErrResourceUnavailable, n.Children.Ref(), n.ID, context.Cause(ctx))
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%w: fragment %q of node %s: %w",
				apperr.ErrResourceUnavailable, n.Children.Ref(), n.ID, res.Err)
		}
		return cloneNodes(res.Val.([]*Node)), nil
	}
}

// IsResolved reports whether n's children are available without a fetch.
func (x *Index) IsResolved(n *Node) bool {
	if !n.Children.IsDeferred() {
		return true
	}
	_, ok := x.cached(n.ID)
	return ok
}

func (x *Index) cached(id string) ([]*Node, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	kids, ok := x.resolved[id]
	return kids, ok
}

// Lookup returns the page reference at position seq of the flat index.
func (x *Index) Lookup(seq int) (string, error) {
	if seq < 0 || seq >= len(x.flat) {
		return "", fmt.Errorf("%w: sequence %d not in [0, %d)", apperr.ErrOutOfRange, seq, len(x.flat))
	}
	return x.flat[seq], nil
}

// Len returns the number of flat index entries.
func (x *Index) Len() int {
	return len(x.flat)
}

// Entries returns a copy of the flat index.
func (x *Index) Entries() []string {
	out := make([]string, len(x.flat))
	copy(out, x.flat)
	return out
}

// Node finds the node with the given ID, resolving deferred ancestors on
// the way. Unknown IDs return apperr.ErrNotFound.
func (x *Index) Node(ctx context.Context, id string) (*Node, error) {
	path, err := x.Path(ctx, id)
	if err != nil {
		return nil, err
	}
	return path[len(path)-1], nil
}

// Path returns the nodes from the root down to and including the node with
// the given ID.
func (x *Index) Path(ctx context.Context, id string) ([]*Node, error) {
	positions, err := parseID(id)
	if err != nil {
		return nil, err
	}

	level := x.roots
	out := make([]*Node, 0, len(positions))
	for depth, pos := range positions {
		if pos >= len(level) {
			return nil, fmt.Errorf("navtree: node %q: %w", id, apperr.ErrNotFound)
		}
		n := level[pos]
		out = append(out, n)
		if depth == len(positions)-1 {
			break
		}
		kids, err := x.Resolve(ctx, n)
		if err != nil {
			return nil, err
		}
		level = kids
	}
	return out, nil
}

func parseID(id string) ([]int, error) {
	if id == "" {
		return nil, fmt.Errorf("navtree: empty node id: %w", apperr.ErrNotFound)
	}
	parts := strings.Split(id, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("navtree: bad node id %q: %w", id, apperr.ErrNotFound)
		}
		out[i] = n
	}
	return out, nil
}

func cloneNodes(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	return out
}
