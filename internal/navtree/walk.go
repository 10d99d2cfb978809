package navtree

import (
	"context"
	"errors"
	"fmt"

	"github.com/starford/doxnav/internal/apperr"
)

// WalkFunc is called for each node in depth-first pre-order. depth is 0 for
// the roots. Returning SkipChildren prunes the node's subtree.
type WalkFunc func(n *Node, depth int) error

// SkipChildren tells Walk not to descend into the current node.
var SkipChildren = errors.New("navtree: skip children")

// Walk visits the fully resolved tree in depth-first pre-order, preserving
// description order. A fragment that cannot be loaded stops the walk.
func (x *Index) Walk(ctx context.Context, fn WalkFunc) error {
	return x.walk(ctx, x.roots, 0, fn, false, nil)
}

// WalkAvailable is Walk, except that subtrees whose fragment cannot be loaded
// are skipped and reported to onUnavailable (which may be nil).
func (x *Index) WalkAvailable(ctx context.Context, fn WalkFunc, onUnavailable func(n *Node, err error)) error {
	return x.walk(ctx, x.roots, 0, fn, true, onUnavailable)
}

func (x *Index) walk(ctx context.Context, nodes []*Node, depth int, fn WalkFunc, tolerant bool, onUnavailable func(*Node, error)) error {
	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(n, depth)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}

		kids, err := x.Resolve(ctx, n)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if tolerant && errors.Is(err, apperr.ErrResourceUnavailable) {
				if onUnavailable != nil {
					onUnavailable(n, err)
				}
				continue
			}
			return err
		}
		if err := x.walk(ctx, kids, depth+1, fn, tolerant, onUnavailable); err != nil {
			return err
		}
	}
	return nil
}

// Flatten returns every node of the fully resolved tree in depth-first
// pre-order.
func (x *Index) Flatten(ctx context.Context) ([]*Node, error) {
	var out []*Node
	err := x.Walk(ctx, func(n *Node, _ int) error {
		out = append(out, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Verify checks that a full expansion of the tree lines up with the flat
// index: same length, and the i-th node's target equals entry i. The first
// disagreement is reported as apperr.ErrInconsistent.
func (x *Index) Verify(ctx context.Context) error {
	nodes, err := x.Flatten(ctx)
	if err != nil {
		return err
	}
	for i, n := range nodes {
		if i >= len(x.flat) {
			break
		}
		if n.Target != x.flat[i] {
			return fmt.Errorf("%w: position %d: node %s targets %q, index has %q",
				apperr.ErrInconsistent, i, n.ID, n.Target, x.flat[i])
		}
	}
	if len(nodes) != len(x.flat) {
		return fmt.Errorf("%w: tree has %d nodes, index has %d entries",
			apperr.ErrInconsistent, len(nodes), len(x.flat))
	}
	return nil
}
