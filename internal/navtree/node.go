// Package navtree holds the navigation tree of a documentation site together
// with its flat sequence index.
//
// The tree is built once and never mutated. Nodes whose children live in a
// separate fragment are resolved on demand through a FragmentLoader; each
// fragment is fetched at most once per Index.
package navtree

import (
	"context"
	"strconv"
	"strings"
)

type childKind uint8

const (
	kindInline childKind = iota
	kindDeferred
)

// Children is either an inline list of nodes or a reference to a fragment
// that holds them. The zero value is an empty inline list.
type Children struct {
	kind  childKind
	nodes []*Node
	ref   string
}

// Inline returns children embedded in the description.
func Inline(nodes ...*Node) Children {
	return Children{kind: kindInline, nodes: nodes}
}

// Deferred returns children that must be fetched from the fragment named ref.
func Deferred(ref string) Children {
	return Children{kind: kindDeferred, ref: ref}
}

// IsDeferred reports whether the children live in an external fragment.
func (c Children) IsDeferred() bool { return c.kind == kindDeferred }

// Ref returns the fragment reference of deferred children, or "".
func (c Children) Ref() string { return c.ref }

// Nodes returns a copy of the inline children. It is nil for deferred children.
func (c Children) Nodes() []*Node {
	if c.kind == kindDeferred || len(c.nodes) == 0 {
		return nil
	}
	out := make([]*Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Len returns the number of inline children.
func (c Children) Len() int { return len(c.nodes) }

// Node is one labeled entry of the navigation tree.
type Node struct {
	// ID is the dotted path of child positions from the roots, e.g. "0.2.1".
	ID       string
	Title    string
	Target   string // page, optionally with "#anchor"; empty when absent
	Children Children
}

// IsLeaf reports whether the node has no inline children and no fragment.
func (n *Node) IsLeaf() bool {
	return !n.Children.IsDeferred() && n.Children.Len() == 0
}

// FragmentLoader materializes the children stored in an external fragment.
type FragmentLoader interface {
	Load(ctx context.Context, ref string) ([]*Node, error)
}

// LoaderFunc adapts a function to FragmentLoader.
type LoaderFunc func(ctx context.Context, ref string) ([]*Node, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, ref string) ([]*Node, error) {
	return f(ctx, ref)
}

// childID returns the ID of the i-th child under parent ("" for the roots).
func childID(parent string, i int) string {
	if parent == "" {
		return strconv.Itoa(i)
	}
	return parent + "." + strconv.Itoa(i)
}

// assignIDs copies nodes into a new subtree with IDs rooted at parent.
// Loaders and decoders hand out fresh nodes, but copying keeps a caller that
// reuses a slice from seeing its nodes renumbered.
func assignIDs(parent string, nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		c := &Node{
			ID:     childID(parent, i),
			Title:  n.Title,
			Target: n.Target,
		}
		if n.Children.IsDeferred() {
			c.Children = Deferred(n.Children.ref)
		} else {
			c.Children = Inline(assignIDs(c.ID, n.Children.nodes)...)
		}
		out[i] = c
	}
	return out
}

// ParentID returns the ID of the node's parent, or "" for a root.
func ParentID(id string) string {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return ""
}
