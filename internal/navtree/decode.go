package navtree

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned when a tree description has the wrong shape.
var ErrMalformed = errors.New("navtree: malformed description")

// Decode converts a generic tree description into nodes. The description is
// a sequence of [title, target, children] tuples where children is nil, a
// nested sequence, or a fragment reference string. Targets may be nil.
// The returned nodes carry no IDs; New and Resolve assign them.
func Decode(v any) ([]*Node, error) {
	return decodeList(v, "")
}

func decodeList(v any, at string) ([]*Node, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected a list, got %T", ErrMalformed, where(at), v)
	}
	out := make([]*Node, 0, len(items))
	for i, item := range items {
		n, err := decodeTuple(item, childID(at, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeTuple(v any, at string) (*Node, error) {
	tuple, ok := v.([]any)
	if !ok || len(tuple) != 3 {
		return nil, fmt.Errorf("%w: %s: expected a [title, target, children] tuple", ErrMalformed, at)
	}
	title, ok := tuple[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s: title is %T, want string", ErrMalformed, at, tuple[0])
	}
	n := &Node{Title: title}

	switch t := tuple[1].(type) {
	case nil:
	case string:
		n.Target = t
	default:
		return nil, fmt.Errorf("%w: %s: target is %T, want string or null", ErrMalformed, at, tuple[1])
	}

	switch c := tuple[2].(type) {
	case nil:
		n.Children = Inline()
	case string:
		if c == "" {
			return nil, fmt.Errorf("%w: %s: empty fragment reference", ErrMalformed, at)
		}
		n.Children = Deferred(c)
	case []any:
		kids, err := decodeList(c, at)
		if err != nil {
			return nil, err
		}
		n.Children = Inline(kids...)
	default:
		return nil, fmt.Errorf("%w: %s: children is %T", ErrMalformed, at, tuple[2])
	}
	return n, nil
}

// DecodeIndex converts a generic flat index description into page references.
func DecodeIndex(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: index: expected a list, got %T", ErrMalformed, v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("%w: index[%d]: expected a non-empty string", ErrMalformed, i)
		}
		out[i] = s
	}
	return out, nil
}

func where(at string) string {
	if at == "" {
		return "top level"
	}
	return at
}
