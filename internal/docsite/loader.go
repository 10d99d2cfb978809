package docsite

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/starford/doxnav/internal/navtree"
	"github.com/starford/doxnav/internal/parser"
	"github.com/starford/doxnav/internal/storage"
)

// Fragment references double as JavaScript variable names.
var refRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// fragmentLoader reads <ref>.js from the docs directory and decodes the
// variable of the same name.
type fragmentLoader struct {
	store   storage.Provider
	timeout time.Duration
}

func (l *fragmentLoader) Load(ctx context.Context, ref string) ([]*navtree.Node, error) {
	if !refRe.MatchString(ref) {
		return nil, fmt.Errorf("docsite: invalid fragment reference %q", ref)
	}
	data, err := l.store.Read(ref + ".js")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	globals, err := parser.Eval(ctx, data, ref)
	if err != nil {
		return nil, fmt.Errorf("docsite: %s.js: %w", ref, err)
	}
	v, err := globals.Require(ref)
	if err != nil {
		return nil, fmt.Errorf("docsite: %s.js: %w", ref, err)
	}
	return navtree.Decode(v)
}
