// Package docsite loads the navigation index of a generated documentation
// site and keeps the current snapshot available to readers.
package docsite

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/starford/doxnav/internal/navtree"
	"github.com/starford/doxnav/internal/parser"
	"github.com/starford/doxnav/internal/storage"
)

// Options controls where the navigation data lives.
type Options struct {
	TreeFile    string        // script holding the tree, e.g. "navtreedata.js"
	TreeVar     string        // tree variable, e.g. "NAVTREE"
	IndexVar    string        // flat index variable, e.g. "NAVTREEINDEX"
	EvalTimeout time.Duration // per-script evaluation limit
}

func (o Options) withDefaults() Options {
	if o.TreeFile == "" {
		o.TreeFile = "navtreedata.js"
	}
	if o.TreeVar == "" {
		o.TreeVar = "NAVTREE"
	}
	if o.IndexVar == "" {
		o.IndexVar = "NAVTREEINDEX"
	}
	if o.EvalTimeout <= 0 {
		o.EvalTimeout = 2 * time.Second
	}
	return o
}

// Snapshot is one immutable load of the site.
type Snapshot struct {
	Nav      *navtree.Index
	Revision string
	LoadedAt time.Time

	// Panel synchronisation labels shipped with the tree, when present.
	SyncOnMsg  string
	SyncOffMsg string
}

// Site owns the current Snapshot. Reload swaps in a complete new snapshot so
// readers never see a partially built index.
type Site struct {
	store  storage.Provider
	opts   Options
	logger *slog.Logger

	reloadMu sync.Mutex
	current  atomic.Pointer[Snapshot]
}

// Open loads the navigation tree eagerly.
func Open(ctx context.Context, store storage.Provider, opts Options, logger *slog.Logger) (*Site, error) {
	s := &Site{
		store:  store,
		opts:   opts.withDefaults(),
		logger: logger,
	}
	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the active snapshot.
func (s *Site) Current() *Snapshot {
	return s.current.Load()
}

// Index returns the active navigation index.
func (s *Site) Index() *navtree.Index {
	return s.current.Load().Nav
}

// Store returns the docs directory the site reads from.
func (s *Site) Store() storage.Provider {
	return s.store
}

// TreeFile returns the name of the tree script.
func (s *Site) TreeFile() string {
	return s.opts.TreeFile
}

// Reload reads the tree script again and activates the result. On failure
// the previous snapshot stays active.
func (s *Site) Reload(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)

	s.logger.Info("docsite: navigation loaded",
		slog.String("revision", snap.Revision),
		slog.String("tree_file", s.opts.TreeFile),
		slog.Int("roots", len(snap.Nav.Roots())),
		slog.Int("entries", snap.Nav.Len()))
	return snap, nil
}

func (s *Site) load(ctx context.Context) (*Snapshot, error) {
	data, err := s.store.Read(s.opts.TreeFile)
	if err != nil {
		return nil, fmt.Errorf("docsite: %w", err)
	}

	evalCtx, cancel := context.WithTimeout(ctx, s.opts.EvalTimeout)
	defer cancel()
	globals, err := parser.Eval(evalCtx, data, s.opts.TreeVar, s.opts.IndexVar, "SYNCONMSG", "SYNCOFFMSG")
	if err != nil {
		return nil, fmt.Errorf("docsite: %s: %w", s.opts.TreeFile, err)
	}

	rawTree, err := globals.Require(s.opts.TreeVar)
	if err != nil {
		return nil, fmt.Errorf("docsite: %s: %w", s.opts.TreeFile, err)
	}
	roots, err := navtree.Decode(rawTree)
	if err != nil {
		return nil, fmt.Errorf("docsite: %s: %w", s.opts.TreeFile, err)
	}

	// A site without a flat index still has a browsable tree.
	var flat []string
	if rawIndex, ok := globals[s.opts.IndexVar]; ok {
		if flat, err = navtree.DecodeIndex(rawIndex); err != nil {
			return nil, fmt.Errorf("docsite: %s: %w", s.opts.TreeFile, err)
		}
	} else {
		s.logger.Warn("docsite: flat index missing", slog.String("var", s.opts.IndexVar))
	}

	loader := &fragmentLoader{store: s.store, timeout: s.opts.EvalTimeout}
	return &Snapshot{
		Nav:        navtree.New(roots, flat, loader),
		Revision:   uuid.NewString(),
		LoadedAt:   time.Now(),
		SyncOnMsg:  globals.String("SYNCONMSG"),
		SyncOffMsg: globals.String("SYNCOFFMSG"),
	}, nil
}
