// Package linkcheck validates that every node of a navigation tree points at
// a page that exists and, for anchored targets, at an anchor that the page
// actually defines.
package linkcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/net/html"

	"github.com/starford/doxnav/internal/apperr"
	"github.com/starford/doxnav/internal/navtree"
	"github.com/starford/doxnav/internal/storage"
)

// Problem kinds.
const (
	KindMissingPage   = "missing_page"
	KindMissingAnchor = "missing_anchor"
	KindBadPage       = "bad_page"
	KindUnavailable   = "unavailable_fragment"
)

// Problem is one broken navigation entry.
type Problem struct {
	NodeID string `json:"node_id"`
	Title  string `json:"title"`
	Target string `json:"target,omitempty"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// Report is the outcome of one Check run.
type Report struct {
	Nodes       int       `json:"nodes"`
	Pages       int       `json:"pages"`
	Consistent  bool      `json:"consistent"`
	Consistency string    `json:"consistency,omitempty"`
	Problems    []Problem `json:"problems"`
}

// OK reports whether the tree is consistent and has no broken entries.
func (r *Report) OK() bool {
	return r.Consistent && len(r.Problems) == 0
}

// page is a parsed target page: nil anchors with a non-nil err means the
// page could not be read or parsed.
type page struct {
	anchors map[string]struct{}
	err     error
}

// Check walks every available node of nav, verifies the tree against its
// flat index and resolves each target against the pages in store. Each page
// is read and parsed at most once per run.
func Check(ctx context.Context, nav *navtree.Index, store storage.Provider) (*Report, error) {
	rep := &Report{Problems: []Problem{}}
	pages := make(map[string]*page)

	err := nav.WalkAvailable(ctx, func(n *navtree.Node, _ int) error {
		rep.Nodes++
		if n.Target == "" {
			return nil
		}
		file, anchor := splitTarget(n.Target)
		if file == "" {
			return nil
		}

		p, ok := pages[file]
		if !ok {
			p = loadPage(store, file)
			pages[file] = p
		}

		switch {
		case errors.Is(p.err, fs.ErrNotExist):
			rep.Problems = append(rep.Problems, problem(n, KindMissingPage, file))
		case p.err != nil:
			rep.Problems = append(rep.Problems, problem(n, KindBadPage, p.err.Error()))
		case anchor != "":
			if _, found := p.anchors[anchor]; !found {
				rep.Problems = append(rep.Problems, problem(n, KindMissingAnchor, "#"+anchor))
			}
		}
		return nil
	}, func(n *navtree.Node, err error) {
		rep.Problems = append(rep.Problems, problem(n, KindUnavailable, err.Error()))
	})
	if err != nil {
		return nil, fmt.Errorf("linkcheck: %w", err)
	}
	rep.Pages = len(pages)

	switch err := nav.Verify(ctx); {
	case err == nil:
		rep.Consistent = true
	case errors.Is(err, apperr.ErrInconsistent), errors.Is(err, apperr.ErrResourceUnavailable):
		rep.Consistency = err.Error()
	default:
		return nil, fmt.Errorf("linkcheck: %w", err)
	}
	return rep, nil
}

func problem(n *navtree.Node, kind, detail string) Problem {
	return Problem{NodeID: n.ID, Title: n.Title, Target: n.Target, Kind: kind, Detail: detail}
}

// splitTarget separates "page.html#anchor" into its parts, dropping any
// query string from the page.
func splitTarget(target string) (file, anchor string) {
	file, anchor, _ = strings.Cut(target, "#")
	file, _, _ = strings.Cut(file, "?")
	return file, anchor
}

func loadPage(store storage.Provider, file string) *page {
	if !store.Exists(file) {
		return &page{err: fmt.Errorf("%s: %w", file, fs.ErrNotExist)}
	}
	data, err := store.Read(file)
	if err != nil {
		return &page{err: err}
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return &page{err: fmt.Errorf("parse html: %w", err)}
	}
	return &page{anchors: collectAnchors(doc)}
}

// collectAnchors gathers every fragment identifier a page defines: the id
// of any element and the name of <a> elements.
func collectAnchors(doc *html.Node) map[string]struct{} {
	out := make(map[string]struct{})
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" || (a.Key == "name" && n.Data == "a") {
					if a.Val != "" {
						out[a.Val] = struct{}{}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}
