// Package render prints navigation trees and check reports for terminals.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/doxnav/internal/apperr"
	"github.com/starford/doxnav/internal/linkcheck"
	"github.com/starford/doxnav/internal/navtree"
)

var (
	// titleStyle for section and group titles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// dimStyle for IDs, targets and connectors
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// refStyle for deferred fragment names
	refStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)
)

// TreeOptions controls Tree output.
type TreeOptions struct {
	// MaxDepth limits the printed depth; 0 prints everything. Deferred
	// children below the limit are not fetched.
	MaxDepth int
	// Targets appends each node's target page.
	Targets bool
	// Header is shown boxed above the tree when non-empty.
	Header string
}

// Tree writes nav as an indented tree. Deferred children are resolved
// through nav; a fragment that cannot be loaded is shown inline and the walk
// continues with the next sibling.
func Tree(ctx context.Context, w io.Writer, nav *navtree.Index, opts TreeOptions) error {
	if opts.Header != "" {
		fmt.Fprintln(w, headerBoxStyle.Render(opts.Header))
	}
	roots := nav.Roots()
	if len(roots) == 0 {
		fmt.Fprintln(w, dimStyle.Render("(empty tree)"))
		return nil
	}
	for _, r := range roots {
		fmt.Fprintln(w, nodeLine(r, opts, true))
		if err := treeChildren(ctx, w, nav, r, "", 1, opts); err != nil {
			return err
		}
	}
	return nil
}

func treeChildren(ctx context.Context, w io.Writer, nav *navtree.Index, n *navtree.Node, prefix string, depth int, opts TreeOptions) error {
	if n.IsLeaf() {
		return nil
	}
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return nil
	}

	kids, err := nav.Resolve(ctx, n)
	if err != nil {
		if errors.Is(err, apperr.ErrResourceUnavailable) {
			fmt.Fprintln(w, prefix+dimStyle.Render("└── ")+errorStyle.Render("unavailable: "+n.Children.Ref()))
			return nil
		}
		return err
	}

	for i, c := range kids {
		last := i == len(kids)-1
		connector, indent := "├── ", "│   "
		if last {
			connector, indent = "└── ", "    "
		}
		fmt.Fprintln(w, prefix+dimStyle.Render(connector)+nodeLine(c, opts, !c.IsLeaf()))
		if err := treeChildren(ctx, w, nav, c, prefix+dimStyle.Render(indent), depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

func nodeLine(n *navtree.Node, opts TreeOptions, group bool) string {
	var b strings.Builder
	if group {
		b.WriteString(titleStyle.Render(n.Title))
	} else {
		b.WriteString(n.Title)
	}
	b.WriteString(" " + dimStyle.Render("["+n.ID+"]"))
	if n.Children.IsDeferred() {
		b.WriteString(" " + refStyle.Render("<"+n.Children.Ref()+">"))
	}
	if opts.Targets && n.Target != "" {
		b.WriteString(" " + dimStyle.Render(n.Target))
	}
	return b.String()
}

// Report writes a link check report, one line per problem.
func Report(w io.Writer, rep *linkcheck.Report) {
	summary := fmt.Sprintf("%s %d  %s %d  %s %d",
		dimStyle.Render("Nodes:"), rep.Nodes,
		dimStyle.Render("Pages:"), rep.Pages,
		dimStyle.Render("Problems:"), len(rep.Problems))
	fmt.Fprintln(w, headerBoxStyle.Render(titleStyle.Render("Navigation check")+"\n"+summary))

	if rep.Consistent {
		fmt.Fprintln(w, successStyle.Render("OK")+" tree matches flat index")
	} else {
		fmt.Fprintln(w, errorStyle.Render("INCONSISTENT")+" "+rep.Consistency)
	}
	for _, p := range rep.Problems {
		fmt.Fprintf(w, "%s %s %s %s\n",
			errorStyle.Render(p.Kind),
			dimStyle.Render("["+p.NodeID+"]"),
			p.Title,
			dimStyle.Render(p.Detail))
	}
}
