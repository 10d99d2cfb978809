// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the documentation navigation tree to LLMs over stdio.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/doxnav/internal/apperr"
	"github.com/starford/doxnav/internal/docsite"
	"github.com/starford/doxnav/internal/index"
	"github.com/starford/doxnav/internal/linkcheck"
	"github.com/starford/doxnav/internal/navtree"
	"github.com/starford/doxnav/internal/render"
)

const (
	formatURI       = "doxnav://navtree-format"
	defaultDepth    = 3
	defaultSearchN  = 20
	maxSearchResult = 100
)

// Server wraps the MCP server with the navigation tools.
type Server struct {
	mcp  *server.MCPServer
	site *docsite.Site
	db   index.EntryIndex
}

// New creates a new MCP server with all navigation tools registered.
func New(site *docsite.Site, db index.EntryIndex) *Server {
	s := &Server{site: site, db: db}

	s.mcp = server.NewMCPServer(
		"doxnav",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_nav_tree",
		mcp.WithDescription("Print the documentation navigation tree with node IDs and target pages. "+
			"Deferred sections are expanded up to the requested depth."),
		mcp.WithNumber("depth", mcp.Description("Maximum depth to print (default 3, 0 for everything)")),
	), s.getNavTree)

	s.mcp.AddTool(mcp.NewTool("expand_node",
		mcp.WithDescription("Return one node and its direct children as JSON, loading the node's "+
			"fragment file if its children are deferred."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Node ID, dotted child positions (e.g. 0.1.0)")),
	), s.expandNode)

	s.mcp.AddTool(mcp.NewTool("lookup_sequence",
		mcp.WithDescription("Return the page reference at a position of the flat navigation index."),
		mcp.WithNumber("seq", mcp.Required(), mcp.Description("Zero-based position")),
	), s.lookupSequence)

	s.mcp.AddTool(mcp.NewTool("search_nav",
		mcp.WithDescription("Search navigation entries by title or target page."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum results (default 20)")),
	), s.searchNav)

	s.mcp.AddTool(mcp.NewTool("get_breadcrumb",
		mcp.WithDescription("Return the titles from the root down to a node, separated by ' > '."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Node ID")),
	), s.getBreadcrumb)

	s.mcp.AddTool(mcp.NewTool("locate_page",
		mcp.WithDescription("List the navigation entries that point at a page. A page without "+
			"#anchor also matches entries pointing into it."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Page, e.g. index.html or index.html#about")),
	), s.locatePage)

	s.mcp.AddTool(mcp.NewTool("check_navigation",
		mcp.WithDescription("Verify the tree against its flat index and report targets whose page "+
			"or anchor does not exist."),
	), s.checkNavigation)

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Navigation Tree Format",
			mcp.WithResourceDescription("Structure of navtreedata.js, fragments, node IDs and the flat index."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type nodeView struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Target   string     `json:"target,omitempty"`
	Leaf     bool       `json:"leaf"`
	Deferred string     `json:"deferred,omitempty"`
	Children []nodeView `json:"children,omitempty"`
}

func viewOf(n *navtree.Node) nodeView {
	return nodeView{
		ID:       n.ID,
		Title:    n.Title,
		Target:   n.Target,
		Leaf:     n.IsLeaf(),
		Deferred: n.Children.Ref(),
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func navError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return mcp.NewToolResultError("node not found")
	default:
		return mcp.NewToolResultError(err.Error())
	}
}

func (s *Server) getNavTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	depth := req.GetInt("depth", defaultDepth)
	if depth < 0 {
		return mcp.NewToolResultError("depth must not be negative"), nil
	}
	snap := s.site.Current()
	var buf bytes.Buffer
	err := render.Tree(ctx, &buf, snap.Nav, render.TreeOptions{MaxDepth: depth, Targets: true})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) expandNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	nav := s.site.Index()
	n, err := nav.Node(ctx, id)
	if err != nil {
		return navError(err), nil
	}
	kids, err := nav.Resolve(ctx, n)
	if err != nil {
		return navError(err), nil
	}
	v := viewOf(n)
	for _, c := range kids {
		v.Children = append(v.Children, viewOf(c))
	}
	return jsonResult(v), nil
}

func (s *Server) lookupSequence(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seq, err := req.RequireInt("seq")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := s.site.Index().Lookup(seq)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(target), nil
}

func (s *Server) searchNav(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := min(req.GetInt("limit", defaultSearchN), maxSearchResult)
	results, err := s.db.Search(query, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}
	return jsonResult(results), nil
}

func (s *Server) getBreadcrumb(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := s.site.Index().Path(ctx, id)
	if err != nil {
		return navError(err), nil
	}
	titles := make([]string, len(path))
	for i, n := range path {
		titles[i] = n.Title
	}
	return mcp.NewToolResultText(strings.Join(titles, " > ")), nil
}

func (s *Server) locatePage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := req.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := s.db.EntriesByTarget(target)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no entries point at %s", target)), nil
	}
	return jsonResult(entries), nil
}

func (s *Server) checkNavigation(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep, err := linkcheck.Check(ctx, s.site.Index(), s.site.Store())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rep), nil
}

func (s *Server) readFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     NavTreeFormat,
		},
	}, nil
}
