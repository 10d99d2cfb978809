package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/starford/doxnav/internal/index"
	"github.com/starford/doxnav/internal/linkcheck"
	"github.com/starford/doxnav/internal/mcpserver"
	"github.com/starford/doxnav/internal/render"
)

// ErrCheckFailed is returned by RunCheck when the navigation has problems.
var ErrCheckFailed = errors.New("navigation check failed")

// RunMCP serves the navigation tools over stdio. Logs go to the configured
// log output, which must not be stdout.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := app.newLogger()

	site, err := app.openSite(ctx, logger)
	if err != nil {
		return err
	}
	db, err := app.openIndex(ctx, site, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if app.config.Docs.Watch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := index.Watch(watchCtx, db, site, logger, nil); err != nil {
				logger.Error("watcher failed", slog.String("error", err.Error()))
			}
		}()
	}

	logger.Info("MCP server starting", slog.String("docs_path", site.Store().Root()))
	return mcpserver.New(site, db).ServeStdio()
}

// RunTree prints the navigation tree down to depth (0 for everything).
func RunTree(ctx context.Context, depth int, targets bool, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := app.newLogger()

	site, err := app.openSite(ctx, logger)
	if err != nil {
		return err
	}
	snap := site.Current()
	header := fmt.Sprintf("%s  %d index entries", site.TreeFile(), snap.Nav.Len())
	return render.Tree(ctx, app.output, snap.Nav, render.TreeOptions{
		MaxDepth: depth,
		Targets:  targets,
		Header:   header,
	})
}

// RunCheck verifies the tree against its flat index and the pages on disk
// and prints a report. It returns ErrCheckFailed when anything is wrong.
func RunCheck(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := app.newLogger()

	site, err := app.openSite(ctx, logger)
	if err != nil {
		return err
	}
	rep, err := linkcheck.Check(ctx, site.Index(), site.Store())
	if err != nil {
		return err
	}
	render.Report(app.output, rep)
	if !rep.OK() {
		return ErrCheckFailed
	}
	return nil
}
