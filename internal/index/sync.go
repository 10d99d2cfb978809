package index

import (
	"context"
	"log/slog"

	"github.com/starford/doxnav/internal/checksum"
	"github.com/starford/doxnav/internal/docsite"
	"github.com/starford/doxnav/internal/models"
	"github.com/starford/doxnav/internal/navtree"
)

// Sync brings the entries table up to date with the site's current snapshot:
//   - when no fragment script changed since the last sync only the revision is recorded
//   - otherwise the fully expanded tree is flattened and replaces all entries
//
// Subtrees whose fragment cannot be loaded are logged and left out.
func Sync(ctx context.Context, db *DB, site *docsite.Site, logger *slog.Logger) error {
	metas, err := site.Store().List("", ".js")
	if err != nil {
		return err
	}
	stored, err := db.FragmentChecksums()
	if err != nil {
		return err
	}

	snap := site.Current()
	if sameFragments(metas, stored) {
		logger.Debug("sync: fragments unchanged", slog.String("revision", snap.Revision))
		return db.TouchRevision(snap.Revision)
	}

	entries, err := flatten(ctx, snap.Nav, logger)
	if err != nil {
		return err
	}
	if err := db.ReplaceEntries(snap.Revision, entries, metas); err != nil {
		return err
	}
	logger.Info("sync: entries rebuilt",
		slog.String("revision", snap.Revision),
		slog.Int("entries", len(entries)),
		slog.Int("fragments", len(metas)))
	return nil
}

// flatten lists every available node in depth-first order.
func flatten(ctx context.Context, nav *navtree.Index, logger *slog.Logger) ([]models.Entry, error) {
	var out []models.Entry
	err := nav.WalkAvailable(ctx, func(n *navtree.Node, depth int) error {
		out = append(out, models.Entry{
			Seq:      len(out),
			NodeID:   n.ID,
			ParentID: navtree.ParentID(n.ID),
			Title:    n.Title,
			Target:   n.Target,
			Depth:    depth,
		})
		return nil
	}, func(n *navtree.Node, err error) {
		logger.Warn("sync: fragment unavailable",
			slog.String("node", n.ID),
			slog.String("ref", n.Children.Ref()),
			slog.String("error", err.Error()))
	})
	return out, err
}

// sameFragments compares the scripts on disk with the recorded set by
// digest. An empty set never matches so a fresh database always builds.
func sameFragments(metas []models.FragmentMetadata, stored map[string]string) bool {
	if len(metas) == 0 || len(metas) != len(stored) {
		return false
	}
	current := make(map[string]string, len(metas))
	for _, m := range metas {
		current[m.Path] = m.Checksum
	}
	return checksum.Combine(current) == checksum.Combine(stored)
}
