//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"

	"github.com/starford/doxnav/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE on the entries table.
	return nil
}

func ftsInsert(_ *sql.Tx, _ models.Entry) error { return nil }

func ftsClear(_ *sql.Tx) error { return nil }

// Search performs a LIKE-based title/target search (fallback when FTS5 is not
// compiled in). Results come back in tree order.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + escapeLike(query) + "%"
	rows, err := db.conn.Query(`
		SELECT node_id, title, target
		FROM entries
		WHERE title LIKE ? ESCAPE '\' OR target LIKE ? ESCAPE '\'
		ORDER BY seq
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.NodeID, &r.Title, &r.Target); err != nil {
			return nil, err
		}
		r.Snippet = r.Title
		out = append(out, r)
	}
	return out, rows.Err()
}
