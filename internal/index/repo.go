package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/starford/doxnav/internal/apperr"
	"github.com/starford/doxnav/internal/models"
)

// SearchResult represents one search hit.
type SearchResult struct {
	NodeID  string `json:"node_id"`
	Title   string `json:"title"`
	Target  string `json:"target,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

const metaRevision = "revision"

// ReplaceEntries swaps the whole entry set, the FTS rows and the recorded
// fragment checksums inside one transaction.
func (db *DB) ReplaceEntries(revision string, entries []models.Entry, frags []models.FragmentMetadata) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("index: clear entries: %w", err)
	}
	if err := ftsClear(tx); err != nil {
		return err
	}

	if len(entries) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO entries (seq, node_id, parent_id, title, target, depth)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare entry insert: %w", err)
		}
		defer stmt.Close()
		for _, e := range entries {
			if _, err := stmt.Exec(e.Seq, e.NodeID, e.ParentID, e.Title, e.Target, e.Depth); err != nil {
				return fmt.Errorf("index: insert entry %s: %w", e.NodeID, err)
			}
			if err := ftsInsert(tx, e); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Exec(`DELETE FROM fragments`); err != nil {
		return fmt.Errorf("index: clear fragments: %w", err)
	}
	for _, f := range frags {
		if _, err := tx.Exec(`INSERT INTO fragments (path, checksum, updated_at) VALUES (?, ?, ?)`,
			f.Path, f.Checksum, f.UpdatedAt); err != nil {
			return fmt.Errorf("index: insert fragment %s: %w", f.Path, err)
		}
	}

	if err := setMeta(tx, metaRevision, revision); err != nil {
		return err
	}
	return tx.Commit()
}

// TouchRevision records revision without touching the entries.
func (db *DB) TouchRevision(revision string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := setMeta(tx, metaRevision, revision); err != nil {
		return err
	}
	return tx.Commit()
}

func setMeta(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("index: set meta %s: %w", key, err)
	}
	return nil
}

// Revision returns the snapshot revision the entries were last synced for,
// or empty string if never synced.
func (db *DB) Revision() (string, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaRevision).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: revision: %w", err)
	}
	return v, nil
}

// GetEntry returns the entry for a node ID.
func (db *DB) GetEntry(nodeID string) (*models.Entry, error) {
	var e models.Entry
	err := db.conn.QueryRow(`
		SELECT seq, node_id, parent_id, title, target, depth
		FROM entries WHERE node_id = ?
	`, nodeID).Scan(&e.Seq, &e.NodeID, &e.ParentID, &e.Title, &e.Target, &e.Depth)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index: entry %s: %w", nodeID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("index: get entry: %w", err)
	}
	return &e, nil
}

// EntriesByTarget returns every entry pointing at target. A target without
// an anchor also matches entries that point into that page.
func (db *DB) EntriesByTarget(target string) ([]models.Entry, error) {
	query := `SELECT seq, node_id, parent_id, title, target, depth FROM entries WHERE target = ?`
	args := []any{target}
	if !strings.Contains(target, "#") {
		query += ` OR target LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(target)+"#%")
	}
	query += ` ORDER BY seq`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: entries by target: %w", err)
	}
	defer rows.Close()

	var out []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.Seq, &e.NodeID, &e.ParentID, &e.Title, &e.Target, &e.Depth); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EntryCount returns the number of indexed entries.
func (db *DB) EntryCount() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: entry count: %w", err)
	}
	return n, nil
}

// FragmentChecksums returns path → checksum for every recorded fragment.
func (db *DB) FragmentChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM fragments`)
	if err != nil {
		return nil, fmt.Errorf("index: fragment checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
