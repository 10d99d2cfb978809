package index

import "github.com/starford/doxnav/internal/models"

// EntryIndex defines the persisted navigation operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type EntryIndex interface {
	ReplaceEntries(revision string, entries []models.Entry, frags []models.FragmentMetadata) error
	TouchRevision(revision string) error
	GetEntry(nodeID string) (*models.Entry, error)
	EntriesByTarget(target string) ([]models.Entry, error)
	EntryCount() (int, error)
	Search(query string, limit int) ([]SearchResult, error)
	FragmentChecksums() (map[string]string, error)
	Revision() (string, error)
	Close() error
}

// Verify *DB satisfies EntryIndex at compile time.
var _ EntryIndex = (*DB)(nil)
