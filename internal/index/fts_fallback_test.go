//go:build !sqlite_fts5

package index

import "testing"

func TestSearch_LikeWildcardsEscaped(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceEntries("rev-1", sampleEntries(), sampleFragments())

	results, err := db.Search("100%", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].NodeID != "0.3" {
		t.Errorf("results = %+v, want only 0.3", results)
	}

	// "Class List" would match an unescaped "_L".
	results, _ = db.Search("_L", 10)
	if len(results) != 1 || results[0].NodeID != "0.3" {
		t.Errorf("underscore should match literally, got %+v", results)
	}
}

func TestSearch_MatchesTarget(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceEntries("rev-1", sampleEntries(), sampleFragments())

	results, _ := db.Search("annotated", 10)
	if len(results) != 1 || results[0].Title != "Class List" {
		t.Errorf("results = %+v", results)
	}
}

func TestSearch_Limit(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceEntries("rev-1", sampleEntries(), sampleFragments())

	results, _ := db.Search("index.html", 2)
	if len(results) != 2 {
		t.Errorf("len = %d, want 2", len(results))
	}
}
