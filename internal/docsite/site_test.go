package docsite

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/doxnav/internal/apperr"
	"github.com/starford/doxnav/internal/navtree"
	"github.com/starford/doxnav/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestOpen_WiMOD(t *testing.T) {
	_, store := testutil.TestDocs(t)
	site, err := Open(context.Background(), store, Options{}, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	snap := site.Current()
	if snap.Revision == "" {
		t.Error("revision should be set")
	}
	if snap.SyncOnMsg != "click to disable panel synchronisation" {
		t.Errorf("SyncOnMsg = %q", snap.SyncOnMsg)
	}

	nav := site.Index()
	if nav.Root().Title != "Demo HCI Implementation for WiMOD-LR Devices" {
		t.Errorf("root = %q", nav.Root().Title)
	}
	if nav.Len() != 5 {
		t.Fatalf("entries = %d, want 5", nav.Len())
	}
	first, _ := nav.Lookup(0)
	last, _ := nav.Lookup(4)
	if first != "_c_r_c16_8cpp.html" || last != "globals_m.html" {
		t.Errorf("first/last = %q/%q", first, last)
	}
	if _, err := nav.Lookup(5); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("Lookup(5) err = %v", err)
	}
}

func TestFragmentResolution(t *testing.T) {
	_, store := testutil.TestDocs(t)
	site, err := Open(context.Background(), store, Options{}, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	nav := site.Index()

	// Classes > Class List > WiMODLoRaWAN > SendUData, two fragments deep.
	n, err := nav.Node(ctx, "0.1.0.4.2")
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if n.Title != "SendUData" {
		t.Errorf("title = %q, want SendUData", n.Title)
	}
}

func TestFragmentMissing(t *testing.T) {
	dir, store := testutil.TestDocs(t)
	if err := os.Remove(filepath.Join(dir, "hierarchy.js")); err != nil {
		t.Fatal(err)
	}
	site, err := Open(context.Background(), store, Options{}, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	n, err := site.Index().Node(ctx, "0.1.1")
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if _, err := site.Index().Resolve(ctx, n); !errors.Is(err, apperr.ErrResourceUnavailable) {
		t.Errorf("err = %v, want ErrResourceUnavailable", err)
	}
}

func TestFragmentMalformed(t *testing.T) {
	dir, store := testutil.TestDocs(t)
	testutil.WriteFiles(t, dir, map[string]string{
		"hierarchy.js": `var hierarchy = [ [ "only title" ] ];`,
		"files.js":     `var something_else = [];`,
	})
	site, err := Open(context.Background(), store, Options{}, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	for _, id := range []string{"0.1.1", "0.2.0"} {
		n, err := site.Index().Node(ctx, id)
		if err != nil {
			t.Fatalf("Node(%s): %v", id, err)
		}
		if _, err := site.Index().Resolve(ctx, n); !errors.Is(err, apperr.ErrResourceUnavailable) {
			t.Errorf("%s: err = %v, want ErrResourceUnavailable", id, err)
		}
	}
}

func TestLoader_RejectsBadReference(t *testing.T) {
	_, store := testutil.TestDocs(t)
	l := &fragmentLoader{store: store, timeout: 0}
	for _, ref := range []string{"../secret", "a/b", "", "1abc"} {
		if _, err := l.Load(context.Background(), ref); err == nil {
			t.Errorf("ref %q should be rejected", ref)
		}
	}
}

func TestSmallSite_Consistent(t *testing.T) {
	_, store := testutil.TestSmallDocs(t)
	site, err := Open(context.Background(), store, Options{}, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := site.Index().Verify(context.Background()); err != nil {
		t.Errorf("Verify: %v", err)
	}
	if site.Index().Len() != testutil.SmallCount {
		t.Errorf("entries = %d, want %d", site.Index().Len(), testutil.SmallCount)
	}
}

func TestWiMOD_NotConsistent(t *testing.T) {
	_, store := testutil.TestDocs(t)
	site, err := Open(context.Background(), store, Options{}, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := site.Index().Verify(context.Background()); !errors.Is(err, apperr.ErrInconsistent) {
		t.Errorf("err = %v, want ErrInconsistent", err)
	}
}

func TestOpen_MissingTree(t *testing.T) {
	_, store := testutil.TestDocs(t)
	if _, err := Open(context.Background(), store, Options{TreeFile: "nope.js"}, quietLogger()); err == nil {
		t.Error("expected error for missing tree file")
	}
}

func TestOpen_MissingTreeVar(t *testing.T) {
	dir, store := testutil.TestDocs(t)
	testutil.WriteFiles(t, dir, map[string]string{"navtreedata.js": `var NAVTREEINDEX = [];`})
	if _, err := Open(context.Background(), store, Options{}, quietLogger()); err == nil {
		t.Error("expected error when NAVTREE is undefined")
	}
}

func TestOpen_MalformedTree(t *testing.T) {
	dir, store := testutil.TestDocs(t)
	testutil.WriteFiles(t, dir, map[string]string{"navtreedata.js": `var NAVTREE = [ [ 1, 2, 3 ] ];`})
	_, err := Open(context.Background(), store, Options{}, quietLogger())
	if !errors.Is(err, navtree.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestOpen_NoFlatIndex(t *testing.T) {
	dir, store := testutil.TestDocs(t)
	testutil.WriteFiles(t, dir, map[string]string{"navtreedata.js": `var NAVTREE = [ [ "Only", "index.html", null ] ];`})
	site, err := Open(context.Background(), store, Options{}, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if site.Index().Len() != 0 {
		t.Errorf("entries = %d, want 0", site.Index().Len())
	}
}

func TestReload_SwapsSnapshot(t *testing.T) {
	dir, store := testutil.TestSmallDocs(t)
	site, err := Open(context.Background(), store, Options{}, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	before := site.Current()

	testutil.WriteFiles(t, dir, map[string]string{"navtreedata.js": `var NAVTREE = [ [ "Renamed", "index.html", null ] ];
var NAVTREEINDEX = [ "index.html" ];`})
	after, err := site.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if after.Revision == before.Revision {
		t.Error("revision should change on reload")
	}
	if site.Index().Root().Title != "Renamed" {
		t.Errorf("root = %q, want Renamed", site.Index().Root().Title)
	}
	// The old snapshot is untouched.
	if before.Nav.Root().Title != "Demo HCI Implementation for WiMOD-LR Devices" {
		t.Error("previous snapshot must stay immutable")
	}
}

func TestReload_FailureKeepsPrevious(t *testing.T) {
	dir, store := testutil.TestSmallDocs(t)
	site, err := Open(context.Background(), store, Options{}, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	before := site.Current()

	testutil.WriteFiles(t, dir, map[string]string{"navtreedata.js": `var NAVTREE = [ broken`})
	if _, err := site.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	if site.Current() != before {
		t.Error("failed reload must keep the previous snapshot")
	}
}
