package navtree

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/starford/doxnav/internal/apperr"
)

func wimodIndex(t *testing.T) (*Index, *fragmentSet) {
	t.Helper()
	frags := newFragmentSet()
	return New(mustDecode(wimodTree()), wimodFlat(), frags), frags
}

func TestRoot_Title(t *testing.T) {
	x, _ := wimodIndex(t)
	root := x.Root()
	if root == nil {
		t.Fatal("root is nil")
	}
	if root.Title != "Demo HCI Implementation for WiMOD-LR Devices" {
		t.Errorf("root title = %q", root.Title)
	}
	if root.ID != "0" {
		t.Errorf("root id = %q, want 0", root.ID)
	}
}

func TestRoot_EmptyTree(t *testing.T) {
	x := New(nil, nil, nil)
	if x.Root() != nil {
		t.Error("empty tree should have nil root")
	}
	if x.Len() != 0 {
		t.Error("empty index should have zero entries")
	}
}

func TestSectionOrderPreserved(t *testing.T) {
	x, _ := wimodIndex(t)
	kids, err := x.Resolve(context.Background(), x.Root())
	if err != nil {
		t.Fatalf("Resolve root: %v", err)
	}
	sections, err := x.Resolve(context.Background(), kids[0])
	if err != nil {
		t.Fatalf("Resolve intro: %v", err)
	}

	want := []string{
		"About", "Intended Hardware Setup", "HCI Communication", "Package",
		"Installation", "Usage", "Note", "EULA - SOFTWARE LICENSE POLICY",
	}
	if len(sections) != len(want) {
		t.Fatalf("len = %d, want %d", len(sections), len(want))
	}
	for i, n := range sections {
		if n.Title != want[i] {
			t.Errorf("section[%d] = %q, want %q", i, n.Title, want[i])
		}
	}
}

func TestLookup_Bounds(t *testing.T) {
	x, _ := wimodIndex(t)

	first, err := x.Lookup(0)
	if err != nil || first != "_c_r_c16_8cpp.html" {
		t.Errorf("Lookup(0) = %q, %v", first, err)
	}
	last, err := x.Lookup(4)
	if err != nil || last != "globals_m.html" {
		t.Errorf("Lookup(4) = %q, %v", last, err)
	}
	for i := 0; i < x.Len(); i++ {
		if ref, err := x.Lookup(i); err != nil || ref == "" {
			t.Errorf("Lookup(%d) = %q, %v", i, ref, err)
		}
	}

	for _, seq := range []int{5, -1, 100} {
		if _, err := x.Lookup(seq); !errors.Is(err, apperr.ErrOutOfRange) {
			t.Errorf("Lookup(%d) err = %v, want ErrOutOfRange", seq, err)
		}
	}
}

func TestEntries_IsCopy(t *testing.T) {
	flat := wimodFlat()
	x := New(nil, flat, nil)
	flat[0] = "mutated"
	got := x.Entries()
	got[1] = "mutated too"
	if ref, _ := x.Lookup(0); ref != "_c_r_c16_8cpp.html" {
		t.Error("index must not alias the caller's slice")
	}
	if ref, _ := x.Lookup(1); ref == "mutated too" {
		t.Error("Entries must return a copy")
	}
}

func TestResolve_InlineNoFetch(t *testing.T) {
	x, frags := wimodIndex(t)
	kids, err := x.Resolve(context.Background(), x.Root())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(kids) != 3 {
		t.Errorf("len = %d, want 3", len(kids))
	}
	if frags.fetches.Load() != 0 {
		t.Error("inline children must not trigger a fetch")
	}
}

func TestResolve_CacheOnce(t *testing.T) {
	x, frags := wimodIndex(t)
	ctx := context.Background()

	classList, err := x.Node(ctx, "0.1.0")
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if !classList.Children.IsDeferred() {
		t.Fatal("Class List should be deferred")
	}
	if x.IsResolved(classList) {
		t.Error("should not be resolved before first call")
	}

	first, err := x.Resolve(ctx, classList)
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := x.Resolve(ctx, classList)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if frags.fetches.Load() != 1 {
		t.Errorf("fetches = %d, want 1", frags.fetches.Load())
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("len = %d/%d, want 2", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("child %d differs between calls", i)
		}
	}
	if !x.IsResolved(classList) {
		t.Error("should be resolved after first call")
	}
	if first[0].ID != "0.1.0.0" || first[1].ID != "0.1.0.1" {
		t.Errorf("resolved ids = %q, %q", first[0].ID, first[1].ID)
	}
}

func TestResolve_ConcurrentCollapses(t *testing.T) {
	frags := newFragmentSet()
	frags.gate = make(chan struct{})
	x := New(mustDecode(wimodTree()), wimodFlat(), frags)
	ctx := context.Background()

	// Reach the deferred node without resolving anything deferred.
	classes := x.Root().Children.Nodes()[1]
	classList := classes.Children.Nodes()[0]

	const callers = 16
	var wg sync.WaitGroup
	results := make([][]*Node, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = x.Resolve(ctx, classList)
		}(i)
	}
	close(frags.gate)
	wg.Wait()

	if n := frags.fetches.Load(); n != 1 {
		t.Errorf("fetches = %d, want 1", n)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i][0] != results[0][0] {
			t.Errorf("caller %d got a different materialization", i)
		}
	}
}

func TestResolve_FailureIsResourceUnavailable(t *testing.T) {
	x, frags := wimodIndex(t)
	ctx := context.Background()
	frags.drop("hierarchy")

	hierarchy, err := x.Node(ctx, "0.1.1")
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	_, err = x.Resolve(ctx, hierarchy)
	if !errors.Is(err, apperr.ErrResourceUnavailable) {
		t.Fatalf("err = %v, want ErrResourceUnavailable", err)
	}
	if !strings.Contains(err.Error(), "hierarchy") {
		t.Errorf("error should name the fragment: %v", err)
	}

	// Failures are not cached; once the fragment appears it resolves.
	frags.set("hierarchy", []any{t3("X", "x.html", nil)})
	kids, err := x.Resolve(ctx, hierarchy)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(kids) != 1 || kids[0].Title != "X" {
		t.Errorf("kids = %+v", kids)
	}
}

func TestResolve_NoLoader(t *testing.T) {
	x := New(mustDecode(wimodTree()), nil, nil)
	classList := x.Root().Children.Nodes()[1].Children.Nodes()[0]
	if _, err := x.Resolve(context.Background(), classList); !errors.Is(err, apperr.ErrResourceUnavailable) {
		t.Errorf("err = %v, want ErrResourceUnavailable", err)
	}
}

func TestNode_ThroughNestedFragments(t *testing.T) {
	x, frags := wimodIndex(t)
	n, err := x.Node(context.Background(), "0.1.0.1.0")
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if n.Title != "Port" {
		t.Errorf("title = %q, want Port", n.Title)
	}
	if frags.fetches.Load() != 2 {
		t.Errorf("fetches = %d, want 2", frags.fetches.Load())
	}
}

func TestNode_Unknown(t *testing.T) {
	x, _ := wimodIndex(t)
	for _, id := range []string{"", "9", "0.99", "a.b", "0.-1"} {
		if _, err := x.Node(context.Background(), id); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Node(%q) err = %v, want ErrNotFound", id, err)
		}
	}
}

func TestPath_Breadcrumb(t *testing.T) {
	x, _ := wimodIndex(t)
	path, err := x.Path(context.Background(), "0.0.2.0")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	var titles []string
	for _, n := range path {
		titles = append(titles, n.Title)
	}
	got := strings.Join(titles, " > ")
	want := "Demo HCI Implementation for WiMOD-LR Devices > WiMOD HCI Driver Implementation for the Arduino™ / Genuino Platform > HCI Communication > Message Flow"
	if got != want {
		t.Errorf("path = %q", got)
	}
}

func TestResolve_CancelledCallerDoesNotFailOthers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	loader := LoaderFunc(func(ctx context.Context, ref string) ([]*Node, error) {
		once.Do(func() { close(started) })
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return mustDecode([]any{t3("Loaded", "loaded.html", nil)}), nil
	})
	x := New(mustDecode([]any{t3("Root", "index.html", "frag")}), nil, loader)
	root := x.Root()

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := x.Resolve(firstCtx, root)
		firstErr <- err
	}()
	<-started

	type result struct {
		kids []*Node
		err  error
	}
	second := make(chan result, 1)
	go func() {
		kids, err := x.Resolve(context.Background(), root)
		second <- result{kids, err}
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller err = %v, want context.Canceled", err)
	}

	close(release)
	res := <-second
	if res.err != nil {
		t.Fatalf("caller with live context failed: %v", res.err)
	}
	if len(res.kids) != 1 || res.kids[0].Title != "Loaded" {
		t.Errorf("kids = %+v", res.kids)
	}
	if !x.IsResolved(root) {
		t.Error("fragment should be cached after the shared load")
	}
}
