package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/louisbranch/sagashuffle/internal/core/shuffle"
	"github.com/louisbranch/sagashuffle/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spoilers.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil && err != sql.ErrConnDone {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func sampleRun(t *testing.T) storage.RunRecord {
	t.Helper()
	monsters, err := shuffle.FromPairs([]int{4, 0, 2}, map[int]int{4: 2, 0: 4, 2: 0})
	if err != nil {
		t.Fatalf("FromPairs: %v", err)
	}
	return storage.RunRecord{
		Seed:      42,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Passes: []storage.PassRecord{
			{Name: "monsters", State: "applied", Detail: "3 monsters"},
			{Name: "chests", State: "failed", Error: "map data missing"},
		},
		Mappings: map[string]shuffle.Mapping{"monsters": monsters},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
}

func TestPutRunThenGetRun(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	want := sampleRun(t)

	id, err := store.PutRun(ctx, want)
	if err != nil {
		t.Fatalf("put run: %v", err)
	}
	got, err := store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.ID != id || got.Seed != 42 {
		t.Fatalf("run = %+v", got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if !reflect.DeepEqual(got.Passes, want.Passes) {
		t.Fatalf("passes = %+v, want %+v", got.Passes, want.Passes)
	}
	if !reflect.DeepEqual(got.Spaces, []string{"monsters"}) {
		t.Fatalf("spaces = %v", got.Spaces)
	}
}

func TestGetMappingKeepsDrawOrder(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	run := sampleRun(t)

	id, err := store.PutRun(ctx, run)
	if err != nil {
		t.Fatalf("put run: %v", err)
	}
	m, err := store.GetMapping(ctx, id, "monsters")
	if err != nil {
		t.Fatalf("get mapping: %v", err)
	}
	if !reflect.DeepEqual(m.Keys(), []int{4, 0, 2}) {
		t.Fatalf("keys = %v", m.Keys())
	}
	if !reflect.DeepEqual(m.Pairs(), run.Mappings["monsters"].Pairs()) {
		t.Fatalf("pairs = %v", m.Pairs())
	}
}

func TestGetMissing(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	if _, err := store.GetRun(ctx, 99); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get run err = %v", err)
	}
	id, err := store.PutRun(ctx, sampleRun(t))
	if err != nil {
		t.Fatalf("put run: %v", err)
	}
	if _, err := store.GetMapping(ctx, id, "arts"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get mapping err = %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	for _, seed := range []int32{1, 2, 3} {
		run := sampleRun(t)
		run.Seed = seed
		if _, err := store.PutRun(ctx, run); err != nil {
			t.Fatalf("put run: %v", err)
		}
	}
	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].Seed != 3 || runs[1].Seed != 2 {
		t.Fatalf("runs = %+v", runs)
	}
	if len(runs[0].Passes) != 2 {
		t.Fatalf("passes = %+v", runs[0].Passes)
	}
	if _, err := store.ListRuns(ctx, 0); err == nil {
		t.Fatal("expected limit error")
	}
}

func TestQueryRunsPagesAndFilters(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	for _, seed := range []int32{7, 8, 7, 7, 9} {
		run := sampleRun(t)
		run.Seed = seed
		if _, err := store.PutRun(ctx, run); err != nil {
			t.Fatalf("put run: %v", err)
		}
	}

	seed := int32(7)
	first, err := store.QueryRuns(ctx, storage.RunQuery{PageSize: 2, Seed: &seed})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Runs) != 2 || first.Runs[0].ID != 4 || first.Runs[1].ID != 3 {
		t.Fatalf("first page = %+v", first.Runs)
	}
	if first.NextPageToken == "" {
		t.Fatal("expected a next page token")
	}

	second, err := store.QueryRuns(ctx, storage.RunQuery{PageSize: 2, Seed: &seed, PageToken: first.NextPageToken})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Runs) != 1 || second.Runs[0].ID != 1 {
		t.Fatalf("second page = %+v", second.Runs)
	}
	if second.NextPageToken != "" {
		t.Fatalf("last page token = %q", second.NextPageToken)
	}

	if _, err := store.QueryRuns(ctx, storage.RunQuery{PageSize: 2, PageToken: first.NextPageToken}); err == nil {
		t.Fatal("expected error for token reused with another filter")
	}
	if _, err := store.QueryRuns(ctx, storage.RunQuery{PageSize: 2, PageToken: "bogus"}); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestPutRunValidation(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	run := sampleRun(t)
	run.Passes = append(run.Passes, storage.PassRecord{Name: " "})
	if _, err := store.PutRun(ctx, run); err == nil {
		t.Fatal("expected error for blank pass name")
	}
	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("failed put must not leave a run, got %d", len(runs))
	}
}

func TestPutRunDefaultsTime(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	run := sampleRun(t)
	run.CreatedAt = time.Time{}

	id, err := store.PutRun(ctx, run)
	if err != nil {
		t.Fatalf("put run: %v", err)
	}
	got, err := store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestCancelledContext(t *testing.T) {
	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.PutRun(ctx, sampleRun(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
