package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/fateforge/internal/forge/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "forge.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestRecordAndListAttempts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []storage.AttemptRecord{
		{ID: "att-1", Operation: "skeleton", Attempt: 1, GatePassed: false, Problems: 2, Latency: 120 * time.Millisecond, CreatedAt: base},
		{ID: "att-2", Operation: "skeleton", Attempt: 2, GatePassed: true, Latency: 90 * time.Millisecond, CreatedAt: base.Add(time.Second)},
		{ID: "att-3", Operation: "remaining", Mode: "stunts", Attempt: 1, GatePassed: true, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, rec := range records {
		if err := store.RecordAttempt(ctx, rec); err != nil {
			t.Fatalf("record attempt %s: %v", rec.ID, err)
		}
	}

	got, err := store.RecentAttempts(ctx, 10)
	if err != nil {
		t.Fatalf("recent attempts: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].ID != "att-3" || got[2].ID != "att-1" {
		t.Fatalf("unexpected order: %v, %v, %v", got[0].ID, got[1].ID, got[2].ID)
	}

	first := got[2]
	if first.Operation != "skeleton" || first.Problems != 2 || first.GatePassed {
		t.Fatalf("unexpected record: %+v", first)
	}
	if first.Latency != 120*time.Millisecond {
		t.Fatalf("latency = %v", first.Latency)
	}
	if !first.CreatedAt.Equal(base) {
		t.Fatalf("created at = %v, want %v", first.CreatedAt, base)
	}
}

func TestRecentAttemptsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := storage.AttemptRecord{
			ID:        string(rune('a' + i)),
			Operation: "hints",
			Attempt:   1,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.RecordAttempt(ctx, rec); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	got, err := store.RecentAttempts(ctx, 2)
	if err != nil {
		t.Fatalf("recent attempts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
}
