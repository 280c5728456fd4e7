package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/nplqhub/revise/internal/entity"
)

func TestMemoryStoreMergeUpdatesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Set(ctx, "users/alice/progress/quizzes", Document{
		"completed": []string{"q1"},
		"streak":    1,
	}, false)
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := store.Set(ctx, "users/alice/progress/quizzes", Document{"streak": 2}, true); err != nil {
		t.Fatalf("merge set: %v", err)
	}

	doc, ok, err := store.Get(ctx, "users/alice/progress/quizzes")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got := doc["streak"].(float64); got != 2 {
		t.Errorf("streak = %v, want 2", got)
	}
	completed, ok := doc["completed"].([]any)
	if !ok || len(completed) != 1 || completed[0] != "q1" {
		t.Errorf("completed = %v, want [q1]", doc["completed"])
	}
}

func TestMemoryStoreReplaceDropsOtherFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "users/alice/progress/totals", Document{"secondsSpent": 5, "extra": true}, false); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "users/alice/progress/totals", Document{"secondsSpent": 6}, false); err != nil {
		t.Fatalf("replace: %v", err)
	}
	doc, _, err := store.Get(ctx, "users/alice/progress/totals")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := doc["extra"]; ok {
		t.Errorf("replace kept stale field: %v", doc)
	}
}

func TestMemoryStoreGetAbsent(t *testing.T) {
	doc, ok, err := NewMemoryStore().Get(context.Background(), "users/nobody")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || doc != nil {
		t.Errorf("absent document reported present: %v", doc)
	}
}

func TestMemoryStoreListScopesToCollection(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.Set(ctx, "flashcards/fc1", Document{"section": "Section 1"}, false)
	_ = store.Set(ctx, "flashcards/fc2", Document{"section": "Section 2"}, false)
	_ = store.Set(ctx, "quizzes/q1", Document{"section": "Section 1"}, false)
	_ = store.Set(ctx, "users/alice/progress/quizzes", Document{"streak": 0}, false)

	entries, err := store.List(ctx, "flashcards")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(entries), entries)
	}
	if entries[0].ID != "fc1" || entries[1].ID != "fc2" {
		t.Errorf("unexpected ids: %v, %v", entries[0].ID, entries[1].ID)
	}

	nested, err := store.List(ctx, "users/alice/progress")
	if err != nil {
		t.Fatalf("list nested: %v", err)
	}
	if len(nested) != 1 || nested[0].ID != "quizzes" {
		t.Errorf("nested list = %v", nested)
	}
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Set(ctx, "teams/t1", Document{"name": "Red"}, false)

	if err := store.Delete(ctx, "teams/t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "teams/t1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "teams/t1"); ok {
		t.Error("document still present after delete")
	}
}

func TestMemoryStoreRejectsOddPaths(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Set(ctx, "users", Document{}, false); err == nil {
		t.Error("collection path accepted as document path")
	}
	if err := store.Set(ctx, "users//progress", Document{}, false); err == nil {
		t.Error("empty segment accepted")
	}
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore()
	_, _, err := store.Get(ctx, "users/alice")
	if !errors.Is(err, entity.ErrStoreUnavailable) {
		t.Errorf("got %v, want ErrStoreUnavailable", err)
	}
}
