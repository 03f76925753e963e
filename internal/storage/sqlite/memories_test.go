package sqlite

import (
	"context"
	"testing"

	"github.com/sandevgo/remindme/internal/core"
)

func TestMemoriesRepo_EmptyStore(t *testing.T) {
	repo := NewMemoriesRepo(NewKV(newTestDB(t), 0))
	ctx := context.Background()

	memories := repo.List(ctx)
	if memories == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(memories) != 0 {
		t.Errorf("expected no memories, got %d", len(memories))
	}
}

func TestMemoriesRepo_PutList(t *testing.T) {
	repo := NewMemoriesRepo(NewKV(newTestDB(t), 0))
	ctx := context.Background()

	want := []core.Memory{
		{ID: "b", Content: "second", Timestamp: 2000},
		{ID: "a", Content: "first", Timestamp: 1000},
	}
	if err := repo.Put(ctx, want); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got := repo.List(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 memories, got %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("memory %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMemoriesRepo_CorruptionDegradesToEmpty(t *testing.T) {
	kv := NewKV(newTestDB(t), 0)
	repo := NewMemoriesRepo(kv)
	ctx := context.Background()

	if err := kv.Put(ctx, core.MemoriesKey, []byte("{not json][")); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	memories := repo.List(ctx)
	if len(memories) != 0 {
		t.Errorf("corrupted collection should degrade to empty, got %d entries", len(memories))
	}
}

func TestMemoriesRepo_Clear(t *testing.T) {
	repo := NewMemoriesRepo(NewKV(newTestDB(t), 0))
	ctx := context.Background()

	if err := repo.Put(ctx, []core.Memory{{ID: "a", Content: "x", Timestamp: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if len(repo.List(ctx)) != 0 {
		t.Error("expected cleared collection")
	}
}
