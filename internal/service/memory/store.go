package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/pkg/log"
)

// Store owns the memory collection. The UI-facing surface hands out
// copies only; all mutation goes through here, serialized with a mutex
// so timer callbacks and transports can call in concurrently.
type Store struct {
	repo core.MemoriesRepository
	mu   sync.Mutex
	now  func() time.Time
}

func NewStore(repo core.MemoriesRepository) *Store {
	return &Store{
		repo: repo,
		now:  time.Now,
	}
}

// Save creates a memory from the trimmed content and prepends it to the
// collection (newest-first). core.ErrStorageFull is the one propagated
// error; the caller decides the messaging.
func (s *Store) Save(ctx context.Context, content string) (core.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mem := core.Memory{
		ID:        uuid.NewString(),
		Content:   strings.TrimSpace(content),
		Timestamp: s.now().UnixMilli(),
	}

	updated := append([]core.Memory{mem}, s.repo.List(ctx)...)
	if err := s.repo.Put(ctx, updated); err != nil {
		return core.Memory{}, err
	}

	log.FromCtx(ctx).Debug().Str("id", mem.ID).Msg("memory saved")
	return mem, nil
}

// List returns the full collection, newest-first.
func (s *Store) List(ctx context.Context) []core.Memory {
	return s.repo.List(ctx)
}

// Delete removes the matching record if present and returns the
// resulting collection. Deleting an absent id leaves it unchanged.
func (s *Store) Delete(ctx context.Context, id string) ([]core.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.repo.List(ctx)
	updated := make([]core.Memory, 0, len(existing))
	for _, mem := range existing {
		if mem.ID != id {
			updated = append(updated, mem)
		}
	}

	if err := s.repo.Put(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Clear removes the entire collection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Clear(ctx)
}

// ImportAll unconditionally replaces the collection with the given
// sequence. No validation, no merge: restore-from-backup is a
// last-write-wins full replacement.
func (s *Store) ImportAll(ctx context.Context, memories []core.Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Put(ctx, memories)
}

// Usage computes the serialized byte size of the current collection
// against the fixed quota. Recomputed on demand, never cached.
func (s *Store) Usage(ctx context.Context) core.StorageUsage {
	data, err := json.Marshal(s.repo.List(ctx))
	if err != nil {
		data = nil
	}
	size := int64(len(data))

	return core.StorageUsage{
		UsedBytes: size,
		Formatted: fmt.Sprintf("%.2f MB", float64(size)/(1024*1024)),
		Percent:   math.Min(float64(size)/float64(core.StorageQuotaBytes)*100, 100),
		IsFull:    float64(size) > float64(core.StorageQuotaBytes)*core.StorageWarnRatio,
	}
}
