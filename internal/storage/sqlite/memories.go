package sqlite

import (
	"context"
	"encoding/json"

	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/pkg/log"
)

type MemoriesRepo struct {
	kv *KV
}

func NewMemoriesRepo(kv *KV) *MemoriesRepo {
	return &MemoriesRepo{kv: kv}
}

// List returns the full collection. Unreadable or corrupted persisted
// data degrades to an empty collection; this is a local cache of record,
// availability wins over strictness.
func (r *MemoriesRepo) List(ctx context.Context) []core.Memory {
	data, err := r.kv.Get(ctx, core.MemoriesKey)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to read memories, degrading to empty")
		return []core.Memory{}
	}
	if len(data) == 0 {
		return []core.Memory{}
	}

	var memories []core.Memory
	if err := json.Unmarshal(data, &memories); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to parse memories, degrading to empty")
		return []core.Memory{}
	}
	if memories == nil {
		return []core.Memory{}
	}
	return memories
}

// Put replaces the persisted collection. Write failures propagate,
// including core.ErrStorageFull from the quota check.
func (r *MemoriesRepo) Put(ctx context.Context, memories []core.Memory) error {
	if memories == nil {
		memories = []core.Memory{}
	}
	data, err := json.Marshal(memories)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, core.MemoriesKey, data)
}

func (r *MemoriesRepo) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, core.MemoriesKey)
}
