package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/internal/service/memory"
	"github.com/sandevgo/remindme/pkg/log"
)

// Synchronizer replicates the memory collection to a single named remote
// object, whole-file replace in both directions. No retries: every
// remote failure is one-shot and the user re-triggers sync manually.
type Synchronizer struct {
	memories *memory.Store
	remote   core.BlobStore
}

// NewSynchronizer wires the remote target. remote may be nil when no
// credentials are configured; every remote operation then reports
// core.ErrAuthRequired.
func NewSynchronizer(memories *memory.Store, remote core.BlobStore) *Synchronizer {
	return &Synchronizer{memories: memories, remote: remote}
}

// UploadSnapshot serializes the full collection and creates or
// overwrites the well-known remote object. An empty store uploads an
// empty JSON sequence, not an error.
func (s *Synchronizer) UploadSnapshot(ctx context.Context) error {
	if s.remote == nil {
		return core.ErrAuthRequired
	}

	memories := s.memories.List(ctx)
	data, err := json.MarshalIndent(memories, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal snapshot: %v", core.ErrSyncFailed, err)
	}

	exists, err := s.remote.Exists(ctx, core.BackupObjectName)
	if err != nil {
		return wrapRemote(err)
	}

	if err := s.remote.Put(ctx, core.BackupObjectName, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return wrapRemote(err)
	}

	action := "created"
	if exists {
		action = "updated"
	}
	log.FromCtx(ctx).Info().
		Int("memories", len(memories)).
		Str("object", core.BackupObjectName).
		Msgf("backup %s", action)
	return nil
}

// RestoreSnapshot downloads the remote object and replaces the local
// collection with its contents. This is a destructive full replacement;
// callers confirm with the user first. Returns the number restored.
func (s *Synchronizer) RestoreSnapshot(ctx context.Context) (int, error) {
	if s.remote == nil {
		return 0, core.ErrAuthRequired
	}

	exists, err := s.remote.Exists(ctx, core.BackupObjectName)
	if err != nil {
		return 0, wrapRemote(err)
	}
	if !exists {
		return 0, core.ErrBackupNotFound
	}

	data, err := s.remote.Get(ctx, core.BackupObjectName)
	if err != nil {
		return 0, wrapRemote(err)
	}

	var memories []core.Memory
	if err := json.Unmarshal(data, &memories); err != nil {
		return 0, fmt.Errorf("%w: parse snapshot: %v", core.ErrSyncFailed, err)
	}

	if err := s.memories.ImportAll(ctx, memories); err != nil {
		return 0, err
	}

	log.FromCtx(ctx).Info().Int("memories", len(memories)).Msg("backup restored")
	return len(memories), nil
}

func wrapRemote(err error) error {
	if errors.Is(err, core.ErrAuthRequired) {
		return err
	}
	return fmt.Errorf("%w: %v", core.ErrSyncFailed, err)
}
