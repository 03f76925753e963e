package backup

import (
	"context"

	"github.com/sandevgo/remindme/pkg/log"
)

// Uploader runs snapshot uploads in the background. Submit never blocks
// and never reports failure to the submitting call: upload-after-save is
// fire-and-forget, its errors go to the log and nowhere else.
type Uploader struct {
	sync    *Synchronizer
	pending chan struct{}
}

func NewUploader(sync *Synchronizer) *Uploader {
	return &Uploader{
		sync: sync,
		// Buffer of one: bursts of saves coalesce into a single upload
		// of the latest collection state.
		pending: make(chan struct{}, 1),
	}
}

// Submit requests a background upload of the current collection.
func (u *Uploader) Submit() {
	select {
	case u.pending <- struct{}{}:
	default:
	}
}

func (u *Uploader) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("starting backup uploader")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-u.pending:
			if err := u.sync.UploadSnapshot(ctx); err != nil {
				logger.Warn().Err(err).Msg("background sync failed")
			}
		}
	}
}

func (u *Uploader) Shutdown(ctx context.Context) error {
	return nil
}
