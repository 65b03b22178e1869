// Package worker consumes rendition jobs and derives scaled copies of image
// blobs. It runs outside the request cycle; uploads never wait for it.
package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/files-manager/files-service/internal/blob"
	"github.com/files-manager/files-service/internal/files"
	"github.com/files-manager/files-service/internal/metadata"
	"github.com/files-manager/files-service/internal/metrics"
	"github.com/files-manager/files-service/internal/models"
	"github.com/files-manager/files-service/internal/queue"
)

// DefaultSizes maps size tags to target widths in pixels. Height scales to
// preserve aspect ratio.
var DefaultSizes = map[string]int{
	"small":  100,
	"medium": 250,
	"large":  500,
}

var (
	errFileNotFound = errors.New("file not found")
	errNotImage     = errors.New("file is not an image")
)

type Renditions struct {
	queue queue.Queue
	store metadata.Store
	blobs blob.Store
	sizes map[string]int
	log   *slog.Logger
}

func NewRenditions(q queue.Queue, store metadata.Store, blobs blob.Store, log *slog.Logger) *Renditions {
	return &Renditions{
		queue: q,
		store: store,
		blobs: blobs,
		sizes: DefaultSizes,
		log:   log.With("component", "rendition-worker"),
	}
}

// Run consumes jobs until ctx is cancelled. Failed jobs are logged and
// dropped, never requeued; regenerating a rendition overwrites the previous
// blob, so redelivery from the queue is harmless.
func (r *Renditions) Run(ctx context.Context) {
	r.log.Info("rendition worker started")
	for {
		job, err := r.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				r.log.Info("rendition worker stopping")
				return
			}
			r.log.Error("dequeue failed", "error", err)
			continue
		}

		if err := r.Process(ctx, job); err != nil {
			metrics.RenditionFailures.Inc()
			r.log.Error("rendition job failed",
				"file_id", job.FileID, "owner_id", job.OwnerID, "error", err)
		}
	}
}

// Process generates every configured rendition for one job. A failure on one
// size tag does not abort the remaining tags.
func (r *Renditions) Process(ctx context.Context, job queue.Job) error {
	file, err := r.store.GetOwnedFile(ctx, job.FileID, job.OwnerID)
	if err != nil {
		return errFileNotFound
	}
	if file.Kind != models.KindImage {
		return errNotImage
	}

	data, err := r.blobs.Read(ctx, file.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to load primary blob: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	format, err := imaging.FormatFromFilename(file.Name)
	if err != nil {
		format = imaging.PNG
	}

	var failed int
	for tag, width := range r.sizes {
		scaled := imaging.Resize(img, width, 0, imaging.Lanczos)

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, scaled, format); err != nil {
			failed++
			r.log.Error("failed to encode rendition",
				"file_id", file.ID, "size", tag, "error", err)
			continue
		}

		path := files.RenditionPath(file.StoragePath, tag)
		if err := r.blobs.Write(ctx, path, buf.Bytes()); err != nil {
			failed++
			r.log.Error("failed to write rendition",
				"file_id", file.ID, "size", tag, "error", err)
			continue
		}
		metrics.RenditionsTotal.Inc()
	}

	if failed == len(r.sizes) {
		return fmt.Errorf("all %d renditions failed", failed)
	}
	return nil
}
