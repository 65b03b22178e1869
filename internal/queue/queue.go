// Package queue carries rendition work items from the upload pipeline to the
// worker. Delivery is best-effort: a lost item means a file never gains
// renditions, which readers tolerate.
package queue

import "context"

// Job identifies one file whose renditions should be generated.
type Job struct {
	OwnerID string `json:"userId"`
	FileID  string `json:"fileId"`
}

type Queue interface {
	// Enqueue submits a job without waiting for it to be processed.
	Enqueue(ctx context.Context, job Job) error

	// Dequeue blocks until a job is available or ctx is done.
	Dequeue(ctx context.Context) (Job, error)
}
