// Package blob persists raw binary content independently of the metadata
// store. Paths are opaque references handed out by the upload pipeline;
// renditions live at the primary path plus a size suffix.
package blob

import "context"

type Store interface {
	// Write stores data at path, overwriting any existing blob.
	Write(ctx context.Context, path string, data []byte) error

	// Read returns the blob at path. A missing blob is an error.
	Read(ctx context.Context, path string) ([]byte, error)

	// EnsureDirectory makes sure the container for path exists. Calling it
	// when the container already exists is not an error.
	EnsureDirectory(ctx context.Context, path string) error
}
