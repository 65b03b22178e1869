package blob

import (
	"context"
	"fmt"
	"os"
)

// Local stores blobs as plain files on the local filesystem.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) Write(_ context.Context, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", path, err)
	}
	return nil
}

func (l *Local) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", path, err)
	}
	return data, nil
}

func (l *Local) EnsureDirectory(_ context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create blob directory %s: %w", path, err)
	}
	return nil
}
