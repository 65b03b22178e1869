package blob

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocal_WriteReadRoundTrip(t *testing.T) {
	store := NewLocal()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "blob1")
	payload := []byte("raw bytes \x00\x01\x02")

	require.NoError(t, store.Write(ctx, path, payload))

	got, err := store.Read(ctx, path)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestLocal_ReadMissing(t *testing.T) {
	store := NewLocal()

	_, err := store.Read(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestLocal_EnsureDirectoryIdempotent(t *testing.T) {
	store := NewLocal()
	ctx := context.Background()

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, store.EnsureDirectory(ctx, dir))
	require.NoError(t, store.EnsureDirectory(ctx, dir))

	require.NoError(t, store.Write(ctx, filepath.Join(dir, "x"), []byte("ok")))
}

func TestLocal_WriteOverwrites(t *testing.T) {
	store := NewLocal()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, store.Write(ctx, path, []byte("first")))
	require.NoError(t, store.Write(ctx, path, []byte("second")))

	got, err := store.Read(ctx, path)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}
