package files

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/files-manager/files-service/internal/blob"
	"github.com/files-manager/files-service/internal/metadata"
	"github.com/files-manager/files-service/internal/models"
	"github.com/files-manager/files-service/internal/queue"
)

func newTestService(t *testing.T) (*Service, *metadata.Memory, *queue.Memory, blob.Store) {
	t.Helper()
	store := metadata.NewMemory()
	blobs := blob.NewLocal()
	jobs := queue.NewMemory(16)
	root := filepath.Join(t.TempDir(), "blobs")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, blobs, jobs, nil, root, log), store, jobs, blobs
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestCreate_ValidationOrder(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", CreateRequest{Kind: models.KindFile, Data: b64("x")})
	require.ErrorIs(t, err, ErrMissingName)

	_, err = svc.Create(ctx, "u1", CreateRequest{Name: "a"})
	require.ErrorIs(t, err, ErrMissingKind)

	_, err = svc.Create(ctx, "u1", CreateRequest{Name: "a", Kind: "archive"})
	require.ErrorIs(t, err, ErrMissingKind)

	_, err = svc.Create(ctx, "u1", CreateRequest{Name: "a", Kind: models.KindFile})
	require.ErrorIs(t, err, ErrMissingContent)

	// Folders need no content.
	_, err = svc.Create(ctx, "u1", CreateRequest{Name: "dir", Kind: models.KindFolder})
	require.NoError(t, err)
}

func TestCreate_FolderHasNoBlobAndNoContent(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	folder, err := svc.Create(ctx, "u1", CreateRequest{Name: "docs", Kind: models.KindFolder})
	require.NoError(t, err)
	require.Empty(t, folder.StoragePath)
	require.Equal(t, models.RootParent, folder.ParentID)

	_, _, err = svc.Content(ctx, "u1", folder.ID, "")
	require.ErrorIs(t, err, ErrFolderHasNoContent)
}

func TestCreate_ParentValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	// Unknown parent.
	_, err := svc.Create(ctx, "u1", CreateRequest{
		Name: "a", Kind: models.KindFile, Data: b64("x"), ParentID: uuid.NewString(),
	})
	require.ErrorIs(t, err, ErrParentNotFound)

	// Parent exists but is not a folder.
	plain, err := svc.Create(ctx, "u1", CreateRequest{Name: "p", Kind: models.KindFile, Data: b64("x")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", CreateRequest{
		Name: "a", Kind: models.KindFile, Data: b64("x"), ParentID: plain.ID,
	})
	require.ErrorIs(t, err, ErrParentNotFolder)

	// Parent owned by someone else resolves like a missing parent.
	theirs, err := svc.Create(ctx, "u2", CreateRequest{Name: "dir", Kind: models.KindFolder})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", CreateRequest{
		Name: "a", Kind: models.KindFile, Data: b64("x"), ParentID: theirs.ID,
	})
	require.ErrorIs(t, err, ErrParentNotFound)

	// Owned folder works.
	mine, err := svc.Create(ctx, "u1", CreateRequest{Name: "dir", Kind: models.KindFolder})
	require.NoError(t, err)
	child, err := svc.Create(ctx, "u1", CreateRequest{
		Name: "a", Kind: models.KindFile, Data: b64("x"), ParentID: mine.ID,
	})
	require.NoError(t, err)
	require.Equal(t, mine.ID, child.ParentID)
}

func TestCreate_InvalidParentLeavesNoRecord(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", CreateRequest{
		Name: "a", Kind: models.KindFile, Data: b64("x"), ParentID: uuid.NewString(),
	})
	require.ErrorIs(t, err, ErrParentNotFound)

	count, err := store.CountFiles(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCreate_ContentRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	payload := "Hello Webstack!\n"
	file, err := svc.Create(ctx, "u1", CreateRequest{
		Name: "hello.txt", Kind: models.KindFile, Data: b64(payload),
	})
	require.NoError(t, err)

	data, contentType, err := svc.Content(ctx, "u1", file.ID, "")
	require.NoError(t, err)
	require.Equal(t, []byte(payload), data)
	require.Contains(t, contentType, "text/plain")
}

func TestCreate_InvalidBase64(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", CreateRequest{
		Name: "a.bin", Kind: models.KindFile, Data: "%%% not base64 %%%",
	})
	require.ErrorIs(t, err, ErrInvalidContent)

	count, _ := store.CountFiles(ctx)
	require.Zero(t, count)
}

type failingBlobs struct{}

func (failingBlobs) Write(context.Context, string, []byte) error {
	return errors.New("disk full")
}
func (failingBlobs) Read(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk full")
}
func (failingBlobs) EnsureDirectory(context.Context, string) error { return nil }

func TestCreate_BlobWriteFailureCreatesNoMetadata(t *testing.T) {
	store := metadata.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store, failingBlobs{}, queue.NewMemory(1), nil, "/tmp/unused", log)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", CreateRequest{
		Name: "a.bin", Kind: models.KindFile, Data: b64("x"),
	})
	require.Error(t, err)

	count, _ := store.CountFiles(ctx)
	require.Zero(t, count)
}

func TestCreate_ImageEnqueuesRenditionJob(t *testing.T) {
	svc, _, jobs, _ := newTestService(t)
	ctx := context.Background()

	image, err := svc.Create(ctx, "u1", CreateRequest{
		Name: "pic.png", Kind: models.KindImage, Data: b64("pngbytes"),
	})
	require.NoError(t, err)

	job, err := jobs.Dequeue(ctx)
	require.NoError(t, err)
	require.Equal(t, queue.Job{OwnerID: "u1", FileID: image.ID}, job)

	// Plain files never enqueue work.
	_, err = svc.Create(ctx, "u1", CreateRequest{
		Name: "a.txt", Kind: models.KindFile, Data: b64("x"),
	})
	require.NoError(t, err)
	require.Zero(t, jobs.Len())
}

func TestAccessGate_PrivateEntity(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	file, err := svc.Create(ctx, "owner", CreateRequest{
		Name: "secret.txt", Kind: models.KindFile, Data: b64("hidden"),
	})
	require.NoError(t, err)

	// Anonymous and non-owner callers get the same answer as for an id
	// that does not exist.
	_, errAnon := svc.Get(ctx, "", file.ID)
	_, errOther := svc.Get(ctx, "someone-else", file.ID)
	_, errMissing := svc.Get(ctx, "owner", uuid.NewString())
	require.ErrorIs(t, errAnon, ErrNotFound)
	require.ErrorIs(t, errOther, ErrNotFound)
	require.ErrorIs(t, errMissing, ErrNotFound)

	_, _, err = svc.Content(ctx, "", file.ID, "")
	require.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(ctx, "owner", file.ID)
	require.NoError(t, err)
	require.Equal(t, file.ID, got.ID)
}

func TestAccessGate_PublicEntity(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	file, err := svc.Create(ctx, "owner", CreateRequest{
		Name: "open.txt", Kind: models.KindFile, Data: b64("shared"), IsPublic: true,
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "", file.ID)
	require.NoError(t, err)
	require.True(t, got.IsPublic)

	data, _, err := svc.Content(ctx, "", file.ID, "")
	require.NoError(t, err)
	require.Equal(t, []byte("shared"), data)

	// Public folders expose metadata but still have no content.
	folder, err := svc.Create(ctx, "owner", CreateRequest{
		Name: "pub", Kind: models.KindFolder, IsPublic: true,
	})
	require.NoError(t, err)
	_, err = svc.Get(ctx, "", folder.ID)
	require.NoError(t, err)
	_, _, err = svc.Content(ctx, "", folder.ID, "")
	require.ErrorIs(t, err, ErrFolderHasNoContent)
}

func TestSetVisibility_OwnerOnlyAndIdempotent(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	file, err := svc.Create(ctx, "owner", CreateRequest{
		Name: "x.txt", Kind: models.KindFile, Data: b64("x"),
	})
	require.NoError(t, err)

	published, err := svc.SetVisibility(ctx, "owner", file.ID, true)
	require.NoError(t, err)
	require.True(t, published.IsPublic)

	// Publishing an already-public entity returns the same state.
	again, err := svc.SetVisibility(ctx, "owner", file.ID, true)
	require.NoError(t, err)
	require.True(t, again.IsPublic)

	unpublished, err := svc.SetVisibility(ctx, "owner", file.ID, false)
	require.NoError(t, err)
	require.False(t, unpublished.IsPublic)

	_, err = svc.SetVisibility(ctx, "intruder", file.ID, true)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.SetVisibility(ctx, "owner", uuid.NewString(), true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestContent_UnknownSizeTag(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	file, err := svc.Create(ctx, "u1", CreateRequest{
		Name: "pic.png", Kind: models.KindImage, Data: b64("pngbytes"),
	})
	require.NoError(t, err)

	// No rendition was produced yet; never fall back to the primary blob.
	_, _, err = svc.Content(ctx, "u1", file.ID, "small")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestList_NoFilterSurfacesRootUpload(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	file, err := svc.Create(ctx, "u1", CreateRequest{
		Name: "rootfile.txt", Kind: models.KindFile, Data: b64("x"),
	})
	require.NoError(t, err)

	listed, err := svc.List(ctx, "u1", "", 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, file.ID, listed[0].ID)

	// Pages past the end are empty, not errors.
	empty, err := svc.List(ctx, "u1", "", 2)
	require.NoError(t, err)
	require.Empty(t, empty)
}
