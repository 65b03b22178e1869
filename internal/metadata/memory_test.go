package metadata

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/files-manager/files-service/internal/models"
)

func TestMemory_CreateAssignsID(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	file := &models.File{OwnerID: "u1", Name: "docs", Kind: models.KindFolder}
	require.NoError(t, store.CreateFile(ctx, file))
	require.NotEmpty(t, file.ID)
	require.Equal(t, models.RootParent, file.ParentID)

	got, err := store.GetFile(ctx, file.ID)
	require.NoError(t, err)
	require.Equal(t, "docs", got.Name)
}

func TestMemory_GetOwnedFile(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	file := &models.File{OwnerID: "u1", Name: "a", Kind: models.KindFile}
	require.NoError(t, store.CreateFile(ctx, file))

	_, err := store.GetOwnedFile(ctx, file.ID, "u2")
	require.ErrorIs(t, err, ErrNotFound)

	got, err := store.GetOwnedFile(ctx, file.ID, "u1")
	require.NoError(t, err)
	require.Equal(t, file.ID, got.ID)
}

func TestMemory_ListNewestFirstAndPaged(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		file := &models.File{OwnerID: "u1", Name: fmt.Sprintf("f%02d", i), Kind: models.KindFile}
		require.NoError(t, store.CreateFile(ctx, file))
	}
	// Another user's files never show up.
	require.NoError(t, store.CreateFile(ctx, &models.File{OwnerID: "u2", Name: "other", Kind: models.KindFile}))

	page0, err := store.ListFiles(ctx, ListFilter{OwnerID: "u1", Page: 0})
	require.NoError(t, err)
	require.Len(t, page0, PageSize)
	require.Equal(t, "f24", page0[0].Name)

	page1, err := store.ListFiles(ctx, ListFilter{OwnerID: "u1", Page: 1})
	require.NoError(t, err)
	require.Len(t, page1, 5)
	require.Equal(t, "f04", page1[0].Name)

	page2, err := store.ListFiles(ctx, ListFilter{OwnerID: "u1", Page: 2})
	require.NoError(t, err)
	require.Empty(t, page2)
}

func TestMemory_ListParentFilter(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	folder := &models.File{OwnerID: "u1", Name: "dir", Kind: models.KindFolder}
	require.NoError(t, store.CreateFile(ctx, folder))
	child := &models.File{OwnerID: "u1", Name: "in", Kind: models.KindFile, ParentID: folder.ID}
	require.NoError(t, store.CreateFile(ctx, child))
	require.NoError(t, store.CreateFile(ctx, &models.File{OwnerID: "u1", Name: "out", Kind: models.KindFile}))

	got, err := store.ListFiles(ctx, ListFilter{OwnerID: "u1", ParentID: &folder.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "in", got[0].Name)
}

func TestMemory_SetPublic(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	file := &models.File{OwnerID: "u1", Name: "a", Kind: models.KindFile}
	require.NoError(t, store.CreateFile(ctx, file))

	updated, err := store.SetPublic(ctx, file.ID, "u1", true)
	require.NoError(t, err)
	require.True(t, updated.IsPublic)

	_, err = store.SetPublic(ctx, file.ID, "u2", false)
	require.ErrorIs(t, err, ErrNotFound)

	// Still public: the failed update from the wrong owner changed nothing.
	got, err := store.GetFile(ctx, file.ID)
	require.NoError(t, err)
	require.True(t, got.IsPublic)
}

func TestMemory_Counts(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.CreateFile(ctx, &models.File{OwnerID: "u1", Name: "a", Kind: models.KindFile}))
	require.NoError(t, store.CreateFile(ctx, &models.File{OwnerID: "u1", Name: "b", Kind: models.KindFile}))
	require.NoError(t, store.CreateFile(ctx, &models.File{OwnerID: "u2", Name: "c", Kind: models.KindFile}))

	total, err := store.CountFiles(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	owners, err := store.CountOwners(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, owners)
}
