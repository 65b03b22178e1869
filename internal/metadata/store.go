package metadata

import (
	"context"
	"errors"

	"github.com/files-manager/files-service/internal/models"
)

// PageSize is the fixed number of entities returned per listing page.
const PageSize = 20

// ErrNotFound is returned when no entity matches the lookup. Stores report
// "exists but not owned" the same way so callers cannot probe for existence.
var ErrNotFound = errors.New("file not found")

// ListFilter narrows a listing to one owner and, optionally, one parent
// folder. Page is zero-based.
type ListFilter struct {
	OwnerID  string
	ParentID *string
	Page     int
}

// Store is the durable record of file entities and their hierarchy.
type Store interface {
	// CreateFile persists a new entity, assigning its ID and CreatedAt.
	CreateFile(ctx context.Context, file *models.File) error

	// GetFile returns the entity with the given id regardless of owner.
	GetFile(ctx context.Context, id string) (*models.File, error)

	// GetOwnedFile returns the entity only if it belongs to ownerID.
	GetOwnedFile(ctx context.Context, id, ownerID string) (*models.File, error)

	// ListFiles returns one page of entities matching the filter, most
	// recently created first. Pages past the end yield an empty slice.
	ListFiles(ctx context.Context, filter ListFilter) ([]*models.File, error)

	// SetPublic atomically updates the visibility of an owned entity and
	// returns the post-update record, or ErrNotFound if the entity does
	// not exist or belongs to someone else.
	SetPublic(ctx context.Context, id, ownerID string, public bool) (*models.File, error)

	// CountFiles and CountOwners back the stats endpoint.
	CountFiles(ctx context.Context) (int64, error)
	CountOwners(ctx context.Context) (int64, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
