// Package files implements the storage core: the upload pipeline, the access
// gate evaluated on every read, publish/unpublish and paginated listing.
package files

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/files-manager/files-service/internal/blob"
	"github.com/files-manager/files-service/internal/metadata"
	"github.com/files-manager/files-service/internal/metrics"
	"github.com/files-manager/files-service/internal/models"
	"github.com/files-manager/files-service/internal/queue"
	"github.com/files-manager/files-service/internal/scan"
)

// CreateRequest is the wire shape of an upload. Data carries base64-encoded
// content and is required for everything but folders.
type CreateRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

type Service struct {
	store   metadata.Store
	blobs   blob.Store
	queue   queue.Queue
	scanner *scan.Scanner
	root    string
	log     *slog.Logger
}

// NewService wires the storage core. scanner may be nil to disable virus
// scanning; root is the blob directory new uploads are written under.
func NewService(store metadata.Store, blobs blob.Store, q queue.Queue, scanner *scan.Scanner, root string, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		blobs:   blobs,
		queue:   q,
		scanner: scanner,
		root:    root,
		log:     log.With("component", "files"),
	}
}

// Create validates and persists a new entity. For non-folder kinds the blob
// is written before the metadata record, so a crash between the two leaves
// at worst an orphaned blob, never metadata pointing at missing content.
// Image uploads enqueue a rendition job; the response never waits for it.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*models.File, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if !models.ValidKind(req.Kind) {
		return nil, ErrMissingKind
	}
	if req.Kind != models.KindFolder && req.Data == "" {
		return nil, ErrMissingContent
	}

	parentID := req.ParentID
	if parentID == "" {
		parentID = models.RootParent
	}
	if parentID != models.RootParent {
		parent, err := s.store.GetOwnedFile(ctx, parentID, ownerID)
		if err != nil {
			return nil, ErrParentNotFound
		}
		if !parent.IsFolder() {
			return nil, ErrParentNotFolder
		}
	}

	file := &models.File{
		OwnerID:  ownerID,
		Name:     req.Name,
		Kind:     req.Kind,
		ParentID: parentID,
		IsPublic: req.IsPublic,
	}

	if req.Kind == models.KindFolder {
		if err := s.store.CreateFile(ctx, file); err != nil {
			return nil, err
		}
		metrics.UploadsTotal.WithLabelValues(file.Kind).Inc()
		return file, nil
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return nil, ErrInvalidContent
	}

	if err := s.blobs.EnsureDirectory(ctx, s.root); err != nil {
		metrics.UploadFailures.Inc()
		s.log.Error("blob directory unavailable", "error", err)
		return nil, fmt.Errorf("blob store unavailable: %w", err)
	}

	file.StoragePath = filepath.Join(s.root, uuid.NewString())
	if err := s.blobs.Write(ctx, file.StoragePath, data); err != nil {
		metrics.UploadFailures.Inc()
		s.log.Error("blob write failed", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to store content: %w", err)
	}

	if err := s.store.CreateFile(ctx, file); err != nil {
		// Orphaned blob is harmless; the record is what grants access.
		metrics.UploadFailures.Inc()
		s.log.Error("metadata write failed", "owner_id", ownerID, "error", err)
		return nil, err
	}
	metrics.UploadsTotal.WithLabelValues(file.Kind).Inc()

	if file.Kind == models.KindImage {
		job := queue.Job{OwnerID: file.OwnerID, FileID: file.ID}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			// Best effort: the upload stands, the entity just never
			// gains renditions.
			s.log.Warn("failed to enqueue rendition job", "file_id", file.ID, "error", err)
		}
	}

	if s.scanner != nil {
		go s.scanner.Scan(context.WithoutCancel(ctx), file.ID, data)
	}

	return file, nil
}

// Get returns entity metadata subject to the access gate: public entities
// are visible to anyone, private ones only to their owner. Ownership
// mismatches and unknown ids are reported identically.
func (s *Service) Get(ctx context.Context, callerID, id string) (*models.File, error) {
	file, err := s.store.GetFile(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !file.IsPublic && (callerID == "" || callerID != file.OwnerID) {
		return nil, ErrNotFound
	}
	return file, nil
}

// Content returns the raw bytes of an entity the caller may see, plus the
// content type derived from the entity name. A size tag selects a rendition
// at the derived path; a missing rendition is a not-found, never a fallback
// to the primary blob.
func (s *Service) Content(ctx context.Context, callerID, id, sizeTag string) ([]byte, string, error) {
	file, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, "", err
	}
	if file.IsFolder() {
		return nil, "", ErrFolderHasNoContent
	}

	path := file.StoragePath
	if sizeTag != "" {
		path = RenditionPath(path, sizeTag)
	}

	data, err := s.blobs.Read(ctx, path)
	if err != nil {
		return nil, "", ErrNotFound
	}
	return data, ContentTypeFor(file.Name), nil
}

// SetVisibility flips isPublic for an owned entity and returns the updated
// record. Non-owned and unknown ids both come back as ErrNotFound.
func (s *Service) SetVisibility(ctx context.Context, ownerID, id string, public bool) (*models.File, error) {
	file, err := s.store.SetPublic(ctx, id, ownerID, public)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

// List returns one page of the caller's entities, newest first. An empty
// parentID lists all of the caller's entities regardless of parent; pages
// past the end are empty, not errors.
func (s *Service) List(ctx context.Context, ownerID, parentID string, page int) ([]*models.File, error) {
	filter := metadata.ListFilter{OwnerID: ownerID, Page: page}
	if parentID != "" {
		filter.ParentID = &parentID
	}
	return s.store.ListFiles(ctx, filter)
}

// RenditionPath derives the blob reference of a rendition from the primary
// path and a size tag.
func RenditionPath(storagePath, sizeTag string) string {
	return storagePath + "_" + sizeTag
}
