package models

import (
	"time"
)

// Kind values accepted for a file entity.
const (
	KindFolder = "folder"
	KindFile   = "file"
	KindImage  = "image"
)

// RootParent is the sentinel parentId meaning "no parent folder".
const RootParent = "0"

// File is the metadata record for a stored entity. StoragePath points into
// the blob store and is never serialized to clients; folders have none.
type File struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	Name        string    `json:"name"`
	Kind        string    `json:"type"`
	ParentID    string    `json:"parentId"`
	IsPublic    bool      `json:"isPublic"`
	StoragePath string    `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// ValidKind reports whether kind is one of the accepted entity kinds.
func ValidKind(kind string) bool {
	switch kind {
	case KindFolder, KindFile, KindImage:
		return true
	}
	return false
}

// IsFolder reports whether the entity is a folder (no blob content).
func (f *File) IsFolder() bool {
	return f.Kind == KindFolder
}
