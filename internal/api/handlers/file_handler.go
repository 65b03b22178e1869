package handlers

import (
	"log/slog"

	"github.com/files-manager/files-service/internal/files"
)

// FileHandler exposes the storage core over HTTP.
type FileHandler struct {
	svc *files.Service
	log *slog.Logger
}

func NewFileHandler(svc *files.Service, log *slog.Logger) *FileHandler {
	return &FileHandler{svc: svc, log: log.With("component", "api")}
}
