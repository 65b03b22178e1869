package files

import (
	"mime"
	"path/filepath"
	"strings"
)

// ContentTypeFor maps an entity name to a MIME type by extension.
func ContentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if typ := mime.TypeByExtension(ext); typ != "" {
		return typ
	}

	// The system mime table can be sparse in containers.
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}
