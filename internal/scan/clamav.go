package scan

import (
	"bytes"
	"context"
	"log/slog"

	clamd "github.com/dutchcoders/go-clamd"

	"github.com/files-manager/files-service/internal/metrics"
)

// Scanner streams uploaded bytes through ClamAV. Scanning is advisory: a
// positive result is logged and counted, never blocks an upload.
type Scanner struct {
	clam *clamd.Clamd
	log  *slog.Logger
}

func NewScanner(clamAvURL string, log *slog.Logger) *Scanner {
	return &Scanner{
		clam: clamd.NewClamd(clamAvURL),
		log:  log.With("component", "scanner"),
	}
}

// Scan checks data and records the verdict. Meant to run in its own
// goroutine after the upload response has been sent.
func (s *Scanner) Scan(ctx context.Context, fileID string, data []byte) {
	results, err := s.clam.ScanStream(bytes.NewReader(data), make(chan bool))
	if err != nil {
		s.log.Warn("scan failed", "file_id", fileID, "error", err)
		metrics.ScanVerdicts.WithLabelValues("error").Inc()
		return
	}

	for result := range results {
		select {
		case <-ctx.Done():
			return
		default:
		}
		switch result.Status {
		case clamd.RES_OK:
			metrics.ScanVerdicts.WithLabelValues("clean").Inc()
		case clamd.RES_FOUND:
			s.log.Warn("malware detected", "file_id", fileID, "signature", result.Description)
			metrics.ScanVerdicts.WithLabelValues("infected").Inc()
		default:
			s.log.Warn("scan inconclusive", "file_id", fileID, "status", result.Status)
			metrics.ScanVerdicts.WithLabelValues("error").Inc()
		}
	}
}
