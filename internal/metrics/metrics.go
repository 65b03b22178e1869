package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "files_uploads_total",
		Help: "Entities created, by kind.",
	}, []string{"kind"})

	UploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "files_upload_failures_total",
		Help: "Uploads rejected or failed after validation.",
	})

	RenditionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "files_renditions_generated_total",
		Help: "Rendition blobs written by the worker.",
	})

	RenditionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "files_rendition_failures_total",
		Help: "Rendition jobs or size tags that could not be produced.",
	})

	ScanVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "files_scan_verdicts_total",
		Help: "ClamAV scan outcomes for uploaded blobs.",
	}, []string{"verdict"})
)
