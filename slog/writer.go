package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/toplinks"
)

// Ensure LoggingDatasetWriter implements toplinks.DatasetWriter.
var _ toplinks.DatasetWriter = (*LoggingDatasetWriter)(nil)

// LoggingDatasetWriter wraps a DatasetWriter with logging.
type LoggingDatasetWriter struct {
	next   toplinks.DatasetWriter
	logger *slog.Logger
}

// NewLoggingDatasetWriter creates a new LoggingDatasetWriter.
func NewLoggingDatasetWriter(next toplinks.DatasetWriter, logger *slog.Logger) *LoggingDatasetWriter {
	return &LoggingDatasetWriter{next: next, logger: logger}
}

// WriteDataset delegates to the wrapped writer and logs the artifact.
func (w *LoggingDatasetWriter) WriteDataset(ctx context.Context, path string, d toplinks.Dataset) (artifact *toplinks.Artifact, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"path", path,
			"rows", len(d),
			"duration", time.Since(begin),
		}
		if err != nil {
			w.logger.Error("write dataset", append(attrs, "err", err)...)
			return
		}
		w.logger.Info("write dataset", append(attrs, "bytes", artifact.Bytes, "checksum", artifact.Checksum)...)
	}(time.Now())
	return w.next.WriteDataset(ctx, path, d)
}
