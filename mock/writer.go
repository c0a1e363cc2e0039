package mock

import (
	"context"

	"github.com/fwojciec/toplinks"
)

var _ toplinks.DatasetWriter = (*DatasetWriter)(nil)

// DatasetWriter is a mock implementation of toplinks.DatasetWriter.
type DatasetWriter struct {
	WriteDatasetFn func(ctx context.Context, path string, d toplinks.Dataset) (*toplinks.Artifact, error)
}

func (w *DatasetWriter) WriteDataset(ctx context.Context, path string, d toplinks.Dataset) (*toplinks.Artifact, error) {
	return w.WriteDatasetFn(ctx, path, d)
}
