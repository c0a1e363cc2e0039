package toplinks

import "context"

// Artifact describes a dataset serialized to disk.
type Artifact struct {
	// Path is the file location relative to the working directory.
	Path string `json:"path"`

	// Rows is the number of data rows, excluding the header.
	Rows int `json:"rows"`

	// Bytes is the size of the written file.
	Bytes int `json:"bytes"`

	// Checksum is the hex xxHash64 of the file contents.
	Checksum string `json:"checksum"`
}

// DatasetWriter serializes datasets to files.
type DatasetWriter interface {
	// WriteDataset writes d to path, replacing any previous file.
	// The path is interpreted relative to the writer's base directory.
	WriteDataset(ctx context.Context, path string, d Dataset) (*Artifact, error)
}
