// Package fs provides file-based storage for datasets.
package fs

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/toplinks"
)

// DateLayout formats the capture time column.
const DateLayout = "2006-01-02 15:04:05.000000"

// Header is the first row of every dataset file.
var Header = []string{"title", "link", "description", "date", "website"}

// EncodeDataset writes d as CSV, header first.
func EncodeDataset(w io.Writer, d toplinks.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range d {
		row := []string{r.Title, r.Link, r.Description, r.CapturedAt.Format(DateLayout), string(r.Source)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeDataset reads a dataset written by EncodeDataset.
// Capture times are interpreted in the local time zone.
func DecodeDataset(r io.Reader) (toplinks.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, toplinks.Errorf(toplinks.EINVALID, "malformed dataset: %v", err)
	}
	if len(rows) == 0 {
		return nil, toplinks.Errorf(toplinks.EINVALID, "dataset header missing")
	}

	d := make(toplinks.Dataset, 0, len(rows)-1)
	for i, row := range rows[1:] {
		capturedAt, err := time.ParseInLocation(DateLayout, row[3], time.Local)
		if err != nil {
			return nil, toplinks.Errorf(toplinks.EINVALID, "row %d: invalid date %q", i+1, row[3])
		}
		d = append(d, toplinks.LinkRecord{
			Title:       row[0],
			Link:        row[1],
			Description: row[2],
			CapturedAt:  capturedAt,
			Source:      toplinks.Source(row[4]),
		})
	}
	return d, nil
}

// Checksum returns the hex xxHash64 of b.
func Checksum(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// Ensure CSVWriter implements toplinks.DatasetWriter at compile time.
var _ toplinks.DatasetWriter = (*CSVWriter)(nil)

// CSVWriter writes datasets as CSV files below a base directory.
// Files are written to a temporary sibling and renamed into place, so a
// failed write never leaves a truncated dataset behind.
type CSVWriter struct {
	baseDir string
}

// NewCSVWriter creates a new CSVWriter that writes below baseDir.
func NewCSVWriter(baseDir string) *CSVWriter {
	return &CSVWriter{baseDir: baseDir}
}

// WriteDataset serializes d to path, overwriting any previous file.
func (w *CSVWriter) WriteDataset(ctx context.Context, path string, d toplinks.Dataset) (*toplinks.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, toplinks.Errorf(toplinks.EINVALID, "dataset path required")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := EncodeDataset(&buf, d); err != nil {
		return nil, fmt.Errorf("encoding dataset: %w", err)
	}

	fullPath := filepath.Join(w.baseDir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, err
	}

	if err := writeAtomic(fullPath, buf.Bytes()); err != nil {
		return nil, err
	}

	return &toplinks.Artifact{
		Path:     path,
		Rows:     len(d),
		Bytes:    buf.Len(),
		Checksum: Checksum(buf.Bytes()),
	}, nil
}

// writeAtomic writes data to a hidden temp file next to path and renames it
// into place. The temp file is removed on every failure.
func writeAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(0644); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
