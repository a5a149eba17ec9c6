// Package export writes traced contours as per-slice text records, one
// point per line with whitespace-separated coordinates, and reads them
// back for comparison and reporting.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/banshee-data/contour.report/internal/contour"
	"github.com/banshee-data/contour.report/internal/fsutil"
)

// ErrExists reports that the output file for a slice already exists and
// Force is not set. Callers treat it as "skip", not as failure.
var ErrExists = errors.New("export: output file exists")

// Writer owns the per-slice file naming convention and overwrite policy.
type Writer struct {
	// FS defaults to the real filesystem when nil.
	FS fsutil.FileSystem

	Dir       string // target directory, created on first write
	PatientID string // patient identifier, leading zeros preserved
	CType     string // contour type tag, "i" or "o"
	Offset    int    // added to slice indices to place a sub-volume
	Force     bool   // overwrite existing output files
}

func (w *Writer) fs() fsutil.FileSystem {
	if w.FS == nil {
		return fsutil.OSFileSystem{}
	}
	return w.FS
}

// FileName returns the output path for a slice index, following the
// P<id>-<slice:04d>-<ctype>contour-auto.txt convention.
func (w *Writer) FileName(sliceIdx int) string {
	name := fmt.Sprintf("P%s-%04d-%scontour-auto.txt", w.PatientID, sliceIdx+w.Offset, w.CType)
	return filepath.Join(w.Dir, name)
}

// Exists reports whether the output file for a slice is already present,
// so callers can skip the slice before doing any work.
func (w *Writer) Exists(sliceIdx int) bool {
	return w.fs().Exists(w.FileName(sliceIdx))
}

// Write serialises a contour to the slice's output file and returns the
// file path. Returns ErrExists (wrapped) when the file is already present
// and Force is unset.
func (w *Writer) Write(sliceIdx int, path []contour.Point) (string, error) {
	name := w.FileName(sliceIdx)
	if !w.Force && w.fs().Exists(name) {
		return name, fmt.Errorf("%s: %w", name, ErrExists)
	}
	if err := w.fs().MkdirAll(w.Dir, 0o755); err != nil {
		return name, fmt.Errorf("create target directory: %w", err)
	}
	if err := w.fs().WriteFile(name, Marshal(path), 0o644); err != nil {
		return name, fmt.Errorf("write contour: %w", err)
	}
	return name, nil
}

// Marshal renders a contour in the output format: one point per line,
// coordinates space-separated, shortest float representation.
func Marshal(path []contour.Point) []byte {
	var buf bytes.Buffer
	for _, p := range path {
		buf.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
