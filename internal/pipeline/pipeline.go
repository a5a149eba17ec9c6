// Package pipeline glues the extraction stages together: it walks the
// slices of a volume, cleans each mask, extracts and traces the boundary,
// writes the per-slice contour file, and records the outcome.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/banshee-data/contour.report/internal/contour"
	"github.com/banshee-data/contour.report/internal/export"
	"github.com/banshee-data/contour.report/internal/mask"
	"github.com/banshee-data/contour.report/internal/store"
	"github.com/banshee-data/contour.report/internal/volume"
)

// DefaultCloseIterations is the number of binary-closing passes applied
// to each slice before tracing.
const DefaultCloseIterations = 7

// Config holds the per-run pipeline settings.
type Config struct {
	// Dimension selects the volume axis to slice along (0, 1 or 2).
	Dimension int
	// Params are passed through to the tracer.
	Params contour.Params
	// CloseIterations sets the binary-closing depth; negative means
	// DefaultCloseIterations, zero disables closing.
	CloseIterations int
	// Workers is the number of slices processed concurrently; values
	// below 2 select the sequential path.
	Workers int
	// Verbose enables per-slice progress logging.
	Verbose bool
}

// Summary aggregates per-slice outcomes of a run.
type Summary struct {
	Slices        int
	Written       int
	SkippedExists int
	SkippedEmpty  int
	Failed        int
}

// Pipeline processes one volume with one writer. The store is optional;
// when nil, outcomes are only logged.
type Pipeline struct {
	vol    *volume.Volume
	writer *export.Writer
	store  *store.Store
	runID  string
	cfg    Config
}

// New assembles a pipeline. runID tags the store records and may be empty
// when st is nil.
func New(vol *volume.Volume, w *export.Writer, st *store.Store, runID string, cfg Config) *Pipeline {
	if cfg.CloseIterations < 0 {
		cfg.CloseIterations = DefaultCloseIterations
	}
	return &Pipeline{vol: vol, writer: w, store: st, runID: runID, cfg: cfg}
}

// CleanMask applies the morphology sequence used before tracing: retain
// the largest connected component, fill holes, then close with the full
// 3×3 footprint.
func CleanMask(m *mask.Mask, closeIterations int) *mask.Mask {
	m = mask.KeepLargest(m)
	m = mask.FillHoles(m)
	if closeIterations > 0 {
		m = mask.Close(m, mask.Box, closeIterations)
	}
	return m
}

// Run processes every slice along the configured dimension. A failing
// slice never aborts the run or invalidates earlier output; the first
// slice error is reported after all slices finish. Cancellation stops
// scheduling new slices and returns the context error.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	n, err := p.vol.Dim(p.cfg.Dimension)
	if err != nil {
		return Summary{}, err
	}

	records := make([]store.SliceRecord, n)
	if p.cfg.Workers > 1 {
		err = p.runParallel(ctx, n, records)
	} else {
		err = p.runSequential(ctx, n, records)
	}
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	var firstErr error
	for _, rec := range records {
		sum.Slices++
		switch rec.Status {
		case store.StatusWritten:
			sum.Written++
		case store.StatusSkippedExists:
			sum.SkippedExists++
		case store.StatusSkippedEmpty:
			sum.SkippedEmpty++
		case store.StatusFailed:
			sum.Failed++
		}
		if p.store != nil {
			if err := p.store.RecordSlice(rec); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	if sum.Failed > 0 && firstErr == nil {
		firstErr = fmt.Errorf("%d of %d slices failed", sum.Failed, sum.Slices)
	}
	return sum, firstErr
}

func (p *Pipeline) runSequential(ctx context.Context, n int, records []store.SliceRecord) error {
	for idx := 0; idx < n; idx++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		records[idx] = p.processSlice(idx)
	}
	return nil
}

func (p *Pipeline) runParallel(ctx context.Context, n int, records []store.SliceRecord) error {
	// Slices share no mutable state, so a plain index feed is enough.
	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indices {
				records[idx] = p.processSlice(idx)
			}
		}()
	}

	var ctxErr error
feed:
	for idx := 0; idx < n; idx++ {
		select {
		case indices <- idx:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(indices)
	wg.Wait()
	return ctxErr
}

// processSlice runs the full per-slice sequence and returns its record.
// All failure modes are local to the slice.
func (p *Pipeline) processSlice(idx int) store.SliceRecord {
	rec := store.SliceRecord{RunID: p.runID, SliceIdx: idx}

	// Cheap existence check first, matching the batch tool's behaviour of
	// never recomputing completed slices unless forced.
	if !p.writer.Force && p.writer.Exists(idx) {
		log.Printf("slice %d: output file %s already exists, skipping", idx, p.writer.FileName(idx))
		rec.Status = store.StatusSkippedExists
		rec.File = p.writer.FileName(idx)
		return rec
	}

	m, err := p.vol.Slice(p.cfg.Dimension, idx)
	if err != nil {
		log.Printf("slice %d: %v", idx, err)
		rec.Status = store.StatusFailed
		return rec
	}

	cleaned := CleanMask(m, p.cfg.CloseIterations)
	boundary := contour.ExtractBoundary(cleaned)
	path, err := contour.Trace(boundary, p.cfg.Params)
	if err != nil {
		if errors.Is(err, contour.ErrEmptyBoundary) {
			log.Printf("slice %d: empty contour, skipping", idx)
			rec.Status = store.StatusSkippedEmpty
			return rec
		}
		log.Printf("slice %d: trace: %v", idx, err)
		rec.Status = store.StatusFailed
		return rec
	}

	file, err := p.writer.Write(idx, path)
	if err != nil {
		if errors.Is(err, export.ErrExists) {
			rec.Status = store.StatusSkippedExists
			rec.File = file
			return rec
		}
		log.Printf("slice %d: %v", idx, err)
		rec.Status = store.StatusFailed
		return rec
	}

	stats := contour.Stats(path)
	rec.Status = store.StatusWritten
	rec.Points = stats.Vertices
	rec.Perimeter = stats.Perimeter
	rec.File = file
	if p.cfg.Verbose {
		log.Printf("slice %d: wrote %d points to %s", idx, stats.Vertices, file)
	}
	return rec
}
