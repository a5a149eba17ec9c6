// Command contour extracts per-slice surface contours from a binary
// segmentation volume. Each slice is morphologically cleaned, its rim
// pixels are ordered into a closed interpolated polyline, and the result
// is written as a per-slice text record. Results are optionally recorded
// in a SQLite database and can be browsed with the -listen mode.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/contour.report/internal/config"
	"github.com/banshee-data/contour.report/internal/contour"
	"github.com/banshee-data/contour.report/internal/export"
	"github.com/banshee-data/contour.report/internal/pipeline"
	"github.com/banshee-data/contour.report/internal/report"
	"github.com/banshee-data/contour.report/internal/store"
	"github.com/banshee-data/contour.report/internal/version"
	"github.com/banshee-data/contour.report/internal/volume"
)

var (
	input   = flag.String("input", "", "Directory containing the binary mask slice stack")
	dim     = flag.Int("dim", 2, "Volume axis to slice along (0, 1 or 2)")
	ctype   = flag.String("ctype", "i", "Contour type tag, i or o")
	offset  = flag.Int("offset", 0, "Slice index offset to place a processed sub-volume")
	id      = flag.String("id", "", "Patient id (leading zeros preserved)")
	target  = flag.String("target", "", "Target directory for the generated contour files")
	force   = flag.Bool("f", false, "Silently overwrite output files that exist")
	verbose = flag.Bool("v", false, "Display more information")

	gap       = flag.Float64("gap", contour.DefaultGapLimit, "Maximum pixel distance bridged between consecutive contour points")
	divider   = flag.Int("divider", contour.DefaultDivider, "Interpolated points per contour segment")
	closeIter = flag.Int("close-iterations", pipeline.DefaultCloseIterations, "Binary closing iterations applied per slice (0 disables)")
	workers   = flag.Int("workers", 1, "Slices processed concurrently")

	configFile  = flag.String("config", "", "Optional JSON tuning file overriding gap/divider/closing/workers")
	dbFile      = flag.String("db", "", "Optional SQLite results database")
	listen      = flag.String("listen", "", "Serve recorded results on this address instead of extracting (requires -db)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if *listen != "" {
		if *dbFile == "" {
			log.Fatal("-listen requires -db")
		}
		serveResults(*dbFile, *listen)
		return
	}

	if *input == "" || *target == "" || *id == "" {
		log.Fatal("-input, -target and -id are required")
	}
	if *ctype != "i" && *ctype != "o" {
		log.Fatalf("invalid contour type %q, want i or o", *ctype)
	}

	params := contour.Params{GapLimit: *gap, Divider: *divider}
	cfg := pipeline.Config{
		Dimension:       *dim,
		Params:          params,
		CloseIterations: *closeIter,
		Workers:         *workers,
		Verbose:         *verbose,
	}
	if *configFile != "" {
		tuning, err := config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
		applyTuning(&cfg, tuning)
	}

	log.Printf("loading slice stack from %s...", *input)
	vol, err := volume.LoadDir(*input)
	if err != nil {
		log.Fatalf("failed to load volume: %v", err)
	}
	if *verbose {
		log.Printf("loaded volume %dx%dx%d", vol.NX, vol.NY, vol.NZ)
	}

	writer := &export.Writer{
		Dir:       *target,
		PatientID: *id,
		CType:     *ctype,
		Offset:    *offset,
		Force:     *force,
	}

	var st *store.Store
	var runID string
	if *dbFile != "" {
		st, err = store.Open(*dbFile)
		if err != nil {
			log.Fatalf("failed to open results database: %v", err)
		}
		defer st.Close()
		run, err := st.CreateRun(*input, cfg.Dimension, cfg.Params)
		if err != nil {
			log.Fatalf("failed to create run record: %v", err)
		}
		runID = run.ID
		log.Printf("recording results as run %s", runID)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Print("processing per-slice and writing to files...")
	sum, err := pipeline.New(vol, writer, st, runID, cfg).Run(ctx)
	if err != nil {
		log.Fatalf("extraction failed: %v", err)
	}
	log.Printf("successfully terminated: %d slices, %d written, %d existing, %d empty",
		sum.Slices, sum.Written, sum.SkippedExists, sum.SkippedEmpty)
}

// applyTuning overlays set tuning fields onto the pipeline config.
func applyTuning(cfg *pipeline.Config, t *config.TuningConfig) {
	if t.GapLimit != nil {
		cfg.Params.GapLimit = *t.GapLimit
	}
	if t.Divider != nil {
		cfg.Params.Divider = *t.Divider
	}
	if t.CloseIterations != nil {
		cfg.CloseIterations = *t.CloseIterations
	}
	if t.Workers != nil {
		cfg.Workers = *t.Workers
	}
}

// serveResults runs the results browser until interrupted.
func serveResults(dbPath, addr string) {
	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open results database: %v", err)
	}
	defer st.Close()

	srv := report.NewServer(st, dbPath)
	mux := srv.ServeMux()
	srv.AttachAdminRoutes(mux)

	server := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("got request %q", r.URL.Path)
			mux.ServeHTTP(w, r)
		}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("serving results on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down results server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("results server shutdown error: %v", err)
	}
	log.Print("graceful shutdown complete")
}
