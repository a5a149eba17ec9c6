package report

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"strconv"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"

	"github.com/banshee-data/contour.report/internal/export"
	"github.com/banshee-data/contour.report/internal/store"
)

// Server serves batch results: the run list, per-run slice tables, and
// per-slice contour charts.
type Server struct {
	store  *store.Store
	dbPath string
}

// NewServer creates a results server over an open store. dbPath is only
// used to label the debug SQL UI.
func NewServer(st *store.Store, dbPath string) *Server {
	return &Server{store: st, dbPath: dbPath}
}

// ServeMux returns the route table of the results server.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRuns)
	mux.HandleFunc("/slices", s.handleSlices)
	mux.HandleFunc("/chart", s.handleChart)
	return mux
}

// AttachAdminRoutes mounts the debug endpoints, including a tailsql
// instance over the results database.
func (s *Server) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)
	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		log.Fatalf("failed to create tailsql server: %v", err)
	}
	tsql.SetDB("sqlite://"+s.dbPath, s.store.DB(), &tailsql.DBOptions{
		Label: "Contour results DB",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	runs, err := s.store.ListRuns()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h1>Extraction runs</h1><table border=1><tr><th>Run</th><th>Input</th><th>Dim</th><th>Gap</th><th>Divider</th><th>Started</th></tr>")
	for _, run := range runs {
		fmt.Fprintf(w, "<tr><td><a href=\"/slices?run=%s\">%s</a></td><td>%s</td><td>%d</td><td>%.3f</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(run.ID), html.EscapeString(run.ID),
			html.EscapeString(run.Input), run.Dimension, run.GapLimit, run.Divider,
			run.StartedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprint(w, "</table></body></html>")
}

func (s *Server) handleSlices(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run")
	if runID == "" {
		s.writeJSONError(w, http.StatusBadRequest, "missing run parameter")
		return
	}
	recs, err := s.store.RunSlices(runID)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(recs) == 0 {
		s.writeJSONError(w, http.StatusNotFound, "no slices for run")
		return
	}
	safeRun := html.EscapeString(runID)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><body><h1>Run %s</h1><table border=1><tr><th>Slice</th><th>Status</th><th>Points</th><th>Perimeter</th><th>File</th></tr>", safeRun)
	for _, rec := range recs {
		cell := html.EscapeString(rec.File)
		if rec.Status == store.StatusWritten {
			cell = fmt.Sprintf("<a href=\"/chart?run=%s&slice=%d\">%s</a>", safeRun, rec.SliceIdx, cell)
		}
		fmt.Fprintf(w, "<tr><td>%d</td><td>%s</td><td>%d</td><td>%.2f</td><td>%s</td></tr>",
			rec.SliceIdx, html.EscapeString(string(rec.Status)), rec.Points, rec.Perimeter, cell)
	}
	fmt.Fprint(w, "</table></body></html>")
}

// handleChart renders the contour of one recorded slice. The file path
// comes from the store, never from the request, so only recorded outputs
// are readable through this endpoint.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run")
	sliceIdx, err := strconv.Atoi(r.URL.Query().Get("slice"))
	if runID == "" || err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "missing or invalid run/slice parameters")
		return
	}
	recs, err := s.store.RunSlices(runID)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, rec := range recs {
		if rec.SliceIdx != sliceIdx {
			continue
		}
		if rec.Status != store.StatusWritten || rec.File == "" {
			s.writeJSONError(w, http.StatusNotFound, "slice has no written contour")
			return
		}
		path, err := export.ReadFile(rec.File)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("load contour: %v", err))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		title := fmt.Sprintf("Slice %d", sliceIdx)
		if err := RenderSliceChart(w, title, path); err != nil {
			log.Printf("render chart for %s slice %d: %v", runID, sliceIdx, err)
		}
		return
	}
	s.writeJSONError(w, http.StatusNotFound, "slice not found")
}

func (s *Server) writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
