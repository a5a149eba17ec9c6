package report

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/contour.report/internal/contour"
	"github.com/banshee-data/contour.report/internal/export"
	"github.com/banshee-data/contour.report/internal/store"
)

func testServer(t *testing.T) (*Server, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "results.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewServer(st, dbPath), st, dir
}

func TestRenderSliceChart(t *testing.T) {
	var sb strings.Builder
	path := []contour.Point{{X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0.5}, {X: 1, Y: 1}}
	if err := RenderSliceChart(&sb, "Slice 3", path); err != nil {
		t.Fatalf("RenderSliceChart: %v", err)
	}
	html := sb.String()
	if !strings.Contains(html, "Slice 3") {
		t.Error("chart HTML missing title")
	}
	if !strings.Contains(html, "echarts") {
		t.Error("chart HTML missing echarts payload")
	}
}

func TestRenderSliceChart_Empty(t *testing.T) {
	if err := RenderSliceChart(&strings.Builder{}, "t", nil); err == nil {
		t.Error("empty contour should fail")
	}
}

func TestSaveSlicePlot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "slice.png")
	path := []contour.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	if err := SaveSlicePlot(file, "Slice 0", path); err != nil {
		t.Fatalf("SaveSlicePlot: %v", err)
	}
	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestSaveSlicePlot_Empty(t *testing.T) {
	file := filepath.Join(t.TempDir(), "slice.png")
	if err := SaveSlicePlot(file, "t", nil); err == nil {
		t.Error("empty contour should fail")
	}
}

func TestHandleRuns(t *testing.T) {
	srv, st, _ := testServer(t)
	if _, err := st.CreateRun("/data/in", 2, contour.DefaultParams()); err != nil {
		t.Fatalf("create run: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.ServeMux().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "/data/in") {
		t.Error("run list missing run input")
	}
}

func TestHandleSlices(t *testing.T) {
	srv, st, _ := testServer(t)
	run, err := st.CreateRun("in", 2, contour.DefaultParams())
	if err != nil {
		t.Fatalf("create run: %v", err)
	}
	if err := st.RecordSlice(store.SliceRecord{
		RunID: run.ID, SliceIdx: 1, Status: store.StatusSkippedEmpty,
	}); err != nil {
		t.Fatalf("record slice: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.ServeMux().ServeHTTP(rec, httptest.NewRequest("GET", "/slices?run="+run.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "skipped_empty") {
		t.Error("slice table missing status")
	}

	rec = httptest.NewRecorder()
	srv.ServeMux().ServeHTTP(rec, httptest.NewRequest("GET", "/slices?run=unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown run status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = httptest.NewRecorder()
	srv.ServeMux().ServeHTTP(rec, httptest.NewRequest("GET", "/slices", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing run status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleChart(t *testing.T) {
	srv, st, dir := testServer(t)
	run, err := st.CreateRun("in", 2, contour.DefaultParams())
	if err != nil {
		t.Fatalf("create run: %v", err)
	}

	w := &export.Writer{Dir: dir, PatientID: "01", CType: "i"}
	file, err := w.Write(5, []contour.Point{{X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 0}, {X: 0, Y: 0}})
	if err != nil {
		t.Fatalf("write contour: %v", err)
	}
	if err := st.RecordSlice(store.SliceRecord{
		RunID: run.ID, SliceIdx: 5, Status: store.StatusWritten, Points: 4, File: file,
	}); err != nil {
		t.Fatalf("record slice: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.ServeMux().ServeHTTP(rec, httptest.NewRequest("GET", "/chart?run="+run.ID+"&slice=5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "echarts") {
		t.Error("chart response missing echarts payload")
	}

	rec = httptest.NewRecorder()
	srv.ServeMux().ServeHTTP(rec, httptest.NewRequest("GET", "/chart?run="+run.ID+"&slice=9", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown slice status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = httptest.NewRecorder()
	srv.ServeMux().ServeHTTP(rec, httptest.NewRequest("GET", "/chart?slice=zz", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad params status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
