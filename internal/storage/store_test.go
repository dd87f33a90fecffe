package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/vorts/internal/history"
)

func testHistory(t *testing.T) *history.History {
	t.Helper()
	h, err := history.New(
		[]float64{0, 0.5},
		[]int{0, 1, 2},
		[]float64{1, -1, 0},
		[][]float64{{0, 1, 2}, {0.1, 1.1, 2.1}},
		[][]float64{{1, 0, 0.5}, {0.9, 0.1, 0.6}},
	)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	return h
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("test", testHistory(t), "orbit.csv")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Name != "test" {
		t.Errorf("expected name 'test', got '%s'", meta.Name)
	}
	if meta.Source != "orbit.csv" {
		t.Errorf("expected source 'orbit.csv', got '%s'", meta.Source)
	}
	if meta.Steps != 2 || meta.Points != 3 {
		t.Errorf("expected 2 steps × 3 points, got %d × %d", meta.Steps, meta.Points)
	}
	if meta.Vortons == nil || *meta.Vortons != 2 {
		t.Errorf("expected 2 vortons, got %v", meta.Vortons)
	}
	if meta.Tracers == nil || *meta.Tracers != 1 {
		t.Errorf("expected 1 tracer, got %v", meta.Tracers)
	}
	if meta.TEnd != 0.5 {
		t.Errorf("expected t_end 0.5, got %g", meta.TEnd)
	}

	h, err := st.LoadHistory(runID)
	if err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if h.NT() != 2 || h.NV() != 3 {
		t.Errorf("expected 2 × 3 history, got %d × %d", h.NT(), h.NV())
	}
	if h.X[1][2] != 2.1 || h.Y[1][2] != 0.6 {
		t.Errorf("expected point 2 at (2.1, 0.6), got (%g, %g)", h.X[1][2], h.Y[1][2])
	}
	if h.G[1] != -1 {
		t.Errorf("expected G[1] = -1, got %g", h.G[1])
	}
}

func TestStoreSaveFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// NaN passes validation but cannot be encoded as JSON
	h, err := history.New([]float64{math.NaN()}, []int{0}, []float64{1}, [][]float64{{0}}, [][]float64{{1}})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if _, err := st.Save("broken", h, "test"); err == nil {
		t.Fatal("expected save to fail")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no run directory left behind, got %d entries", len(entries))
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save("test", testHistory(t), "")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save("test", testHistory(t), "")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct run ids, got %s twice", first)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("test", testHistory(t), "")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "history.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("history.csv not created: %v", err)
	}
	if !strings.HasPrefix(string(data), "t,v,x,y,G\n") {
		t.Errorf("unexpected header in %q", data)
	}
}

func TestStoreRunNotFound(t *testing.T) {
	st := New(t.TempDir())

	for _, id := range []string{"nope", "../etc", ""} {
		if _, err := st.Load(id); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("Load(%q): expected ErrRunNotFound, got %v", id, err)
		}
		if _, err := st.LoadHistory(id); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("LoadHistory(%q): expected ErrRunNotFound, got %v", id, err)
		}
	}
}

func TestStoreExportJSON(t *testing.T) {
	st := New(t.TempDir())

	runID, err := st.Save("orbit", testHistory(t), "")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if data.Run.ID != runID {
		t.Errorf("expected run %s, got %s", runID, data.Run.ID)
	}
	if len(data.Times) != 2 || len(data.X) != 2 || len(data.X[0]) != 3 {
		t.Errorf("unexpected shape: %d times, %d rows", len(data.Times), len(data.X))
	}
	if len(data.G) != 3 || data.G[0] != 1 {
		t.Errorf("unexpected G: %v", data.G)
	}
}

func TestHistoryCSVRoundTrip(t *testing.T) {
	h := testHistory(t)

	var buf bytes.Buffer
	if err := WriteHistoryCSV(&buf, h); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadHistoryCSV(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	for it := range h.Times {
		for iv := range h.Labels {
			if got.X[it][iv] != h.X[it][iv] || got.Y[it][iv] != h.Y[it][iv] {
				t.Errorf("t=%d v=%d: got (%g, %g), want (%g, %g)", it, iv, got.X[it][iv], got.Y[it][iv], h.X[it][iv], h.Y[it][iv])
			}
		}
	}
}

func TestReadHistoryCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		check   func(t *testing.T, h *history.History)
	}{
		{
			name:  "columns in any order",
			input: "G,x,y,v,t\n1,0,1,7,0\n0,2,3,9,0\n1,0.5,0.5,7,1\n0,2,3,9,1\n",
			check: func(t *testing.T, h *history.History) {
				if h.Labels[0] != 7 || h.Labels[1] != 9 {
					t.Errorf("unexpected labels %v", h.Labels)
				}
				if h.X[1][0] != 0.5 {
					t.Errorf("expected x=0.5, got %g", h.X[1][0])
				}
			},
		},
		{
			name:  "no G column",
			input: "t,v,x,y\n0,0,1,2\n",
			check: func(t *testing.T, h *history.History) {
				if h.G != nil {
					t.Errorf("expected nil G, got %v", h.G)
				}
				if _, err := h.VortonMask(); !errors.Is(err, history.ErrMissingField) {
					t.Errorf("expected ErrMissingField, got %v", err)
				}
			},
		},
		{
			name:    "missing x column",
			input:   "t,v,y\n0,0,1\n",
			wantErr: history.ErrMissingField,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: history.ErrMissingField,
		},
		{
			name:    "missing cell",
			input:   "t,v,x,y\n0,0,1,2\n0,1,1,2\n1,0,1,2\n",
			wantErr: history.ErrDimensionMismatch,
		},
		{
			name:    "duplicate cell",
			input:   "t,v,x,y\n0,0,1,2\n0,0,1,2\n",
			wantErr: history.ErrDimensionMismatch,
		},
		{
			name:    "G changes in time",
			input:   "t,v,x,y,G\n0,0,1,2,1\n1,0,1,2,0\n",
			wantErr: history.ErrDimensionMismatch,
		},
		{
			name:    "descending time",
			input:   "t,v,x,y\n1,0,1,2\n0,0,1,2\n",
			wantErr: history.ErrUnsorted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ReadHistoryCSV(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, h)
		})
	}
}

func TestWriteHistoryCSVWithoutG(t *testing.T) {
	h, err := history.New([]float64{0}, []int{3}, nil, [][]float64{{1}}, [][]float64{{2}})
	if err != nil {
		t.Fatalf("history: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteHistoryCSV(&buf, h); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := buf.String(); got != "t,v,x,y\n0,3,1,2\n" {
		t.Errorf("unexpected csv %q", got)
	}
}
