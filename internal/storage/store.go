// Package storage keeps imported vorton histories in run directories:
// <base>/<run id>/metadata.json next to history.csv.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/vorts/internal/history"
)

const (
	metadataFile = "metadata.json"
	historyFile  = "history.csv"
)

// ErrRunNotFound is returned for a run id with no run directory.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a stored history. Vortons and Tracers are nil when
// the history has no circulation field.
type RunMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Steps     int       `json:"steps"`
	Points    int       `json:"points"`
	Vortons   *int      `json:"vortons,omitempty"`
	Tracers   *int      `json:"tracers,omitempty"`
	TStart    float64   `json:"t_start"`
	TEnd      float64   `json:"t_end"`
}

func newMetadata(id, name, source string, h *history.History) RunMetadata {
	meta := RunMetadata{
		ID:        id,
		Name:      name,
		Source:    source,
		Timestamp: time.Now(),
		Steps:     h.NT(),
		Points:    h.NV(),
	}
	if h.NT() > 0 {
		meta.TStart = h.Times[0]
		meta.TEnd = h.Times[h.NT()-1]
	}
	if nvort, ntr, err := h.Count(); err == nil {
		meta.Vortons, meta.Tracers = &nvort, &ntr
	}
	return meta
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID != filepath.Base(runID) || runID == "." || runID == ".." {
		return "", fmt.Errorf("%w: invalid id %q", ErrRunNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

// Save stores h as a new run named after name and returns its id. source
// records where the history came from, usually the imported file.
func (s *Store) Save(name string, h *history.History, source string) (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}

	base := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runID := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(s.baseDir, runID)); errors.Is(err, fs.ErrNotExist) {
			break
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, newMetadata(runID, name, source, h), h); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, h *history.History) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return fmt.Errorf("write metadata: %w", err)
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, historyFile))
	if err != nil {
		return err
	}
	if err := WriteHistoryCSV(csvFile, h); err != nil {
		csvFile.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := csvFile.Sync(); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s metadata: %w", runID, err)
	}

	return &meta, nil
}

// LoadHistory reads the history of a run back.
func (s *Store) LoadHistory(runID string) (*history.History, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, historyFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	h, err := ReadHistoryCSV(file)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return h, nil
}

// ExportData is the JSON form of a run.
type ExportData struct {
	Run    RunMetadata `json:"run"`
	Times  []float64   `json:"times"`
	Labels []int       `json:"labels"`
	G      []float64   `json:"G"`
	X      [][]float64 `json:"x"`
	Y      [][]float64 `json:"y"`
}

// ExportJSON writes a run, metadata and full history, as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	h, err := s.LoadHistory(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:    *meta,
		Times:  h.Times,
		Labels: h.Labels,
		G:      h.G,
		X:      h.X,
		Y:      h.Y,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
