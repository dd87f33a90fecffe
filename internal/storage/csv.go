package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/vorts/internal/history"
)

// Column names of the long history format: one row per (time, point).
const (
	colTime  = "t"
	colLabel = "v"
	colX     = "x"
	colY     = "y"
	colG     = "G"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteHistoryCSV writes h in long format with header t,v,x,y,G. The G
// column is left out when h has no circulation field.
func WriteHistoryCSV(w io.Writer, h *history.History) error {
	cw := csv.NewWriter(w)

	header := []string{colTime, colLabel, colX, colY}
	if h.G != nil {
		header = append(header, colG)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for it := 0; it < h.NT(); it++ {
		for iv := 0; iv < h.NV(); iv++ {
			row := []string{
				formatFloat(h.Times[it]),
				strconv.Itoa(h.Labels[iv]),
				formatFloat(h.X[it][iv]),
				formatFloat(h.Y[it][iv]),
			}
			if h.G != nil {
				row = append(row, formatFloat(h.G[iv]))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadHistoryCSV parses a long format table. Columns are found by header
// name and may come in any order; G is optional. Times and point labels
// keep their order of first appearance, and every (t, v) pair must be
// present exactly once.
func ReadHistoryCSV(r io.Reader) (*history.History, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty csv", history.ErrMissingField)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range []string{colTime, colLabel, colX, colY} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: column %q", history.ErrMissingField, name)
		}
	}
	gCol, hasG := cols[colG]

	var (
		times   []float64
		labels  []int
		timeIdx = make(map[float64]int)
		ptIdx   = make(map[int]int)
		g       = make(map[int]float64)
		xs      = make(map[[2]int]float64)
		ys      = make(map[[2]int]float64)
	)

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		field := func(col int) (float64, error) {
			v, err := strconv.ParseFloat(rec[col], 64)
			if err != nil {
				return 0, fmt.Errorf("line %d column %q: %w", line, header[col], err)
			}
			return v, nil
		}

		t, err := field(cols[colTime])
		if err != nil {
			return nil, err
		}
		label, err := strconv.Atoi(rec[cols[colLabel]])
		if err != nil {
			return nil, fmt.Errorf("line %d column %q: %w", line, colLabel, err)
		}
		x, err := field(cols[colX])
		if err != nil {
			return nil, err
		}
		y, err := field(cols[colY])
		if err != nil {
			return nil, err
		}

		it, ok := timeIdx[t]
		if !ok {
			it = len(times)
			timeIdx[t] = it
			times = append(times, t)
		}
		iv, ok := ptIdx[label]
		if !ok {
			iv = len(labels)
			ptIdx[label] = iv
			labels = append(labels, label)
		}

		key := [2]int{it, iv}
		if _, dup := xs[key]; dup {
			return nil, fmt.Errorf("%w: line %d repeats t=%g v=%d", history.ErrDimensionMismatch, line, t, label)
		}
		xs[key], ys[key] = x, y

		if hasG {
			gv, err := field(gCol)
			if err != nil {
				return nil, err
			}
			if prev, seen := g[iv]; seen && prev != gv && !(math.IsNaN(prev) && math.IsNaN(gv)) {
				return nil, fmt.Errorf("%w: line %d changes G of point %d from %g to %g", history.ErrDimensionMismatch, line, label, prev, gv)
			}
			g[iv] = gv
		}
	}

	nt, nv := len(times), len(labels)
	if len(xs) != nt*nv {
		return nil, fmt.Errorf("%w: %d rows for %d times × %d points", history.ErrDimensionMismatch, len(xs), nt, nv)
	}

	x := make([][]float64, nt)
	y := make([][]float64, nt)
	for it := range x {
		x[it] = make([]float64, nv)
		y[it] = make([]float64, nv)
		for iv := 0; iv < nv; iv++ {
			x[it][iv] = xs[[2]int{it, iv}]
			y[it][iv] = ys[[2]int{it, iv}]
		}
	}

	var gs []float64
	if hasG {
		gs = make([]float64, nv)
		for iv := range gs {
			gs[iv] = g[iv]
		}
	}
	return history.New(times, labels, gs, x, y)
}
