// Package history holds the time × point table of 2-D positions written by a
// vorton simulation run, and the call-scoped views the plotters take of it.
package history

import (
	"fmt"
)

// History is an ordered-by-time, indexed-by-point table of positions.
// X and Y are indexed [it][iv]. G holds one circulation strength per point
// and is constant in time; a nil G on a table with points means the field is
// absent.
type History struct {
	Times  []float64
	Labels []int
	X      [][]float64
	Y      [][]float64
	G      []float64
}

// New builds a history and validates its shape.
func New(times []float64, labels []int, g []float64, x, y [][]float64) (*History, error) {
	h := &History{
		Times:  times,
		Labels: labels,
		X:      x,
		Y:      y,
		G:      g,
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// NT is the number of time steps.
func (h *History) NT() int { return len(h.Times) }

// NV is the number of points.
func (h *History) NV() int { return len(h.Labels) }

// Validate checks that every field agrees with the t × v shape and that the
// time coordinate is ascending. A missing G is not reported here; it only
// fails the operations that need it.
func (h *History) Validate() error {
	nt, nv := h.NT(), h.NV()

	if len(h.X) != nt || len(h.Y) != nt {
		return fmt.Errorf("%w: x has %d rows, y has %d rows, want %d", ErrDimensionMismatch, len(h.X), len(h.Y), nt)
	}
	for it := 0; it < nt; it++ {
		if len(h.X[it]) != nv || len(h.Y[it]) != nv {
			return fmt.Errorf("%w: row %d has %d x and %d y values, want %d", ErrDimensionMismatch, it, len(h.X[it]), len(h.Y[it]), nv)
		}
	}
	if h.G != nil && len(h.G) != nv {
		return fmt.Errorf("%w: G has %d values, want %d", ErrDimensionMismatch, len(h.G), nv)
	}

	for it := 1; it < nt; it++ {
		if h.Times[it] < h.Times[it-1] {
			return fmt.Errorf("%w: t[%d]=%g after t[%d]=%g", ErrUnsorted, it, h.Times[it], it-1, h.Times[it-1])
		}
	}
	return nil
}

func (h *History) checkPoint(iv int) error {
	if iv < 0 || iv >= h.NV() {
		return fmt.Errorf("%w: point %d (nv=%d)", ErrIndexOutOfRange, iv, h.NV())
	}
	return nil
}

func (h *History) checkTime(it int) error {
	if it < 0 || it >= h.NT() {
		return fmt.Errorf("%w: time %d (nt=%d)", ErrIndexOutOfRange, it, h.NT())
	}
	return nil
}

// At returns the position of point iv at time step it.
func (h *History) At(it, iv int) (x, y float64, err error) {
	if err := h.checkTime(it); err != nil {
		return 0, 0, err
	}
	if err := h.checkPoint(iv); err != nil {
		return 0, 0, err
	}
	return h.X[it][iv], h.Y[it][iv], nil
}

// Trajectory returns copies of the x and y series of point iv.
func (h *History) Trajectory(iv int) (xs, ys []float64, err error) {
	if err := h.checkPoint(iv); err != nil {
		return nil, nil, err
	}
	xs = make([]float64, h.NT())
	ys = make([]float64, h.NT())
	for it := range h.Times {
		xs[it] = h.X[it][iv]
		ys[it] = h.Y[it][iv]
	}
	return xs, ys, nil
}

// SelectTimes returns the table restricted to the given time indices, in the
// order given. The result shares no slices with h.
func (h *History) SelectTimes(idx []int) (*History, error) {
	out := &History{
		Times:  make([]float64, 0, len(idx)),
		Labels: append([]int(nil), h.Labels...),
		X:      make([][]float64, 0, len(idx)),
		Y:      make([][]float64, 0, len(idx)),
	}
	if h.G != nil {
		out.G = append([]float64(nil), h.G...)
	}

	for _, it := range idx {
		if err := h.checkTime(it); err != nil {
			return nil, err
		}
		out.Times = append(out.Times, h.Times[it])
		out.X = append(out.X, append([]float64(nil), h.X[it]...))
		out.Y = append(out.Y, append([]float64(nil), h.Y[it]...))
	}
	return out, nil
}

// SelectPoints returns the table restricted to the points where mask is true,
// keeping index order.
func (h *History) SelectPoints(mask []bool) (*History, error) {
	if len(mask) != h.NV() {
		return nil, fmt.Errorf("%w: mask has %d entries, want %d", ErrDimensionMismatch, len(mask), h.NV())
	}

	keep := make([]int, 0, len(mask))
	for iv, ok := range mask {
		if ok {
			keep = append(keep, iv)
		}
	}

	out := &History{
		Times:  append([]float64(nil), h.Times...),
		Labels: make([]int, len(keep)),
		X:      make([][]float64, h.NT()),
		Y:      make([][]float64, h.NT()),
	}
	if h.G != nil {
		out.G = make([]float64, len(keep))
	}
	for j, iv := range keep {
		out.Labels[j] = h.Labels[iv]
		if h.G != nil {
			out.G[j] = h.G[iv]
		}
	}
	for it := range h.Times {
		xr := make([]float64, len(keep))
		yr := make([]float64, len(keep))
		for j, iv := range keep {
			xr[j] = h.X[it][iv]
			yr[j] = h.Y[it][iv]
		}
		out.X[it] = xr
		out.Y[it] = yr
	}
	return out, nil
}
