// Package poincare samples a history at the times its reference point comes
// back near where it started.
package poincare

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/vorts/internal/history"
)

// DefaultXTol is the x tolerance used when none is given.
const DefaultXTol = 1e-2

// ErrInvalidTolerance is returned for a negative or NaN tolerance.
var ErrInvalidTolerance = errors.New("poincare: invalid tolerance")

// Options configures the recurrence filter.
type Options struct {
	XTol float64 `mapstructure:"xtol" yaml:"xtol"`
}

func DefaultOptions() Options {
	return Options{XTol: DefaultXTol}
}

func (o Options) validate() error {
	if math.IsNaN(o.XTol) || o.XTol < 0 {
		return fmt.Errorf("%w: xtol=%g", ErrInvalidTolerance, o.XTol)
	}
	return nil
}

// Times returns the time indices at which the reference point is within
// XTol of its initial x coordinate while on the positive-y side.
//
// This is an approximation of a transversal crossing: there is no y
// tolerance, no centre-of-vorticity frame and no interpolation to the exact
// crossing.
func Times(h *history.History, ref int, opts Options) ([]int, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if ref < 0 || ref >= h.NV() {
		return nil, fmt.Errorf("reference point: %w: point %d (nv=%d)", history.ErrIndexOutOfRange, ref, h.NV())
	}
	if h.NT() == 0 {
		return []int{}, nil
	}

	x0, _, err := h.At(0, ref)
	if err != nil {
		return nil, fmt.Errorf("reference point: %w", err)
	}

	idx := make([]int, 0)
	for it := range h.Times {
		x, y := h.X[it][ref], h.Y[it][ref]
		if math.Abs(x-x0) <= opts.XTol && y > 0 {
			idx = append(idx, it)
		}
	}
	return idx, nil
}

// Section returns the whole table (all points, all fields) restricted to the
// recurrence times of the reference point, in time order. No recurrence is
// not an error: the result simply has no time steps.
func Section(h *history.History, ref int, opts Options) (*history.History, error) {
	idx, err := Times(h, ref, opts)
	if err != nil {
		return nil, err
	}
	return h.SelectTimes(idx)
}

// Trace returns x(t, ref) - x(0, ref), the signal the filter thresholds.
func Trace(h *history.History, ref int) ([]float64, error) {
	xs, _, err := h.Trajectory(ref)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return xs, nil
	}
	x0 := xs[0]
	for i := range xs {
		xs[i] -= x0
	}
	return xs, nil
}
