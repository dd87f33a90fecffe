package plot

import (
	"math"
	"strconv"
)

const maxTicks = 1000

// NiceTicks returns about target evenly spaced tick positions inside
// [lo, hi], stepping by 1, 2, 2.5 or 5 times a power of ten.
func NiceTicks(lo, hi float64, target int) []float64 {
	if target < 1 || !(hi > lo) || math.IsInf(hi-lo, 0) {
		return nil
	}
	raw := (hi - lo) / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag * 10
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*mag >= raw {
			step = m * mag
			break
		}
	}

	first := math.Ceil(lo/step) * step
	if !(step > 0) || math.IsInf(first, 0) || math.IsNaN(first) || first+step == first {
		// step is below the float64 resolution at this magnitude
		return nil
	}

	n := int(math.Floor((hi-first)/step+1e-9)) + 1
	n = max(0, min(n, maxTicks))
	ticks := make([]float64, 0, n)
	for i := range n {
		v := first + float64(i)*step
		// snap values like 0.30000000000000004
		ticks = append(ticks, math.Round(v/step)*step)
	}
	return ticks
}

// FormatTick prints a tick value compactly.
func FormatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
