package plot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Tab10New is Tableau's newer version of tab10.
var Tab10New = mustPalette(
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
	"#9c755f",
	"#bab0ac",
)

var baseColors = map[string]colorful.Color{
	"b": {R: 0, G: 0, B: 1},
	"g": {R: 0, G: 0.5, B: 0},
	"r": {R: 1, G: 0, B: 0},
	"c": {R: 0, G: 0.75, B: 0.75},
	"m": {R: 0.75, G: 0, B: 0.75},
	"y": {R: 0.75, G: 0.75, B: 0},
	"k": {R: 0, G: 0, B: 0},
	"w": {R: 1, G: 1, B: 1},

	"black": {R: 0, G: 0, B: 0},
	"white": {R: 1, G: 1, B: 1},
	"gray":  {R: 0.5, G: 0.5, B: 0.5},
	"grey":  {R: 0.5, G: 0.5, B: 0.5},
}

// Gray returns a gray level in [0, 1], 0 being black.
func Gray(level float64) colorful.Color {
	level = clamp01(level)
	return colorful.Color{R: level, G: level, B: level}
}

// ParseColor accepts "#rrggbb", a gray level such as "0.35", a single-letter
// base color ("b", "g", "r", "c", "m", "y", "k", "w") or a few names.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorful.Color{}, fmt.Errorf("plot: empty color")
	}
	if c, ok := baseColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("plot: color %q: %w", s, err)
		}
		return c, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 || v > 1 {
			return colorful.Color{}, fmt.Errorf("plot: gray level %q outside [0, 1]", s)
		}
		return Gray(v), nil
	}
	return colorful.Color{}, fmt.Errorf("plot: unknown color %q", s)
}

// ParsePalette parses every entry with ParseColor.
func ParsePalette(specs []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, len(specs))
	for i, s := range specs {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func mustPalette(specs ...string) []colorful.Color {
	p, err := ParsePalette(specs)
	if err != nil {
		panic(err)
	}
	return p
}

// Rainbow samples n colors evenly from the gnuplot 33,13,10 rainbow map,
// red = |2x - 0.5|, green = sin(pi x), blue = cos(pi x / 2).
func Rainbow(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		x := 0.0
		if n > 1 {
			x = float64(i) / float64(n-1)
		}
		out[i] = colorful.Color{
			R: clamp01(math.Abs(2*x - 0.5)),
			G: clamp01(math.Sin(math.Pi * x)),
			B: clamp01(math.Cos(math.Pi * x / 2)),
		}
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
