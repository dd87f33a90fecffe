package plot

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Marker is the glyph drawn at each data point.
type Marker int

const (
	MarkerNone Marker = iota
	// MarkerCircle is a filled circle ("o").
	MarkerCircle
	// MarkerPoint is a small filled dot (".").
	MarkerPoint
)

// Default sizes, in points.
const (
	DefaultLineWidth  = 1.5
	DefaultMarkerSize = 6.0
	DefaultEdgeWidth  = 1.0
)

// Line is one plotted series. A line with Solid == false is drawn as
// markers only.
type Line struct {
	X, Y            []float64
	Color           colorful.Color
	Alpha           float64
	Width           float64
	Solid           bool
	Marker          Marker
	MarkerSize      float64
	MarkerEdgeWidth float64
	Label           string
}

// LineOption customizes a line passed to Axes.Plot.
type LineOption func(*lineSpec)

type lineSpec struct {
	Line
	colorSet bool
}

func WithColor(c colorful.Color) LineOption {
	return func(s *lineSpec) {
		s.Color = c
		s.colorSet = true
	}
}

func WithAlpha(a float64) LineOption {
	return func(s *lineSpec) { s.Alpha = clamp01(a) }
}

func WithWidth(w float64) LineOption {
	return func(s *lineSpec) { s.Width = w }
}

func WithMarker(m Marker) LineOption {
	return func(s *lineSpec) { s.Marker = m }
}

func WithMarkerSize(ms float64) LineOption {
	return func(s *lineSpec) { s.MarkerSize = ms }
}

func WithMarkerEdgeWidth(mew float64) LineOption {
	return func(s *lineSpec) { s.MarkerEdgeWidth = mew }
}

// NoLine draws markers only.
func NoLine() LineOption {
	return func(s *lineSpec) { s.Solid = false }
}

func WithLabel(label string) LineOption {
	return func(s *lineSpec) { s.Label = label }
}

// Aspect controls the ratio of y units to x units on screen.
type Aspect int

const (
	AspectAuto Aspect = iota
	// AspectEqual locks one x unit to one y unit by shrinking the axes box.
	AspectEqual
)

// TickParams says which tick marks and tick labels are drawn on each side.
type TickParams struct {
	Bottom, Top, Left, Right                     bool
	LabelBottom, LabelTop, LabelLeft, LabelRight bool
}

// DefaultTicks draws marks and labels on the bottom and left sides.
func DefaultTicks() TickParams {
	return TickParams{Bottom: true, Left: true, LabelBottom: true, LabelLeft: true}
}

// Any reports whether any tick mark or label is drawn.
func (t TickParams) Any() bool {
	return t.Bottom || t.Top || t.Left || t.Right ||
		t.LabelBottom || t.LabelTop || t.LabelLeft || t.LabelRight
}

// Axes is a single plotting area of a figure.
type Axes struct {
	Title  string
	XLabel string
	YLabel string
	Lines  []*Line
	Aspect Aspect
	Ticks  TickParams
	// FrameOn draws the four spines around the plotting area.
	FrameOn bool

	cycle    []colorful.Color
	cyclePos int
}

func newAxes() *Axes {
	return &Axes{
		Ticks:   DefaultTicks(),
		FrameOn: true,
		cycle:   Tab10New,
	}
}

// SetColorCycle replaces the colors handed to lines without an explicit
// color and restarts the cycle.
func (ax *Axes) SetColorCycle(colors []colorful.Color) {
	if len(colors) == 0 {
		colors = Tab10New
	}
	ax.cycle = append([]colorful.Color(nil), colors...)
	ax.cyclePos = 0
}

func (ax *Axes) nextColor() colorful.Color {
	c := ax.cycle[ax.cyclePos%len(ax.cycle)]
	ax.cyclePos++
	return c
}

// Plot adds a line through (xs[i], ys[i]). Lines without WithColor take the
// next cycle color; lines with an explicit color leave the cycle alone.
func (ax *Axes) Plot(xs, ys []float64, opts ...LineOption) *Line {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	s := lineSpec{Line: Line{
		X:               append([]float64(nil), xs[:n]...),
		Y:               append([]float64(nil), ys[:n]...),
		Alpha:           1,
		Width:           DefaultLineWidth,
		Solid:           true,
		MarkerSize:      DefaultMarkerSize,
		MarkerEdgeWidth: DefaultEdgeWidth,
	}}
	for _, opt := range opts {
		opt(&s)
	}
	if !s.colorSet {
		s.Color = ax.nextColor()
	}
	l := s.Line
	ax.Lines = append(ax.Lines, &l)
	return &l
}

func (ax *Axes) SetTitle(title string) { ax.Title = title }

func (ax *Axes) SetXLabel(label string) { ax.XLabel = label }

func (ax *Axes) SetYLabel(label string) { ax.YLabel = label }

func (ax *Axes) SetAspect(a Aspect) { ax.Aspect = a }

// Bounds is a rectangle in data coordinates.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

func (b Bounds) Width() float64 { return b.XMax - b.XMin }

func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// DataLimits returns the bounds of every finite point on the axes; ok is
// false when there is none.
func (ax *Axes) DataLimits() (b Bounds, ok bool) {
	b = Bounds{XMin: math.Inf(1), XMax: math.Inf(-1), YMin: math.Inf(1), YMax: math.Inf(-1)}
	for _, l := range ax.Lines {
		for i := range l.X {
			x, y := l.X[i], l.Y[i]
			if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
				continue
			}
			b.XMin = math.Min(b.XMin, x)
			b.XMax = math.Max(b.XMax, x)
			b.YMin = math.Min(b.YMin, y)
			b.YMax = math.Max(b.YMax, y)
			ok = true
		}
	}
	if !ok {
		return Bounds{}, false
	}
	return b, true
}

// ViewLimits pads the data limits by 5% on each side. Degenerate ranges are
// widened to one unit, or by 5% where one unit is below the float64
// resolution; empty axes get [0, 1] × [0, 1].
func (ax *Axes) ViewLimits() Bounds {
	b, ok := ax.DataLimits()
	if !ok {
		return Bounds{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	}
	b.XMin, b.XMax = pad(b.XMin, b.XMax)
	b.YMin, b.YMax = pad(b.YMin, b.YMax)
	return b
}

func pad(lo, hi float64) (float64, float64) {
	if hi-lo == 0 {
		d := 0.5
		if lo-d == lo || hi+d == hi {
			d = 0.05 * math.Abs(lo)
		}
		lo, hi = lo-d, hi+d
	} else {
		m := 0.05 * (hi - lo)
		lo, hi = lo-m, hi+m
	}
	return math.Max(lo, -math.MaxFloat64), math.Min(hi, math.MaxFloat64)
}
