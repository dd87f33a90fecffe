// Package plot is a small figure model: a figure owns axes, axes own lines,
// and every output backend draws from the same layout.
package plot

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Figure defaults, matching the usual 6.4 × 4.8 inch figure at 100 dpi.
const (
	DefaultWidth  = 6.4
	DefaultHeight = 4.8
	DefaultDPI    = 100.0
)

// FigureOptions are forwarded verbatim to figure creation.
type FigureOptions struct {
	// Size is width × height in inches.
	Size      [2]float64 `mapstructure:"figsize" yaml:"figsize"`
	DPI       float64    `mapstructure:"dpi" yaml:"dpi"`
	FaceColor string     `mapstructure:"facecolor" yaml:"facecolor"`
	// Layout is "" or "tight"; "tight" applies TightLayout on creation.
	Layout string `mapstructure:"layout" yaml:"layout"`
}

// Figure is a canvas holding one or more axes.
type Figure struct {
	Width, Height float64
	DPI           float64
	FaceColor     colorful.Color
	Axes          []*Axes
	Tight         bool
}

// Pixels returns the canvas size in pixels.
func (f *Figure) Pixels() (w, h int) {
	return int(f.Width*f.DPI + 0.5), int(f.Height*f.DPI + 0.5)
}

// TightLayout shrinks the outer margins to what titles and labels need.
func (f *Figure) TightLayout() { f.Tight = true }

// Subplots creates a figure with a single axes.
func Subplots(opts FigureOptions) (*Figure, *Axes, error) {
	f := &Figure{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		DPI:       DefaultDPI,
		FaceColor: colorful.Color{R: 1, G: 1, B: 1},
	}
	if opts.Size[0] != 0 || opts.Size[1] != 0 {
		if opts.Size[0] <= 0 || opts.Size[1] <= 0 {
			return nil, nil, fmt.Errorf("plot: figsize %v must be positive", opts.Size)
		}
		f.Width, f.Height = opts.Size[0], opts.Size[1]
	}
	if opts.DPI < 0 {
		return nil, nil, fmt.Errorf("plot: dpi %g must be positive", opts.DPI)
	}
	if opts.DPI > 0 {
		f.DPI = opts.DPI
	}
	if opts.FaceColor != "" {
		c, err := ParseColor(opts.FaceColor)
		if err != nil {
			return nil, nil, err
		}
		f.FaceColor = c
	}
	switch opts.Layout {
	case "":
	case "tight":
		f.Tight = true
	default:
		return nil, nil, fmt.Errorf("plot: unknown layout %q", opts.Layout)
	}

	ax := newAxes()
	f.Axes = append(f.Axes, ax)
	return f, ax, nil
}
