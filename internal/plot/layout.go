package plot

import "math"

// FontSize is the text size in points used for titles, labels and ticks.
const FontSize = 10.0

// Default subplot margins as fractions of the figure.
const (
	marginLeft   = 0.125
	marginRight  = 0.9
	marginBottom = 0.11
	marginTop    = 0.88
)

// Rect is a pixel rectangle with the origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Panel is where an axes lands on the canvas and which data window it shows.
type Panel struct {
	Axes *Axes
	Box  Rect
	View Bounds
}

// Map converts data coordinates to canvas pixels.
func (p Panel) Map(x, y float64) (px, py float64) {
	px = p.Box.X + (x-p.View.XMin)/p.View.Width()*p.Box.W
	py = p.Box.Y + p.Box.H - (y-p.View.YMin)/p.View.Height()*p.Box.H
	return px, py
}

// PointsToPixels converts a length in points to pixels at the figure DPI.
func (f *Figure) PointsToPixels(pt float64) float64 {
	return pt * f.DPI / 72
}

// MarkerRadius returns the drawn radius of l's markers in pixels. Point
// markers are half the size of circles.
func (f *Figure) MarkerRadius(l *Line) float64 {
	r := f.PointsToPixels(l.MarkerSize) / 2
	if l.Marker == MarkerPoint {
		r /= 2
	}
	return r
}

// Layout places every axes of f on its pixel canvas. Axes are stacked
// vertically when there is more than one.
func Layout(f *Figure) []Panel {
	wpx, hpx := f.Pixels()
	n := len(f.Axes)
	panels := make([]Panel, 0, n)
	if n == 0 {
		return panels
	}

	cellH := float64(hpx) / float64(n)
	for i, ax := range f.Axes {
		cell := Rect{X: 0, Y: float64(i) * cellH, W: float64(wpx), H: cellH}
		box := f.innerBox(ax, cell)
		view := ax.ViewLimits()
		if ax.Aspect == AspectEqual {
			box = equalAspect(box, view)
		}
		panels = append(panels, Panel{Axes: ax, Box: box, View: view})
	}
	return panels
}

func (f *Figure) innerBox(ax *Axes, cell Rect) Rect {
	if !f.Tight {
		return Rect{
			X: cell.X + marginLeft*cell.W,
			Y: cell.Y + (1-marginTop)*cell.H,
			W: (marginRight - marginLeft) * cell.W,
			H: (marginTop - marginBottom) * cell.H,
		}
	}

	fs := f.PointsToPixels(FontSize)
	pad := f.PointsToPixels(4)
	left, right, top, bottom := pad, pad, pad, pad
	if ax.Ticks.Left {
		left += pad
	}
	if ax.Ticks.LabelLeft {
		left += 3.5 * fs
	}
	if ax.YLabel != "" {
		left += 1.4 * fs
	}
	if ax.Ticks.Bottom {
		bottom += pad
	}
	if ax.Ticks.LabelBottom {
		bottom += 1.4 * fs
	}
	if ax.XLabel != "" {
		bottom += 1.4 * fs
	}
	if ax.Ticks.LabelRight {
		right += 3.5 * fs
	}
	if ax.Ticks.LabelTop {
		top += 1.4 * fs
	}
	if ax.Title != "" {
		top += 1.8 * fs
	}

	box := Rect{X: cell.X + left, Y: cell.Y + top, W: cell.W - left - right, H: cell.H - top - bottom}
	if box.W < 1 {
		box.W = 1
	}
	if box.H < 1 {
		box.H = 1
	}
	return box
}

// equalAspect shrinks box around its centre so that one x unit and one y
// unit span the same number of pixels.
func equalAspect(box Rect, view Bounds) Rect {
	if !(view.Width() > 0 && view.Height() > 0) || math.IsInf(view.Width(), 0) || math.IsInf(view.Height(), 0) {
		return box
	}
	dataRatio := view.Height() / view.Width()
	boxRatio := box.H / box.W
	if dataRatio > boxRatio {
		w := box.H / dataRatio
		box.X += (box.W - w) / 2
		box.W = w
	} else {
		h := box.W * dataRatio
		box.Y += (box.H - h) / 2
		box.H = h
	}
	return box
}
