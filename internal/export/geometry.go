package export

import (
	"github.com/san-kum/vorts/internal/plot"
)

// Tick mark length and text padding, in points.
const (
	tickLength = 3.5
	textPad    = 3.5
	tickTarget = 5
	spineWidth = 0.8
)

type segment struct {
	X1, Y1, X2, Y2 float64
}

// label is a piece of text placed on the canvas. AX shifts it left by that
// fraction of its width; AY = 0 puts its baseline at Y, AY = 1 hangs it below Y.
type label struct {
	Text     string
	X, Y     float64
	AX, AY   float64
	Vertical bool
}

// decorations returns the tick marks and every text item of a panel, in
// canvas pixels. Spines are not included.
func decorations(fig *plot.Figure, p plot.Panel) ([]segment, []label) {
	ax := p.Axes
	b := p.Box
	tl := fig.PointsToPixels(tickLength)
	pad := fig.PointsToPixels(textPad)
	fs := fig.PointsToPixels(plot.FontSize)

	var marks []segment
	var labels []label

	for _, v := range plot.NiceTicks(p.View.XMin, p.View.XMax, tickTarget) {
		x, _ := p.Map(v, p.View.YMin)
		text := plot.FormatTick(v)
		if ax.Ticks.Bottom {
			marks = append(marks, segment{x, b.Y + b.H, x, b.Y + b.H + tl})
		}
		if ax.Ticks.Top {
			marks = append(marks, segment{x, b.Y, x, b.Y - tl})
		}
		if ax.Ticks.LabelBottom {
			labels = append(labels, label{Text: text, X: x, Y: b.Y + b.H + tl + pad, AX: 0.5, AY: 1})
		}
		if ax.Ticks.LabelTop {
			labels = append(labels, label{Text: text, X: x, Y: b.Y - tl - pad, AX: 0.5, AY: 0})
		}
	}
	for _, v := range plot.NiceTicks(p.View.YMin, p.View.YMax, tickTarget) {
		_, y := p.Map(p.View.XMin, v)
		text := plot.FormatTick(v)
		if ax.Ticks.Left {
			marks = append(marks, segment{b.X - tl, y, b.X, y})
		}
		if ax.Ticks.Right {
			marks = append(marks, segment{b.X + b.W, y, b.X + b.W + tl, y})
		}
		if ax.Ticks.LabelLeft {
			labels = append(labels, label{Text: text, X: b.X - tl - pad, Y: y, AX: 1, AY: 0.5})
		}
		if ax.Ticks.LabelRight {
			labels = append(labels, label{Text: text, X: b.X + b.W + tl + pad, Y: y, AX: 0, AY: 0.5})
		}
	}

	cx := b.X + b.W/2
	cy := b.Y + b.H/2
	if ax.Title != "" {
		y := b.Y - pad
		if ax.Ticks.LabelTop {
			y -= tl + 1.4*fs
		}
		labels = append(labels, label{Text: ax.Title, X: cx, Y: y, AX: 0.5, AY: 0})
	}
	if ax.XLabel != "" {
		y := b.Y + b.H + pad
		if ax.Ticks.LabelBottom {
			y += tl + 1.4*fs
		}
		labels = append(labels, label{Text: ax.XLabel, X: cx, Y: y, AX: 0.5, AY: 1})
	}
	if ax.YLabel != "" {
		x := b.X - pad
		if ax.Ticks.LabelLeft {
			x -= tl + 3.5*fs
		}
		labels = append(labels, label{Text: ax.YLabel, X: x - 0.7*fs, Y: cy, AX: 0.5, AY: 0.5, Vertical: true})
	}
	return marks, labels
}

// visible reports whether a line leaves any ink.
func visible(l *plot.Line) bool {
	if l.Alpha <= 0 || len(l.X) == 0 {
		return false
	}
	return (l.Solid && l.Width > 0) || (l.Marker != plot.MarkerNone && l.MarkerSize > 0)
}
