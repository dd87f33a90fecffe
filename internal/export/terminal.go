package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/vorts/internal/plot"
)

// Default terminal canvas size in cells, border excluded.
const (
	DefaultColumns = 72
	DefaultRows    = 24
)

// TerminalOptions size and color the terminal backend.
type TerminalOptions struct {
	Columns int
	Rows    int
	Theme   Theme
}

func (o TerminalOptions) withDefaults() TerminalOptions {
	if o.Columns <= 0 {
		o.Columns = DefaultColumns
	}
	if o.Rows <= 0 {
		o.Rows = DefaultRows
	}
	if o.Theme.Name == "" {
		o.Theme = ThemePaper
	}
	return o
}

// RenderTerminal draws every axes of fig as a braille canvas, one below the
// other, colored with lipgloss.
func RenderTerminal(fig *plot.Figure, opts TerminalOptions) (string, error) {
	if fig == nil || len(fig.Axes) == 0 {
		return "", ErrEmptyFigure
	}
	opts = opts.withDefaults()

	blocks := make([]string, 0, len(fig.Axes))
	for _, ax := range fig.Axes {
		blocks = append(blocks, terminalAxes(ax, opts))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...), nil
}

func terminalAxes(ax *plot.Axes, opts TerminalOptions) string {
	th := opts.Theme
	c := NewCanvas(opts.Columns, opts.Rows)
	p := dotPanel(ax, c)

	for _, l := range ax.Lines {
		if !visible(l) {
			continue
		}
		color := l.Color.Clamped().Hex()
		if th.Ink != "" {
			color = string(th.Ink)
		}
		plotDots(c, p, l, color)
	}

	body := colorize(c)
	if ax.FrameOn {
		body = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Frame).
			Render(body)
	}

	var parts []string
	if ax.Title != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(th.Title).Render(ax.Title))
	}
	parts = append(parts, body)
	if ax.Ticks.Any() {
		v := p.View
		line := fmt.Sprintf("%s ∈ [%s, %s]   %s ∈ [%s, %s]",
			axisName(ax.XLabel, "x"), plot.FormatTick(v.XMin), plot.FormatTick(v.XMax),
			axisName(ax.YLabel, "y"), plot.FormatTick(v.YMin), plot.FormatTick(v.YMax))
		parts = append(parts, lipgloss.NewStyle().Foreground(th.Muted).Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func axisName(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

// dotPanel maps the axes view onto the canvas dots. Braille dots are close
// to square, so equal aspect is kept by shrinking the box in dot units.
func dotPanel(ax *plot.Axes, c *Canvas) plot.Panel {
	w, h := c.Dots()
	view := ax.ViewLimits()
	box := plot.Rect{W: float64(w - 1), H: float64(h - 1)}
	if ax.Aspect == plot.AspectEqual {
		ratio := view.Height() / view.Width()
		if ratio > box.H/box.W {
			nw := box.H / ratio
			box.X = (box.W - nw) / 2
			box.W = nw
		} else {
			nh := box.W * ratio
			box.Y = (box.H - nh) / 2
			box.H = nh
		}
	}
	return plot.Panel{Axes: ax, Box: box, View: view}
}

func plotDots(c *Canvas, p plot.Panel, l *plot.Line, color string) {
	prevOK := false
	var px, py int
	for i := range l.X {
		if !finite(l.X[i], l.Y[i]) {
			prevOK = false
			continue
		}
		fx, fy := p.Map(l.X[i], l.Y[i])
		x, y := int(math.Round(fx)), int(math.Round(fy))
		switch {
		case l.Solid && l.Width > 0 && prevOK:
			c.DrawLine(px, py, x, y, color)
		default:
			c.Set(x, y, color)
		}
		px, py, prevOK = x, y, true
	}
}

// colorize renders the canvas rows, grouping runs of cells with the same
// color into one styled span.
func colorize(c *Canvas) string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Colors[row][col] == c.Colors[row][start] {
				continue
			}
			span := string(c.Grid[row][start:col])
			if color := c.Colors[row][start]; color != "" {
				span = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(span)
			}
			b.WriteString(span)
			start = col
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
