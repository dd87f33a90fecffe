package export

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/san-kum/vorts/internal/plot"
)

// WriteSVG writes fig as a standalone SVG document.
func WriteSVG(w io.Writer, fig *plot.Figure) error {
	if fig == nil || len(fig.Axes) == 0 {
		return ErrEmptyFigure
	}
	wpx, hpx := fig.Pixels()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="%s"/>
`, wpx, hpx, wpx, hpx, fig.FaceColor.Hex()))

	for i, p := range plot.Layout(fig) {
		svgPanel(&sb, fig, p, i)
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func svgPanel(sb *strings.Builder, fig *plot.Figure, p plot.Panel, idx int) {
	b := p.Box
	sb.WriteString(fmt.Sprintf(`<clipPath id="axes%d"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>
<g clip-path="url(#axes%d)">
`, idx, b.X, b.Y, b.W, b.H, idx))
	for _, l := range p.Axes.Lines {
		if visible(l) {
			svgLine(sb, fig, p, l)
		}
	}
	sb.WriteString("</g>\n")

	if p.Axes.FrameOn {
		sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#000000" stroke-width="%.2f"/>
`, b.X, b.Y, b.W, b.H, fig.PointsToPixels(spineWidth)))
	}

	marks, labels := decorations(fig, p)
	if len(marks) > 0 {
		sb.WriteString(fmt.Sprintf(`<g stroke="#000000" stroke-width="%.2f">
`, fig.PointsToPixels(spineWidth)))
		for _, m := range marks {
			sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, m.X1, m.Y1, m.X2, m.Y2))
		}
		sb.WriteString("</g>\n")
	}

	fs := fig.PointsToPixels(plot.FontSize)
	for _, t := range labels {
		transform := ""
		if t.Vertical {
			transform = fmt.Sprintf(` transform="rotate(-90 %.2f %.2f)"`, t.X, t.Y)
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" font-size="%.2f" text-anchor="%s" dominant-baseline="%s"%s>%s</text>
`, t.X, t.Y, fs, textAnchor(t.AX), baseline(t.AY), transform, html.EscapeString(t.Text)))
	}
}

func svgLine(sb *strings.Builder, fig *plot.Figure, p plot.Panel, l *plot.Line) {
	color := l.Color.Clamped().Hex()

	if l.Solid && l.Width > 0 && len(l.X) > 1 {
		// a point that is not finite breaks the line
		var run []string
		flush := func() {
			if len(run) > 1 {
				sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-opacity="%.3g" stroke-width="%.2f" stroke-linejoin="round"/>
`, strings.Join(run, " "), color, l.Alpha, fig.PointsToPixels(l.Width)))
			}
			run = run[:0]
		}
		for i := range l.X {
			if !finite(l.X[i], l.Y[i]) {
				flush()
				continue
			}
			x, y := p.Map(l.X[i], l.Y[i])
			run = append(run, fmt.Sprintf("%.2f,%.2f", x, y))
		}
		flush()
	}

	if l.Marker == plot.MarkerNone || l.MarkerSize <= 0 {
		return
	}
	r := fig.MarkerRadius(l)
	edge := ""
	if l.MarkerEdgeWidth > 0 {
		edge = fmt.Sprintf(` stroke="%s" stroke-opacity="%.3g" stroke-width="%.2f"`, color, l.Alpha, fig.PointsToPixels(l.MarkerEdgeWidth))
	}
	sb.WriteString(fmt.Sprintf(`<g fill="%s" fill-opacity="%.3g"%s>
`, color, l.Alpha, edge))
	for i := range l.X {
		if !finite(l.X[i], l.Y[i]) {
			continue
		}
		x, y := p.Map(l.X[i], l.Y[i])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.3f"/>
`, x, y, r))
	}
	sb.WriteString("</g>\n")
}

func textAnchor(ax float64) string {
	switch {
	case ax < 0.25:
		return "start"
	case ax > 0.75:
		return "end"
	}
	return "middle"
}

func baseline(ay float64) string {
	switch {
	case ay < 0.25:
		return "auto"
	case ay > 0.75:
		return "hanging"
	}
	return "central"
}

func finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}
