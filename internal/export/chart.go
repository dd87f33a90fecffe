package export

import (
	"fmt"
	"io"

	colorful "github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/vorts/internal/plot"
)

// Room taken by go-chart around its plotting box, in pixels.
const (
	chartInsetX = 90
	chartInsetY = 70
)

var transparent = drawing.Color{R: 255, G: 255, B: 255, A: 0}

func toDrawing(c colorful.Color, alpha float64) drawing.Color {
	r, g, b := c.Clamped().RGB255()
	return drawing.Color{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

// pointStyle renders markers only, with no connecting line.
func pointStyle(col drawing.Color, radius float64) chart.Style {
	return chart.Style{
		StrokeColor: transparent,
		StrokeWidth: 0,
		DotWidth:    radius,
		DotColor:    col,
	}
}

// WriteChart renders the first axes of fig through go-chart, as PNG or SVG
// depending on format.
func WriteChart(w io.Writer, fig *plot.Figure, format Format) error {
	if fig == nil || len(fig.Axes) == 0 {
		return ErrEmptyFigure
	}
	var provider chart.RendererProvider
	switch format {
	case FormatChartPNG:
		provider = chart.PNG
	case FormatChartSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: %s is not a chart format", ErrUnknownFormat, format)
	}

	ch := buildChart(fig)
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func buildChart(fig *plot.Figure) chart.Chart {
	p := plot.Layout(fig)[0]
	ax := p.Axes
	wpx, hpx := fig.Pixels()

	view := p.View
	if ax.Aspect == plot.AspectEqual {
		// go-chart sizes its own plotting box, so equal aspect widens the
		// data window to its approximate shape instead.
		view = fitRatio(view, float64(wpx-chartInsetX)/float64(hpx-chartInsetY))
	}

	var series []chart.Series
	for _, l := range ax.Lines {
		if !visible(l) {
			continue
		}
		series = append(series, lineSeries(fig, l))
	}
	if len(series) == 0 {
		// go-chart refuses to draw without a series
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{view.XMin, view.XMax},
			YValues: []float64{view.YMin, view.YMax},
			Style:   chart.Style{StrokeColor: transparent, StrokeWidth: 1},
		})
	}

	fs := plot.FontSize
	hidden := !ax.FrameOn && !ax.Ticks.Any()
	xAxis := chart.XAxis{
		Name:  ax.XLabel,
		Style: chart.Style{Hidden: hidden, FontSize: fs},
		Range: &chart.ContinuousRange{Min: view.XMin, Max: view.XMax},
		Ticks: chartTicks(view.XMin, view.XMax, ax.Ticks.LabelBottom || ax.Ticks.LabelTop),
	}
	yAxis := chart.YAxis{
		Name:  ax.YLabel,
		Style: chart.Style{Hidden: hidden, FontSize: fs},
		Range: &chart.ContinuousRange{Min: view.YMin, Max: view.YMax},
		Ticks: chartTicks(view.YMin, view.YMax, ax.Ticks.LabelLeft || ax.Ticks.LabelRight),
	}
	if ax.Ticks.LabelLeft || ax.Ticks.Left {
		// primary axes sit on the right by default
		yAxis.AxisType = chart.YAxisSecondary
	}

	return chart.Chart{
		Title:      ax.Title,
		TitleStyle: chart.Style{Hidden: ax.Title == "", FontSize: fs + 2},
		Width:      wpx,
		Height:     hpx,
		DPI:        fig.DPI,
		Background: chart.Style{
			FillColor: toDrawing(fig.FaceColor, 1),
			Padding:   chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 8},
		},
		Canvas: chart.Style{FillColor: toDrawing(fig.FaceColor, 1)},
		XAxis:  xAxis,
		YAxis:  yAxis,
		Series: series,
	}
}

func lineSeries(fig *plot.Figure, l *plot.Line) chart.ContinuousSeries {
	col := toDrawing(l.Color, l.Alpha)
	st := chart.Style{StrokeColor: transparent, StrokeWidth: 0}
	if l.Marker != plot.MarkerNone && l.MarkerSize > 0 {
		st = pointStyle(col, fig.MarkerRadius(l))
	}
	if l.Solid && l.Width > 0 {
		st.StrokeColor = col
		st.StrokeWidth = fig.PointsToPixels(l.Width)
	}

	xs, ys := l.X, l.Y
	if len(xs) == 1 {
		// a one-point series has no x range of its own
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}
	return chart.ContinuousSeries{Name: l.Label, XValues: xs, YValues: ys, Style: st}
}

// chartTicks returns nice ticks for [lo, hi]; without labels the ticks keep
// only the range ends with empty text so that no numbers are printed.
func chartTicks(lo, hi float64, labeled bool) []chart.Tick {
	if !labeled {
		return []chart.Tick{{Value: lo, Label: ""}, {Value: hi, Label: ""}}
	}
	vals := plot.NiceTicks(lo, hi, tickTarget)
	ticks := make([]chart.Tick, 0, len(vals))
	for _, v := range vals {
		ticks = append(ticks, chart.Tick{Value: v, Label: plot.FormatTick(v)})
	}
	if len(ticks) < 2 {
		return []chart.Tick{{Value: lo, Label: plot.FormatTick(lo)}, {Value: hi, Label: plot.FormatTick(hi)}}
	}
	return ticks
}

// fitRatio widens one side of b around its centre until its width over
// height equals wOverH.
func fitRatio(b plot.Bounds, wOverH float64) plot.Bounds {
	if wOverH <= 0 || b.Width() <= 0 || b.Height() <= 0 {
		return b
	}
	if b.Width()/b.Height() < wOverH {
		w := b.Height() * wOverH
		c := (b.XMin + b.XMax) / 2
		b.XMin, b.XMax = c-w/2, c+w/2
	} else {
		h := b.Width() / wOverH
		c := (b.YMin + b.YMax) / 2
		b.YMin, b.YMax = c-h/2, c+h/2
	}
	return b
}
