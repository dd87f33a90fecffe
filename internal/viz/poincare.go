package viz

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/vorts/internal/history"
	"github.com/san-kum/vorts/internal/plot"
	"github.com/san-kum/vorts/internal/poincare"
)

// PoincareTitle is the default title of both Poincaré plots.
const PoincareTitle = "Poincaré map (tracers)"

// Marker styling of the plain Poincaré map.
const (
	sectionGray       = 0.35
	sectionMarkerSize = 0.2
	sectionAlpha      = 0.5
)

// sectionTracers applies the recurrence filter and keeps only the tracers.
func sectionTracers(h *history.History, cfg PoincareConfig) (*history.History, error) {
	sec, err := poincare.Section(h, cfg.Ref, cfg.Section)
	if err != nil {
		return nil, fmt.Errorf("poincare section: %w", err)
	}
	tr, err := sec.SelectKind(history.Tracer)
	if err != nil {
		return nil, fmt.Errorf("select tracers: %w", err)
	}
	return tr, nil
}

// PoincareSection scatters every tracer position at the recurrence times of
// the reference vorton as small gray dots. No recurrence yields an empty
// plot.
func PoincareSection(h *history.History, cfg PoincareConfig) (*plot.Figure, *plot.Axes, error) {
	tr, err := sectionTracers(h, cfg)
	if err != nil {
		return nil, nil, err
	}

	fig, ax, err := plot.Subplots(cfg.Figure)
	if err != nil {
		return nil, nil, err
	}

	gray := plot.Gray(sectionGray)
	for iv := 0; iv < tr.NV(); iv++ {
		xs, ys, err := tr.Trajectory(iv)
		if err != nil {
			return nil, nil, err
		}
		ax.Plot(xs, ys,
			plot.NoLine(),
			plot.WithMarker(plot.MarkerPoint),
			plot.WithColor(gray),
			plot.WithMarkerSize(sectionMarkerSize),
			plot.WithAlpha(sectionAlpha),
			plot.WithMarkerEdgeWidth(0),
			plot.WithLabel(pointLabel(history.Tracer, tr.Labels[iv])),
		)
	}

	decorate(ax, PoincareTitle)
	fig.TightLayout()
	return fig, ax, nil
}

type markerStyle struct {
	colors []colorful.Color
	sizes  []float64
	alphas []float64
}

func (s markerStyle) at(i int) (colorful.Color, float64, float64) {
	return s.colors[i%len(s.colors)], s.sizes[i%len(s.sizes)], s.alphas[i%len(s.alphas)]
}

func newMarkerStyle(cfg StyledConfig) (markerStyle, error) {
	s := markerStyle{
		colors: []colorful.Color{plot.Gray(sectionGray)},
		sizes:  []float64{sectionMarkerSize},
		alphas: []float64{sectionAlpha},
	}
	if len(cfg.Colors) > 0 {
		colors, err := plot.ParsePalette(cfg.Colors)
		if err != nil {
			return s, err
		}
		s.colors = colors
	}
	if len(cfg.MarkerSizes) > 0 {
		s.sizes = cfg.MarkerSizes
	}
	if len(cfg.Alphas) > 0 {
		s.alphas = cfg.Alphas
	}
	return s, nil
}

// PoincareStyled is the Poincaré map with marker color, size and alpha
// cycled per line. With CycleByVorton there is one line per tracer, with
// CycleByTime one line per section time; line i takes entry i modulo the
// length of each list.
func PoincareStyled(h *history.History, cfg StyledConfig) (*plot.Figure, *plot.Axes, error) {
	style, err := newMarkerStyle(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CycleBy == "" {
		cfg.CycleBy = CycleByVorton
	}
	if cfg.CycleBy != CycleByVorton && cfg.CycleBy != CycleByTime {
		return nil, nil, fmt.Errorf("viz: cycle_by must be %q or %q, got %q", CycleByVorton, CycleByTime, cfg.CycleBy)
	}

	tr, err := sectionTracers(h, cfg.PoincareConfig)
	if err != nil {
		return nil, nil, err
	}

	fig, ax, err := plot.Subplots(cfg.Figure)
	if err != nil {
		return nil, nil, err
	}

	draw := func(i int, xs, ys []float64, label string) {
		c, ms, alpha := style.at(i)
		ax.Plot(xs, ys,
			plot.NoLine(),
			plot.WithMarker(plot.MarkerPoint),
			plot.WithColor(c),
			plot.WithMarkerSize(ms),
			plot.WithAlpha(alpha),
			plot.WithMarkerEdgeWidth(0),
			plot.WithLabel(label),
		)
	}

	switch cfg.CycleBy {
	case CycleByVorton:
		for iv := 0; iv < tr.NV(); iv++ {
			xs, ys, err := tr.Trajectory(iv)
			if err != nil {
				return nil, nil, err
			}
			draw(iv, xs, ys, pointLabel(history.Tracer, tr.Labels[iv]))
		}
	case CycleByTime:
		for it := 0; it < tr.NT(); it++ {
			draw(it, tr.X[it], tr.Y[it], fmt.Sprintf("t=%g", tr.Times[it]))
		}
	}

	decorate(ax, PoincareTitle)
	if cfg.Title != nil {
		ax.SetTitle(*cfg.Title)
	}
	fig.TightLayout()
	return fig, ax, nil
}
