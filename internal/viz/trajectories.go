package viz

import (
	"fmt"

	"github.com/san-kum/vorts/internal/history"
	"github.com/san-kum/vorts/internal/plot"
)

// Line styling shared by the trajectory plots.
const (
	trajectoryWidth = 0.5
	trajectoryAlpha = 0.5
	tracerGray      = 0.5
)

func decorate(ax *plot.Axes, title string) {
	ax.SetXLabel("x")
	ax.SetYLabel("y")
	ax.SetTitle(title)
	ax.SetAspect(plot.AspectEqual)
}

func pointLabel(kind history.PointKind, label int) string {
	return fmt.Sprintf("%s %d", kind, label)
}

// VortonTrajectories draws one line per vorton in index order, colored from
// the Tab10New cycle, with a filled circle at its starting position in the
// same color.
func VortonTrajectories(h *history.History, opts plot.FigureOptions) (*plot.Figure, *plot.Axes, error) {
	v, err := h.SelectKind(history.Vorton)
	if err != nil {
		return nil, nil, fmt.Errorf("select vortons: %w", err)
	}

	fig, ax, err := plot.Subplots(opts)
	if err != nil {
		return nil, nil, err
	}
	ax.SetColorCycle(plot.Tab10New)

	for iv := 0; iv < v.NV(); iv++ {
		xs, ys, err := v.Trajectory(iv)
		if err != nil {
			return nil, nil, err
		}
		name := pointLabel(history.Vorton, v.Labels[iv])
		l := ax.Plot(xs, ys,
			plot.WithWidth(trajectoryWidth),
			plot.WithAlpha(trajectoryAlpha),
			plot.WithLabel(name),
		)

		// starting position
		n := min(1, len(xs))
		ax.Plot(xs[:n], ys[:n],
			plot.NoLine(),
			plot.WithMarker(plot.MarkerCircle),
			plot.WithColor(l.Color),
			plot.WithLabel(name+" start"),
		)
	}

	decorate(ax, "Vortons")
	fig.TightLayout()
	return fig, ax, nil
}

// TracerTrajectories draws every tracer path in one uniform gray.
func TracerTrajectories(h *history.History, opts plot.FigureOptions) (*plot.Figure, *plot.Axes, error) {
	tr, err := h.SelectKind(history.Tracer)
	if err != nil {
		return nil, nil, fmt.Errorf("select tracers: %w", err)
	}

	fig, ax, err := plot.Subplots(opts)
	if err != nil {
		return nil, nil, err
	}

	gray := plot.Gray(tracerGray)
	for iv := 0; iv < tr.NV(); iv++ {
		xs, ys, err := tr.Trajectory(iv)
		if err != nil {
			return nil, nil, err
		}
		ax.Plot(xs, ys,
			plot.WithColor(gray),
			plot.WithWidth(trajectoryWidth),
			plot.WithAlpha(trajectoryAlpha),
			plot.WithLabel(pointLabel(history.Tracer, tr.Labels[iv])),
		)
	}

	decorate(ax, "Tracers")
	fig.TightLayout()
	return fig, ax, nil
}
