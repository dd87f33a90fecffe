package viz

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/vorts/internal/history"
	"github.com/san-kum/vorts/internal/plot"
)

// ErrUnknownKind is returned for a plot kind that is not registered.
var ErrUnknownKind = errors.New("viz: unknown plot kind")

// Renderer draws one plot kind from a flat option map.
type Renderer func(h *history.History, opts map[string]any) (*plot.Figure, *plot.Axes, error)

type entry struct {
	doc    string
	render Renderer
}

// Registry maps plot kind names to renderers.
type Registry struct {
	kinds map[string]entry
}

// NewRegistry returns a registry with the built-in kinds:
// vortons, tracers, ps and poincare.
func NewRegistry() *Registry {
	r := &Registry{kinds: make(map[string]entry)}

	r.Register("vortons", "vorton trajectories with start markers", func(h *history.History, opts map[string]any) (*plot.Figure, *plot.Axes, error) {
		fo, err := ParseFigureOptions(opts)
		if err != nil {
			return nil, nil, err
		}
		return VortonTrajectories(h, fo)
	})
	r.Register("tracers", "tracer trajectories in gray", func(h *history.History, opts map[string]any) (*plot.Figure, *plot.Axes, error) {
		fo, err := ParseFigureOptions(opts)
		if err != nil {
			return nil, nil, err
		}
		return TracerTrajectories(h, fo)
	})
	r.Register("ps", "Poincaré section of the tracers (xtol, iv_ref)", func(h *history.History, opts map[string]any) (*plot.Figure, *plot.Axes, error) {
		cfg, err := ParsePoincareOptions(opts)
		if err != nil {
			return nil, nil, err
		}
		return PoincareSection(h, cfg)
	})
	r.Register("poincare", "Poincaré map with ms, alpha, c cycling by vorton or time", func(h *history.History, opts map[string]any) (*plot.Figure, *plot.Axes, error) {
		cfg, err := ParseStyledOptions(opts)
		if err != nil {
			return nil, nil, err
		}
		return PoincareStyled(h, cfg)
	})

	return r
}

// Register adds or replaces a plot kind.
func (r *Registry) Register(name, doc string, fn Renderer) {
	r.kinds[name] = entry{doc: doc, render: fn}
}

// Render draws the named kind.
func (r *Registry) Render(kind string, h *history.History, opts map[string]any) (*plot.Figure, *plot.Axes, error) {
	e, ok := r.kinds[kind]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return e.render(h, opts)
}

// Kinds lists registered kinds in name order.
func (r *Registry) Kinds() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Doc returns the one-line description of a kind.
func (r *Registry) Doc(kind string) string {
	return r.kinds[kind].doc
}
