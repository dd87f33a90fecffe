package viz

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/san-kum/vorts/internal/plot"
	"github.com/san-kum/vorts/internal/poincare"
)

// Keys of a flat option map that belong to the recurrence filter rather than
// to figure creation.
var sectionKeys = []string{"xtol", "iv_ref"}

// Keys consumed by the styled Poincaré map.
var styleKeys = []string{"ms", "alpha", "c", "cycle_by", "title"}

// PoincareConfig splits the Poincaré renderer's settings by destination.
type PoincareConfig struct {
	// Ref is the index of the reference vorton.
	Ref     int
	Section poincare.Options
	Figure  plot.FigureOptions
}

// DefaultPoincareConfig uses point 0 and the default tolerance.
func DefaultPoincareConfig() PoincareConfig {
	return PoincareConfig{Section: poincare.DefaultOptions()}
}

// CycleBy selects what the styled Poincaré map cycles marker properties over.
type CycleBy string

const (
	CycleByVorton CycleBy = "vorton"
	CycleByTime   CycleBy = "time"
)

// StyledConfig adds per-line property cycling to a PoincareConfig.
// Empty slices mean the plain Poincaré defaults.
type StyledConfig struct {
	PoincareConfig
	MarkerSizes []float64
	Alphas      []float64
	Colors      []string
	CycleBy     CycleBy
	// Title overrides the default title; a pointer to "" hides it.
	Title *string
}

func DefaultStyledConfig() StyledConfig {
	return StyledConfig{PoincareConfig: DefaultPoincareConfig(), CycleBy: CycleByVorton}
}

type sectionFields struct {
	XTol *float64 `mapstructure:"xtol"`
	Ref  *int     `mapstructure:"iv_ref"`
}

type styleFields struct {
	MarkerSizes []float64 `mapstructure:"ms"`
	Alphas      []float64 `mapstructure:"alpha"`
	Colors      []string  `mapstructure:"c"`
	CycleBy     string    `mapstructure:"cycle_by"`
}

// split moves the listed keys of opts into a new map and returns both parts;
// opts is not modified.
func split(opts map[string]any, keys []string) (picked, rest map[string]any) {
	picked = make(map[string]any)
	rest = make(map[string]any, len(opts))
	for k, v := range opts {
		rest[k] = v
	}
	for _, k := range keys {
		if v, ok := rest[k]; ok {
			picked[k] = v
			delete(rest, k)
		}
	}
	return picked, rest
}

func decode(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// ParseFigureOptions decodes a flat map that goes entirely to figure
// creation. Unknown keys are an error.
func ParseFigureOptions(opts map[string]any) (plot.FigureOptions, error) {
	var fo plot.FigureOptions
	if err := decode(opts, &fo); err != nil {
		return plot.FigureOptions{}, fmt.Errorf("figure options: %w", err)
	}
	return fo, nil
}

// ParsePoincareOptions routes "xtol" and "iv_ref" to the recurrence filter
// and every other key to figure creation.
func ParsePoincareOptions(opts map[string]any) (PoincareConfig, error) {
	cfg := DefaultPoincareConfig()
	picked, rest := split(opts, sectionKeys)

	var sf sectionFields
	if err := decode(picked, &sf); err != nil {
		return cfg, fmt.Errorf("section options: %w", err)
	}
	if sf.XTol != nil {
		cfg.Section.XTol = *sf.XTol
	}
	if sf.Ref != nil {
		cfg.Ref = *sf.Ref
	}

	fo, err := ParseFigureOptions(rest)
	if err != nil {
		return cfg, err
	}
	cfg.Figure = fo
	return cfg, nil
}

// ParseStyledOptions is ParsePoincareOptions plus "ms", "alpha", "c",
// "cycle_by" and "title". Scalars are accepted where lists are expected.
// A nil title hides the title.
func ParseStyledOptions(opts map[string]any) (StyledConfig, error) {
	cfg := DefaultStyledConfig()
	picked, rest := split(opts, styleKeys)

	if v, ok := picked["title"]; ok {
		delete(picked, "title")
		switch t := v.(type) {
		case nil:
			empty := ""
			cfg.Title = &empty
		case string:
			cfg.Title = &t
		default:
			return cfg, fmt.Errorf("style options: title must be a string or null, got %T", v)
		}
	}

	var sf styleFields
	if err := decode(picked, &sf); err != nil {
		return cfg, fmt.Errorf("style options: %w", err)
	}
	cfg.MarkerSizes = sf.MarkerSizes
	cfg.Alphas = sf.Alphas
	cfg.Colors = sf.Colors
	if sf.CycleBy != "" {
		cfg.CycleBy = CycleBy(sf.CycleBy)
	}

	pc, err := ParsePoincareOptions(rest)
	if err != nil {
		return cfg, err
	}
	cfg.PoincareConfig = pc
	return cfg, nil
}
