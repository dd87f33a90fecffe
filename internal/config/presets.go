package config

import (
	"errors"
	"sort"

	"github.com/san-kum/vorts/internal/plot"
)

// ErrUnknownPreset is returned when a plot kind has no preset by that name.
var ErrUnknownPreset = errors.New("config: unknown preset")

var rainbow30 = func() []string {
	colors := plot.Rainbow(30)
	hex := make([]string, len(colors))
	for i, c := range colors {
		hex[i] = c.Hex()
	}
	return hex
}()

// Presets are the built-in option sets by plot kind, then by name.
var Presets = map[string]map[string]map[string]any{
	"poincare": {
		"gray": {
			"figsize": []float64{6, 6}, "xtol": 0.02, "title": nil,
			"ms": 2.0,
		},
		"color": {
			"figsize": []float64{6, 6}, "xtol": 0.02, "title": nil,
			"ms": 2.5, "alpha": 0.8, "c": []string{"g", "b"},
		},
		"rainbow-vorton": {
			"figsize": []float64{6, 6}, "xtol": 0.02, "title": nil,
			"ms": []float64{1, 2, 4}, "alpha": []float64{0.6, 0.85}, "c": rainbow30,
			"cycle_by": "vorton",
		},
		"rainbow-time": {
			"figsize": []float64{6, 6}, "xtol": 0.02, "title": nil,
			"ms": []float64{1, 2, 4}, "alpha": []float64{0.6, 0.85}, "c": rainbow30,
			"cycle_by": "time",
		},
	},
	"ps": {
		"square": {"figsize": []float64{6, 6}, "xtol": 0.02},
		"loose":  {"figsize": []float64{6, 6}, "xtol": 0.05},
	},
	"vortons": {
		"square": {"figsize": []float64{6, 6}},
	},
	"tracers": {
		"square": {"figsize": []float64{6, 6}},
	},
}

// GetPreset returns a copy of a built-in preset, or nil.
func GetPreset(kind, name string) map[string]any {
	if kindPresets, ok := Presets[kind]; ok {
		if p, ok := kindPresets[name]; ok {
			return MergeOptions(p)
		}
	}
	return nil
}

// ListPresets returns the built-in preset names of kind, sorted, or nil for
// an unknown kind.
func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(kindPresets))
	for name := range kindPresets {
		seen[name] = true
	}
	return sortedKeys(seen)
}

// MergeOptions layers option maps left to right into a new map; later maps
// win key by key. nil maps are skipped and no input is modified.
func MergeOptions(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
