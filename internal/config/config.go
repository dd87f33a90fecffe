package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir = "runs"
	DefaultFormat  = "svg"
	DefaultTheme   = "paper"
	DefaultWidth   = 6.4
	DefaultHeight  = 4.8
	DefaultDPI     = 100.0
	DefaultXTol    = 1e-2
)

type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Format   string         `yaml:"format"`
	Theme    string         `yaml:"theme"`
	Figure   FigureConfig   `yaml:"figure"`
	Poincare PoincareConfig `yaml:"poincare"`
	// Presets holds user presets by plot kind, then by name. They take
	// precedence over the built-in ones.
	Presets map[string]map[string]map[string]any `yaml:"presets,omitempty"`
}

type FigureConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	DPI    float64 `yaml:"dpi"`
}

type PoincareConfig struct {
	Ref  int     `yaml:"iv_ref"`
	XTol float64 `yaml:"xtol"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Format:  DefaultFormat,
		Theme:   DefaultTheme,
		Figure: FigureConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			DPI:    DefaultDPI,
		},
		Poincare: PoincareConfig{
			XTol: DefaultXTol,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Preset returns a copy of the named preset for kind, looking at the user
// presets first. It returns nil when neither has it.
func (c *Config) Preset(kind, name string) map[string]any {
	if p, ok := c.Presets[kind][name]; ok {
		return MergeOptions(p)
	}
	return GetPreset(kind, name)
}

// PresetNames lists the user and built-in presets of kind, sorted.
func (c *Config) PresetNames(kind string) []string {
	seen := make(map[string]bool)
	for name := range c.Presets[kind] {
		seen[name] = true
	}
	for _, name := range ListPresets(kind) {
		seen[name] = true
	}
	return sortedKeys(seen)
}

// PlotOptions builds the flat option map for one plot: the configured figure
// size and dpi, the configured recurrence settings for the Poincaré kinds,
// then the preset, then overrides. Later layers win.
func (c *Config) PlotOptions(kind, preset string, overrides map[string]any) (map[string]any, error) {
	base := map[string]any{}
	if c.Figure.Width > 0 && c.Figure.Height > 0 {
		base["figsize"] = []float64{c.Figure.Width, c.Figure.Height}
	}
	if c.Figure.DPI > 0 {
		base["dpi"] = c.Figure.DPI
	}
	if kind == "ps" || kind == "poincare" {
		base["xtol"] = c.Poincare.XTol
		base["iv_ref"] = c.Poincare.Ref
	}

	var p map[string]any
	if preset != "" {
		p = c.Preset(kind, preset)
		if p == nil {
			return nil, fmt.Errorf("%w: %s has no preset %q", ErrUnknownPreset, kind, preset)
		}
	}
	return MergeOptions(base, p, overrides), nil
}
