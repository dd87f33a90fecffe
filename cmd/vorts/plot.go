package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/vorts/internal/export"
	"github.com/san-kum/vorts/internal/plot"
	"github.com/san-kum/vorts/internal/storage"
	"github.com/san-kum/vorts/internal/viz"
)

// parseSets turns key=value pairs into an option map. Values are read as
// yaml, so "0.05" is a number, "[1, 2]" a list and "null" a nil.
func parseSets(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: want key=value", pair)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("--set %s: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}

// outputFormat picks the format from --format, then the output extension,
// then the config.
func outputFormat(cmd *cobra.Command, out, fallback string) (export.Format, error) {
	if cmd.Flags().Changed("format") {
		return export.ParseFormat(format)
	}
	def, err := export.ParseFormat(fallback)
	if err != nil {
		return "", fmt.Errorf("config format: %w", err)
	}
	if out == "" || out == "-" {
		return def, nil
	}
	return export.FormatFromPath(out, def), nil
}

func extension(f export.Format) string {
	switch f {
	case export.FormatPNG, export.FormatChartPNG:
		return ".png"
	case export.FormatSVG, export.FormatChartSVG:
		return ".svg"
	}
	return ".txt"
}

// writePlot renders fig in full before touching path, so a failed render
// leaves no file behind. An empty path or "-" writes to stdout.
func writePlot(path string, fig *plot.Figure, f export.Format, opts export.Options) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, fig, f, opts); err != nil {
		return err
	}
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func plotRun(cmd *cobra.Command, args []string) error {
	kind, runID := args[0], args[1]

	overrides, err := parseSets(sets)
	if err != nil {
		return err
	}
	opts, err := cfg.PlotOptions(kind, preset, overrides)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	log.Debug("rendering", "kind", kind, "run", runID, "options", opts)
	fig, ax, err := viz.NewRegistry().Render(kind, h, opts)
	if err != nil {
		return err
	}

	switch {
	case noFrame:
		err = plot.RemoveFrame(ax)
	case frameOnly:
		err = plot.FrameOnly(ax)
	}
	if err != nil {
		return err
	}

	f, err := outputFormat(cmd, outPath, cfg.Format)
	if err != nil {
		return err
	}

	out := outPath
	if out == "" && f != export.FormatTerm {
		out = runID + "_" + kind + extension(f)
	}

	exportOpts := export.Options{Terminal: export.TerminalOptions{
		Columns: columns,
		Rows:    rows,
		Theme:   export.GetTheme(cfg.Theme),
	}}
	if err := writePlot(out, fig, f, exportOpts); err != nil {
		return err
	}

	if out != "" && out != "-" {
		log.Info("plot written", "kind", kind, "run", runID, "format", f, "path", out, "lines", len(ax.Lines))
	}
	return nil
}
