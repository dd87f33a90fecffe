// Package export writes figures out: hand-written SVG, go-chart PNG and
// SVG, gg raster PNG, and braille text for the terminal.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/san-kum/vorts/internal/plot"
)

var (
	ErrUnknownFormat = errors.New("export: unknown format")
	ErrEmptyFigure   = errors.New("export: figure has no axes")
)

// Format names an output backend.
type Format string

const (
	FormatSVG      Format = "svg"
	FormatPNG      Format = "png"
	FormatChartPNG Format = "chart-png"
	FormatChartSVG Format = "chart-svg"
	FormatTerm     Format = "term"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatSVG, FormatPNG, FormatChartPNG, FormatChartSVG, FormatTerm}
}

// ParseFormat matches s case-insensitively against the known formats.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from a file extension; fallback is
// returned for anything but .svg and .png.
func FormatFromPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG
	case ".png":
		return FormatPNG
	}
	return fallback
}

// Options carries backend specific settings.
type Options struct {
	Terminal TerminalOptions
}

// Write renders fig to w in the given format.
func Write(w io.Writer, fig *plot.Figure, format Format, opts Options) error {
	switch format {
	case FormatSVG:
		return WriteSVG(w, fig)
	case FormatPNG:
		return WriteRaster(w, fig)
	case FormatChartPNG, FormatChartSVG:
		return WriteChart(w, fig, format)
	case FormatTerm:
		s, err := RenderTerminal(fig, opts.Terminal)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s+"\n")
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
