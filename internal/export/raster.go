package export

import (
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/vorts/internal/plot"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func loadFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// WriteRaster rasterizes fig with gg and encodes it as PNG.
func WriteRaster(w io.Writer, fig *plot.Figure) error {
	if fig == nil || len(fig.Axes) == 0 {
		return ErrEmptyFigure
	}
	src, err := loadFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	wpx, hpx := fig.Pixels()
	dc := gg.NewContext(wpx, hpx)
	defer dc.Close()

	fc := fig.FaceColor.Clamped()
	dc.ClearWithColor(gg.RGBA{R: fc.R, G: fc.G, B: fc.B, A: 1})
	dc.SetFont(src.Face(fig.PointsToPixels(plot.FontSize)))

	for _, p := range plot.Layout(fig) {
		if err := rasterPanel(dc, fig, p); err != nil {
			return err
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func rasterPanel(dc *gg.Context, fig *plot.Figure, p plot.Panel) error {
	b := p.Box

	dc.ClipRect(b.X, b.Y, b.W, b.H)
	for _, l := range p.Axes.Lines {
		if !visible(l) {
			continue
		}
		if err := rasterLine(dc, fig, p, l); err != nil {
			dc.ResetClip()
			return err
		}
	}
	dc.ResetClip()

	dc.SetRGBA(0, 0, 0, 1)
	dc.SetLineWidth(fig.PointsToPixels(spineWidth))
	if p.Axes.FrameOn {
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke spines: %w", err)
		}
	}

	marks, labels := decorations(fig, p)
	for _, m := range marks {
		dc.DrawLine(m.X1, m.Y1, m.X2, m.Y2)
	}
	if len(marks) > 0 {
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke ticks: %w", err)
		}
	}

	// gg draws text unrotated, so vertical labels are centred horizontally
	// at their anchor.
	for _, t := range labels {
		dc.DrawStringAnchored(t.Text, t.X, t.Y, t.AX, t.AY)
	}
	return nil
}

func rasterLine(dc *gg.Context, fig *plot.Figure, p plot.Panel, l *plot.Line) error {
	c := l.Color.Clamped()
	dc.SetRGBA(c.R, c.G, c.B, l.Alpha)

	if l.Solid && l.Width > 0 && len(l.X) > 1 {
		dc.SetLineWidth(fig.PointsToPixels(l.Width))
		pen := false
		for i := range l.X {
			if !finite(l.X[i], l.Y[i]) {
				pen = false
				continue
			}
			x, y := p.Map(l.X[i], l.Y[i])
			if pen {
				dc.LineTo(x, y)
			} else {
				dc.MoveTo(x, y)
				pen = true
			}
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke %q: %w", l.Label, err)
		}
	}

	if l.Marker == plot.MarkerNone || l.MarkerSize <= 0 {
		return nil
	}
	r := fig.MarkerRadius(l)
	for i := range l.X {
		if !finite(l.X[i], l.Y[i]) {
			continue
		}
		x, y := p.Map(l.X[i], l.Y[i])
		dc.DrawCircle(x, y, r)
	}
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill %q markers: %w", l.Label, err)
	}
	return nil
}
