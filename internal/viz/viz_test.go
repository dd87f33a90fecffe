package viz_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vorts/internal/history"
	"github.com/san-kum/vorts/internal/plot"
	"github.com/san-kum/vorts/internal/viz"
)

// threePoints is G=[1,-1,0] over 5 steps. Point 0 starts at (0, 1) and is
// back near x=0 with y>0 at step 4 (off by 0.03); point 2 is a tracer.
func threePoints() *history.History {
	h, err := history.New(
		[]float64{0, 1, 2, 3, 4},
		[]int{0, 1, 2},
		[]float64{1, -1, 0},
		[][]float64{
			{0, 1, 2},
			{1, 0, 2.1},
			{0, -1, 2.2},
			{-1, 0, 2.3},
			{0.03, 1, 2.4},
		},
		[][]float64{
			{1, 0, 0.5},
			{0, 1, 0.6},
			{-1, 0, 0.7},
			{0, -1, 0.8},
			{1, 0, 0.9},
		},
	)
	Expect(err).NotTo(HaveOccurred())
	return h
}

// ring has n vortons on a circle and two tracers.
func ring(n, nt int) *history.History {
	labels := make([]int, n+2)
	g := make([]float64, n+2)
	for i := range labels {
		labels[i] = i
		if i < n {
			g[i] = 1
		}
	}
	times := make([]float64, nt)
	x := make([][]float64, nt)
	y := make([][]float64, nt)
	for it := range times {
		times[it] = float64(it) * 0.1
		x[it] = make([]float64, n+2)
		y[it] = make([]float64, n+2)
		for iv := range labels {
			a := 2*math.Pi*float64(iv)/float64(n+2) + times[it]
			x[it][iv] = math.Cos(a)
			y[it][iv] = math.Sin(a)
		}
	}
	h, err := history.New(times, labels, g, x, y)
	Expect(err).NotTo(HaveOccurred())
	return h
}

var _ = Describe("VortonTrajectories", func() {
	It("draws a line and a start marker per vorton in palette order", func() {
		fig, ax, err := viz.VortonTrajectories(threePoints(), plot.FigureOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fig.Axes).To(ConsistOf(ax))
		Expect(ax.Lines).To(HaveLen(4))

		for i := 0; i < 2; i++ {
			line, marker := ax.Lines[2*i], ax.Lines[2*i+1]
			Expect(line.Solid).To(BeTrue())
			Expect(line.Width).To(Equal(0.5))
			Expect(line.Alpha).To(Equal(0.5))
			Expect(line.X).To(HaveLen(5))
			Expect(line.Color).To(Equal(plot.Tab10New[i]))

			Expect(marker.Solid).To(BeFalse())
			Expect(marker.Marker).To(Equal(plot.MarkerCircle))
			Expect(marker.Color).To(Equal(line.Color))
			Expect(marker.X).To(Equal(line.X[:1]))
			Expect(marker.Y).To(Equal(line.Y[:1]))
		}

		Expect(ax.Title).To(Equal("Vortons"))
		Expect(ax.XLabel).To(Equal("x"))
		Expect(ax.YLabel).To(Equal("y"))
		Expect(ax.Aspect).To(Equal(plot.AspectEqual))
		Expect(fig.Tight).To(BeTrue())
	})

	It("reuses the palette cyclically after ten vortons", func() {
		_, ax, err := viz.VortonTrajectories(ring(13, 4), plot.FigureOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(ax.Lines).To(HaveLen(26))
		for i := 0; i < 13; i++ {
			Expect(ax.Lines[2*i].Color).To(Equal(plot.Tab10New[i%10]))
			Expect(ax.Lines[2*i+1].Color).To(Equal(plot.Tab10New[i%10]))
		}
	})

	It("forwards figure options", func() {
		fig, _, err := viz.VortonTrajectories(threePoints(), plot.FigureOptions{Size: [2]float64{6, 6}, DPI: 72})
		Expect(err).NotTo(HaveOccurred())
		Expect(fig.Width).To(Equal(6.0))
		Expect(fig.DPI).To(Equal(72.0))
	})

	It("does not modify the history", func() {
		h := threePoints()
		_, _, err := viz.VortonTrajectories(h, plot.FigureOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(h.NV()).To(Equal(3))
		Expect(h.X[1]).To(Equal([]float64{1, 0, 2.1}))
	})

	It("fails when G is missing", func() {
		h := threePoints()
		h.G = nil
		_, _, err := viz.VortonTrajectories(h, plot.FigureOptions{})
		Expect(err).To(MatchError(history.ErrMissingField))
	})
})

var _ = Describe("TracerTrajectories", func() {
	It("draws only the tracer in uniform gray", func() {
		_, ax, err := viz.TracerTrajectories(threePoints(), plot.FigureOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(ax.Lines).To(HaveLen(1))
		l := ax.Lines[0]
		Expect(l.X).To(Equal([]float64{2, 2.1, 2.2, 2.3, 2.4}))
		Expect(l.Color).To(Equal(plot.Gray(0.5)))
		Expect(l.Marker).To(Equal(plot.MarkerNone))
		Expect(l.Width).To(Equal(0.5))
		Expect(l.Alpha).To(Equal(0.5))
		Expect(ax.Title).To(Equal("Tracers"))
	})

	It("draws nothing without tracers", func() {
		h := threePoints()
		h.G = []float64{1, 1, 1}
		_, ax, err := viz.TracerTrajectories(h, plot.FigureOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(ax.Lines).To(BeEmpty())
	})
})

var _ = Describe("PoincareSection", func() {
	It("keeps tracer positions at recurrence times", func() {
		cfg := viz.DefaultPoincareConfig()
		cfg.Section.XTol = 0.05
		_, ax, err := viz.PoincareSection(threePoints(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(ax.Lines).To(HaveLen(1))

		l := ax.Lines[0]
		Expect(l.X).To(Equal([]float64{2, 2.4}))
		Expect(l.Y).To(Equal([]float64{0.5, 0.9}))
		Expect(l.Solid).To(BeFalse())
		Expect(l.Marker).To(Equal(plot.MarkerPoint))
		Expect(l.MarkerSize).To(Equal(0.2))
		Expect(l.MarkerEdgeWidth).To(BeZero())
		Expect(l.Alpha).To(Equal(0.5))
		Expect(l.Color).To(Equal(plot.Gray(0.35)))
		Expect(ax.Title).To(Equal(viz.PoincareTitle))
		Expect(ax.Aspect).To(Equal(plot.AspectEqual))
	})

	It("uses the default tolerance", func() {
		_, ax, err := viz.PoincareSection(threePoints(), viz.DefaultPoincareConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(ax.Lines[0].X).To(Equal([]float64{2}))
	})

	It("draws an empty map when nothing recurs", func() {
		cfg := viz.DefaultPoincareConfig()
		cfg.Ref = 1
		cfg.Section.XTol = 0
		h := threePoints()
		for it := range h.Y {
			h.Y[it][1] = -1
		}
		_, ax, err := viz.PoincareSection(h, cfg)
		Expect(err).NotTo(HaveOccurred())
		for _, l := range ax.Lines {
			Expect(l.X).To(BeEmpty())
		}
	})

	It("fails fast on a bad reference", func() {
		cfg := viz.DefaultPoincareConfig()
		cfg.Ref = 7
		_, _, err := viz.PoincareSection(threePoints(), cfg)
		Expect(err).To(MatchError(history.ErrIndexOutOfRange))
	})
})

var _ = Describe("PoincareStyled", func() {
	It("cycles marker properties by vorton", func() {
		cfg := viz.DefaultStyledConfig()
		cfg.Section.XTol = 2
		cfg.MarkerSizes = []float64{1, 2, 4}
		cfg.Alphas = []float64{0.6, 0.85}
		cfg.Colors = []string{"g", "b"}

		_, ax, err := viz.PoincareStyled(ring(2, 60), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(ax.Lines).To(HaveLen(2))
		Expect(ax.Lines[0].MarkerSize).To(Equal(1.0))
		Expect(ax.Lines[1].MarkerSize).To(Equal(2.0))
		Expect(ax.Lines[1].Alpha).To(Equal(0.85))
		b, _ := plot.ParseColor("b")
		Expect(ax.Lines[1].Color).To(Equal(b))
	})

	It("cycles marker properties by time", func() {
		cfg := viz.DefaultStyledConfig()
		cfg.Section.XTol = 0.05
		cfg.CycleBy = viz.CycleByTime
		cfg.Colors = []string{"r", "k", "0.5"}

		_, ax, err := viz.PoincareStyled(threePoints(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(ax.Lines).To(HaveLen(2))
		Expect(ax.Lines[0].X).To(Equal([]float64{2}))
		Expect(ax.Lines[1].X).To(Equal([]float64{2.4}))
		k, _ := plot.ParseColor("k")
		Expect(ax.Lines[1].Color).To(Equal(k))
	})

	It("hides or replaces the title", func() {
		empty := ""
		cfg := viz.DefaultStyledConfig()
		cfg.Title = &empty
		_, ax, err := viz.PoincareStyled(threePoints(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(ax.Title).To(BeEmpty())
	})

	It("rejects unknown cycling and colors", func() {
		cfg := viz.DefaultStyledConfig()
		cfg.CycleBy = "tracer"
		_, _, err := viz.PoincareStyled(threePoints(), cfg)
		Expect(err).To(HaveOccurred())

		cfg = viz.DefaultStyledConfig()
		cfg.Colors = []string{"not-a-color"}
		_, _, err = viz.PoincareStyled(threePoints(), cfg)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("option routing", func() {
	It("sends xtol to the filter and the rest to the figure", func() {
		cfg, err := viz.ParsePoincareOptions(map[string]any{
			"xtol":    0.02,
			"figsize": []any{6, 6},
			"dpi":     80,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Section.XTol).To(Equal(0.02))
		Expect(cfg.Figure.Size).To(Equal([2]float64{6, 6}))
		Expect(cfg.Figure.DPI).To(Equal(80.0))
		Expect(cfg.Ref).To(BeZero())
	})

	It("keeps defaults for absent keys", func() {
		cfg, err := viz.ParsePoincareOptions(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(viz.DefaultPoincareConfig()))
	})

	It("rejects unknown keys", func() {
		_, err := viz.ParsePoincareOptions(map[string]any{"ytol": 0.1})
		Expect(err).To(HaveOccurred())
	})

	It("does not modify the caller's map", func() {
		opts := map[string]any{"xtol": 0.1, "dpi": 50}
		_, err := viz.ParsePoincareOptions(opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(opts).To(HaveLen(2))
	})

	It("parses the styled keys", func() {
		cfg, err := viz.ParseStyledOptions(map[string]any{
			"ms":       2.5,
			"alpha":    []any{0.6, 0.85},
			"c":        []any{"g", "b"},
			"cycle_by": "time",
			"title":    nil,
			"xtol":     0.02,
			"iv_ref":   1,
			"figsize":  []any{6.0, 6.0},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.MarkerSizes).To(Equal([]float64{2.5}))
		Expect(cfg.Alphas).To(Equal([]float64{0.6, 0.85}))
		Expect(cfg.Colors).To(Equal([]string{"g", "b"}))
		Expect(cfg.CycleBy).To(Equal(viz.CycleByTime))
		Expect(cfg.Title).NotTo(BeNil())
		Expect(*cfg.Title).To(BeEmpty())
		Expect(cfg.Section.XTol).To(Equal(0.02))
		Expect(cfg.Ref).To(Equal(1))
		Expect(cfg.Figure.Size).To(Equal([2]float64{6, 6}))
	})
})

var _ = Describe("Registry", func() {
	It("lists and renders the built-in kinds", func() {
		r := viz.NewRegistry()
		Expect(r.Kinds()).To(Equal([]string{"poincare", "ps", "tracers", "vortons"}))
		Expect(r.Doc("ps")).NotTo(BeEmpty())

		for _, kind := range r.Kinds() {
			fig, ax, err := r.Render(kind, threePoints(), map[string]any{"figsize": []any{4, 4}})
			Expect(err).NotTo(HaveOccurred(), kind)
			Expect(fig.Width).To(Equal(4.0))
			Expect(ax).NotTo(BeNil())
		}
	})

	It("rejects unknown kinds and misrouted keys", func() {
		r := viz.NewRegistry()
		_, _, err := r.Render("phase", threePoints(), nil)
		Expect(err).To(MatchError(viz.ErrUnknownKind))

		_, _, err = r.Render("vortons", threePoints(), map[string]any{"xtol": 0.1})
		Expect(err).To(HaveOccurred())
	})
})
