package history

import "fmt"

// PointKind tags a point as a vorton or a tracer.
type PointKind int

const (
	// Tracer is a passive point with zero circulation.
	Tracer PointKind = iota
	// Vorton carries nonzero circulation and induces flow.
	Vorton
)

func (k PointKind) String() string {
	switch k {
	case Tracer:
		return "tracer"
	case Vorton:
		return "vorton"
	default:
		return fmt.Sprintf("PointKind(%d)", int(k))
	}
}

// KindOf classifies a circulation strength.
func KindOf(g float64) PointKind {
	if g != 0 {
		return Vorton
	}
	return Tracer
}

// Point describes one entry of the v dimension.
type Point struct {
	Label int
	Kind  PointKind
	G     float64
}

// Point returns the label, kind and circulation of point iv.
func (h *History) Point(iv int) (Point, error) {
	if err := h.checkPoint(iv); err != nil {
		return Point{}, err
	}
	if h.G == nil {
		return Point{}, fmt.Errorf("%w: G", ErrMissingField)
	}
	g := h.G[iv]
	return Point{Label: h.Labels[iv], Kind: KindOf(g), G: g}, nil
}

// Mask returns, over the v dimension, which points are of the given kind.
func (h *History) Mask(kind PointKind) ([]bool, error) {
	if h.G == nil && h.NV() > 0 {
		return nil, fmt.Errorf("%w: G", ErrMissingField)
	}
	mask := make([]bool, h.NV())
	for iv, g := range h.G {
		mask[iv] = KindOf(g) == kind
	}
	return mask, nil
}

// VortonMask is G != 0.
func (h *History) VortonMask() ([]bool, error) { return h.Mask(Vorton) }

// TracerMask is G == 0.
func (h *History) TracerMask() ([]bool, error) { return h.Mask(Tracer) }

// SelectKind returns the table restricted to points of one kind.
func (h *History) SelectKind(kind PointKind) (*History, error) {
	mask, err := h.Mask(kind)
	if err != nil {
		return nil, err
	}
	return h.SelectPoints(mask)
}

// Count returns the number of points of each kind.
func (h *History) Count() (vortons, tracers int, err error) {
	mask, err := h.VortonMask()
	if err != nil {
		return 0, 0, err
	}
	for _, v := range mask {
		if v {
			vortons++
		} else {
			tracers++
		}
	}
	return vortons, tracers, nil
}
