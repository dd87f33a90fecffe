package plot

import "errors"

// ErrNoAxes is returned by the frame helpers when given no axes.
var ErrNoAxes = errors.New("plot: no axes")

type frameSpec struct {
	keepAxisLabels bool
	keepTitle      bool
}

// FrameOption customizes FrameOnly and RemoveFrame.
type FrameOption func(*frameSpec)

// DropAxisLabels also clears the x and y axis labels.
func DropAxisLabels() FrameOption {
	return func(s *frameSpec) { s.keepAxisLabels = false }
}

// DropTitle also clears the title.
func DropTitle() FrameOption {
	return func(s *frameSpec) { s.keepTitle = false }
}

// FrameOnly removes tick marks and tick labels from all four sides of ax.
// Axis labels and title are kept unless dropped by an option.
func FrameOnly(ax *Axes, opts ...FrameOption) error {
	if ax == nil {
		return ErrNoAxes
	}
	s := frameSpec{keepAxisLabels: true, keepTitle: true}
	for _, opt := range opts {
		opt(&s)
	}

	ax.Ticks = TickParams{}
	if !s.keepAxisLabels {
		ax.XLabel = ""
		ax.YLabel = ""
	}
	if !s.keepTitle {
		ax.Title = ""
	}
	return nil
}

// RemoveFrame removes ticks, tick labels, axis labels and the spines from ax.
// The title is kept unless DropTitle is given.
func RemoveFrame(ax *Axes, opts ...FrameOption) error {
	opts = append(append([]FrameOption(nil), opts...), DropAxisLabels())
	if err := FrameOnly(ax, opts...); err != nil {
		return err
	}
	ax.FrameOn = false
	return nil
}
