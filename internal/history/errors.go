package history

import "errors"

// Domain errors for history tables.
var (
	// ErrMissingField indicates a required field (x, y or G) is absent.
	ErrMissingField = errors.New("history: missing field")

	// ErrIndexOutOfRange indicates a time or point index outside the table.
	ErrIndexOutOfRange = errors.New("history: index out of range")

	// ErrDimensionMismatch indicates fields whose shapes disagree with t × v.
	ErrDimensionMismatch = errors.New("history: dimension mismatch")

	// ErrUnsorted indicates the time coordinate is not ascending.
	ErrUnsorted = errors.New("history: time coordinate not ascending")
)
