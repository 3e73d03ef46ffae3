package graph

import "errors"

var (
	// ErrEmptySeries is returned when an operation needs at least one data
	// point and none were provided.
	ErrEmptySeries = errors.New("series has no data points")
	// ErrIndexOutOfRange is returned when a plot index does not address one
	// of the chart's plots.
	ErrIndexOutOfRange = errors.New("plot index out of range")
	// ErrInvalidValue is returned when a data point value is NaN or infinite.
	ErrInvalidValue = errors.New("data point value is not finite")
	// ErrDegenerateRange describes a scale whose minimum equals its maximum.
	// It is informational: projection falls back to the vertical midpoint of
	// the plot area instead of failing.
	ErrDegenerateRange = errors.New("scale minimum equals maximum")
)
