package graph

import "fmt"

const (
	DefaultPrimaryGridLines   = 10
	DefaultSecondaryGridLines = 5
)

// Options configures the value axes of a chart.
type Options struct {
	// PrimaryGridLines and SecondaryGridLines are the number of gridline
	// intervals on each axis. Zero selects the default.
	PrimaryGridLines   int
	SecondaryGridLines int
	// PrimarySuffix and SecondarySuffix are appended to the formatted
	// gridline labels, for units such as "%" or "x".
	PrimarySuffix   string
	SecondarySuffix string
	// Policy spaces gridlines on both axes. Nil selects RangePolicy.
	Policy IntervalPolicy
}

// DefaultOptions returns ten primary and five secondary gridlines spaced by
// RangePolicy.
func DefaultOptions() Options {
	return Options{
		PrimaryGridLines:   DefaultPrimaryGridLines,
		SecondaryGridLines: DefaultSecondaryGridLines,
		Policy:             RangePolicy{},
	}
}

// Validate rejects negative gridline counts.
func (o Options) Validate() error {
	if o.PrimaryGridLines < 0 {
		return fmt.Errorf("primary gridline count %d must be positive", o.PrimaryGridLines)
	}
	if o.SecondaryGridLines < 0 {
		return fmt.Errorf("secondary gridline count %d must be positive", o.SecondaryGridLines)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.PrimaryGridLines <= 0 {
		o.PrimaryGridLines = DefaultPrimaryGridLines
	}
	if o.SecondaryGridLines <= 0 {
		o.SecondaryGridLines = DefaultSecondaryGridLines
	}
	if o.Policy == nil {
		o.Policy = RangePolicy{}
	}
	return o
}
