package graph

import (
	"fmt"
	"strings"
)

// Extrema returns the smallest and largest value across all points of all
// the given series. Order does not matter; a single value yields min == max.
func Extrema(series ...DataSet) (lo, hi float64, err error) {
	seen := false
	for _, ds := range series {
		for _, p := range ds.points {
			if !seen {
				lo, hi = p.Value, p.Value
				seen = true
				continue
			}
			lo = min(lo, p.Value)
			hi = max(hi, p.Value)
		}
	}
	if !seen {
		return 0, 0, ErrEmptySeries
	}
	return lo, hi, nil
}

// GridLine is a horizontal reference line. Fraction is its distance from
// the axis baseline as a proportion of the plot height.
type GridLine struct {
	Value    float64
	Fraction float64
}

// IntervalPolicy decides how an axis turns its extrema into gridlines and
// how values are placed vertically against them.
type IntervalPolicy interface {
	// Name identifies the policy in configuration.
	Name() string
	// Interval is the value step between consecutive gridlines.
	Interval(lo, hi float64, lines int) float64
	// GridLines lists the reference lines to draw.
	GridLines(lo, hi float64, lines int) []GridLine
	// Project maps value to a y coordinate inside area. It may return NaN
	// or an infinity; ProjectY takes care of the fallback.
	Project(value, lo, hi float64, lines int, area Rect) float64
}

// RangePolicy spaces gridlines evenly from the minimum to the maximum:
// interval = (max-min)/lines. The bottom line sits on the minimum and the
// top line on the maximum. This is the default.
type RangePolicy struct{}

func (RangePolicy) Name() string { return "range" }

func (RangePolicy) Interval(lo, hi float64, lines int) float64 {
	return (hi - lo) / float64(lines)
}

func (p RangePolicy) GridLines(lo, hi float64, lines int) []GridLine {
	if lines < 1 {
		return nil
	}
	step := p.Interval(lo, hi, lines)
	out := make([]GridLine, 0, lines+1)
	for i := 0; i <= lines; i++ {
		out = append(out, GridLine{
			Value:    lo + step*float64(i),
			Fraction: float64(i) / float64(lines),
		})
	}
	return out
}

func (RangePolicy) Project(value, lo, hi float64, _ int, area Rect) float64 {
	return ProjectYRange(value, lo, hi, area)
}

// SumPolicy reproduces the legacy layout in which the gridline interval is
// derived from the sum of the extrema: interval = (max+min)/lines. Gridline
// i carries the value i*interval, starting at zero, and points are placed
// value/interval gridline steps above the baseline. The resulting scale
// does not in general span min to max; it is kept for charts that must look
// like the legacy renderer.
type SumPolicy struct{}

func (SumPolicy) Name() string { return "sum" }

func (SumPolicy) Interval(lo, hi float64, lines int) float64 {
	return (hi + lo) / float64(lines)
}

func (p SumPolicy) GridLines(lo, hi float64, lines int) []GridLine {
	if lines < 1 {
		return nil
	}
	step := p.Interval(lo, hi, lines)
	out := make([]GridLine, 0, lines)
	for i := 0; i < lines; i++ {
		out = append(out, GridLine{
			Value:    step * float64(i),
			Fraction: float64(i) / float64(lines),
		})
	}
	return out
}

func (p SumPolicy) Project(value, lo, hi float64, lines int, area Rect) float64 {
	frameInterval := area.Height() / float64(lines)
	return ProjectYInterval(value, p.Interval(lo, hi, lines), frameInterval, area)
}

// PolicyByName returns the policy registered under name. The empty string
// selects the default RangePolicy.
func PolicyByName(name string) (IntervalPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "range":
		return RangePolicy{}, nil
	case "sum", "legacy":
		return SumPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown interval policy %q", name)
	}
}

// Scale is the resolved value range of one axis.
type Scale struct {
	Min, Max float64
	Lines    int
	Policy   IntervalPolicy
}

// NewScale computes the extrema of series and pairs them with a gridline
// count and policy. A nil policy means RangePolicy.
func NewScale(lines int, policy IntervalPolicy, series ...DataSet) (Scale, error) {
	lo, hi, err := Extrema(series...)
	if err != nil {
		return Scale{}, err
	}
	if policy == nil {
		policy = RangePolicy{}
	}
	return Scale{Min: lo, Max: hi, Lines: lines, Policy: policy}, nil
}

// Interval is the value step between gridlines.
func (s Scale) Interval() float64 {
	return s.policy().Interval(s.Min, s.Max, s.Lines)
}

// GridLines lists the axis reference lines.
func (s Scale) GridLines() []GridLine {
	return s.policy().GridLines(s.Min, s.Max, s.Lines)
}

// Degenerate returns ErrDegenerateRange when the scale spans no values.
// Callers use it for diagnostics only; projection already handles it.
func (s Scale) Degenerate() error {
	if s.Min == s.Max {
		return fmt.Errorf("%w (%v)", ErrDegenerateRange, s.Min)
	}
	return nil
}

func (s Scale) policy() IntervalPolicy {
	if s.Policy == nil {
		return RangePolicy{}
	}
	return s.Policy
}
