// Package graph computes the geometry of a dual-axis line chart and turns it
// into a list of drawing commands. It knows nothing about windows or
// rasterisation; hosts paint the commands with whatever toolkit they use.
package graph

import (
	"fmt"
	"image/color"
	"math"
	"slices"
)

// DataPoint is one labelled value along a series.
type DataPoint struct {
	Label string
	Value float64
}

// Pt is shorthand for constructing a DataPoint.
func Pt(label string, value float64) DataPoint {
	return DataPoint{Label: label, Value: value}
}

// DataSet is a named, coloured line. The order of its points defines the
// order along the x axis. A DataSet always holds at least one point and is
// never modified after construction.
type DataSet struct {
	title  string
	points []DataPoint
	color  color.NRGBA
}

// NewDataSet validates and copies points into a new DataSet.
func NewDataSet(title string, c color.NRGBA, points ...DataPoint) (DataSet, error) {
	if len(points) < 1 {
		return DataSet{}, fmt.Errorf("data set %q: %w", title, ErrEmptySeries)
	}
	for i, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return DataSet{}, fmt.Errorf("data set %q point %d (%q): %w", title, i, p.Label, ErrInvalidValue)
		}
	}
	return DataSet{
		title:  title,
		points: slices.Clone(points),
		color:  c,
	}, nil
}

// MustDataSet is like NewDataSet but panics on invalid input. It is meant
// for literals in tests and examples.
func MustDataSet(title string, c color.NRGBA, points ...DataPoint) DataSet {
	ds, err := NewDataSet(title, c, points...)
	if err != nil {
		panic(err)
	}
	return ds
}

func (d DataSet) Title() string      { return d.title }
func (d DataSet) Color() color.NRGBA { return d.color }
func (d DataSet) Len() int           { return len(d.points) }

// At returns the i'th point.
func (d DataSet) At(i int) DataPoint { return d.points[i] }

// Points returns a copy of the data set's points.
func (d DataSet) Points() []DataPoint {
	return slices.Clone(d.points)
}

// Values returns the point values in order.
func (d DataSet) Values() []float64 {
	out := make([]float64, len(d.points))
	for i, p := range d.points {
		out[i] = p.Value
	}
	return out
}

// DataPlot is the content of one selectable tab: one or more series on the
// primary axis and optionally some on the secondary axis.
type DataPlot struct {
	title     string
	primary   []DataSet
	secondary []DataSet
}

// NewDataPlot builds a plot. The primary axis must carry at least one data
// set; secondary may be nil.
func NewDataPlot(title string, primary []DataSet, secondary []DataSet) (DataPlot, error) {
	if len(primary) < 1 {
		return DataPlot{}, fmt.Errorf("plot %q: no primary series: %w", title, ErrEmptySeries)
	}
	return DataPlot{
		title:     title,
		primary:   slices.Clone(primary),
		secondary: slices.Clone(secondary),
	}, nil
}

// MustDataPlot is like NewDataPlot but panics on invalid input.
func MustDataPlot(title string, primary []DataSet, secondary []DataSet) DataPlot {
	p, err := NewDataPlot(title, primary, secondary)
	if err != nil {
		panic(err)
	}
	return p
}

func (p DataPlot) Title() string { return p.title }

// Primary returns the series drawn against the primary axis.
func (p DataPlot) Primary() []DataSet { return slices.Clone(p.primary) }

// Secondary returns the series drawn against the secondary axis, or nil.
func (p DataPlot) Secondary() []DataSet { return slices.Clone(p.secondary) }

// HasSecondary reports whether the plot uses the secondary axis.
func (p DataPlot) HasSecondary() bool { return len(p.secondary) > 0 }

// DataSets returns primary series followed by secondary series, which is
// the order in which they are drawn and listed in the legend.
func (p DataPlot) DataSets() []DataSet {
	out := make([]DataSet, 0, len(p.primary)+len(p.secondary))
	out = append(out, p.primary...)
	return append(out, p.secondary...)
}

// HasPoints reports whether the plot has anything to draw. The decision
// rests on the first primary series alone.
func (p DataPlot) HasPoints() bool {
	return len(p.primary) > 0 && p.primary[0].Len() > 0
}
