package graph

import "image/color"

// Style collects every visual constant the renderer uses. Sizes are in
// pixels, font sizes in points at one pixel per point.
type Style struct {
	// StartColor and EndColor are the top and bottom of the background
	// gradient.
	StartColor, EndColor color.NRGBA

	// PlotInsetX and PlotInsetY position the plot area as fractions of the
	// drawing bounds: the plot starts PlotInsetX*width from the left edge
	// and PlotInsetY*height from the top, and is symmetric.
	PlotInsetX, PlotInsetY float64
	// TabAllowance moves the plot area up by this amount, and shrinks it by
	// twice as much, when a tab bar is shown below it.
	TabAllowance float64
	// TabBarHeight and TabBarInset size the strip reserved for the host's
	// plot selector.
	TabBarHeight, TabBarInset float64

	// TitleColor, TitleSize, TitleTop and TitleHeight place the chart title.
	// TitleWidth is a fraction of the drawing width.
	TitleColor  color.NRGBA
	TitleSize   float64
	TitleTop    float64
	TitleHeight float64
	TitleWidth  float64

	// LineWidth is the stroke width of every series.
	LineWidth float64
	// MarkerRadius is the radius of the dot drawn at each point; zero
	// disables markers.
	MarkerRadius float64

	// GridLineColor and GridLineWidth stroke the horizontal reference lines.
	GridLineColor color.NRGBA
	GridLineWidth float64
	// AxisLabelColor and AxisLabelSize style gridline values and x-axis
	// category labels.
	AxisLabelColor color.NRGBA
	AxisLabelSize  float64
	// SideLabelGap separates gridline labels from the plot area.
	SideLabelGap float64
	// SideLabelHeight is the height of the box a gridline label is centred in.
	SideLabelHeight float64

	// MaxXLabels caps the number of category labels under the x axis.
	MaxXLabels int
	// XLabelWidth and XLabelHeight size each category label box.
	XLabelWidth, XLabelHeight float64
	// XLabelGap separates category labels from the bottom of the plot area.
	XLabelGap float64
	// XLabelStagger moves a category label down when it would overlap the
	// label placed before it.
	XLabelStagger float64

	// Legend geometry. Items are laid out in LegendColumns columns that are
	// LegendColumnWidth apart; rows are LegendRowHeight apart.
	LegendColumns      int
	LegendColumnWidth  float64
	LegendRowHeight    float64
	LegendItemWidth    float64
	LegendItemHeight   float64
	LegendSwatchWidth  float64
	LegendSwatchHeight float64
	LegendLabelGap     float64
	LegendLabelSize    float64
	LegendLabelColor   color.NRGBA

	// TouchSlop grows the plot area when hit-testing pointer positions.
	TouchSlop float64

	// EmptyBorderColor and EmptyBorderWidth stroke the axis frame drawn when
	// there is nothing to plot.
	EmptyBorderColor color.NRGBA
	EmptyBorderWidth float64
	// EmptyMessage is shown in the empty state when no load is in flight.
	EmptyMessage      string
	EmptyMessageColor color.NRGBA
	EmptyMessageSize  float64
	// DimColor covers the drawing while loading; SpinnerColor and
	// SpinnerRadius describe the activity indicator on top of it.
	DimColor      color.NRGBA
	SpinnerColor  color.NRGBA
	SpinnerRadius float64
}

var (
	white     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	lightGray = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	darkGray  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

// DefaultStyle returns the style used when none is configured.
func DefaultStyle() Style {
	return Style{
		StartColor:   lightGray,
		EndColor:     darkGray,
		PlotInsetX:   0.125,
		PlotInsetY:   0.3,
		TabAllowance: 20,
		TabBarHeight: 28,
		TabBarInset:  15,

		TitleColor:  darkGray,
		TitleSize:   14,
		TitleTop:    5,
		TitleHeight: 40,
		TitleWidth:  0.8,

		LineWidth:    1,
		MarkerRadius: 2,

		GridLineColor:   lightGray,
		GridLineWidth:   0.2,
		AxisLabelColor:  darkGray,
		AxisLabelSize:   10,
		SideLabelGap:    5,
		SideLabelHeight: 20,

		MaxXLabels:    6,
		XLabelWidth:   80,
		XLabelHeight:  20,
		XLabelGap:     10,
		XLabelStagger: 13,

		LegendColumns:      2,
		LegendColumnWidth:  135,
		LegendRowHeight:    20,
		LegendItemWidth:    125,
		LegendItemHeight:   18,
		LegendSwatchWidth:  50,
		LegendSwatchHeight: 1,
		LegendLabelGap:     2,
		LegendLabelSize:    8,
		LegendLabelColor:   darkGray,

		TouchSlop: 10,

		EmptyBorderColor:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80},
		EmptyBorderWidth:  1,
		EmptyMessage:      "No Data Available",
		EmptyMessageColor: white,
		EmptyMessageSize:  30,
		DimColor:          color.NRGBA{A: 0x80},
		SpinnerColor:      darkGray,
		SpinnerRadius:     18,
	}
}

// LegacyStyle matches the look of charts drawn with SumPolicy: hairline
// one-pixel dots instead of markers.
func LegacyStyle() Style {
	st := DefaultStyle()
	st.MarkerRadius = 0.5
	return st
}
