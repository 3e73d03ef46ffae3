package graph

import "image/color"

// Command is one drawing instruction. Hosts type-switch over the concrete
// types below; commands are listed in painting order.
type Command interface {
	isCommand()
}

// Axis identifies which value scale an element belongs to.
type Axis uint8

const (
	AxisPrimary Axis = iota
	AxisSecondary
)

func (a Axis) String() string {
	switch a {
	case AxisPrimary:
		return "primary"
	case AxisSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Alignment is the horizontal placement of text inside its box.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignMiddle
	AlignEnd
)

// LabelRole says what a Label is for, so hosts can pick fonts.
type LabelRole uint8

const (
	RoleTitle LabelRole = iota
	RoleAxisValue
	RoleCategory
	RoleLegend
	RoleMessage
)

// Gradient fills Box with a vertical gradient from From (top) to To (bottom).
type Gradient struct {
	Box      Rect
	From, To color.NRGBA
}

// Fill paints Box with a solid colour.
type Fill struct {
	Box   Rect
	Color color.NRGBA
}

// Polyline strokes the line through Points in order.
type Polyline struct {
	Points []Point
	Color  color.NRGBA
	Width  float64
	Axis   Axis
	// Series is the position of the data set in draw order.
	Series int
}

// Marker is a filled circle at a projected data point.
type Marker struct {
	Center Point
	Radius float64
	Color  color.NRGBA
}

// Rule is a straight gridline.
type Rule struct {
	From, To Point
	Color    color.NRGBA
	Width    float64
	Axis     Axis
}

// Label is a single line of text vertically centred in Box.
type Label struct {
	Text  string
	Box   Rect
	Align Alignment
	Color color.NRGBA
	Size  float64
	Role  LabelRole
}

// Swatch is the colour sample next to a legend entry.
type Swatch struct {
	Box   Rect
	Color color.NRGBA
}

// Frame strokes an open path, used for the empty-state axis border.
type Frame struct {
	Points []Point
	Color  color.NRGBA
	Width  float64
}

// Spinner marks where the host should show an activity indicator.
type Spinner struct {
	Center Point
	Radius float64
	Color  color.NRGBA
}

func (Gradient) isCommand() {}
func (Fill) isCommand()     {}
func (Polyline) isCommand() {}
func (Marker) isCommand()   {}
func (Rule) isCommand()     {}
func (Label) isCommand()    {}
func (Swatch) isCommand()   {}
func (Frame) isCommand()    {}
func (Spinner) isCommand()  {}
