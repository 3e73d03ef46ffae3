package graph

import "image/color"

// LegendItem is the placement of one legend entry.
type LegendItem struct {
	Title  string
	Color  color.NRGBA
	Axis   Axis
	Box    Rect
	Swatch Rect
	Label  Rect
}

// Legend is the laid-out key for every data set of a plot.
type Legend struct {
	Box   Rect
	Rows  int
	Items []LegendItem
}

// LegendRows returns the number of rows needed for n entries in columns
// columns.
func LegendRows(n, columns int) int {
	if n <= 0 {
		return 0
	}
	columns = max(columns, 1)
	return (n + columns - 1) / columns
}

// LayoutLegend places one entry per data set, primary first, filling rows
// left to right. The legend box starts at origin, is width wide and exactly
// as tall as the rows used.
func LayoutLegend(plot DataPlot, origin Point, width float64, st Style) Legend {
	sets := plot.DataSets()
	columns := max(st.LegendColumns, 1)
	lg := Legend{
		Rows:  LegendRows(len(sets), columns),
		Items: make([]LegendItem, 0, len(sets)),
	}
	lg.Box = XYWH(origin.X, origin.Y, width, float64(lg.Rows)*st.LegendRowHeight)
	for i, ds := range sets {
		col, row := i%columns, i/columns
		box := XYWH(
			origin.X+float64(col)*st.LegendColumnWidth,
			origin.Y+float64(row)*st.LegendRowHeight,
			st.LegendItemWidth,
			st.LegendItemHeight,
		)
		labelX := box.Min.X + st.LegendSwatchWidth + st.LegendLabelGap
		label := Rect{
			Min: Point{X: labelX, Y: box.Min.Y},
			Max: Point{X: box.Max.X, Y: box.Min.Y + st.LegendRowHeight},
		}
		midY := label.Center().Y
		swatch := XYWH(box.Min.X, midY-st.LegendSwatchHeight/2, st.LegendSwatchWidth, st.LegendSwatchHeight)
		axis := AxisPrimary
		if i >= len(plot.primary) {
			axis = AxisSecondary
		}
		lg.Items = append(lg.Items, LegendItem{
			Title:  ds.Title(),
			Color:  ds.Color(),
			Axis:   axis,
			Box:    box,
			Swatch: swatch,
			Label:  label,
		})
	}
	return lg
}

func (lg Legend) commands(st Style) []Command {
	cmds := make([]Command, 0, 2*len(lg.Items))
	for _, it := range lg.Items {
		cmds = append(cmds,
			Swatch{Box: it.Swatch, Color: it.Color},
			Label{
				Text:  it.Title,
				Box:   it.Label,
				Align: AlignStart,
				Color: st.LegendLabelColor,
				Size:  st.LegendLabelSize,
				Role:  RoleLegend,
			},
		)
	}
	return cmds
}
