package graph

import (
	"fmt"
	"math"
)

// Scene is the state the renderer turns into a Drawing.
type Scene struct {
	Bounds Rect
	Title  string
	// Plot is the active plot; it is only consulted when HasPlot is set.
	Plot    DataPlot
	HasPlot bool
	// PlotCount is the number of plots the host can switch between. More
	// than one reserves room for a tab bar.
	PlotCount int
	Loading   bool
	Options   Options
}

// Drawing is a fully resolved frame.
type Drawing struct {
	Bounds   Rect
	PlotArea Rect
	// TabBar is where the host should put its plot selector. It is only
	// meaningful when ShowTabs is set.
	TabBar   Rect
	ShowTabs bool
	Legend   Legend

	Primary      Scale
	Secondary    Scale
	HasSecondary bool

	// Empty is set when the fallback frame was drawn instead of a plot.
	// Loading tells which fallback was chosen.
	Empty   bool
	Loading bool

	// Drawn lists the data sets that were plotted, in draw order.
	Drawn    []DataSet
	Commands []Command
}

// Renderer turns a Scene into drawing commands.
type Renderer struct {
	style   Style
	measure TextMeasurer
}

// NewRenderer returns a renderer with the given style. A nil measurer
// selects BasicMeasurer.
func NewRenderer(st Style, m TextMeasurer) *Renderer {
	if m == nil {
		m = BasicMeasurer{}
	}
	return &Renderer{style: st, measure: m}
}

// Style returns the renderer's style.
func (r *Renderer) Style() Style { return r.style }

// PlotArea returns the rectangle series are drawn in for a chart of the
// given bounds offering plotCount plots.
func PlotArea(bounds Rect, plotCount int, st Style) Rect {
	w, h := bounds.Width(), bounds.Height()
	top := h * st.PlotInsetY
	if plotCount > 1 {
		top -= st.TabAllowance
	}
	height := h - 2*top
	if plotCount > 1 {
		height -= 2 * st.TabAllowance
	}
	left := w * st.PlotInsetX
	return XYWH(bounds.Min.X+left, bounds.Min.Y+top, w-2*left, height)
}

// Render lays out sc. It fails only if the active plot has a primary axis
// without points, which the DataPlot constructor already rules out.
func (r *Renderer) Render(sc Scene) (Drawing, error) {
	st := r.style
	opts := sc.Options.withDefaults()
	d := Drawing{
		Bounds:   sc.Bounds,
		PlotArea: PlotArea(sc.Bounds, sc.PlotCount, st),
		ShowTabs: sc.PlotCount > 1,
		Loading:  sc.Loading,
	}
	area := d.PlotArea
	below := sc.Bounds.Max.Y - area.Max.Y
	if d.ShowTabs {
		y := area.Max.Y + below/2 - st.TabBarHeight/4
		d.TabBar = Rect{
			Min: Point{X: sc.Bounds.Min.X + st.TabBarInset, Y: y},
			Max: Point{X: sc.Bounds.Max.X - st.TabBarInset, Y: y + st.TabBarHeight},
		}
	}

	d.Commands = append(d.Commands, Gradient{Box: sc.Bounds, From: st.StartColor, To: st.EndColor})
	if sc.Title != "" {
		w := sc.Bounds.Width()
		d.Commands = append(d.Commands, Label{
			Text:  sc.Title,
			Box:   XYWH(sc.Bounds.Min.X+w*(1-st.TitleWidth)/2, sc.Bounds.Min.Y+st.TitleTop, w*st.TitleWidth, st.TitleHeight),
			Align: AlignMiddle,
			Color: st.TitleColor,
			Size:  st.TitleSize,
			Role:  RoleTitle,
		})
	}

	if !sc.HasPlot || !sc.Plot.HasPoints() {
		d.Empty = true
		d.Commands = append(d.Commands, r.fallback(sc, area)...)
		return d, nil
	}

	plot := sc.Plot
	primary, err := NewScale(opts.PrimaryGridLines, opts.Policy, plot.primary...)
	if err != nil {
		return Drawing{}, fmt.Errorf("primary axis of %q: %w", plot.Title(), err)
	}
	d.Primary = primary
	d.Commands = append(d.Commands, r.sideMarkers(primary, AxisPrimary, opts.PrimarySuffix, area)...)
	if plot.HasSecondary() {
		secondary, err := NewScale(opts.SecondaryGridLines, opts.Policy, plot.secondary...)
		if err != nil {
			return Drawing{}, fmt.Errorf("secondary axis of %q: %w", plot.Title(), err)
		}
		d.Secondary = secondary
		d.HasSecondary = true
		d.Commands = append(d.Commands, r.sideMarkers(secondary, AxisSecondary, opts.SecondarySuffix, area)...)
	}

	for i, ds := range plot.DataSets() {
		axis, scale := AxisPrimary, d.Primary
		if i >= len(plot.primary) {
			axis, scale = AxisSecondary, d.Secondary
		}
		d.Commands = append(d.Commands, r.series(ds, i, axis, scale, area)...)
		d.Drawn = append(d.Drawn, ds)
	}
	d.Commands = append(d.Commands, r.categoryLabels(plot.primary[0], area)...)

	var legendTop float64
	rows := LegendRows(len(d.Drawn), st.LegendColumns)
	if d.ShowTabs {
		legendTop = d.TabBar.Max.Y
	} else {
		legendTop = area.Max.Y + below/2 - float64(rows)*st.LegendRowHeight/4
	}
	d.Legend = LayoutLegend(plot, Point{X: area.Min.X, Y: legendTop}, area.Width(), st)
	d.Commands = append(d.Commands, d.Legend.commands(st)...)
	return d, nil
}

// series strokes one data set and drops a marker on each of its points.
func (r *Renderer) series(ds DataSet, index int, axis Axis, s Scale, area Rect) []Command {
	st := r.style
	n := ds.Len()
	pts := make([]Point, n)
	for i, p := range ds.points {
		pts[i] = Point{X: ProjectX(i, n, area), Y: ProjectY(p.Value, s, area)}
	}
	cmds := make([]Command, 0, n+1)
	cmds = append(cmds, Polyline{
		Points: pts,
		Color:  ds.Color(),
		Width:  st.LineWidth,
		Axis:   axis,
		Series: index,
	})
	if st.MarkerRadius <= 0 {
		return cmds
	}
	for _, p := range pts {
		cmds = append(cmds, Marker{Center: p, Radius: st.MarkerRadius, Color: ds.Color()})
	}
	return cmds
}

// sideMarkers draws the gridlines of one axis and labels them. Primary
// labels sit left of the plot area, secondary labels right of it.
func (r *Renderer) sideMarkers(s Scale, axis Axis, suffix string, area Rect) []Command {
	st := r.style
	lines := s.GridLines()
	cmds := make([]Command, 0, 2*len(lines))
	for _, g := range lines {
		y := GridLineY(g, area)
		cmds = append(cmds, Rule{
			From:  Point{X: area.Min.X, Y: y},
			To:    Point{X: area.Max.X, Y: y},
			Color: st.GridLineColor,
			Width: st.GridLineWidth,
			Axis:  axis,
		})
		text := FormatValue(g.Value, true) + suffix
		w, _ := r.measure.Measure(text, st.AxisLabelSize)
		h := st.SideLabelHeight
		lbl := Label{
			Text:  text,
			Color: st.AxisLabelColor,
			Size:  st.AxisLabelSize,
			Role:  RoleAxisValue,
		}
		if axis == AxisPrimary {
			lbl.Box = XYWH(area.Min.X-st.SideLabelGap-w, y-h/2, w, h)
			lbl.Align = AlignEnd
		} else {
			lbl.Box = XYWH(area.Max.X+st.SideLabelGap, y-h/2, w, h)
			lbl.Align = AlignStart
		}
		cmds = append(cmds, lbl)
	}
	return cmds
}

// categoryLabels samples up to MaxXLabels evenly spaced point labels of ds.
// A label that would overlap the one placed before it is staggered down.
func (r *Renderer) categoryLabels(ds DataSet, area Rect) []Command {
	st := r.style
	n := ds.Len()
	count := min(n, st.MaxXLabels)
	if count <= 1 {
		return nil
	}
	var (
		prev   Rect
		placed bool
		cmds   = make([]Command, 0, count)
	)
	for i := 0; i < count; i++ {
		idx := min(int(float64(i)/float64(count-1)*float64(n)), n-1)
		x := ProjectX(idx, n, area) - st.XLabelWidth/2
		box := XYWH(x, area.Max.Y+st.XLabelGap, st.XLabelWidth, st.XLabelHeight)
		if placed && prev.Intersects(box) {
			box = box.Add(Point{Y: st.XLabelStagger})
		}
		prev, placed = box, true
		cmds = append(cmds, Label{
			Text:  ds.At(idx).Label,
			Box:   box,
			Align: AlignMiddle,
			Color: st.AxisLabelColor,
			Size:  st.AxisLabelSize,
			Role:  RoleCategory,
		})
	}
	return cmds
}

// fallback draws the bare axis frame plus either the empty message or the
// loading overlay.
func (r *Renderer) fallback(sc Scene, area Rect) []Command {
	st := r.style
	cmds := []Command{
		Frame{
			Points: []Point{
				{X: area.Min.X, Y: area.Min.Y},
				{X: area.Min.X, Y: area.Max.Y},
				{X: area.Max.X, Y: area.Max.Y},
			},
			Color: st.EmptyBorderColor,
			Width: st.EmptyBorderWidth,
		},
	}
	c := sc.Bounds.Center()
	if !sc.Loading {
		w, h := r.measure.Measure(st.EmptyMessage, st.EmptyMessageSize)
		return append(cmds, Label{
			Text:  st.EmptyMessage,
			Box:   XYWH(c.X-w/2, c.Y-h, w, h),
			Align: AlignMiddle,
			Color: st.EmptyMessageColor,
			Size:  st.EmptyMessageSize,
			Role:  RoleMessage,
		})
	}
	return append(cmds,
		Fill{Box: sc.Bounds, Color: st.DimColor},
		Spinner{Center: c, Radius: st.SpinnerRadius, Color: st.SpinnerColor},
	)
}

// PointAt maps a pointer position to the data point of the plot's first
// primary series under it. Positions slightly outside the plot area still
// count; anything further away reports false.
func PointAt(pos Point, bounds Rect, plot DataPlot, plotCount int, st Style) (DataPoint, bool) {
	if !plot.HasPoints() {
		return DataPoint{}, false
	}
	touch := PlotArea(bounds, plotCount, st).Inset(-st.TouchSlop, -st.TouchSlop)
	if touch.Empty() || !touch.Contains(pos) {
		return DataPoint{}, false
	}
	ds := plot.primary[0]
	fraction := (pos.X - touch.Min.X) / touch.Width()
	idx := clamp(int(math.Floor(float64(ds.Len())*fraction)), 0, ds.Len()-1)
	return ds.At(idx), true
}
