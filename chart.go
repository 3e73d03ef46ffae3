package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"strconv"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"

	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

// average is one row of the key table, filled in by the chart's listener.
type average struct {
	ds    graph.DataSet
	value float64
}

// ChartView draws a graph.Chart and the table of series averages below it.
type ChartView struct {
	chart    *graph.Chart
	averages []average
	keyTable component.GridState
	// tab selects the active plot when there is more than one.
	tab widget.Enum
	// hover gesture state, in pixels.
	pos       f32.Point
	isHovered bool
	// bounds is the chart's last drawing area, in Dp.
	bounds graph.Rect
}

func NewChartView(c *graph.Chart) *ChartView {
	v := &ChartView{chart: c}
	c.SetListener(graph.AverageListenerFunc(func(ds graph.DataSet, value float64) {
		v.averages = append(v.averages, average{ds: ds, value: value})
	}))
	return v
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func (v *ChartView) Update(gtx C) {
	if v.tab.Update(gtx) {
		if idx, err := strconv.Atoi(v.tab.Value); err == nil {
			if err := v.chart.SelectPlot(idx); err != nil {
				log.Printf("failed selecting plot: %v", err)
			}
		}
	}
	v.tab.Value = strconv.Itoa(v.chart.ActiveIndex())
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: v,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move,
		})
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			switch ev.Kind {
			case pointer.Enter:
				v.isHovered = true
				v.pos = ev.Position
			case pointer.Leave, pointer.Cancel:
				v.isHovered = false
			case pointer.Move:
				v.pos = ev.Position
			}
		}
	}
}

func (v *ChartView) Layout(gtx C, th *material.Theme) D {
	v.Update(gtx)
	rowHeight := gtx.Sp(20)

	// The key is sized from the averages of the previous frame.
	keyHeight := min(gtx.Constraints.Max.Y/3, rowHeight*(len(v.averages)+1))
	chartSize := image.Pt(gtx.Constraints.Max.X, gtx.Constraints.Max.Y-keyHeight)
	v.averages = v.averages[:0]
	chartDims, chartCall := rec(gtx, func(gtx C) D {
		gtx.Constraints = layout.Exact(chartSize)
		return v.layoutChart(gtx, th)
	})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			chartCall.Add(gtx.Ops)
			return chartDims
		}),
		layout.Flexed(1, func(gtx C) D {
			if len(v.averages) == 0 {
				return D{Size: gtx.Constraints.Min}
			}
			return v.layoutKey(gtx, th)
		}),
	)
}

func (v *ChartView) layoutChart(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Max
	scale := gtx.Metric.PxPerDp
	if scale <= 0 {
		scale = 1
	}
	v.bounds = graph.XYWH(0, 0, float64(size.X)/float64(scale), float64(size.Y)/float64(scale))
	d, err := v.chart.Redraw(v.bounds)
	if err != nil {
		log.Printf("failed drawing chart: %v", err)
		return D{Size: size}
	}

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, v)
	area.Pop()

	// Commands are in Dp; paint them in a scaled space where one unit is
	// one Dp.
	dpGtx := gtx
	dpGtx.Metric = unit.Metric{PxPerDp: 1, PxPerSp: 1}
	transform := op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(scale, scale))).Push(gtx.Ops)
	Paint(dpGtx, th, d.Commands)
	transform.Pop()

	if d.ShowTabs {
		v.layoutTabs(gtx, th, d.TabBar, scale)
	}
	if v.isHovered {
		v.layoutHover(gtx, th, scale)
	}
	return D{Size: size}
}

// px converts a Dp rectangle from the drawing into window pixels.
func px(r graph.Rect, scale float32) image.Rectangle {
	s := float64(scale)
	return image.Rect(
		int(math.Round(r.Min.X*s)), int(math.Round(r.Min.Y*s)),
		int(math.Round(r.Max.X*s)), int(math.Round(r.Max.Y*s)),
	)
}

func (v *ChartView) layoutTabs(gtx C, th *material.Theme, bar graph.Rect, scale float32) {
	r := px(bar, scale)
	defer op.Offset(r.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(r.Size())
	titles := v.chart.PlotTitles()
	children := make([]layout.FlexChild, 0, len(titles))
	for i, title := range titles {
		children = append(children, layout.Flexed(1, Tab(th, &v.tab, strconv.Itoa(i), title).Layout))
	}
	layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
}

func (v *ChartView) layoutHover(gtx C, th *material.Theme, scale float32) {
	pos := graph.Point{X: float64(v.pos.X / scale), Y: float64(v.pos.Y / scale)}
	p, ok := v.chart.PointAt(pos, v.bounds)
	if !ok {
		return
	}
	l := material.Body2(th, fmt.Sprintf("%s: %s", p.Label, graph.FormatValue(p.Value, true)))
	gtx.Constraints.Min = image.Point{}
	dims, call := rec(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 200}, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(6).Layout(gtx, l.Layout)
			},
		)
	})
	at := image.Pt(int(v.pos.X)+gtx.Dp(12), int(v.pos.Y))
	at.X = min(at.X, gtx.Constraints.Max.X-dims.Size.X)
	at.Y = min(at.Y, gtx.Constraints.Max.Y-dims.Size.Y)
	defer op.Offset(at).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func (v *ChartView) layoutKey(gtx C, th *material.Theme) D {
	table := component.Table(th, &v.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(100)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - 2*valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		seriesNameCol
		pointsCol
		averageCol
		numCols
	)
	return table.Layout(gtx, len(v.averages), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case seriesNameCol:
				size = nameColWidth
			case pointsCol, averageCol:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Color")
			case seriesNameCol:
				l = material.Body1(th, "Data Series Name")
				l.Alignment = text.Middle
			case pointsCol:
				l = material.Body1(th, "Points")
				l.Alignment = text.End
			case averageCol:
				l = material.Body1(th, "Average")
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			a := v.averages[row]
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						sideLen := gtx.Dp(10)
						sz := image.Pt(sideLen, sideLen)
						paint.FillShape(gtx.Ops, a.ds.Color(), clip.Rect{Max: sz}.Op())
						return D{Size: sz}
					})
				case seriesNameCol:
					return material.Body2(th, a.ds.Title()).Layout(gtx)
				case pointsCol:
					l := material.Body2(th, strconv.Itoa(a.ds.Len()))
					l.Alignment = text.End
					return l.Layout(gtx)
				case averageCol:
					l := material.Body2(th, strconv.FormatFloat(a.value, 'f', 2, 64))
					l.Alignment = text.End
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				c := a.ds.Color()
				c.A = 50
				paint.FillShape(gtx.Ops, c, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
