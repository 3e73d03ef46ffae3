package main

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

func pt(p graph.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

func rect(r graph.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

// Paint draws cmds in order. Coordinates are taken as-is, so the caller
// sets up any transform between drawing units and pixels.
func Paint(gtx C, th *material.Theme, cmds []graph.Command) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case graph.Gradient:
			paintGradient(gtx, cmd)
		case graph.Fill:
			paint.FillShape(gtx.Ops, cmd.Color, clip.Rect(rect(cmd.Box)).Op())
		case graph.Swatch:
			paint.FillShape(gtx.Ops, cmd.Color, clip.Rect(rect(cmd.Box)).Op())
		case graph.Polyline:
			strokePath(gtx, cmd.Points, cmd.Color, cmd.Width)
		case graph.Frame:
			strokePath(gtx, cmd.Points, cmd.Color, cmd.Width)
		case graph.Rule:
			strokePath(gtx, []graph.Point{cmd.From, cmd.To}, cmd.Color, cmd.Width)
		case graph.Marker:
			r := cmd.Radius
			box := rect(graph.Rect{
				Min: graph.Point{X: cmd.Center.X - r, Y: cmd.Center.Y - r},
				Max: graph.Point{X: cmd.Center.X + r, Y: cmd.Center.Y + r},
			})
			paint.FillShape(gtx.Ops, cmd.Color, clip.Ellipse{Min: box.Min, Max: box.Max}.Op(gtx.Ops))
		case graph.Label:
			paintLabel(gtx, th, cmd)
		case graph.Spinner:
			paintSpinner(gtx, th, cmd)
		}
	}
}

func paintGradient(gtx C, g graph.Gradient) {
	defer clip.Rect(rect(g.Box)).Push(gtx.Ops).Pop()
	paint.LinearGradientOp{
		Stop1:  pt(g.Box.Min),
		Color1: g.From,
		Stop2:  f32.Pt(float32(g.Box.Min.X), float32(g.Box.Max.Y)),
		Color2: g.To,
	}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

func strokePath(gtx C, pts []graph.Point, col color.NRGBA, width float64) {
	if len(pts) < 2 {
		return
	}
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(pt(pts[0]))
	for _, q := range pts[1:] {
		p.LineTo(pt(q))
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  p.End(),
		Width: float32(width),
	}.Op())
}

func paintLabel(gtx C, th *material.Theme, l graph.Label) {
	label := material.Label(th, unit.Sp(l.Size), l.Text)
	label.Color = l.Color
	label.MaxLines = 1
	if l.Role == graph.RoleTitle {
		label.Font.Weight = font.SemiBold
	}
	gtx.Constraints = layout.Constraints{Max: image.Pt(math.MaxInt32/2, gtx.Constraints.Max.Y)}
	dims, call := rec(gtx, label.Layout)
	var x float64
	switch l.Align {
	case graph.AlignStart:
		x = l.Box.Min.X
	case graph.AlignMiddle:
		x = l.Box.Center().X - float64(dims.Size.X)/2
	case graph.AlignEnd:
		x = l.Box.Max.X - float64(dims.Size.X)
	}
	y := l.Box.Center().Y - float64(dims.Size.Y)/2
	defer op.Offset(image.Pt(int(math.Round(x)), int(math.Round(y)))).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func paintSpinner(gtx C, th *material.Theme, s graph.Spinner) {
	loader := material.Loader(th)
	loader.Color = s.Color
	r := s.Radius
	box := rect(graph.Rect{
		Min: graph.Point{X: s.Center.X - r, Y: s.Center.Y - r},
		Max: graph.Point{X: s.Center.X + r, Y: s.Center.Y + r},
	})
	defer op.Offset(box.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(box.Size())
	loader.Layout(gtx)
}
