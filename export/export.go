// Package export paints chart drawings into PNG or SVG files through the
// go-chart renderers.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

// Format is an output image format.
type Format uint8

const (
	PNG Format = iota
	SVG
)

func (f Format) String() string {
	if f == SVG {
		return "svg"
	}
	return "png"
}

// ParseFormat accepts "png" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	default:
		return PNG, fmt.Errorf("unknown image format %q (must be png or svg)", s)
	}
}

// FormatFor picks a format from a file name, defaulting to PNG.
func FormatFor(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		return SVG
	}
	return PNG
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Canvas is the part of chart.Renderer the painter needs.
type Canvas interface {
	SetStrokeColor(drawing.Color)
	SetFillColor(drawing.Color)
	SetStrokeWidth(width float64)
	MoveTo(x, y int)
	LineTo(x, y int)
	Close()
	Stroke()
	Fill()
	FillStroke()
	Circle(radius float64, x, y int)
	SetFontColor(drawing.Color)
	SetFontSize(size float64)
	Text(body string, x, y int)
	MeasureText(body string) chart.Box
}

var _ Canvas = chart.Renderer(nil)

func newRenderer(f Format, width, height int) (chart.Renderer, error) {
	r, err := f.provider()(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed creating %s renderer: %w", f, err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed loading font: %w", err)
	}
	r.SetFont(font)
	return r, nil
}

// Measurer measures text with the font the exporter draws with, so that
// layouts match the output.
type Measurer struct {
	r chart.Renderer
}

var _ graph.TextMeasurer = (*Measurer)(nil)

func NewMeasurer() (*Measurer, error) {
	r, err := newRenderer(PNG, 1, 1)
	if err != nil {
		return nil, err
	}
	return &Measurer{r: r}, nil
}

func (m *Measurer) Measure(text string, size float64) (width, height float64) {
	m.r.SetFontSize(size)
	b := m.r.MeasureText(text)
	return float64(b.Width()), float64(b.Height())
}

// Write paints d in the given format to w. The image is as large as the
// drawing's bounds.
func Write(w io.Writer, d graph.Drawing, f Format) error {
	width := int(math.Ceil(d.Bounds.Max.X))
	height := int(math.Ceil(d.Bounds.Max.Y))
	if width < 1 || height < 1 {
		return fmt.Errorf("cannot export a %dx%d drawing", width, height)
	}
	r, err := newRenderer(f, width, height)
	if err != nil {
		return err
	}
	Paint(r, d.Commands)
	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed writing %s: %w", f, err)
	}
	return nil
}

// Chart renders the active plot of c at the given size and writes it to w.
// The chart's renderer is switched to one that measures text with the
// export font.
func Chart(w io.Writer, c *graph.Chart, width, height int, f Format) error {
	m, err := NewMeasurer()
	if err != nil {
		return err
	}
	c.SetRenderer(graph.NewRenderer(c.Renderer().Style(), m))
	d, err := c.Redraw(graph.XYWH(0, 0, float64(width), float64(height)))
	if err != nil {
		return err
	}
	return Write(w, d, f)
}

func dc(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func px(v float64) int { return int(math.Round(v)) }

// gradientBands is the number of solid strips a gradient is drawn with.
const gradientBands = 32

// Paint replays cmds onto c in order.
func Paint(c Canvas, cmds []graph.Command) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case graph.Gradient:
			paintGradient(c, cmd)
		case graph.Fill:
			fillRect(c, cmd.Box, cmd.Color)
		case graph.Swatch:
			fillRect(c, cmd.Box, cmd.Color)
		case graph.Polyline:
			strokePath(c, cmd.Points, cmd.Color, cmd.Width)
		case graph.Frame:
			strokePath(c, cmd.Points, cmd.Color, cmd.Width)
		case graph.Rule:
			strokePath(c, []graph.Point{cmd.From, cmd.To}, cmd.Color, cmd.Width)
		case graph.Marker:
			c.SetFillColor(dc(cmd.Color))
			c.SetStrokeColor(dc(cmd.Color))
			c.SetStrokeWidth(0)
			c.Circle(cmd.Radius, px(cmd.Center.X), px(cmd.Center.Y))
			c.FillStroke()
		case graph.Label:
			paintLabel(c, cmd)
		case graph.Spinner:
			paintSpinner(c, cmd)
		}
	}
}

func paintGradient(c Canvas, g graph.Gradient) {
	h := g.Box.Height()
	for i := 0; i < gradientBands; i++ {
		t := float64(i) / float64(gradientBands-1)
		band := graph.Rect{
			Min: graph.Point{X: g.Box.Min.X, Y: g.Box.Min.Y + h*float64(i)/gradientBands},
			Max: graph.Point{X: g.Box.Max.X, Y: g.Box.Min.Y + h*float64(i+1)/gradientBands},
		}
		fillRect(c, band, lerp(g.From, g.To, t))
	}
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func fillRect(c Canvas, r graph.Rect, col color.NRGBA) {
	c.SetFillColor(dc(col))
	c.MoveTo(px(r.Min.X), px(r.Min.Y))
	c.LineTo(px(r.Max.X), px(r.Min.Y))
	c.LineTo(px(r.Max.X), px(r.Max.Y))
	c.LineTo(px(r.Min.X), px(r.Max.Y))
	c.Close()
	c.Fill()
}

func strokePath(c Canvas, pts []graph.Point, col color.NRGBA, width float64) {
	if len(pts) < 2 {
		return
	}
	c.SetStrokeColor(dc(col))
	c.SetStrokeWidth(width)
	c.MoveTo(px(pts[0].X), px(pts[0].Y))
	for _, p := range pts[1:] {
		c.LineTo(px(p.X), px(p.Y))
	}
	c.Stroke()
}

func paintLabel(c Canvas, l graph.Label) {
	if l.Text == "" {
		return
	}
	c.SetFontSize(l.Size)
	c.SetFontColor(dc(l.Color))
	b := c.MeasureText(l.Text)
	w := float64(b.Width())
	x := l.Box.Min.X
	switch l.Align {
	case graph.AlignMiddle:
		x = l.Box.Center().X - w/2
	case graph.AlignEnd:
		x = l.Box.Max.X - w
	}
	// Text is positioned by its baseline.
	y := l.Box.Center().Y + float64(b.Height())/2
	c.Text(l.Text, px(x), px(y))
}

// spinnerDots is the number of dots in the static activity indicator.
const spinnerDots = 8

func paintSpinner(c Canvas, s graph.Spinner) {
	dot := max(s.Radius/6, 1)
	for i := 0; i < spinnerDots; i++ {
		angle := 2 * math.Pi * float64(i) / spinnerDots
		col := s.Color
		col.A = uint8(float64(col.A) * float64(i+1) / spinnerDots)
		c.SetFillColor(dc(col))
		c.SetStrokeColor(dc(col))
		c.SetStrokeWidth(0)
		c.Circle(dot, px(s.Center.X+math.Cos(angle)*s.Radius), px(s.Center.Y+math.Sin(angle)*s.Radius))
		c.FillStroke()
	}
}
