package main

import (
	"image"
	"image/color"
	"testing"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

func testChart(t *testing.T) *graph.Chart {
	t.Helper()
	orange := color.NRGBA{R: 0xff, G: 0x80, A: 0xff}
	black := color.NRGBA{A: 0xff}
	season := graph.MustDataSet("2017-18", orange, graph.Pt("Tier 1", 31.7), graph.Pt("Tier 2", 40), graph.Pt("Tier 3", 43.7))
	freq := graph.MustDataSet("Frequency", black, graph.Pt("Tier 1", 4.2), graph.Pt("Tier 2", 1.8), graph.Pt("Tier 3", 2))
	c, err := graph.NewChart(graph.DefaultOptions(),
		graph.MustDataPlot("All", []graph.DataSet{season}, []graph.DataSet{freq}),
		graph.MustDataPlot("Reach", []graph.DataSet{freq}, nil),
	)
	require.NoError(t, err)
	return c
}

func TestChartViewCollectsAverages(t *testing.T) {
	c := testChart(t)
	v := NewChartView(c)
	_, err := c.Redraw(graph.XYWH(0, 0, 800, 600))
	require.NoError(t, err)
	require.Len(t, v.averages, 2)
	assert.Equal(t, "2017-18", v.averages[0].ds.Title())
	assert.InDelta(t, 38.4667, v.averages[0].value, 1e-3)
	assert.Equal(t, "Frequency", v.averages[1].ds.Title())
	assert.InDelta(t, 2.6667, v.averages[1].value, 1e-3)
}

func TestPx(t *testing.T) {
	for _, tc := range []struct {
		name  string
		in    graph.Rect
		scale float32
		want  image.Rectangle
	}{
		{"identity", graph.XYWH(10, 20, 30, 40), 1, image.Rect(10, 20, 40, 60)},
		{"double", graph.XYWH(10, 20, 30, 40), 2, image.Rect(20, 40, 80, 120)},
		{"rounds", graph.XYWH(0.4, 0.6, 1, 1), 1.5, image.Rect(1, 1, 2, 2)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, px(tc.in, tc.scale))
		})
	}
}

func TestPaintDrawing(t *testing.T) {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(800, 600)),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
	}

	c := testChart(t)
	d, err := c.Redraw(graph.XYWH(0, 0, 800, 600))
	require.NoError(t, err)
	assert.NotPanics(t, func() { Paint(gtx, th, d.Commands) })

	c.SetLoading(true)
	require.NoError(t, c.LoadPlots(nil, ""))
	c.SetLoading(true)
	d, err = c.Redraw(graph.XYWH(0, 0, 800, 600))
	require.NoError(t, err)
	require.True(t, d.Loading)
	assert.NotPanics(t, func() { Paint(gtx, th, d.Commands) })
}
