package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandsOf[T Command](cmds []Command) []T {
	var out []T
	for _, c := range cmds {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func labelsWithRole(cmds []Command, role LabelRole) []Label {
	var out []Label
	for _, l := range commandsOf[Label](cmds) {
		if l.Role == role {
			out = append(out, l)
		}
	}
	return out
}

func TestPlotArea(t *testing.T) {
	st := DefaultStyle()
	bounds := XYWH(0, 0, 800, 600)
	assert.Equal(t, XYWH(100, 180, 600, 240), PlotArea(bounds, 1, st))
	assert.Equal(t, XYWH(100, 160, 600, 240), PlotArea(bounds, 2, st))
	assert.Equal(t, XYWH(110, 190, 600, 240), PlotArea(bounds.Add(Point{X: 10, Y: 10}), 0, st))
}

func TestRenderFallback(t *testing.T) {
	r := NewRenderer(DefaultStyle(), nil)
	bounds := XYWH(0, 0, 800, 600)
	for _, tc := range []struct {
		name    string
		loading bool
	}{
		{name: "empty", loading: false},
		{name: "loading", loading: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d, err := r.Render(Scene{Bounds: bounds, Loading: tc.loading, Title: "Averages"})
			require.NoError(t, err)
			assert.True(t, d.Empty)
			assert.Equal(t, tc.loading, d.Loading)
			assert.Empty(t, commandsOf[Polyline](d.Commands))
			assert.Empty(t, commandsOf[Rule](d.Commands))
			assert.Empty(t, d.Legend.Items)
			assert.Empty(t, d.Drawn)
			require.Len(t, commandsOf[Frame](d.Commands), 1)
			assert.IsType(t, Gradient{}, d.Commands[0])
			assert.Len(t, labelsWithRole(d.Commands, RoleTitle), 1)

			msgs := labelsWithRole(d.Commands, RoleMessage)
			spinners := commandsOf[Spinner](d.Commands)
			if tc.loading {
				assert.Empty(t, msgs)
				require.Len(t, spinners, 1)
				assert.Equal(t, bounds.Center(), spinners[0].Center)
				assert.Len(t, commandsOf[Fill](d.Commands), 1)
			} else {
				assert.Empty(t, spinners)
				require.Len(t, msgs, 1)
				assert.Equal(t, "No Data Available", msgs[0].Text)
				assert.InDelta(t, 400, msgs[0].Box.Center().X, 1e-9)
				assert.Equal(t, 300.0, msgs[0].Box.Max.Y)
			}
		})
	}
}

func TestRenderDualAxis(t *testing.T) {
	st := DefaultStyle()
	r := NewRenderer(st, nil)
	bounds := XYWH(0, 0, 800, 600)
	plot := samplePlots()[0]
	opts := DefaultOptions()
	opts.PrimarySuffix = "%"
	opts.SecondarySuffix = "x"

	d, err := r.Render(Scene{Bounds: bounds, Plot: plot, HasPlot: true, PlotCount: 1, Options: opts})
	require.NoError(t, err)
	assert.False(t, d.Empty)
	assert.False(t, d.ShowTabs)
	assert.True(t, d.HasSecondary)
	assert.Equal(t, 21.0, d.Primary.Min)
	assert.Equal(t, 100.0, d.Primary.Max)
	assert.Equal(t, 1.8, d.Secondary.Min)
	assert.Equal(t, 10.0, d.Secondary.Max)
	require.Len(t, d.Drawn, 4)

	lines := commandsOf[Polyline](d.Commands)
	require.Len(t, lines, 4)
	for i, l := range lines {
		assert.Equal(t, i, l.Series)
		assert.Len(t, l.Points, 3)
		assert.Equal(t, d.Drawn[i].Color(), l.Color)
	}
	assert.Equal(t, AxisPrimary, lines[1].Axis)
	assert.Equal(t, AxisSecondary, lines[2].Axis)
	// Q2 peaks at the primary maximum.
	assert.Equal(t, Point{X: 400, Y: d.PlotArea.Min.Y}, lines[1].Points[1])
	assert.Len(t, commandsOf[Marker](d.Commands), 12)

	rules := commandsOf[Rule](d.Commands)
	assert.Len(t, rules, 11+6)
	for _, rule := range rules {
		assert.Equal(t, d.PlotArea.Min.X, rule.From.X)
		assert.Equal(t, d.PlotArea.Max.X, rule.To.X)
	}

	values := labelsWithRole(d.Commands, RoleAxisValue)
	require.Len(t, values, 17)
	for _, l := range values[:11] {
		assert.True(t, strings.HasSuffix(l.Text, "%"), l.Text)
		assert.InDelta(t, d.PlotArea.Min.X-st.SideLabelGap, l.Box.Max.X, 1e-9)
		assert.Equal(t, AlignEnd, l.Align)
	}
	for _, l := range values[11:] {
		assert.True(t, strings.HasSuffix(l.Text, "x"), l.Text)
		assert.Equal(t, d.PlotArea.Max.X+st.SideLabelGap, l.Box.Min.X)
		assert.Equal(t, AlignStart, l.Align)
	}
	assert.Equal(t, "21%", values[0].Text)
	assert.Equal(t, "100%", values[10].Text)
	assert.Equal(t, "1.8x", values[11].Text)
	assert.Equal(t, "10x", values[16].Text)

	cats := labelsWithRole(d.Commands, RoleCategory)
	require.Len(t, cats, 3)
	assert.Equal(t, "Tier 1", cats[0].Text)
	assert.Equal(t, "Tier 3", cats[2].Text)

	assert.Equal(t, 2, d.Legend.Rows)
	assert.Len(t, commandsOf[Swatch](d.Commands), 4)
	assert.Len(t, labelsWithRole(d.Commands, RoleLegend), 4)
	assert.Empty(t, commandsOf[Spinner](d.Commands))
}

func TestRenderTabs(t *testing.T) {
	st := DefaultStyle()
	r := NewRenderer(st, nil)
	bounds := XYWH(0, 0, 800, 600)
	d, err := r.Render(Scene{Bounds: bounds, Plot: samplePlots()[1], HasPlot: true, PlotCount: 3})
	require.NoError(t, err)
	assert.True(t, d.ShowTabs)
	assert.False(t, d.HasSecondary)
	assert.Equal(t, st.TabBarInset, d.TabBar.Min.X)
	assert.Equal(t, 800-st.TabBarInset, d.TabBar.Max.X)
	assert.Equal(t, st.TabBarHeight, d.TabBar.Height())
	assert.Greater(t, d.TabBar.Min.Y, d.PlotArea.Max.Y)
	assert.Equal(t, d.TabBar.Max.Y, d.Legend.Box.Min.Y)
	// default options fill in zero gridline counts
	assert.Equal(t, DefaultPrimaryGridLines, d.Primary.Lines)
}

func TestCategoryLabels(t *testing.T) {
	st := DefaultStyle()
	r := NewRenderer(st, nil)
	for _, tc := range []struct {
		name    string
		width   float64
		points  int
		labels  int
		stagger bool
	}{
		{name: "single point", width: 800, points: 1, labels: 0},
		{name: "two points", width: 800, points: 2, labels: 2},
		{name: "capped", width: 2000, points: 10, labels: 6},
		{name: "crowded", width: 200, points: 6, labels: 6, stagger: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			values := make([]float64, tc.points)
			for i := range values {
				values[i] = float64(i)
			}
			ds := MustDataSet("s", orange, tiers(values...)...)
			area := PlotArea(XYWH(0, 0, tc.width, 600), 1, st)
			labels := commandsOf[Label](r.categoryLabels(ds, area))
			require.Len(t, labels, tc.labels)
			if tc.labels == 0 {
				return
			}
			top := area.Max.Y + st.XLabelGap
			assert.Equal(t, top, labels[0].Box.Min.Y)
			assert.InDelta(t, ProjectX(0, tc.points, area), labels[0].Box.Center().X, 1e-9)
			assert.InDelta(t, ProjectX(tc.points-1, tc.points, area), labels[len(labels)-1].Box.Center().X, 1e-9)
			for _, l := range labels[1:] {
				if tc.stagger {
					assert.Equal(t, top+st.XLabelStagger, l.Box.Min.Y, l.Text)
				} else {
					assert.Equal(t, top, l.Box.Min.Y, l.Text)
				}
			}
		})
	}
}

func TestPointAt(t *testing.T) {
	st := DefaultStyle()
	bounds := XYWH(0, 0, 800, 600)
	plot := samplePlots()[2]
	for _, tc := range []struct {
		pos   Point
		label string
		ok    bool
	}{
		{pos: Point{X: 95, Y: 300}, label: "Tier 1", ok: true},
		{pos: Point{X: 400, Y: 300}, label: "Tier 2", ok: true},
		{pos: Point{X: 705, Y: 300}, label: "Tier 3", ok: true},
		{pos: Point{X: 400, Y: 10}},
		{pos: Point{X: 50, Y: 300}},
	} {
		p, ok := PointAt(tc.pos, bounds, plot, 1, st)
		assert.Equal(t, tc.ok, ok, "%v", tc.pos)
		assert.Equal(t, tc.label, p.Label, "%v", tc.pos)
	}
	_, ok := PointAt(Point{X: 400, Y: 300}, bounds, DataPlot{}, 1, st)
	assert.False(t, ok)
}
