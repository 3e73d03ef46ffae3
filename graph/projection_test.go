package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectX(t *testing.T) {
	area := XYWH(10, 20, 200, 100)
	for _, count := range []int{2, 3, 6, 17} {
		assert.Equal(t, 10.0, ProjectX(0, count, area), "count %d", count)
		assert.InDelta(t, 210.0, ProjectX(count-1, count, area), 1e-9, "count %d", count)
	}
	assert.Equal(t, 110.0, ProjectX(1, 3, area))
}

func TestProjectXSinglePointIsCentred(t *testing.T) {
	for _, w := range []float64{1, 50, 333, 1024} {
		area := XYWH(7, 0, w, 10)
		assert.Equal(t, 7+w/2, ProjectX(0, 1, area))
		assert.Equal(t, 7+w/2, ProjectX(0, 0, area))
	}
}

func TestProjectYDegenerate(t *testing.T) {
	area := XYWH(0, 20, 100, 100)
	for _, tc := range []struct {
		name  string
		scale Scale
		value float64
	}{
		{name: "range", scale: Scale{Min: 5, Max: 5, Lines: 10}, value: 5},
		{name: "sum", scale: Scale{Min: 0, Max: 0, Lines: 10, Policy: SumPolicy{}}, value: 0},
		{name: "no lines", scale: Scale{Min: 0, Max: 10, Lines: 0, Policy: SumPolicy{}}, value: 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			y := ProjectY(tc.value, tc.scale, area)
			assert.False(t, math.IsNaN(y))
			assert.Equal(t, 70.0, y)
		})
	}
	assert.Equal(t, 70.0, ProjectYInterval(0, 0, 10, area))
	assert.Equal(t, 70.0, ProjectYRange(3, 3, 3, area))
}

func TestProjectYRange(t *testing.T) {
	area := XYWH(0, 20, 100, 100)
	s := Scale{Min: 31.7, Max: 43.7, Lines: 10}
	assert.Equal(t, 120.0, ProjectY(31.7, s, area))
	assert.InDelta(t, 20.0, ProjectY(43.7, s, area), 1e-9)
	assert.InDelta(t, 70.0, ProjectY(37.7, s, area), 1e-9)
}

func TestProjectYSum(t *testing.T) {
	area := XYWH(0, 20, 100, 100)
	s := Scale{Min: 1, Max: 9, Lines: 5, Policy: SumPolicy{}}
	// interval 2 per 20px step
	assert.Equal(t, 80.0, ProjectY(4, s, area))
	assert.Equal(t, 120.0, ProjectY(0, s, area))
}

func TestGridLineY(t *testing.T) {
	area := XYWH(0, 20, 100, 100)
	assert.Equal(t, 120.0, GridLineY(GridLine{Fraction: 0}, area))
	assert.Equal(t, 20.0, GridLineY(GridLine{Fraction: 1}, area))
	assert.Equal(t, 70.0, GridLineY(GridLine{Fraction: math.NaN()}, area))
}
