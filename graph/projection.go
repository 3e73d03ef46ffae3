package graph

// ProjectX returns the horizontal pixel position of the point at index in a
// series of count points. A series with at most one point is centred.
func ProjectX(index, count int, area Rect) float64 {
	if count <= 1 {
		return area.Center().X
	}
	columnWidth := area.Width() / float64(count-1)
	return area.Min.X + columnWidth*float64(index)
}

// ProjectYInterval places value on an axis whose gridlines are valueInterval
// apart in data space and frameInterval apart in pixels, measured up from
// the bottom of area. A NaN or infinite result is replaced by the vertical
// midpoint of area.
func ProjectYInterval(value, valueInterval, frameInterval float64, area Rect) float64 {
	quotient := value / valueInterval
	return yOrMidpoint(area.Max.Y-quotient*frameInterval, area)
}

// ProjectYRange places value linearly between lo (bottom of area) and hi
// (top of area). When lo == hi the vertical midpoint is returned.
func ProjectYRange(value, lo, hi float64, area Rect) float64 {
	fraction := (value - lo) / (hi - lo)
	return yOrMidpoint(area.Max.Y-fraction*area.Height(), area)
}

// ProjectY places value against scale s. A degenerate scale, or any
// computation that does not produce a finite coordinate, yields the
// vertical midpoint of area.
func ProjectY(value float64, s Scale, area Rect) float64 {
	if s.Min == s.Max || s.Lines < 1 {
		return area.Center().Y
	}
	return yOrMidpoint(s.policy().Project(value, s.Min, s.Max, s.Lines, area), area)
}

// GridLineY returns the pixel row of a gridline.
func GridLineY(g GridLine, area Rect) float64 {
	return yOrMidpoint(area.Max.Y-g.Fraction*area.Height(), area)
}

func yOrMidpoint(y float64, area Rect) float64 {
	if !finite(y) {
		return area.Center().Y
	}
	return y
}
