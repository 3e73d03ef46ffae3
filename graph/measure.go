package graph

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextMeasurer reports the size of a single line of text at a font size.
type TextMeasurer interface {
	Measure(text string, size float64) (width, height float64)
}

// BasicMeasurer measures text with the metrics of the fixed 7x13 bitmap
// face, scaled linearly to the requested size. It needs no font files and
// is deterministic, which makes layouts reproducible across hosts.
type BasicMeasurer struct{}

var _ TextMeasurer = BasicMeasurer{}

func (BasicMeasurer) Measure(text string, size float64) (width, height float64) {
	face := basicfont.Face7x13
	scale := size / float64(face.Height)
	advance := font.MeasureString(face, text)
	return float64(advance.Ceil()) * scale, size
}
