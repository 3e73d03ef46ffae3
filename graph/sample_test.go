package graph

import "image/color"

var (
	orange = color.NRGBA{R: 0xff, G: 0x80, A: 0xff}
	cyan   = color.NRGBA{G: 0xff, B: 0xff, A: 0xff}
	black  = color.NRGBA{A: 0xff}
	red    = color.NRGBA{R: 0xff, A: 0xff}
	blue   = color.NRGBA{R: 112, G: 185, B: 228, A: 0xff}
)

func tiers(values ...float64) []DataPoint {
	out := make([]DataPoint, len(values))
	for i, v := range values {
		out[i] = Pt("Tier "+string(rune('1'+i)), v)
	}
	return out
}

func samplePlots() []DataPlot {
	season := MustDataSet("2017-18", orange, tiers(31.7, 40.0, 43.7)...)
	q2 := MustDataSet("Q2", cyan, tiers(50, 100, 21)...)
	freq := MustDataSet("Frequency", black, tiers(4.2, 1.8, 2.0)...)
	freqRed := MustDataSet("Frequency", red, tiers(6, 2, 10)...)
	freqBlue := MustDataSet("Frequency", blue, tiers(15, 5, 6)...)
	return []DataPlot{
		MustDataPlot("All", []DataSet{season, q2}, []DataSet{freq, freqRed}),
		MustDataPlot("Reach", []DataSet{freq, freqBlue}, nil),
		MustDataPlot("Frequency", []DataSet{season}, nil),
	}
}
