package backend

import (
	"image/color"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

func TestFormatFor(t *testing.T) {
	for name, want := range map[string]Format{
		"plots.yaml":    FormatYAML,
		"dir/plots.YML": FormatYAML,
		"segments.csv":  FormatCSV,
		"notes.txt":     FormatUnknown,
		"no-extension":  FormatUnknown,
	} {
		assert.Equal(t, want, FormatFor(name), name)
	}
	_, err := Decode(strings.NewReader(""), FormatUnknown, "notes.txt")
	assert.Error(t, err)
}

func TestDecodeYAMLSample(t *testing.T) {
	f, err := os.Open("testdata/sample.yaml")
	require.NoError(t, err)
	defer f.Close()
	doc, err := DecodeYAML(f)
	require.NoError(t, err)
	assert.Equal(t, "Average Reach and Frequency by Segment", doc.Title)
	require.Len(t, doc.Plots, 3)

	all := doc.Plots[0]
	assert.Equal(t, "All", all.Title())
	require.Len(t, all.Primary(), 2)
	require.Len(t, all.Secondary(), 2)
	season := all.Primary()[0]
	assert.Equal(t, []graph.DataPoint{
		graph.Pt("Tier 1", 31.7),
		graph.Pt("Tier 2", 40),
		graph.Pt("Tier 3", 43.7),
	}, season.Points())
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, season.Color())

	reach := doc.Plots[1]
	assert.False(t, reach.HasSecondary())
	assert.Equal(t, color.NRGBA{R: 112, G: 185, B: 228, A: 0xff}, reach.Primary()[1].Color())

	// no colour given: palette by position in the file
	freq := doc.Plots[2].Primary()[0]
	assert.Equal(t, graph.PaletteColor(6), freq.Color())
}

func TestDecodeYAMLErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown field": "plots:\n  - title: a\n    colour: red\n",
		"no primary":    "plots:\n  - title: a\n    secondary:\n      - title: s\n        values: [1]\n",
		"empty series":  "plots:\n  - title: a\n    primary:\n      - title: s\n",
		"bad colour":    "plots:\n  - title: a\n    primary:\n      - title: s\n        color: blue\n        values: [1]\n",
		"too many":      "plots:\n  - title: a\n    labels: [x]\n    primary:\n      - title: s\n        values: [1, 2]\n",
		"both forms":    "plots:\n  - title: a\n    primary:\n      - title: s\n        values: [1]\n        points: [{label: x, value: 2}]\n",
		"not yaml":      "plots: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestDecodeYAMLKeepsGoodPlots(t *testing.T) {
	const doc = `
plots:
  - title: broken
    primary:
      - title: s
  - title: fine
    primary:
      - title: s
        values: [1, 2]
`
	got, err := DecodeYAML(strings.NewReader(doc))
	assert.ErrorIs(t, err, graph.ErrEmptySeries)
	require.Len(t, got.Plots, 1)
	assert.Equal(t, "fine", got.Plots[0].Title())
	assert.Equal(t, "2", got.Plots[0].Primary()[0].At(1).Label)
}

func TestDecodeCSV(t *testing.T) {
	f, err := os.Open("testdata/segments.csv")
	require.NoError(t, err)
	defer f.Close()
	doc, err := DecodeCSV(f, "testdata/segments.csv")
	require.NoError(t, err)
	require.Len(t, doc.Plots, 1)
	plot := doc.Plots[0]
	assert.Equal(t, "segments", plot.Title())
	require.Len(t, plot.Primary(), 2)
	require.Len(t, plot.Secondary(), 1)
	assert.Equal(t, "Frequency", plot.Secondary()[0].Title())
	assert.Equal(t, []float64{50, 100, 21}, plot.Primary()[1].Values())
	assert.Equal(t, "Tier 3", plot.Primary()[0].At(2).Label)
}

func TestDecodeCSVCells(t *testing.T) {
	type testcase struct {
		name    string
		input   string
		lengths []int
		err     bool
		errIs   error
	}
	for _, tc := range []testcase{
		{
			name:    "null cells are skipped",
			input:   "x,a,b\n1,1,\n2,,2\n3,3,3\n",
			lengths: []int{2, 2},
		},
		{
			name:    "short rows",
			input:   "x,a,b\n1,1\n2,2,2\n",
			lengths: []int{2, 1},
		},
		{
			name:    "bad number keeps the rest",
			input:   "x,a\n1,one\n2,2\n",
			lengths: []int{1},
			err:     true,
		},
		{
			name:    "non-finite values are skipped",
			input:   "label,a\nx,1\ny,NaN\nz,3\nw,+Inf\n",
			lengths: []int{2},
			err:     true,
			errIs:   graph.ErrInvalidValue,
		},
		{
			name:  "only secondary data",
			input: "x,a (secondary)\n1,1\n",
			err:   true,
		},
		{
			name:  "single column",
			input: "x\n1\n",
			err:   true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := DecodeCSV(strings.NewReader(tc.input), tc.name+".csv")
			if tc.err {
				assert.Error(t, err)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				}
			} else {
				assert.NoError(t, err)
			}
			if tc.lengths == nil {
				assert.Empty(t, doc.Plots)
				return
			}
			require.Len(t, doc.Plots, 1)
			sets := doc.Plots[0].DataSets()
			require.Len(t, sets, len(tc.lengths))
			for i, n := range tc.lengths {
				assert.Equal(t, n, sets[i].Len(), sets[i].Title())
			}
		})
	}
}
