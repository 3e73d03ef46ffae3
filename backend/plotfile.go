package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.sr.ht/~whereswaldon/omnigraph/config"
	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

// Document is the decoded content of one plot file.
type Document struct {
	Title string
	Plots []graph.DataPlot
}

// Format identifies a plot file encoding.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// FormatFor guesses the format of a file from its extension.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// Decode reads a document in the given format. name titles CSV plots.
func Decode(r io.Reader, format Format, name string) (Document, error) {
	switch format {
	case FormatYAML:
		return DecodeYAML(r)
	case FormatCSV:
		return DecodeCSV(r, name)
	default:
		return Document{}, fmt.Errorf("%s: unsupported plot file format", name)
	}
}

type yamlDocument struct {
	Title string     `yaml:"title"`
	Plots []yamlPlot `yaml:"plots"`
}

type yamlPlot struct {
	Title string `yaml:"title"`
	// Labels name the points of series that only list values.
	Labels    []string     `yaml:"labels"`
	Primary   []yamlSeries `yaml:"primary"`
	Secondary []yamlSeries `yaml:"secondary"`
}

type yamlSeries struct {
	Title  string      `yaml:"title"`
	Color  string      `yaml:"color"`
	Points []yamlPoint `yaml:"points"`
	Values []float64   `yaml:"values"`
}

type yamlPoint struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

// DecodeYAML reads a YAML plot document. Series without a colour take the
// next colour of graph.DefaultPalette.
func DecodeYAML(r io.Reader) (Document, error) {
	var raw yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("failed decoding yaml: %w", err)
	}
	doc := Document{Title: raw.Title}
	var errs []error
	colorIdx := 0
	for i, p := range raw.Plots {
		convert := func(in []yamlSeries) []graph.DataSet {
			out := make([]graph.DataSet, 0, len(in))
			for _, s := range in {
				ds, err := s.dataSet(p.Labels, colorIdx)
				colorIdx++
				if err != nil {
					errs = append(errs, fmt.Errorf("plot %d (%q): %w", i, p.Title, err))
					continue
				}
				out = append(out, ds)
			}
			return out
		}
		primary := convert(p.Primary)
		secondary := convert(p.Secondary)
		plot, err := graph.NewDataPlot(p.Title, primary, secondary)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		doc.Plots = append(doc.Plots, plot)
	}
	return doc, errors.Join(errs...)
}

func (s yamlSeries) dataSet(labels []string, colorIdx int) (graph.DataSet, error) {
	c := graph.PaletteColor(colorIdx)
	if s.Color != "" {
		var err error
		c, err = config.ParseColor(s.Color)
		if err != nil {
			return graph.DataSet{}, fmt.Errorf("series %q: %w", s.Title, err)
		}
	}
	points := make([]graph.DataPoint, 0, len(s.Points)+len(s.Values))
	for _, p := range s.Points {
		points = append(points, graph.Pt(p.Label, p.Value))
	}
	if len(s.Points) > 0 && len(s.Values) > 0 {
		return graph.DataSet{}, fmt.Errorf("series %q: use either points or values", s.Title)
	}
	if len(labels) > 0 && len(s.Values) > len(labels) {
		return graph.DataSet{}, fmt.Errorf("series %q: %d values for %d labels", s.Title, len(s.Values), len(labels))
	}
	for i, v := range s.Values {
		label := strconv.Itoa(i + 1)
		if i < len(labels) {
			label = labels[i]
		}
		points = append(points, graph.Pt(label, v))
	}
	return graph.NewDataSet(s.Title, c, points...)
}

// secondarySuffix on a CSV heading puts that column on the secondary axis.
const secondarySuffix = "(secondary)"

// csvTable accumulates CSV records. The first column holds point labels,
// every other column is a series.
type csvTable struct {
	headings  []string
	secondary []bool
	labels    []string
	columns   [][]graph.DataPoint
	errs      []error
	line      int
}

func (t *csvTable) add(record []string) {
	t.line++
	if t.headings == nil {
		if len(record) < 2 {
			t.errs = append(t.errs, fmt.Errorf("line %d: need a label column and at least one series", t.line))
			return
		}
		for _, h := range record[1:] {
			h = strings.TrimSpace(h)
			secondary := strings.HasSuffix(strings.ToLower(h), secondarySuffix)
			if secondary {
				h = strings.TrimSpace(h[:len(h)-len(secondarySuffix)])
			}
			t.headings = append(t.headings, h)
			t.secondary = append(t.secondary, secondary)
		}
		t.columns = make([][]graph.DataPoint, len(t.headings))
		return
	}
	if len(record) == 0 {
		return
	}
	label := strings.TrimSpace(record[0])
	t.labels = append(t.labels, label)
	for i := range t.headings {
		if i+1 >= len(record) {
			break
		}
		cell := strings.TrimSpace(record[i+1])
		if len(cell) < 1 {
			// Skip null cells.
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			t.errs = append(t.errs, fmt.Errorf("line %d, column %q: %w", t.line, t.headings[i], err))
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.errs = append(t.errs, fmt.Errorf("line %d, column %q: %w", t.line, t.headings[i], graph.ErrInvalidValue))
			continue
		}
		t.columns[i] = append(t.columns[i], graph.Pt(label, v))
	}
}

// plot builds a plot from the rows seen so far. ok is false while there is
// nothing to draw yet.
func (t *csvTable) plot(title string) (plot graph.DataPlot, ok bool, err error) {
	var primary, secondary []graph.DataSet
	for i, h := range t.headings {
		if len(t.columns[i]) == 0 {
			continue
		}
		ds, err := graph.NewDataSet(h, graph.PaletteColor(i), t.columns[i]...)
		if err != nil {
			return graph.DataPlot{}, false, err
		}
		if t.secondary[i] {
			secondary = append(secondary, ds)
		} else {
			primary = append(primary, ds)
		}
	}
	if len(primary) == 0 {
		return graph.DataPlot{}, false, nil
	}
	plot, err = graph.NewDataPlot(title, primary, secondary)
	return plot, err == nil, err
}

// DecodeCSV reads one plot from CSV. The plot is titled after name with its
// directory and extension removed.
func DecodeCSV(r io.Reader, name string) (Document, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	var t csvTable
	for {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return Document{}, fmt.Errorf("failed reading CSV data: %w", err)
		}
		t.add(rec)
	}
	title := plotTitle(name)
	plot, ok, err := t.plot(title)
	if err != nil {
		return Document{}, errors.Join(append(t.errs, err)...)
	}
	if !ok {
		return Document{}, errors.Join(append(t.errs, fmt.Errorf("%s: no primary series with data", name))...)
	}
	return Document{Plots: []graph.DataPlot{plot}}, errors.Join(t.errs...)
}

func plotTitle(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
