// Package config loads chart options and styling from TOML files.
package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

// Config is the on-disk configuration.
type Config struct {
	Chart Chart `toml:"chart"`
	Style Style `toml:"style"`
}

// Chart configures the value axes.
type Chart struct {
	PrimaryGridLines   int    `toml:"primary_grid_lines"`
	SecondaryGridLines int    `toml:"secondary_grid_lines"`
	PrimarySuffix      string `toml:"primary_suffix"`
	SecondarySuffix    string `toml:"secondary_suffix"`
	// Policy is "range" or "sum".
	Policy string `toml:"policy"`
}

// Style overrides the renderer's visual constants. Colours are written as
// #rrggbb or #rrggbbaa.
type Style struct {
	// Legacy starts from graph.LegacyStyle instead of graph.DefaultStyle.
	Legacy bool `toml:"legacy"`

	StartColor       string `toml:"start_color"`
	EndColor         string `toml:"end_color"`
	TitleColor       string `toml:"title_color"`
	GridLineColor    string `toml:"grid_line_color"`
	AxisLabelColor   string `toml:"axis_label_color"`
	LegendLabelColor string `toml:"legend_label_color"`

	TitleSize       float64 `toml:"title_size"`
	LineWidth       float64 `toml:"line_width"`
	MarkerRadius    float64 `toml:"marker_radius"`
	GridLineWidth   float64 `toml:"grid_line_width"`
	AxisLabelSize   float64 `toml:"axis_label_size"`
	LegendLabelSize float64 `toml:"legend_label_size"`
	MaxXLabels      int     `toml:"max_x_labels"`
	EmptyMessage    string  `toml:"empty_message"`
}

// Default returns the configuration matching graph.DefaultOptions and
// graph.DefaultStyle.
func Default() Config {
	opts := graph.DefaultOptions()
	st := graph.DefaultStyle()
	return Config{
		Chart: Chart{
			PrimaryGridLines:   opts.PrimaryGridLines,
			SecondaryGridLines: opts.SecondaryGridLines,
			Policy:             opts.Policy.Name(),
		},
		Style: Style{
			StartColor:       FormatColor(st.StartColor),
			EndColor:         FormatColor(st.EndColor),
			TitleColor:       FormatColor(st.TitleColor),
			GridLineColor:    FormatColor(st.GridLineColor),
			AxisLabelColor:   FormatColor(st.AxisLabelColor),
			LegendLabelColor: FormatColor(st.LegendLabelColor),
			TitleSize:        st.TitleSize,
			LineWidth:        st.LineWidth,
			MarkerRadius:     st.MarkerRadius,
			GridLineWidth:    st.GridLineWidth,
			AxisLabelSize:    st.AxisLabelSize,
			LegendLabelSize:  st.LegendLabelSize,
			MaxXLabels:       st.MaxXLabels,
			EmptyMessage:     st.EmptyMessage,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed opening config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(bufio.NewReader(f))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed decoding config: %w", err)
	}
	if _, err := cfg.Options(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Style.Resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Options converts the [chart] table.
func (c Config) Options() (graph.Options, error) {
	policy, err := graph.PolicyByName(c.Chart.Policy)
	if err != nil {
		return graph.Options{}, err
	}
	opts := graph.Options{
		PrimaryGridLines:   c.Chart.PrimaryGridLines,
		SecondaryGridLines: c.Chart.SecondaryGridLines,
		PrimarySuffix:      c.Chart.PrimarySuffix,
		SecondarySuffix:    c.Chart.SecondarySuffix,
		Policy:             policy,
	}
	if err := opts.Validate(); err != nil {
		return graph.Options{}, err
	}
	return opts, nil
}

// Resolve applies s on top of the default or legacy style. Zero sizes and
// empty colours keep the base value.
func (s Style) Resolve() (graph.Style, error) {
	st := graph.DefaultStyle()
	if s.Legacy {
		st = graph.LegacyStyle()
	}
	for _, c := range []struct {
		name string
		in   string
		out  *color.NRGBA
	}{
		{"start_color", s.StartColor, &st.StartColor},
		{"end_color", s.EndColor, &st.EndColor},
		{"title_color", s.TitleColor, &st.TitleColor},
		{"grid_line_color", s.GridLineColor, &st.GridLineColor},
		{"axis_label_color", s.AxisLabelColor, &st.AxisLabelColor},
		{"legend_label_color", s.LegendLabelColor, &st.LegendLabelColor},
	} {
		if c.in == "" {
			continue
		}
		v, err := ParseColor(c.in)
		if err != nil {
			return graph.Style{}, fmt.Errorf("style.%s: %w", c.name, err)
		}
		*c.out = v
	}
	setPositive(&st.TitleSize, s.TitleSize)
	setPositive(&st.LineWidth, s.LineWidth)
	setPositive(&st.MarkerRadius, s.MarkerRadius)
	setPositive(&st.GridLineWidth, s.GridLineWidth)
	setPositive(&st.AxisLabelSize, s.AxisLabelSize)
	setPositive(&st.LegendLabelSize, s.LegendLabelSize)
	setPositive(&st.MaxXLabels, s.MaxXLabels)
	if s.EmptyMessage != "" {
		st.EmptyMessage = s.EmptyMessage
	}
	return st, nil
}

func setPositive[T int | float64](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa. The leading # is optional.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor is the inverse of ParseColor. Opaque colours omit the alpha.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
