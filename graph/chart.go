package graph

import (
	"fmt"
	"slices"
)

// AverageListener is told the mean of every data set drawn by a redraw.
type AverageListener interface {
	AverageComputed(ds DataSet, average float64)
}

// AverageListenerFunc adapts a function to AverageListener.
type AverageListenerFunc func(ds DataSet, average float64)

func (f AverageListenerFunc) AverageComputed(ds DataSet, average float64) { f(ds, average) }

// Chart holds the plots a host can switch between and renders the active
// one on request. It does no locking; callers serialise access.
type Chart struct {
	opts     Options
	plots    []DataPlot
	active   int
	loading  bool
	title    string
	renderer *Renderer
	listener AverageListener
	redraw   func()
}

// NewChart builds a chart showing the first of plots. plots may be empty,
// in which case the chart shows its empty state until LoadPlots is called.
func NewChart(opts Options, plots ...DataPlot) (*Chart, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Chart{
		opts:     opts.withDefaults(),
		plots:    slices.Clone(plots),
		renderer: NewRenderer(DefaultStyle(), nil),
	}, nil
}

// NewLoadingChart builds an empty chart that shows the loading overlay.
// Invalid gridline counts in opts fall back to the defaults.
func NewLoadingChart(opts Options) *Chart {
	if opts.Validate() != nil {
		opts.PrimaryGridLines, opts.SecondaryGridLines = 0, 0
	}
	return &Chart{
		opts:     opts.withDefaults(),
		loading:  true,
		renderer: NewRenderer(DefaultStyle(), nil),
	}
}

// SetRenderer replaces the renderer, for instance to change the style or
// the text measurer.
func (c *Chart) SetRenderer(r *Renderer) {
	if r == nil {
		r = NewRenderer(DefaultStyle(), nil)
	}
	c.renderer = r
	c.requestRedraw()
}

// Renderer returns the renderer in use.
func (c *Chart) Renderer() *Renderer { return c.renderer }

// SetListener registers the receiver of average notifications. A nil
// listener disables them.
func (c *Chart) SetListener(l AverageListener) { c.listener = l }

// OnRedraw registers fn to be called whenever the chart state changes in a
// way that needs a new frame.
func (c *Chart) OnRedraw(fn func()) { c.redraw = fn }

func (c *Chart) requestRedraw() {
	if c.redraw != nil {
		c.redraw()
	}
}

// Options returns the axis options in effect.
func (c *Chart) Options() Options { return c.opts }

// SetLabelSuffixes sets the strings appended to primary and secondary
// gridline labels.
func (c *Chart) SetLabelSuffixes(primary, secondary string) {
	c.opts.PrimarySuffix = primary
	c.opts.SecondarySuffix = secondary
	c.requestRedraw()
}

// SetGridLines changes the gridline counts. Both must be positive.
func (c *Chart) SetGridLines(primary, secondary int) error {
	if primary < 1 || secondary < 1 {
		return fmt.Errorf("gridline counts %d/%d must be positive", primary, secondary)
	}
	c.opts.PrimaryGridLines = primary
	c.opts.SecondaryGridLines = secondary
	c.requestRedraw()
	return nil
}

// SetPolicy changes how gridlines are spaced. Nil selects RangePolicy.
func (c *Chart) SetPolicy(p IntervalPolicy) {
	if p == nil {
		p = RangePolicy{}
	}
	c.opts.Policy = p
	c.requestRedraw()
}

// SelectPlot makes the plot at index active. An index outside the plot list
// fails with ErrIndexOutOfRange and changes nothing.
func (c *Chart) SelectPlot(index int) error {
	if index < 0 || index >= len(c.plots) {
		return fmt.Errorf("select plot %d of %d: %w", index, len(c.plots), ErrIndexOutOfRange)
	}
	c.active = index
	c.requestRedraw()
	return nil
}

// LoadPlots replaces every plot and the chart title and leaves the loading
// state. The active index is kept; if it does not address one of the new
// plots the call fails with ErrIndexOutOfRange and changes nothing. The
// optional gridLines are the primary and secondary gridline counts.
//
// An empty plot list is always accepted and, unlike any other load, resets
// the active index to 0.
func (c *Chart) LoadPlots(plots []DataPlot, title string, gridLines ...int) error {
	if len(plots) > 0 && c.active >= len(plots) {
		return fmt.Errorf("load %d plots with plot %d selected: %w", len(plots), c.active, ErrIndexOutOfRange)
	}
	opts := c.opts
	if len(gridLines) > 2 {
		return fmt.Errorf("load plots: want at most 2 gridline counts, got %d", len(gridLines))
	}
	for i, n := range gridLines {
		if n < 1 {
			return fmt.Errorf("load plots: gridline count %d must be positive", n)
		}
		if i == 0 {
			opts.PrimaryGridLines = n
		} else {
			opts.SecondaryGridLines = n
		}
	}
	c.opts = opts
	c.plots = slices.Clone(plots)
	c.title = title
	c.loading = false
	if len(c.plots) == 0 {
		c.active = 0
	}
	c.requestRedraw()
	return nil
}

// SetLoading toggles the loading overlay. It is only visible while there is
// no plot with points to draw.
func (c *Chart) SetLoading(loading bool) {
	c.loading = loading
	c.requestRedraw()
}

func (c *Chart) Loading() bool    { return c.loading }
func (c *Chart) ActiveIndex() int { return c.active }
func (c *Chart) Title() string    { return c.title }

// ActivePlot returns the plot currently shown, or false if there is none.
func (c *Chart) ActivePlot() (DataPlot, bool) {
	if c.active < 0 || c.active >= len(c.plots) {
		return DataPlot{}, false
	}
	return c.plots[c.active], true
}

// Plots returns a copy of the plot list.
func (c *Chart) Plots() []DataPlot { return slices.Clone(c.plots) }

// PlotTitles lists the plot titles in order, for driving a tab widget.
func (c *Chart) PlotTitles() []string {
	out := make([]string, len(c.plots))
	for i, p := range c.plots {
		out[i] = p.Title()
	}
	return out
}

// Scene returns the renderer input for the current state.
func (c *Chart) Scene(bounds Rect) Scene {
	plot, ok := c.ActivePlot()
	return Scene{
		Bounds:    bounds,
		Title:     c.title,
		Plot:      plot,
		HasPlot:   ok,
		PlotCount: len(c.plots),
		Loading:   c.loading,
		Options:   c.opts,
	}
}

// Redraw renders the active plot into bounds and then reports the average
// of every drawn data set to the listener, in draw order.
func (c *Chart) Redraw(bounds Rect) (Drawing, error) {
	d, err := c.renderer.Render(c.Scene(bounds))
	if err != nil {
		return Drawing{}, err
	}
	if c.listener == nil {
		return d, nil
	}
	for _, ds := range d.Drawn {
		avg, err := ComputeAverage(ds)
		if err != nil {
			return d, err
		}
		c.listener.AverageComputed(ds, avg)
	}
	return d, nil
}

// PointAt returns the data point under pos for a chart drawn into bounds.
func (c *Chart) PointAt(pos Point, bounds Rect) (DataPoint, bool) {
	plot, ok := c.ActivePlot()
	if !ok {
		return DataPoint{}, false
	}
	return PointAt(pos, bounds, plot, len(c.plots), c.renderer.Style())
}

// ComputeAverage returns the arithmetic mean of the values in ds.
func ComputeAverage(ds DataSet) (float64, error) {
	if ds.Len() == 0 {
		return 0, fmt.Errorf("average of %q: %w", ds.Title(), ErrEmptySeries)
	}
	var sum float64
	for _, p := range ds.points {
		sum += p.Value
	}
	return sum / float64(ds.Len()), nil
}
