// Command omnigraph-render draws one plot from YAML or CSV plot files into
// a PNG or SVG image.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/omnigraph/backend"
	"git.sr.ht/~whereswaldon/omnigraph/config"
	"git.sr.ht/~whereswaldon/omnigraph/export"
	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

type options struct {
	outputPath string
	format     string
	width      int
	height     int
	plot       int
	configPath string
	policy     string
	title      string
	list       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	rootCmd := &cobra.Command{
		Use:   "omnigraph-render [plot files...]",
		Short: "Render a dual-axis line chart to an image",
		Long: `omnigraph-render loads plots from YAML or CSV files and draws
the selected one as a PNG or SVG image.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&opts.format, "format", "", "Image format: png or svg (default: from the output extension)")
	rootCmd.Flags().IntVar(&opts.width, "width", 800, "Image width in pixels")
	rootCmd.Flags().IntVar(&opts.height, "height", 600, "Image height in pixels")
	rootCmd.Flags().IntVar(&opts.plot, "plot", 0, "Index of the plot to draw")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "TOML configuration file")
	rootCmd.Flags().StringVar(&opts.policy, "policy", "", "Interval policy override: range or sum")
	rootCmd.Flags().StringVar(&opts.title, "title", "", "Chart title (default: the first file's title)")
	rootCmd.Flags().BoolVar(&opts.list, "list", false, "List the plots instead of drawing one")
	return rootCmd
}

func run(cmd *cobra.Command, opts options, args []string) error {
	if opts.width < 1 || opts.height < 1 {
		return fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.policy != "" {
		cfg.Chart.Policy = opts.policy
	}
	chartOpts, err := cfg.Options()
	if err != nil {
		return err
	}
	style, err := cfg.Style.Resolve()
	if err != nil {
		return err
	}

	doc, err := backend.ReadFiles(args...)
	if err != nil {
		if len(doc.Plots) == 0 {
			return err
		}
		log.Printf("skipping unreadable plots: %v", err)
	}

	if opts.list {
		for i, p := range doc.Plots {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, p.Title())
		}
		return nil
	}

	format := export.FormatFor(opts.outputPath)
	if opts.format != "" {
		if format, err = export.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	title := doc.Title
	if opts.title != "" {
		title = opts.title
	}
	c, err := graph.NewChart(chartOpts)
	if err != nil {
		return err
	}
	c.SetRenderer(graph.NewRenderer(style, nil))
	if err := c.LoadPlots(doc.Plots, title); err != nil {
		return err
	}
	// With no plots at all the chart draws its empty message.
	if len(doc.Plots) > 0 || opts.plot != 0 {
		if err := c.SelectPlot(opts.plot); err != nil {
			return err
		}
	}

	render := func(w io.Writer) error {
		return export.Chart(w, c, opts.width, opts.height, format)
	}
	if opts.outputPath != "" && opts.outputPath != "-" {
		return writeFile(opts.outputPath, render)
	}
	return render(cmd.OutOrStdout())
}

// writeFile creates path and fills it with write through a buffer. Flush
// and close errors are returned too.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed creating output: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed writing output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed closing output: %w", err)
	}
	return nil
}
