// Command omnigraph shows dual-axis line charts of YAML or CSV plot files in
// a window and reloads them when they change. Pass "-" to follow CSV rows
// arriving on stdin.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/omnigraph/backend"
	"git.sr.ht/~whereswaldon/omnigraph/config"
	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

func main() {
	configPath := flag.String("config", "", "TOML file with chart options and style")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	style, err := cfg.Style.Resolve()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	mutator := stream.NewMutator(ctx, time.Second)
	bundle, err := backend.NewBundle(ctx, mutator)
	if err != nil {
		log.Fatalf("failed starting backend: %v", err)
	}

	chart, err := graph.NewChart(opts)
	if err != nil {
		log.Fatal(err)
	}
	chart.SetRenderer(graph.NewRenderer(style, nil))

	switch args := flag.Args(); {
	case len(args) == 1 && args[0] == "-":
		bundle.Datasource.Follow("stdin", os.Stdin)
	case len(args) > 0:
		bundle.Datasource.LoadFiles(args...)
	}

	go func() {
		w := app.NewWindow(app.Title("OmniGraph"))
		err := loop(w, backend.NewWindowState(ctx, bundle, w), chart)
		cancel()
		bundle.Datasource.Close()
		if err := mutator.Shutdown(); err != nil {
			log.Printf("failed stopping loads: %v", err)
		}
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()

	app.Main()
}

func loop(w *app.Window, ws backend.WindowState, chart *graph.Chart) error {
	expl := explorer.NewExplorer(w)
	ui := NewUI(ws, expl, chart)
	chart.OnRedraw(w.Invalidate)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
