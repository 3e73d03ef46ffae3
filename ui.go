package main

import (
	"errors"
	"image"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/omnigraph/backend"
	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var reloadIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.NavigationRefresh)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	chart       *graph.Chart
	view        *ChartView
	explorerBtn widget.Clickable
	reloadBtn   widget.Clickable
	loadErr     string

	th           *material.Theme
	statusStream *stream.Stream[backend.Status]
	status       backend.Status
	generation   int
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, chart *graph.Chart) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ws:           ws,
		th:           th,
		expl:         expl,
		chart:        chart,
		view:         NewChartView(chart),
		statusStream: stream.New(ws.Controller, ws.Bundle.Datasource.Status),
	}
}

// Update the state of the UI from user input and the backend.
func (ui *UI) Update(gtx C) {
	ui.statusStream.ReadInto(gtx, &ui.status, backend.Status{})
	if ui.status.Generation != ui.generation {
		ui.generation = ui.status.Generation
		ui.loadPlots()
	}
	if ui.chart.Loading() != ui.status.Loading {
		ui.chart.SetLoading(ui.status.Loading)
	}
	if ui.explorerBtn.Clicked(gtx) {
		go func() {
			if err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil {
				log.Printf("failed opening plot file: %v", err)
			}
		}()
	}
	if ui.reloadBtn.Clicked(gtx) {
		ui.ws.Bundle.Datasource.Reload()
	}
}

// loadPlots hands the latest decoded plots to the chart, falling back to
// the first plot when the selected one no longer exists.
func (ui *UI) loadPlots() {
	ui.loadErr = ""
	if ui.status.Err != nil {
		ui.loadErr = ui.status.Err.Error()
	}
	err := ui.chart.LoadPlots(ui.status.Plots, ui.status.Title)
	if errors.Is(err, graph.ErrIndexOutOfRange) {
		if err = ui.chart.SelectPlot(0); err == nil {
			err = ui.chart.LoadPlots(ui.status.Plots, ui.status.Title)
		}
	}
	if err != nil {
		log.Printf("failed loading plots: %v", err)
		ui.loadErr = err.Error()
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	ts.label.MaxLines = 1
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

// sourceNames lists the base names of the files being shown.
func (ui *UI) sourceNames() string {
	names := make([]string, len(ui.status.Sources))
	for i, s := range ui.status.Sources {
		names[i] = filepath.Base(s)
	}
	return strings.Join(names, ", ")
}

func (ui *UI) layoutToolbar(gtx C) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return material.IconButton(ui.th, &ui.explorerBtn, openIcon, "Open plot file").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			if ui.status.Loading {
				gtx = gtx.Disabled()
			}
			return material.IconButton(ui.th, &ui.reloadBtn, reloadIcon, "Reload plot files").Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
				l := material.Body2(ui.th, ui.sourceNames())
				l.MaxLines = 1
				return l.Layout(gtx)
			})
		}),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.view.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No plots loaded.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.explorerBtn, "Open Plot File").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if len(ui.status.Sources) > 0 || ui.status.Loading {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
