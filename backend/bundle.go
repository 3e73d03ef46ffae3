package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the application-wide backend services shared by windows.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(ctx context.Context, mutator *stream.Mutator) (Bundle, error) {
	ds, err := NewDatasource(ctx, mutator)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		Datasource: ds,
	}, nil
}
