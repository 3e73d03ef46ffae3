package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/fsnotify/fsnotify"

	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

// Status is the plot data as the UI should see it.
type Status struct {
	// Loading is set while a load is in flight.
	Loading bool
	// Sources names the files (or streams) the plots come from.
	Sources []string
	Title   string
	Plots   []graph.DataPlot
	// Err collects every problem hit by the last load. Plots may still hold
	// whatever could be decoded.
	Err error
	// Generation increases every time a load completes.
	Generation int
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

type sources struct {
	paths []string
	// following is set when the data comes from a stream that cannot be
	// reopened.
	following bool
}

// Datasource loads plot files off the UI goroutine, reloads them when they
// change on disk and publishes the result as a stream of Status values.
// Every load runs as a mutation keyed by its generation; only the newest
// one is shown.
type Datasource struct {
	pool    *stream.MutationPool[int64, Status]
	watcher *fsnotify.Watcher
	appCtx  context.Context
	sources RWBox[sources]
	loads   atomic.Int64
	// status is the latest value emitted by the newest load.
	status RWBox[Status]

	// lock serialises starting loads so that the running mutation is always
	// the newest.
	lock    sync.Mutex
	running *stream.Mutation[Status]
}

func NewDatasource(appCtx context.Context, mutator *stream.Mutator) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	d := &Datasource{
		pool:    stream.NewMutationPool[int64, Status](mutator),
		watcher: watcher,
		appCtx:  appCtx,
	}
	go d.watch()
	return d, nil
}

// Close stops watching files.
func (d *Datasource) Close() error {
	return d.watcher.Close()
}

// Status streams the status of the newest load until ctx is done. Before
// the first load it emits the empty status once.
func (d *Datasource) Status(ctx context.Context) <-chan Status {
	return stream.Multiplex(d.pool.Stream(ctx), func(ctx context.Context, shown int64, loads map[int64]*stream.Mutation[Status]) (<-chan Status, int64) {
		latest := int64(-1)
		for gen := range loads {
			latest = max(latest, gen)
		}
		if latest < 0 {
			if shown != 0 {
				return nil, shown
			}
			idle := make(chan Status, 1)
			idle <- d.Current()
			close(idle)
			return idle, -1
		}
		if latest <= shown {
			return nil, shown
		}
		return loads[latest].Stream(ctx), latest
	})
}

// Current returns the latest status.
func (d *Datasource) Current() Status {
	var s Status
	d.status.Read(func(st *Status) { s = *st })
	return s
}

// loader produces the statuses of one load through send. send reports
// false once a newer load has started.
type loader func(ctx context.Context, send func(update func(*Status)) bool)

// start runs load as a new mutation showing names as its sources, and
// cancels the load it replaces.
func (d *Datasource) start(names []string, load loader) {
	d.lock.Lock()
	defer d.lock.Unlock()
	var (
		gen  int64
		base Status
	)
	d.status.Write(func(s *Status) {
		gen = d.loads.Add(1)
		base = *s
	})
	base.Loading = true
	base.Sources = slices.Clone(names)
	mut, _ := stream.Mutate(d.pool, gen, func(ctx context.Context) <-chan Status {
		out := make(chan Status, 1)
		go func() {
			defer close(out)
			current := base
			send := func(update func(*Status)) bool {
				ok := false
				d.status.Write(func(s *Status) {
					if d.loads.Load() != gen {
						return
					}
					update(&current)
					*s = current
					ok = true
				})
				if !ok {
					return false
				}
				select {
				case out <- current:
					return true
				case <-ctx.Done():
					return false
				}
			}
			if send(func(*Status) {}) {
				load(ctx, send)
			}
			// Hold the final status in the pool until a newer load replaces it.
			<-ctx.Done()
		}()
		return out
	})
	if mut == nil {
		log.Printf("failed starting load of %v: mutator is shut down", names)
		return
	}
	old := d.running
	d.running = mut
	old.Cancel()
}

// finished is the update that ends a load with the plots of doc.
func finished(doc Document, err error) func(*Status) {
	if err != nil {
		log.Printf("failed loading plots: %v", err)
	}
	return func(s *Status) {
		s.Loading = false
		s.Title = doc.Title
		s.Plots = doc.Plots
		s.Err = err
		s.Generation++
	}
}

// LoadFiles replaces the current data with the plots of every file in
// paths, in order, and watches the files for changes. The first
// non-empty document title wins.
func (d *Datasource) LoadFiles(paths ...string) {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		if a, err := filepath.Abs(p); err == nil {
			p = a
		}
		abs = append(abs, p)
	}
	var old []string
	d.sources.Write(func(s *sources) {
		old = s.paths
		s.paths = abs
		s.following = false
	})
	d.rewatch(old, abs)
	d.start(abs, d.load(abs))
}

// Reload loads the current files again. It does nothing while following a
// stream.
func (d *Datasource) Reload() {
	var paths []string
	var following bool
	d.sources.Read(func(s *sources) {
		paths = slices.Clone(s.paths)
		following = s.following
	})
	if following || len(paths) == 0 {
		return
	}
	d.start(paths, d.load(paths))
}

func dirs(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		dir := filepath.Dir(p)
		if !slices.Contains(out, dir) {
			out = append(out, dir)
		}
	}
	return out
}

// rewatch moves the watches from the directories of old to those of
// paths. Directories are watched rather than files so that editors that
// replace a file by renaming still trigger a reload.
func (d *Datasource) rewatch(old, paths []string) {
	next := dirs(paths)
	for _, dir := range dirs(old) {
		if !slices.Contains(next, dir) {
			_ = d.watcher.Remove(dir)
		}
	}
	for _, dir := range next {
		if err := d.watcher.Add(dir); err != nil {
			log.Printf("failed watching %q: %v", dir, err)
		}
	}
}

func (d *Datasource) load(paths []string) loader {
	return func(ctx context.Context, send func(func(*Status)) bool) {
		doc, err := ReadFiles(paths...)
		send(finished(doc, err))
	}
}

// ReadFiles decodes every file in paths, in order, into a single document.
// The first non-empty title wins. Plots that decode cleanly are returned
// alongside the joined errors of those that did not.
func ReadFiles(paths ...string) (Document, error) {
	var (
		doc  Document
		errs []error
	)
	for _, path := range paths {
		part, err := loadFile(path)
		if err != nil {
			errs = append(errs, err)
		}
		if doc.Title == "" {
			doc.Title = part.Title
		}
		doc.Plots = append(doc.Plots, part.Plots...)
	}
	return doc, errors.Join(errs...)
}

func loadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed opening plot file: %w", err)
	}
	defer f.Close()
	doc, err := Decode(bufio.NewReader(f), FormatFor(path), path)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return doc, err
}

func (d *Datasource) watching(name string) bool {
	name = filepath.Clean(name)
	var ok bool
	d.sources.Read(func(s *sources) {
		ok = !s.following && slices.Contains(s.paths, name)
	})
	return ok
}

func (d *Datasource) watch() {
	for {
		select {
		case <-d.appCtx.Done():
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !d.watching(ev.Name) {
				continue
			}
			log.Printf("reloading after change to %q", ev.Name)
			d.Reload()
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		}
	}
}

// LoadFromFile asks the user for a plot file and loads it.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile(".yaml", ".yml", ".csv")
	if err != nil {
		return fmt.Errorf("failed browsing for file: %w", err)
	}
	defer file.Close()
	osFile, ok := file.(*os.File)
	if !ok {
		return fmt.Errorf("selected file of unexpected type: %T", file)
	}
	d.LoadFiles(osFile.Name())
	return nil
}

// Follow reads CSV plot data from r as it arrives and publishes a new
// status after every complete row. It is meant for pipes such as stdin.
func (d *Datasource) Follow(name string, r io.Reader) {
	var old []string
	d.sources.Write(func(s *sources) {
		old = s.paths
		s.paths = []string{name}
		s.following = true
	})
	d.rewatch(old, nil)
	d.start([]string{name}, func(ctx context.Context, send func(func(*Status)) bool) {
		follow(ctx, send, name, r)
	})
}

func follow(ctx context.Context, send func(func(*Status)) bool, name string, r io.Reader) {
	lines := NewLineReader(r)
	csvReader := csv.NewReader(lines)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	var t csvTable
	title := plotTitle(name)
	publish := func() bool {
		plot, ok, err := t.plot(title)
		if err != nil {
			return send(finished(Document{}, errors.Join(append(t.errs, err)...)))
		}
		if !ok {
			return ctx.Err() == nil
		}
		return send(finished(Document{Plots: []graph.DataPlot{plot}}, errors.Join(t.errs...)))
	}
	for {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			if tail := bytes.TrimSpace(lines.Pending()); len(tail) > 0 {
				tailReader := csv.NewReader(bytes.NewReader(tail))
				tailReader.TrimLeadingSpace = true
				if rec, err := tailReader.Read(); err == nil {
					t.add(rec)
				}
			}
			plot, ok, err := t.plot(title)
			switch {
			case err != nil:
				send(finished(Document{}, errors.Join(append(t.errs, err)...)))
			case !ok:
				send(finished(Document{}, errors.Join(append(t.errs, fmt.Errorf("%s: no primary series with data", name))...)))
			default:
				send(finished(Document{Plots: []graph.DataPlot{plot}}, errors.Join(t.errs...)))
			}
			return
		} else if err != nil {
			log.Printf("could not read plot data: %v", err)
			send(finished(Document{}, fmt.Errorf("%s: %w", name, err)))
			return
		}
		t.add(rec)
		if !publish() {
			return
		}
	}
}
