package backend

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.sr.ht/~gioverse/skel/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/omnigraph/graph"
)

// await reads statuses until one satisfies ok.
func await(t *testing.T, ch <-chan Status, ok func(Status) bool) Status {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-ch:
			if ok(s) {
				return s
			}
		case <-timeout:
			t.Fatalf("timed out waiting for status")
			return Status{}
		}
	}
}

func loaded(gen int) func(Status) bool {
	return func(s Status) bool { return !s.Loading && s.Generation >= gen }
}

func newTestDatasource(t *testing.T) (*Datasource, <-chan Status) {
	ctx, cancel := context.WithCancel(context.Background())
	mutator := stream.NewMutator(ctx, time.Second)
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, mutator.Shutdown())
	})
	d, err := NewDatasource(ctx, mutator)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d, d.Status(ctx)
}

func TestDatasourceLoadFiles(t *testing.T) {
	d, ch := newTestDatasource(t)
	initial := <-ch
	assert.Equal(t, 0, initial.Generation)
	assert.Empty(t, initial.Plots)

	d.LoadFiles("testdata/sample.yaml", "testdata/segments.csv")
	s := await(t, ch, loaded(1))
	require.NoError(t, s.Err)
	assert.Equal(t, "Average Reach and Frequency by Segment", s.Title)
	require.Len(t, s.Plots, 4)
	assert.Equal(t, "segments", s.Plots[3].Title())
	require.Len(t, s.Sources, 2)
	assert.True(t, filepath.IsAbs(s.Sources[0]))
	assert.Equal(t, s, d.Current())
}

func TestDatasourceReportsErrors(t *testing.T) {
	d, ch := newTestDatasource(t)
	d.LoadFiles("testdata/sample.yaml", "testdata/missing.yaml")
	s := await(t, ch, loaded(1))
	assert.ErrorIs(t, s.Err, os.ErrNotExist)
	assert.Len(t, s.Plots, 3)
}

func TestDatasourceReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,a\n1,1\n"), 0o644))

	d, ch := newTestDatasource(t)
	d.LoadFiles(path)
	s := await(t, ch, loaded(1))
	require.Len(t, s.Plots, 1)
	assert.Equal(t, 1, s.Plots[0].Primary()[0].Len())

	require.NoError(t, os.WriteFile(path, []byte("x,a\n1,1\n2,2\n"), 0o644))
	s = await(t, ch, func(s Status) bool {
		return !s.Loading && len(s.Plots) == 1 && s.Plots[0].Primary()[0].Len() == 2
	})
	assert.Equal(t, "live", s.Plots[0].Title())
}

func TestDatasourceFollow(t *testing.T) {
	d, ch := newTestDatasource(t)
	d.Follow("stdin", strings.NewReader("x,a,b (secondary)\n1,1,2\n2,3,4"))
	s := await(t, ch, func(s Status) bool {
		return !s.Loading && len(s.Plots) == 1 && s.Plots[0].Primary()[0].Len() == 2
	})
	require.NoError(t, s.Err)
	plot := s.Plots[0]
	assert.Equal(t, "stdin", plot.Title())
	require.Len(t, plot.Secondary(), 1)
	assert.Equal(t, []float64{2, 4}, plot.Secondary()[0].Values())

	// Reload has nothing to reopen while following.
	d.Reload()
	assert.False(t, d.Current().Loading)
}

func TestDatasourceFollowEmpty(t *testing.T) {
	d, ch := newTestDatasource(t)
	d.Follow("stdin", strings.NewReader(""))
	s := await(t, ch, loaded(1))
	assert.Error(t, s.Err)
	assert.Empty(t, s.Plots)
}

func TestDatasourceFollowSkipsNonFinite(t *testing.T) {
	d, ch := newTestDatasource(t)
	d.Follow("stdin", strings.NewReader("label,a\nx,1\ny,NaN\nz,3\nw,4\n"))
	s := await(t, ch, func(s Status) bool {
		return !s.Loading && len(s.Plots) == 1 && s.Plots[0].Primary()[0].Len() == 3
	})
	assert.ErrorIs(t, s.Err, graph.ErrInvalidValue)
	assert.Equal(t, []float64{1, 3, 4}, s.Plots[0].Primary()[0].Values())
}

func TestDatasourceNewestLoadWins(t *testing.T) {
	type testcase struct {
		name  string
		loads [][]string
		title string
		plots int
	}
	for _, tc := range []testcase{
		{
			name:  "single load",
			loads: [][]string{{"testdata/segments.csv"}},
			title: "segments",
			plots: 1,
		},
		{
			name: "replaced before finishing",
			loads: [][]string{
				{"testdata/sample.yaml"},
				{"testdata/segments.csv"},
			},
			title: "segments",
			plots: 1,
		},
		{
			name: "replaced twice",
			loads: [][]string{
				{"testdata/segments.csv"},
				{"testdata/missing.csv"},
				{"testdata/sample.yaml"},
			},
			plots: 3,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d, ch := newTestDatasource(t)
			for _, paths := range tc.loads {
				d.LoadFiles(paths...)
			}
			last := tc.loads[len(tc.loads)-1]
			s := await(t, ch, func(s Status) bool {
				return !s.Loading && len(s.Sources) == len(last) && filepath.Base(s.Sources[0]) == filepath.Base(last[0])
			})
			require.Len(t, s.Plots, tc.plots)
			if tc.title != "" {
				assert.Equal(t, tc.title, s.Plots[0].Title())
			}
			assert.Equal(t, s, d.Current())
		})
	}
}

func TestReadFiles(t *testing.T) {
	doc, err := ReadFiles("testdata/segments.csv", "testdata/sample.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Average Reach and Frequency by Segment", doc.Title)
	require.Len(t, doc.Plots, 4)
	assert.Equal(t, "segments", doc.Plots[0].Title())

	doc, err = ReadFiles("testdata/missing.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, doc.Plots)
}
