package pipeline_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/toplinks"
	"github.com/fwojciec/toplinks/fs"
	"github.com/fwojciec/toplinks/goquery"
	tlhttp "github.com/fwojciec/toplinks/http"
	"github.com/fwojciec/toplinks/mock"
	"github.com/fwojciec/toplinks/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloPage = `<html><body><div><a href="/x">Hello, World!</a></div></body></html>`

func newPageServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newPipeline(dir string, tools *fakeTools, sources ...string) *pipeline.Pipeline {
	srcs := make([]toplinks.Source, len(sources))
	for i, s := range sources {
		srcs[i] = toplinks.Source(s)
	}
	publisher := newPublisher(tools, toplinks.ContinueOnFailure)
	publisher.Writer = fs.NewCSVWriter(dir)
	return &pipeline.Pipeline{
		Sources: srcs,
		Harvester: &pipeline.Harvester{
			Fetcher:   tlhttp.NewFetcher(),
			Extractor: goquery.NewAnchorExtractor(),
			Now:       func() time.Time { return fixedNow },
		},
		Publisher: publisher,
	}
}

func readDataset(t *testing.T, path string) toplinks.Dataset {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	d, err := fs.DecodeDataset(f)
	require.NoError(t, err)
	return d
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("publishes normalized links from every source", func(t *testing.T) {
		t.Parallel()

		a := newPageServer(t, http.StatusOK, helloPage)
		b := newPageServer(t, http.StatusOK, helloPage)
		dir := t.TempDir()
		tools := newFakeTools()
		p := newPipeline(dir, tools, a.URL, b.URL)
		rc := toplinks.NewRunContext("run-1")

		run, err := p.Run(context.Background(), rc)

		require.NoError(t, err)
		assert.Equal(t, "run-1", run.ID)
		assert.Equal(t, toplinks.StatePublished, run.State)
		assert.Equal(t, 2, run.Records)
		assert.Equal(t, "top_links.csv", run.ArtifactPath)
		assert.NotEmpty(t, run.Checksum)
		assert.Empty(t, run.Error)

		d := readDataset(t, filepath.Join(dir, "top_links.csv"))
		require.Len(t, d, 2)
		for i, src := range []string{a.URL, b.URL} {
			assert.Equal(t, "hello world", d[i].Title)
			assert.Equal(t, "/x", d[i].Link)
			assert.Equal(t, "hello world", d[i].Description)
			assert.Equal(t, toplinks.Source(src), d[i].Source)
		}

		harvested, ok := rc.Get(toplinks.KeyTopLinks)
		require.True(t, ok)
		assert.Equal(t, "Hello, World!", harvested[0].Title)
		transformed, ok := rc.Get(toplinks.KeyTransformedData)
		require.True(t, ok)
		assert.Equal(t, "hello world", transformed[0].Title)
	})

	t.Run("rerun against initialized directory skips guarded steps", func(t *testing.T) {
		t.Parallel()

		a := newPageServer(t, http.StatusOK, helloPage)
		tools := newFakeTools()
		p := newPipeline(t.TempDir(), tools, a.URL)

		_, err := p.Run(context.Background(), nil)
		require.NoError(t, err)
		run, err := p.Run(context.Background(), nil)
		require.NoError(t, err)

		got := outcomes(run.Steps)
		for _, step := range []toplinks.Step{
			toplinks.StepGitInit, toplinks.StepDVCInit, toplinks.StepDVCRemote, toplinks.StepGitRemote,
		} {
			assert.Equal(t, toplinks.OutcomeSkipped, got[step], step)
		}
		assert.Equal(t, toplinks.StatePublished, run.State)
	})

	t.Run("soft-fails unavailable sources", func(t *testing.T) {
		t.Parallel()

		down := newPageServer(t, http.StatusServiceUnavailable, "")
		up := newPageServer(t, http.StatusOK, helloPage)
		dir := t.TempDir()
		p := newPipeline(dir, newFakeTools(), down.URL, up.URL)

		run, err := p.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, run.Records)
		d := readDataset(t, filepath.Join(dir, "top_links.csv"))
		require.Len(t, d, 1)
		assert.Equal(t, toplinks.Source(up.URL), d[0].Source)
	})

	t.Run("no data halts before writing", func(t *testing.T) {
		t.Parallel()

		down := newPageServer(t, http.StatusInternalServerError, "")
		dir := t.TempDir()
		tools := newFakeTools()
		p := newPipeline(dir, tools, down.URL)
		rc := toplinks.NewRunContext("run-2")

		run, err := p.Run(context.Background(), rc)

		assert.Equal(t, toplinks.ENODATA, toplinks.ErrorCode(err))
		assert.Equal(t, toplinks.StatePending, run.State)
		assert.NotEmpty(t, run.Error)
		assert.Empty(t, rc.Keys())
		assert.NoFileExists(t, filepath.Join(dir, "top_links.csv"))
		assert.Empty(t, tools.calls)
	})

	t.Run("records runs in the ledger", func(t *testing.T) {
		t.Parallel()

		a := newPageServer(t, http.StatusOK, helloPage)
		p := newPipeline(t.TempDir(), newFakeTools(), a.URL)
		var recorded *toplinks.Run
		p.Runs = &mock.RunService{
			CreateRunFn: func(_ context.Context, run *toplinks.Run) error {
				recorded = run
				return nil
			},
		}

		run, err := p.Run(context.Background(), nil)

		require.NoError(t, err)
		require.NotNil(t, recorded)
		assert.Equal(t, run.ID, recorded.ID)
		assert.NotEmpty(t, run.ID)
		assert.Len(t, recorded.Steps, len(toplinks.Steps))
		assert.False(t, recorded.FinishedAt.Before(recorded.StartedAt))
	})

	t.Run("records failed runs in the ledger", func(t *testing.T) {
		t.Parallel()

		down := newPageServer(t, http.StatusNotFound, "")
		p := newPipeline(t.TempDir(), newFakeTools(), down.URL)
		var recorded *toplinks.Run
		p.Runs = &mock.RunService{
			CreateRunFn: func(_ context.Context, run *toplinks.Run) error {
				recorded = run
				return nil
			},
		}

		_, err := p.Run(context.Background(), nil)

		require.Error(t, err)
		require.NotNil(t, recorded)
		assert.Equal(t, toplinks.StatePending, recorded.State)
		assert.NotEmpty(t, recorded.Error)
	})
}
