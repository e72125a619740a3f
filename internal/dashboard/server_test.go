package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
	"github.com/qepting91/reddit-book-reviews/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	calls  atomic.Int32
	report pipeline.Report
}

func (s *stubRunner) Run(ctx context.Context, title string) pipeline.Report {
	s.calls.Add(1)
	rep := s.report
	rep.Title = title
	return rep
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestIndex_FormOnly(t *testing.T) {
	runner := &stubRunner{}
	ts := httptest.NewServer(NewServer(runner, time.Minute, nil).Handler())
	defer ts.Close()

	code, body := get(t, ts, "/")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `name="title"`)
	assert.Equal(t, int32(0), runner.calls.Load())
}

func TestIndex_RendersResultsAndCaches(t *testing.T) {
	runner := &stubRunner{report: pipeline.Report{Threads: []pipeline.ThreadReport{
		{
			Thread: domain.ThreadDescriptor{URL: "https://www.reddit.com/r/books/comments/a/", Title: "Dune thread"},
			Result: domain.Succeeded([]domain.CommentRecord{{Author: "muad", Body: "Spice <must> flow", Score: 9}}),
		},
		{
			Thread: domain.ThreadDescriptor{URL: "https://www.reddit.com/r/books/comments/b/"},
			Result: domain.Failed(domain.NewDiagnostic(domain.KindTransport, "timeout")),
		},
	}}}
	ts := httptest.NewServer(NewServer(runner, time.Minute, nil).Handler())
	defer ts.Close()

	code, body := get(t, ts, "/?title="+url.QueryEscape("Dune"))

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Dune thread")
	assert.Contains(t, body, "Spice &lt;must&gt; flow")
	assert.Contains(t, body, "transport: timeout")
	assert.Contains(t, body, "Comments per Thread")
	assert.Contains(t, body, "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js")
	assert.Contains(t, body, "themes/westeros.js")
	assert.Equal(t, 1, strings.Count(body, "<html>"))
	assert.Equal(t, 1, strings.Count(body, "</html>"))
	assert.Less(t, strings.Index(body, "Comments per Thread"), strings.Index(body, "</body>"))

	get(t, ts, "/?title=dune")
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestIndex_DiagnosticNotCached(t *testing.T) {
	runner := &stubRunner{report: pipeline.Report{Diagnostic: domain.NewDiagnostic(domain.KindProvider, "quota exhausted")}}
	ts := httptest.NewServer(NewServer(runner, time.Minute, nil).Handler())
	defer ts.Close()

	_, body := get(t, ts, "/?title=Dune")
	assert.Contains(t, body, "quota exhausted")

	get(t, ts, "/?title=Dune")
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestIndex_AllThreadsFailedNotCached(t *testing.T) {
	runner := &stubRunner{report: pipeline.Report{Threads: []pipeline.ThreadReport{
		{
			Thread: domain.ThreadDescriptor{URL: "https://www.reddit.com/r/books/comments/a/"},
			Result: domain.Failed(domain.NewDiagnostic(domain.KindStatus, "http 429")),
		},
		{
			Thread: domain.ThreadDescriptor{URL: "https://www.reddit.com/r/books/comments/b/"},
			Result: domain.Failed(domain.NewDiagnostic(domain.KindTransport, "timeout")),
		},
	}}}
	ts := httptest.NewServer(NewServer(runner, time.Minute, nil).Handler())
	defer ts.Close()

	_, body := get(t, ts, "/?title=Dune")
	assert.Contains(t, body, "status: http 429")

	get(t, ts, "/?title=Dune")
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestReport_CancelledNotCached(t *testing.T) {
	runner := &stubRunner{report: pipeline.Report{Threads: []pipeline.ThreadReport{{
		Thread: domain.ThreadDescriptor{URL: "https://www.reddit.com/r/books/comments/a/"},
		Result: domain.Succeeded([]domain.CommentRecord{{Author: "a", Body: "b"}}),
	}}}}
	srv := NewServer(runner, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	srv.report(ctx, "Dune")
	srv.report(context.Background(), "Dune")
	srv.report(context.Background(), "Dune")

	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestHealthz(t *testing.T) {
	ts := httptest.NewServer(NewServer(&stubRunner{}, time.Minute, nil).Handler())
	defer ts.Close()

	code, body := get(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	code, _ = get(t, ts, "/nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStartServer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(&stubRunner{}, time.Minute, nil)

	done := make(chan error, 1)
	go func() { done <- srv.StartServer(ctx, "0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
