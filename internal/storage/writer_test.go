package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
	"github.com/qepting91/reddit-book-reviews/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() pipeline.Report {
	return pipeline.Report{
		Title: "Dune",
		Threads: []pipeline.ThreadReport{
			{
				Thread: domain.ThreadDescriptor{URL: "https://www.reddit.com/r/books/comments/a/", Title: "A"},
				Result: domain.Succeeded([]domain.CommentRecord{
					{Author: "x", Body: "first <b>body</b>", Score: 3},
					{Author: "y", Body: "second body", Score: 1},
				}),
			},
			{
				Thread: domain.ThreadDescriptor{URL: "https://www.reddit.com/r/books/comments/b/"},
				Result: domain.Failed(domain.NewDiagnostic(domain.KindFormat, "bad shape")),
			},
			{
				Thread: domain.ThreadDescriptor{URL: "https://www.reddit.com/r/books/comments/c/"},
				Result: domain.Succeeded(nil),
			},
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleReport())

	require.Len(t, rows, 4)
	assert.Equal(t, "x", rows[0].Author)
	assert.Equal(t, "second body", rows[1].Body)
	assert.Equal(t, domain.KindFormat, rows[2].Diagnostic.Kind)
	assert.Equal(t, domain.KindEmptyThread, rows[3].Diagnostic.Kind)
}

func TestRows_NoThreads(t *testing.T) {
	rows := Rows(pipeline.Report{Title: "Dune", Diagnostic: domain.NewDiagnostic(domain.KindProvider, "down")})

	require.Len(t, rows, 1)
	assert.Equal(t, domain.KindProvider, rows[0].Diagnostic.Kind)
}

func TestWriterService_Writer(t *testing.T) {
	var buf bytes.Buffer
	w := &WriterService{Out: &buf}
	input := make(chan Row)
	var wg sync.WaitGroup
	wg.Add(1)

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(&wg, input) }()
	for _, r := range Rows(sampleReport()) {
		input <- r
	}
	close(input)
	wg.Wait()

	require.NoError(t, <-errCh)
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Contains(t, string(lines[0]), "first <b>body</b>")

	var row Row
	require.NoError(t, json.Unmarshal(lines[2], &row))
	assert.Equal(t, domain.KindFormat, row.Diagnostic.Kind)
}

func TestWriterService_FileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")

	for i := 0; i < 2; i++ {
		w := &WriterService{FilePath: path}
		input := make(chan Row, 1)
		var wg sync.WaitGroup
		wg.Add(1)
		input <- Row{Title: "Dune", Body: "b"}
		close(input)
		require.NoError(t, w.Start(&wg, input))
		wg.Wait()
	}

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestWriterService_BadPathDrains(t *testing.T) {
	w := &WriterService{FilePath: filepath.Join(t.TempDir(), "missing", "out.ndjson")}
	input := make(chan Row, 2)
	input <- Row{Title: "a"}
	input <- Row{Title: "b"}
	close(input)
	var wg sync.WaitGroup
	wg.Add(1)

	assert.Error(t, w.Start(&wg, input))
	wg.Wait()
	_, open := <-input
	assert.False(t, open)
}
