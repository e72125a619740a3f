package storage

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
	"github.com/qepting91/reddit-book-reviews/internal/pipeline"
)

// Row is one NDJSON line: a comment, or a diagnostic explaining its absence.
type Row struct {
	Title       string             `json:"title"`
	ThreadURL   string             `json:"thread_url,omitempty"`
	ThreadTitle string             `json:"thread_title,omitempty"`
	Author      string             `json:"author,omitempty"`
	Score       int                `json:"score"`
	Body        string             `json:"body,omitempty"`
	Diagnostic  *domain.Diagnostic `json:"diagnostic,omitempty"`
}

// Rows flattens a report the same way the dashboard table reads it.
func Rows(r pipeline.Report) []Row {
	if len(r.Threads) == 0 {
		return []Row{{Title: r.Title, Diagnostic: r.Diagnostic}}
	}

	var rows []Row
	for _, t := range r.Threads {
		base := Row{Title: r.Title, ThreadURL: t.Thread.URL, ThreadTitle: t.Thread.Title}
		if !t.Result.OK() {
			base.Diagnostic = t.Result.Diagnostic()
			rows = append(rows, base)
			continue
		}
		if t.Result.Empty() {
			base.Diagnostic = domain.NewDiagnostic(domain.KindEmptyThread, "no comment passed the quality filters")
			rows = append(rows, base)
			continue
		}
		for _, c := range t.Result.Comments() {
			row := base
			row.Author = c.Author
			row.Score = c.Score
			row.Body = c.Body
			rows = append(rows, row)
		}
	}
	return rows
}

// WriterService implements the Monitor Pattern: one goroutine owns the output.
// An empty FilePath writes to Out (stdout when nil).
type WriterService struct {
	FilePath string
	Out      io.Writer
}

func (w *WriterService) Start(wg *sync.WaitGroup, input <-chan Row) error {
	defer wg.Done()

	out := w.Out
	if out == nil {
		out = os.Stdout
	}
	if w.FilePath != "" {
		f, err := os.OpenFile(w.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			// keep draining so producers never block
			for range input {
			}
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	var firstErr error
	for row := range input {
		// Write as NDJSON
		if err := enc.Encode(row); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
