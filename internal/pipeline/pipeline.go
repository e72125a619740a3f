package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
	"golang.org/x/time/rate"
)

// ThreadReport pairs a thread with what was extracted from it.
type ThreadReport struct {
	Thread domain.ThreadDescriptor
	Result domain.ExtractionResult
}

// Report is everything a renderer needs for one title.
type Report struct {
	Title      string
	Diagnostic *domain.Diagnostic
	Threads    []ThreadReport
}

// CommentCount sums the records across all successful threads.
func (r Report) CommentCount() int {
	n := 0
	for _, t := range r.Threads {
		n += len(t.Result.Comments())
	}
	return n
}

// Failures counts threads whose extraction produced a diagnostic.
func (r Report) Failures() int {
	n := 0
	for _, t := range r.Threads {
		if !t.Result.OK() {
			n++
		}
	}
	return n
}

// Options bound one run.
type Options struct {
	MaxResults  int
	MaxComments int
	Workers     int
	// FetchDelay is the minimum spacing between thread fetches across all
	// workers. Zero disables the pause.
	FetchDelay time.Duration
}

// Pipeline composes a ThreadLocator and a CommentExtractor.
type Pipeline struct {
	locator   domain.ThreadLocator
	extractor domain.CommentExtractor
	opts      Options
	limiter   *rate.Limiter
	logger    *slog.Logger
}

func New(locator domain.ThreadLocator, extractor domain.CommentExtractor, opts Options, logger *slog.Logger) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if opts.FetchDelay > 0 {
		limit = rate.Every(opts.FetchDelay)
	}
	return &Pipeline{
		locator:   locator,
		extractor: extractor,
		opts:      opts,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger,
	}
}

type job struct {
	index  int
	thread domain.ThreadDescriptor
}

// Run locates threads for title and extracts each one. A failing thread never
// stops its siblings; Threads keeps the locator's order.
func (p *Pipeline) Run(ctx context.Context, title string) Report {
	report := Report{Title: title}

	located := p.locator.Locate(ctx, title, p.opts.MaxResults)
	if len(located.Threads) == 0 {
		report.Diagnostic = located.Diagnostic
		if report.Diagnostic == nil {
			report.Diagnostic = domain.NewDiagnostic(domain.KindNoCandidates, "no reddit threads found")
		}
		p.logger.Info("No threads located", "title", title, "diagnostic", report.Diagnostic.String())
		return report
	}

	report.Threads = make([]ThreadReport, len(located.Threads))
	jobQueue := make(chan job, len(located.Threads))

	numWorkers := p.opts.Workers
	if numWorkers > len(located.Threads) {
		numWorkers = len(located.Threads)
	}

	var workerWg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		workerWg.Add(1)
		go func(id int) {
			defer workerWg.Done()
			for j := range jobQueue {
				var res domain.ExtractionResult
				if err := p.limiter.Wait(ctx); err != nil {
					res = domain.Failed(domain.NewDiagnostic(domain.KindTransport, "cancelled: %v", err))
				} else {
					res = p.extractor.Extract(ctx, j.thread.URL, p.opts.MaxComments)
				}
				// each index is written by exactly one worker
				report.Threads[j.index] = ThreadReport{Thread: j.thread, Result: res}
				p.logger.Debug("Thread processed", "worker", id, "url", j.thread.URL, "ok", res.OK())
			}
		}(i)
	}

	for i, t := range located.Threads {
		jobQueue <- job{index: i, thread: t}
	}
	close(jobQueue)
	workerWg.Wait()

	p.logger.Info("Run complete",
		"title", title,
		"threads", len(report.Threads),
		"comments", report.CommentCount(),
		"failures", report.Failures(),
	)
	return report
}
