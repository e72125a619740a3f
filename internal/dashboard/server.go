package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	gocache "github.com/patrickmn/go-cache"
	"github.com/qepting91/reddit-book-reviews/internal/pipeline"
)

// Runner produces a report for a title; *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, title string) pipeline.Report
}

// Server renders search results in the browser.
type Server struct {
	runner Runner
	cache  *gocache.Cache
	logger *slog.Logger
}

func NewServer(runner Runner, cacheTTL time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &Server{
		runner: runner,
		cache:  gocache.New(cacheTTL, 2*cacheTTL),
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// StartServer serves until ctx is cancelled.
func (s *Server) StartServer(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting Dashboard", "port", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	title := strings.TrimSpace(r.URL.Query().Get("title"))

	data := pageData{Title: title}
	if title != "" {
		rep := s.report(r.Context(), title)
		data.Report = &rep
		if len(rep.Threads) > 0 {
			data.Chart = newChartView(commentChart(rep))
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Error("Render failed", "err", err)
	}
}

func (s *Server) report(ctx context.Context, title string) pipeline.Report {
	key := strings.ToLower(title)
	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("Cache hit", "title", title)
		return cached.(pipeline.Report)
	}

	rep := s.runner.Run(ctx, title)
	// Only cache answers where at least one thread came back; provider and
	// transport failures are usually transient.
	if ctx.Err() == nil && len(rep.Threads) > 0 && rep.Failures() < len(rep.Threads) {
		s.cache.Set(key, rep, gocache.DefaultExpiration)
	}
	return rep
}

// commentChart plots how many comments survived per thread.
func commentChart(rep pipeline.Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Comments per Thread", Subtitle: rep.Title}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	var barX []string
	var barY []opts.BarData
	for i, t := range rep.Threads {
		label := t.Thread.Title
		if label == "" {
			label = fmt.Sprintf("thread %d", i+1)
		}
		barX = append(barX, label)
		barY = append(barY, opts.BarData{Value: len(t.Result.Comments())})
	}
	bar.SetXAxis(barX).AddSeries("Comments", barY)
	return bar
}
