package search

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
)

// querySuffix restricts results to reddit review threads.
const querySuffix = " review site:reddit.com"

// threadPathRegex matches /r/<community>/comments/<id> (with optional slug).
var threadPathRegex = regexp.MustCompile(`^/r/[A-Za-z0-9_]{2,21}/comments/[A-Za-z0-9]+(/|$)`)

// Locator finds reddit discussion threads for a book title.
type Locator struct {
	provider domain.SearchProvider
	logger   *slog.Logger
}

func NewLocator(provider domain.SearchProvider, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{provider: provider, logger: logger}
}

// BuildQuery combines a title with the reddit review qualifier.
func BuildQuery(title string) string {
	return strings.TrimSpace(title) + querySuffix
}

// Locate runs one search and keeps unique thread URLs. It never fails outright;
// problems come back as a Diagnostic next to an empty thread list.
func (l *Locator) Locate(ctx context.Context, title string, maxResults int) domain.LocateResult {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.LocateResult{Diagnostic: domain.NewDiagnostic(domain.KindInvalidInput, "book title is empty")}
	}
	if maxResults <= 0 {
		return domain.LocateResult{Diagnostic: domain.NewDiagnostic(domain.KindInvalidInput, "max results must be positive, got %d", maxResults)}
	}

	query := BuildQuery(title)
	results, err := l.provider.Search(ctx, query, maxResults)
	if err != nil {
		l.logger.Warn("Search failed", "query", query, "err", err)
		if IsProviderError(err) {
			return domain.LocateResult{Diagnostic: domain.NewDiagnostic(domain.KindProvider, "search provider error: %v", err)}
		}
		return domain.LocateResult{Diagnostic: domain.NewDiagnostic(domain.KindProvider, "search request failed: %v", err)}
	}

	seen := make(map[string]struct{}, len(results))
	threads := make([]domain.ThreadDescriptor, 0, len(results))
	for _, r := range results {
		canonical, ok := CanonicalThreadURL(r.Link)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		threads = append(threads, domain.ThreadDescriptor{URL: canonical, Title: strings.TrimSpace(r.Title)})
	}

	l.logger.Debug("Search complete", "query", query, "raw", len(results), "threads", len(threads))

	if len(threads) == 0 {
		return domain.LocateResult{
			Threads:    threads,
			Diagnostic: domain.NewDiagnostic(domain.KindNoCandidates, "no reddit threads among %d search results", len(results)),
		}
	}
	return domain.LocateResult{Threads: threads}
}

// CanonicalThreadURL validates that link points at a reddit thread and strips
// its query string and fragment.
func CanonicalThreadURL(link string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host != "reddit.com" && !strings.HasSuffix(host, ".reddit.com") {
		return "", false
	}
	if !threadPathRegex.MatchString(u.Path) {
		return "", false
	}

	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), true
}
