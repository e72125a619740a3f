package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/qepting91/reddit-book-reviews/internal/domain"
	"golang.org/x/time/rate"
)

const defaultHTMLEndpoint = "https://html.duckduckgo.com/html/"

// HTMLClient scrapes a DuckDuckGo-style HTML result page. No credential needed.
type HTMLClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	endpoint   string
	userAgent  string
}

func NewHTMLClient(endpoint, userAgent string, timeout time.Duration) *HTMLClient {
	if endpoint == "" {
		endpoint = defaultHTMLEndpoint
	}
	return &HTMLClient{
		httpClient: &http.Client{Timeout: timeout},
		// Scraping is throttled harder than the API
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		endpoint:  endpoint,
		userAgent: userAgent,
	}
}

func (hc *HTMLClient) Search(ctx context.Context, query string, num int) ([]domain.SearchResult, error) {
	if err := hc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(hc.endpoint)
	if err != nil {
		return nil, fmt.Errorf("html endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", hc.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("html search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("html search status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html results: %w", err)
	}

	var results []domain.SearchResult
	doc.Find("a.result__a").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		link := unwrapRedirect(href)
		if link == "" {
			return true
		}
		results = append(results, domain.SearchResult{
			Link:  link,
			Title: strings.TrimSpace(s.Text()),
		})
		return len(results) < num
	})
	return results, nil
}

// unwrapRedirect turns "//duckduckgo.com/l/?uddg=<encoded>" into the target URL.
func unwrapRedirect(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return href
}
