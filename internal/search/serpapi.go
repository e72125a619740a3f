package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
	"golang.org/x/time/rate"
)

// ProviderError is an error the search provider reported inside its payload.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s reported: %s", e.Provider, e.Message)
}

// SerpAPIClient queries a SerpAPI-compatible JSON search endpoint.
type SerpAPIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	endpoint   string
	apiKey     string
	locale     string
	country    string
}

type serpAPIResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"organic_results"`
}

func NewSerpAPIClient(endpoint, apiKey, locale, country string, timeout time.Duration) *SerpAPIClient {
	return &SerpAPIClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		endpoint:   endpoint,
		apiKey:     apiKey,
		locale:     locale,
		country:    country,
	}
}

func (sc *SerpAPIClient) Search(ctx context.Context, query string, num int) ([]domain.SearchResult, error) {
	if err := sc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(sc.endpoint)
	if err != nil {
		return nil, fmt.Errorf("serpapi endpoint: %w", err)
	}
	q := u.Query()
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("num", fmt.Sprint(num))
	q.Set("hl", sc.locale)
	q.Set("gl", sc.country)
	q.Set("api_key", sc.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := sc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var sResp serpAPIResponse
	decodeErr := json.Unmarshal(body, &sResp)
	// SerpAPI sends its error field with 4xx statuses too; prefer it over the bare code.
	if decodeErr == nil && sResp.Error != "" {
		return nil, &ProviderError{Provider: "serpapi", Message: sResp.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("serpapi status: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode serpapi response: %w", decodeErr)
	}

	results := make([]domain.SearchResult, 0, len(sResp.OrganicResults))
	for _, r := range sResp.OrganicResults {
		results = append(results, domain.SearchResult{Link: r.Link, Title: r.Title})
	}
	return results, nil
}

// IsProviderError reports whether err carries a payload-level provider error.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
