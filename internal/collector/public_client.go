package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
)

// PublicClient reads the public, unauthenticated .json view of a thread.
type PublicClient struct {
	httpClient *http.Client
	userAgent  string
}

// commentListing is element 1 of the thread document.
type commentListing struct {
	Data *struct {
		Children *[]struct {
			Kind string `json:"kind"`
			Data struct {
				Body   string `json:"body"`
				Author string `json:"author"`
				Score  int    `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func NewPublicClient(userAgent string, timeout time.Duration) (*PublicClient, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("user agent is required for public access")
	}
	return &PublicClient{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}, nil
}

// JSONEndpoint maps a canonical thread URL to its machine-readable view.
func JSONEndpoint(threadURL string) string {
	return strings.TrimSuffix(threadURL, "/") + ".json"
}

func (pc *PublicClient) FetchComments(ctx context.Context, threadURL string) ([]domain.RawComment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, JSONEndpoint(threadURL), nil)
	if err != nil {
		return nil, transportErr(err)
	}
	req.Header.Set("User-Agent", pc.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, transportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, transportErr(err)
	}

	return parseThread(body)
}

// parseThread decodes the [post listing, comment listing] document.
func parseThread(body []byte) ([]domain.RawComment, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, formatErr("response is not a JSON array: %v", err)
	}
	if len(top) < 2 {
		return nil, formatErr("expected 2 top-level elements, got %d", len(top))
	}

	var listing commentListing
	if err := json.Unmarshal(top[1], &listing); err != nil {
		return nil, formatErr("comment listing: %v", err)
	}
	if listing.Data == nil || listing.Data.Children == nil {
		return nil, formatErr("comment listing has no data.children")
	}

	var comments []domain.RawComment
	for _, child := range *listing.Data.Children {
		// "more" stubs carry no body and fall out in the extractor.
		d := child.Data
		comments = append(comments, domain.RawComment{
			Author: d.Author,
			Body:   html.UnescapeString(d.Body),
			Score:  d.Score,
		})
	}
	return comments, nil
}
