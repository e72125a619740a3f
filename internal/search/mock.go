package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
)

// MockClient implements domain.SearchProvider with canned reddit links
type MockClient struct {
	Results []domain.SearchResult
	Err     error
	Queries []string
	mu      sync.Mutex
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) Search(ctx context.Context, query string, num int) ([]domain.SearchResult, error) {
	mc.mu.Lock()
	mc.Queries = append(mc.Queries, query)
	mc.mu.Unlock()

	if mc.Err != nil {
		return nil, mc.Err
	}
	if mc.Results != nil {
		return mc.Results, nil
	}

	slug := strings.ToLower(strings.Join(strings.Fields(strings.TrimSuffix(query, querySuffix)), "_"))
	var results []domain.SearchResult
	for i := 0; i < num && i < 3; i++ {
		results = append(results, domain.SearchResult{
			Link:  fmt.Sprintf("https://www.reddit.com/r/books/comments/mock%d/%s/?utm_source=mock", i, slug),
			Title: fmt.Sprintf("Simulated discussion #%d: %s", i, query),
		})
	}
	// A community homepage, dropped by the thread filter.
	results = append(results, domain.SearchResult{Link: "https://www.reddit.com/r/books/", Title: "r/books"})
	return results, nil
}
