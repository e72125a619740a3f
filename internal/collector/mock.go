package collector

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
)

// MockClient implements domain.ThreadSource but returns fake comments
type MockClient struct {
	Latency time.Duration
}

func NewMockClient() *MockClient {
	return &MockClient{Latency: 200 * time.Millisecond}
}

func (mc *MockClient) FetchComments(ctx context.Context, threadURL string) ([]domain.RawComment, error) {
	// Simulate network latency (nice for testing the worker pool)
	select {
	case <-ctx.Done():
		return nil, transportErr(ctx.Err())
	case <-time.After(mc.Latency):
	}

	comments := []domain.RawComment{
		{Author: "[deleted]", Body: "[deleted]"},
		{Author: "drive_by", Body: "Loved it.", Score: 3},
		{Body: "[removed]"},
	}
	for i := 0; i < 8; i++ {
		comments = append(comments, domain.RawComment{
			Author: fmt.Sprintf("simulated_reader_%d", i),
			Body: fmt.Sprintf("Simulated review #%d of %s: the pacing drags in the middle but the ending %s",
				i, threadURL, strings.Repeat("really lands. ", i+1)),
			Score: rand.Intn(500),
		})
	}
	return comments, nil
}
