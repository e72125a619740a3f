package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/qepting91/reddit-book-reviews/internal/domain"
	"golang.org/x/time/rate"
)

var threadIDRegex = regexp.MustCompile(`^/r/[A-Za-z0-9_]+/comments/([A-Za-z0-9]+)`)

// APIClient reads threads through the authenticated reddit API.
type APIClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

func NewAPIClient(id, secret, user, pass, userAgent string, opts ...reddit.Opt) (*APIClient, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	opts = append([]reddit.Opt{reddit.WithUserAgent(userAgent)}, opts...)
	client, err := reddit.NewClient(creds, opts...)
	if err != nil {
		return nil, err
	}

	// API Rate Limit: ~60 reqs/min
	return &APIClient{client: client, limiter: rate.NewLimiter(rate.Every(time.Second), 1)}, nil
}

// ThreadID extracts the base36 post id from a canonical thread URL.
func ThreadID(threadURL string) (string, error) {
	u, err := url.Parse(threadURL)
	if err != nil {
		return "", err
	}
	m := threadIDRegex.FindStringSubmatch(u.Path)
	if m == nil {
		return "", fmt.Errorf("not a thread url: %s", threadURL)
	}
	return m[1], nil
}

func (ac *APIClient) FetchComments(ctx context.Context, threadURL string) ([]domain.RawComment, error) {
	id, err := ThreadID(threadURL)
	if err != nil {
		return nil, formatErr("%v", err)
	}

	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, transportErr(err)
	}

	pc, _, err := ac.client.Post.Get(ctx, id)
	if err != nil {
		return nil, classifyAPIError(err)
	}
	if pc == nil {
		return nil, formatErr("empty thread response")
	}

	var result []domain.RawComment
	for _, c := range pc.Comments {
		if c == nil {
			continue
		}
		result = append(result, domain.RawComment{
			Author: c.Author,
			Body:   c.Body,
			Score:  c.Score,
		})
	}
	return result, nil
}

func classifyAPIError(err error) error {
	var respErr *reddit.ErrorResponse
	if errors.As(err, &respErr) {
		return fmt.Errorf("%w: %v", ErrStatus, err)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return formatErr("authenticated api: %v", err)
	}
	return transportErr(fmt.Errorf("authenticated api error: %w", err))
}
