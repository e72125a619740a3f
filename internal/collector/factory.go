package collector

import (
	"fmt"

	"github.com/qepting91/reddit-book-reviews/internal/config"
	"github.com/qepting91/reddit-book-reviews/internal/domain"
)

// NewSource selects the correct implementation based on the MODE
func NewSource(cfg config.Config) (domain.ThreadSource, error) {
	switch cfg.CollectorMode {
	case config.ModeAPI:
		return NewAPIClient(
			cfg.RedditClientID,
			cfg.RedditClientSecret,
			cfg.RedditUsername,
			cfg.RedditPassword,
			cfg.RedditUserAgent,
		)
	case config.ModePublic:
		if cfg.RedditUserAgent == "" {
			return nil, fmt.Errorf("REDDIT_USER_AGENT is required for public mode")
		}
		return NewPublicClient(cfg.RedditUserAgent, cfg.Timeout)
	case config.ModeMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", cfg.CollectorMode)
	}
}
