package search

import (
	"fmt"

	"github.com/qepting91/reddit-book-reviews/internal/config"
	"github.com/qepting91/reddit-book-reviews/internal/domain"
)

// NewProvider selects the search backend based on SEARCH_PROVIDER
func NewProvider(cfg config.Config) (domain.SearchProvider, error) {
	switch cfg.SearchProvider {
	case config.ProviderSerpAPI:
		if cfg.SearchAPIKey == "" {
			return nil, fmt.Errorf("SEARCH_API_KEY is required for the serpapi provider")
		}
		return NewSerpAPIClient(cfg.SearchEndpoint, cfg.SearchAPIKey, cfg.SearchLocale, cfg.SearchCountry, cfg.Timeout), nil
	case config.ProviderHTML:
		return NewHTMLClient(cfg.SearchHTMLEndpoint, cfg.RedditUserAgent, cfg.Timeout), nil
	case config.ProviderMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown SEARCH_PROVIDER: %s (use 'serpapi', 'html', or 'mock')", cfg.SearchProvider)
	}
}
