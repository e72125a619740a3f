package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Collector and search modes
const (
	ModeAPI    = "api"
	ModePublic = "public"
	ModeMock   = "mock"

	ProviderSerpAPI = "serpapi"
	ProviderHTML    = "html"
	ProviderMock    = "mock"
)

// Config is threaded into every component at construction time.
type Config struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxResults    int           `yaml:"max_results" mapstructure:"max_results"`
	MaxComments   int           `yaml:"max_comments" mapstructure:"max_comments"`
	MinBodyLength int           `yaml:"min_body_length" mapstructure:"min_body_length"`
	MaxBodyLength int           `yaml:"max_body_length" mapstructure:"max_body_length"`
	Workers       int           `yaml:"workers" mapstructure:"workers"`
	FetchDelay    time.Duration `yaml:"fetch_delay" mapstructure:"fetch_delay"`

	SearchProvider     string `yaml:"search_provider" mapstructure:"search_provider"`
	SearchAPIKey       string `yaml:"-" mapstructure:"search_api_key"`
	SearchEndpoint     string `yaml:"search_endpoint" mapstructure:"search_endpoint"`
	SearchHTMLEndpoint string `yaml:"search_html_endpoint" mapstructure:"search_html_endpoint"`
	SearchLocale       string `yaml:"search_locale" mapstructure:"search_locale"`
	SearchCountry      string `yaml:"search_country" mapstructure:"search_country"`

	CollectorMode      string `yaml:"collector_mode" mapstructure:"collector_mode"`
	RedditUserAgent    string `yaml:"reddit_user_agent" mapstructure:"reddit_user_agent"`
	RedditClientID     string `yaml:"-" mapstructure:"reddit_client_id"`
	RedditClientSecret string `yaml:"-" mapstructure:"reddit_client_secret"`
	RedditUsername     string `yaml:"-" mapstructure:"reddit_username"`
	RedditPassword     string `yaml:"-" mapstructure:"reddit_password"`

	Port     string        `yaml:"port" mapstructure:"port"`
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	LogLevel string        `yaml:"log_level" mapstructure:"log_level"`
}

const DefaultUserAgent = "Mozilla/5.0 (compatible; reddit-book-reviews/1.0)"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timeout:         15 * time.Second,
		MaxResults:      15,
		MaxComments:     10,
		MinBodyLength:   30,
		MaxBodyLength:   800,
		Workers:         1,
		FetchDelay:      time.Second,
		SearchProvider:  ProviderSerpAPI,
		SearchEndpoint:  "https://serpapi.com/search.json",
		SearchLocale:    "en",
		SearchCountry:   "us",
		CollectorMode:   ModePublic,
		RedditUserAgent: DefaultUserAgent,
		Port:            "8080",
		CacheTTL:        10 * time.Minute,
		LogLevel:        "info",
	}
}

// SetDefaults registers every key on v so AutomaticEnv can resolve them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("max_results", d.MaxResults)
	v.SetDefault("max_comments", d.MaxComments)
	v.SetDefault("min_body_length", d.MinBodyLength)
	v.SetDefault("max_body_length", d.MaxBodyLength)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("fetch_delay", d.FetchDelay)
	v.SetDefault("search_provider", d.SearchProvider)
	v.SetDefault("search_api_key", "")
	v.SetDefault("search_endpoint", d.SearchEndpoint)
	v.SetDefault("search_html_endpoint", "")
	v.SetDefault("search_locale", d.SearchLocale)
	v.SetDefault("search_country", d.SearchCountry)
	v.SetDefault("collector_mode", d.CollectorMode)
	v.SetDefault("reddit_user_agent", d.RedditUserAgent)
	v.SetDefault("reddit_client_id", "")
	v.SetDefault("reddit_client_secret", "")
	v.SetDefault("reddit_username", "")
	v.SetDefault("reddit_password", "")
	v.SetDefault("port", d.Port)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("log_level", d.LogLevel)
}

// LoadDotEnv loads a .env file into the process environment if one exists.
func LoadDotEnv(paths ...string) {
	// A missing .env is normal outside development.
	_ = godotenv.Load(paths...)
}

// Load resolves the configuration from v (defaults, file, env, flags) and
// validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		Timeout:            v.GetDuration("timeout"),
		MaxResults:         v.GetInt("max_results"),
		MaxComments:        v.GetInt("max_comments"),
		MinBodyLength:      v.GetInt("min_body_length"),
		MaxBodyLength:      v.GetInt("max_body_length"),
		Workers:            v.GetInt("workers"),
		FetchDelay:         v.GetDuration("fetch_delay"),
		SearchProvider:     strings.ToLower(v.GetString("search_provider")),
		SearchAPIKey:       v.GetString("search_api_key"),
		SearchEndpoint:     v.GetString("search_endpoint"),
		SearchHTMLEndpoint: v.GetString("search_html_endpoint"),
		SearchLocale:       v.GetString("search_locale"),
		SearchCountry:      v.GetString("search_country"),
		CollectorMode:      strings.ToLower(v.GetString("collector_mode")),
		RedditUserAgent:    v.GetString("reddit_user_agent"),
		RedditClientID:     v.GetString("reddit_client_id"),
		RedditClientSecret: v.GetString("reddit_client_secret"),
		RedditUsername:     v.GetString("reddit_username"),
		RedditPassword:     v.GetString("reddit_password"),
		Port:               v.GetString("port"),
		CacheTTL:           v.GetDuration("cache_ttl"),
		LogLevel:           v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks bounds and mode-specific requirements.
func (c Config) Validate() error {
	var errs []error

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("max_results must be positive, got %d", c.MaxResults))
	}
	if c.MaxComments <= 0 {
		errs = append(errs, fmt.Errorf("max_comments must be positive, got %d", c.MaxComments))
	}
	if c.MinBodyLength < 0 {
		errs = append(errs, fmt.Errorf("min_body_length must not be negative, got %d", c.MinBodyLength))
	}
	if c.MaxBodyLength <= 0 {
		errs = append(errs, fmt.Errorf("max_body_length must be positive, got %d", c.MaxBodyLength))
	}
	if c.MinBodyLength > c.MaxBodyLength {
		errs = append(errs, fmt.Errorf("min_body_length (%d) exceeds max_body_length (%d)", c.MinBodyLength, c.MaxBodyLength))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.FetchDelay < 0 {
		errs = append(errs, fmt.Errorf("fetch_delay must not be negative, got %s", c.FetchDelay))
	}

	switch c.SearchProvider {
	case ProviderSerpAPI:
		if c.SearchAPIKey == "" {
			errs = append(errs, errors.New("SEARCH_API_KEY is required for the serpapi provider"))
		}
	case ProviderHTML, ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("unknown SEARCH_PROVIDER: %s (use 'serpapi', 'html', or 'mock')", c.SearchProvider))
	}

	switch c.CollectorMode {
	case ModePublic:
		if c.RedditUserAgent == "" {
			errs = append(errs, errors.New("REDDIT_USER_AGENT is required for public mode"))
		}
	case ModeAPI:
		if c.RedditClientID == "" || c.RedditClientSecret == "" {
			errs = append(errs, errors.New("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET are required for api mode"))
		}
	case ModeMock:
	default:
		errs = append(errs, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", c.CollectorMode))
	}

	return errors.Join(errs...)
}

// Level maps LogLevel onto a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
