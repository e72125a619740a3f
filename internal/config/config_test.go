package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockConfig() Config {
	cfg := Default()
	cfg.SearchProvider = ProviderMock
	cfg.CollectorMode = ModeMock
	return cfg
}

func TestDefault_IsValidWithKey(t *testing.T) {
	cfg := Default()
	cfg.SearchAPIKey = "key"
	require.NoError(t, cfg.Validate())
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"zero max results", func(c *Config) { c.MaxResults = 0 }},
		{"zero max comments", func(c *Config) { c.MaxComments = 0 }},
		{"negative min body", func(c *Config) { c.MinBodyLength = -1 }},
		{"zero max body", func(c *Config) { c.MaxBodyLength = 0 }},
		{"min above max", func(c *Config) { c.MinBodyLength = 900 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative delay", func(c *Config) { c.FetchDelay = -time.Second }},
		{"unknown provider", func(c *Config) { c.SearchProvider = "bing" }},
		{"unknown mode", func(c *Config) { c.CollectorMode = "scrape" }},
		{"serpapi without key", func(c *Config) { c.SearchProvider = ProviderSerpAPI }},
		{"public without agent", func(c *Config) { c.CollectorMode = ModePublic; c.RedditUserAgent = "" }},
		{"api without creds", func(c *Config) { c.CollectorMode = ModeAPI }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mockConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SEARCH_PROVIDER", "MOCK")
	t.Setenv("COLLECTOR_MODE", "mock")
	t.Setenv("MAX_COMMENTS", "3")
	t.Setenv("TIMEOUT", "2s")
	t.Setenv("MIN_BODY_LENGTH", "50")
	t.Setenv("SEARCH_HTML_ENDPOINT", "http://localhost:9999/html/")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ProviderMock, cfg.SearchProvider)
	assert.Equal(t, 3, cfg.MaxComments)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 50, cfg.MinBodyLength)
	assert.Equal(t, 800, cfg.MaxBodyLength)
	assert.Equal(t, "http://localhost:9999/html/", cfg.SearchHTMLEndpoint)
	assert.Equal(t, Default().SearchEndpoint, cfg.SearchEndpoint)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "search_provider: html\ncollector_mode: mock\nworkers: 3\nfetch_delay: 250ms\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ProviderHTML, cfg.SearchProvider)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchDelay)
}

func TestLoad_InvalidReturnsError(t *testing.T) {
	t.Setenv("SEARCH_PROVIDER", "mock")
	t.Setenv("COLLECTOR_MODE", "mock")
	t.Setenv("MAX_RESULTS", "0")

	_, err := Load(viper.New())
	assert.ErrorContains(t, err, "max_results")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOOKREVIEWS_DOTENV_CHECK=loaded\n"), 0o644))
	t.Setenv("BOOKREVIEWS_DOTENV_CHECK", "")
	require.NoError(t, os.Unsetenv("BOOKREVIEWS_DOTENV_CHECK"))

	LoadDotEnv(path)
	assert.Equal(t, "loaded", os.Getenv("BOOKREVIEWS_DOTENV_CHECK"))

	// missing files are ignored
	LoadDotEnv(filepath.Join(dir, "missing.env"))
}

func TestLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "DEBUG"
	assert.Equal(t, "DEBUG", cfg.Level().String())
	cfg.LogLevel = "bogus"
	assert.Equal(t, "INFO", cfg.Level().String())
}
