package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/qepting91/reddit-book-reviews/internal/collector"
	"github.com/qepting91/reddit-book-reviews/internal/config"
	"github.com/qepting91/reddit-book-reviews/internal/pipeline"
	"github.com/qepting91/reddit-book-reviews/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bookreviews",
	Short: "Find Reddit discussions about a book and pull out the comments",
	Long: `bookreviews searches for Reddit review threads about a book title,
fetches each thread's public JSON view, drops deleted and low-signal
comments, and prints or serves what is left.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// ExecuteContext runs the root command; ctx is cancelled on shutdown signals.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bookreviews %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or $HOME/.bookreviews/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.Int("max-results", 0, "search results to request")
	flags.Int("max-comments", 0, "comments kept per thread")
	flags.Int("min-body-length", 0, "shortest comment body kept")
	flags.Int("max-body-length", 0, "comment bodies are truncated past this length")
	flags.Int("workers", 0, "threads fetched in parallel")
	flags.Duration("timeout", 0, "per-request timeout")
	flags.Duration("fetch-delay", 0, "pause between thread fetches")
	flags.String("search-provider", "", "serpapi, html or mock")
	flags.String("collector-mode", "", "public, api or mock")

	for key, flag := range map[string]string{
		"max_results":     "max-results",
		"max_comments":    "max-comments",
		"min_body_length": "min-body-length",
		"max_body_length": "max-body-length",
		"workers":         "workers",
		"timeout":         "timeout",
		"fetch_delay":     "fetch-delay",
		"search_provider": "search-provider",
		"collector_mode":  "collector-mode",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and ENV variables
func initConfig() {
	config.LoadDotEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".bookreviews"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	} else if err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}

// setup resolves configuration and builds the logger and pipeline.
func setup() (config.Config, *slog.Logger, *pipeline.Pipeline, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger.Debug("Pipeline initialized", "search", cfg.SearchProvider, "mode", cfg.CollectorMode, "workers", cfg.Workers)
	return cfg, logger, p, nil
}

func buildPipeline(cfg config.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	provider, err := search.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize search provider: %w", err)
	}
	source, err := collector.NewSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize collector: %w", err)
	}

	locator := search.NewLocator(provider, logger)
	extractor := collector.NewExtractor(source, cfg.MinBodyLength, cfg.MaxBodyLength, logger)
	return pipeline.New(locator, extractor, pipeline.Options{
		MaxResults:  cfg.MaxResults,
		MaxComments: cfg.MaxComments,
		Workers:     cfg.Workers,
		FetchDelay:  cfg.FetchDelay,
	}, logger), nil
}

var errNoTitle = errors.New("a book title is required")
