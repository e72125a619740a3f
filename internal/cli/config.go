package cli

import (
	"fmt"
	"strings"

	"github.com/qepting91/reddit-book-reviews/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (also loaded from .env)
3. Config file (./config.yaml or ~/.bookreviews/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration (credentials omitted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()
		config.SetDefaults(v)
		v.AutomaticEnv()

		cfg := config.Default()
		if err := v.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}

		out := cmd.OutOrStdout()
		if used := v.ConfigFileUsed(); used != "" {
			fmt.Fprintf(out, "# config file: %s\n", used)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		_, err = out.Write(data)
		if err == nil {
			if verr := cfg.Validate(); verr != nil {
				fmt.Fprintf(out, "# warning: %s\n", strings.ReplaceAll(verr.Error(), "\n", "; "))
			}
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
