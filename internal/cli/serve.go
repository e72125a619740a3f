package cli

import (
	"github.com/qepting91/reddit-book-reviews/internal/dashboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review finder in the browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, p, err := setup()
		if err != nil {
			return err
		}

		srv := dashboard.NewServer(p, cfg.CacheTTL, logger)
		if err := srv.StartServer(cmd.Context(), cfg.Port); err != nil {
			logger.Error("Dashboard failed", "err", err)
			return err
		}
		logger.Info("Dashboard stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default 8080, or $PORT)")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}
