package cli

import (
	"fmt"
	"sync"

	"github.com/qepting91/reddit-book-reviews/internal/ingest"
	"github.com/qepting91/reddit-book-reviews/internal/storage"
	"github.com/spf13/cobra"
)

var batchOut string

var batchCmd = &cobra.Command{
	Use:   "batch <titles.csv>",
	Short: "Run a search for every title in a CSV and export NDJSON",
	Long: `Reads book titles from the first column of a CSV file (header row required)
and appends one NDJSON row per comment, or per diagnostic, to --out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titles, err := ingest.LoadTitles(args[0])
		if err != nil {
			return fmt.Errorf("load titles: %w", err)
		}
		if len(titles) == 0 {
			return fmt.Errorf("no titles in %s", args[0])
		}

		_, logger, p, err := setup()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		resultQueue := make(chan storage.Row, 100)
		writer := &storage.WriterService{FilePath: batchOut, Out: cmd.OutOrStdout()}

		var writerWg sync.WaitGroup
		writeErrCh := make(chan error, 1)
		writerWg.Add(1)
		go func() { writeErrCh <- writer.Start(&writerWg, resultQueue) }()

		logger.Info("Starting batch", "titles", len(titles))
		for _, title := range titles {
			if ctx.Err() != nil {
				logger.Info("Shutdown signal received")
				break
			}
			for _, row := range storage.Rows(p.Run(ctx, title)) {
				resultQueue <- row
			}
		}
		close(resultQueue)
		writerWg.Wait()

		if writeErr := <-writeErrCh; writeErr != nil {
			return fmt.Errorf("write results: %w", writeErr)
		}
		logger.Info("Batch complete. Data saved.", "out", batchOut)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "NDJSON output file (default: stdout)")
	rootCmd.AddCommand(batchCmd)
}
