package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/qepting91/reddit-book-reviews/internal/pipeline"
	"github.com/qepting91/reddit-book-reviews/internal/storage"
	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <book title>",
	Short: "Find Reddit review threads for a book and print their comments",
	Example: `  bookreviews search "Project Hail Mary"
  bookreviews search --json --max-comments 5 Piranesi`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			return errNoTitle
		}

		_, _, p, err := setup()
		if err != nil {
			return err
		}

		report := p.Run(cmd.Context(), title)
		out := cmd.OutOrStdout()
		if searchJSON {
			return writeRows(out, storage.Rows(report))
		}
		printReport(out, report)
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "emit NDJSON rows instead of text")
	rootCmd.AddCommand(searchCmd)
}

func writeRows(out io.Writer, rows []storage.Row) error {
	resultQueue := make(chan storage.Row, len(rows))
	for _, r := range rows {
		resultQueue <- r
	}
	close(resultQueue)

	var writerWg sync.WaitGroup
	writerWg.Add(1)
	writer := &storage.WriterService{Out: out}
	return writer.Start(&writerWg, resultQueue)
}

func printReport(out io.Writer, report pipeline.Report) {
	if report.Diagnostic != nil {
		fmt.Fprintf(out, "No reviews found for %q (%s)\n", report.Title, report.Diagnostic)
		return
	}

	fmt.Fprintf(out, "Found %d comments from %d Reddit threads for %q.\n",
		report.CommentCount(), len(report.Threads), report.Title)
	for _, t := range report.Threads {
		fmt.Fprintf(out, "\n== %s\n", t.Thread.URL)
		if t.Thread.Title != "" {
			fmt.Fprintf(out, "   %s\n", t.Thread.Title)
		}
		switch {
		case !t.Result.OK():
			fmt.Fprintf(out, "   ! %s\n", t.Result.Diagnostic())
		case t.Result.Empty():
			fmt.Fprintln(out, "   (no comments passed the filters)")
		default:
			for _, c := range t.Result.Comments() {
				fmt.Fprintf(out, "   [%d] %s: %s\n", c.Score, c.Author, strings.ReplaceAll(c.Body, "\n", " "))
			}
		}
	}
}
