package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/strager/tinyc/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently recorded runs",
	Long: `Lists the most recent analysis runs, newest first. Requires
[history] enabled = true in the config file.

Examples:
  tinyc history
  tinyc history --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultLimit, "maximum number of runs")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit < 1 {
		return fmt.Errorf("--limit must be positive, got %d", historyLimit)
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("history is disabled; set [history] enabled = true")
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSTATUS\tTOKENS\tSYNTAX\tSEMANTIC\tSYMBOLS")
	for _, run := range runs {
		status := "errors"
		if run.Clean() {
			status = "clean"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), status,
			run.Tokens, run.SyntaxErrors, run.SemanticErrors, run.Symbols)
	}
	return w.Flush()
}
