package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/strager/tinyc"
	"github.com/strager/tinyc/history"
	"github.com/strager/tinyc/report"
)

var (
	analyzeFormat  string
	analyzeNoColor bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Print the full analysis report",
	Long: `Analyzes a program and prints its tokens, syntax errors, semantic
errors and symbol table.

The program is read from the named file, or from standard input when no
file is given. Runs are recorded when [history] is enabled.

Examples:
  tinyc analyze program.tc
  tinyc analyze --format text program.tc
  echo 'int x = 1;' | tinyc analyze --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "output format: json, yaml or text (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoColor, "no-color", false, "disable colored text output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	name := appConfig.Report.Format
	if analyzeFormat != "" {
		name = analyzeFormat
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return err
	}

	_, source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	res := tinyc.AnalyzeWithOptions(source, tinyc.Options{Logger: logger})
	if err := record(cmd.Context(), source, res); err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout(), report.FromResult(res), format, report.Options{
		Color: appConfig.Report.Color && !analyzeNoColor,
	})
}

// record stores res in the history database when history is enabled.
func record(ctx context.Context, source string, res *tinyc.Result) error {
	store, err := openStore()
	if err != nil || store == nil {
		return err
	}
	defer store.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	run := history.NewRun(source, res)
	if err := store.Record(ctx, run); err != nil {
		logger.Warn("failed to record run", "error", err)
		return nil
	}
	logger.Debug("recorded run", "id", run.ID)
	return nil
}
