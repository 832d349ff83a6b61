package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strager/tinyc"
)

var checkQuiet bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Report diagnostics; exit status 1 when there are any",
	Long: `Analyzes a program and prints only its syntax and semantic errors.
The exit status is 1 when any error was found, which makes check usable
from scripts and editors.

Examples:
  tinyc check program.tc
  tinyc check -q program.tc && echo clean`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "print nothing, only set the exit status")
}

func runCheck(cmd *cobra.Command, args []string) error {
	name, source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	logger.Debug("checking", "file", name, "bytes", len(source))

	res := tinyc.AnalyzeWithOptions(source, tinyc.Options{Logger: logger})
	if err := record(cmd.Context(), source, res); err != nil {
		return err
	}

	if !res.HasErrors() {
		if !checkQuiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no errors found\n", name)
		}
		return nil
	}

	if !checkQuiet {
		out := cmd.OutOrStdout()
		if res.SyntaxErrors.HasErrors() {
			fmt.Fprintf(out, "Syntax errors in %s:\n%s\n", name, res.SyntaxErrors.String())
		}
		if res.SemanticErrors.HasErrors() {
			fmt.Fprintf(out, "Semantic errors in %s:\n%s\n", name, res.SemanticErrors.String())
		}
	}
	return errDiagnostics
}
