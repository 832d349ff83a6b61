package cmd

import (
	"github.com/spf13/cobra"
	"github.com/strager/tinyc"
	"github.com/strager/tinyc/report"
)

var tokensNoColor bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token table",
	Long: `Lexes a program and prints one row per token, comments and the final
EOF token included.

Examples:
  tinyc tokens program.tc
  echo 'x = 1;' | tinyc tokens`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVar(&tokensNoColor, "no-color", false, "disable colored output")
}

func runTokens(cmd *cobra.Command, args []string) error {
	_, source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	res := &tinyc.Result{Tokens: tinyc.Tokenize(source)}
	return report.Write(cmd.OutOrStdout(), report.FromResult(res), report.FormatText, report.Options{
		Color:    appConfig.Report.Color && !tokensNoColor,
		Sections: report.SectionTokens,
	})
}
