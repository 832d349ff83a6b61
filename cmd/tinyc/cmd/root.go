// Package cmd implements the tinyc command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/strager/tinyc/config"
	"github.com/strager/tinyc/history"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	logger    *slog.Logger
)

// errDiagnostics signals a run whose diagnostics were already printed.
var errDiagnostics = errors.New("analysis reported errors")

var rootCmd = &cobra.Command{
	Use:   "tinyc",
	Short: "tinyc - static analyzer for a small C-like language",
	Long: `tinyc lexes and parses programs written in a small C-like language,
checks declarations against a scoped symbol table and reports every
syntax and semantic error it finds.

Commands:
  analyze  - full report (tokens, errors, symbol table)
  tokens   - token table only
  check    - diagnostics only, exit status 1 on errors
  repl     - interactive session
  serve    - HTTP and WebSocket API
  history  - recent recorded runs`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errDiagnostics) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $TINYC_CONFIG, ./tinyc.toml or ./tinyc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// setup loads the configuration and builds the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}
	logger = newLogger(cmd.ErrOrStderr(), appConfig.Log, verbose)
	return nil
}

// newLogger builds a slog logger from the [log] section. verbose forces the
// debug level.
func newLogger(w io.Writer, cfg config.LogConfig, verbose bool) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openStore opens the history database, or returns nil when history is
// disabled.
func openStore() (history.Store, error) {
	if !appConfig.History.Enabled {
		return nil, nil
	}
	store, err := history.OpenSQLite(appConfig.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// readSource returns the contents of the named file, or all of standard input
// when no file (or "-") is given.
func readSource(cmd *cobra.Command, args []string) (name string, source string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
