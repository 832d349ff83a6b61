package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/strager/tinyc"
	"github.com/strager/tinyc/report"
)

const (
	replHistoryFile = ".tinyc_history"
	promptMain      = "tinyc> "
	promptCont      = "  ...> "
)

const replBanner = `tinyc interactive session. Declarations persist between inputs.
Commands: :symbols  :tokens  :reset  :help  :quit`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Reads statements line by line and analyzes each input against a symbol
table that lives for the whole session, so a variable declared in one input
can be used in the next. Inputs with an open '{', '(' or block comment keep
reading on a continuation prompt.

Commands:
  :symbols  - print every declaration made so far
  :tokens   - print the tokens of the last input
  :reset    - forget all declarations
  :quit     - leave the session`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, replBanner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, replHistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession(out, appConfig.Report.Color)
	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if s.eval(input) {
			return nil
		}
	}
}

// readInput reads one logical input, continuing on further lines while the
// text so far is unfinished. ok is false at end of input or on Ctrl-C.
func readInput(ln *liner.State) (input string, ok bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return b.String(), true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !tinyc.NeedsMoreInput(b.String()) {
			return b.String(), true
		}
	}
}

// session is the state of one interactive session.
type session struct {
	out     io.Writer
	color   bool
	symbols *tinyc.SymbolTable
	last    []tinyc.Token
}

func newSession(out io.Writer, color bool) *session {
	return &session{out: out, color: color, symbols: tinyc.NewSymbolTable()}
}

// eval handles one input: a colon command or program text. It reports
// whether the session should end.
func (s *session) eval(input string) (quit bool) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":q", ":exit":
			return true
		case ":symbols":
			s.write(&tinyc.Result{Symbols: s.symbols.AllSymbols()}, report.SectionSymbols)
		case ":tokens":
			s.write(&tinyc.Result{Tokens: s.last}, report.SectionTokens)
		case ":reset":
			s.symbols = tinyc.NewSymbolTable()
			s.last = nil
			fmt.Fprintln(s.out, "symbol table cleared")
		case ":help":
			fmt.Fprintln(s.out, replBanner)
		default:
			fmt.Fprintf(s.out, "unknown command %s. Type :help for a list.\n", trimmed)
		}
		return false
	}

	s.last = tinyc.Tokenize(input)
	p := tinyc.NewParser(s.last, s.symbols)
	p.SetLogger(logger)
	p.Parse()

	if !p.SyntaxErrors.HasErrors() && !p.SemanticErrors.HasErrors() {
		fmt.Fprintln(s.out, "ok")
		return false
	}
	for _, msg := range p.SyntaxErrors.Strings() {
		fmt.Fprintf(s.out, "syntax: %s\n", msg)
	}
	for _, msg := range p.SemanticErrors.Strings() {
		fmt.Fprintf(s.out, "semantic: %s\n", msg)
	}
	return false
}

func (s *session) write(res *tinyc.Result, sections report.Section) {
	err := report.Write(s.out, report.FromResult(res), report.FormatText, report.Options{
		Color:    s.color,
		Sections: sections,
	})
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}
