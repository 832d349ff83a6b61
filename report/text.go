package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorOK      = lipgloss.Color("#10B981")
	colorWarn    = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

type styles struct {
	title    func(string) string
	header   func(string) string
	ok       func(string) string
	syntax   func(string) string
	semantic func(string) string
	muted    func(string) string
}

func plain(s string) string { return s }

// render adapts lipgloss's variadic Style.Render to func(string) string.
func render(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}

// newStyles builds styles bound to w's terminal. Without color every style
// returns its input unchanged.
func newStyles(w io.Writer, color bool) styles {
	if !color {
		return styles{plain, plain, plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		title:    render(r.NewStyle().Bold(true).Foreground(colorPrimary)),
		header:   render(r.NewStyle().Bold(true).Underline(true)),
		ok:       render(r.NewStyle().Foreground(colorOK)),
		syntax:   render(r.NewStyle().Foreground(colorError)),
		semantic: render(r.NewStyle().Foreground(colorWarn)),
		muted:    render(r.NewStyle().Foreground(colorMuted).Italic(true)),
	}
}

func writeText(w io.Writer, r *Report, sections Section, st styles) error {
	var b strings.Builder

	if sections&SectionTokens != 0 {
		fmt.Fprintf(&b, "%s\n", st.title(fmt.Sprintf("Tokens (%d)", r.TotalTokens)))
		fmt.Fprintf(&b, "  %s\n", st.header(fmt.Sprintf("%-6s %-12s %s", "LINE", "TYPE", "VALUE")))
		for _, tok := range r.Tokens {
			fmt.Fprintf(&b, "  %-6d %-12s %s\n", tok.Line, tok.Type, escapeValue(tok.Value))
		}
		b.WriteString("\n")
	}

	if sections&SectionSyntaxErrors != 0 {
		writeDiagnostics(&b, "Syntax errors", r.SyntaxErrors, st.syntax, st)
	}
	if sections&SectionSemanticErrors != 0 {
		writeDiagnostics(&b, "Semantic errors", r.SemanticErrors, st.semantic, st)
	}

	if sections&SectionSymbols != 0 {
		fmt.Fprintf(&b, "%s\n", st.title(fmt.Sprintf("Symbol table (%d)", len(r.SymbolTable))))
		if len(r.SymbolTable) == 0 {
			fmt.Fprintf(&b, "  %s\n", st.muted("empty"))
		} else {
			fmt.Fprintf(&b, "  %s\n", st.header(fmt.Sprintf("%-16s %-6s %-6s %s", "NAME", "TYPE", "LINE", "SCOPE")))
			for _, sym := range r.SymbolTable {
				fmt.Fprintf(&b, "  %-16s %-6s %-6d %d\n", sym.Name, sym.Type, sym.Line, sym.Scope)
			}
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

func writeDiagnostics(b *strings.Builder, title string, list []string, paint func(string) string, st styles) {
	fmt.Fprintf(b, "%s\n", st.title(fmt.Sprintf("%s (%d)", title, len(list))))
	if len(list) == 0 {
		fmt.Fprintf(b, "  %s\n", st.ok("none"))
	}
	for _, msg := range list {
		fmt.Fprintf(b, "  %s\n", paint(msg))
	}
	b.WriteString("\n")
}

// escapeValue keeps multi-line comment tokens on one row.
func escapeValue(s string) string {
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return strings.ReplaceAll(s, "\t", `\t`)
}
