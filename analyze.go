// Package tinyc is the analyzer front end for a small imperative language:
// a lexer, a recursive-descent parser with panic-mode recovery, and a scoped
// symbol table.
//
// A typical run:
//
//	res := tinyc.Analyze("int x = 5;\nx = x + 1;")
//	if res.HasErrors() {
//		fmt.Println(res.SyntaxErrors.String())
//	}
package tinyc

import "log/slog"

// Result is everything one analysis run produces.
type Result struct {
	Tokens         []Token // includes comments and the final EOF
	SyntaxErrors   ErrorList
	SemanticErrors ErrorList
	Symbols        []Symbol // every accepted declaration, in order
}

// Options tune an analysis run.
type Options struct {
	// Logger receives debug tracing from the parser. Nil disables tracing.
	Logger *slog.Logger
}

// Analyze lexes and parses source with a fresh symbol table.
func Analyze(source string) *Result {
	return AnalyzeWithOptions(source, Options{})
}

func AnalyzeWithOptions(source string, opts Options) *Result {
	tokens := NewLexer(source).Tokenize()

	symbols := NewSymbolTable()
	p := NewParser(tokens, symbols)
	if opts.Logger != nil {
		p.SetLogger(opts.Logger)
	}
	p.Parse()

	res := &Result{
		Tokens:         tokens,
		SyntaxErrors:   p.SyntaxErrors,
		SemanticErrors: p.SemanticErrors,
		Symbols:        symbols.AllSymbols(),
	}
	if opts.Logger != nil {
		s := res.Summary()
		opts.Logger.Debug("analysis finished",
			"tokens", s.Tokens,
			"syntax_errors", s.SyntaxErrors,
			"semantic_errors", s.SemanticErrors,
			"symbols", s.Symbols)
	}
	return res
}

// HasErrors reports whether any syntax or semantic diagnostic was produced.
func (r *Result) HasErrors() bool {
	return r.SyntaxErrors.HasErrors() || r.SemanticErrors.HasErrors()
}

// Summary counts what a Result contains.
type Summary struct {
	Tokens         int
	SyntaxErrors   int
	SemanticErrors int
	Symbols        int
}

func (r *Result) Summary() Summary {
	return Summary{
		Tokens:         len(r.Tokens),
		SyntaxErrors:   len(r.SyntaxErrors),
		SemanticErrors: len(r.SemanticErrors),
		Symbols:        len(r.Symbols),
	}
}

// NeedsMoreInput reports whether source looks unfinished: an open '{' or
// '(' without its partner, or a block comment without "*/". Interactive
// callers use it to keep reading lines.
func NeedsMoreInput(source string) bool {
	braces, parens := 0, 0
	for _, tok := range Tokenize(source) {
		switch {
		case tok.Kind == SEPARATOR && tok.Text == "{":
			braces++
		case tok.Kind == SEPARATOR && tok.Text == "}":
			braces--
		case tok.Kind == SEPARATOR && tok.Text == "(":
			parens++
		case tok.Kind == SEPARATOR && tok.Text == ")":
			parens--
		case tok.Kind == COMMENT && len(tok.Text) >= 2 && tok.Text[:2] == "/*":
			if len(tok.Text) < 4 || tok.Text[len(tok.Text)-2:] != "*/" {
				return true
			}
		}
	}
	return braces > 0 || parens > 0
}
