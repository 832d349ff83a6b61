package tinyc

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestAnalyze(t *testing.T) {
	res := Analyze("int x = 5;")

	be.Equal(t, []Token{
		{KEYWORD, "int", 1},
		{IDENTIFIER, "x", 1},
		{OPERATOR, "=", 1},
		{NUMBER, "5", 1},
		{SEPARATOR, ";", 1},
		{EOF, "", 1},
	}, res.Tokens)
	be.Equal(t, 0, len(res.SyntaxErrors))
	be.Equal(t, 0, len(res.SemanticErrors))
	be.Equal(t, []Symbol{{Name: "x", Type: "int", Line: 1, Scope: 0}}, res.Symbols)
	be.Equal(t, false, res.HasErrors())
}

func TestAnalyzeKeepsCommentTokens(t *testing.T) {
	res := Analyze("// header\nint x; /* note */")

	be.Equal(t, 6, len(res.Tokens))
	be.Equal(t, COMMENT, res.Tokens[0].Kind)
	be.Equal(t, COMMENT, res.Tokens[4].Kind)
	be.Equal(t, []string{
		"Line 1 INVALID statement order or unknown token // header",
		"Line 2 INVALID statement order or unknown token /* note */",
	}, res.SyntaxErrors.Strings())
	be.Equal(t, []Symbol{{Name: "x", Type: "int", Line: 2, Scope: 0}}, res.Symbols)
}

func TestAnalyzeHasErrors(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{"int a;", false},
		{"int a", true},
		{"a = 1;", true},
		{"int a; int a;", true},
		{"@", true},
	}

	for _, tt := range tests {
		be.Equal(t, tt.expected, Analyze(tt.source).HasErrors())
	}
}

func TestAnalyzeRunsAreIndependent(t *testing.T) {
	first := Analyze("int x;")
	second := Analyze("x = 1;")

	be.Equal(t, 1, len(first.Symbols))
	be.Equal(t, []string{"Line 1 Variable x used without declaration"}, second.SemanticErrors.Strings())
}

func TestSummary(t *testing.T) {
	res := Analyze("int a = 1;\nint a;\nb = 2\n")

	be.Equal(t, Summary{
		Tokens:         12,
		SyntaxErrors:   1,
		SemanticErrors: 2,
		Symbols:        1,
	}, res.Summary())
}

func TestAnalyzeWithOptionsLogsSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res := AnalyzeWithOptions("int x;\nx = y;", Options{Logger: logger})

	be.Equal(t, 1, len(res.SemanticErrors))
	out := buf.String()
	be.True(t, strings.Contains(out, "analysis finished"))
	be.True(t, strings.Contains(out, "semantic_errors=1"))
	be.True(t, strings.Contains(out, "symbols=1"))
}

func TestAnalyzeWithoutLoggerIsQuiet(t *testing.T) {
	res := AnalyzeWithOptions("{ int x; }", Options{})
	be.Equal(t, 1, len(res.Symbols))
}

func TestAnalyzeNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"}}}}",
		"((((",
		"if if if",
		"while",
		"else else",
		"int int int;",
		"= = = ;",
		"/*",
		"\x00\x01\x02",
		"int x = ((((1)))) + * / ;",
		"{ { { { int a; } } } } a = 1;",
	}

	for _, input := range inputs {
		res := Analyze(input)
		be.Equal(t, EOF, res.Tokens[len(res.Tokens)-1].Kind)
	}
}

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{"", false},
		{"int x = 5;", false},
		{"if (x < 1) {", true},
		{"if (x < 1) {\n x = 2;\n}", false},
		{"while (x", true},
		{"{ { }", true},
		{"}", false},
		{"/* still", true},
		{"/* done */", false},
		{"/*/", true},
		{"/**/", false},
		{"// {", false},
	}

	for _, tt := range tests {
		be.Equal(t, tt.expected, NeedsMoreInput(tt.source))
	}
}
