package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/strager/tinyc"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"text", FormatText},
	}

	for _, tt := range tests {
		f, err := ParseFormat(tt.input)
		be.Err(t, err, nil)
		be.Equal(t, f, tt.expected)
		if tt.input == strings.ToLower(tt.input) && tt.input != "yml" {
			be.Equal(t, f.String(), tt.input)
		}
	}

	_, err := ParseFormat("xml")
	be.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFromResult(t *testing.T) {
	r := FromResult(tinyc.Analyze("int x;\n{ float y; }\nz = 1;"))

	be.Equal(t, r.TotalTokens, 13)
	be.Equal(t, len(r.Tokens), 13)
	be.Equal(t, r.Tokens[0], Token{Type: "KEYWORD", Value: "int", Line: 1})
	be.Equal(t, r.Tokens[12], Token{Type: "EOF", Value: "", Line: 3})
	be.Equal(t, r.SyntaxErrors, []string{})
	be.Equal(t, r.SemanticErrors, []string{"Line 3 Variable z used without declaration"})
	be.Equal(t, r.SymbolTable, []Symbol{
		{Name: "x", Type: "int", Line: 1, Scope: 0},
		{Name: "y", Type: "float", Line: 2, Scope: 1},
	})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FromResult(tinyc.Analyze("int x = 5;")), FormatJSON, Options{})
	be.Err(t, err, nil)

	var decoded map[string]interface{}
	be.Err(t, json.Unmarshal(buf.Bytes(), &decoded), nil)
	be.Equal[any](t, decoded["totalTokens"], float64(6))
	be.Equal[any](t, decoded["syntaxErrors"], []interface{}{})
	be.Equal[any](t, decoded["semanticErrors"], []interface{}{})

	tokens := decoded["tokens"].([]interface{})
	be.Equal[any](t, tokens[3], map[string]interface{}{"type": "NUMBER", "value": "5", "line": float64(1)})

	symbols := decoded["symbolTable"].([]interface{})
	be.Equal[any](t, symbols[0], map[string]interface{}{"name": "x", "type": "int", "line": float64(1), "scope": float64(0)})
}

func TestWriteJSONEmptyListsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	be.Err(t, Write(&buf, FromResult(tinyc.Analyze("")), FormatJSON, Options{}), nil)

	out := buf.String()
	be.True(t, strings.Contains(out, `"syntaxErrors": []`))
	be.True(t, strings.Contains(out, `"symbolTable": []`))
	be.True(t, !strings.Contains(out, "null"))
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FromResult(tinyc.Analyze("int x;\nint x;")), FormatYAML, Options{})
	be.Err(t, err, nil)

	var decoded Report
	be.Err(t, yaml.Unmarshal(buf.Bytes(), &decoded), nil)
	be.Equal(t, decoded.TotalTokens, 7)
	be.Equal(t, decoded.SemanticErrors, []string{"Line 2 Duplicate declaration of x"})
	be.Equal(t, decoded.SymbolTable, []Symbol{{Name: "x", Type: "int", Line: 1, Scope: 0}})
	be.True(t, strings.Contains(buf.String(), "totalTokens: 7"))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FromResult(tinyc.Analyze("int x\n/* a\nb */")), FormatText, Options{})
	be.Err(t, err, nil)

	out := buf.String()
	be.True(t, strings.Contains(out, "Tokens (4)\n"))
	be.True(t, strings.Contains(out, "  1      KEYWORD      int\n"))
	be.True(t, strings.Contains(out, `  3      COMMENT      /* a\nb */`))
	be.True(t, strings.Contains(out, "Syntax errors (2)\n  Line 3 Missing semicolon\n"))
	be.True(t, strings.Contains(out, "Semantic errors (0)\n  none\n"))
	be.True(t, strings.Contains(out, "Symbol table (1)\n"))
	be.True(t, strings.Contains(out, "  x                int    1      0\n"))
}

func TestWriteTextNoColorHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	be.Err(t, Write(&buf, FromResult(tinyc.Analyze("y = 1;")), FormatText, Options{Color: false}), nil)
	be.True(t, !strings.Contains(buf.String(), "\x1b["))
}

func TestWriteTextWithColor(t *testing.T) {
	// A buffer is not a terminal, so styling degrades to plain text.
	var buf bytes.Buffer
	be.Err(t, Write(&buf, FromResult(tinyc.Analyze("y = 1;")), FormatText, Options{Color: true}), nil)
	be.True(t, strings.Contains(buf.String(), "Line 1 Variable y used without declaration"))
}

func TestWriteTextSections(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FromResult(tinyc.Analyze("int a;")), FormatText, Options{Sections: SectionTokens})
	be.Err(t, err, nil)

	out := buf.String()
	be.True(t, strings.HasPrefix(out, "Tokens (4)"))
	be.True(t, !strings.Contains(out, "Syntax errors"))
	be.True(t, !strings.Contains(out, "Symbol table"))

	buf.Reset()
	err = Write(&buf, FromResult(tinyc.Analyze("int a;")), FormatText, Options{Sections: SectionDiagnostics})
	be.Err(t, err, nil)
	out = buf.String()
	be.True(t, strings.HasPrefix(out, "Syntax errors (0)"))
	be.True(t, strings.Contains(out, "Semantic errors (0)"))
	be.True(t, !strings.Contains(out, "Tokens"))
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FromResult(tinyc.Analyze("")), Format(42), Options{})
	be.True(t, errors.Is(err, ErrUnknownFormat))
}
