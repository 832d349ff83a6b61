// Package report renders an analysis Result as JSON, YAML or styled text.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/strager/tinyc"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown report format")

// Format selects the report encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatText:
		return "text"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "json", "yaml" (or "yml") and "text" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text":
		return FormatText, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Report is the serialisable form of a tinyc.Result. Field names match the
// JSON the web front end reads.
type Report struct {
	TotalTokens    int      `json:"totalTokens" yaml:"totalTokens"`
	Tokens         []Token  `json:"tokens" yaml:"tokens"`
	SyntaxErrors   []string `json:"syntaxErrors" yaml:"syntaxErrors"`
	SemanticErrors []string `json:"semanticErrors" yaml:"semanticErrors"`
	SymbolTable    []Symbol `json:"symbolTable" yaml:"symbolTable"`
}

type Token struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
	Line  int    `json:"line" yaml:"line"`
}

type Symbol struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Line  int    `json:"line" yaml:"line"`
	Scope int    `json:"scope" yaml:"scope"`
}

// FromResult converts res. Every list is non-nil so empty lists encode as [].
func FromResult(res *tinyc.Result) *Report {
	r := &Report{
		TotalTokens:    len(res.Tokens),
		Tokens:         make([]Token, len(res.Tokens)),
		SyntaxErrors:   res.SyntaxErrors.Strings(),
		SemanticErrors: res.SemanticErrors.Strings(),
		SymbolTable:    make([]Symbol, len(res.Symbols)),
	}
	for i, tok := range res.Tokens {
		r.Tokens[i] = Token{Type: tok.Kind.String(), Value: tok.Text, Line: tok.Line}
	}
	for i, sym := range res.Symbols {
		r.SymbolTable[i] = Symbol{Name: sym.Name, Type: sym.Type, Line: sym.Line, Scope: sym.Scope}
	}
	return r
}

// Options tune Write.
type Options struct {
	// Color enables lipgloss styling in FormatText.
	Color bool
	// Sections limits FormatText output. Zero means every section.
	Sections Section
}

// Section is a bit set of text report sections.
type Section uint8

const (
	SectionTokens Section = 1 << iota
	SectionSyntaxErrors
	SectionSemanticErrors
	SectionSymbols

	SectionDiagnostics = SectionSyntaxErrors | SectionSemanticErrors
	SectionAll         = SectionTokens | SectionDiagnostics | SectionSymbols
)

// Write encodes r to w.
func Write(w io.Writer, r *Report, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return nil
	case FormatText:
		sections := opts.Sections
		if sections == 0 {
			sections = SectionAll
		}
		return writeText(w, r, sections, newStyles(w, opts.Color))
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
