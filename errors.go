package tinyc

import (
	"strconv"
	"strings"
)

// Diagnostic is a syntax or semantic problem found at a source line.
type Diagnostic struct {
	Line    int
	Message string
}

// String formats the diagnostic as "Line <n> <message>".
func (d Diagnostic) String() string {
	return "Line " + strconv.Itoa(d.Line) + " " + d.Message
}

// ErrorList collects diagnostics in the order they were reported.
type ErrorList []Diagnostic

func (e *ErrorList) add(line int, message string) {
	*e = append(*e, Diagnostic{Line: line, Message: message})
}

func (e ErrorList) HasErrors() bool {
	return len(e) > 0
}

// Strings returns each diagnostic formatted with Diagnostic.String.
func (e ErrorList) Strings() []string {
	out := make([]string, len(e))
	for i, d := range e {
		out[i] = d.String()
	}
	return out
}

// String joins all diagnostics, one per line.
func (e ErrorList) String() string {
	return strings.Join(e.Strings(), "\n")
}
