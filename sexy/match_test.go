package sexy

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	n, err := Parse(input)
	be.Err(t, err, nil)
	return n
}

func TestMatchEqual(t *testing.T) {
	tests := []string{
		`x`,
		`"text"`,
		`12`,
		`[]`,
		`[(KEYWORD "int" 1) (EOF "" 1)]`,
	}

	for _, input := range tests {
		be.Err(t, Match(mustParse(t, input), mustParse(t, input)), nil)
	}
}

func TestMatchEllipsis(t *testing.T) {
	actual := mustParse(t, `[(KEYWORD "int" 1) (IDENTIFIER "x" 1) (EOF "" 1)]`)

	tests := []string{
		`...`,
		`[...]`,
		`[(KEYWORD "int" 1) ...]`,
		`[(KEYWORD ...) (IDENTIFIER "x" ...) ...]`,
		`[(KEYWORD "int" 1) (IDENTIFIER "x" 1) (EOF "" 1) ...]`,
	}

	for _, pattern := range tests {
		t.Run(pattern, func(t *testing.T) {
			be.Err(t, Match(mustParse(t, pattern), actual), nil)
		})
	}
}

func TestMatchMismatch(t *testing.T) {
	tests := []struct {
		pattern string
		actual  string
		message string
	}{
		{`x`, `y`, "at root: expected x, got y"},
		{`"a"`, `a`, "at root: expected string"},
		{`[1 2]`, `[1]`, "expected 2 items, got 1"},
		{`[1 2 ...]`, `[1]`, "expected at least 2 items"},
		{`[(a 1) (b 2)]`, `[(a 1) (b 3)]`, "at root[1][1]: expected 2, got 3"},
		{`(a)`, `[a]`, "expected list"},
	}

	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			err := Match(mustParse(t, test.pattern), mustParse(t, test.actual))
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), test.message))
		})
	}
}

func TestMatchNil(t *testing.T) {
	be.Err(t, Match(nil, nil), nil)
	be.True(t, Match(NewSymbol("a"), nil) != nil)
}
