package sexy

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractTestCases_BasicTest(t *testing.T) {
	markdown := `# Declarations

## Test: single declaration
` + "```tinyc" + `
int x = 5;
` + "```" + `
` + "```symbols" + `
[("x" int 1 0)]
` + "```" + `

## Test: missing semicolon
` + "```tinyc" + `
int x
` + "```" + `
` + "```syntax-errors" + `
["Line 1 Missing semicolon"]
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "single declaration")
	be.Equal(t, tc1.Input, "int x = 5;")
	be.Equal(t, len(tc1.Assertions), 1)
	be.Equal(t, tc1.Assertions[0].Type, AssertionTypeSymbols)
	be.Equal(t, tc1.Assertions[0].Content, `[("x" int 1 0)]`)
	be.Equal(t, tc1.Assertions[0].ParsedSexy.String(), `[("x" int 1 0)]`)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "missing semicolon")
	be.Equal(t, tc2.Input, "int x")
	be.Equal(t, tc2.Assertions[0].Type, AssertionTypeSyntaxErrors)
	be.Equal(t, tc2.Assertions[0].ParsedSexy.Items[0].Text, "Line 1 Missing semicolon")
}

func TestExtractTestCases_MultipleAssertions(t *testing.T) {
	markdown := `## Test: undeclared
` + "```tinyc" + `
y = 3;
` + "```" + `
` + "```syntax-errors" + `
[]
` + "```" + `
` + "```semantic-errors" + `
["Line 1 Variable y used without declaration"]
` + "```" + `
` + "```symbols" + `
[]
` + "```" + `
` + "```tokens" + `
[(IDENTIFIER "y" 1) ...]
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)

	tc := testCases[0]
	be.Equal(t, len(tc.Assertions), 4)
	be.Equal(t, tc.Assertions[0].Type, AssertionTypeSyntaxErrors)
	be.Equal(t, tc.Assertions[1].Type, AssertionTypeSemanticErrors)
	be.Equal(t, tc.Assertions[2].Type, AssertionTypeSymbols)
	be.Equal(t, tc.Assertions[3].Type, AssertionTypeTokens)
	be.Equal(t, tc.Assertions[3].ParsedSexy.String(), `[(IDENTIFIER "y" 1) ...]`)
}

func TestExtractTestCases_MultiLineInput(t *testing.T) {
	markdown := `## Test: block
` + "```tinyc" + `
int x = 1;
if (x < 10) {
    int y;
}
` + "```" + `
` + "```symbols" + `
[("x" int 1 0) ("y" int 3 1)]
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, testCases[0].Input, "int x = 1;\nif (x < 10) {\n    int y;\n}")
}

func TestExtractTestCases_EmptyInput(t *testing.T) {
	markdown := "## Test: nothing\n```tinyc\n```\n```tokens\n[(EOF \"\" 1)]\n```\n"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Input, "")
}

func TestExtractTestCases_EmptyFile(t *testing.T) {
	testCases, err := ExtractTestCases("")
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_NoTestCases(t *testing.T) {
	markdown := "# Notes\n\nJust prose.\n\n```\nplain block\n```\n"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_InvalidSexyAssertion(t *testing.T) {
	markdown := "## Test: broken\n```tinyc\nint x;\n```\n```symbols\n[(\"x\" int\n```\n"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "failed to parse Sexy assertion in test 'broken'"))
}

// Error condition tests

func TestExtractTestCases_FenceOutsideTestCase(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		fenceType string
	}{
		{"input fence outside test", "# Document\n\n```tinyc\nint x;\n```\n", "tinyc"},
		{"tokens fence outside test", "# Document\n\n```tokens\n[]\n```\n", "tokens"},
		{"symbols fence outside test", "# Document\n\n```symbols\n[]\n```\n", "symbols"},
		{"syntax-errors fence outside test", "# Document\n\n```syntax-errors\n[]\n```\n", "syntax-errors"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTestCases(test.markdown)
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), test.fenceType+" fence found outside of test case"))
			be.True(t, strings.Contains(err.Error(), "line"))
		})
	}
}

func TestExtractTestCases_UnknownFenceOutsideTest(t *testing.T) {
	_, err := ExtractTestCases("# Document\n\n```python\nprint(1)\n```\n")
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown fence language 'python' found outside of test case"))
}

func TestExtractTestCases_UnknownFenceInTest(t *testing.T) {
	markdown := "## Test: with unknown fence\n```python\nprint(1)\n```\n"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown fence language 'python' in test 'with unknown fence'"))
}

func TestExtractTestCases_TestMissingInputFence(t *testing.T) {
	markdown := "## Test: no input\n```symbols\n[]\n```\n"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.Equal(t, err.Error(), "test 'no input' has no input fence")
}

func TestExtractTestCases_TestMissingAssertionFence(t *testing.T) {
	markdown := "## Test: no assertions\n```tinyc\nint x;\n```\n"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.Equal(t, err.Error(), "test 'no assertions' has no assertion fences")
}

func TestExtractTestCases_MultipleInputFences(t *testing.T) {
	markdown := "## Test: two inputs\n```tinyc\nint x;\n```\n```tinyc\nint y;\n```\n```symbols\n[]\n```\n"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "multiple input fences found in test 'two inputs'"))
}

func TestExtractTestCases_AllowFencesWithoutLanguage(t *testing.T) {
	markdown := "## Test: with notes\n```\nsome notes\n```\n```tinyc\nint x;\n```\n```symbols\n[(\"x\" int 1 0)]\n```\n"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Input, "int x;")
}

func TestExtractTestCases_LineNumberAccuracy(t *testing.T) {
	markdown := "# Title\n\nprose\n\n```tokens\n[]\n```\n"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "line 6:"))
}

func TestExtractTestCases_ErrorInSecondTest(t *testing.T) {
	markdown := "## Test: good\n```tinyc\nint x;\n```\n```symbols\n[]\n```\n\n## Test: bad\n```tinyc\nint y;\n```\n"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.Equal(t, err.Error(), "test 'bad' has no assertion fences")
}
