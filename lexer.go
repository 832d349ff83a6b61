package tinyc

import "unicode/utf8"

// Lexer turns source text into tokens. A Lexer is used once: call Tokenize,
// and create a new Lexer to scan the same text again.
type Lexer struct {
	input string
	pos   int // current reading position in input
	line  int
	done  bool
}

// NewLexer returns a lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Tokenize scans the whole input. The returned slice always ends with exactly
// one EOF token.
//
// Panics if called more than once on the same Lexer.
func (l *Lexer) Tokenize() []Token {
	if l.done {
		panic("Lexer.Tokenize called twice")
	}
	l.done = true

	var tokens []Token
	for !l.atEnd() {
		l.skipWhitespace()
		if l.atEnd() {
			break
		}
		tokens = append(tokens, l.nextToken())
	}
	return append(tokens, Token{Kind: EOF, Text: "", Line: l.line})
}

// Tokenize is a convenience wrapper around NewLexer(input).Tokenize().
func Tokenize(input string) []Token {
	return NewLexer(input).Tokenize()
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// peek returns the byte offset bytes ahead, or 0 past the end of input.
func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.input[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			l.line++
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) nextToken() Token {
	c := l.input[l.pos]

	if isLetter(c) {
		lit := l.readIdentifier()
		if IsKeyword(lit) {
			return Token{Kind: KEYWORD, Text: lit, Line: l.line}
		}
		return Token{Kind: IDENTIFIER, Text: lit, Line: l.line}
	}
	if isDigit(c) {
		return Token{Kind: NUMBER, Text: l.readNumber(), Line: l.line}
	}

	switch c {
	case '+', '-', '*', '<', '>':
		l.pos++
		return Token{Kind: OPERATOR, Text: string(c), Line: l.line}

	case '(', ')', '{', '}', ';', ',':
		l.pos++
		return Token{Kind: SEPARATOR, Text: string(c), Line: l.line}

	case '/':
		switch l.peek(1) {
		case '/':
			return Token{Kind: COMMENT, Text: l.readLineComment(), Line: l.line}
		case '*':
			text := l.readBlockComment()
			// Line is read after scanning, so a multi-line comment reports
			// the line it ends on.
			return Token{Kind: COMMENT, Text: text, Line: l.line}
		}
		l.pos++
		return Token{Kind: OPERATOR, Text: "/", Line: l.line}

	case '=':
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Kind: OPERATOR, Text: "==", Line: l.line}
		}
		l.pos++
		return Token{Kind: OPERATOR, Text: "=", Line: l.line}
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	lit := l.input[l.pos : l.pos+size]
	if r == utf8.RuneError && size <= 1 {
		lit = l.input[l.pos : l.pos+1]
		size = 1
	}
	l.pos += size
	return Token{Kind: UNKNOWN, Text: lit, Line: l.line}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for !l.atEnd() && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.pos++
	}
	return l.input[start:l.pos]
}

// readNumber reads digits with an optional fractional part. A '.' that is
// not followed by a digit is left for the next token.
func (l *Lexer) readNumber() string {
	start := l.pos
	for !l.atEnd() && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.pos++ // skip .
		for !l.atEnd() && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return l.input[start:l.pos]
}

// readLineComment reads from "//" up to, but not including, the newline.
func (l *Lexer) readLineComment() string {
	start := l.pos
	l.pos += 2 // skip //
	for !l.atEnd() && l.input[l.pos] != '\n' {
		l.pos++
	}
	return l.input[start:l.pos]
}

// readBlockComment reads from "/*" through "*/". An unterminated comment
// runs to the end of input.
func (l *Lexer) readBlockComment() string {
	start := l.pos
	l.pos += 2 // skip /*
	for !l.atEnd() {
		if l.input[l.pos] == '*' && l.peek(1) == '/' {
			l.pos += 2 // skip */
			break
		}
		if l.input[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	return l.input[start:l.pos]
}
