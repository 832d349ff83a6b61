package tinyc

// TokenKind is the lexical class of a token.
type TokenKind int

const (
	KEYWORD TokenKind = iota
	IDENTIFIER
	NUMBER
	OPERATOR
	SEPARATOR
	COMMENT
	UNKNOWN
	EOF
)

// String returns the name used in reports, e.g. "KEYWORD" or "EOF".
func (k TokenKind) String() string {
	switch k {
	case KEYWORD:
		return "KEYWORD"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case OPERATOR:
		return "OPERATOR"
	case SEPARATOR:
		return "SEPARATOR"
	case COMMENT:
		return "COMMENT"
	case UNKNOWN:
		return "UNKNOWN"
	case EOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexical unit. Line is 1-based.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

var keywords = map[string]bool{
	"int":    true,
	"float":  true,
	"if":     true,
	"else":   true,
	"while":  true,
	"return": true,
}

// IsKeyword reports whether lit is a reserved word.
func IsKeyword(lit string) bool {
	return keywords[lit]
}
