package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
	NodeArray
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeEllipsis:
		return "ellipsis"
	case NodeList:
		return "list"
	case NodeArray:
		return "array"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is one Sexy datum: an atom, a (list), or an [array].
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeInteger
	Items []*Node // NodeList, NodeArray
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		escaped = strings.ReplaceAll(escaped, "\n", "\\n")
		return "\"" + escaped + "\""
	case NodeEllipsis:
		return "..."
	case NodeList:
		return "(" + joinItems(n.Items) + ")"
	case NodeArray:
		return "[" + joinItems(n.Items) + "]"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func joinItems(items []*Node) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}

// Helper constructors for common node types
func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(n int) *Node {
	return &Node{Type: NodeInteger, Text: fmt.Sprint(n)}
}

func NewEllipsis() *Node {
	return &Node{Type: NodeEllipsis}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

func NewArray(items ...*Node) *Node {
	return &Node{Type: NodeArray, Items: items}
}

// IsAtom checks if the node is an atomic value
func (n *Node) IsAtom() bool {
	return n.Type == NodeSymbol || n.Type == NodeString || n.Type == NodeInteger || n.Type == NodeEllipsis
}

type parser struct {
	lexer        *lexer
	currentToken token
}

// Parse parses the entire input and returns the top-level datum
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()

	result, err := p.parseDatum()
	if len(p.lexer.errors) > 0 {
		// Lexer errors take priority because they might cause confusing parser errors.
		return nil, fmt.Errorf("%s", p.lexer.errors[0])
	}
	if err != nil {
		return nil, err
	}
	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("expected EOF but got %s", p.currentToken.Type)
	}
	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.lexer.nextToken()
}

func (p *parser) parseDatum() (*Node, error) {
	tok := p.currentToken
	switch tok.Type {
	case tokenSymbol:
		p.nextToken()
		return NewSymbol(tok.Value), nil
	case tokenString:
		p.nextToken()
		return NewString(tok.Value), nil
	case tokenInteger:
		p.nextToken()
		return &Node{Type: NodeInteger, Text: tok.Value}, nil
	case tokenEllipsis:
		p.nextToken()
		return NewEllipsis(), nil
	case tokenLParen:
		items, err := p.parseItems(tokenRParen)
		if err != nil {
			return nil, err
		}
		return NewList(items...), nil
	case tokenLBracket:
		items, err := p.parseItems(tokenRBracket)
		if err != nil {
			return nil, err
		}
		return NewArray(items...), nil
	default:
		return nil, fmt.Errorf("offset %d: unexpected token: %s", tok.Position, tok.Type)
	}
}

// parseItems parses data up to the closing token, consuming both brackets.
func (p *parser) parseItems(closing tokenType) ([]*Node, error) {
	p.nextToken() // consume opening bracket

	items := []*Node{}
	for p.currentToken.Type != closing && p.currentToken.Type != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.currentToken.Type != closing {
		return nil, fmt.Errorf("expected %s but got %s", closing, p.currentToken.Type)
	}
	p.nextToken() // consume closing bracket
	return items, nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenInteger
	tokenEllipsis
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type     tokenType
	Value    string
	Position int
}

type lexer struct {
	input    []rune
	position int
	errors   []string
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) current() rune {
	if l.position >= len(l.input) {
		return 0
	}
	return l.input[l.position]
}

func (l *lexer) peekChar() rune {
	if l.position+1 >= len(l.input) {
		return 0
	}
	return l.input[l.position+1]
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		c := l.current()
		if unicode.IsSpace(c) {
			l.position++
		} else if c == ';' {
			for l.current() != '\n' && l.current() != 0 {
				l.position++
			}
		} else {
			return
		}
	}
}

func (l *lexer) readWhile(pred func(rune) bool) string {
	start := l.position
	for l.current() != 0 && pred(l.current()) {
		l.position++
	}
	return string(l.input[start:l.position])
}

func (l *lexer) readString() (string, error) {
	var b strings.Builder
	l.position++ // skip opening quote

	for l.current() != '"' && l.current() != 0 {
		if l.current() == '\\' {
			l.position++
			switch l.current() {
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				return "", fmt.Errorf("invalid escape sequence: \\%c", l.current())
			}
		} else {
			b.WriteRune(l.current())
		}
		l.position++
	}

	if l.current() != '"' {
		return "", fmt.Errorf("unterminated string")
	}
	l.position++ // skip closing quote
	return b.String(), nil
}

func (l *lexer) nextToken() token {
	l.skipWhitespaceAndComments()
	pos := l.position

	switch c := l.current(); {
	case c == 0:
		return token{Type: tokenEOF, Position: pos}
	case c == '(':
		l.position++
		return token{Type: tokenLParen, Value: "(", Position: pos}
	case c == ')':
		l.position++
		return token{Type: tokenRParen, Value: ")", Position: pos}
	case c == '[':
		l.position++
		return token{Type: tokenLBracket, Value: "[", Position: pos}
	case c == ']':
		l.position++
		return token{Type: tokenRBracket, Value: "]", Position: pos}
	case c == '"':
		str, err := l.readString()
		if err != nil {
			l.errors = append(l.errors, err.Error())
			return token{Type: tokenEOF, Position: pos}
		}
		return token{Type: tokenString, Value: str, Position: pos}
	case c == '.':
		if l.peekChar() == '.' && l.position+2 < len(l.input) && l.input[l.position+2] == '.' {
			l.position += 3
			return token{Type: tokenEllipsis, Value: "...", Position: pos}
		}
		l.errors = append(l.errors, "unexpected character '.'")
		return token{Type: tokenEOF, Position: pos}
	case unicode.IsDigit(c), (c == '-' || c == '+') && unicode.IsDigit(l.peekChar()):
		l.position++
		return token{Type: tokenInteger, Value: string(c) + l.readWhile(unicode.IsDigit), Position: pos}
	case isSymbolStart(c):
		l.position++
		return token{Type: tokenSymbol, Value: string(c) + l.readWhile(isSymbolChar), Position: pos}
	default:
		l.errors = append(l.errors, fmt.Sprintf("unexpected character '%c'", c))
		return token{Type: tokenEOF, Position: pos}
	}
}

func isSymbolStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '-' || r == '+'
}

func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}
