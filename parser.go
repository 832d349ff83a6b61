package tinyc

import "log/slog"

// Parser checks a token sequence against the grammar and resolves names
// against a SymbolTable as it goes. It reports problems into SyntaxErrors and
// SemanticErrors and never stops at the first one.
type Parser struct {
	tokens  []Token
	symbols *SymbolTable
	pos     int // index of the next unconsumed token
	logger  *slog.Logger

	SyntaxErrors   ErrorList
	SemanticErrors ErrorList
}

// NewParser prepares a parser over tokens. Comment tokens are walked like
// any other token, so a comment where a statement or operand is expected is
// reported. If tokens does not end with an EOF token, one is added.
func NewParser(tokens []Token, symbols *SymbolTable) *Parser {
	all := make([]Token, len(tokens), len(tokens)+1)
	copy(all, tokens)
	if len(all) == 0 || all[len(all)-1].Kind != EOF {
		line := 1
		if len(all) > 0 {
			line = all[len(all)-1].Line
		}
		all = append(all, Token{Kind: EOF, Line: line})
	}
	return &Parser{tokens: all, symbols: symbols}
}

// SetLogger enables debug tracing of scopes and diagnostics.
func (p *Parser) SetLogger(logger *slog.Logger) {
	p.logger = logger
}

// Parse walks the whole program.
func (p *Parser) Parse() {
	for p.peek().Kind != EOF {
		p.statement()
	}
}

// =============================================================================
// CURSOR
// =============================================================================

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) previous() Token {
	if p.pos == 0 {
		return Token{}
	}
	return p.tokens[p.pos-1]
}

// advance consumes the next token. The final EOF token is never consumed.
func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// check reports whether the next token has the given kind and, if text is
// not empty, the given text. It is always false at EOF.
func (p *Parser) check(kind TokenKind, text string) bool {
	tok := p.peek()
	if tok.Kind == EOF || tok.Kind != kind {
		return false
	}
	return text == "" || tok.Text == text
}

// match consumes the next token if check succeeds.
func (p *Parser) match(kind TokenKind, text string) bool {
	if p.check(kind, text) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchOperator(ops ...string) bool {
	for _, op := range ops {
		if p.match(OPERATOR, op) {
			return true
		}
	}
	return false
}

// expect consumes the next token if it matches, and otherwise reports message
// at the next token's line without consuming anything.
func (p *Parser) expect(kind TokenKind, text string, message string) bool {
	if p.match(kind, text) {
		return true
	}
	p.syntaxError(p.peek().Line, message)
	return false
}

func (p *Parser) syntaxError(line int, message string) {
	p.SyntaxErrors.add(line, message)
	if p.logger != nil {
		p.logger.Debug("syntax error", "line", line, "message", message, "pos", p.pos)
	}
}

func (p *Parser) semanticError(line int, message string) {
	p.SemanticErrors.add(line, message)
	if p.logger != nil {
		p.logger.Debug("semantic error", "line", line, "message", message, "depth", p.symbols.Depth())
	}
}

// synchronize skips to the next statement boundary: just past a ';', or
// before a token that starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for p.peek().Kind != EOF {
		if prev := p.previous(); prev.Kind == SEPARATOR && prev.Text == ";" {
			return
		}
		if next := p.peek(); next.Kind == KEYWORD {
			switch next.Text {
			case "int", "float", "if", "while", "return":
				return
			}
		}
		p.advance()
	}
}

// =============================================================================
// STATEMENTS
// =============================================================================

func (p *Parser) statement() {
	switch {
	case p.check(KEYWORD, "int"), p.check(KEYWORD, "float"):
		p.varDecl()
	case p.match(KEYWORD, "if"):
		p.ifStmt()
	case p.match(KEYWORD, "while"):
		p.whileStmt()
	case p.check(SEPARATOR, "{"):
		p.block()
	case p.check(IDENTIFIER, ""):
		p.assignment()
	default:
		tok := p.peek()
		p.syntaxError(tok.Line, "INVALID statement order or unknown token "+tok.Text)
		p.advance()
	}
}

// varDecl parses: ("int"|"float") IDENTIFIER ("=" expression)? ";"
func (p *Parser) varDecl() {
	typ := p.advance()
	if !p.check(IDENTIFIER, "") {
		p.syntaxError(p.peek().Line, "Expect variable name.")
		p.synchronize()
		return
	}
	name := p.advance()

	if !p.symbols.Add(name.Text, typ.Text, name.Line) {
		p.semanticError(name.Line, "Duplicate declaration of "+name.Text)
	}

	if p.match(OPERATOR, "=") {
		p.expression()
	}
	p.expect(SEPARATOR, ";", "Missing semicolon")
}

// assignment parses: IDENTIFIER "=" expression ";"
func (p *Parser) assignment() {
	name := p.advance()
	if p.symbols.Lookup(name.Text) == nil {
		p.semanticError(name.Line, "Variable "+name.Text+" used without declaration")
	}

	p.expect(OPERATOR, "=", "Expect '=' after variable.")
	p.expression()
	p.expect(SEPARATOR, ";", "Missing semicolon")
}

// ifStmt parses the rest of: "if" "(" expression ")" body ("else" body)?
func (p *Parser) ifStmt() {
	p.expect(SEPARATOR, "(", "Expect '(' after 'if'.")
	p.expression()
	p.expect(SEPARATOR, ")", "Expect ')' after condition.")
	p.body()

	if p.match(KEYWORD, "else") {
		p.body()
	}
}

// whileStmt parses the rest of: "while" "(" expression ")" body
func (p *Parser) whileStmt() {
	p.expect(SEPARATOR, "(", "Expect '(' after 'while'.")
	p.expression()
	p.expect(SEPARATOR, ")", "Expect ')' after condition.")
	p.body()
}

// body parses a block or a single statement. Only a block opens a scope.
func (p *Parser) body() {
	if p.check(SEPARATOR, "{") {
		p.block()
	} else {
		p.statement()
	}
}

// block parses: "{" statement* "}" inside a fresh scope.
func (p *Parser) block() {
	p.expect(SEPARATOR, "{", "Expect '{'")
	p.symbols.EnterScope()
	if p.logger != nil {
		p.logger.Debug("enter scope", "depth", p.symbols.Depth(), "line", p.previous().Line)
	}

	for !p.check(SEPARATOR, "}") && p.peek().Kind != EOF {
		p.statement()
	}
	p.expect(SEPARATOR, "}", "Expect '}'")

	if p.logger != nil {
		p.logger.Debug("exit scope", "depth", p.symbols.Depth(), "line", p.previous().Line)
	}
	p.symbols.ExitScope()
}

// =============================================================================
// EXPRESSIONS
// =============================================================================

// expression parses: term (("+"|"-"|"<"|">"|"==") term)*
func (p *Parser) expression() {
	p.term()
	for p.matchOperator("+", "-", "<", ">", "==") {
		p.term()
	}
}

// term parses: factor (("*"|"/") factor)*
func (p *Parser) term() {
	p.factor()
	for p.matchOperator("*", "/") {
		p.factor()
	}
}

// factor parses a number, a variable, or a parenthesized expression. On
// anything else it reports an error and consumes nothing; the enclosing
// statement recovers.
func (p *Parser) factor() {
	switch {
	case p.match(NUMBER, ""):
	case p.match(IDENTIFIER, ""):
		name := p.previous()
		if p.symbols.Lookup(name.Text) == nil {
			p.semanticError(name.Line, "Variable "+name.Text+" used without declaration")
		}
	case p.match(SEPARATOR, "("):
		p.expression()
		p.expect(SEPARATOR, ")", "Expect ')' after expression.")
	default:
		p.syntaxError(p.peek().Line, "Expect expression.")
	}
}
