// parser.go — recursive-descent parser for LEXOR.
//
// The parser consumes the token slice produced by the lexer (see lexer.go)
// and builds the tree defined in ast.go. Grammar:
//
//	Program       := SCRIPT AREA START SCRIPT Declaration* Statement* END SCRIPT
//	Declaration   := DECLARE Type Binding (',' Binding)*
//	Type          := INT | CHAR | BOOL | FLOAT
//	Binding       := IDENT ('=' Expression)?
//	Statement     := Declaration | Assignment | PrintStmt | ScanStmt
//	               | IfStmt | ForStmt | RepeatStmt
//	Assignment    := IDENT ('=' IDENT)* '=' Expression
//	PrintStmt     := PRINT ':' Expression ('&' Expression)*
//	ScanStmt      := SCAN ':' IDENT (',' IDENT)*
//	IfStmt        := IF '(' Expression ')' START IF Statement* END IF
//	                 (ELSE (IfStmt | START IF Statement* END IF))?
//	ForStmt       := START FOR Statement* END FOR
//	RepeatStmt    := REPEAT WHEN '(' Expression ')' START REPEAT Statement* END REPEAT
//
// Expressions use the usual precedence ladder, all levels left-associative:
// OR < AND < comparisons < additive < multiplicative < unary < primary.
//
// There is no error recovery: the first unmet expectation aborts the whole
// parse with a *ParseError carrying the offending token's position. ERROR
// tokens emitted by the fail-slow lexer become parse errors at the point the
// parser reaches them.
package lexor

import (
	"fmt"
	"strconv"
)

// ParseError reports the first grammar violation. Line/Col are 1-based.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse consumes tokens into a Program or fails on the first violation.
func Parse(toks []Token) (*Program, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != EOF {
		toks = append(toks, Token{Kind: EOF, Line: 1, Col: 1})
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseSource tokenizes and parses src in one step.
func ParseSource(src string) (*Program, error) {
	return Parse(Tokenize(src))
}

type parser struct {
	toks []Token
	i    int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) peekN(n int) Token {
	idx := p.i + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) atEnd() bool { return p.peek().Kind == EOF }

func (p *parser) check(k TokenKind) bool { return p.peek().Kind == k }

func (p *parser) match(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if p.peek().Kind == k {
			p.i++
			return true
		}
	}
	return false
}

// need consumes a token of kind k or fails with msg at the offending token.
// An ERROR token from the lexer is reported as its unexpected character.
func (p *parser) need(k TokenKind, msg string) (Token, error) {
	if p.match(k) {
		return p.prev(), nil
	}
	g := p.peek()
	if g.Kind == ERROR {
		return Token{}, &ParseError{Line: g.Line, Col: g.Col, Msg: fmt.Sprintf("unexpected character %q", g.Lexeme)}
	}
	return Token{}, &ParseError{Line: g.Line, Col: g.Col, Msg: msg}
}

func (p *parser) errAt(t Token, msg string) error {
	if t.Kind == ERROR {
		return &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf("unexpected character %q", t.Lexeme)}
	}
	return &ParseError{Line: t.Line, Col: t.Col, Msg: msg}
}

func at(t Token) position { return position{Line: t.Line, Col: t.Col} }

// ────────────────────────────────── program ─────────────────────────────────

func (p *parser) program() (*Program, error) {
	if _, err := p.need(SCRIPT, "expected SCRIPT to open the program"); err != nil {
		return nil, err
	}
	if _, err := p.need(AREA, "expected AREA after SCRIPT"); err != nil {
		return nil, err
	}
	if _, err := p.need(START, "expected START SCRIPT"); err != nil {
		return nil, err
	}
	if _, err := p.need(SCRIPT, "expected SCRIPT after START"); err != nil {
		return nil, err
	}

	prog := &Program{}
	for p.check(DECLARE) {
		d, err := p.declaration()
		if err != nil {
			return nil, err
		}
		prog.Declarations = append(prog.Declarations, d)
	}

	stmts, err := p.statementsUntilEnd()
	if err != nil {
		return nil, err
	}
	prog.Statements = stmts

	if _, err := p.need(END, "expected END SCRIPT to close the program"); err != nil {
		return nil, err
	}
	if _, err := p.need(SCRIPT, "expected SCRIPT after END"); err != nil {
		return nil, err
	}
	return prog, nil
}

// statementsUntilEnd collects statements until the next END keyword (which the
// caller consumes as part of its block closer).
func (p *parser) statementsUntilEnd() ([]Statement, error) {
	var out []Statement
	for !p.check(END) && !p.atEnd() {
		stmts, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
	}
	return out, nil
}

// ──────────────────────────────── statements ────────────────────────────────

// statement parses one source statement. It returns a slice because chained
// assignments desugar into several Assignment nodes.
func (p *parser) statement() ([]Statement, error) {
	switch p.peek().Kind {
	case DECLARE:
		d, err := p.declaration()
		if err != nil {
			return nil, err
		}
		return []Statement{d}, nil
	case IDENT:
		return p.assignment()
	case PRINT:
		s, err := p.printStatement()
		if err != nil {
			return nil, err
		}
		return []Statement{s}, nil
	case SCAN:
		s, err := p.scanStatement()
		if err != nil {
			return nil, err
		}
		return []Statement{s}, nil
	case IF:
		s, err := p.ifStatement()
		if err != nil {
			return nil, err
		}
		return []Statement{s}, nil
	case START:
		s, err := p.forStatement()
		if err != nil {
			return nil, err
		}
		return []Statement{s}, nil
	case REPEAT:
		s, err := p.repeatStatement()
		if err != nil {
			return nil, err
		}
		return []Statement{s}, nil
	default:
		return nil, p.errAt(p.peek(), "expected a statement")
	}
}

func (p *parser) declaration() (*Declaration, error) {
	tok, err := p.need(DECLARE, "expected DECLARE")
	if err != nil {
		return nil, err
	}
	var vt VarType
	switch {
	case p.match(INT):
		vt = TypeInt
	case p.match(FLOAT):
		vt = TypeFloat
	case p.match(CHAR):
		vt = TypeChar
	case p.match(BOOL):
		vt = TypeBool
	default:
		return nil, p.errAt(p.peek(), "expected a type (INT, FLOAT, CHAR or BOOL) after DECLARE")
	}

	d := &Declaration{position: at(tok), Type: vt}
	for {
		name, err := p.need(IDENT, "expected variable name in declaration")
		if err != nil {
			return nil, err
		}
		b := Binding{Name: name.Lexeme}
		if p.match(ASSIGN) {
			init, err := p.expression()
			if err != nil {
				return nil, err
			}
			b.Init = init
		}
		d.Bindings = append(d.Bindings, b)
		if !p.match(COMMA) {
			break
		}
	}
	return d, nil
}

// assignment parses IDENT ('=' IDENT)* '=' Expression and desugars a chain
// right-to-left: the rightmost target takes the value expression, every
// earlier target takes a reference to its right neighbor. a=b=c=5 therefore
// becomes c=5, b=c, a=b, executed in that order.
func (p *parser) assignment() ([]Statement, error) {
	first, err := p.need(IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}
	targets := []Token{first}
	if _, err := p.need(ASSIGN, "expected '=' after variable name"); err != nil {
		return nil, err
	}
	for p.check(IDENT) && p.peekN(1).Kind == ASSIGN {
		p.i += 2
		targets = append(targets, p.toks[p.i-2])
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	last := targets[len(targets)-1]
	out := []Statement{&Assignment{position: at(last), Name: last.Lexeme, Value: value}}
	for i := len(targets) - 2; i >= 0; i-- {
		right := targets[i+1]
		out = append(out, &Assignment{
			position: at(targets[i]),
			Name:     targets[i].Lexeme,
			Value:    &Identifier{position: at(right), Name: right.Lexeme},
		})
	}
	return out, nil
}

func (p *parser) printStatement() (*PrintStatement, error) {
	tok, _ := p.need(PRINT, "expected PRINT")
	if _, err := p.need(COLON, "expected ':' after PRINT"); err != nil {
		return nil, err
	}
	s := &PrintStatement{position: at(tok)}
	for {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		s.Exprs = append(s.Exprs, e)
		if !p.match(CONCAT) {
			break
		}
	}
	return s, nil
}

func (p *parser) scanStatement() (*ScanStatement, error) {
	tok, _ := p.need(SCAN, "expected SCAN")
	if _, err := p.need(COLON, "expected ':' after SCAN"); err != nil {
		return nil, err
	}
	s := &ScanStatement{position: at(tok)}
	for {
		name, err := p.need(IDENT, "expected variable name in SCAN")
		if err != nil {
			return nil, err
		}
		s.Names = append(s.Names, name.Lexeme)
		if !p.match(COMMA) {
			break
		}
	}
	return s, nil
}

func (p *parser) ifStatement() (*IfStatement, error) {
	tok, err := p.need(IF, "expected IF")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "expected '(' after IF"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after IF condition"); err != nil {
		return nil, err
	}
	then, err := p.block(IF)
	if err != nil {
		return nil, err
	}

	s := &IfStatement{position: at(tok), Cond: cond, Then: then}
	if p.match(ELSE) {
		if p.check(IF) {
			// ELSE IF chains as a single nested IfStatement in the else branch
			nested, err := p.ifStatement()
			if err != nil {
				return nil, err
			}
			s.Else = []Statement{nested}
		} else {
			els, err := p.block(IF)
			if err != nil {
				return nil, err
			}
			if els == nil {
				els = []Statement{}
			}
			s.Else = els
		}
	}
	return s, nil
}

func (p *parser) forStatement() (*ForStatement, error) {
	tok, err := p.need(START, "expected START FOR")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(FOR, "expected FOR after START"); err != nil {
		return nil, err
	}
	body, err := p.statementsUntilEnd()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(END, "expected END FOR"); err != nil {
		return nil, err
	}
	if _, err := p.need(FOR, "expected FOR after END"); err != nil {
		return nil, err
	}
	return &ForStatement{position: at(tok), Body: body}, nil
}

func (p *parser) repeatStatement() (*RepeatStatement, error) {
	tok, err := p.need(REPEAT, "expected REPEAT")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(WHEN, "expected WHEN after REPEAT"); err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "expected '(' after WHEN"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after REPEAT condition"); err != nil {
		return nil, err
	}
	body, err := p.block(REPEAT)
	if err != nil {
		return nil, err
	}
	return &RepeatStatement{position: at(tok), Cond: cond, Body: body}, nil
}

// block parses START <kind> Statement* END <kind>.
func (p *parser) block(kind TokenKind) ([]Statement, error) {
	if _, err := p.need(START, fmt.Sprintf("expected START %s", kind)); err != nil {
		return nil, err
	}
	if _, err := p.need(kind, fmt.Sprintf("expected %s after START", kind)); err != nil {
		return nil, err
	}
	stmts, err := p.statementsUntilEnd()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(END, fmt.Sprintf("expected END %s", kind)); err != nil {
		return nil, err
	}
	if _, err := p.need(kind, fmt.Sprintf("expected %s after END", kind)); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ─────────────────────────────── expressions ────────────────────────────────
//
// Each level delegates to the next tighter one and loops while its own
// operator set matches, which makes every binary level left-associative.

func (p *parser) expression() (Expression, error) {
	return p.logicalOr()
}

func (p *parser) logicalOr() (Expression, error) {
	left, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{position: at(op), Op: OR, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) logicalAnd() (Expression, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{position: at(op), Op: AND, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) comparison() (Expression, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for p.match(LESS, GREATER, LTE, GTE, EQ, NEQ) {
		op := p.prev()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{position: at(op), Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) additive() (Expression, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS) {
		op := p.prev()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{position: at(op), Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) multiplicative() (Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(MULT, DIV, MOD) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{position: at(op), Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) unary() (Expression, error) {
	if p.match(PLUS, MINUS, NOT) {
		op := p.prev()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{position: at(op), Op: op.Kind, Operand: operand}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case NUMBER:
		p.i++
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errAt(tok, fmt.Sprintf("invalid number literal %q", tok.Lexeme))
		}
		return &NumberLiteral{position: at(tok), Value: v, IsFloat: tok.IsFloat}, nil
	case STRING:
		p.i++
		return &StringLiteral{position: at(tok), Value: tok.Lexeme}, nil
	case CHARACTER:
		p.i++
		var c byte
		if len(tok.Lexeme) > 0 {
			c = tok.Lexeme[0]
		}
		return &CharacterLiteral{position: at(tok), Value: c}, nil
	case TRUE:
		p.i++
		return &BooleanLiteral{position: at(tok), Value: true}, nil
	case FALSE:
		p.i++
		return &BooleanLiteral{position: at(tok), Value: false}, nil
	case IDENT:
		p.i++
		return &Identifier{position: at(tok), Name: tok.Lexeme}, nil
	case LPAREN:
		p.i++
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.errAt(tok, "expected an expression")
	}
}
