// lexer.go — scanner for LEXOR source text.
//
// The lexer is a pure function of its input: Tokenize walks the source once,
// left to right, and always produces a token slice terminated by a single EOF
// token. It never stops early — characters that fit no rule become ERROR
// tokens and scanning continues, so a bad character only turns fatal when the
// parser later demands a valid token there.
//
// Lexical rules:
//   - `%%` starts a comment running to end of line (newline included).
//   - Spaces, tabs and newlines separate tokens and are discarded; newlines
//     are not statement terminators.
//   - Numbers are digits with at most one decimal point; a second '.' ends
//     the literal rather than failing.
//   - Double-quoted strings run to the closing quote or end of input, with
//     backslash escapes (\n, \t, \" and any other character verbatim).
//   - Single-quoted character literals hold exactly one character; an empty
//     pair of quotes yields an empty lexeme.
//   - `[c]` is an escape-bracket literal: a one-character STRING token
//     carrying c verbatim (used to print #, $, [ and ]).
//   - `$` is the line-break marker and is scanned as a STRING token "$".
//   - Two-character operators (<=, >=, ==, <>) are matched greedily before
//     their one-character prefixes.
package lexor

// Lexer scans a LEXOR source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 1-based column within line
	tokens []Token

	// position of the current token's first character
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  1,
	}
}

// Tokenize scans src in one pass and returns all tokens, EOF included.
func Tokenize(src string) []Token {
	return NewLexer(src).Scan()
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

// addToken appends a token whose lexeme is the raw source slice scanned so far.
func (l *Lexer) addToken(kind TokenKind) Token {
	return l.addTokenLexeme(kind, l.src[l.start:l.cur])
}

// addTokenLexeme appends a token with an explicit lexeme (decoded strings,
// escape-bracket literals) at the current token start position.
func (l *Lexer) addTokenLexeme(kind TokenKind, lexeme string) Token {
	tok := Token{
		Kind:   kind,
		Lexeme: lexeme,
		Line:   l.tokStartLine,
		Col:    l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) addNumberToken(lexeme string, isFloat bool) Token {
	tok := Token{
		Kind:    NUMBER,
		Lexeme:  lexeme,
		IsFloat: isFloat,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// skipBlanks discards whitespace and `%%` comments between tokens.
// Line/column counters keep advancing through skipped text.
func (l *Lexer) skipBlanks() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '%':
			if b, ok := l.peekN(1); ok && b == '%' {
				// comment to end of line, newline included
				for {
					c, ok := l.advance()
					if !ok || c == '\n' {
						break
					}
				}
				continue
			}
			return
		default:
			return
		}
	}
}

// ----- scanners -----

// scanNumber consumes digits with at most one decimal point. The leading
// digit has already been consumed.
func (l *Lexer) scanNumber() Token {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	isFloat := false
	if b, ok := l.peek(); ok && b == '.' {
		l.advance()
		isFloat = true
		for {
			b, ok := l.peek()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
		}
	}
	return l.addNumberToken(l.src[l.start:l.cur], isFloat)
}

// scanString decodes a double-quoted literal. The opening quote has already
// been consumed. An unterminated string silently ends at end of input.
func (l *Lexer) scanString() Token {
	var out []byte
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '"' {
			return l.addTokenLexeme(STRING, string(out))
		}
		if ch == '\\' {
			esc, ok := l.advance()
			if !ok {
				break
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"':
				out = append(out, '"')
			default:
				out = append(out, esc)
			}
			continue
		}
		out = append(out, ch)
	}
	return l.addTokenLexeme(STRING, string(out))
}

// scanCharacter handles a single-quoted literal. The opening quote has
// already been consumed. An empty pair of quotes yields an empty lexeme
// rather than failing; a missing closing quote yields an ERROR token with
// what was consumed.
func (l *Lexer) scanCharacter() Token {
	if b, ok := l.peek(); ok && b == '\'' {
		l.advance()
		return l.addTokenLexeme(CHARACTER, "")
	}
	ch, ok := l.advance()
	if !ok {
		return l.addTokenLexeme(ERROR, "'")
	}
	if b, ok := l.peek(); ok && b == '\'' {
		l.advance()
		return l.addTokenLexeme(CHARACTER, string(ch))
	}
	return l.addTokenLexeme(ERROR, l.src[l.start:l.cur])
}

// scanIdentifier consumes [A-Za-z_][A-Za-z0-9_]* and resolves keywords.
// The first character has already been consumed.
func (l *Lexer) scanIdentifier() Token {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	if kind, ok := keywords[lex]; ok {
		return l.addToken(kind)
	}
	return l.addTokenLexeme(IDENT, lex)
}

// ----- main scanner -----

func (l *Lexer) scanToken() Token {
	l.skipBlanks()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addTokenLexeme(EOF, "")
	}

	ch, _ := l.advance()

	switch ch {
	case '+':
		return l.addToken(PLUS)
	case '-':
		return l.addToken(MINUS)
	case '*':
		return l.addToken(MULT)
	case '/':
		return l.addToken(DIV)
	case '%':
		// `%%` was handled as a comment in skipBlanks
		return l.addToken(MOD)
	case '&':
		return l.addToken(CONCAT)
	case '(':
		return l.addToken(LPAREN)
	case ')':
		return l.addToken(RPAREN)
	case ']':
		return l.addToken(RBRACKET)
	case ':':
		return l.addToken(COLON)
	case ',':
		return l.addToken(COMMA)
	case '$':
		// line-break marker; a plain one-character text literal at runtime
		return l.addTokenLexeme(STRING, "$")
	case '<':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(LTE)
		}
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			return l.addToken(NEQ)
		}
		return l.addToken(LESS)
	case '>':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(GTE)
		}
		return l.addToken(GREATER)
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(EQ)
		}
		return l.addToken(ASSIGN)
	case '[':
		// `[c]` escapes one character; a bare '[' stays bracket punctuation
		if b2, ok := l.peekN(1); ok && b2 == ']' {
			c, _ := l.advance()
			l.advance() // ']'
			return l.addTokenLexeme(STRING, string(c))
		}
		return l.addToken(LBRACKET)
	case '"':
		return l.scanString()
	case '\'':
		return l.scanCharacter()
	}

	if isDigit(ch) {
		return l.scanNumber()
	}
	if isAlpha(ch) {
		return l.scanIdentifier()
	}

	return l.addTokenLexeme(ERROR, string(ch))
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() []Token {
	for {
		tok := l.scanToken()
		if tok.Kind == EOF {
			return l.tokens
		}
	}
}
