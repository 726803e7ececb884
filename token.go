// token.go — token kinds and the keyword table for the LEXOR language.
package lexor

import "fmt"

// TokenKind represents the kind of token.
type TokenKind int

const (
	// Special
	EOF TokenKind = iota
	ERROR

	// Keywords
	SCRIPT
	AREA
	START
	END
	DECLARE
	INT
	CHAR
	BOOL
	FLOAT
	PRINT
	SCAN
	IF
	ELSE
	FOR
	REPEAT
	WHEN
	AND
	OR
	NOT
	TRUE
	FALSE

	// Literals & identifiers
	IDENT
	NUMBER    // 123, 45.67
	STRING    // "hello", [#] escape literals, $
	CHARACTER // 'a'

	// Operators
	PLUS    // "+"
	MINUS   // "-"
	MULT    // "*"
	DIV     // "/"
	MOD     // "%"
	GREATER // ">"
	LESS    // "<"
	GTE     // ">="
	LTE     // "<="
	EQ      // "=="
	NEQ     // "<>"
	ASSIGN  // "="
	CONCAT  // "&"

	// Punctuation
	LPAREN   // "("
	RPAREN   // ")"
	LBRACKET // "["
	RBRACKET // "]"
	COLON    // ":"
	COMMA    // ","
)

// Token is a lexical token with its raw text and 1-based source position.
// Tokens are produced once by the lexer and never mutated.
type Token struct {
	Kind    TokenKind
	Lexeme  string
	IsFloat bool // NUMBER only: the literal consumed a decimal point
	Line    int
	Col     int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", t.Kind, t.Lexeme, t.Line, t.Col)
}

// keywords maps exact (case-sensitive) spellings to their token kinds.
var keywords = map[string]TokenKind{
	"SCRIPT":  SCRIPT,
	"AREA":    AREA,
	"START":   START,
	"END":     END,
	"DECLARE": DECLARE,
	"INT":     INT,
	"CHAR":    CHAR,
	"BOOL":    BOOL,
	"FLOAT":   FLOAT,
	"PRINT":   PRINT,
	"SCAN":    SCAN,
	"IF":      IF,
	"ELSE":    ELSE,
	"FOR":     FOR,
	"REPEAT":  REPEAT,
	"WHEN":    WHEN,
	"AND":     AND,
	"OR":      OR,
	"NOT":     NOT,
	"TRUE":    TRUE,
	"FALSE":   FALSE,
}

var kindNames = map[TokenKind]string{
	EOF:       "EOF",
	ERROR:     "ERROR",
	SCRIPT:    "SCRIPT",
	AREA:      "AREA",
	START:     "START",
	END:       "END",
	DECLARE:   "DECLARE",
	INT:       "INT",
	CHAR:      "CHAR",
	BOOL:      "BOOL",
	FLOAT:     "FLOAT",
	PRINT:     "PRINT",
	SCAN:      "SCAN",
	IF:        "IF",
	ELSE:      "ELSE",
	FOR:       "FOR",
	REPEAT:    "REPEAT",
	WHEN:      "WHEN",
	AND:       "AND",
	OR:        "OR",
	NOT:       "NOT",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
	IDENT:     "IDENT",
	NUMBER:    "NUMBER",
	STRING:    "STRING",
	CHARACTER: "CHARACTER",
	PLUS:      "+",
	MINUS:     "-",
	MULT:      "*",
	DIV:       "/",
	MOD:       "%",
	GREATER:   ">",
	LESS:      "<",
	GTE:       ">=",
	LTE:       "<=",
	EQ:        "==",
	NEQ:       "<>",
	ASSIGN:    "=",
	CONCAT:    "&",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COLON:     ":",
	COMMA:     ",",
}

func (k TokenKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}
