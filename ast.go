// ast.go — syntax tree produced by the parser and walked by the interpreter.
//
// Statement and Expression are closed sums: both interfaces carry an
// unexported marker method, so the set of node kinds is fixed to this file
// and the interpreter's type switches cover it exhaustively. Nodes own their
// children exclusively; nothing is shared or mutated after parsing.
//
// Every node records the line/column of its introducing token so runtime
// errors can point back into the source.
package lexor

// VarType is the declared type tag of a variable.
type VarType int

const (
	TypeInt VarType = iota
	TypeFloat
	TypeChar
	TypeBool
)

func (t VarType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeChar:
		return "CHAR"
	case TypeBool:
		return "BOOL"
	default:
		return "INT"
	}
}

// Statement is the closed set of executable node kinds.
type Statement interface {
	stmtNode()
	Pos() (line, col int)
}

// Expression is the closed set of evaluable node kinds.
type Expression interface {
	exprNode()
	Pos() (line, col int)
}

type position struct {
	Line int
	Col  int
}

func (p position) Pos() (int, int) { return p.Line, p.Col }

// Program is the parse result: the leading declarations followed by the
// statement body. Declarations always execute first, in source order.
type Program struct {
	Declarations []*Declaration
	Statements   []Statement
}

// Binding is one (name, optional initializer) pair inside a declaration.
type Binding struct {
	Name string
	Init Expression // nil when the declaration carries no initializer
}

// Declaration introduces one or more variables of a single declared type.
type Declaration struct {
	position
	Type     VarType
	Bindings []Binding
}

// Assignment stores a computed value into a single target. Chained source
// assignments (a=b=c=5) are desugared by the parser into a rightmost-first
// sequence of these.
type Assignment struct {
	position
	Name  string
	Value Expression
}

// PrintStatement emits each expression's text form in order.
type PrintStatement struct {
	position
	Exprs []Expression
}

// ScanStatement reads one input line and assigns its comma-separated fields
// to the target variables in order.
type ScanStatement struct {
	position
	Names []string
}

// IfStatement is a two-way branch. An ELSE IF chain nests as a single
// IfStatement placed as the sole element of Else.
type IfStatement struct {
	position
	Cond Expression
	Then []Statement
	Else []Statement // nil when there is no else branch
}

// RepeatStatement is a pre-check loop: Cond is re-evaluated before every
// iteration, including the first.
type RepeatStatement struct {
	position
	Cond Expression
	Body []Statement
}

// ForStatement is an unconditional statement block. The grammar gives it no
// condition and the runtime executes the body exactly once; the semantics of
// iteration were never pinned down in the language, so the node keeps only a
// body for a future condition or range to attach to.
type ForStatement struct {
	position
	Body []Statement
}

func (*Declaration) stmtNode()     {}
func (*Assignment) stmtNode()      {}
func (*PrintStatement) stmtNode()  {}
func (*ScanStatement) stmtNode()   {}
func (*IfStatement) stmtNode()     {}
func (*RepeatStatement) stmtNode() {}
func (*ForStatement) stmtNode()    {}

// NumberLiteral is an integer or floating literal. IsFloat distinguishes
// `5` from `5.0`; both carry the value as float64.
type NumberLiteral struct {
	position
	Value   float64
	IsFloat bool
}

// StringLiteral is a double-quoted text literal, an escape-bracket literal
// like [#], or the `$` line-break marker.
type StringLiteral struct {
	position
	Value string
}

// CharacterLiteral is a single-quoted one-character literal.
type CharacterLiteral struct {
	position
	Value byte
}

// BooleanLiteral is TRUE or FALSE.
type BooleanLiteral struct {
	position
	Value bool
}

// Identifier is a variable reference.
type Identifier struct {
	position
	Name string
}

// BinaryOp applies Op to both operands. Operands are always evaluated
// eagerly; AND/OR do not short-circuit.
type BinaryOp struct {
	position
	Op    TokenKind
	Left  Expression
	Right Expression
}

// UnaryOp applies prefix +, - or NOT.
type UnaryOp struct {
	position
	Op      TokenKind
	Operand Expression
}

func (*NumberLiteral) exprNode()    {}
func (*StringLiteral) exprNode()    {}
func (*CharacterLiteral) exprNode() {}
func (*BooleanLiteral) exprNode()   {}
func (*Identifier) exprNode()       {}
func (*BinaryOp) exprNode()         {}
func (*UnaryOp) exprNode()          {}
