// interpreter.go — tree-walking evaluator for LEXOR programs.
//
// EXECUTION MODEL
// ---------------
// One Interpreter owns one run: a flat variable environment, an append-only
// output buffer and a line-oriented input source for SCAN. Execute runs all
// leading declarations in source order, then the statement body in source
// order. Everything is synchronous and single-threaded; the only blocking
// point is the input source's line read.
//
// SCOPING
// -------
// There are no nested scopes. A name must exist before an expression may read
// it; assigning to an unknown name auto-creates it with declared type INT.
// That implicit declaration is a language quirk, not an accident — SCAN and
// expression reads never create names, only plain assignment does.
//
// ERRORS
// ------
// Execution failures (undefined variable, division or modulo by zero, an
// operator the evaluator does not know) surface as *RuntimeError with the
// 1-based position of the offending node. A failure aborts the remaining
// statements; output produced before the failure stays readable via Output.
package lexor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RuntimeError represents an execution-time failure. Line/Col are 1-based.
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ─────────────────────────────── environment ────────────────────────────────

type binding struct {
	typ VarType
	val Value
}

// Env is the flat name→(declared type, value) mapping used at evaluation
// time. Entries live for the whole run; there is no shadowing or removal.
type Env struct {
	vars map[string]*binding
}

// NewEnv creates an empty environment.
func NewEnv() *Env { return &Env{vars: make(map[string]*binding)} }

// Declare registers name with its declared type and initial value,
// overwriting any previous entry.
func (e *Env) Declare(name string, t VarType, v Value) {
	e.vars[name] = &binding{typ: t, val: v}
}

// Assign overwrites the value of an existing entry, keeping its declared
// type. An unknown name is auto-created with declared type INT.
func (e *Env) Assign(name string, v Value) {
	if b, ok := e.vars[name]; ok {
		b.val = v
		return
	}
	e.vars[name] = &binding{typ: TypeInt, val: v}
}

// Get returns the current value of name.
func (e *Env) Get(name string) (Value, bool) {
	if b, ok := e.vars[name]; ok {
		return b.val, true
	}
	return Void, false
}

// Type returns the declared type tag of name.
func (e *Env) Type(name string) (VarType, bool) {
	if b, ok := e.vars[name]; ok {
		return b.typ, true
	}
	return TypeInt, false
}

// ─────────────────────────────── input source ───────────────────────────────

// LineSource supplies one input line per SCAN statement. End of input is
// reported as an empty line; ReadLine never fails.
type LineSource interface {
	ReadLine() string
}

type readerSource struct {
	sc *bufio.Scanner
}

// NewReaderSource wraps r as a LineSource, one line per read.
func NewReaderSource(r io.Reader) LineSource {
	return &readerSource{sc: bufio.NewScanner(r)}
}

func (s *readerSource) ReadLine() string {
	if s.sc.Scan() {
		return s.sc.Text()
	}
	return ""
}

// SliceSource is an in-memory LineSource for tests and embedding. Reads past
// the last line return empty lines.
type SliceSource struct {
	Lines []string
	next  int
}

func (s *SliceSource) ReadLine() string {
	if s.next >= len(s.Lines) {
		return ""
	}
	line := s.Lines[s.next]
	s.next++
	return line
}

// ─────────────────────────────── interpreter ────────────────────────────────

// Interpreter executes one parsed program against its own environment,
// output buffer and input source.
type Interpreter struct {
	env *Env
	out strings.Builder
	in  LineSource
}

// NewInterpreter creates a fresh interpreter reading SCAN input from in.
// A nil in behaves like an exhausted input (every SCAN reads an empty line).
func NewInterpreter(in LineSource) *Interpreter {
	if in == nil {
		in = &SliceSource{}
	}
	return &Interpreter{env: NewEnv(), in: in}
}

// Env exposes the variable environment (useful for tests and embedding).
func (ip *Interpreter) Env() *Env { return ip.env }

// Output returns everything printed so far. After a failed Execute it holds
// the partial output produced before the failure.
func (ip *Interpreter) Output() string { return ip.out.String() }

// Execute runs prog: declarations first, then statements, both in source
// order. It returns a *RuntimeError on failure.
func (ip *Interpreter) Execute(prog *Program) error {
	for _, d := range prog.Declarations {
		if err := ip.execDeclaration(d); err != nil {
			return err
		}
	}
	return ip.execStatements(prog.Statements)
}

// Run covers the whole pipeline: tokenize, parse and execute src, returning
// the captured output. On a runtime failure the partial output is returned
// alongside the error.
func Run(src string, in LineSource) (string, error) {
	prog, err := ParseSource(src)
	if err != nil {
		return "", err
	}
	ip := NewInterpreter(in)
	err = ip.Execute(prog)
	return ip.Output(), err
}

// ─────────────────────────────── statements ─────────────────────────────────

func (ip *Interpreter) execStatements(stmts []Statement) error {
	for _, s := range stmts {
		if err := ip.execStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) execStatement(s Statement) error {
	switch st := s.(type) {
	case *Declaration:
		return ip.execDeclaration(st)
	case *Assignment:
		v, err := ip.eval(st.Value)
		if err != nil {
			return err
		}
		ip.env.Assign(st.Name, v)
		return nil
	case *PrintStatement:
		return ip.execPrint(st)
	case *ScanStatement:
		return ip.execScan(st)
	case *IfStatement:
		cond, err := ip.eval(st.Cond)
		if err != nil {
			return err
		}
		if cond.AsBool() {
			return ip.execStatements(st.Then)
		}
		if st.Else != nil {
			return ip.execStatements(st.Else)
		}
		return nil
	case *RepeatStatement:
		for {
			cond, err := ip.eval(st.Cond)
			if err != nil {
				return err
			}
			if !cond.AsBool() {
				return nil
			}
			if err := ip.execStatements(st.Body); err != nil {
				return err
			}
		}
	case *ForStatement:
		// the grammar gives FOR no condition; the body runs exactly once
		return ip.execStatements(st.Body)
	default:
		line, col := s.Pos()
		return &RuntimeError{Line: line, Col: col, Msg: "unknown statement"}
	}
}

func (ip *Interpreter) execDeclaration(d *Declaration) error {
	for _, b := range d.Bindings {
		v := zeroValue(d.Type)
		if b.Init != nil {
			var err error
			v, err = ip.eval(b.Init)
			if err != nil {
				return err
			}
		}
		ip.env.Declare(b.Name, d.Type, v)
	}
	return nil
}

func (ip *Interpreter) execPrint(st *PrintStatement) error {
	for _, e := range st.Exprs {
		v, err := ip.eval(e)
		if err != nil {
			return err
		}
		// the line-break marker is a value check, not a syntax one: any
		// expression evaluating to exactly "$" emits a newline
		if s := v.AsText(); s == "$" {
			ip.out.WriteByte('\n')
		} else {
			ip.out.WriteString(s)
		}
	}
	return nil
}

func (ip *Interpreter) execScan(st *ScanStatement) error {
	line := ip.in.ReadLine()
	fields := strings.Split(line, ",")
	for i, name := range st.Names {
		if i >= len(fields) {
			// missing fields leave the remaining targets untouched
			break
		}
		field := strings.Trim(fields[i], " \t")
		typ, ok := ip.env.Type(name)
		if !ok {
			l, c := st.Pos()
			return &RuntimeError{Line: l, Col: c, Msg: "undefined variable: " + name}
		}
		ip.env.Assign(name, convertField(field, typ))
	}
	return nil
}

// convertField turns one trimmed SCAN input field into a value of the
// target's declared type.
func convertField(field string, t VarType) Value {
	switch t {
	case TypeInt:
		return IntVal(int64(TextVal(field).AsNumber()))
	case TypeFloat:
		return FloatVal(TextVal(field).AsNumber())
	case TypeChar:
		if field == "" {
			return CharVal(0)
		}
		return CharVal(field[0])
	case TypeBool:
		return BoolVal(field == "TRUE" || field == "true")
	default:
		return IntVal(0)
	}
}

// ─────────────────────────────── expressions ────────────────────────────────

func (ip *Interpreter) eval(e Expression) (Value, error) {
	switch ex := e.(type) {
	case *NumberLiteral:
		if ex.IsFloat {
			return FloatVal(ex.Value), nil
		}
		return IntVal(int64(ex.Value)), nil
	case *StringLiteral:
		return TextVal(ex.Value), nil
	case *CharacterLiteral:
		return CharVal(ex.Value), nil
	case *BooleanLiteral:
		return BoolVal(ex.Value), nil
	case *Identifier:
		v, ok := ip.env.Get(ex.Name)
		if !ok {
			return Void, &RuntimeError{Line: ex.Line, Col: ex.Col, Msg: "undefined variable: " + ex.Name}
		}
		return v, nil
	case *BinaryOp:
		return ip.evalBinary(ex)
	case *UnaryOp:
		return ip.evalUnary(ex)
	default:
		line, col := e.Pos()
		return Void, &RuntimeError{Line: line, Col: col, Msg: "unknown expression"}
	}
}

// evalBinary evaluates both operands eagerly (AND/OR do not short-circuit)
// and applies the operator table: addition, subtraction and multiplication
// are numeric with an Integer result only when both operands are Integer;
// division is numeric and always Float, failing on a zero divisor; modulo
// truncates both sides to integers, failing on a zero divisor; ordering
// comparisons are numeric; equality is textual when either side is Text and
// numeric otherwise; AND/OR combine both coerced sides as booleans.
func (ip *Interpreter) evalBinary(ex *BinaryOp) (Value, error) {
	left, err := ip.eval(ex.Left)
	if err != nil {
		return Void, err
	}
	right, err := ip.eval(ex.Right)
	if err != nil {
		return Void, err
	}

	ln, rn := left.AsNumber(), right.AsNumber()
	bothInt := left.Tag == VTInt && right.Tag == VTInt

	switch ex.Op {
	case PLUS:
		return numericResult(ln+rn, bothInt), nil
	case MINUS:
		return numericResult(ln-rn, bothInt), nil
	case MULT:
		return numericResult(ln*rn, bothInt), nil
	case DIV:
		if rn == 0 {
			return Void, &RuntimeError{Line: ex.Line, Col: ex.Col, Msg: "division by zero"}
		}
		return FloatVal(ln / rn), nil
	case MOD:
		ri := int64(rn)
		if ri == 0 {
			return Void, &RuntimeError{Line: ex.Line, Col: ex.Col, Msg: "modulo by zero"}
		}
		return IntVal(int64(ln) % ri), nil
	case LESS:
		return BoolVal(ln < rn), nil
	case GREATER:
		return BoolVal(ln > rn), nil
	case LTE:
		return BoolVal(ln <= rn), nil
	case GTE:
		return BoolVal(ln >= rn), nil
	case EQ:
		return BoolVal(equalValues(left, right)), nil
	case NEQ:
		return BoolVal(!equalValues(left, right)), nil
	case AND:
		return BoolVal(left.AsBool() && right.AsBool()), nil
	case OR:
		return BoolVal(left.AsBool() || right.AsBool()), nil
	default:
		return Void, &RuntimeError{Line: ex.Line, Col: ex.Col, Msg: "unknown operator: " + ex.Op.String()}
	}
}

func (ip *Interpreter) evalUnary(ex *UnaryOp) (Value, error) {
	v, err := ip.eval(ex.Operand)
	if err != nil {
		return Void, err
	}
	switch ex.Op {
	case PLUS:
		return numericResult(v.AsNumber(), v.Tag == VTInt), nil
	case MINUS:
		return numericResult(-v.AsNumber(), v.Tag == VTInt), nil
	case NOT:
		return BoolVal(!v.AsBool()), nil
	default:
		return Void, &RuntimeError{Line: ex.Line, Col: ex.Col, Msg: "unknown operator: " + ex.Op.String()}
	}
}

func numericResult(f float64, integer bool) Value {
	if integer {
		return IntVal(int64(f))
	}
	return FloatVal(f)
}

// equalValues implements == and <>: textual comparison when either side is
// Text-typed, numeric comparison otherwise.
func equalValues(a, b Value) bool {
	if a.Tag == VTText || b.Tag == VTText {
		return a.AsText() == b.AsText()
	}
	return a.AsNumber() == b.AsNumber()
}
