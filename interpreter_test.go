package lexor

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

// script wraps a statement body in the mandatory program frame.
func script(body string) string {
	return "SCRIPT AREA START SCRIPT\n" + body + "\nEND SCRIPT"
}

func runScript(t *testing.T, body string) string {
	t.Helper()
	out, err := Run(script(body), nil)
	if err != nil {
		t.Fatalf("run error: %v\nbody:\n%s", err, body)
	}
	return out
}

func runScriptWithInput(t *testing.T, body string, lines ...string) string {
	t.Helper()
	out, err := Run(script(body), &SliceSource{Lines: lines})
	if err != nil {
		t.Fatalf("run error: %v\nbody:\n%s", err, body)
	}
	return out
}

func wantOutput(t *testing.T, body, want string) {
	t.Helper()
	if got := runScript(t, body); got != want {
		t.Fatalf("output mismatch for:\n%s\n got %q\nwant %q", body, got, want)
	}
}

func wantRuntimeError(t *testing.T, body, substr string) (string, *RuntimeError) {
	t.Helper()
	prog, err := ParseSource(script(body))
	if err != nil {
		t.Fatalf("parse error: %v\nbody:\n%s", err, body)
	}
	ip := NewInterpreter(nil)
	err = ip.Execute(prog)
	if err == nil {
		t.Fatalf("want runtime error containing %q, got success (output %q)", substr, ip.Output())
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("want *RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(re.Msg, substr) {
		t.Fatalf("want error containing %q, got %q", substr, re.Msg)
	}
	return ip.Output(), re
}

// --- printing & literals ---------------------------------------------------

func Test_Print_Literals(t *testing.T) {
	wantOutput(t, `PRINT: "hello"`, "hello")
	wantOutput(t, "PRINT: 42", "42")
	wantOutput(t, "PRINT: 3.5", "3.5")
	wantOutput(t, "PRINT: 'x'", "x")
	wantOutput(t, "PRINT: TRUE", "TRUE")
	wantOutput(t, "PRINT: FALSE", "FALSE")
}

func Test_Print_ConcatAndLineBreak(t *testing.T) {
	wantOutput(t, `PRINT: "a" & $ & "b"`, "a\nb")
	wantOutput(t, `PRINT: "Hash: " & [#]`, "Hash: #") // scenario D
	wantOutput(t, `PRINT: [[] & "x" & []]`, "[x]")
}

func Test_Print_DollarIsValueCheck(t *testing.T) {
	// any expression evaluating to "$" emits a line break, variables included
	wantOutput(t, "DECLARE CHAR nl='$'\nPRINT: \"a\" & nl & \"b\"", "a\nb")
	// escaping produces the literal dollar sign
	wantOutput(t, `PRINT: "cost" & [$]`, "cost$")
}

// --- declarations & assignment ---------------------------------------------

func Test_Declarations_ZeroValues(t *testing.T) {
	wantOutput(t, "DECLARE INT i\nPRINT: i", "0")
	wantOutput(t, "DECLARE FLOAT f\nPRINT: f", "0")
	wantOutput(t, "DECLARE BOOL b\nPRINT: b", "FALSE")
	wantOutput(t, "DECLARE CHAR c\nPRINT: c & \"|\"", "\x00|")
}

func Test_Declarations_WithInitializers(t *testing.T) {
	// scenario A
	wantOutput(t, "DECLARE INT x=5,y=3\nDECLARE INT z\nz=x+y\nPRINT: z", "8")
}

func Test_Declarations_ExecuteBeforeStatements(t *testing.T) {
	// declarations run first even though they textually precede the body
	wantOutput(t, "DECLARE INT a=1\nDECLARE INT b=a+1\nPRINT: b", "2")
}

func Test_Assignment_AutoDeclaresAsInt(t *testing.T) {
	// scenario F: chained assignment onto undeclared names
	prog, err := ParseSource(script("x=y=4"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ip := NewInterpreter(nil)
	if err := ip.Execute(prog); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, name := range []string{"x", "y"} {
		v, ok := ip.Env().Get(name)
		if !ok {
			t.Fatalf("%s not auto-declared", name)
		}
		if v.Tag != VTInt || v.I != 4 {
			t.Fatalf("%s: got %+v, want int 4", name, v)
		}
		typ, _ := ip.Env().Type(name)
		if typ != TypeInt {
			t.Fatalf("%s: declared type %v, want INT", name, typ)
		}
	}
}

func Test_Assignment_KeepsDeclaredType(t *testing.T) {
	prog, err := ParseSource(script("DECLARE FLOAT f\nf=2"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ip := NewInterpreter(nil)
	if err := ip.Execute(prog); err != nil {
		t.Fatalf("execute: %v", err)
	}
	// assignment overwrites the value only; the declared tag stays FLOAT
	typ, _ := ip.Env().Type("f")
	if typ != TypeFloat {
		t.Fatalf("declared type changed to %v", typ)
	}
	v, _ := ip.Env().Get("f")
	if v.Tag != VTInt || v.I != 2 {
		t.Fatalf("stored value: got %+v, want int 2", v)
	}
}

func Test_ReferenceBeforeDeclare_Fails(t *testing.T) {
	wantRuntimeError(t, "PRINT: nope", "undefined variable")
	wantRuntimeError(t, "DECLARE INT a=missing+1", "undefined variable")
}

// --- operators -------------------------------------------------------------

func Test_Arithmetic_IntegerClosure(t *testing.T) {
	wantOutput(t, "PRINT: 1+2*3", "7")
	wantOutput(t, "PRINT: 7%4", "3")
	wantOutput(t, "PRINT: 10-3", "7")
	// division always yields Float
	wantOutput(t, "PRINT: 10/4", "2.5")
	wantOutput(t, "PRINT: 7/2", "3.5")
	// a Float operand makes the result Float
	wantOutput(t, "PRINT: 1.5+1", "2.5")
	wantOutput(t, "PRINT: 2.5*2", "5")
}

func Test_Arithmetic_IntegerClosure_Tags(t *testing.T) {
	prog, err := ParseSource(script("a=2+3\nb=2.0+3\nc=8/2"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ip := NewInterpreter(nil)
	if err := ip.Execute(prog); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if v, _ := ip.Env().Get("a"); v.Tag != VTInt {
		t.Fatalf("2+3: got tag %v, want Int", v.Tag)
	}
	if v, _ := ip.Env().Get("b"); v.Tag != VTFloat {
		t.Fatalf("2.0+3: got tag %v, want Float", v.Tag)
	}
	if v, _ := ip.Env().Get("c"); v.Tag != VTFloat {
		t.Fatalf("8/2: got tag %v, want Float", v.Tag)
	}
}

func Test_Comparisons(t *testing.T) {
	wantOutput(t, "PRINT: 3<4", "TRUE")
	wantOutput(t, "PRINT: 3>4", "FALSE")
	wantOutput(t, "PRINT: 3<=3", "TRUE")
	wantOutput(t, "PRINT: 3>=4", "FALSE")
	// characters compare by code point
	wantOutput(t, "PRINT: 'a'<'b'", "TRUE")
}

func Test_Equality_TextVersusNumeric(t *testing.T) {
	// either side Text forces textual comparison
	wantOutput(t, `PRINT: "5"==5`, "TRUE")
	wantOutput(t, `PRINT: "05"==5`, "FALSE")
	wantOutput(t, `PRINT: "a"<>"b"`, "TRUE")
	// no Text side: numeric comparison
	wantOutput(t, "PRINT: 'A'==65", "TRUE")
	wantOutput(t, "PRINT: TRUE==1", "TRUE")
	wantOutput(t, "PRINT: 2.0==2", "TRUE")
}

func Test_Logical_EagerEvaluation(t *testing.T) {
	wantOutput(t, "PRINT: TRUE AND FALSE", "FALSE")
	wantOutput(t, "PRINT: TRUE OR FALSE", "TRUE")
	wantOutput(t, "PRINT: NOT TRUE", "FALSE")
	// AND/OR evaluate both sides; a failing right operand is still an error
	wantRuntimeError(t, "PRINT: FALSE AND 1/0", "division by zero")
	wantRuntimeError(t, "PRINT: TRUE OR 1/0", "division by zero")
}

func Test_Unary(t *testing.T) {
	wantOutput(t, "PRINT: -5", "-5")
	wantOutput(t, "PRINT: +3", "3")
	wantOutput(t, "PRINT: - -2", "2")
	wantOutput(t, "PRINT: -2.5", "-2.5")
}

func Test_DivisionAndModuloByZero(t *testing.T) {
	// scenario E: the failing statement produces no output
	out, _ := wantRuntimeError(t, "PRINT: 10/0", "division by zero")
	if out != "" {
		t.Fatalf("failing PRINT produced output %q", out)
	}
	wantRuntimeError(t, "PRINT: 10%0", "modulo by zero")
	// a Float zero divisor counts too
	wantRuntimeError(t, "PRINT: 1/0.0", "division by zero")
}

func Test_PartialOutputSurvivesFailure(t *testing.T) {
	out, _ := wantRuntimeError(t, `PRINT: "before"
PRINT: 1/0
PRINT: "after"`, "division by zero")
	if out != "before" {
		t.Fatalf("partial output: got %q, want %q", out, "before")
	}
}

// --- control flow ----------------------------------------------------------

func Test_If_ThenAndElse(t *testing.T) {
	// scenario B
	wantOutput(t, "DECLARE INT a=10\nIF (a>5) START IF\nPRINT: \"Greater\"\nEND IF", "Greater")
	wantOutput(t, `DECLARE INT a=1
IF (a>5) START IF
PRINT: "big"
END IF
ELSE START IF
PRINT: "small"
END IF`, "small")
}

func Test_If_ElseIfChain(t *testing.T) {
	body := `DECLARE INT a=%d
IF (a==1) START IF
PRINT: "one"
END IF
ELSE IF (a==2) START IF
PRINT: "two"
END IF
ELSE START IF
PRINT: "many"
END IF`
	cases := []struct {
		n    string
		want string
	}{
		{"1", "one"},
		{"2", "two"},
		{"9", "many"},
	}
	for _, c := range cases {
		src := strings.Replace(body, "%d", c.n, 1)
		wantOutput(t, src, c.want)
	}
}

func Test_Repeat_PreCheckLoop(t *testing.T) {
	// scenario C
	wantOutput(t, `DECLARE INT i=0
REPEAT WHEN(i<3) START REPEAT
PRINT: i & $
i=i+1
END REPEAT`, "0\n1\n2\n")
	// false on the first check: the body never runs
	wantOutput(t, `REPEAT WHEN(FALSE) START REPEAT
PRINT: "never"
END REPEAT
PRINT: "done"`, "done")
}

func Test_For_RunsBodyExactlyOnce(t *testing.T) {
	wantOutput(t, `DECLARE INT n=0
START FOR
n=n+1
PRINT: n
END FOR`, "1")
}

func Test_NestedBlocks(t *testing.T) {
	wantOutput(t, `DECLARE INT i=0
REPEAT WHEN(i<4) START REPEAT
IF (i%2==0) START IF
PRINT: i
END IF
i=i+1
END REPEAT`, "02")
}

// --- SCAN ------------------------------------------------------------------

func Test_Scan_ConvertsByDeclaredType(t *testing.T) {
	out := runScriptWithInput(t, `DECLARE INT a
DECLARE FLOAT f
DECLARE CHAR c
DECLARE BOOL b
SCAN: a, f, c, b
PRINT: a & "|" & f & "|" & c & "|" & b`, "3.9, 2.5, hey, TRUE")
	if out != "3|2.5|h|TRUE" {
		t.Fatalf("scan conversions: got %q", out)
	}
}

func Test_Scan_TrimsAndIgnoresExtraFields(t *testing.T) {
	out := runScriptWithInput(t, `DECLARE INT a,b
SCAN: a, b
PRINT: a & "," & b`, "\t 7 ,  8 , 99")
	if out != "7,8" {
		t.Fatalf("got %q", out)
	}
}

func Test_Scan_MissingFieldsLeaveTargets(t *testing.T) {
	out := runScriptWithInput(t, `DECLARE INT a=1,b=2
SCAN: a, b
PRINT: a & "," & b`, "9")
	if out != "9,2" {
		t.Fatalf("got %q", out)
	}
}

func Test_Scan_BooleanForms(t *testing.T) {
	out := runScriptWithInput(t, `DECLARE BOOL x,y,z
SCAN: x
SCAN: y
SCAN: z
PRINT: x & y & z`, "TRUE", "true", "yes")
	if out != "TRUETRUEFALSE" {
		t.Fatalf("got %q", out)
	}
}

func Test_Scan_EndOfInputReadsEmptyLine(t *testing.T) {
	// no input lines at all: INT targets become 0
	out := runScriptWithInput(t, `DECLARE INT a=5
SCAN: a
PRINT: a`)
	if out != "0" {
		t.Fatalf("got %q", out)
	}
}

func Test_Scan_UndeclaredTargetFails(t *testing.T) {
	prog, err := ParseSource(script("SCAN: ghost"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ip := NewInterpreter(&SliceSource{Lines: []string{"1"}})
	err = ip.Execute(prog)
	if err == nil || !strings.Contains(err.Error(), "undefined variable") {
		t.Fatalf("got %v, want undefined variable", err)
	}
}

// --- coercion round-trips & determinism ------------------------------------

func Test_Coercion_RoundTrips(t *testing.T) {
	if !TextVal(BoolVal(true).AsText()).AsBool() {
		t.Fatalf("toBoolean(toText(true)) != true")
	}
	if got := TextVal(IntVal(5).AsText()).AsNumber(); got != 5 {
		t.Fatalf("toNumber(toText(5)) = %v", got)
	}
	if got := TextVal("junk").AsNumber(); got != 0 {
		t.Fatalf("unparsable text: got %v, want 0", got)
	}
	if CharVal(0).AsBool() {
		t.Fatalf("null character should be false")
	}
	if Void.AsText() != "" || Void.AsNumber() != 0 || Void.AsBool() {
		t.Fatalf("void coercions wrong")
	}
}

func Test_Execute_Idempotent(t *testing.T) {
	src := script(`DECLARE INT i=0
REPEAT WHEN(i<5) START REPEAT
PRINT: i*i & $
i=i+1
END REPEAT`)
	first, err := Run(src, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Run(src, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != second {
		t.Fatalf("runs differ:\n%q\n%q", first, second)
	}
}
