// value.go — the runtime value model and its coercion rules.
package lexor

import "strconv"

// ValueTag enumerates all runtime kinds a Value may hold.
// The tag determines which payload field is valid.
type ValueTag int

const (
	VTVoid  ValueTag = iota // no payload
	VTInt                   // I
	VTFloat                 // F
	VTChar                  // C
	VTBool                  // B
	VTText                  // S
)

// Value is a closed tagged union over the six runtime kinds. Exactly one
// payload field is meaningful, selected by Tag; Void carries none.
type Value struct {
	Tag ValueTag
	I   int64
	F   float64
	C   byte
	B   bool
	S   string
}

// Void is the zero Value.
var Void = Value{Tag: VTVoid}

// Primitive constructors.
func IntVal(n int64) Value     { return Value{Tag: VTInt, I: n} }
func FloatVal(f float64) Value { return Value{Tag: VTFloat, F: f} }
func CharVal(c byte) Value     { return Value{Tag: VTChar, C: c} }
func BoolVal(b bool) Value     { return Value{Tag: VTBool, B: b} }
func TextVal(s string) Value   { return Value{Tag: VTText, S: s} }

// AsText renders the value as output text.
// Booleans print as TRUE/FALSE; Void is empty text.
func (v Value) AsText() string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.I, 10)
	case VTFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case VTChar:
		return string(v.C)
	case VTBool:
		if v.B {
			return "TRUE"
		}
		return "FALSE"
	case VTText:
		return v.S
	default:
		return ""
	}
}

// AsNumber coerces the value to a number: characters become their code
// point, booleans 1/0, text parses as a float (unparsable text is 0).
func (v Value) AsNumber() float64 {
	switch v.Tag {
	case VTInt:
		return float64(v.I)
	case VTFloat:
		return v.F
	case VTChar:
		return float64(v.C)
	case VTBool:
		if v.B {
			return 1
		}
		return 0
	case VTText:
		f, err := strconv.ParseFloat(v.S, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// AsBool coerces the value to a truth value: nonzero numbers, non-null
// characters and nonempty text are true; Void is false.
func (v Value) AsBool() bool {
	switch v.Tag {
	case VTInt:
		return v.I != 0
	case VTFloat:
		return v.F != 0
	case VTChar:
		return v.C != 0
	case VTBool:
		return v.B
	case VTText:
		return v.S != ""
	default:
		return false
	}
}

// zeroValue is the initializer-free default for a declared type.
func zeroValue(t VarType) Value {
	switch t {
	case TypeFloat:
		return FloatVal(0)
	case TypeChar:
		return CharVal(0)
	case TypeBool:
		return BoolVal(false)
	default:
		return IntVal(0)
	}
}
