// Package core contains the single source of truth for the in-memory table
// model: scalar values, column descriptors, rows, and tables. It provides a
// structured representation of data shared by the CSV codec, the expression
// engine, the rules engine, and the command algebra.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type of a scalar value. Only three variants exist.
type Kind int

const (
	TEXT Kind = iota
	INT
	REAL
)

// String returns the canonical, uppercase spelling of a Kind, matching the
// schema header syntax of the CSV codec.
func (k Kind) String() string {
	switch k {
	case INT:
		return "INT"
	case REAL:
		return "REAL"
	default:
		return "TEXT"
	}
}

// ParseKind maps a schema header type token to a Kind, case-insensitively.
// Unknown tokens default to TEXT, per the CSV codec's header rules.
func ParseKind(s string) Kind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INT":
		return INT
	case "REAL":
		return REAL
	default:
		return TEXT
	}
}

// Value is a tagged scalar. Only the field matching Kind is meaningful; the
// others hold their Go zero value. Cells are never represented as
// interface{} so that operator boundaries in the expression engine stay
// exhaustive over exactly three cases.
type Value struct {
	Kind Kind
	Text string
	Int  int64
	Real float64
}

// Text returns a TEXT value.
func Text(s string) Value { return Value{Kind: TEXT, Text: s} }

// Int returns an INT value.
func Int(i int64) Value { return Value{Kind: INT, Int: i} }

// Real returns a REAL value.
func Real(f float64) Value { return Value{Kind: REAL, Real: f} }

// Zero returns the type-specific zero value for a Kind: "" for TEXT, 0 for
// INT, 0.0 for REAL. The zero value is this model's stand-in for null.
func Zero(k Kind) Value {
	switch k {
	case INT:
		return Int(0)
	case REAL:
		return Real(0)
	default:
		return Text("")
	}
}

// IsZero reports whether the value equals the zero value for its own kind.
func (v Value) IsZero() bool {
	switch v.Kind {
	case INT:
		return v.Int == 0
	case REAL:
		return v.Real == 0
	default:
		return v.Text == ""
	}
}

// Truthy implements §4.2.3's boolean coercion: 0 and "" are false, anything
// else is true.
func (v Value) Truthy() bool {
	return !v.IsZero()
}

// AsFloat returns the value as a float64, for numeric contexts. TEXT values
// return (0, false).
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case INT:
		return float64(v.Int), true
	case REAL:
		return v.Real, true
	default:
		return 0, false
	}
}

// String renders a value for display and for CSV serialization. REAL always
// renders with exactly one fractional digit, per §3 invariant 3.
func (v Value) String() string {
	switch v.Kind {
	case INT:
		return strconv.FormatInt(v.Int, 10)
	case REAL:
		return strconv.FormatFloat(v.Real, 'f', 1, 64)
	default:
		return v.Text
	}
}

// CoerceTo converts a raw, user-supplied string into a Value of the given
// Kind, following the CSV codec's lenient-on-input rules (§4.1): REAL
// strips "$" and "," before parsing and falls back to 0.0 on failure, INT
// falls back to 0 on failure. TEXT never fails.
func CoerceTo(raw string, k Kind) Value {
	switch k {
	case INT:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Int(0)
		}
		return Int(n)
	case REAL:
		cleaned := strings.NewReplacer("$", "", ",", "").Replace(raw)
		f, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
		if err != nil {
			return Real(0)
		}
		return Real(f)
	default:
		return Text(raw)
	}
}

// StrictCoerceTo converts a raw string into a Value of the given Kind,
// failing instead of defaulting. Used when accepting user-supplied field
// values during row ingress (§4.3), where an unparsable numeric column is a
// validation error rather than a silent zero.
func StrictCoerceTo(raw string, k Kind) (Value, error) {
	switch k {
	case INT:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not a valid INT", raw)
		}
		return Int(n), nil
	case REAL:
		cleaned := strings.NewReplacer("$", "", ",", "").Replace(raw)
		f, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not a valid REAL", raw)
		}
		return Real(f), nil
	default:
		return Text(raw), nil
	}
}
