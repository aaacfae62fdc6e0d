package eval

import (
	"math"
	"strings"

	"tabular/internal/core"
	"tabular/internal/expr/ast"
)

func roundToInt(f float64) int {
	return int(math.Round(f))
}

func boolValue(b bool) core.Value {
	if b {
		return core.Int(1)
	}
	return core.Int(0)
}

func evalUnary(n ast.UnaryOp, ctx *Context) (core.Value, error) {
	x, err := eval(n.X, ctx)
	if err != nil {
		return core.Value{}, err
	}
	switch n.Op {
	case "!":
		return boolValue(!x.Truthy()), nil
	case "-":
		f, ok := x.AsFloat()
		if !ok {
			return core.Value{}, core.Newf(core.TypeMismatch, "unary - requires a numeric operand")
		}
		if x.Kind == core.INT {
			return core.Int(-x.Int), nil
		}
		return core.Real(-f), nil
	default:
		return core.Value{}, core.Newf(core.ExpressionError, "unknown unary operator %q", n.Op)
	}
}

func evalBinary(n ast.BinaryOp, ctx *Context) (core.Value, error) {
	switch n.Op {
	case "&&":
		left, err := eval(n.X, ctx)
		if err != nil {
			return core.Value{}, err
		}
		if !left.Truthy() {
			return core.Int(0), nil
		}
		right, err := eval(n.Y, ctx)
		if err != nil {
			return core.Value{}, err
		}
		return boolValue(right.Truthy()), nil
	case "||":
		left, err := eval(n.X, ctx)
		if err != nil {
			return core.Value{}, err
		}
		if left.Truthy() {
			return core.Int(1), nil
		}
		right, err := eval(n.Y, ctx)
		if err != nil {
			return core.Value{}, err
		}
		return boolValue(right.Truthy()), nil
	}

	x, err := eval(n.X, ctx)
	if err != nil {
		return core.Value{}, err
	}
	y, err := eval(n.Y, ctx)
	if err != nil {
		return core.Value{}, err
	}

	switch n.Op {
	case "+":
		return add(x, y)
	case "-":
		return arith(x, y, func(a, b float64) float64 { return a - b })
	case "*":
		return arith(x, y, func(a, b float64) float64 { return a * b })
	case "/":
		return divide(x, y)
	case "^":
		return power(x, y)
	case "=":
		return compare(x, y, func(c int) bool { return c == 0 })
	case "!=":
		return compare(x, y, func(c int) bool { return c != 0 })
	case "<":
		return compare(x, y, func(c int) bool { return c < 0 })
	case ">":
		return compare(x, y, func(c int) bool { return c > 0 })
	default:
		return core.Value{}, core.Newf(core.ExpressionError, "unknown binary operator %q", n.Op)
	}
}

// add implements §4.2.3: numeric + numeric is arithmetic, TEXT + TEXT is
// concatenation, mixed TEXT/numeric is a type error.
func add(x, y core.Value) (core.Value, error) {
	if x.Kind == core.TEXT && y.Kind == core.TEXT {
		return core.Text(x.Text + y.Text), nil
	}
	if x.Kind == core.TEXT || y.Kind == core.TEXT {
		return core.Value{}, core.Newf(core.TypeMismatch, "cannot add TEXT and numeric values")
	}
	return arith(x, y, func(a, b float64) float64 { return a + b })
}

func arith(x, y core.Value, op func(a, b float64) float64) (core.Value, error) {
	xf, xok := x.AsFloat()
	yf, yok := y.AsFloat()
	if !xok || !yok {
		return core.Value{}, core.Newf(core.TypeMismatch, "arithmetic requires numeric operands")
	}
	result := op(xf, yf)
	if x.Kind == core.INT && y.Kind == core.INT && result == math.Trunc(result) {
		return core.Int(int64(result)), nil
	}
	return core.Real(result), nil
}

func divide(x, y core.Value) (core.Value, error) {
	xf, xok := x.AsFloat()
	yf, yok := y.AsFloat()
	if !xok || !yok {
		return core.Value{}, core.Newf(core.TypeMismatch, "/ requires numeric operands")
	}
	if yf == 0 {
		return core.Value{}, core.Newf(core.ExpressionError, "division by zero")
	}
	if x.Kind == core.INT && y.Kind == core.INT && x.Int%y.Int == 0 {
		return core.Int(x.Int / y.Int), nil
	}
	return core.Real(xf / yf), nil
}

func power(x, y core.Value) (core.Value, error) {
	xf, xok := x.AsFloat()
	yf, yok := y.AsFloat()
	if !xok || !yok {
		return core.Value{}, core.Newf(core.TypeMismatch, "^ requires numeric operands")
	}
	result := math.Pow(xf, yf)
	if x.Kind == core.INT && y.Kind == core.INT && yf >= 0 && result == math.Trunc(result) {
		return core.Int(int64(result)), nil
	}
	return core.Real(result), nil
}

// compare implements §4.2.3: numeric/numeric and TEXT/TEXT comparisons are
// allowed; mixed TEXT/numeric fails with a type error.
func compare(x, y core.Value, pred func(cmp int) bool) (core.Value, error) {
	if x.Kind == core.TEXT && y.Kind == core.TEXT {
		return boolValue(pred(strings.Compare(x.Text, y.Text))), nil
	}
	xf, xok := x.AsFloat()
	yf, yok := y.AsFloat()
	if xok && yok {
		switch {
		case xf < yf:
			return boolValue(pred(-1)), nil
		case xf > yf:
			return boolValue(pred(1)), nil
		default:
			return boolValue(pred(0)), nil
		}
	}
	return core.Value{}, core.Newf(core.TypeMismatch, "cannot compare TEXT and numeric values")
}
