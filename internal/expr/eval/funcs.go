package eval

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"tabular/internal/core"
	"tabular/internal/expr/ast"
)

type funcImpl func(ctx *Context, args []ast.Node) (core.Value, error)

var functions map[string]funcImpl

func init() {
	functions = map[string]funcImpl{
		"BLANK":    fnBlank,
		"TODAY":    fnToday,
		"DAY":      fnDay,
		"MONTH":    fnMonth,
		"YEAR":     fnYear,
		"NOW":      fnNow,
		"LENGTH":   fnLength,
		"APPEND":   fnAppend,
		"UPPER":    fnUpper,
		"TOTAL":    fnTotal,
		"REGEXP":   fnRegexp,
		"REPLACE":  fnReplace,
		"CURR_ROW": fnCurrRow,
		"NUM_ROWS": fnNumRows,
		"SUM":      fnSum,
	}
}

func evalCall(n ast.Call, ctx *Context) (core.Value, error) {
	fn, ok := functions[strings.ToUpper(n.Name)]
	if !ok {
		return core.Value{}, core.Newf(core.ExpressionError, "unknown function %q", n.Name)
	}
	return fn(ctx, n.Args)
}

func arity(name string, args []ast.Node, want int) error {
	if len(args) != want {
		return core.Newf(core.ExpressionError, "%s expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

// literalName extracts a bare name from an argument that was written as an
// identifier or a string literal, without evaluating it as an expression —
// used by functions that interpret an argument as a column/table name
// rather than a value (§4.2.4).
func literalName(n ast.Node) (string, bool) {
	switch v := n.(type) {
	case ast.FieldRef:
		return v.Name, true
	case ast.Literal:
		if v.Value.Kind == core.TEXT {
			return v.Value.Text, true
		}
	}
	return "", false
}

// resolveColumnOrEval resolves n as a column reference against the current
// row if possible, else evaluates it as a regular expression.
func resolveColumnOrEval(ctx *Context, n ast.Node) (core.Value, error) {
	if ref, ok := n.(ast.FieldRef); ok {
		if i, ok := ctx.Table.ColumnIndex(ref.Name); ok {
			return ctx.Row[i], nil
		}
	}
	return eval(n, ctx)
}

func fnBlank(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("BLANK", args, 1); err != nil {
		return core.Value{}, err
	}
	var v core.Value
	switch ref := args[0].(type) {
	case ast.FieldRef:
		if i, ok := ctx.Table.ColumnIndex(ref.Name); ok {
			v = ctx.Row[i]
		} else {
			// Not a column: fall back to the identifier's own text as a
			// literal, per §4.2.4.
			v = core.Text(ref.Name)
		}
	default:
		var err error
		v, err = eval(args[0], ctx)
		if err != nil {
			return core.Value{}, err
		}
	}
	return boolValue(v.IsZero()), nil
}

func fnToday(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("TODAY", args, 0); err != nil {
		return core.Value{}, err
	}
	return core.Text(ctx.now().Format("2006/01/02")), nil
}

func fnDay(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("DAY", args, 0); err != nil {
		return core.Value{}, err
	}
	return core.Text(ctx.now().Format("02")), nil
}

func fnMonth(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("MONTH", args, 0); err != nil {
		return core.Value{}, err
	}
	return core.Text(ctx.now().Format("01")), nil
}

func fnYear(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("YEAR", args, 0); err != nil {
		return core.Value{}, err
	}
	return core.Text(ctx.now().Format("2006")), nil
}

func fnNow(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("NOW", args, 0); err != nil {
		return core.Value{}, err
	}
	return core.Text(ctx.now().Format("15:04:05")), nil
}

func fnLength(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("LENGTH", args, 1); err != nil {
		return core.Value{}, err
	}
	v, err := resolveColumnOrEval(ctx, args[0])
	if err != nil {
		return core.Value{}, err
	}
	return core.Int(int64(utf8.RuneCountInString(v.String()))), nil
}

func fnAppend(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("APPEND", args, 2); err != nil {
		return core.Value{}, err
	}
	a, err := resolveColumnOrEval(ctx, args[0])
	if err != nil {
		return core.Value{}, err
	}
	b, err := resolveColumnOrEval(ctx, args[1])
	if err != nil {
		return core.Value{}, err
	}
	return core.Text(a.String() + b.String()), nil
}

func fnUpper(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("UPPER", args, 1); err != nil {
		return core.Value{}, err
	}
	v, err := resolveColumnOrEval(ctx, args[0])
	if err != nil {
		return core.Value{}, err
	}
	return core.Text(strings.ToUpper(v.String())), nil
}

func fnTotal(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("TOTAL", args, 2); err != nil {
		return core.Value{}, err
	}
	tableName, ok := literalName(args[0])
	if !ok {
		return core.Value{}, core.Newf(core.ExpressionError, "TOTAL's first argument must be a table name")
	}
	colName, ok := literalName(args[1])
	if !ok {
		return core.Value{}, core.Newf(core.ExpressionError, "TOTAL's second argument must be a column name")
	}

	target := resolveTable(ctx, tableName)
	if target == nil {
		return core.Real(0), nil
	}
	idx, ok := target.ColumnIndex(colName)
	if !ok || target.Columns[idx].Type == core.TEXT {
		return core.Real(0), nil
	}

	sum := 0.0
	for _, row := range target.Rows {
		f, _ := row[idx].AsFloat()
		sum += f
	}
	return core.Real(sum), nil
}

func resolveTable(ctx *Context, name string) *core.Table {
	if name == "<self>" || (ctx.Table != nil && name == ctx.Table.Name) {
		return ctx.Table
	}
	if ctx.Lookup == nil {
		return nil
	}
	t, ok := ctx.Lookup.Table(name)
	if !ok {
		return nil
	}
	return t
}

func fnRegexp(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("REGEXP", args, 2); err != nil {
		return core.Value{}, err
	}
	patVal, err := eval(args[0], ctx)
	if err != nil {
		return core.Value{}, err
	}
	sVal, err := resolveColumnOrEval(ctx, args[1])
	if err != nil {
		return core.Value{}, err
	}
	re, err := regexp.Compile(patVal.String())
	if err != nil {
		return core.Text(""), nil
	}
	match := re.FindString(sVal.String())
	return core.Text(match), nil
}

func fnReplace(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("REPLACE", args, 3); err != nil {
		return core.Value{}, err
	}
	colName, ok := literalName(args[0])
	if !ok {
		return core.Value{}, core.Newf(core.ExpressionError, "REPLACE's first argument must be a column name")
	}
	idx, ok := ctx.Table.ColumnIndex(colName)
	if !ok {
		return core.Value{}, core.Newf(core.ExpressionError, "unknown identifier %q", colName)
	}

	patVal, err := eval(args[1], ctx)
	if err != nil {
		return core.Value{}, err
	}
	tmplVal, err := eval(args[2], ctx)
	if err != nil {
		return core.Value{}, err
	}

	re, err := regexp.Compile(patVal.String())
	if err != nil {
		return core.Text(""), nil
	}
	return core.Text(re.ReplaceAllString(ctx.Row[idx].String(), tmplVal.String())), nil
}

func fnCurrRow(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("CURR_ROW", args, 0); err != nil {
		return core.Value{}, err
	}
	return core.Int(int64(ctx.Index)), nil
}

func fnNumRows(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("NUM_ROWS", args, 0); err != nil {
		return core.Value{}, err
	}
	return core.Int(int64(len(ctx.Table.Rows))), nil
}

func fnSum(ctx *Context, args []ast.Node) (core.Value, error) {
	if err := arity("SUM", args, 3); err != nil {
		return core.Value{}, err
	}
	colName, ok := literalName(args[0])
	if !ok {
		return core.Value{}, core.Newf(core.ExpressionError, "SUM's first argument must be a column name")
	}
	idx, ok := ctx.Table.ColumnIndex(colName)
	if !ok {
		return core.Real(0), nil
	}
	if ctx.Table.Columns[idx].Type == core.TEXT {
		return core.Value{}, core.Newf(core.TypeMismatch, "SUM cannot operate on TEXT column %q", colName)
	}

	startVal, err := eval(args[1], ctx)
	if err != nil {
		return core.Value{}, err
	}
	finishVal, err := eval(args[2], ctx)
	if err != nil {
		return core.Value{}, err
	}
	startF, ok1 := startVal.AsFloat()
	finishF, ok2 := finishVal.AsFloat()
	if !ok1 || !ok2 {
		return core.Value{}, core.Newf(core.TypeMismatch, "SUM's start/finish must be numeric")
	}

	start, finish := roundToInt(startF), roundToInt(finishF)
	if start > finish || start < 0 || finish >= len(ctx.Table.Rows) {
		return core.Real(0), nil
	}

	sum := 0.0
	for i := start; i <= finish; i++ {
		f, _ := ctx.Table.Rows[i][idx].AsFloat()
		sum += f
	}
	return core.Real(sum), nil
}
