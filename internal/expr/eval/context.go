// Package eval walks the ast.Node tree produced by the parser and evaluates
// it against a row context (§4.2.5). The evaluator is a pure function of
// (tree, context) given a fixed clock, so the same parsed Evaluator is
// reused across every row of a batch command.
package eval

import (
	"time"

	"tabular/internal/core"
	"tabular/internal/expr/ast"
	"tabular/internal/expr/parser"
)

// TableLookup resolves a table by name for cross-table functions like
// TOTAL. The table registry satisfies this interface; eval depends only on
// this narrow slice of it to avoid importing the registry package.
type TableLookup interface {
	Table(name string) (*core.Table, bool)
}

// Context is the row context an expression is evaluated against:
// current_row, current_table, and registry of §4.2.
type Context struct {
	Table  *core.Table
	Row    core.Row
	Index  int
	Lookup TableLookup

	// Now supplies the wall clock for TODAY/NOW/DAY/MONTH/YEAR; defaults to
	// time.Now so tests can inject a fixed instant.
	Now func() time.Time
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Evaluator wraps a parsed expression tree for repeated evaluation against
// different row contexts.
type Evaluator struct {
	node ast.Node
}

// Compile parses src once; the returned Evaluator can be run against many
// contexts without re-parsing.
func Compile(src string) (*Evaluator, error) {
	node, err := parser.Parse(src)
	if err != nil {
		return nil, core.Wrap(core.ExpressionError, err)
	}
	return &Evaluator{node: node}, nil
}

// Eval runs the compiled expression against ctx.
func (e *Evaluator) Eval(ctx *Context) (core.Value, error) {
	return eval(e.node, ctx)
}

// Eval is a convenience one-shot: parse src and evaluate it immediately.
func Eval(src string, ctx *Context) (core.Value, error) {
	ev, err := Compile(src)
	if err != nil {
		return core.Value{}, err
	}
	return ev.Eval(ctx)
}

func eval(n ast.Node, ctx *Context) (core.Value, error) {
	switch node := n.(type) {
	case ast.Literal:
		return node.Value, nil
	case ast.FieldRef:
		return evalFieldRef(node, ctx)
	case ast.IndexedFieldRef:
		return evalIndexedFieldRef(node, ctx)
	case ast.UnaryOp:
		return evalUnary(node, ctx)
	case ast.BinaryOp:
		return evalBinary(node, ctx)
	case ast.Conditional:
		return evalConditional(node, ctx)
	case ast.Call:
		return evalCall(node, ctx)
	default:
		return core.Value{}, core.Newf(core.ExpressionError, "unhandled expression node %T", n)
	}
}

func evalFieldRef(n ast.FieldRef, ctx *Context) (core.Value, error) {
	if i, ok := ctx.Table.ColumnIndex(n.Name); ok {
		return ctx.Row[i], nil
	}
	return core.Value{}, core.Newf(core.ExpressionError, "unknown identifier %q", n.Name)
}

func evalIndexedFieldRef(n ast.IndexedFieldRef, ctx *Context) (core.Value, error) {
	colIdx, ok := ctx.Table.ColumnIndex(n.Name)
	if !ok {
		return core.Value{}, core.Newf(core.ExpressionError, "unknown identifier %q", n.Name)
	}

	offsetVal, err := eval(n.Index, ctx)
	if err != nil {
		return core.Value{}, err
	}
	f, ok := offsetVal.AsFloat()
	if !ok {
		return core.Value{}, core.Newf(core.TypeMismatch, "index expression for %q must be numeric", n.Name)
	}

	target := ctx.Index + roundToInt(f)
	if target < 0 || target >= len(ctx.Table.Rows) {
		return core.Text(""), nil
	}
	return ctx.Table.Rows[target][colIdx], nil
}

func evalConditional(n ast.Conditional, ctx *Context) (core.Value, error) {
	cond, err := eval(n.Cond, ctx)
	if err != nil {
		return core.Value{}, err
	}
	if cond.Truthy() {
		return eval(n.Then, ctx)
	}
	return eval(n.Else, ctx)
}
