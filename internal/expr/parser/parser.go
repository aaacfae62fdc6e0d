// Package parser implements a precedence-climbing parser for the augmented
// expression language, producing an ast.Node tree (§4.2.2, §9).
package parser

import (
	"fmt"

	"tabular/internal/core"
	"tabular/internal/expr/ast"
	"tabular/internal/expr/lexer"
	"tabular/internal/expr/token"
)

// Parser turns a token stream into an ast.Node. One Parser parses one
// expression; the evaluator reuses the resulting tree across many rows.
type Parser struct {
	l         *lexer.Lexer
	cur, peek token.Token
}

// Parse parses the given source text into an expression tree.
func Parse(src string) (ast.Node, error) {
	p := &Parser{l: lexer.New(src)}
	p.next()
	p.next()

	node, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.EOF {
		return nil, fmt.Errorf("unexpected token %q after expression", p.cur.Literal)
	}
	return node, nil
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if p.cur.Type != t {
		return token.Token{}, fmt.Errorf("expected %s, got %q", t, p.cur.Literal)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

// parseConditional implements `a ? b : c`, right-associative: the
// innermost rightmost pair binds first (§4.2.2 rule 1).
func (p *Parser) parseConditional() (ast.Node, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.QUESTION {
		return cond, nil
	}
	p.next()

	then, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	els, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	return ast.Conditional{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.OR {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Op: "||", X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.AND {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Op: "&&", X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Node, error) {
	if p.cur.Type == token.NOT {
		p.next()
		x, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return ast.UnaryOp{Op: "!", X: x}, nil
	}
	return p.parseComparison()
}

// parseComparison implements a single, non-associative comparison
// (§4.2.2 rule 5): "a = b = c" is a parse error, not a chain.
func (p *Parser) parseComparison() (ast.Node, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	op := ""
	switch p.cur.Type {
	case token.EQ:
		op = "="
	case token.NEQ:
		op = "!="
	case token.LT:
		op = "<"
	case token.GT:
		op = ">"
	default:
		return left, nil
	}
	p.next()
	right, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return ast.BinaryOp{Op: op, X: left, Y: right}, nil
}

func (p *Parser) parseAdd() (ast.Node, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		op := "+"
		if p.cur.Type == token.MINUS {
			op = "-"
		}
		p.next()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseMul() (ast.Node, error) {
	left, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.STAR || p.cur.Type == token.SLASH {
		op := "*"
		if p.cur.Type == token.SLASH {
			op = "/"
		}
		p.next()
		right, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOp{Op: op, X: left, Y: right}
	}
	return left, nil
}

// parsePow implements right-associative "^", binding looser than unary
// minus (§4.2.2 rules 8-9): "-2^2" parses as "(-2)^2".
func (p *Parser) parsePow() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.CARET {
		return left, nil
	}
	p.next()
	right, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	return ast.BinaryOp{Op: "^", X: left, Y: right}, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	if p.cur.Type == token.MINUS {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.UnaryOp{Op: "-", X: x}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	switch p.cur.Type {
	case token.INT:
		lit := p.cur.Literal
		p.next()
		var n int64
		if _, err := fmt.Sscanf(lit, "%d", &n); err != nil {
			return nil, fmt.Errorf("invalid integer literal %q", lit)
		}
		return ast.Literal{Value: core.Int(n)}, nil
	case token.REAL:
		lit := p.cur.Literal
		p.next()
		var f float64
		if _, err := fmt.Sscanf(lit, "%g", &f); err != nil {
			return nil, fmt.Errorf("invalid real literal %q", lit)
		}
		return ast.Literal{Value: core.Real(f)}, nil
	case token.STRING:
		lit := p.cur.Literal
		p.next()
		return ast.Literal{Value: core.Text(lit)}, nil
	case token.LPAREN:
		p.next()
		inner, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case token.IDENT:
		name := p.cur.Literal
		p.next()
		switch p.cur.Type {
		case token.LPAREN:
			return p.parseCall(name)
		case token.LBRACKET:
			p.next()
			idx, err := p.parseConditional()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			return ast.IndexedFieldRef{Name: name, Index: idx}, nil
		default:
			return ast.FieldRef{Name: name}, nil
		}
	default:
		return nil, fmt.Errorf("unexpected token %q", p.cur.Literal)
	}
}

func (p *Parser) parseCall(name string) (ast.Node, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Node
	for p.cur.Type != token.RPAREN {
		arg, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return ast.Call{Name: name, Args: args}, nil
}
