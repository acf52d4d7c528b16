package calc

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ParseProcedure parses calculation-procedure source text. The grammar is a
// sequence of `name = expression` lines; expressions support arithmetic,
// comparisons, the string-format/modulo operator, power, indexing, and calls
// to whitelisted functions. There is deliberately no access to anything
// outside the expression language.
func ParseProcedure(source string) (Procedure, error) {
	tokens, err := tokenize(source)
	if err != nil {
		return Procedure{}, err
	}

	p := &parser{tokens: tokens}
	var statements []Statement

	for {
		p.skipNewlines()
		if p.peek().kind == tkEOF {
			break
		}

		target := p.peek()
		if target.kind != tkIdent {
			return Procedure{}, errors.Newf("line %d: expected an assignment, got '%s'", target.line, target.text)
		}
		p.next()

		if !p.acceptOp("=") {
			return Procedure{}, errors.Newf("line %d: expected '=' after '%s'", target.line, target.text)
		}

		expr, err := p.parseExpr(0)
		if err != nil {
			return Procedure{}, err
		}

		end := p.peek()
		if end.kind != tkNewline && end.kind != tkEOF {
			return Procedure{}, errors.Newf("line %d: unexpected token '%s'", end.line, end.text)
		}

		statements = append(statements, Statement{Target: target.text, Expr: expr, Line: target.line})
	}

	if len(statements) == 0 {
		return Procedure{}, errors.New("procedure is empty")
	}
	return Procedure{Statements: statements}, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) skipNewlines() {
	for p.peek().kind == tkNewline {
		p.next()
	}
}

func (p *parser) acceptOp(op string) bool {
	if t := p.peek(); t.kind == tkOp && t.text == op {
		p.next()
		return true
	}
	return false
}

var binaryFunctions = map[string]Function{
	"+":  FUNC_ADD,
	"-":  FUNC_SUBTRACT,
	"*":  FUNC_MULTIPLY,
	"/":  FUNC_DIVIDE,
	"%":  FUNC_MODULO,
	"**": FUNC_POWER,
	">":  FUNC_GREATER,
	">=": FUNC_GREATER_OR_EQUAL,
	"<":  FUNC_LESS,
	"<=": FUNC_LESS_OR_EQUAL,
	"==": FUNC_EQUAL,
	"!=": FUNC_NOT_EQUAL,
}

func binaryPrecedence(op string) int {
	switch op {
	case "==", "!=", ">", ">=", "<", "<=":
		return 1
	case "+", "-":
		return 2
	case "*", "/", "%":
		return 3
	case "**":
		return 4
	}
	return 0
}

// parseExpr is a precedence climber; ** is right-associative like in the
// procedures' source language.
func (p *parser) parseExpr(minPrecedence int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return Node{}, err
	}

	for {
		t := p.peek()
		if t.kind != tkOp {
			return left, nil
		}
		precedence := binaryPrecedence(t.text)
		if precedence == 0 || precedence < minPrecedence {
			return left, nil
		}
		p.next()

		nextMin := precedence + 1
		if t.text == "**" {
			nextMin = precedence
		}
		right, err := p.parseExpr(nextMin)
		if err != nil {
			return Node{}, err
		}

		left = Node{Function: binaryFunctions[t.text], Line: t.line}.
			AddChild(left).
			AddChild(right)
	}
}

func (p *parser) parseUnary() (Node, error) {
	if t := p.peek(); t.kind == tkOp && t.text == "-" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return Node{}, err
		}
		return Node{Function: FUNC_NEGATE, Line: t.line}.AddChild(operand), nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of calls and
// index accesses.
func (p *parser) parsePostfix() (Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return Node{}, err
	}

	for {
		t := p.peek()
		if t.kind != tkOp {
			return node, nil
		}
		switch t.text {
		case "(":
			if node.Function != FUNC_VARIABLE {
				return Node{}, errors.Newf("line %d: only named functions can be called", t.line)
			}
			p.next()
			name := node.NamedChildren[VariableArgumentName].Constant.(string)
			args, err := p.parseCallArguments()
			if err != nil {
				return Node{}, err
			}
			node = NewNodeCall(name, args...)
			node.Line = t.line

		case "[":
			p.next()
			key, err := p.parseExpr(0)
			if err != nil {
				return Node{}, err
			}
			if !p.acceptOp("]") {
				return Node{}, errors.Newf("line %d: expected ']'", t.line)
			}
			node = Node{Function: FUNC_INDEX, Line: t.line}.
				AddChild(node).
				AddChild(key)

		default:
			return node, nil
		}
	}
}

func (p *parser) parseCallArguments() ([]Node, error) {
	if p.acceptOp(")") {
		return nil, nil
	}

	var args []Node
	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.acceptOp(",") {
			continue
		}
		if p.acceptOp(")") {
			return args, nil
		}
		return nil, errors.Newf("line %d: expected ',' or ')' in call arguments", p.peek().line)
	}
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.peek()
	switch t.kind {
	case tkNumber:
		p.next()
		return Node{Function: FUNC_CONSTANT, Constant: t.number, Line: t.line}, nil

	case tkString:
		p.next()
		return Node{Function: FUNC_CONSTANT, Constant: t.text, Line: t.line}, nil

	case tkIdent:
		p.next()
		switch t.text {
		case "True", "true":
			return Node{Function: FUNC_CONSTANT, Constant: true, Line: t.line}, nil
		case "False", "false":
			return Node{Function: FUNC_CONSTANT, Constant: false, Line: t.line}, nil
		case "None":
			return Node{Function: FUNC_CONSTANT, Constant: nil, Line: t.line}, nil
		case "pi":
			return Node{Function: FUNC_CONSTANT, Constant: math.Pi, Line: t.line}, nil
		}
		node := NewNodeVariable(t.text)
		node.Line = t.line
		return node, nil

	case tkOp:
		if t.text == "(" {
			p.next()
			expr, err := p.parseExpr(0)
			if err != nil {
				return Node{}, err
			}
			if !p.acceptOp(")") {
				return Node{}, errors.Newf("line %d: expected ')'", t.line)
			}
			return expr, nil
		}
	}
	return Node{}, errors.Newf("line %d: unexpected token '%s'", t.line, t.text)
}
