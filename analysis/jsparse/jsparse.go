// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package jsparse turns ES5 source text into the ESTree-shaped tree the
// flow analysis consumes, using the otto parser as the front end. Parsing
// itself is the parser's business; this package only reshapes its tree.
package jsparse

import (
	"fmt"
	"strconv"

	oast "github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/parser"
	"github.com/robertkrimen/otto/token"

	"github.com/awslabs/ar-js-tools/analysis/ast"
)

// ParseFile parses src (a string, []byte or io.Reader) and converts the
// result. filename is used in parse error messages only.
func ParseFile(filename string, src interface{}) (*ast.Program, error) {
	oprog, err := parser.ParseFile(nil, filename, src, 0)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", filename, err)
	}
	return Convert(oprog)
}

// ParseSource parses an in-memory ES5 source string.
func ParseSource(src string) (*ast.Program, error) {
	return ParseFile("", src)
}

// Convert reshapes a parsed otto tree into the ESTree ES5 form.
func Convert(oprog *oast.Program) (*ast.Program, error) {
	if oprog == nil {
		return nil, &ast.MalformedError{Reason: "nil program"}
	}
	c := &converter{}
	prog := &ast.Program{}
	for _, s := range oprog.Body {
		stmt, err := c.stmt(s)
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}

type converter struct{}

//gocyclo:ignore
func (c *converter) stmt(s oast.Statement) (ast.Node, error) {
	switch s := s.(type) {
	case *oast.EmptyStatement:
		return &ast.EmptyStatement{}, nil
	case *oast.DebuggerStatement:
		// debugger has no control flow of its own
		return &ast.EmptyStatement{}, nil
	case *oast.BlockStatement:
		return c.block(s.List)
	case *oast.ExpressionStatement:
		expr, err := c.expr(s.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: expr}, nil
	case *oast.IfStatement:
		test, err := c.expr(s.Test)
		if err != nil {
			return nil, err
		}
		cons, err := c.stmt(s.Consequent)
		if err != nil {
			return nil, err
		}
		out := &ast.IfStatement{Test: test, Consequent: cons}
		if s.Alternate != nil {
			if out.Alternate, err = c.stmt(s.Alternate); err != nil {
				return nil, err
			}
		}
		return out, nil
	case *oast.LabelledStatement:
		body, err := c.stmt(s.Statement)
		if err != nil {
			return nil, err
		}
		return &ast.LabeledStatement{Label: &ast.Identifier{Name: s.Label.Name}, Body: body}, nil
	case *oast.BranchStatement:
		var label *ast.Identifier
		if s.Label != nil {
			label = &ast.Identifier{Name: s.Label.Name}
		}
		switch s.Token {
		case token.BREAK:
			return &ast.BreakStatement{Label: label}, nil
		case token.CONTINUE:
			return &ast.ContinueStatement{Label: label}, nil
		}
		return nil, &ast.MalformedError{Reason: fmt.Sprintf("unexpected branch token %s", s.Token)}
	case *oast.WithStatement:
		obj, err := c.expr(s.Object)
		if err != nil {
			return nil, err
		}
		body, err := c.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WithStatement{Object: obj, Body: body}, nil
	case *oast.SwitchStatement:
		return c.switchStmt(s)
	case *oast.ReturnStatement:
		out := &ast.ReturnStatement{}
		if s.Argument != nil {
			var err error
			if out.Argument, err = c.expr(s.Argument); err != nil {
				return nil, err
			}
		}
		return out, nil
	case *oast.ThrowStatement:
		arg, err := c.expr(s.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.ThrowStatement{Argument: arg}, nil
	case *oast.TryStatement:
		return c.tryStmt(s)
	case *oast.WhileStatement:
		test, err := c.expr(s.Test)
		if err != nil {
			return nil, err
		}
		body, err := c.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Test: test, Body: body}, nil
	case *oast.DoWhileStatement:
		body, err := c.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		test, err := c.expr(s.Test)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStatement{Body: body, Test: test}, nil
	case *oast.ForStatement:
		return c.forStmt(s)
	case *oast.ForInStatement:
		return c.forInStmt(s)
	case *oast.FunctionStatement:
		fn, err := c.functionLiteral(s.Function)
		if err != nil {
			return nil, err
		}
		if fn.ID == nil {
			return nil, &ast.MalformedError{Kind: ast.KindFunctionDeclaration, Reason: "function declaration without a name"}
		}
		return &ast.FunctionDeclaration{ID: fn.ID, Params: fn.Params, Body: fn.Body}, nil
	case *oast.VariableStatement:
		return c.varStmt(s.List)
	default:
		return nil, &ast.MalformedError{Reason: fmt.Sprintf("unsupported statement %T", s)}
	}
}

func (c *converter) block(list []oast.Statement) (*ast.BlockStatement, error) {
	out := &ast.BlockStatement{}
	for _, s := range list {
		stmt, err := c.stmt(s)
		if err != nil {
			return nil, err
		}
		out.Body = append(out.Body, stmt)
	}
	return out, nil
}

// blockOf converts a statement that ESTree requires to be a block,
// wrapping single statements as needed.
func (c *converter) blockOf(s oast.Statement) (*ast.BlockStatement, error) {
	if blk, ok := s.(*oast.BlockStatement); ok {
		return c.block(blk.List)
	}
	stmt, err := c.stmt(s)
	if err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Body: []ast.Node{stmt}}, nil
}

func (c *converter) switchStmt(s *oast.SwitchStatement) (ast.Node, error) {
	disc, err := c.expr(s.Discriminant)
	if err != nil {
		return nil, err
	}
	out := &ast.SwitchStatement{Discriminant: disc}
	for _, cs := range s.Body {
		sc := &ast.SwitchCase{}
		if cs.Test != nil {
			if sc.Test, err = c.expr(cs.Test); err != nil {
				return nil, err
			}
		}
		for _, body := range cs.Consequent {
			stmt, err := c.stmt(body)
			if err != nil {
				return nil, err
			}
			sc.Consequent = append(sc.Consequent, stmt)
		}
		out.Cases = append(out.Cases, sc)
	}
	return out, nil
}

func (c *converter) tryStmt(s *oast.TryStatement) (ast.Node, error) {
	block, err := c.blockOf(s.Body)
	if err != nil {
		return nil, err
	}
	out := &ast.TryStatement{Block: block}
	if s.Catch != nil {
		body, err := c.blockOf(s.Catch.Body)
		if err != nil {
			return nil, err
		}
		var param *ast.Identifier
		if s.Catch.Parameter != nil {
			param = &ast.Identifier{Name: s.Catch.Parameter.Name}
		}
		out.Handler = &ast.CatchClause{Param: param, Body: body}
	}
	if s.Finally != nil {
		if out.Finalizer, err = c.blockOf(s.Finally); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *converter) forStmt(s *oast.ForStatement) (ast.Node, error) {
	out := &ast.ForStatement{}
	var err error
	if s.Initializer != nil {
		if out.Init, err = c.forInit(s.Initializer); err != nil {
			return nil, err
		}
	}
	if s.Test != nil {
		if out.Test, err = c.optionalExpr(s.Test); err != nil {
			return nil, err
		}
	}
	if s.Update != nil {
		if out.Update, err = c.optionalExpr(s.Update); err != nil {
			return nil, err
		}
	}
	if out.Body, err = c.stmt(s.Body); err != nil {
		return nil, err
	}
	return out, nil
}

// forInit converts a for-initializer, turning the parser's declarator
// expressions back into a var declaration.
func (c *converter) forInit(e oast.Expression) (ast.Node, error) {
	switch e := e.(type) {
	case *oast.VariableExpression:
		return c.varStmt([]oast.Expression{e})
	case *oast.SequenceExpression:
		if len(e.Sequence) == 0 {
			// the parser wraps an empty clause, as in for (;;), in an
			// empty sequence
			return nil, nil
		}
		allVars := len(e.Sequence) > 0
		for _, x := range e.Sequence {
			if _, ok := x.(*oast.VariableExpression); !ok {
				allVars = false
				break
			}
		}
		if allVars {
			return c.varStmt(e.Sequence)
		}
	case *oast.EmptyExpression:
		return nil, nil
	}
	return c.expr(e)
}

func (c *converter) forInStmt(s *oast.ForInStatement) (ast.Node, error) {
	out := &ast.ForInStatement{}
	var err error
	if into, ok := s.Into.(*oast.VariableExpression); ok {
		if out.Left, err = c.varStmt([]oast.Expression{into}); err != nil {
			return nil, err
		}
	} else if out.Left, err = c.expr(s.Into); err != nil {
		return nil, err
	}
	if out.Right, err = c.expr(s.Source); err != nil {
		return nil, err
	}
	if out.Body, err = c.stmt(s.Body); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *converter) varStmt(list []oast.Expression) (*ast.VariableDeclaration, error) {
	out := &ast.VariableDeclaration{DeclKind: "var"}
	for _, e := range list {
		ve, ok := e.(*oast.VariableExpression)
		if !ok {
			return nil, &ast.MalformedError{Kind: ast.KindVariableDeclaration, Reason: fmt.Sprintf("declarator is %T", e)}
		}
		d := &ast.VariableDeclarator{ID: &ast.Identifier{Name: ve.Name}}
		if ve.Initializer != nil {
			var err error
			if d.Init, err = c.expr(ve.Initializer); err != nil {
				return nil, err
			}
		}
		out.Declarations = append(out.Declarations, d)
	}
	return out, nil
}

func (c *converter) functionLiteral(fn *oast.FunctionLiteral) (*ast.FunctionExpression, error) {
	out := &ast.FunctionExpression{}
	if fn.Name != nil {
		out.ID = &ast.Identifier{Name: fn.Name.Name}
	}
	if fn.ParameterList != nil {
		for _, p := range fn.ParameterList.List {
			out.Params = append(out.Params, &ast.Identifier{Name: p.Name})
		}
	}
	body, err := c.blockOf(fn.Body)
	if err != nil {
		return nil, err
	}
	out.Body = body
	return out, nil
}

// optionalExpr treats the parser's empty expression as an absent clause.
func (c *converter) optionalExpr(e oast.Expression) (ast.Node, error) {
	if _, ok := e.(*oast.EmptyExpression); ok {
		return nil, nil
	}
	return c.expr(e)
}

//gocyclo:ignore
func (c *converter) expr(e oast.Expression) (ast.Node, error) {
	switch e := e.(type) {
	case *oast.Identifier:
		return &ast.Identifier{Name: e.Name}, nil
	case *oast.ThisExpression:
		return &ast.ThisExpression{}, nil
	case *oast.NullLiteral:
		return &ast.Literal{Raw: "null"}, nil
	case *oast.BooleanLiteral:
		return &ast.Literal{Value: e.Value, Raw: e.Literal}, nil
	case *oast.NumberLiteral:
		return &ast.Literal{Value: numberValue(e.Value), Raw: e.Literal}, nil
	case *oast.StringLiteral:
		return &ast.Literal{Value: e.Value, Raw: e.Literal}, nil
	case *oast.RegExpLiteral:
		return &ast.Literal{Raw: e.Literal}, nil
	case *oast.ArrayLiteral:
		out := &ast.ArrayExpression{}
		for _, el := range e.Value {
			if el == nil {
				out.Elements = append(out.Elements, nil)
				continue
			}
			if _, hole := el.(*oast.EmptyExpression); hole {
				out.Elements = append(out.Elements, nil)
				continue
			}
			conv, err := c.expr(el)
			if err != nil {
				return nil, err
			}
			out.Elements = append(out.Elements, conv)
		}
		return out, nil
	case *oast.ObjectLiteral:
		out := &ast.ObjectExpression{}
		for _, p := range e.Value {
			val, err := c.expr(p.Value)
			if err != nil {
				return nil, err
			}
			kind := p.Kind
			if kind == "" || kind == "value" {
				kind = "init"
			}
			out.Properties = append(out.Properties, &ast.Property{
				Key:      propertyKey(p.Key),
				Value:    val,
				PropKind: kind,
			})
		}
		return out, nil
	case *oast.FunctionLiteral:
		return c.functionLiteral(e)
	case *oast.SequenceExpression:
		out := &ast.SequenceExpression{}
		for _, x := range e.Sequence {
			conv, err := c.expr(x)
			if err != nil {
				return nil, err
			}
			out.Expressions = append(out.Expressions, conv)
		}
		return out, nil
	case *oast.UnaryExpression:
		arg, err := c.expr(e.Operand)
		if err != nil {
			return nil, err
		}
		if e.Operator == token.INCREMENT || e.Operator == token.DECREMENT {
			return &ast.UpdateExpression{Operator: e.Operator.String(), Argument: arg, Prefix: !e.Postfix}, nil
		}
		return &ast.UnaryExpression{Operator: e.Operator.String(), Argument: arg, Prefix: true}, nil
	case *oast.BinaryExpression:
		left, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.expr(e.Right)
		if err != nil {
			return nil, err
		}
		if e.Operator == token.LOGICAL_AND || e.Operator == token.LOGICAL_OR {
			return &ast.LogicalExpression{Operator: e.Operator.String(), Left: left, Right: right}, nil
		}
		return &ast.BinaryExpression{Operator: e.Operator.String(), Left: left, Right: right}, nil
	case *oast.AssignExpression:
		left, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.expr(e.Right)
		if err != nil {
			return nil, err
		}
		op := "="
		if e.Operator != token.ASSIGN {
			// the parser stores compound assignment as the base operator
			op = e.Operator.String() + "="
		}
		return &ast.AssignmentExpression{Operator: op, Left: left, Right: right}, nil
	case *oast.ConditionalExpression:
		test, err := c.expr(e.Test)
		if err != nil {
			return nil, err
		}
		cons, err := c.expr(e.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := c.expr(e.Alternate)
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}, nil
	case *oast.CallExpression:
		callee, err := c.expr(e.Callee)
		if err != nil {
			return nil, err
		}
		args, err := c.exprList(e.ArgumentList)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{Callee: callee, Arguments: args}, nil
	case *oast.NewExpression:
		callee, err := c.expr(e.Callee)
		if err != nil {
			return nil, err
		}
		args, err := c.exprList(e.ArgumentList)
		if err != nil {
			return nil, err
		}
		return &ast.NewExpression{Callee: callee, Arguments: args}, nil
	case *oast.DotExpression:
		obj, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{
			Object:   obj,
			Property: &ast.Identifier{Name: e.Identifier.Name},
		}, nil
	case *oast.BracketExpression:
		obj, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		member, err := c.expr(e.Member)
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{Object: obj, Property: member, Computed: true}, nil
	case *oast.VariableExpression:
		// a declarator outside a var statement denotes its binding
		return &ast.Identifier{Name: e.Name}, nil
	default:
		return nil, &ast.MalformedError{Reason: fmt.Sprintf("unsupported expression %T", e)}
	}
}

func (c *converter) exprList(list []oast.Expression) ([]ast.Node, error) {
	var out []ast.Node
	for _, e := range list {
		conv, err := c.expr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, conv)
	}
	return out, nil
}

func numberValue(v interface{}) interface{} {
	switch v := v.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	}
	return v
}

// propertyKey rebuilds the key node the parser flattened to a string.
func propertyKey(key string) ast.Node {
	if isIdentifierName(key) {
		return &ast.Identifier{Name: key}
	}
	if f, err := strconv.ParseFloat(key, 64); err == nil {
		return &ast.Literal{Value: f, Raw: key}
	}
	return &ast.Literal{Value: key, Raw: strconv.Quote(key)}
}

func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '$' || r == '_':
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
