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

package jsparse

import (
	"testing"

	"github.com/awslabs/ar-js-tools/analysis/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseSource(src)
	if err != nil {
		t.Fatalf("could not parse %q: %v", src, err)
	}
	return prog
}

func stmt(t *testing.T, prog *ast.Program, i int) ast.Node {
	t.Helper()
	if i >= len(prog.Body) {
		t.Fatalf("program has %d statements, wanted index %d", len(prog.Body), i)
	}
	return prog.Body[i]
}

func TestParseVarStatement(t *testing.T) {
	prog := mustParse(t, "var x = 1, y;")
	decl, ok := stmt(t, prog, 0).(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected a VariableDeclaration, got %T", prog.Body[0])
	}
	if decl.DeclKind != "var" || len(decl.Declarations) != 2 {
		t.Fatalf("unexpected declaration shape: %+v", decl)
	}
	if decl.Declarations[0].ID.Name != "x" || decl.Declarations[0].Init == nil {
		t.Errorf("first declarator should be x = 1")
	}
	if decl.Declarations[1].ID.Name != "y" || decl.Declarations[1].Init != nil {
		t.Errorf("second declarator should be y without initializer")
	}
	lit, ok := decl.Declarations[0].Init.(*ast.Literal)
	if !ok || lit.Value != float64(1) {
		t.Errorf("initializer should be the number 1, got %#v", decl.Declarations[0].Init)
	}
}

func TestParseOperators(t *testing.T) {
	prog := mustParse(t, "x += a && b; y = c < d; z = typeof e; i++; --j;")

	expr := func(i int) ast.Node {
		es, ok := stmt(t, prog, i).(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("statement %d is %T", i, prog.Body[i])
		}
		return es.Expression
	}

	plusAssign, ok := expr(0).(*ast.AssignmentExpression)
	if !ok || plusAssign.Operator != "+=" {
		t.Errorf("compound assignment should have operator +=, got %#v", expr(0))
	}
	if logical, ok := plusAssign.Right.(*ast.LogicalExpression); !ok || logical.Operator != "&&" {
		t.Errorf("expected a && b on the right, got %#v", plusAssign.Right)
	}
	assign := expr(1).(*ast.AssignmentExpression)
	if cmp, ok := assign.Right.(*ast.BinaryExpression); !ok || cmp.Operator != "<" {
		t.Errorf("expected a comparison, got %#v", assign.Right)
	}
	assign = expr(2).(*ast.AssignmentExpression)
	if un, ok := assign.Right.(*ast.UnaryExpression); !ok || un.Operator != "typeof" || !un.Prefix {
		t.Errorf("expected typeof, got %#v", assign.Right)
	}
	if upd, ok := expr(3).(*ast.UpdateExpression); !ok || upd.Operator != "++" || upd.Prefix {
		t.Errorf("expected postfix ++, got %#v", expr(3))
	}
	if upd, ok := expr(4).(*ast.UpdateExpression); !ok || upd.Operator != "--" || !upd.Prefix {
		t.Errorf("expected prefix --, got %#v", expr(4))
	}
}

func TestParseMembers(t *testing.T) {
	prog := mustParse(t, "a.b['c'](d);")
	es := stmt(t, prog, 0).(*ast.ExpressionStatement)
	call, ok := es.Expression.(*ast.CallExpression)
	if !ok || len(call.Arguments) != 1 {
		t.Fatalf("expected a one-argument call, got %#v", es.Expression)
	}
	outer, ok := call.Callee.(*ast.MemberExpression)
	if !ok || !outer.Computed {
		t.Fatalf("expected a computed member callee, got %#v", call.Callee)
	}
	inner, ok := outer.Object.(*ast.MemberExpression)
	if !ok || inner.Computed {
		t.Fatalf("expected a static member object, got %#v", outer.Object)
	}
	if prop, ok := inner.Property.(*ast.Identifier); !ok || prop.Name != "b" {
		t.Errorf("static property should be the identifier b")
	}
}

func TestParseForVariants(t *testing.T) {
	prog := mustParse(t, "for (var i = 0, j = n; i < j; i++) { } for (;;) { } for (var k in o) { }")

	forStmt, ok := stmt(t, prog, 0).(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected a ForStatement, got %T", prog.Body[0])
	}
	init, ok := forStmt.Init.(*ast.VariableDeclaration)
	if !ok || len(init.Declarations) != 2 {
		t.Fatalf("for-init should declare i and j, got %#v", forStmt.Init)
	}

	empty, ok := stmt(t, prog, 1).(*ast.ForStatement)
	if !ok || empty.Init != nil || empty.Test != nil || empty.Update != nil {
		t.Errorf("for(;;) should have no clauses, got %#v", prog.Body[1])
	}

	forIn, ok := stmt(t, prog, 2).(*ast.ForInStatement)
	if !ok {
		t.Fatalf("expected a ForInStatement, got %T", prog.Body[2])
	}
	left, ok := forIn.Left.(*ast.VariableDeclaration)
	if !ok || len(left.Declarations) != 1 || left.Declarations[0].ID.Name != "k" {
		t.Errorf("for-in left should declare k, got %#v", forIn.Left)
	}
}

func TestParseFunctions(t *testing.T) {
	prog := mustParse(t, "function add(a, b) { return a + b; } var mul = function (a, b) { return a * b; };")

	decl, ok := stmt(t, prog, 0).(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected a FunctionDeclaration, got %T", prog.Body[0])
	}
	if decl.ID.Name != "add" || len(decl.Params) != 2 || decl.Params[1].Name != "b" {
		t.Errorf("unexpected declaration shape: %+v", decl)
	}
	if len(decl.Body.Body) != 1 {
		t.Errorf("body should hold the return statement")
	}

	v := stmt(t, prog, 1).(*ast.VariableDeclaration)
	fn, ok := v.Declarations[0].Init.(*ast.FunctionExpression)
	if !ok {
		t.Fatalf("expected a FunctionExpression initializer, got %#v", v.Declarations[0].Init)
	}
	if fn.ID != nil {
		t.Errorf("anonymous function should have no id")
	}
}

func TestParseSwitchAndTry(t *testing.T) {
	prog := mustParse(t, `
		switch (x) { case 1: a(); default: b(); }
		try { f(); } catch (e) { g(e); } finally { h(); }
	`)

	sw, ok := stmt(t, prog, 0).(*ast.SwitchStatement)
	if !ok || len(sw.Cases) != 2 {
		t.Fatalf("expected a two-case switch, got %#v", prog.Body[0])
	}
	if sw.Cases[0].Test == nil || sw.Cases[1].Test != nil {
		t.Errorf("default case should have a nil test")
	}

	try, ok := stmt(t, prog, 1).(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected a TryStatement, got %T", prog.Body[1])
	}
	if try.Handler == nil || try.Handler.Param.Name != "e" || try.Finalizer == nil {
		t.Errorf("unexpected try shape: %+v", try)
	}
}

func TestParseLabels(t *testing.T) {
	prog := mustParse(t, "loop: while (x) { if (y) { continue loop; } break loop; }")
	lbl, ok := stmt(t, prog, 0).(*ast.LabeledStatement)
	if !ok || lbl.Label.Name != "loop" {
		t.Fatalf("expected a labeled statement, got %#v", prog.Body[0])
	}
	if _, ok := lbl.Body.(*ast.WhileStatement); !ok {
		t.Errorf("label body should be the while loop")
	}
}

func TestParseObjectKeys(t *testing.T) {
	prog := mustParse(t, "var o = { a: 1, 'b c': 2, 3: 4 };")
	v := stmt(t, prog, 0).(*ast.VariableDeclaration)
	obj, ok := v.Declarations[0].Init.(*ast.ObjectExpression)
	if !ok || len(obj.Properties) != 3 {
		t.Fatalf("expected three properties, got %#v", v.Declarations[0].Init)
	}
	if id, ok := obj.Properties[0].Key.(*ast.Identifier); !ok || id.Name != "a" {
		t.Errorf("plain key should be an identifier")
	}
	if lit, ok := obj.Properties[1].Key.(*ast.Literal); !ok || lit.Value != "b c" {
		t.Errorf("quoted key should be a string literal, got %#v", obj.Properties[1].Key)
	}
	if lit, ok := obj.Properties[2].Key.(*ast.Literal); !ok || lit.Value != float64(3) {
		t.Errorf("numeric key should be a number literal, got %#v", obj.Properties[2].Key)
	}
	for _, p := range obj.Properties {
		if p.PropKind != "init" {
			t.Errorf("plain properties should have kind init, got %q", p.PropKind)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseSource("var ="); err == nil {
		t.Errorf("syntax errors should surface")
	}
	if _, err := Convert(nil); err == nil {
		t.Errorf("converting a nil program should fail")
	}
}
