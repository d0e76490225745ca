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

package ast

import (
	"errors"
	"testing"
)

func TestDecodeProgram(t *testing.T) {
	data := []byte(`{
		"type": "Program",
		"body": [
			{
				"type": "IfStatement",
				"test": {"type": "Identifier", "name": "x"},
				"consequent": {
					"type": "BlockStatement",
					"body": [
						{
							"type": "ExpressionStatement",
							"expression": {
								"type": "CallExpression",
								"callee": {"type": "Identifier", "name": "hello"},
								"arguments": [{"type": "Literal", "value": 1, "raw": "1"}]
							}
						}
					]
				},
				"alternate": null
			},
			{
				"type": "VariableDeclaration",
				"kind": "var",
				"declarations": [
					{
						"type": "VariableDeclarator",
						"id": {"type": "Identifier", "name": "y"},
						"init": {"type": "LogicalExpression", "operator": "||",
							"left": {"type": "Identifier", "name": "a"},
							"right": {"type": "Identifier", "name": "b"}}
					}
				]
			}
		]
	}`)
	prog, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(prog.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Body))
	}
	ifStmt, ok := prog.Body[0].(*IfStatement)
	if !ok || ifStmt.Alternate != nil {
		t.Fatalf("first statement should be an if without alternate, got %#v", prog.Body[0])
	}
	blk := ifStmt.Consequent.(*BlockStatement)
	es := blk.Body[0].(*ExpressionStatement)
	call := es.Expression.(*CallExpression)
	if call.Callee.(*Identifier).Name != "hello" {
		t.Errorf("callee should be hello")
	}
	if call.Arguments[0].(*Literal).Value != float64(1) {
		t.Errorf("argument should decode as the number 1")
	}
	decl := prog.Body[1].(*VariableDeclaration)
	if lor, ok := decl.Declarations[0].Init.(*LogicalExpression); !ok || lor.Operator != "||" {
		t.Errorf("initializer should be a logical or")
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"unknown kind":       `{"type": "ClassDeclaration", "body": []}`,
		"missing type":       `{"body": []}`,
		"missing child":      `{"type": "Program", "body": [{"type": "ExpressionStatement"}]}`,
		"non-var kind":       `{"type": "Program", "body": [{"type": "VariableDeclaration", "kind": "let", "declarations": [{"type": "VariableDeclarator", "id": {"type": "Identifier", "name": "x"}}]}]}`,
		"empty declarations": `{"type": "Program", "body": [{"type": "VariableDeclaration", "kind": "var", "declarations": []}]}`,
		"bare try":           `{"type": "Program", "body": [{"type": "TryStatement", "block": {"type": "BlockStatement", "body": []}}]}`,
		"non-program root":   `{"type": "Identifier", "name": "x"}`,
		"not an object":      `[1, 2]`,
	}
	for name, data := range cases {
		_, err := Decode([]byte(data))
		var me *MalformedError
		if !errors.As(err, &me) {
			t.Errorf("%s: expected a malformed AST error, got %v", name, err)
		}
	}
}

func TestDecodeLegacyHandlers(t *testing.T) {
	data := []byte(`{
		"type": "Program",
		"body": [{
			"type": "TryStatement",
			"block": {"type": "BlockStatement", "body": []},
			"handlers": [{
				"type": "CatchClause",
				"param": {"type": "Identifier", "name": "e"},
				"body": {"type": "BlockStatement", "body": []}
			}]
		}]
	}`)
	prog, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	try := prog.Body[0].(*TryStatement)
	if try.Handler == nil || try.Handler.Param.Name != "e" {
		t.Errorf("legacy handlers array should populate the handler")
	}
}

func TestDecodeArrayHoles(t *testing.T) {
	data := []byte(`{
		"type": "Program",
		"body": [{
			"type": "ExpressionStatement",
			"expression": {
				"type": "ArrayExpression",
				"elements": [{"type": "Literal", "value": 1}, null, {"type": "Literal", "value": 2}]
			}
		}]
	}`)
	prog, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	arr := prog.Body[0].(*ExpressionStatement).Expression.(*ArrayExpression)
	if len(arr.Elements) != 3 || arr.Elements[1] != nil {
		t.Errorf("holes should survive decoding, got %#v", arr.Elements)
	}
}
