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
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode reads an ESTree JSON document and returns the corresponding tree.
// The root must be a Program. Unknown node kinds and missing required
// children are reported as a MalformedError.
func Decode(data []byte) (*Program, error) {
	root, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	prog, ok := root.(*Program)
	if !ok {
		return nil, &MalformedError{Reason: fmt.Sprintf("root node is %s, expected Program", root.Kind())}
	}
	return prog, nil
}

// jsonNode is the partially decoded form of one ESTree object.
type jsonNode map[string]json.RawMessage

func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeNode(raw json.RawMessage) (Node, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	var obj jsonNode
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &MalformedError{Reason: fmt.Sprintf("node is not a JSON object: %v", err)}
	}
	var kind string
	if err := json.Unmarshal(obj["type"], &kind); err != nil {
		return nil, &MalformedError{Reason: "node has no type tag"}
	}
	return decodeKind(Kind(kind), obj)
}

//gocyclo:ignore
func decodeKind(kind Kind, obj jsonNode) (Node, error) {
	d := &decoder{kind: kind, obj: obj}
	var n Node
	switch kind {
	case KindProgram:
		n = &Program{Body: d.nodeList("body")}
	case KindEmptyStatement:
		n = &EmptyStatement{}
	case KindBlockStatement:
		n = &BlockStatement{Body: d.nodeList("body")}
	case KindExpressionStatement:
		n = &ExpressionStatement{Expression: d.node("expression", true)}
	case KindIfStatement:
		n = &IfStatement{
			Test:       d.node("test", true),
			Consequent: d.node("consequent", true),
			Alternate:  d.node("alternate", false),
		}
	case KindLabeledStatement:
		n = &LabeledStatement{Label: d.ident("label", true), Body: d.node("body", true)}
	case KindBreakStatement:
		n = &BreakStatement{Label: d.ident("label", false)}
	case KindContinueStatement:
		n = &ContinueStatement{Label: d.ident("label", false)}
	case KindWithStatement:
		n = &WithStatement{Object: d.node("object", true), Body: d.node("body", true)}
	case KindSwitchStatement:
		n = &SwitchStatement{Discriminant: d.node("discriminant", true), Cases: d.caseList("cases")}
	case KindSwitchCase:
		n = &SwitchCase{Test: d.node("test", false), Consequent: d.nodeList("consequent")}
	case KindReturnStatement:
		n = &ReturnStatement{Argument: d.node("argument", false)}
	case KindThrowStatement:
		n = &ThrowStatement{Argument: d.node("argument", true)}
	case KindTryStatement:
		n = d.tryStatement()
	case KindCatchClause:
		n = &CatchClause{Param: d.ident("param", false), Body: d.block("body", true)}
	case KindWhileStatement:
		n = &WhileStatement{Test: d.node("test", true), Body: d.node("body", true)}
	case KindDoWhileStatement:
		n = &DoWhileStatement{Body: d.node("body", true), Test: d.node("test", true)}
	case KindForStatement:
		n = &ForStatement{
			Init:   d.node("init", false),
			Test:   d.node("test", false),
			Update: d.node("update", false),
			Body:   d.node("body", true),
		}
	case KindForInStatement:
		n = &ForInStatement{
			Left:  d.node("left", true),
			Right: d.node("right", true),
			Body:  d.node("body", true),
		}
	case KindFunctionDeclaration:
		n = &FunctionDeclaration{ID: d.ident("id", true), Params: d.identList("params"), Body: d.block("body", true)}
	case KindFunctionExpression:
		n = &FunctionExpression{ID: d.ident("id", false), Params: d.identList("params"), Body: d.block("body", true)}
	case KindVariableDeclaration:
		n = d.variableDeclaration()
	case KindVariableDeclarator:
		n = &VariableDeclarator{ID: d.ident("id", true), Init: d.node("init", false)}
	case KindThisExpression:
		n = &ThisExpression{}
	case KindArrayExpression:
		n = &ArrayExpression{Elements: d.nodeListWithHoles("elements")}
	case KindObjectExpression:
		n = &ObjectExpression{Properties: d.propertyList("properties")}
	case KindProperty:
		n = &Property{Key: d.node("key", true), Value: d.node("value", true), PropKind: d.strOr("kind", "init")}
	case KindSequenceExpression:
		n = &SequenceExpression{Expressions: d.nodeList("expressions")}
	case KindUnaryExpression:
		n = &UnaryExpression{Operator: d.str("operator"), Argument: d.node("argument", true), Prefix: d.boolOr("prefix", true)}
	case KindBinaryExpression:
		n = &BinaryExpression{Operator: d.str("operator"), Left: d.node("left", true), Right: d.node("right", true)}
	case KindAssignmentExpression:
		n = &AssignmentExpression{Operator: d.str("operator"), Left: d.node("left", true), Right: d.node("right", true)}
	case KindUpdateExpression:
		n = &UpdateExpression{Operator: d.str("operator"), Argument: d.node("argument", true), Prefix: d.boolOr("prefix", false)}
	case KindLogicalExpression:
		n = &LogicalExpression{Operator: d.str("operator"), Left: d.node("left", true), Right: d.node("right", true)}
	case KindConditionalExpression:
		n = &ConditionalExpression{
			Test:       d.node("test", true),
			Consequent: d.node("consequent", true),
			Alternate:  d.node("alternate", true),
		}
	case KindCallExpression:
		n = &CallExpression{Callee: d.node("callee", true), Arguments: d.nodeList("arguments")}
	case KindNewExpression:
		n = &NewExpression{Callee: d.node("callee", true), Arguments: d.nodeList("arguments")}
	case KindMemberExpression:
		n = &MemberExpression{Object: d.node("object", true), Property: d.node("property", true), Computed: d.boolOr("computed", false)}
	case KindIdentifier:
		n = &Identifier{Name: d.str("name")}
	case KindLiteral:
		n = d.literal()
	default:
		return nil, &MalformedError{Reason: fmt.Sprintf("unknown node kind %q", kind)}
	}
	if d.err != nil {
		return nil, d.err
	}
	return n, nil
}

// decoder accumulates the first error encountered while pulling fields out
// of one JSON object, so each case above reads linearly.
type decoder struct {
	kind Kind
	obj  jsonNode
	err  error
}

func (d *decoder) fail(format string, args ...interface{}) {
	if d.err == nil {
		d.err = Malformed(d.kind, format, args...)
	}
}

func (d *decoder) node(name string, required bool) Node {
	raw, ok := d.obj[name]
	if !ok || isJSONNull(raw) {
		if required {
			d.fail("missing required child %q", name)
		}
		return nil
	}
	n, err := decodeNode(raw)
	if err != nil && d.err == nil {
		d.err = err
	}
	return n
}

func (d *decoder) rawList(name string) []json.RawMessage {
	raw, ok := d.obj[name]
	if !ok || isJSONNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.fail("field %q is not an array", name)
		return nil
	}
	return items
}

func (d *decoder) nodeList(name string) []Node {
	var out []Node
	for _, item := range d.rawList(name) {
		n, err := decodeNode(item)
		if err != nil {
			if d.err == nil {
				d.err = err
			}
			return out
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// nodeListWithHoles keeps nil entries so that array holes survive decoding.
func (d *decoder) nodeListWithHoles(name string) []Node {
	var out []Node
	for _, item := range d.rawList(name) {
		n, err := decodeNode(item)
		if err != nil {
			if d.err == nil {
				d.err = err
			}
			return out
		}
		out = append(out, n)
	}
	return out
}

func (d *decoder) ident(name string, required bool) *Identifier {
	n := d.node(name, required)
	if n == nil {
		return nil
	}
	id, ok := n.(*Identifier)
	if !ok {
		d.fail("child %q is %s, expected Identifier", name, n.Kind())
		return nil
	}
	return id
}

func (d *decoder) identList(name string) []*Identifier {
	var out []*Identifier
	for _, item := range d.rawList(name) {
		n, err := decodeNode(item)
		if err != nil {
			if d.err == nil {
				d.err = err
			}
			return out
		}
		id, ok := n.(*Identifier)
		if !ok {
			d.fail("element of %q is not an Identifier", name)
			return out
		}
		out = append(out, id)
	}
	return out
}

func (d *decoder) block(name string, required bool) *BlockStatement {
	n := d.node(name, required)
	if n == nil {
		return nil
	}
	blk, ok := n.(*BlockStatement)
	if !ok {
		d.fail("child %q is %s, expected BlockStatement", name, n.Kind())
		return nil
	}
	return blk
}

func (d *decoder) caseList(name string) []*SwitchCase {
	var out []*SwitchCase
	for _, item := range d.rawList(name) {
		n, err := decodeNode(item)
		if err != nil {
			if d.err == nil {
				d.err = err
			}
			return out
		}
		c, ok := n.(*SwitchCase)
		if !ok {
			d.fail("element of %q is not a SwitchCase", name)
			return out
		}
		out = append(out, c)
	}
	return out
}

func (d *decoder) propertyList(name string) []*Property {
	var out []*Property
	for _, item := range d.rawList(name) {
		n, err := decodeNode(item)
		if err != nil {
			if d.err == nil {
				d.err = err
			}
			return out
		}
		p, ok := n.(*Property)
		if !ok {
			d.fail("element of %q is not a Property", name)
			return out
		}
		out = append(out, p)
	}
	return out
}

func (d *decoder) str(name string) string {
	var s string
	raw, ok := d.obj[name]
	if !ok {
		d.fail("missing field %q", name)
		return ""
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		d.fail("field %q is not a string", name)
	}
	return s
}

func (d *decoder) strOr(name, dflt string) string {
	raw, ok := d.obj[name]
	if !ok || isJSONNull(raw) {
		return dflt
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		d.fail("field %q is not a string", name)
	}
	return s
}

func (d *decoder) boolOr(name string, dflt bool) bool {
	raw, ok := d.obj[name]
	if !ok || isJSONNull(raw) {
		return dflt
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		d.fail("field %q is not a boolean", name)
	}
	return b
}

func (d *decoder) tryStatement() *TryStatement {
	t := &TryStatement{Block: d.block("block", true)}
	if h := d.node("handler", false); h != nil {
		c, ok := h.(*CatchClause)
		if !ok {
			d.fail("handler is %s, expected CatchClause", h.Kind())
			return t
		}
		t.Handler = c
	} else if items := d.rawList("handlers"); len(items) > 0 {
		// legacy esprima shape: a one-element handlers array
		n, err := decodeNode(items[0])
		if err != nil {
			if d.err == nil {
				d.err = err
			}
			return t
		}
		if c, ok := n.(*CatchClause); ok {
			t.Handler = c
		}
	}
	t.Finalizer = d.block("finalizer", false)
	if t.Handler == nil && t.Finalizer == nil {
		d.fail("try statement requires a handler or a finalizer")
	}
	return t
}

func (d *decoder) variableDeclaration() *VariableDeclaration {
	kind := d.strOr("kind", "var")
	if kind != "var" {
		d.fail("declaration kind %q is not ES5", kind)
	}
	v := &VariableDeclaration{DeclKind: kind}
	for _, item := range d.rawList("declarations") {
		n, err := decodeNode(item)
		if err != nil {
			if d.err == nil {
				d.err = err
			}
			return v
		}
		dec, ok := n.(*VariableDeclarator)
		if !ok {
			d.fail("element of declarations is not a VariableDeclarator")
			return v
		}
		v.Declarations = append(v.Declarations, dec)
	}
	if len(v.Declarations) == 0 {
		d.fail("declaration has no declarators")
	}
	return v
}

func (d *decoder) literal() *Literal {
	lit := &Literal{}
	if raw, ok := d.obj["value"]; ok && !isJSONNull(raw) {
		var v interface{}
		if err := json.Unmarshal(raw, &v); err == nil {
			switch v.(type) {
			case bool, float64, string:
				lit.Value = v
			default:
				// regex and other non-primitive values keep only their raw form
			}
		}
	}
	if raw, ok := d.obj["raw"]; ok && !isJSONNull(raw) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			lit.Raw = s
		}
	}
	return lit
}
