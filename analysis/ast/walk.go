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

// Children returns the direct children of n in ESTree field order, with
// absent optional children and array holes skipped. The result is a fresh
// slice the caller may mutate.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *BlockStatement:
		for _, s := range n.Body {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expression)
	case *IfStatement:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *LabeledStatement:
		if n.Label != nil {
			add(n.Label)
		}
		add(n.Body)
	case *BreakStatement:
		if n.Label != nil {
			add(n.Label)
		}
	case *ContinueStatement:
		if n.Label != nil {
			add(n.Label)
		}
	case *WithStatement:
		add(n.Object)
		add(n.Body)
	case *SwitchStatement:
		add(n.Discriminant)
		for _, c := range n.Cases {
			if c != nil {
				add(c)
			}
		}
	case *SwitchCase:
		add(n.Test)
		for _, s := range n.Consequent {
			add(s)
		}
	case *ReturnStatement:
		add(n.Argument)
	case *ThrowStatement:
		add(n.Argument)
	case *TryStatement:
		if n.Block != nil {
			add(n.Block)
		}
		if n.Handler != nil {
			add(n.Handler)
		}
		if n.Finalizer != nil {
			add(n.Finalizer)
		}
	case *CatchClause:
		if n.Param != nil {
			add(n.Param)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *WhileStatement:
		add(n.Test)
		add(n.Body)
	case *DoWhileStatement:
		add(n.Body)
		add(n.Test)
	case *ForStatement:
		add(n.Init)
		add(n.Test)
		add(n.Update)
		add(n.Body)
	case *ForInStatement:
		add(n.Left)
		add(n.Right)
		add(n.Body)
	case *FunctionDeclaration:
		if n.ID != nil {
			add(n.ID)
		}
		for _, p := range n.Params {
			if p != nil {
				add(p)
			}
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *FunctionExpression:
		if n.ID != nil {
			add(n.ID)
		}
		for _, p := range n.Params {
			if p != nil {
				add(p)
			}
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			if d != nil {
				add(d)
			}
		}
	case *VariableDeclarator:
		if n.ID != nil {
			add(n.ID)
		}
		add(n.Init)
	case *ArrayExpression:
		for _, e := range n.Elements {
			add(e)
		}
	case *ObjectExpression:
		for _, p := range n.Properties {
			if p != nil {
				add(p)
			}
		}
	case *Property:
		add(n.Key)
		add(n.Value)
	case *SequenceExpression:
		for _, e := range n.Expressions {
			add(e)
		}
	case *UnaryExpression:
		add(n.Argument)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *AssignmentExpression:
		add(n.Left)
		add(n.Right)
	case *UpdateExpression:
		add(n.Argument)
	case *LogicalExpression:
		add(n.Left)
		add(n.Right)
	case *ConditionalExpression:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *NewExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *MemberExpression:
		add(n.Object)
		add(n.Property)
	case *EmptyStatement, *ThisExpression, *Identifier, *Literal:
		// leaves
	}
	return out
}

// Walk visits n and its descendants in pre-order. If pre returns false the
// children of the current node are skipped.
func Walk(n Node, pre func(Node) bool) {
	if n == nil {
		return
	}
	if !pre(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, pre)
	}
}
