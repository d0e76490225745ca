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

package flow

import "github.com/awslabs/ar-js-tools/analysis/ast"

// wire is the per-kind rule dispatch. Given the incoming edge set that
// should flow into n's enter event, it creates the node's events, wires
// the interior, and returns the outgoing edge set leaving the node: the
// exit event when the node can complete normally, nil when it cannot.
//
// The kind enumeration is closed; a node outside it is a malformed tree,
// never a silent no-op.
//
//gocyclo:ignore
func (b *builder) wire(n ast.Node, in []EventID) ([]EventID, error) {
	switch n := n.(type) {
	case *ast.BlockStatement:
		return b.wireBlock(n, in)
	case *ast.EmptyStatement:
		return b.wireLeaf(n, in), nil
	case *ast.ExpressionStatement:
		return b.wireExpressionStatement(n, in)
	case *ast.IfStatement:
		return b.wireIf(n, in)
	case *ast.LabeledStatement:
		return b.wireLabeled(n, in)
	case *ast.BreakStatement:
		return b.wireBreak(n, in)
	case *ast.ContinueStatement:
		return b.wireContinue(n, in)
	case *ast.WithStatement:
		return b.wireWith(n, in)
	case *ast.SwitchStatement:
		return b.wireSwitch(n, in)
	case *ast.ReturnStatement:
		return b.wireReturn(n, in)
	case *ast.ThrowStatement:
		return b.wireThrow(n, in)
	case *ast.TryStatement:
		return b.wireTry(n, in)
	case *ast.CatchClause:
		return b.wireCatch(n, in)
	case *ast.WhileStatement:
		return b.wireWhile(n, in)
	case *ast.DoWhileStatement:
		return b.wireDoWhile(n, in)
	case *ast.ForStatement:
		return b.wireFor(n, in)
	case *ast.ForInStatement:
		return b.wireForIn(n, in)
	case *ast.FunctionDeclaration:
		return b.wireFunctionDeclaration(n, in)
	case *ast.VariableDeclaration:
		return b.wireVariableDeclaration(n, in)
	case *ast.VariableDeclarator:
		return b.wireVariableDeclarator(n, in)
	case *ast.ThisExpression:
		return b.wireLeaf(n, in), nil
	case *ast.ArrayExpression:
		return b.wireArray(n, in)
	case *ast.ObjectExpression:
		return b.wireObject(n, in)
	case *ast.Property:
		return b.wireProperty(n, in)
	case *ast.FunctionExpression:
		return b.wireFunctionExpression(n, in)
	case *ast.SequenceExpression:
		return b.wireSequence(n, in)
	case *ast.UnaryExpression:
		return b.wireUnary(n, in)
	case *ast.BinaryExpression:
		return b.wireBinary(n, in)
	case *ast.AssignmentExpression:
		return b.wireAssignment(n, in)
	case *ast.UpdateExpression:
		return b.wireUpdate(n, in)
	case *ast.LogicalExpression:
		return b.wireLogical(n, in)
	case *ast.ConditionalExpression:
		return b.wireConditional(n, in)
	case *ast.CallExpression:
		return b.wireCallLike(n, n.Callee, n.Arguments, in)
	case *ast.NewExpression:
		return b.wireCallLike(n, n.Callee, n.Arguments, in)
	case *ast.MemberExpression:
		return b.wireMember(n, in)
	case *ast.Identifier:
		return b.wireLeaf(n, in), nil
	case *ast.Literal:
		return b.wireLeaf(n, in), nil
	case nil:
		return nil, &ast.MalformedError{Reason: "nil node"}
	default:
		return nil, &ast.MalformedError{Reason: "unknown node kind " + string(n.Kind())}
	}
}

// wireLeaf wires an event-less node kind: enter flowing straight to exit.
func (b *builder) wireLeaf(n ast.Node, in []EventID) []EventID {
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	exit := b.exitOf(n)
	b.g.link(enter, exit)
	return []EventID{exit}
}

// outIfReached returns {exit} when any edge reached the exit event, nil
// otherwise. Called after all interior links into exit are recorded; a
// node whose exit stayed unreached cannot complete normally, and the
// statements after it are wired with an empty incoming set.
func (b *builder) outIfReached(exit EventID) []EventID {
	if len(b.g.events[exit].backward) == 0 {
		return nil
	}
	return []EventID{exit}
}
