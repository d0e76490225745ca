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

// Expressions are wired in ES5 evaluation order: left before right for
// binary operators, callee before each argument for calls, object before
// property for member accesses. Expressions cannot jump, so every rule
// here completes with a reachable exit.

func (b *builder) wireSequence(n *ast.SequenceExpression, in []EventID) ([]EventID, error) {
	if len(n.Expressions) == 0 {
		return nil, ast.Malformed(ast.KindSequenceExpression, "empty sequence")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	cur := []EventID{enter}
	var err error
	for _, e := range n.Expressions {
		cur, err = b.wire(e, cur)
		if err != nil {
			return nil, err
		}
	}
	exit := b.exitOf(n)
	b.g.linkAll(cur, exit)
	return []EventID{exit}, nil
}

func (b *builder) wireUnary(n *ast.UnaryExpression, in []EventID) ([]EventID, error) {
	if n.Argument == nil {
		return nil, ast.Malformed(ast.KindUnaryExpression, "missing argument")
	}
	return b.wireInterior(n, in, n.Argument)
}

func (b *builder) wireUpdate(n *ast.UpdateExpression, in []EventID) ([]EventID, error) {
	if n.Argument == nil {
		return nil, ast.Malformed(ast.KindUpdateExpression, "missing argument")
	}
	return b.wireInterior(n, in, n.Argument)
}

func (b *builder) wireBinary(n *ast.BinaryExpression, in []EventID) ([]EventID, error) {
	if n.Left == nil || n.Right == nil {
		return nil, ast.Malformed(ast.KindBinaryExpression, "missing operand")
	}
	return b.wireInterior(n, in, n.Left, n.Right)
}

func (b *builder) wireAssignment(n *ast.AssignmentExpression, in []EventID) ([]EventID, error) {
	if n.Left == nil || n.Right == nil {
		return nil, ast.Malformed(ast.KindAssignmentExpression, "missing operand")
	}
	return b.wireInterior(n, in, n.Left, n.Right)
}

func (b *builder) wireMember(n *ast.MemberExpression, in []EventID) ([]EventID, error) {
	if n.Object == nil || n.Property == nil {
		return nil, ast.Malformed(ast.KindMemberExpression, "missing object or property")
	}
	return b.wireInterior(n, in, n.Object, n.Property)
}

func (b *builder) wireCallLike(n ast.Node, callee ast.Node, args []ast.Node, in []EventID) ([]EventID, error) {
	if callee == nil {
		return nil, ast.Malformed(n.Kind(), "missing callee")
	}
	children := append([]ast.Node{callee}, args...)
	return b.wireInterior(n, in, children...)
}

func (b *builder) wireArray(n *ast.ArrayExpression, in []EventID) ([]EventID, error) {
	var elems []ast.Node
	for _, e := range n.Elements {
		if e != nil {
			elems = append(elems, e)
		}
	}
	return b.wireInterior(n, in, elems...)
}

func (b *builder) wireObject(n *ast.ObjectExpression, in []EventID) ([]EventID, error) {
	var props []ast.Node
	for _, p := range n.Properties {
		if p == nil {
			return nil, ast.Malformed(ast.KindObjectExpression, "nil property")
		}
		props = append(props, p)
	}
	return b.wireInterior(n, in, props...)
}

// wireProperty evaluates only the value; ES5 property keys are static.
func (b *builder) wireProperty(n *ast.Property, in []EventID) ([]EventID, error) {
	if n.Value == nil {
		return nil, ast.Malformed(ast.KindProperty, "missing value")
	}
	return b.wireInterior(n, in, n.Value)
}

// wireLogical forks after the left operand: either the right operand is
// evaluated or the whole expression completes short-circuited.
func (b *builder) wireLogical(n *ast.LogicalExpression, in []EventID) ([]EventID, error) {
	if n.Left == nil || n.Right == nil {
		return nil, ast.Malformed(ast.KindLogicalExpression, "missing operand")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	leftOut, err := b.wire(n.Left, []EventID{enter})
	if err != nil {
		return nil, err
	}
	rightOut, err := b.wire(n.Right, leftOut)
	if err != nil {
		return nil, err
	}
	exit := b.exitOf(n)
	b.g.linkAll(leftOut, exit)
	b.g.linkAll(rightOut, exit)
	return []EventID{exit}, nil
}

// wireConditional forks after the test to the consequent or the alternate;
// both flow into the exit.
func (b *builder) wireConditional(n *ast.ConditionalExpression, in []EventID) ([]EventID, error) {
	if n.Test == nil || n.Consequent == nil || n.Alternate == nil {
		return nil, ast.Malformed(ast.KindConditionalExpression, "missing operand")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	testOut, err := b.wire(n.Test, []EventID{enter})
	if err != nil {
		return nil, err
	}
	consOut, err := b.wire(n.Consequent, testOut)
	if err != nil {
		return nil, err
	}
	altOut, err := b.wire(n.Alternate, testOut)
	if err != nil {
		return nil, err
	}
	exit := b.exitOf(n)
	b.g.linkAll(consOut, exit)
	b.g.linkAll(altOut, exit)
	return []EventID{exit}, nil
}

// wireFunctionExpression wires the site as a plain value and forks the
// enter event into the body's region, which is where the body becomes
// reachable.
func (b *builder) wireFunctionExpression(n *ast.FunctionExpression, in []EventID) ([]EventID, error) {
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	exit := b.exitOf(n)
	b.g.link(enter, exit)

	root, err := b.buildFunctionRegion(n.Body)
	if err != nil {
		return nil, err
	}
	b.g.link(enter, root)
	return []EventID{exit}, nil
}

// wireInterior sequences children between the node's enter and exit.
func (b *builder) wireInterior(n ast.Node, in []EventID, children ...ast.Node) ([]EventID, error) {
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	cur := []EventID{enter}
	var err error
	for _, c := range children {
		cur, err = b.wire(c, cur)
		if err != nil {
			return nil, err
		}
	}
	exit := b.exitOf(n)
	b.g.linkAll(cur, exit)
	return []EventID{exit}, nil
}
