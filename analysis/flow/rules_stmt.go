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

func (b *builder) wireBlock(n *ast.BlockStatement, in []EventID) ([]EventID, error) {
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	out, err := b.wireSeq(n.Body, []EventID{enter})
	if err != nil {
		return nil, err
	}
	exit := b.exitOf(n)
	b.g.linkAll(out, exit)
	return b.outIfReached(exit), nil
}

func (b *builder) wireExpressionStatement(n *ast.ExpressionStatement, in []EventID) ([]EventID, error) {
	if n.Expression == nil {
		return nil, ast.Malformed(ast.KindExpressionStatement, "missing expression")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	out, err := b.wire(n.Expression, []EventID{enter})
	if err != nil {
		return nil, err
	}
	exit := b.exitOf(n)
	b.g.linkAll(out, exit)
	return b.outIfReached(exit), nil
}

// wireIf forks after the test to the consequent and, when present, the
// alternate; with no alternate the false edge reaches the exit directly.
// Both branch outputs join at the exit.
func (b *builder) wireIf(n *ast.IfStatement, in []EventID) ([]EventID, error) {
	if n.Test == nil || n.Consequent == nil {
		return nil, ast.Malformed(ast.KindIfStatement, "missing test or consequent")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	testOut, err := b.wire(n.Test, []EventID{enter})
	if err != nil {
		return nil, err
	}
	exit := b.exitOf(n)
	consOut, err := b.wire(n.Consequent, testOut)
	if err != nil {
		return nil, err
	}
	joined := consOut
	if n.Alternate != nil {
		altOut, err := b.wire(n.Alternate, testOut)
		if err != nil {
			return nil, err
		}
		joined = mergeOuts(joined, altOut)
	} else {
		joined = mergeOuts(joined, testOut)
	}
	b.g.linkAll(joined, exit)
	return b.outIfReached(exit), nil
}

// wireLabeled attaches the label to the inner loop or switch when the body
// is one, so that break and continue can address it; a label on any other
// statement becomes its own break target.
func (b *builder) wireLabeled(n *ast.LabeledStatement, in []EventID) ([]EventID, error) {
	if n.Label == nil || n.Body == nil {
		return nil, ast.Malformed(ast.KindLabeledStatement, "missing label or body")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	exit := b.exitOf(n)

	b.pendingLabels = append(b.pendingLabels, n.Label.Name)
	var bodyOut []EventID
	var err error
	switch n.Body.(type) {
	case *ast.WhileStatement, *ast.DoWhileStatement, *ast.ForStatement,
		*ast.ForInStatement, *ast.SwitchStatement, *ast.LabeledStatement:
		bodyOut, err = b.wire(n.Body, []EventID{enter})
	default:
		f := newFrame(frameLabel)
		f.labels = b.takeLabels()
		f.breakTo = exit
		b.pushFrame(f)
		bodyOut, err = b.wire(n.Body, []EventID{enter})
		b.popFrame()
	}
	if err != nil {
		return nil, err
	}
	b.g.linkAll(bodyOut, exit)
	return b.outIfReached(exit), nil
}

func (b *builder) wireBreak(n *ast.BreakStatement, in []EventID) ([]EventID, error) {
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	label := ""
	if n.Label != nil {
		label = n.Label.Name
	}
	idx, target, err := b.resolveBreak(label)
	if err != nil {
		return nil, err
	}
	b.routeJump(enter, idx, target)
	b.exitOf(n)
	return nil, nil
}

func (b *builder) wireContinue(n *ast.ContinueStatement, in []EventID) ([]EventID, error) {
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	label := ""
	if n.Label != nil {
		label = n.Label.Name
	}
	idx, target, err := b.resolveContinue(label)
	if err != nil {
		return nil, err
	}
	b.routeJump(enter, idx, target)
	b.exitOf(n)
	return nil, nil
}

func (b *builder) wireWith(n *ast.WithStatement, in []EventID) ([]EventID, error) {
	if n.Object == nil || n.Body == nil {
		return nil, ast.Malformed(ast.KindWithStatement, "missing object or body")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	objOut, err := b.wire(n.Object, []EventID{enter})
	if err != nil {
		return nil, err
	}
	bodyOut, err := b.wire(n.Body, objOut)
	if err != nil {
		return nil, err
	}
	exit := b.exitOf(n)
	b.g.linkAll(bodyOut, exit)
	return b.outIfReached(exit), nil
}

// wireSwitch chains the case tests after the discriminant; each test forks
// to its own consequent or to the next test. The default case keeps its
// lexical position in the fall-through chain but is entered when every
// other test failed.
func (b *builder) wireSwitch(n *ast.SwitchStatement, in []EventID) ([]EventID, error) {
	if n.Discriminant == nil {
		return nil, ast.Malformed(ast.KindSwitchStatement, "missing discriminant")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	exit := b.exitOf(n)
	discOut, err := b.wire(n.Discriminant, []EventID{enter})
	if err != nil {
		return nil, err
	}

	caseEnter := make(map[*ast.SwitchCase]EventID, len(n.Cases))
	for _, c := range n.Cases {
		caseEnter[c] = b.premakeEnter(c)
	}

	f := newFrame(frameSwitch)
	f.labels = b.takeLabels()
	f.breakTo = exit
	b.pushFrame(f)
	defer b.popFrame()

	// test chain
	falseIn := discOut
	var defaultCase *ast.SwitchCase
	for _, c := range n.Cases {
		if c.Test == nil {
			if defaultCase != nil {
				return nil, ast.Malformed(ast.KindSwitchStatement, "multiple default cases")
			}
			defaultCase = c
			continue
		}
		testOut, err := b.wire(c.Test, falseIn)
		if err != nil {
			return nil, err
		}
		b.g.linkAll(testOut, caseEnter[c])
		falseIn = testOut
	}
	if defaultCase != nil {
		b.g.linkAll(falseIn, caseEnter[defaultCase])
	} else {
		b.g.linkAll(falseIn, exit)
	}

	// fall-through chain in lexical order
	var fall []EventID
	for _, c := range n.Cases {
		ce := b.enterOf(c)
		b.g.linkAll(fall, ce)
		caseOut, err := b.wireSeq(c.Consequent, []EventID{ce})
		if err != nil {
			return nil, err
		}
		caseExit := b.exitOf(c)
		b.g.linkAll(caseOut, caseExit)
		fall = b.outIfReached(caseExit)
	}
	b.g.linkAll(fall, exit)
	return b.outIfReached(exit), nil
}

func (b *builder) wireReturn(n *ast.ReturnStatement, in []EventID) ([]EventID, error) {
	cur := in
	if n.Argument != nil {
		var err error
		cur, err = b.wire(n.Argument, in)
		if err != nil {
			return nil, err
		}
	}
	enter := b.enterOf(n)
	b.g.linkAll(cur, enter)
	idx, target, err := b.resolveReturn()
	if err != nil {
		return nil, err
	}
	b.routeJump(enter, idx, target)
	b.exitOf(n)
	return nil, nil
}

// wireThrow routes the throw to the nearest syntactically enclosing catch
// clause, through any intervening finalizers, or to the scope's throw sink
// when no catch encloses it.
func (b *builder) wireThrow(n *ast.ThrowStatement, in []EventID) ([]EventID, error) {
	if n.Argument == nil {
		return nil, ast.Malformed(ast.KindThrowStatement, "missing argument")
	}
	cur, err := b.wire(n.Argument, in)
	if err != nil {
		return nil, err
	}
	enter := b.enterOf(n)
	b.g.linkAll(cur, enter)
	idx, target := b.resolveThrow()
	b.routeJump(enter, idx, target)
	b.exitOf(n)
	return nil, nil
}

// wireTry wires the protected block with the handler as throw target, the
// handler with throws escaping outward, and the finalizer joined by every
// normal and abnormal path that crosses it. When the finalizer itself
// cannot complete normally its abnormal exit replaces every pending jump.
func (b *builder) wireTry(n *ast.TryStatement, in []EventID) ([]EventID, error) {
	if n.Block == nil {
		return nil, ast.Malformed(ast.KindTryStatement, "missing block")
	}
	if n.Handler == nil && n.Finalizer == nil {
		return nil, ast.Malformed(ast.KindTryStatement, "requires a handler or a finalizer")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	exit := b.exitOf(n)

	tf := newFrame(frameTry)
	if n.Handler != nil {
		tf.catchTo = b.premakeEnter(n.Handler)
	}
	if n.Finalizer != nil {
		tf.finallyTo = b.premakeEnter(n.Finalizer)
	}
	b.pushFrame(tf)
	defer b.popFrame()

	bodyOut, err := b.wire(n.Block, []EventID{enter})
	if err != nil {
		return nil, err
	}

	var catchOut []EventID
	if n.Handler != nil {
		// a throw inside the handler no longer binds to this try
		tf.catchTo = eventNone
		catchOut, err = b.wire(n.Handler, nil)
		if err != nil {
			return nil, err
		}
	}

	normal := mergeOuts(bodyOut, catchOut)
	if n.Finalizer != nil {
		// jumps inside the finalizer resolve past it
		tf.finallyTo = eventNone
		finOut, err := b.wire(n.Finalizer, normal)
		if err != nil {
			return nil, err
		}
		if len(normal) > 0 {
			b.g.linkAll(finOut, exit)
		}
		for _, t := range tf.pending {
			b.g.linkAll(finOut, t)
		}
	} else {
		b.g.linkAll(normal, exit)
	}
	return b.outIfReached(exit), nil
}

func (b *builder) wireCatch(n *ast.CatchClause, in []EventID) ([]EventID, error) {
	if n.Body == nil {
		return nil, ast.Malformed(ast.KindCatchClause, "missing body")
	}
	// the parameter is a binding, never evaluated
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	bodyOut, err := b.wire(n.Body, []EventID{enter})
	if err != nil {
		return nil, err
	}
	exit := b.exitOf(n)
	b.g.linkAll(bodyOut, exit)
	return b.outIfReached(exit), nil
}

// wireWhile makes the test the loop header: its true edge enters the body,
// its false edge leaves the loop, and the body's completion re-enters the
// test.
func (b *builder) wireWhile(n *ast.WhileStatement, in []EventID) ([]EventID, error) {
	if n.Test == nil || n.Body == nil {
		return nil, ast.Malformed(ast.KindWhileStatement, "missing test or body")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	testOut, err := b.wire(n.Test, []EventID{enter})
	if err != nil {
		return nil, err
	}
	exit := b.exitOf(n)

	f := newFrame(frameLoop)
	f.labels = b.takeLabels()
	f.breakTo = exit
	f.continueTo = b.enters[n.Test]
	b.pushFrame(f)
	bodyOut, err := b.wire(n.Body, testOut)
	b.popFrame()
	if err != nil {
		return nil, err
	}
	b.g.linkAll(bodyOut, b.enters[n.Test])
	b.g.linkAll(testOut, exit)
	return b.outIfReached(exit), nil
}

func (b *builder) wireDoWhile(n *ast.DoWhileStatement, in []EventID) ([]EventID, error) {
	if n.Test == nil || n.Body == nil {
		return nil, ast.Malformed(ast.KindDoWhileStatement, "missing test or body")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	exit := b.exitOf(n)

	f := newFrame(frameLoop)
	f.labels = b.takeLabels()
	f.breakTo = exit
	f.continueTo = b.premakeEnter(n.Test)
	b.pushFrame(f)
	bodyOut, err := b.wire(n.Body, []EventID{enter})
	b.popFrame()
	if err != nil {
		return nil, err
	}
	testOut, err := b.wire(n.Test, bodyOut)
	if err != nil {
		return nil, err
	}
	b.g.linkAll(testOut, b.enters[n.Body])
	b.g.linkAll(testOut, exit)
	return b.outIfReached(exit), nil
}

// wireFor treats a missing test as always true: no edge leaves the loop
// from the test position. continue targets the update when present, the
// test otherwise, and the body itself when the loop has neither.
func (b *builder) wireFor(n *ast.ForStatement, in []EventID) ([]EventID, error) {
	if n.Body == nil {
		return nil, ast.Malformed(ast.KindForStatement, "missing body")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	exit := b.exitOf(n)

	cur := []EventID{enter}
	var err error
	if n.Init != nil {
		cur, err = b.wire(n.Init, cur)
		if err != nil {
			return nil, err
		}
	}
	var testOut []EventID
	forkIn := cur
	if n.Test != nil {
		testOut, err = b.wire(n.Test, cur)
		if err != nil {
			return nil, err
		}
		forkIn = testOut
	}

	f := newFrame(frameLoop)
	f.labels = b.takeLabels()
	f.breakTo = exit
	switch {
	case n.Update != nil:
		f.continueTo = b.premakeEnter(n.Update)
	case n.Test != nil:
		f.continueTo = b.enters[n.Test]
	default:
		f.continueTo = b.premakeEnter(n.Body)
	}
	b.pushFrame(f)
	bodyOut, err := b.wire(n.Body, forkIn)
	b.popFrame()
	if err != nil {
		return nil, err
	}

	afterBody := bodyOut
	if n.Update != nil {
		afterBody, err = b.wire(n.Update, bodyOut)
		if err != nil {
			return nil, err
		}
	}
	if n.Test != nil {
		b.g.linkAll(afterBody, b.enters[n.Test])
		b.g.linkAll(testOut, exit)
	} else {
		b.g.linkAll(afterBody, b.enters[n.Body])
	}
	return b.outIfReached(exit), nil
}

// wireForIn uses the left-hand side as the per-iteration step: after the
// right expression, the left's events stand for fetching the next key and
// binding it, forking to the body or out of the loop when the keys are
// exhausted.
func (b *builder) wireForIn(n *ast.ForInStatement, in []EventID) ([]EventID, error) {
	if n.Left == nil || n.Right == nil || n.Body == nil {
		return nil, ast.Malformed(ast.KindForInStatement, "missing left, right or body")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	exit := b.exitOf(n)

	rightOut, err := b.wire(n.Right, []EventID{enter})
	if err != nil {
		return nil, err
	}
	leftOut, err := b.wire(n.Left, rightOut)
	if err != nil {
		return nil, err
	}

	f := newFrame(frameLoop)
	f.labels = b.takeLabels()
	f.breakTo = exit
	f.continueTo = b.enters[n.Left]
	b.pushFrame(f)
	bodyOut, err := b.wire(n.Body, leftOut)
	b.popFrame()
	if err != nil {
		return nil, err
	}
	b.g.linkAll(bodyOut, b.enters[n.Left])
	b.g.linkAll(leftOut, exit)
	return b.outIfReached(exit), nil
}

// wireFunctionDeclaration wires the declaration site as a no-op and roots
// the function's body region at the declaration's hoist event.
func (b *builder) wireFunctionDeclaration(n *ast.FunctionDeclaration, in []EventID) ([]EventID, error) {
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	exit := b.exitOf(n)
	b.g.link(enter, exit)

	root, err := b.buildFunctionRegion(n.Body)
	if err != nil {
		return nil, err
	}
	if hoistEv, ok := b.hoistOf[n]; ok {
		b.g.link(hoistEv, root)
	}
	return []EventID{exit}, nil
}

func (b *builder) wireVariableDeclaration(n *ast.VariableDeclaration, in []EventID) ([]EventID, error) {
	if len(n.Declarations) == 0 {
		return nil, ast.Malformed(ast.KindVariableDeclaration, "no declarators")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	cur := []EventID{enter}
	var err error
	for _, d := range n.Declarations {
		cur, err = b.wire(d, cur)
		if err != nil {
			return nil, err
		}
	}
	exit := b.exitOf(n)
	b.g.linkAll(cur, exit)
	return []EventID{exit}, nil
}

func (b *builder) wireVariableDeclarator(n *ast.VariableDeclarator, in []EventID) ([]EventID, error) {
	if n.ID == nil {
		return nil, ast.Malformed(ast.KindVariableDeclarator, "missing id")
	}
	enter := b.enterOf(n)
	b.g.linkAll(in, enter)
	cur := []EventID{enter}
	if n.Init != nil {
		var err error
		cur, err = b.wire(n.Init, cur)
		if err != nil {
			return nil, err
		}
	}
	exit := b.exitOf(n)
	b.g.linkAll(cur, exit)
	return []EventID{exit}, nil
}
