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

import (
	"github.com/awslabs/ar-js-tools/analysis/ast"
	"github.com/awslabs/ar-js-tools/analysis/config"
)

// Analyse builds the control flow graph of prog. The tree is held
// read-only by the returned graph and must outlive it. Construction fails
// with an ast.MalformedError on structural violations and with an
// UnresolvedJumpError on jumps without a target.
func Analyse(prog *ast.Program) (*Graph, error) {
	return AnalyseWithLog(nil, prog)
}

// AnalyseWithLog is Analyse with construction-time logging. A nil logger
// disables logging.
func AnalyseWithLog(logger *config.LogGroup, prog *ast.Program) (*Graph, error) {
	if prog == nil {
		return nil, &ast.MalformedError{Reason: "nil program"}
	}
	g := newGraph(prog)
	b := &builder{
		g:            g,
		log:          logger,
		enters:       map[ast.Node]EventID{},
		exits:        map[ast.Node]EventID{},
		hoistOf:      map[ast.Node]EventID{},
		premadeEnter: map[ast.Node]EventID{},
		premadeExit:  map[ast.Node]EventID{},
	}
	if err := b.buildProgram(prog); err != nil {
		return nil, err
	}
	b.logf("built flow graph: %d events", len(g.events))
	return g, nil
}

// builder performs the straight recursive traversal that turns the tree
// into a graph. It is the sole owner of the graph until Analyse returns.
type builder struct {
	g   *Graph
	log *config.LogGroup

	// frames is the stack of enclosing constructs that are jump targets
	frames []*frame

	// pendingLabels accumulates labels of enclosing labeled statements
	// until the next loop or switch claims them
	pendingLabels []string

	// enters and exits record each wired node's boundary events
	enters map[ast.Node]EventID
	exits  map[ast.Node]EventID

	// hoistOf maps a function declaration to its hoist event
	hoistOf map[ast.Node]EventID

	// premadeEnter and premadeExit hold boundary events created before
	// their node is wired, such as a finalizer entered by jumps wired
	// earlier or a loop exit targeted by break
	premadeEnter map[ast.Node]EventID
	premadeExit  map[ast.Node]EventID
}

func (b *builder) logf(format string, args ...interface{}) {
	if b.log != nil {
		b.log.Debugf(format, args...)
	}
}

// enterOf creates the enter event of n, or adopts the one premade for it.
func (b *builder) enterOf(n ast.Node) EventID {
	if ev, ok := b.premadeEnter[n]; ok {
		delete(b.premadeEnter, n)
		b.enters[n] = ev
		return ev
	}
	ev := b.g.create(PhaseEnter, n)
	b.enters[n] = ev
	return ev
}

// premakeEnter creates the enter event of n ahead of its wiring, so that
// edges into n can be recorded first.
func (b *builder) premakeEnter(n ast.Node) EventID {
	if ev, ok := b.premadeEnter[n]; ok {
		return ev
	}
	ev := b.g.create(PhaseEnter, n)
	b.premadeEnter[n] = ev
	return ev
}

// exitOf creates the exit event of n, or adopts the one premade for it.
func (b *builder) exitOf(n ast.Node) EventID {
	if ev, ok := b.premadeExit[n]; ok {
		delete(b.premadeExit, n)
		b.exits[n] = ev
		return ev
	}
	ev := b.g.create(PhaseExit, n)
	b.exits[n] = ev
	return ev
}

// premakeExit creates the exit event of n ahead of its wiring.
func (b *builder) premakeExit(n ast.Node) EventID {
	if ev, ok := b.premadeExit[n]; ok {
		return ev
	}
	ev := b.g.create(PhaseExit, n)
	b.premadeExit[n] = ev
	return ev
}

// buildProgram emits the program hoist phase, wires the program body, and
// designates the start and end events.
func (b *builder) buildProgram(prog *ast.Program) error {
	firstHoist, lastHoist := b.emitHoists(collectHoists(prog.Body))

	enter := b.enterOf(prog)
	exit := b.exitOf(prog)
	if lastHoist != eventNone {
		b.g.link(lastHoist, enter)
		b.g.start = firstHoist
	} else {
		b.g.start = enter
	}
	b.g.end = exit

	pf := newFrame(frameProgram)
	pf.throwTo = exit
	b.pushFrame(pf)
	defer b.popFrame()

	out, err := b.wireSeq(prog.Body, []EventID{enter})
	if err != nil {
		return err
	}
	b.g.linkAll(out, exit)
	return nil
}

// buildFunctionRegion wires a function body as an independent sub-graph
// and returns its root: the first hoist event of the function scope, or
// the body's enter event when the scope hoists nothing. The region is
// reachable only through the declaration's hoist event or the expression's
// enter event, never by falling into it.
func (b *builder) buildFunctionRegion(body *ast.BlockStatement) (EventID, error) {
	if body == nil {
		return eventNone, &ast.MalformedError{Kind: ast.KindFunctionDeclaration, Reason: "function has no body"}
	}
	firstHoist, lastHoist := b.emitHoists(collectHoists(body.Body))

	bodyEnter := b.premakeEnter(body)
	bodyExit := b.premakeExit(body)

	ff := newFrame(frameFunction)
	ff.returnTo = bodyExit
	ff.throwTo = bodyExit
	b.pushFrame(ff)
	defer b.popFrame()

	// labels do not cross function boundaries
	savedLabels := b.pendingLabels
	b.pendingLabels = nil
	defer func() { b.pendingLabels = savedLabels }()

	var in []EventID
	if lastHoist != eventNone {
		in = []EventID{lastHoist}
	}
	if _, err := b.wire(body, in); err != nil {
		return eventNone, err
	}

	if firstHoist != eventNone {
		return firstHoist, nil
	}
	return bodyEnter, nil
}

// wireSeq wires stmts left to right: the outgoing set of each child is the
// incoming set of the next. Statements past a non-returning one are still
// wired, with an empty incoming set.
func (b *builder) wireSeq(stmts []ast.Node, in []EventID) ([]EventID, error) {
	cur := in
	for _, s := range stmts {
		var err error
		cur, err = b.wire(s, cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// mergeOuts unions two outgoing edge sets, preserving first-seen order.
func mergeOuts(a, b []EventID) []EventID {
	out := a
	for _, id := range b {
		dup := false
		for _, x := range out {
			if x == id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, id)
		}
	}
	return out
}
