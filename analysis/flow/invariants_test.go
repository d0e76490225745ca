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

package flow_test

import (
	"testing"

	"github.com/awslabs/ar-js-tools/analysis/flow"
	"github.com/awslabs/ar-js-tools/internal/funcutil"
)

// corpus exercises every statement and expression rule at least once.
var corpus = []string{
	"",
	";",
	"{ helloWorld(); }",
	"var a = 1, b;",
	"x = y + z * 2;",
	"x += f(a, b.c, d['e']);",
	"this.x = new C(1)[i]++;",
	"var o = { a: 1, 'b c': g, 3: [1, , 2] };",
	"a && b || !c;",
	"x ? a() : b();",
	"(a, b, c);",
	"if (x) { hello(); } else { world(); }",
	"if (a) { p(); } if (b) { q(); } else { r(); }",
	"while (x) { f(); }",
	"do { f(); } while (x);",
	"for (var i = 0; i < n; i++) { use(i); }",
	"for (;;) { if (x) { break; } }",
	"for (var k in o) { visit(k); }",
	"with (o) { f(); }",
	"switch (x) { case 1: a(); case 2: b(); break; default: c(); }",
	"outer: while (a) { while (b) { if (c) { break outer; } continue; } }",
	"lbl: { if (x) { break lbl; } rest(); }",
	"throw boom;",
	"try { risky(); } catch (e) { log(e); }",
	"try { risky(); } finally { cleanup(); }",
	"try { throw e; } catch (e) { log(e); } finally { done(); }",
	"function y(){ return x; var x; } y();",
	"var f = function named() { return named; };",
	"function outer() { var a; function inner() { var b; return b; } return inner; }",
	"function f() { try { return 1; } finally { return 2; } }",
	"function f() { while (x) { try { break; } finally { g(); } } }",
}

func TestEdgeSymmetry(t *testing.T) {
	for _, src := range corpus {
		g := mustAnalyse(t, src)
		for _, ev := range g.Events() {
			for _, succ := range ev.ForwardFlows() {
				if !containsEvent(succ.BackwardFlows(), ev) {
					t.Errorf("%q: edge %s -> %s missing backward direction", src, ev, succ)
				}
			}
			for _, pred := range ev.BackwardFlows() {
				if !containsEvent(pred.ForwardFlows(), ev) {
					t.Errorf("%q: edge %s -> %s missing forward direction", src, pred, ev)
				}
			}
		}
	}
}

func TestPhasePartition(t *testing.T) {
	for _, src := range corpus {
		g := mustAnalyse(t, src)
		for _, ev := range g.Events() {
			count := 0
			for _, is := range []bool{ev.IsHoist(), ev.IsEnter(), ev.IsExit()} {
				if is {
					count++
				}
			}
			if count != 1 {
				t.Errorf("%q: event %s is in %d phases", src, ev, count)
			}
		}
	}
}

func TestEventIDsUnique(t *testing.T) {
	for _, src := range corpus {
		g := mustAnalyse(t, src)
		seen := map[flow.EventID]bool{}
		for _, ev := range g.Events() {
			if seen[ev.ID()] {
				t.Errorf("%q: duplicate event id %s", src, ev.ID())
			}
			seen[ev.ID()] = true
		}
	}
}

// TestEnterExitPairs checks that every node referenced by any event has
// both an enter and an exit event, and at most one event per phase.
func TestEnterExitPairs(t *testing.T) {
	for _, src := range corpus {
		g := mustAnalyse(t, src)
		phases := map[int]map[flow.Phase]int{}
		for _, ev := range g.Events() {
			h := ev.Node().Handle
			if phases[h] == nil {
				phases[h] = map[flow.Phase]int{}
			}
			phases[h][ev.Phase()]++
		}
		for _, h := range funcutil.SortedKeys(phases) {
			byPhase := phases[h]
			if byPhase[flow.PhaseEnter] != 1 || byPhase[flow.PhaseExit] != 1 {
				t.Errorf("%q: node %d has %d enter and %d exit events",
					src, h, byPhase[flow.PhaseEnter], byPhase[flow.PhaseExit])
			}
			if byPhase[flow.PhaseHoist] > 1 {
				t.Errorf("%q: node %d hoisted %d times", src, h, byPhase[flow.PhaseHoist])
			}
		}
	}
}

// TestHoistsPrecedeScopeEntry checks that program-scope hoists are chained
// before the program's enter event, and that no hoist follows it.
func TestHoistsPrecedeScopeEntry(t *testing.T) {
	for _, src := range corpus {
		g := mustAnalyse(t, src)
		progEnter := g.EndOfFlow() // placeholder, replaced below
		for _, ev := range g.Events() {
			if ev.IsEnter() && ev.Node().Handle == 0 {
				progEnter = ev
				break
			}
		}
		fromEnter := flow.ReachableFrom(progEnter)
		for _, ev := range g.Events() {
			if !ev.IsHoist() {
				continue
			}
			if fromEnter.Has(int(ev.ID())) {
				t.Errorf("%q: hoist %s is reachable from a scope entry it should precede", src, ev)
			}
			if ev.NumForward() == 0 {
				t.Errorf("%q: hoist %s is terminal", src, ev)
			}
		}
	}
}

func TestStartAndEnd(t *testing.T) {
	for _, src := range corpus {
		g := mustAnalyse(t, src)
		start, end := g.StartOfFlow(), g.EndOfFlow()
		if start.IsExit() {
			t.Errorf("%q: start of flow is an exit event", src)
		}
		if !end.IsExit() {
			t.Errorf("%q: end of flow is not an exit event", src)
		}
		if end.NumForward() != 0 {
			t.Errorf("%q: end of flow is not terminal", src)
		}
	}
}

func containsEvent(events []*flow.FlowEvent, ev *flow.FlowEvent) bool {
	for _, e := range events {
		if e.ID() == ev.ID() {
			return true
		}
	}
	return false
}
