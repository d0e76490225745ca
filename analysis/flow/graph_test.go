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

	"github.com/awslabs/ar-js-tools/analysis/ast"
	"github.com/awslabs/ar-js-tools/analysis/flow"
	"github.com/awslabs/ar-js-tools/analysis/jsparse"
)

// TestProjectionRoundTrip checks that the shallow projections reconstruct
// the input tree: walking the projections from the root handle visits
// every node with the right kind, the right attributes and the children in
// the right order.
func TestProjectionRoundTrip(t *testing.T) {
	for _, src := range corpus {
		prog, err := jsparse.ParseSource(src)
		if err != nil {
			t.Fatalf("could not parse %q: %v", src, err)
		}
		g, err := flow.Analyse(prog)
		if err != nil {
			t.Fatalf("could not analyse %q: %v", src, err)
		}

		// replicate the graph's pre-order handle numbering
		handleOf := map[ast.Node]int{}
		var order []ast.Node
		ast.Walk(prog, func(n ast.Node) bool {
			handleOf[n] = len(order)
			order = append(order, n)
			return true
		})

		root := g.GetNode(0)
		if root == nil || root.NodeKind != ast.KindProgram {
			t.Fatalf("%q: root projection is %v", src, root)
		}
		for h, n := range order {
			proj := g.GetNode(h)
			if proj == nil {
				t.Fatalf("%q: no projection for handle %d", src, h)
			}
			if proj.NodeKind != n.Kind() {
				t.Errorf("%q: handle %d is %s, expected %s", src, h, proj.NodeKind, n.Kind())
			}
			if proj.Handle != h {
				t.Errorf("%q: projection of handle %d says %d", src, h, proj.Handle)
			}
			var got []int
			for _, f := range proj.Fields {
				for _, ch := range f.Handles {
					if ch != flow.HoleHandle {
						got = append(got, ch)
					}
				}
			}
			var want []int
			for _, c := range ast.Children(n) {
				want = append(want, handleOf[c])
			}
			if len(got) != len(want) {
				t.Errorf("%q: handle %d has %d projected children, expected %d", src, h, len(got), len(want))
				continue
			}
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("%q: handle %d child %d projected as %d, expected %d", src, h, i, got[i], want[i])
				}
			}
		}

		if g.GetNode(-1) != nil || g.GetNode(len(order)) != nil {
			t.Errorf("%q: out-of-range handles should project to nil", src)
		}
	}
}

func TestProjectionAttributes(t *testing.T) {
	g := mustAnalyse(t, "x = a + 1;")
	assign := findEvent(t, g, flow.PhaseEnter, ast.KindAssignmentExpression).Node()
	if assign.Attrs["operator"] != "=" {
		t.Errorf("assignment operator projected as %v", assign.Attrs["operator"])
	}
	binary := findEvent(t, g, flow.PhaseEnter, ast.KindBinaryExpression).Node()
	if binary.Attrs["operator"] != "+" {
		t.Errorf("binary operator projected as %v", binary.Attrs["operator"])
	}
	ident := findEvent(t, g, flow.PhaseEnter, ast.KindIdentifier).Node()
	if ident.Attrs["name"] != "x" {
		t.Errorf("first identifier projected as %v", ident.Attrs["name"])
	}
	lit := findEvent(t, g, flow.PhaseEnter, ast.KindLiteral).Node()
	if lit.Attrs["value"] != float64(1) {
		t.Errorf("literal value projected as %v", lit.Attrs["value"])
	}
	if f := binary.Field("left"); f == nil || !f.Single || len(f.Handles) != 1 {
		t.Errorf("binary left field not projected as a single child")
	}
	if binary.Field("nope") != nil {
		t.Errorf("unknown field should be nil")
	}
}

func TestEventNodeBinding(t *testing.T) {
	g := mustAnalyse(t, "f();")
	for _, ev := range g.Events() {
		if ev.Node() == nil {
			t.Errorf("event %s has no node projection", ev)
		}
	}
	if g.EventByID(flow.EventID(g.Size())) != nil {
		t.Errorf("out-of-range event ids should resolve to nil")
	}
}
