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

package graphutil

import (
	"github.com/yourbasic/graph"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/awslabs/ar-js-tools/analysis/flow"
)

// HasCycle reports whether the flow graph contains a cycle. Loops in the
// analysed program produce cycles; straight-line programs do not.
func HasCycle(f FlowIterator) bool {
	for _, component := range graph.StrongComponents(f) {
		if len(component) >= 2 {
			return true
		}
	}
	// a strongly connected component of one node still cycles if the
	// node has a self edge
	selfLoop := false
	for v := 0; v < f.Order(); v++ {
		f.Visit(v, func(w int, c int64) bool {
			if w == v {
				selfLoop = true
				return true
			}
			return false
		})
		if selfLoop {
			return true
		}
	}
	return false
}

// LoopComponents returns the strongly connected components with at least
// two events: one per loop nest in the analysed program.
func LoopComponents(f FlowIterator) [][]flow.EventID {
	var out [][]flow.EventID
	for _, component := range graph.StrongComponents(f) {
		if len(component) < 2 {
			continue
		}
		ids := make([]flow.EventID, len(component))
		for i, v := range component {
			ids[i] = flow.EventID(v)
		}
		out = append(out, ids)
	}
	return out
}

// TopoOrder returns the event ids in a topological order of the flow
// graph. It fails when the graph has a cycle.
func TopoOrder(f FlowIterator) ([]flow.EventID, error) {
	sorted, err := topo.Sort(f)
	if err != nil {
		return nil, err
	}
	ids := make([]flow.EventID, len(sorted))
	for i, n := range sorted {
		ids[i] = flow.EventID(n.ID())
	}
	return ids, nil
}
