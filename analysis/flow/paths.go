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
	"math"

	"golang.org/x/tools/container/intsets"
)

// CountTerminatingPaths counts the distinct paths from the graph's start
// event to any terminal event. The count is taken over the syntactic
// over-approximation: both sides of every fork are counted. A revisit of
// an event already on the current path means a loop, and the count is
// +Inf.
func CountTerminatingPaths(g *Graph) float64 {
	var onPath intsets.Sparse
	return countPathsFrom(g.StartOfFlow(), &onPath)
}

func countPathsFrom(ev *FlowEvent, onPath *intsets.Sparse) float64 {
	id := int(ev.ID())
	if !onPath.Insert(id) {
		return math.Inf(1)
	}
	defer onPath.Remove(id)

	next := ev.ForwardFlows()
	if len(next) == 0 {
		return 1
	}
	total := 0.0
	for _, succ := range next {
		total += countPathsFrom(succ, onPath)
	}
	return total
}

// ReachableFrom returns the set of event ids reachable from ev by forward
// edges, including ev itself.
func ReachableFrom(ev *FlowEvent) *intsets.Sparse {
	seen := &intsets.Sparse{}
	work := []*FlowEvent{ev}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		if !seen.Insert(int(cur.ID())) {
			continue
		}
		work = append(work, cur.ForwardFlows()...)
	}
	return seen
}
