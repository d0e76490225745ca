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
	"github.com/awslabs/ar-js-tools/internal/funcutil"
)

// The event store is an append-only arena owned by the graph. Events
// reference each other only by id, so cycles in the flow graph carry no
// ownership hazards.

// create appends a new event with empty adjacency and returns its id.
func (g *Graph) create(phase Phase, node ast.Node) EventID {
	id := EventID(len(g.events))
	g.events = append(g.events, &FlowEvent{
		id:    id,
		phase: phase,
		node:  node,
		g:     g,
	})
	return id
}

// link records the edge u -> v in both adjacency lists. Insertion order is
// preserved and observable. A join reached via two sub-paths may request
// the same edge twice; duplicates are dropped so degrees stay small.
func (g *Graph) link(u, v EventID) {
	from := g.events[u]
	if funcutil.Contains(from.forward, v) {
		return
	}
	from.forward = append(from.forward, v)
	to := g.events[v]
	to.backward = append(to.backward, u)
}

// linkAll records an edge from every event of in to v.
func (g *Graph) linkAll(in []EventID, v EventID) {
	for _, u := range in {
		g.link(u, v)
	}
}

// get returns the event with the given id, or nil if the id was never
// issued by this graph.
func (g *Graph) get(id EventID) *FlowEvent {
	if id < 0 || int(id) >= len(g.events) {
		return nil
	}
	return g.events[id]
}

func (g *Graph) resolve(ids []EventID) []*FlowEvent {
	out := make([]*FlowEvent, len(ids))
	for i, id := range ids {
		out[i] = g.events[id]
	}
	return out
}
