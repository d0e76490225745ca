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

// Package graphutil adapts a flow graph to generic graph libraries and
// provides the cycle and ordering queries built on them.
package graphutil

import (
	"gonum.org/v1/gonum/graph"

	"github.com/awslabs/ar-js-tools/analysis/flow"
)

// FlowIterator is an abstraction over a flow graph to work with existing
// graph libraries. It implements the methods to satisfy graph.Iterator and
// Gonum's graph.Directed. Event ids are used as node ids directly.
type FlowIterator struct {
	// Graph is the flow graph the iterator was constructed from
	Graph *flow.Graph
}

// NewFlowIterator returns an iterator over the events and edges of g.
func NewFlowIterator(g *flow.Graph) FlowIterator {
	return FlowIterator{Graph: g}
}

// Order implements the order of the graph.Iterator interface for the FlowIterator
func (f FlowIterator) Order() int {
	return f.Graph.Size()
}

// Visit implements the graph.Iterator interface for the FlowIterator
func (f FlowIterator) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	ev := f.Graph.EventByID(flow.EventID(v))
	if ev == nil {
		return false
	}
	for _, succ := range ev.ForwardFlows() {
		if do(int(succ.ID()), 1) {
			return true
		}
	}
	return false
}

// *************** Directed graph interface implementation **********************

// Node implements the Graph interface
func (f FlowIterator) Node(id int64) graph.Node {
	ev := f.Graph.EventByID(flow.EventID(id))
	if ev == nil {
		return nil
	}
	return FNode{ev}
}

// Nodes returns the set of nodes in the graph
func (f FlowIterator) Nodes() graph.Nodes {
	events := f.Graph.Events()
	ids := make([]int64, len(events))
	for i, ev := range events {
		ids[i] = int64(ev.ID())
	}
	return &NodeSet{graph: f, ids: ids}
}

// From returns the set of nodes reachable from the id in one forward edge
func (f FlowIterator) From(id int64) graph.Nodes {
	ev := f.Graph.EventByID(flow.EventID(id))
	if ev == nil {
		return &NodeSet{graph: f}
	}
	var ids []int64
	for _, succ := range ev.ForwardFlows() {
		ids = append(ids, int64(succ.ID()))
	}
	return &NodeSet{graph: f, ids: ids}
}

// To returns the set of nodes with a forward edge into the id
func (f FlowIterator) To(id int64) graph.Nodes {
	ev := f.Graph.EventByID(flow.EventID(id))
	if ev == nil {
		return &NodeSet{graph: f}
	}
	var ids []int64
	for _, pred := range ev.BackwardFlows() {
		ids = append(ids, int64(pred.ID()))
	}
	return &NodeSet{graph: f, ids: ids}
}

// HasEdgeFromTo returns whether a forward edge uid -> vid exists
func (f FlowIterator) HasEdgeFromTo(uid, vid int64) bool {
	ev := f.Graph.EventByID(flow.EventID(uid))
	if ev == nil {
		return false
	}
	for _, succ := range ev.ForwardFlows() {
		if int64(succ.ID()) == vid {
			return true
		}
	}
	return false
}

// HasEdgeBetween returns whether an edge exists between the two node identifiers in either direction
func (f FlowIterator) HasEdgeBetween(xid, yid int64) bool {
	return f.HasEdgeFromTo(xid, yid) || f.HasEdgeFromTo(yid, xid)
}

// Edge returns the edge between the two identifiers (nil if none exists)
func (f FlowIterator) Edge(uid, vid int64) graph.Edge {
	if !f.HasEdgeFromTo(uid, vid) {
		return nil
	}
	return FEdge{from: f.Node(uid).(FNode), to: f.Node(vid).(FNode)}
}

// *************** Nodes implementation **********************

// FNode is a wrapper around a *flow.FlowEvent that implements the graph.Node interface
type FNode struct {
	Event *flow.FlowEvent
}

// ID returns the id of the node
func (n FNode) ID() int64 {
	return int64(n.Event.ID())
}

func (n FNode) String() string {
	if n.Event == nil {
		return ""
	}
	return n.Event.String()
}

// FEdge is a directed edge between two FNodes
type FEdge struct {
	from, to FNode
}

// From returns the edge origin
func (e FEdge) From() graph.Node { return e.from }

// To returns the edge destination
func (e FEdge) To() graph.Node { return e.to }

// ReversedEdge returns the edge with origin and destination swapped
func (e FEdge) ReversedEdge() graph.Edge { return FEdge{from: e.to, to: e.from} }

// NodeSet implements the graph.Nodes interface, an iterator over a set of nodes
type NodeSet struct {
	graph FlowIterator
	ids   []int64
	cur   int
}

// Len returns the number of nodes remaining
func (s *NodeSet) Len() int {
	return len(s.ids) - s.cur
}

// Next advances the iterator; it must be called before the first Node
func (s *NodeSet) Next() bool {
	if s.cur >= len(s.ids) {
		return false
	}
	s.cur++
	return true
}

// Node returns the current node
func (s *NodeSet) Node() graph.Node {
	if s.cur == 0 || s.cur > len(s.ids) {
		return nil
	}
	return s.graph.Node(s.ids[s.cur-1])
}

// Reset rewinds the iterator
func (s *NodeSet) Reset() {
	s.cur = 0
}
