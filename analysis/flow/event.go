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

// Package flow constructs the control flow graph of an ES5 program. The
// graph vertices are flow events (entering, exiting or hoisting one syntax
// tree node) and the edges connect each event to the events that may
// execute immediately after it. The graph over-approximates runtime
// behavior: every concrete execution trace is a path through the graph.
//
// Construction is single-threaded; once Analyse returns, the graph is
// immutable and safe for concurrent readers.
package flow

import (
	"fmt"
	"strconv"

	"github.com/awslabs/ar-js-tools/analysis/ast"
)

// Phase distinguishes the three kinds of flow events attached to a node.
type Phase uint8

const (
	// PhaseHoist marks the scope-setup event of a hoisted declaration.
	PhaseHoist Phase = iota

	// PhaseEnter marks the start of a node's evaluation.
	PhaseEnter

	// PhaseExit marks the normal completion of a node's evaluation.
	PhaseExit
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseHoist:
		return "hoist"
	case PhaseEnter:
		return "enter"
	case PhaseExit:
		return "exit"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// EventID identifies one flow event within its graph. Identifiers are
// assigned sequentially from zero and are stable for the lifetime of the
// graph. Consumers must not rely on the numeric representation: the
// contract only guarantees uniqueness, and the textual form returned by
// String is the portable way to name an event.
type EventID int64

// eventNone is the absent-event sentinel used inside the builder.
const eventNone EventID = -1

func (id EventID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// FlowEvent is a vertex of the control flow graph. The zero value is not
// usable; events are created only by the builder during construction.
type FlowEvent struct {
	id       EventID
	phase    Phase
	node     ast.Node
	forward  []EventID
	backward []EventID

	g *Graph
}

// ID returns the event's stable identifier.
func (e *FlowEvent) ID() EventID { return e.id }

// Phase returns the event's phase tag.
func (e *FlowEvent) Phase() Phase { return e.phase }

// IsHoist reports whether this is a hoist event.
func (e *FlowEvent) IsHoist() bool { return e.phase == PhaseHoist }

// IsEnter reports whether this is an enter event.
func (e *FlowEvent) IsEnter() bool { return e.phase == PhaseEnter }

// IsExit reports whether this is an exit event.
func (e *FlowEvent) IsExit() bool { return e.phase == PhaseExit }

// Node returns the shallow projection of the syntax tree node this event
// is bound to.
func (e *FlowEvent) Node() *Projection {
	return e.g.projection(e.node)
}

// ForwardFlows returns the events that may execute immediately after this
// one, in edge insertion order. An empty result marks a terminal event.
func (e *FlowEvent) ForwardFlows() []*FlowEvent {
	return e.g.resolve(e.forward)
}

// BackwardFlows returns the events this one may immediately follow, in
// edge insertion order.
func (e *FlowEvent) BackwardFlows() []*FlowEvent {
	return e.g.resolve(e.backward)
}

// NumForward returns the forward degree without materializing the events.
func (e *FlowEvent) NumForward() int { return len(e.forward) }

// NumBackward returns the backward degree without materializing the events.
func (e *FlowEvent) NumBackward() int { return len(e.backward) }

func (e *FlowEvent) String() string {
	return fmt.Sprintf("%s:%s#%s", e.phase, e.node.Kind(), e.id)
}
