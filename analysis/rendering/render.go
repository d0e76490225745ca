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

// Package render emits graphviz representations of flow graphs.
package render

import (
	"fmt"
	"io"

	"github.com/awslabs/ar-js-tools/analysis/config"
	"github.com/awslabs/ar-js-tools/analysis/flow"
	"github.com/awslabs/ar-js-tools/internal/funcutil"
	"github.com/awslabs/ar-js-tools/internal/graphutil"
)

// nodeColor defines specific styles for specific events in the flow graph
// - hoist events are filled gray
// - the start and end events are drawn as boxes
func nodeColor(g *flow.Graph, ev *flow.FlowEvent) string {
	switch {
	case ev.IsHoist():
		return " [style=filled, fillcolor=lightgray]"
	case ev.ID() == g.StartOfFlow().ID() || ev.ID() == g.EndOfFlow().ID():
		return " [shape=box]"
	}
	return ""
}

func nodeLabel(cfg *config.Config, ev *flow.FlowEvent) string {
	proj := ev.Node()
	label := fmt.Sprintf("%s:%s", ev.Phase(), proj.NodeKind)
	for _, k := range funcutil.SortedKeys(proj.Attrs) {
		if k == "name" || k == "operator" {
			label = fmt.Sprintf("%s %v", label, proj.Attrs[k])
		}
	}
	if cfg.MaxLabel > 0 && len(label) > cfg.MaxLabel {
		label = label[:cfg.MaxLabel]
	}
	return label
}

// eventOrder returns the order events are declared in: topological when the
// graph is acyclic, id order otherwise.
func eventOrder(g *flow.Graph) []flow.EventID {
	it := graphutil.NewFlowIterator(g)
	if order, err := graphutil.TopoOrder(it); err == nil {
		return order
	}
	return funcutil.Map(g.Events(), func(ev *flow.FlowEvent) flow.EventID { return ev.ID() })
}

// WriteGraphviz writes a graphviz representation of the flow graph to w
func WriteGraphviz(cfg *config.Config, g *flow.Graph, w io.Writer) error {
	var err error
	write := func(s string) {
		if err == nil {
			_, err = w.Write([]byte(s))
		}
	}
	write("digraph controlflow {\n")
	order := eventOrder(g)
	for _, id := range order {
		ev := g.EventByID(id)
		if ev.IsHoist() && !cfg.IncludeHoist {
			continue
		}
		write(fmt.Sprintf("  n%s [label=%q]%s;\n", ev.ID(), nodeLabel(cfg, ev), nodeColor(g, ev)))
	}
	for _, id := range order {
		ev := g.EventByID(id)
		if ev.IsHoist() && !cfg.IncludeHoist {
			continue
		}
		funcutil.Iter(ev.ForwardFlows(), func(succ *flow.FlowEvent) {
			if succ.IsHoist() && !cfg.IncludeHoist {
				return
			}
			write(fmt.Sprintf("  n%s -> n%s;\n", ev.ID(), succ.ID()))
		})
	}
	write("}\n")
	if err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}
	return nil
}
