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
)

// Graph is the control flow graph of one program. It owns every flow
// event; events reference each other only by id. After construction the
// graph is immutable and safe for concurrent readers.
type Graph struct {
	events []*FlowEvent
	root   *ast.Program
	start  EventID
	end    EventID

	// handles numbers every node of the tree in pre-order; projections
	// replace child references by these numbers
	handles map[ast.Node]int
	nodes   []ast.Node
	projs   []*Projection
}

func newGraph(prog *ast.Program) *Graph {
	g := &Graph{
		root:    prog,
		start:   eventNone,
		end:     eventNone,
		handles: map[ast.Node]int{},
	}
	ast.Walk(prog, func(n ast.Node) bool {
		g.handles[n] = len(g.nodes)
		g.nodes = append(g.nodes, n)
		return true
	})
	g.projs = make([]*Projection, len(g.nodes))
	for i, n := range g.nodes {
		g.projs[i] = g.project(n)
	}
	return g
}

// StartOfFlow returns the event every execution begins with: the first
// hoist event of the program, or the program's enter event when nothing
// is hoisted.
func (g *Graph) StartOfFlow() *FlowEvent {
	return g.events[g.start]
}

// EndOfFlow returns the program's exit event.
func (g *Graph) EndOfFlow() *FlowEvent {
	return g.events[g.end]
}

// GetNode returns the shallow projection of the node with the given
// handle, or nil when no such node exists. Handle 0 is the Program root.
func (g *Graph) GetNode(handle int) *Projection {
	if handle < 0 || handle >= len(g.projs) {
		return nil
	}
	return g.projs[handle]
}

// Size returns the number of flow events in the graph.
func (g *Graph) Size() int {
	return len(g.events)
}

// EventByID returns the event with the given id, or nil.
func (g *Graph) EventByID(id EventID) *FlowEvent {
	return g.get(id)
}

// Events returns all flow events in id order. The returned slice is fresh;
// the events themselves are shared and read-only.
func (g *Graph) Events() []*FlowEvent {
	return append([]*FlowEvent(nil), g.events...)
}

func (g *Graph) projection(n ast.Node) *Projection {
	h, ok := g.handles[n]
	if !ok {
		return nil
	}
	return g.projs[h]
}

// HoleHandle marks an array hole in a projection field.
const HoleHandle = -1

// Projection is the shallow external view of one syntax tree node: its
// kind, its scalar attributes, and its children replaced by numeric
// handles resolvable through Graph.GetNode.
type Projection struct {
	// Handle is this node's own handle.
	Handle int

	// NodeKind is the ESTree type tag.
	NodeKind ast.Kind

	// Attrs holds the node's scalar attributes (operator, name, value...).
	Attrs map[string]interface{}

	// Fields lists the node's child slots in ESTree order.
	Fields []ProjectionField
}

// ProjectionField is one named child slot of a projection. For a Single
// field Handles holds zero or one handle; for list fields it holds one
// handle per element, with HoleHandle marking array holes.
type ProjectionField struct {
	Name    string
	Single  bool
	Handles []int
}

// Field returns the field with the given name, or nil.
func (p *Projection) Field(name string) *ProjectionField {
	for i := range p.Fields {
		if p.Fields[i].Name == name {
			return &p.Fields[i]
		}
	}
	return nil
}

//gocyclo:ignore
func (g *Graph) project(n ast.Node) *Projection {
	p := &Projection{Handle: g.handles[n], NodeKind: n.Kind()}
	attr := func(name string, v interface{}) {
		if p.Attrs == nil {
			p.Attrs = map[string]interface{}{}
		}
		p.Attrs[name] = v
	}
	single := func(name string, c ast.Node) {
		f := ProjectionField{Name: name, Single: true}
		if c != nil {
			f.Handles = []int{g.handles[c]}
		}
		p.Fields = append(p.Fields, f)
	}
	list := func(name string, cs ...ast.Node) {
		f := ProjectionField{Name: name, Handles: []int{}}
		for _, c := range cs {
			if c == nil {
				f.Handles = append(f.Handles, HoleHandle)
			} else {
				f.Handles = append(f.Handles, g.handles[c])
			}
		}
		p.Fields = append(p.Fields, f)
	}

	switch n := n.(type) {
	case *ast.Program:
		list("body", n.Body...)
	case *ast.EmptyStatement:
	case *ast.BlockStatement:
		list("body", n.Body...)
	case *ast.ExpressionStatement:
		single("expression", n.Expression)
	case *ast.IfStatement:
		single("test", n.Test)
		single("consequent", n.Consequent)
		single("alternate", n.Alternate)
	case *ast.LabeledStatement:
		single("label", identOrNil(n.Label))
		single("body", n.Body)
	case *ast.BreakStatement:
		single("label", identOrNil(n.Label))
	case *ast.ContinueStatement:
		single("label", identOrNil(n.Label))
	case *ast.WithStatement:
		single("object", n.Object)
		single("body", n.Body)
	case *ast.SwitchStatement:
		single("discriminant", n.Discriminant)
		cases := make([]ast.Node, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = c
		}
		list("cases", cases...)
	case *ast.SwitchCase:
		single("test", n.Test)
		list("consequent", n.Consequent...)
	case *ast.ReturnStatement:
		single("argument", n.Argument)
	case *ast.ThrowStatement:
		single("argument", n.Argument)
	case *ast.TryStatement:
		single("block", blockOrNil(n.Block))
		var handler ast.Node
		if n.Handler != nil {
			handler = n.Handler
		}
		single("handler", handler)
		single("finalizer", blockOrNil(n.Finalizer))
	case *ast.CatchClause:
		single("param", identOrNil(n.Param))
		single("body", blockOrNil(n.Body))
	case *ast.WhileStatement:
		single("test", n.Test)
		single("body", n.Body)
	case *ast.DoWhileStatement:
		single("body", n.Body)
		single("test", n.Test)
	case *ast.ForStatement:
		single("init", n.Init)
		single("test", n.Test)
		single("update", n.Update)
		single("body", n.Body)
	case *ast.ForInStatement:
		single("left", n.Left)
		single("right", n.Right)
		single("body", n.Body)
	case *ast.FunctionDeclaration:
		single("id", identOrNil(n.ID))
		list("params", identNodes(n.Params)...)
		single("body", blockOrNil(n.Body))
	case *ast.FunctionExpression:
		single("id", identOrNil(n.ID))
		list("params", identNodes(n.Params)...)
		single("body", blockOrNil(n.Body))
	case *ast.VariableDeclaration:
		attr("kind", n.DeclKind)
		decls := make([]ast.Node, len(n.Declarations))
		for i, d := range n.Declarations {
			decls[i] = d
		}
		list("declarations", decls...)
	case *ast.VariableDeclarator:
		single("id", identOrNil(n.ID))
		single("init", n.Init)
	case *ast.ThisExpression:
	case *ast.ArrayExpression:
		list("elements", n.Elements...)
	case *ast.ObjectExpression:
		props := make([]ast.Node, len(n.Properties))
		for i, pr := range n.Properties {
			props[i] = pr
		}
		list("properties", props...)
	case *ast.Property:
		attr("kind", n.PropKind)
		single("key", n.Key)
		single("value", n.Value)
	case *ast.SequenceExpression:
		list("expressions", n.Expressions...)
	case *ast.UnaryExpression:
		attr("operator", n.Operator)
		attr("prefix", n.Prefix)
		single("argument", n.Argument)
	case *ast.BinaryExpression:
		attr("operator", n.Operator)
		single("left", n.Left)
		single("right", n.Right)
	case *ast.AssignmentExpression:
		attr("operator", n.Operator)
		single("left", n.Left)
		single("right", n.Right)
	case *ast.UpdateExpression:
		attr("operator", n.Operator)
		attr("prefix", n.Prefix)
		single("argument", n.Argument)
	case *ast.LogicalExpression:
		attr("operator", n.Operator)
		single("left", n.Left)
		single("right", n.Right)
	case *ast.ConditionalExpression:
		single("test", n.Test)
		single("consequent", n.Consequent)
		single("alternate", n.Alternate)
	case *ast.CallExpression:
		single("callee", n.Callee)
		list("arguments", n.Arguments...)
	case *ast.NewExpression:
		single("callee", n.Callee)
		list("arguments", n.Arguments...)
	case *ast.MemberExpression:
		attr("computed", n.Computed)
		single("object", n.Object)
		single("property", n.Property)
	case *ast.Identifier:
		attr("name", n.Name)
	case *ast.Literal:
		attr("value", n.Value)
		attr("raw", n.Raw)
	}
	return p
}

func identOrNil(id *ast.Identifier) ast.Node {
	if id == nil {
		return nil
	}
	return id
}

func blockOrNil(b *ast.BlockStatement) ast.Node {
	if b == nil {
		return nil
	}
	return b
}

func identNodes(ids []*ast.Identifier) []ast.Node {
	out := make([]ast.Node, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
