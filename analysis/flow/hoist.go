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

import "github.com/awslabs/ar-js-tools/analysis/ast"

// Hoisting collects declarations syntactically, not by reachability: a
// declaration inside a never-taken branch is still hoisted, matching the
// V8/IE/Safari convention for conditional declarations. var declarators in
// catch clauses and for-statement initializers hoist like any other.

// hoists lists the declarations of one scope: every FunctionDeclaration
// first, then every var declarator, each group in source order.
type hoists struct {
	funcs []*ast.FunctionDeclaration
	vars  []*ast.VariableDeclarator
}

func (h *hoists) empty() bool {
	return len(h.funcs) == 0 && len(h.vars) == 0
}

// collectHoists gathers the hoisted declarations of a scope body without
// descending into nested function bodies. Expressions never contain var
// declarations in ES5, so only statement positions are walked.
func collectHoists(body []ast.Node) *hoists {
	h := &hoists{}
	for _, stmt := range body {
		h.scan(stmt)
	}
	return h
}

func (h *hoists) scan(stmt ast.Node) {
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		h.funcs = append(h.funcs, s)
	case *ast.VariableDeclaration:
		h.vars = append(h.vars, s.Declarations...)
	case *ast.BlockStatement:
		for _, c := range s.Body {
			h.scan(c)
		}
	case *ast.IfStatement:
		h.scan(s.Consequent)
		if s.Alternate != nil {
			h.scan(s.Alternate)
		}
	case *ast.LabeledStatement:
		h.scan(s.Body)
	case *ast.WithStatement:
		h.scan(s.Body)
	case *ast.SwitchStatement:
		for _, c := range s.Cases {
			for _, cs := range c.Consequent {
				h.scan(cs)
			}
		}
	case *ast.TryStatement:
		if s.Block != nil {
			h.scan(s.Block)
		}
		if s.Handler != nil && s.Handler.Body != nil {
			h.scan(s.Handler.Body)
		}
		if s.Finalizer != nil {
			h.scan(s.Finalizer)
		}
	case *ast.WhileStatement:
		h.scan(s.Body)
	case *ast.DoWhileStatement:
		h.scan(s.Body)
	case *ast.ForStatement:
		if init, ok := s.Init.(*ast.VariableDeclaration); ok {
			h.vars = append(h.vars, init.Declarations...)
		}
		h.scan(s.Body)
	case *ast.ForInStatement:
		if left, ok := s.Left.(*ast.VariableDeclaration); ok {
			h.vars = append(h.vars, left.Declarations...)
		}
		h.scan(s.Body)
	}
}

// emitHoists creates the hoist events of a scope, chained linearly in the
// collection order. It records the hoist event of each function
// declaration so the declaration's rule can attach the function's body
// region to it. Returns the first and last event of the chain, or
// (eventNone, eventNone) when the scope hoists nothing.
func (b *builder) emitHoists(h *hoists) (EventID, EventID) {
	first, last := eventNone, eventNone
	emit := func(node ast.Node) EventID {
		ev := b.g.create(PhaseHoist, node)
		if first == eventNone {
			first = ev
		} else {
			b.g.link(last, ev)
		}
		last = ev
		return ev
	}
	for _, fn := range h.funcs {
		b.hoistOf[fn] = emit(fn)
	}
	for _, v := range h.vars {
		emit(v)
	}
	return first, last
}
