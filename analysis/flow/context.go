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
	"fmt"

	"github.com/awslabs/ar-js-tools/analysis/ast"
	"github.com/awslabs/ar-js-tools/internal/funcutil"
)

// UnresolvedJumpError reports a break or continue that has no enclosing
// construct to jump to, or a return outside any function.
type UnresolvedJumpError struct {
	// Stmt is the kind of the jump statement.
	Stmt ast.Kind

	// Label is the target label, empty for unlabeled jumps.
	Label string
}

func (e *UnresolvedJumpError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("%s outside any enclosing target", e.Stmt)
	}
	return fmt.Sprintf("%s references undeclared label %q", e.Stmt, e.Label)
}

type frameKind uint8

const (
	frameProgram frameKind = iota
	frameFunction
	frameLoop
	frameSwitch
	frameLabel
	frameTry
)

// frame is one enclosing construct on the builder's stack. Which fields
// are meaningful depends on kind:
//
//	frameProgram:  throwTo (the top-level throw sink)
//	frameFunction: returnTo, throwTo (the function's exit event)
//	frameLoop:     breakTo, continueTo, labels
//	frameSwitch:   breakTo, labels
//	frameLabel:    breakTo, labels (a label on a non-loop statement)
//	frameTry:      catchTo while the protected block is wired, finallyTo
//	               while a finalizer exists and is not itself being wired,
//	               pending (resume targets registered by jumps crossing
//	               the finalizer)
type frame struct {
	kind       frameKind
	labels     []string
	breakTo    EventID
	continueTo EventID
	returnTo   EventID
	throwTo    EventID
	catchTo    EventID
	finallyTo  EventID
	pending    []EventID
}

func newFrame(kind frameKind) *frame {
	return &frame{
		kind:       kind,
		breakTo:    eventNone,
		continueTo: eventNone,
		returnTo:   eventNone,
		throwTo:    eventNone,
		catchTo:    eventNone,
		finallyTo:  eventNone,
	}
}

func (f *frame) hasLabel(label string) bool {
	return funcutil.Contains(f.labels, label)
}

// barrier reports whether lexical jump resolution must stop at f: labels,
// break and continue never cross a function boundary.
func (f *frame) barrier() bool {
	return f.kind == frameProgram || f.kind == frameFunction
}

func (b *builder) pushFrame(f *frame) {
	b.frames = append(b.frames, f)
}

func (b *builder) popFrame() {
	b.frames = b.frames[:len(b.frames)-1]
}

// takeLabels consumes the labels accumulated by enclosing labeled
// statements; the next loop or switch frame claims them.
func (b *builder) takeLabels() []string {
	labels := b.pendingLabels
	b.pendingLabels = nil
	return labels
}

// resolveBreak finds the target of a break statement: the nearest loop or
// switch for an unlabeled break, the nearest frame carrying the label
// otherwise.
func (b *builder) resolveBreak(label string) (int, EventID, error) {
	for i := len(b.frames) - 1; i >= 0; i-- {
		f := b.frames[i]
		if f.barrier() {
			break
		}
		if label == "" {
			if f.kind == frameLoop || f.kind == frameSwitch {
				return i, f.breakTo, nil
			}
		} else if f.hasLabel(label) {
			return i, f.breakTo, nil
		}
	}
	return 0, eventNone, &UnresolvedJumpError{Stmt: ast.KindBreakStatement, Label: label}
}

// resolveContinue finds the re-test event of the nearest enclosing loop,
// or of the loop carrying the label. A label naming a non-loop construct
// cannot be continued.
func (b *builder) resolveContinue(label string) (int, EventID, error) {
	for i := len(b.frames) - 1; i >= 0; i-- {
		f := b.frames[i]
		if f.barrier() {
			break
		}
		if label == "" {
			if f.kind == frameLoop {
				return i, f.continueTo, nil
			}
		} else if f.hasLabel(label) {
			if f.kind != frameLoop {
				return 0, eventNone, &UnresolvedJumpError{Stmt: ast.KindContinueStatement, Label: label}
			}
			return i, f.continueTo, nil
		}
	}
	return 0, eventNone, &UnresolvedJumpError{Stmt: ast.KindContinueStatement, Label: label}
}

// resolveReturn finds the exit event of the nearest enclosing function.
func (b *builder) resolveReturn() (int, EventID, error) {
	for i := len(b.frames) - 1; i >= 0; i-- {
		f := b.frames[i]
		if f.kind == frameFunction {
			return i, f.returnTo, nil
		}
		if f.kind == frameProgram {
			break
		}
	}
	return 0, eventNone, &UnresolvedJumpError{Stmt: ast.KindReturnStatement}
}

// resolveThrow finds the nearest syntactically enclosing catch clause, or
// the scope's throw sink when none encloses the throw. Exceptions are not
// modeled across function boundaries.
func (b *builder) resolveThrow() (int, EventID) {
	for i := len(b.frames) - 1; i >= 0; i-- {
		f := b.frames[i]
		if f.kind == frameTry && f.catchTo != eventNone {
			return i, f.catchTo
		}
		if f.kind == frameFunction || f.kind == frameProgram {
			return i, f.throwTo
		}
	}
	// the bottom frame is always the program frame
	panic("flow: frame stack has no program frame")
}

// routeJump wires the edge set of one jump whose source event is from and
// whose resolved target lives in the frame at targetIdx. Every try frame
// with an active finalizer between the jump and its target adds a hop: the
// jump first enters the innermost finalizer, and each finalizer's normal
// completion resumes toward the next hop. The resume edges are recorded as
// pending targets on each crossed frame and wired when the finalizer is.
func (b *builder) routeJump(from EventID, targetIdx int, target EventID) {
	// walk from the outermost crossed finalizer inward: the outermost
	// resumes toward the real target, each inner one toward the next
	// finalizer out, and the jump itself enters the innermost
	hop := target
	for _, f := range b.crossedFinalizers(targetIdx) {
		if !funcutil.Contains(f.pending, hop) {
			f.pending = append(f.pending, hop)
		}
		hop = f.finallyTo
	}
	b.g.link(from, hop)
}

// crossedFinalizers returns the try frames with an active finalizer
// strictly above targetIdx, outermost first.
func (b *builder) crossedFinalizers(targetIdx int) []*frame {
	var out []*frame
	for i := targetIdx + 1; i < len(b.frames); i++ {
		f := b.frames[i]
		if f.kind == frameTry && f.finallyTo != eventNone {
			out = append(out, f)
		}
	}
	return out
}
