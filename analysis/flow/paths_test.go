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
	"math"
	"testing"

	"github.com/awslabs/ar-js-tools/analysis/flow"
)

func TestCountTerminatingPaths(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"{ helloWorld(); }", 1},
		{"if (x) { hello(); } else { world(); }", 2},
		{"if (a) { p(); } if (b) { q(); } else { r(); }", 4},
		{"while (x) { f(); }", math.Inf(1)},
		{"do { f(); } while (x);", math.Inf(1)},
		{"for (;;) { f(); }", math.Inf(1)},
		{"x && y;", 2},
		{"x ? a() : b();", 2},
		{"try { throw e; } catch (e) { log(e); } finally { done(); }", 1},
	}
	for _, tt := range tests {
		g := mustAnalyse(t, tt.src)
		if got := flow.CountTerminatingPaths(g); got != tt.want {
			t.Errorf("CountTerminatingPaths(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestReachableFrom(t *testing.T) {
	g := mustAnalyse(t, "a(); b();")
	reachable := flow.ReachableFrom(g.StartOfFlow())
	if !reachable.Has(int(g.EndOfFlow().ID())) {
		t.Errorf("the end of flow should be reachable from the start")
	}
	if got, want := reachable.Len(), g.Size(); got != want {
		t.Errorf("straight-line program: %d of %d events reachable", got, want)
	}
}
