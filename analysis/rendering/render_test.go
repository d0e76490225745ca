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

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/awslabs/ar-js-tools/analysis/config"
	"github.com/awslabs/ar-js-tools/analysis/flow"
	"github.com/awslabs/ar-js-tools/analysis/jsparse"
)

func analyse(t *testing.T, src string) *flow.Graph {
	t.Helper()
	prog, err := jsparse.ParseSource(src)
	if err != nil {
		t.Fatalf("could not parse %q: %v", src, err)
	}
	g, err := flow.Analyse(prog)
	if err != nil {
		t.Fatalf("could not analyse %q: %v", src, err)
	}
	return g
}

func TestWriteGraphviz(t *testing.T) {
	g := analyse(t, "var x; f(x);")
	var buf bytes.Buffer
	if err := WriteGraphviz(config.NewDefault(), g, &buf); err != nil {
		t.Fatalf("rendering failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph controlflow {\n") || !strings.HasSuffix(out, "}\n") {
		t.Errorf("output is not a digraph: %q", out)
	}
	if got := strings.Count(out, "[label="); got != g.Size() {
		t.Errorf("declared %d nodes, expected %d", got, g.Size())
	}
	if !strings.Contains(out, "hoist:VariableDeclarator") {
		t.Errorf("hoist events should be rendered by default")
	}
	if !strings.Contains(out, "->") {
		t.Errorf("no edges rendered")
	}
}

func TestWriteGraphvizWithoutHoists(t *testing.T) {
	g := analyse(t, "var x;")
	cfg := config.NewDefault()
	cfg.IncludeHoist = false
	var buf bytes.Buffer
	if err := WriteGraphviz(cfg, g, &buf); err != nil {
		t.Fatalf("rendering failed: %v", err)
	}
	if strings.Contains(buf.String(), "hoist:") {
		t.Errorf("hoist events should be elided: %q", buf.String())
	}
}

func TestLabelTruncation(t *testing.T) {
	g := analyse(t, "someVeryLongIdentifierName;")
	cfg := config.NewDefault()
	cfg.MaxLabel = 10
	var buf bytes.Buffer
	if err := WriteGraphviz(cfg, g, &buf); err != nil {
		t.Fatalf("rendering failed: %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if i := strings.Index(line, "label=\""); i >= 0 {
			rest := line[i+len("label=\""):]
			if j := strings.Index(rest, "\""); j > 10 {
				t.Errorf("label longer than the configured maximum: %q", line)
			}
		}
	}
}

func TestCyclicGraphRenders(t *testing.T) {
	g := analyse(t, "while (x) { f(); }")
	var buf bytes.Buffer
	if err := WriteGraphviz(config.NewDefault(), g, &buf); err != nil {
		t.Fatalf("rendering a cyclic graph failed: %v", err)
	}
	if got := strings.Count(buf.String(), "[label="); got != g.Size() {
		t.Errorf("declared %d nodes, expected %d", got, g.Size())
	}
}
