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

// Package analysis ties the front end and the flow construction together
// for callers that start from source text rather than a parsed tree.
package analysis

import (
	"github.com/awslabs/ar-js-tools/analysis/config"
	"github.com/awslabs/ar-js-tools/analysis/flow"
	"github.com/awslabs/ar-js-tools/analysis/jsparse"
)

// AnalyseControlFlow parses src as an ES5 program and builds its control
// flow graph.
func AnalyseControlFlow(logger *config.LogGroup, src string) (*flow.Graph, error) {
	prog, err := jsparse.ParseSource(src)
	if err != nil {
		return nil, err
	}
	return flow.AnalyseWithLog(logger, prog)
}

// AnalyseControlFlowFile parses the file at path and builds its control
// flow graph.
func AnalyseControlFlowFile(logger *config.LogGroup, path string, src interface{}) (*flow.Graph, error) {
	prog, err := jsparse.ParseFile(path, src)
	if err != nil {
		return nil, err
	}
	return flow.AnalyseWithLog(logger, prog)
}
