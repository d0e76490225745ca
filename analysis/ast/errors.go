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

package ast

import "fmt"

// MalformedError reports a structural violation of the ES5 tree shape: an
// unknown node kind, or a missing required child. It is returned both by
// Decode and by the flow construction when it encounters a tree it cannot
// interpret.
type MalformedError struct {
	// Kind is the node kind at which the violation was found; empty when
	// the kind itself is unknown.
	Kind Kind

	// Reason describes the violation.
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("malformed AST: %s", e.Reason)
	}
	return fmt.Sprintf("malformed AST at %s: %s", e.Kind, e.Reason)
}

// Malformed builds a MalformedError for the given kind.
func Malformed(kind Kind, format string, args ...interface{}) *MalformedError {
	return &MalformedError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
