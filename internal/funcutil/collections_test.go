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

package funcutil

import "testing"

func TestContains(t *testing.T) {
	if !Contains([]int{1, 2, 3}, 2) {
		t.Errorf("2 should be found")
	}
	if Contains([]int{1, 2, 3}, 4) {
		t.Errorf("4 should not be found")
	}
	if Contains(nil, "x") {
		t.Errorf("nothing is found in an empty slice")
	}
}

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(x int) int { return x * x })
	want := []int{1, 4, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Map[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[int]string{3: "c", 1: "a", 2: "b"}
	keys := SortedKeys(m)
	if len(keys) != 3 || keys[0] != 1 || keys[1] != 2 || keys[2] != 3 {
		t.Errorf("keys not sorted: %v", keys)
	}
}

func TestIter(t *testing.T) {
	sum := 0
	Iter([]int{1, 2, 3}, func(x int) { sum += x })
	if sum != 6 {
		t.Errorf("Iter visited the wrong elements, sum = %d", sum)
	}
}
