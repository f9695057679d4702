/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Strata Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package grouping

import (
	"testing"

	"github.com/google/strata/core/columns"
)

func stringColumn(name string, values ...string) *columns.Column {
	b := columns.NewBuilder(columns.NewColumnDef(name, ""), 0)
	for _, v := range values {
		if v == "" {
			b.Append(columns.NullValue())
			continue
		}
		b.Append(columns.StringValue(v))
	}
	return b.Build()
}

func TestGroupIndices_SingleColumn(t *testing.T) {
	status := stringColumn("status", "Active", "Active", "Inactive", "Active", "Inactive", "Pending")

	groups := GroupIndices(AllIndices(status.Length()), []*columns.Column{status})

	// We should have 3 groups in first-seen order: Active, Inactive, Pending
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	expected := []struct {
		key     string
		indices []int
	}{
		{"Active", []int{0, 1, 3}},
		{"Inactive", []int{2, 4}},
		{"Pending", []int{5}},
	}
	for i, want := range expected {
		g := groups[i]
		if g.Key.String() != want.key {
			t.Errorf("group %d key = %q, want %q", i, g.Key.String(), want.key)
		}
		if len(g.Indices) != len(want.indices) {
			t.Errorf("group %d has %d indices, want %d", i, g.Length(), len(want.indices))
			continue
		}
		for j := range want.indices {
			if g.Indices[j] != want.indices[j] {
				t.Errorf("group %d indices = %v, want %v", i, g.Indices, want.indices)
				break
			}
		}
	}
}

func TestGroupIndices_DropsNulls(t *testing.T) {
	zone := stringColumn("zone", "Upper", "", "Upper", "Lower")
	region := stringColumn("region", "North", "North", "", "North")

	groups := GroupIndices(AllIndices(4), []*columns.Column{zone, region})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	total := 0
	for _, g := range groups {
		for _, i := range g.Indices {
			if i == 1 || i == 2 {
				t.Errorf("row %d has a null and must not be grouped", i)
			}
		}
		total += g.Length()
	}
	if total != 2 {
		t.Errorf("expected 2 grouped rows, got %d", total)
	}
	if groups[0].Key.Len() != 2 || groups[0].Key.String() != "Upper|North" {
		t.Errorf("unexpected composite key %q", groups[0].Key.String())
	}
}

func TestGroupIndices_SeparatorInValues(t *testing.T) {
	a := stringColumn("a", "x|y", "x")
	b := stringColumn("b", "z", "y|z")

	groups := GroupIndices(AllIndices(2), []*columns.Column{a, b})

	// Both rows display as "x|y|z" but are distinct groups.
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key.String() != groups[1].Key.String() {
		t.Errorf("display keys should match: %q vs %q", groups[0].Key.String(), groups[1].Key.String())
	}
	if groups[0].Key.Equal(groups[1].Key) {
		t.Error("structural keys must differ")
	}
}

func TestGroupIndices_Subset(t *testing.T) {
	fluid := stringColumn("fluid", "oil", "gas", "oil", "gas")

	groups := GroupIndices([]int{3, 2}, []*columns.Column{fluid})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key.Value().String() != "gas" || groups[0].Indices[0] != 3 {
		t.Errorf("first group should be gas at row 3, got %q %v", groups[0].Key, groups[0].Indices)
	}
}

func TestNewKey(t *testing.T) {
	k1 := NewKey(columns.NumberValue(1), columns.StringValue("oil"))
	k2 := NewKey(columns.NumberValue(1), columns.StringValue("oil"))
	if !k1.Equal(k2) || k1.Encoded() != k2.Encoded() {
		t.Error("equal values must produce equal keys")
	}
	vals := k1.Values()
	vals[0] = columns.NullValue()
	if k1.Value().IsNull() {
		t.Error("Values() must return a copy")
	}
	var empty Key
	if !empty.Value().IsNull() {
		t.Error("empty key value should be null")
	}
}
