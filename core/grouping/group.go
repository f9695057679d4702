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
	"strings"

	"github.com/google/strata/core/columns"
)

// Rows are grouped by the tuple of their values in one or more columns.
// Groups keep the order in which their first row was seen; they are never
// sorted. A row with a null in any grouping column belongs to no group.
//
// Terminology:
// * the columns that define the grouping are the grouped columns
// * a Key is the tuple of values shared by every row of a group
// * the Indices of a group are row positions in the grouped table

// KeySeparator joins the values of a composite key for display only.
const KeySeparator = "|"

// Key identifies a group by the values of its grouped columns.
// Keys compare structurally: values containing KeySeparator cannot collide.
type Key struct {
	encoded string
	values  []columns.Value
}

// NewKey builds a key from the given values.
func NewKey(values ...columns.Value) Key {
	var buf []byte
	for _, v := range values {
		buf = v.AppendKey(buf)
	}
	vs := make([]columns.Value, len(values))
	copy(vs, values)
	return Key{encoded: string(buf), values: vs}
}

// Values returns a copy of the key's values, one per grouped column.
func (k Key) Values() []columns.Value {
	result := make([]columns.Value, len(k.values))
	copy(result, k.values)
	return result
}

// Value returns the first value of the key, which is the whole key when
// grouping by a single column.
func (k Key) Value() columns.Value {
	if len(k.values) == 0 {
		return columns.NullValue()
	}
	return k.values[0]
}

func (k Key) Len() int {
	return len(k.values)
}

func (k Key) Equal(o Key) bool {
	return k.encoded == o.encoded
}

// Encoded returns the structural form of the key, usable as a map key.
func (k Key) Encoded() string {
	return k.encoded
}

// String joins the display form of the values with KeySeparator.
func (k Key) String() string {
	parts := make([]string, len(k.values))
	for i, v := range k.values {
		parts[i] = v.String()
	}
	return strings.Join(parts, KeySeparator)
}

type Group struct {
	Key     Key
	Indices []int
}

func (g *Group) Length() int {
	return len(g.Indices)
}

// GroupIndices groups the given rows by their values in cols.
// Groups are returned in first-seen order and rows keep their order inside
// a group. Rows with a null in any of cols are dropped.
func GroupIndices(indices []int, cols []*columns.Column) []*Group {
	if len(cols) == 0 {
		return nil
	}
	var groups []*Group
	groupByKey := map[string]*Group{}
	values := make([]columns.Value, len(cols))
	var buf []byte

rows:
	for _, i := range indices {
		buf = buf[:0]
		for c, col := range cols {
			v, err := col.Value(i)
			if err != nil || v.IsNull() {
				continue rows
			}
			values[c] = v
			buf = v.AppendKey(buf)
		}
		if g, ok := groupByKey[string(buf)]; ok {
			g.Indices = append(g.Indices, i)
			continue
		}
		g := &Group{Key: NewKey(values...), Indices: []int{i}}
		groupByKey[g.Key.encoded] = g
		groups = append(groups, g)
	}
	return groups
}

// AllIndices returns 0..n-1.
func AllIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
