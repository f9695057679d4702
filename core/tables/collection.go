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

package tables

import (
	"github.com/google/strata/core/grouping"
)

// CollectedBy lists the columns a collection was grouped by.
type CollectedBy []string

// Single returns the column name when the collection was grouped by
// exactly one column.
func (c CollectedBy) Single() (string, bool) {
	if len(c) != 1 {
		return "", false
	}
	return c[0], true
}

// Entry pairs a group key with the sub-table of its rows.
type Entry struct {
	Key   grouping.Key
	Table *DataTable
}

// Collection is the result of splitting a table. Groups are kept in the
// order their first row appears in the source table.
type Collection struct {
	source      *DataTable
	collectedBy CollectedBy
	groups      []*grouping.Group
	byKey       map[string]int
}

func newCollection(source *DataTable, collectedBy CollectedBy, groups []*grouping.Group) *Collection {
	byKey := make(map[string]int, len(groups))
	for i, g := range groups {
		byKey[g.Key.Encoded()] = i
	}
	return &Collection{
		source:      source,
		collectedBy: collectedBy,
		groups:      groups,
		byKey:       byKey,
	}
}

// Source returns the table that was split.
func (c *Collection) Source() *DataTable {
	return c.source
}

// CollectedBy returns the grouping columns in order.
func (c *Collection) CollectedBy() CollectedBy {
	result := make(CollectedBy, len(c.collectedBy))
	copy(result, c.collectedBy)
	return result
}

// Len returns the number of groups.
func (c *Collection) Len() int {
	return len(c.groups)
}

// Keys returns the group keys. Keys()[i] belongs to Tables()[i].
func (c *Collection) Keys() []grouping.Key {
	keys := make([]grouping.Key, len(c.groups))
	for i, g := range c.groups {
		keys[i] = g.Key
	}
	return keys
}

// Tables returns one sub-table per group, in the order of Keys.
func (c *Collection) Tables() []*DataTable {
	result := make([]*DataTable, len(c.groups))
	for i, g := range c.groups {
		result[i] = c.source.FilterByIndices(g.Indices)
	}
	return result
}

// Entries returns the ordered key to sub-table mapping.
func (c *Collection) Entries() []Entry {
	entries := make([]Entry, len(c.groups))
	for i, g := range c.groups {
		entries[i] = Entry{Key: g.Key, Table: c.source.FilterByIndices(g.Indices)}
	}
	return entries
}

// Indices returns the source rows of the group with the given key.
func (c *Collection) Indices(key grouping.Key) ([]int, bool) {
	i, ok := c.byKey[key.Encoded()]
	if !ok {
		return nil, false
	}
	indices := make([]int, len(c.groups[i].Indices))
	copy(indices, c.groups[i].Indices)
	return indices, true
}

// Table returns the sub-table of the group with the given key.
func (c *Collection) Table(key grouping.Key) (*DataTable, bool) {
	i, ok := c.byKey[key.Encoded()]
	if !ok {
		return nil, false
	}
	return c.source.FilterByIndices(c.groups[i].Indices), true
}
