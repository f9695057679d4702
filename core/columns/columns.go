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

package columns

import (
	"fmt"
)

type ColumnDef struct {
	name        string
	displayName string
}

// NewColumnDef creates a new ColumnDef with the given name and display name
func NewColumnDef(name, displayName string) *ColumnDef {
	if displayName == "" {
		displayName = name
	}
	return &ColumnDef{
		name:        name,
		displayName: displayName,
	}
}

func (cd *ColumnDef) Name() string {
	return cd.name
}

func (cd *ColumnDef) DisplayName() string {
	return cd.displayName
}

// Column is an immutable, named sequence of nullable cells.
// Use a Builder to create one.
type Column struct {
	columnDef *ColumnDef
	data      []Value
}

// NewColumn creates a column holding a copy of values.
func NewColumn(columnDef *ColumnDef, values []Value) *Column {
	data := make([]Value, len(values))
	copy(data, values)
	return &Column{columnDef: columnDef, data: data}
}

func (c *Column) ColumnDef() *ColumnDef {
	return c.columnDef
}

func (c *Column) Name() string {
	return c.columnDef.Name()
}

func (c *Column) Length() int {
	return len(c.data)
}

// Value returns the cell at row i.
func (c *Column) Value(i int) (Value, error) {
	if i < 0 || i >= len(c.data) {
		return Value{}, fmt.Errorf("index %d out of bounds (length: %d)", i, len(c.data))
	}
	return c.data[i], nil
}

// GetString returns the display string of the cell at row i.
func (c *Column) GetString(i int) (string, error) {
	v, err := c.Value(i)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Values returns a copy of all cells in row order.
func (c *Column) Values() []Value {
	result := make([]Value, len(c.data))
	copy(result, c.data)
	return result
}

// Float64s returns the numeric cells in row order, skipping everything else.
func (c *Column) Float64s() []float64 {
	result := make([]float64, 0, len(c.data))
	for _, v := range c.data {
		if f, ok := v.Number(); ok {
			result = append(result, f)
		}
	}
	return result
}

// UniqueValues returns the distinct non-null cells in first-seen order.
func (c *Column) UniqueValues() []Value {
	seen := make(map[string]struct{})
	var result []Value
	var buf []byte
	for _, v := range c.data {
		if v.IsNull() {
			continue
		}
		buf = v.AppendKey(buf[:0])
		if _, ok := seen[string(buf)]; ok {
			continue
		}
		seen[string(buf)] = struct{}{}
		result = append(result, v)
	}
	return result
}

// CountNulls returns the number of missing cells.
func (c *Column) CountNulls() int {
	n := 0
	for _, v := range c.data {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// Filter returns indices where the predicate returns true
func (c *Column) Filter(predicate func(Value) bool) []int {
	indices := make([]int, 0)
	for i, v := range c.data {
		if predicate(v) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Select returns a new column made of the cells at the given rows, in the
// given order. Indices must be valid rows.
func (c *Column) Select(indices []int) *Column {
	data := make([]Value, len(indices))
	for i, idx := range indices {
		data[i] = c.data[idx]
	}
	return &Column{columnDef: c.columnDef, data: data}
}

// Builder accumulates cells for a Column.
type Builder struct {
	columnDef *ColumnDef
	data      []Value
}

// NewBuilder creates a builder whose column starts with padding null cells.
func NewBuilder(columnDef *ColumnDef, padding int) *Builder {
	b := &Builder{columnDef: columnDef, data: make([]Value, 0, padding)}
	b.PadTo(padding)
	return b
}

func (b *Builder) Append(value Value) {
	b.data = append(b.data, value)
}

func (b *Builder) Length() int {
	return len(b.data)
}

// PadTo appends null cells until the column holds n cells.
func (b *Builder) PadTo(n int) {
	for len(b.data) < n {
		b.data = append(b.data, NullValue())
	}
}

// Build returns the column. The builder can keep appending afterwards
// without affecting the returned column.
func (b *Builder) Build() *Column {
	return NewColumn(b.columnDef, b.data)
}
