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
	"fmt"
	"sort"

	"github.com/google/strata/core/columns"
)

// DataTable is an immutable set of equally long columns.
// Every transformation returns a new table.
type DataTable struct {
	columns  map[string]*columns.Column
	rowCount int
}

// NewDataTable creates a table from columns that must all have the same
// length and distinct names.
func NewDataTable(cols ...*columns.Column) (*DataTable, error) {
	dt := &DataTable{columns: make(map[string]*columns.Column, len(cols))}
	for i, col := range cols {
		name := col.Name()
		if _, exists := dt.columns[name]; exists {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		if i == 0 {
			dt.rowCount = col.Length()
		} else if col.Length() != dt.rowCount {
			return nil, &LengthMismatchError{Column: name, Length: col.Length(), RowCount: dt.rowCount}
		}
		dt.columns[name] = col
	}
	return dt, nil
}

// Length returns the number of rows.
func (dt *DataTable) Length() int {
	return dt.rowCount
}

// GetColumn returns the named column. A missing column is reported through
// the boolean, never as an error.
func (dt *DataTable) GetColumn(name string) (*columns.Column, bool) {
	col, ok := dt.columns[name]
	return col, ok
}

func (dt *DataTable) HasColumn(name string) bool {
	_, ok := dt.columns[name]
	return ok
}

// GetColumnNames returns the column names in ascending order.
func (dt *DataTable) GetColumnNames() []string {
	names := make([]string, 0, len(dt.columns))
	for name := range dt.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateColumns checks that every name is a column of the table.
func (dt *DataTable) ValidateColumns(names []string) error {
	var missing []string
	for _, name := range names {
		if !dt.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ColumnNotFoundError{Names: missing}
	}
	return nil
}

// FilterByIndices returns a table made of the given rows, in the given
// order. Indices are not validated and must be below Length().
func (dt *DataTable) FilterByIndices(indices []int) *DataTable {
	filtered := &DataTable{
		columns:  make(map[string]*columns.Column, len(dt.columns)),
		rowCount: len(indices),
	}
	for name, col := range dt.columns {
		filtered.columns[name] = col.Select(indices)
	}
	return filtered
}
