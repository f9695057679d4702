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
	"github.com/google/strata/core/columns"
	"github.com/google/strata/core/grouping"
)

// SplitByColumns groups the rows of the table by the tuple of their values
// in names. Rows with a null in any of the columns belong to no group.
//
// When a column is missing the returned collection is empty and the error
// is a *ColumnNotFoundError, so callers can tell a misconfigured grouping
// from a table without data.
func (dt *DataTable) SplitByColumns(names []string) (*Collection, error) {
	collectedBy := make(CollectedBy, len(names))
	copy(collectedBy, names)

	if len(names) == 0 {
		return newCollection(dt, collectedBy, nil), ErrNoGroupingColumns
	}
	if err := dt.ValidateColumns(names); err != nil {
		return newCollection(dt, collectedBy, nil), err
	}

	cols := make([]*columns.Column, len(names))
	for i, name := range names {
		cols[i] = dt.columns[name]
	}
	groups := grouping.GroupIndices(grouping.AllIndices(dt.rowCount), cols)
	return newCollection(dt, collectedBy, groups), nil
}

// SplitByColumn groups rows by a single column. Group keys hold the raw
// column value, see grouping.Key.Value.
func (dt *DataTable) SplitByColumn(name string) (*Collection, error) {
	return dt.SplitByColumns([]string{name})
}
