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
	"errors"
	"fmt"
	"strings"
)

// ErrNoGroupingColumns is returned when splitting by an empty column list.
var ErrNoGroupingColumns = errors.New("at least one grouping column is required")

// ColumnNotFoundError reports columns that are not part of a table.
type ColumnNotFoundError struct {
	Names []string
}

func (e *ColumnNotFoundError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	if len(quoted) == 1 {
		return fmt.Sprintf("column %s not found", quoted[0])
	}
	return fmt.Sprintf("columns %s not found", strings.Join(quoted, ", "))
}

// LengthMismatchError reports a column whose length differs from the table's.
type LengthMismatchError struct {
	Column   string
	Length   int
	RowCount int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("column %q has %d values, expected %d", e.Column, e.Length, e.RowCount)
}
