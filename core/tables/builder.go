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

	"github.com/google/strata/core/columns"
	"github.com/rs/zerolog"
)

// BatchColumn holds the values one batch contributes to a column.
type BatchColumn struct {
	Name   string
	Values []columns.Value
}

// Builder assembles a DataTable from batches that may each carry a
// different set of columns. After every batch all known columns have the
// same length: columns a batch does not mention are padded with nulls, and
// a column first seen in a later batch starts with nulls for earlier rows.
type Builder struct {
	builders map[string]*columns.Builder
	order    []string
	rowCount int
	logger   zerolog.Logger
}

// NewBuilder creates an empty builder.
func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{
		builders: make(map[string]*columns.Builder),
		logger:   logger,
	}
}

// Length returns the number of rows appended so far.
func (b *Builder) Length() int {
	return b.rowCount
}

// AppendBatch appends rows rows. Each column must hold exactly rows values.
// On error the builder is left unchanged.
func (b *Builder) AppendBatch(rows int, cols []BatchColumn) error {
	if rows < 0 {
		return fmt.Errorf("negative row count %d", rows)
	}
	seen := make(map[string]bool, len(cols))
	for _, col := range cols {
		if seen[col.Name] {
			return fmt.Errorf("column %q appears twice in batch", col.Name)
		}
		seen[col.Name] = true
		if len(col.Values) != rows {
			return &LengthMismatchError{Column: col.Name, Length: len(col.Values), RowCount: rows}
		}
	}

	for _, col := range cols {
		cb, ok := b.builders[col.Name]
		if !ok {
			cb = columns.NewBuilder(columns.NewColumnDef(col.Name, ""), b.rowCount)
			b.builders[col.Name] = cb
			b.order = append(b.order, col.Name)
			if b.rowCount > 0 {
				b.logger.Debug().Str("column", col.Name).Int("padding", b.rowCount).Msg("new column back-filled with nulls")
			}
		}
		for _, v := range col.Values {
			cb.Append(v)
		}
	}
	b.rowCount += rows

	padded := 0
	for _, name := range b.order {
		cb := b.builders[name]
		if cb.Length() < b.rowCount {
			cb.PadTo(b.rowCount)
			padded++
		}
	}
	b.logger.Debug().Int("rows", rows).Int("total_rows", b.rowCount).Int("padded_columns", padded).Msg("batch appended")
	return nil
}

// Build returns the table assembled so far.
func (b *Builder) Build() *DataTable {
	dt := &DataTable{
		columns:  make(map[string]*columns.Column, len(b.builders)),
		rowCount: b.rowCount,
	}
	for name, cb := range b.builders {
		dt.columns[name] = cb.Build()
	}
	return dt
}
