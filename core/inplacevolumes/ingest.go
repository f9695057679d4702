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

package inplacevolumes

import (
	"fmt"

	"github.com/google/strata/core/columns"
	"github.com/google/strata/core/tables"
	"github.com/rs/zerolog"
)

// Options configures ingestion.
type Options struct {
	Logger zerolog.Logger
}

// DefaultOptions returns options that log nothing.
func DefaultOptions() Options {
	return Options{Logger: zerolog.Nop()}
}

// FromAPIData builds one table holding the rows of every fluid selection of
// every record. Selector columns are decoded from their dictionaries,
// result columns are copied, and ENSEMBLE, TABLE_NAME and FLUID are added
// to every row. Columns a fluid selection does not carry are null for its
// rows.
func FromAPIData(records []Record, options Options) (*tables.DataTable, error) {
	builder := tables.NewBuilder(options.Logger)
	for _, record := range records {
		for _, fluidData := range record.Data.TableDataPerFluidSelection {
			batch, rows, err := decodeFluidSelection(record, fluidData)
			if err == nil {
				err = builder.AppendBatch(rows, batch)
			}
			if err != nil {
				return nil, fmt.Errorf("ensemble %s, table %q, fluid %q: %w",
					record.EnsembleIdent, record.TableName, fluidData.FluidSelection, err)
			}
		}
	}

	table := builder.Build()
	options.Logger.Debug().
		Int("records", len(records)).
		Int("rows", table.Length()).
		Strs("columns", table.GetColumnNames()).
		Msg("inplace volumes table built")
	return table, nil
}

func decodeFluidSelection(record Record, fluidData FluidSelectionData) ([]tables.BatchColumn, int, error) {
	rows := -1
	checkRows := func(name string, n int) error {
		if rows < 0 {
			rows = n
			return nil
		}
		if n != rows {
			return &tables.LengthMismatchError{Column: name, Length: n, RowCount: rows}
		}
		return nil
	}
	for _, sel := range fluidData.SelectorColumns {
		if err := checkRows(sel.ColumnName, len(sel.Indices)); err != nil {
			return nil, 0, err
		}
	}
	for _, res := range fluidData.ResultColumns {
		if err := checkRows(res.ColumnName, len(res.ColumnValues)); err != nil {
			return nil, 0, err
		}
	}
	if rows < 0 {
		rows = 0
	}

	batch := make([]tables.BatchColumn, 0, len(fluidData.SelectorColumns)+len(fluidData.ResultColumns)+3)
	for _, sel := range fluidData.SelectorColumns {
		values := make([]columns.Value, rows)
		for i, idx := range sel.Indices {
			if idx < 0 || idx >= len(sel.UniqueValues) {
				return nil, 0, fmt.Errorf("selector column %q: index %d out of range [0:%d)", sel.ColumnName, idx, len(sel.UniqueValues))
			}
			values[i] = sel.UniqueValues[idx]
		}
		batch = append(batch, tables.BatchColumn{Name: sel.ColumnName, Values: values})
	}
	for _, res := range fluidData.ResultColumns {
		values := make([]columns.Value, rows)
		for i, f := range res.ColumnValues {
			values[i] = columns.NumberValue(f)
		}
		batch = append(batch, tables.BatchColumn{Name: res.ColumnName, Values: values})
	}

	batch = append(batch,
		constantColumn(ColumnEnsemble, columns.EnsembleValue(record.EnsembleIdent), rows),
		constantColumn(ColumnTableName, columns.StringValue(record.TableName), rows),
		constantColumn(ColumnFluid, columns.StringValue(fluidData.FluidSelection), rows),
	)
	return batch, rows, nil
}

func constantColumn(name string, v columns.Value, rows int) tables.BatchColumn {
	values := make([]columns.Value, rows)
	for i := range values {
		values[i] = v
	}
	return tables.BatchColumn{Name: name, Values: values}
}
