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

// Package inplacevolumes turns inplace volumetric results of ensembles into
// a single columnar table that can be split and aggregated for plotting.
package inplacevolumes

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/strata/core/columns"
)

// Names of the columns added to every row on ingestion, plus the selector
// column that holds the realization number.
const (
	ColumnEnsemble    = "ENSEMBLE"
	ColumnTableName   = "TABLE_NAME"
	ColumnFluid       = "FLUID"
	ColumnRealization = "REAL"
)

// Record is the inplace volume data of one table of one ensemble.
type Record struct {
	EnsembleIdent columns.EnsembleIdent `json:"ensembleIdent"`
	TableName     string                `json:"tableName"`
	Data          TableData             `json:"data"`
}

type TableData struct {
	TableDataPerFluidSelection []FluidSelectionData `json:"tableDataPerFluidSelection"`
}

// FluidSelectionData holds the rows of one fluid selection (oil, gas,
// water or a sum of them).
type FluidSelectionData struct {
	FluidSelection  string           `json:"fluidSelection"`
	SelectorColumns []SelectorColumn `json:"selectorColumns"`
	ResultColumns   []ResultColumn   `json:"resultColumns"`
}

// SelectorColumn is a dictionary encoded categorical column: row i holds
// UniqueValues[Indices[i]].
type SelectorColumn struct {
	ColumnName   string          `json:"columnName"`
	UniqueValues []columns.Value `json:"uniqueValues"`
	Indices      []int           `json:"indices"`
}

// ResultColumn is a dense numeric column.
type ResultColumn struct {
	ColumnName   string    `json:"columnName"`
	ColumnValues []float64 `json:"columnValues"`
}

// DecodeJSON reads a JSON array of records.
func DecodeJSON(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode inplace volumes: %w", err)
	}
	return records, nil
}

// DecodeJSONFile reads a JSON array of records from a file.
func DecodeJSONFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return DecodeJSON(file)
}
