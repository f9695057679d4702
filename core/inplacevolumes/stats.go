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
	"math"
	"strings"

	"github.com/google/strata/core/aggregates"
	"github.com/google/strata/core/columns"
	"github.com/google/strata/core/grouping"
	"github.com/google/strata/core/tables"
)

// Convergence pairs the realization of every row with its value in
// resultName and returns the convergence trace of those pairs. Rows without
// a realization or a numeric result are skipped.
func Convergence(table *tables.DataTable, resultName string) ([]aggregates.ConvergencePoint, error) {
	if err := table.ValidateColumns([]string{ColumnRealization, resultName}); err != nil {
		return nil, err
	}
	realCol, _ := table.GetColumn(ColumnRealization)
	resultCol, _ := table.GetColumn(resultName)

	pairs := make([]aggregates.RealizationValue, 0, table.Length())
	for i := 0; i < table.Length(); i++ {
		realValue, _ := realCol.Value(i)
		resultValue, _ := resultCol.Value(i)
		realization, ok := realizationNumber(realValue)
		if !ok {
			continue
		}
		f, ok := resultValue.Number()
		if !ok {
			continue
		}
		pairs = append(pairs, aggregates.RealizationValue{Realization: realization, Value: f})
	}
	return aggregates.ConvergenceArray(pairs), nil
}

// realizationNumber accepts integral numbers and strings holding one.
func realizationNumber(v columns.Value) (int, bool) {
	f, ok := v.Number()
	if s, isStr := v.Str(); isStr {
		parsed, err := columns.ParseFloat64(strings.TrimSpace(s))
		f, ok = parsed, err == nil
	}
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// GroupConvergence is the convergence trace of one group.
type GroupConvergence struct {
	Key    grouping.Key
	Points []aggregates.ConvergencePoint
}

// ConvergencePerGroup splits table by groupBy and computes the convergence
// of resultName inside every group, in group order.
func ConvergencePerGroup(table *tables.DataTable, resultName string, groupBy []string) ([]GroupConvergence, error) {
	if err := table.ValidateColumns([]string{ColumnRealization, resultName}); err != nil {
		return nil, err
	}
	collection, err := table.SplitByColumns(groupBy)
	if err != nil {
		return nil, err
	}
	result := make([]GroupConvergence, 0, collection.Len())
	for _, entry := range collection.Entries() {
		points, err := Convergence(entry.Table, resultName)
		if err != nil {
			return nil, err
		}
		result = append(result, GroupConvergence{Key: entry.Key, Points: points})
	}
	return result, nil
}

// GroupStatistics summarizes one group.
type GroupStatistics struct {
	Key        grouping.Key
	Statistics aggregates.Statistics
}

// StatisticsPerGroup splits table by groupBy and summarizes resultName
// inside every group, in group order.
func StatisticsPerGroup(table *tables.DataTable, resultName string, groupBy []string) ([]GroupStatistics, error) {
	if err := table.ValidateColumns([]string{resultName}); err != nil {
		return nil, err
	}
	collection, err := table.SplitByColumns(groupBy)
	if err != nil {
		return nil, err
	}
	result := make([]GroupStatistics, 0, collection.Len())
	for _, entry := range collection.Entries() {
		col, _ := entry.Table.GetColumn(resultName)
		result = append(result, GroupStatistics{
			Key:        entry.Key,
			Statistics: aggregates.Summarize(col.Float64s()),
		})
	}
	return result, nil
}
