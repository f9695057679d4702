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

// Package aggregates computes statistics over numeric result values:
// running aggregate states, quantiles, summaries for distribution plots and
// convergence traces over realizations.
package aggregates

import (
	"fmt"
	"math"

	"github.com/google/strata/core/columns"
)

// NumericAggState stores intermediate state for numeric aggregates.
// It can derive sum, avg, stddev, min, max, and count.
type NumericAggState struct {
	Count int64   // Number of values
	Sum   float64 // Sum of values
	SumSq float64 // Sum of squared values (for stddev)
	Min   float64 // Minimum value
	Max   float64 // Maximum value
}

// NewNumericAggState creates a new empty numeric aggregate state.
func NewNumericAggState() *NumericAggState {
	return &NumericAggState{
		Min: math.MaxFloat64,
		Max: -math.MaxFloat64,
	}
}

// Add adds a single value to the aggregate state.
func (s *NumericAggState) Add(value float64) {
	s.Count++
	s.Sum += value
	s.SumSq += value * value
	if value < s.Min {
		s.Min = value
	}
	if value > s.Max {
		s.Max = value
	}
}

// AddValue adds a numeric cell; other cells are ignored.
func (s *NumericAggState) AddValue(v columns.Value) {
	if f, ok := v.Number(); ok {
		s.Add(f)
	}
}

// Combine merges another numeric state into this one.
func (s *NumericAggState) Combine(o *NumericAggState) {
	if o == nil || o.Count == 0 {
		return
	}
	s.Count += o.Count
	s.Sum += o.Sum
	s.SumSq += o.SumSq
	if o.Min < s.Min {
		s.Min = o.Min
	}
	if o.Max > s.Max {
		s.Max = o.Max
	}
}

// Avg returns the average (mean) of the values.
func (s *NumericAggState) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// StdDev returns the population standard deviation.
func (s *NumericAggState) StdDev() float64 {
	if s.Count == 0 {
		return 0
	}
	mean := s.Avg()
	// Variance = E[X²] - (E[X])²
	variance := (s.SumSq / float64(s.Count)) - (mean * mean)
	if variance < 0 {
		// Handle floating point precision issues
		variance = 0
	}
	return math.Sqrt(variance)
}

// AggregateColumn folds every numeric cell of col into a new state.
func AggregateColumn(col *columns.Column) *NumericAggState {
	s := NewNumericAggState()
	for _, v := range col.Values() {
		s.AddValue(v)
	}
	return s
}

// formatNumber shows integers without decimals and other values with up
// to two decimals.
func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return columns.FormatFloat64(v)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	formatted := fmt.Sprintf("%.2f", v)
	// Trim trailing zeros after decimal point
	if idx := len(formatted) - 1; formatted[idx] == '0' {
		formatted = formatted[:idx]
		if idx--; formatted[idx] == '0' {
			formatted = formatted[:idx]
		}
	}
	if formatted[len(formatted)-1] == '.' {
		formatted = formatted[:len(formatted)-1]
	}
	return formatted
}
