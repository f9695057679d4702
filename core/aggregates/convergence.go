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

package aggregates

import (
	"fmt"
	"math"
	"sort"
)

// RealizationValue is one result value of one realization.
type RealizationValue struct {
	Realization int
	Value       float64
}

// ConvergencePoint holds the statistics of every value up to and including
// a realization.
type ConvergencePoint struct {
	Realization int
	Mean        float64
	P10         float64
	P90         float64
}

func (p ConvergencePoint) String() string {
	return fmt.Sprintf("REAL %d mean=%s p90=%s p10=%s",
		p.Realization, formatNumber(p.Mean), formatNumber(p.P90), formatNumber(p.P10))
}

// ConvergenceArray returns one point per input value, ordered by ascending
// realization. Each point describes the cumulative sample seen so far, which
// shows how mean, P10 and P90 settle as realizations are added.
//
// Values sharing a realization keep their input order. NaN values count
// towards the mean but not towards the quantiles.
func ConvergenceArray(values []RealizationValue) []ConvergencePoint {
	ordered := make([]RealizationValue, len(values))
	copy(ordered, values)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Realization < ordered[j].Realization
	})

	result := make([]ConvergencePoint, 0, len(ordered))
	state := NewNumericAggState()
	sample := make([]float64, 0, len(ordered))
	for _, rv := range ordered {
		state.Add(rv.Value)
		if !math.IsNaN(rv.Value) {
			sample = insertSorted(sample, rv.Value)
		}
		result = append(result, ConvergencePoint{
			Realization: rv.Realization,
			Mean:        state.Avg(),
			P10:         QuantileSorted(sample, P10Quantile),
			P90:         QuantileSorted(sample, P90Quantile),
		})
	}
	return result
}

func insertSorted(sorted []float64, v float64) []float64 {
	i := sort.SearchFloat64s(sorted, v)
	sorted = append(sorted, 0)
	copy(sorted[i+1:], sorted[i:])
	sorted[i] = v
	return sorted
}
