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

// Quantile returns the p-quantile of values using linear interpolation
// between closest ranks (h = (n-1)p). NaN values are ignored. It returns
// NaN when no value remains or p is outside [0, 1].
func Quantile(values []float64, p float64) float64 {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)
	return QuantileSorted(sorted, p)
}

// QuantileSorted is Quantile for values already sorted ascending and free
// of NaN.
func QuantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(p) || p < 0 || p > 1 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Mean returns the arithmetic mean, or NaN for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Statistics summarizes a distribution of result values.
// P10 and P90 follow the reservoir convention: P10 is the high estimate
// (0.9 quantile) and P90 the low estimate (0.1 quantile).
type Statistics struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P10    float64
	P50    float64
	P90    float64
}

// P10 and P90 in terms of quantiles.
const (
	P10Quantile = 0.9
	P50Quantile = 0.5
	P90Quantile = 0.1
)

// Summarize computes Statistics over values, ignoring NaN.
// An empty input yields a zero Count and NaN everywhere else.
func Summarize(values []float64) Statistics {
	sorted := make([]float64, 0, len(values))
	state := NewNumericAggState()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sorted = append(sorted, v)
		state.Add(v)
	}
	if len(sorted) == 0 {
		nan := math.NaN()
		return Statistics{Mean: nan, StdDev: nan, Min: nan, Max: nan, P10: nan, P50: nan, P90: nan}
	}
	sort.Float64s(sorted)
	return Statistics{
		Count:  len(sorted),
		Mean:   state.Avg(),
		StdDev: state.StdDev(),
		Min:    state.Min,
		Max:    state.Max,
		P10:    QuantileSorted(sorted, P10Quantile),
		P50:    QuantileSorted(sorted, P50Quantile),
		P90:    QuantileSorted(sorted, P90Quantile),
	}
}

func (s Statistics) String() string {
	return fmt.Sprintf("n=%d mean=%s p90=%s p50=%s p10=%s min=%s max=%s",
		s.Count, formatNumber(s.Mean), formatNumber(s.P90), formatNumber(s.P50),
		formatNumber(s.P10), formatNumber(s.Min), formatNumber(s.Max))
}
