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

package wellbores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWellbores() []WellboreHeader {
	return []WellboreHeader{
		{WellboreUUID: "wb1", UniqueWellboreIdentifier: "NO 15/9-F-1", WellUUID: "w1", UniqueWellIdentifier: "NO 15/9-F-1",
			WellborePurpose: "Production", WellboreStatus: "Active", PerforationAndScreens: []string{"Open"}},
		{WellboreUUID: "wb2", UniqueWellboreIdentifier: "NO 15/9-F-1 A", WellUUID: "w1", UniqueWellIdentifier: "NO 15/9-F-1",
			WellborePurpose: "Production", WellboreStatus: "Plugged", PerforationAndScreens: []string{"Screen"}},
		{WellboreUUID: "wb3", UniqueWellboreIdentifier: "NO 15/9-A-4", WellUUID: "w2", UniqueWellIdentifier: "NO 15/9-A-4",
			WellborePurpose: "Injection", WellboreStatus: "Active"},
		{WellboreUUID: "wb4", UniqueWellboreIdentifier: "NO 34/10-B-2", WellUUID: "w3", UniqueWellIdentifier: "NO 34/10-B-2",
			WellborePurpose: "Observation", WellboreStatus: "Active", PerforationAndScreens: []string{"Squeezed", "Screen"}},
		{WellboreUUID: "wb5", UniqueWellboreIdentifier: "Exploration X", WellUUID: "w4", UniqueWellIdentifier: "Exploration X",
			WellborePurpose: "Exploration", WellboreStatus: "Abandoned"},
	}
}

func blockNames(blocks []*BlockGroup) []string {
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name
	}
	return names
}

func TestCompletionClassification(t *testing.T) {
	testCases := []struct {
		markers []string
		want    []CompletionType
	}{
		{nil, []CompletionType{CompletionNone}},
		{[]string{}, []CompletionType{CompletionNone}},
		{[]string{"Open"}, []CompletionType{CompletionPerforated}},
		{[]string{"Screen"}, []CompletionType{CompletionScreened}},
		{[]string{"Screen", "Squeezed"}, []CompletionType{CompletionPerforated, CompletionScreened}},
	}
	for _, tc := range testCases {
		wb := WellboreHeader{PerforationAndScreens: tc.markers}
		got := wb.CompletionTypes()
		assert.Equal(t, tc.want, got, "markers %v", tc.markers)
		isNone := len(got) == 1 && got[0] == CompletionNone
		assert.Equal(t, !wb.HasPerforations() && !wb.HasScreens(), isNone)
	}
}

func TestBuildHierarchy_SameWellMixedCompletions(t *testing.T) {
	h := BuildHierarchy([]WellboreHeader{
		{WellboreUUID: "a", WellUUID: "w1", UniqueWellIdentifier: "A-1", PerforationAndScreens: []string{"OpenHole"}},
		{WellboreUUID: "b", WellUUID: "w1", UniqueWellIdentifier: "A-1", PerforationAndScreens: []string{"Screen"}},
	}, nil)

	require.Len(t, h.Blocks, 1)
	require.Len(t, h.Blocks[0].Wells, 1)
	well := h.Blocks[0].Wells[0]
	assert.Equal(t, "w1", well.WellUUID)
	assert.Len(t, well.Wellbores, 2)
	assert.True(t, well.HasPerforations)
	assert.True(t, well.HasScreens)
	assert.Equal(t, []CompletionType{CompletionPerforated, CompletionScreened}, well.CompletionTypes)
}

func TestBuildHierarchy_BlockOrdering(t *testing.T) {
	names := map[string]string{"w1": "B", "w2": "Other", "w3": "A"}
	h := BuildHierarchy([]WellboreHeader{
		{WellboreUUID: "1", WellUUID: "w1", UniqueWellIdentifier: "w1"},
		{WellboreUUID: "2", WellUUID: "w2", UniqueWellIdentifier: "w2"},
		{WellboreUUID: "3", WellUUID: "w3", UniqueWellIdentifier: "w3"},
	}, func(id string) string { return names[id] })

	assert.Equal(t, []string{"A", "B", "Other"}, blockNames(h.Blocks))
}

func TestBuildHierarchy(t *testing.T) {
	h := BuildHierarchy(sampleWellbores(), nil)

	assert.Equal(t, []string{"15/9", "34/10", OtherBlock}, blockNames(h.Blocks))

	block := h.Blocks[0]
	assert.Equal(t, 3, block.TotalWellbores)
	require.Len(t, block.Wells, 2)
	// Wells sorted by identifier: A-4 before F-1.
	assert.Equal(t, "NO 15/9-A-4", block.Wells[0].UniqueWellIdentifier)
	assert.Equal(t, "NO 15/9-F-1", block.Wells[1].UniqueWellIdentifier)
	assert.Equal(t, []CompletionType{CompletionNone}, block.Wells[0].CompletionTypes)
	assert.True(t, block.HasPerforations)
	assert.True(t, block.HasScreens)

	other := h.Blocks[2]
	assert.Equal(t, []CompletionType{CompletionNone}, other.CompletionTypes)

	assert.Equal(t, []string{"Abandoned", "Active", "Plugged"}, h.Statuses)
	assert.Equal(t, []string{"Exploration", "Injection", "Observation", "Production"}, h.Purposes)
	assert.Equal(t, []CompletionType{CompletionNone, CompletionPerforated, CompletionScreened}, h.CompletionTypes)
	assert.Equal(t, []string{"Open", "Screen", "Squeezed"}, h.CompletionDetails)
	assert.Len(t, h.Wellbores(), 5)
}

func TestBuildHierarchy_Empty(t *testing.T) {
	h := BuildHierarchy(nil, nil)
	assert.Empty(t, h.Blocks)
	assert.Empty(t, h.Purposes)
	assert.Empty(t, h.Filter(FilterState{}).Wellbores)
}

func TestFilter_NoMatchingPurpose(t *testing.T) {
	h := BuildHierarchy(sampleWellbores(), nil)

	filtered := h.Filter(FilterState{Purposes: []string{"Injector"}})

	assert.Empty(t, filtered.Blocks)
	assert.Empty(t, filtered.Wellbores)
}

func TestFilter_EmptyStateKeepsEverything(t *testing.T) {
	h := BuildHierarchy(sampleWellbores(), nil)
	state := FilterState{SearchText: "   "}
	require.True(t, state.IsEmpty())

	filtered := h.Filter(state)

	assert.Equal(t, blockNames(h.Blocks), blockNames(filtered.Blocks))
	assert.Equal(t, h.Wellbores(), filtered.Wellbores)
}

func TestFilter_Conjunction(t *testing.T) {
	h := BuildHierarchy(sampleWellbores(), nil)

	filtered := h.Filter(FilterState{
		Purposes: []string{"Production", "Injection"},
		Statuses: []string{"Active"},
	})

	assert.Equal(t, []string{"wb3", "wb1"}, filtered.WellboreUUIDs())
	require.Len(t, filtered.Blocks, 1)
	assert.Equal(t, 2, filtered.Blocks[0].TotalWellbores)
	// The unfiltered tree is left alone.
	assert.Equal(t, 3, h.Blocks[0].TotalWellbores)
	assert.Len(t, h.Blocks[0].Wells[1].Wellbores, 2)
}

func TestFilter_Search(t *testing.T) {
	h := BuildHierarchy(sampleWellbores(), nil)

	testCases := []struct {
		search string
		want   []string
	}{
		{"f-1 a", []string{"wb2"}},
		{"PLUGGED", []string{"wb2"}},
		{"34/10", []string{"wb4"}},
		{"other", []string{"wb5"}},
		{"observ", []string{"wb4"}},
		{"nothing like this", []string{}},
	}
	for _, tc := range testCases {
		filtered := h.Filter(FilterState{SearchText: tc.search})
		assert.Equal(t, tc.want, filtered.WellboreUUIDs(), "search %q", tc.search)
	}
}

func TestFilter_Completions(t *testing.T) {
	h := BuildHierarchy(sampleWellbores(), nil)

	screened := h.Filter(FilterState{CompletionTypes: []CompletionType{CompletionScreened}})
	assert.Equal(t, []string{"wb2", "wb4"}, screened.WellboreUUIDs())

	none := h.Filter(FilterState{CompletionTypes: []CompletionType{CompletionNone}})
	assert.Equal(t, []string{"wb3", "wb5"}, none.WellboreUUIDs())

	details := h.Filter(FilterState{CompletionDetails: []string{"Screen", "Open"}})
	assert.Equal(t, []string{"wb1", "wb2", "wb4"}, details.WellboreUUIDs())

	// Well flags describe the whole well, not the filtered subset.
	require.Len(t, details.Blocks, 2)
	well := details.Blocks[0].Wells[0]
	assert.True(t, well.HasPerforations)
	assert.True(t, well.HasScreens)
}

func TestFilter_IsSubset(t *testing.T) {
	h := BuildHierarchy(sampleWellbores(), nil)
	all := map[string]bool{}
	for _, wb := range h.Wellbores() {
		all[wb.WellboreUUID] = true
	}

	states := []FilterState{
		{Purposes: []string{"Production"}},
		{Statuses: []string{"Active", "Abandoned"}},
		{CompletionTypes: []CompletionType{CompletionPerforated}},
		{CompletionDetails: []string{"Squeezed"}},
		{SearchText: "15/9", Statuses: []string{"Active"}},
	}
	for _, state := range states {
		filtered := h.Filter(state)
		assert.LessOrEqual(t, len(filtered.Wellbores), len(all))
		for _, uuid := range filtered.WellboreUUIDs() {
			assert.True(t, all[uuid], "unexpected wellbore %s", uuid)
		}
		for _, block := range filtered.Blocks {
			assert.NotEmpty(t, block.Wells)
			sum := 0
			for _, well := range block.Wells {
				assert.NotEmpty(t, well.Wellbores)
				sum += len(well.Wellbores)
			}
			assert.Equal(t, sum, block.TotalWellbores)
		}
	}
}

func TestBlockNameFromWellIdentifier(t *testing.T) {
	testCases := map[string]string{
		"NO 15/9-F-1":   "15/9",
		"34/10-A-12 H":  "34/10",
		"NO 6507/7-A-1": "6507/7",
		"Exploration X": OtherBlock,
		"":              OtherBlock,
	}
	for id, want := range testCases {
		assert.Equal(t, want, BlockNameFromWellIdentifier(id), "identifier %q", id)
	}
}
