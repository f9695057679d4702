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
	"strings"

	"golang.org/x/text/cases"
)

// FilterState selects wellbores. An empty list places no constraint on its
// category; a wellbore must pass every non-empty category.
type FilterState struct {
	// SearchText is matched case-insensitively as a substring of the
	// wellbore identifier, well identifier, purpose, status or block name.
	SearchText        string
	Purposes          []string
	Statuses          []string
	CompletionTypes   []CompletionType
	CompletionDetails []string
}

// IsEmpty reports whether the state lets every wellbore through.
func (s FilterState) IsEmpty() bool {
	return strings.TrimSpace(s.SearchText) == "" &&
		len(s.Purposes) == 0 &&
		len(s.Statuses) == 0 &&
		len(s.CompletionTypes) == 0 &&
		len(s.CompletionDetails) == 0
}

// Filtered is the pruned tree and the flat list of its wellbores.
type Filtered struct {
	Blocks    []*BlockGroup
	Wellbores []WellboreHeader
}

// WellboreUUIDs returns the uuids of the filtered wellbores in tree order.
func (f *Filtered) WellboreUUIDs() []string {
	uuids := make([]string, len(f.Wellbores))
	for i, wb := range f.Wellbores {
		uuids[i] = wb.WellboreUUID
	}
	return uuids
}

// Filter keeps the wellbores matching state. Wells and blocks left without
// wellbores are dropped, and TotalWellbores counts the surviving wellbores.
// Completion flags keep describing the whole well or block. The hierarchy
// itself is not modified.
func (h *Hierarchy) Filter(state FilterState) *Filtered {
	m := newMatcher(state)

	result := &Filtered{}
	for _, block := range h.Blocks {
		var wells []*WellGroup
		total := 0
		for _, well := range block.Wells {
			var kept []WellboreHeader
			for _, wb := range well.Wellbores {
				if m.matches(wb, block.Name) {
					kept = append(kept, wb)
				}
			}
			if len(kept) == 0 {
				continue
			}
			filteredWell := *well
			filteredWell.Wellbores = kept
			filteredWell.CompletionTypes = append([]CompletionType(nil), well.CompletionTypes...)
			wells = append(wells, &filteredWell)
			total += len(kept)
		}
		if len(wells) == 0 {
			continue
		}
		filteredBlock := *block
		filteredBlock.Wells = wells
		filteredBlock.TotalWellbores = total
		filteredBlock.CompletionTypes = append([]CompletionType(nil), block.CompletionTypes...)
		result.Blocks = append(result.Blocks, &filteredBlock)
	}
	result.Wellbores = flatten(result.Blocks)
	return result
}

type matcher struct {
	caser             cases.Caser
	search            string
	purposes          map[string]bool
	statuses          map[string]bool
	completionTypes   map[CompletionType]bool
	completionDetails map[string]bool
}

func newMatcher(state FilterState) *matcher {
	m := &matcher{
		caser:             cases.Fold(),
		purposes:          toSet(state.Purposes),
		statuses:          toSet(state.Statuses),
		completionDetails: toSet(state.CompletionDetails),
	}
	if search := strings.TrimSpace(state.SearchText); search != "" {
		m.search = m.caser.String(search)
	}
	if len(state.CompletionTypes) > 0 {
		m.completionTypes = make(map[CompletionType]bool, len(state.CompletionTypes))
		for _, t := range state.CompletionTypes {
			m.completionTypes[t] = true
		}
	}
	return m
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func (m *matcher) matches(wb WellboreHeader, blockName string) bool {
	if m.search != "" && !m.matchesSearch(wb, blockName) {
		return false
	}
	if m.purposes != nil && !m.purposes[wb.WellborePurpose] {
		return false
	}
	if m.statuses != nil && !m.statuses[wb.WellboreStatus] {
		return false
	}
	if m.completionTypes != nil && !m.matchesCompletionType(wb) {
		return false
	}
	if m.completionDetails != nil && !m.matchesCompletionDetail(wb) {
		return false
	}
	return true
}

func (m *matcher) matchesSearch(wb WellboreHeader, blockName string) bool {
	for _, field := range []string{
		wb.UniqueWellboreIdentifier,
		wb.UniqueWellIdentifier,
		wb.WellborePurpose,
		wb.WellboreStatus,
		blockName,
	} {
		if strings.Contains(m.caser.String(field), m.search) {
			return true
		}
	}
	return false
}

func (m *matcher) matchesCompletionType(wb WellboreHeader) bool {
	for _, t := range wb.CompletionTypes() {
		if m.completionTypes[t] {
			return true
		}
	}
	return false
}

func (m *matcher) matchesCompletionDetail(wb WellboreHeader) bool {
	for _, marker := range wb.PerforationAndScreens {
		if m.completionDetails[marker] {
			return true
		}
	}
	return false
}
