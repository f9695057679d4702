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
	"sort"
)

// WellGroup holds the wellbores of one well. Completion flags are the
// union over its wellbores.
type WellGroup struct {
	WellUUID             string
	UniqueWellIdentifier string
	Wellbores            []WellboreHeader
	HasPerforations      bool
	HasScreens           bool
	CompletionTypes      []CompletionType
}

// BlockGroup holds the wells of one block, sorted by identifier.
type BlockGroup struct {
	Name            string
	Wells           []*WellGroup
	TotalWellbores  int
	HasPerforations bool
	HasScreens      bool
	CompletionTypes []CompletionType
}

// Hierarchy is the unfiltered Block → Well → Wellbore tree together with
// the sorted distinct values available for filtering.
type Hierarchy struct {
	Blocks            []*BlockGroup
	Purposes          []string
	Statuses          []string
	CompletionTypes   []CompletionType
	CompletionDetails []string
}

// BuildHierarchy groups wellbores by well and wells by block. A nil
// blockName uses BlockNameFromWellIdentifier. The input is not modified.
func BuildHierarchy(wellbores []WellboreHeader, blockName BlockNameFunc) *Hierarchy {
	if blockName == nil {
		blockName = BlockNameFromWellIdentifier
	}

	var wells []*WellGroup
	wellByUUID := map[string]*WellGroup{}
	for _, wb := range wellbores {
		well, ok := wellByUUID[wb.WellUUID]
		if !ok {
			well = &WellGroup{
				WellUUID:             wb.WellUUID,
				UniqueWellIdentifier: wb.UniqueWellIdentifier,
			}
			wellByUUID[wb.WellUUID] = well
			wells = append(wells, well)
		}
		well.Wellbores = append(well.Wellbores, wb)
		well.HasPerforations = well.HasPerforations || wb.HasPerforations()
		well.HasScreens = well.HasScreens || wb.HasScreens()
	}

	var blocks []*BlockGroup
	blockByName := map[string]*BlockGroup{}
	for _, well := range wells {
		well.CompletionTypes = completionTypes(well.HasPerforations, well.HasScreens)

		name := blockName(well.UniqueWellIdentifier)
		block, ok := blockByName[name]
		if !ok {
			block = &BlockGroup{Name: name}
			blockByName[name] = block
			blocks = append(blocks, block)
		}
		block.Wells = append(block.Wells, well)
		block.TotalWellbores += len(well.Wellbores)
		block.HasPerforations = block.HasPerforations || well.HasPerforations
		block.HasScreens = block.HasScreens || well.HasScreens
	}

	for _, block := range blocks {
		block.CompletionTypes = completionTypes(block.HasPerforations, block.HasScreens)
		sort.SliceStable(block.Wells, func(i, j int) bool {
			return block.Wells[i].UniqueWellIdentifier < block.Wells[j].UniqueWellIdentifier
		})
	}
	sortBlocks(blocks)

	h := &Hierarchy{Blocks: blocks}
	h.collectFilterValues(wellbores)
	return h
}

// sortBlocks orders blocks by name with OtherBlock last.
func sortBlocks(blocks []*BlockGroup) {
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i].Name, blocks[j].Name
		if a == OtherBlock || b == OtherBlock {
			return b == OtherBlock && a != OtherBlock
		}
		return a < b
	})
}

// collectFilterValues fills the sorted distinct purposes, statuses,
// completion types and completion details of wellbores.
func (h *Hierarchy) collectFilterValues(wellbores []WellboreHeader) {
	purposes := map[string]struct{}{}
	statuses := map[string]struct{}{}
	types := map[CompletionType]struct{}{}
	details := map[string]struct{}{}
	for _, wb := range wellbores {
		if wb.WellborePurpose != "" {
			purposes[wb.WellborePurpose] = struct{}{}
		}
		if wb.WellboreStatus != "" {
			statuses[wb.WellboreStatus] = struct{}{}
		}
		for _, t := range wb.CompletionTypes() {
			types[t] = struct{}{}
		}
		for _, marker := range wb.PerforationAndScreens {
			details[marker] = struct{}{}
		}
	}

	h.Purposes = sortedKeys(purposes)
	h.Statuses = sortedKeys(statuses)
	h.CompletionDetails = sortedKeys(details)
	h.CompletionTypes = make([]CompletionType, 0, len(types))
	for t := range types {
		h.CompletionTypes = append(h.CompletionTypes, t)
	}
	sort.Slice(h.CompletionTypes, func(i, j int) bool {
		return h.CompletionTypes[i] < h.CompletionTypes[j]
	})
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Wellbores returns every wellbore of the tree in hierarchy order.
func (h *Hierarchy) Wellbores() []WellboreHeader {
	return flatten(h.Blocks)
}

func flatten(blocks []*BlockGroup) []WellboreHeader {
	var result []WellboreHeader
	for _, block := range blocks {
		for _, well := range block.Wells {
			result = append(result, well.Wellbores...)
		}
	}
	return result
}
