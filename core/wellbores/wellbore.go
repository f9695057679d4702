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

// Package wellbores organizes wellbore headers into a Block → Well →
// Wellbore hierarchy with completion attributes, and filters that
// hierarchy by free text and categorical criteria.
package wellbores

// ScreenMarker is the completion marker of a screen. Every other marker
// names a perforation status.
const ScreenMarker = "Screen"

// CompletionType classifies the completions of a wellbore or group.
type CompletionType string

const (
	CompletionPerforated CompletionType = "perforated"
	CompletionScreened   CompletionType = "screened"
	CompletionNone       CompletionType = "none"
)

// WellboreHeader is the header record of one wellbore.
type WellboreHeader struct {
	WellboreUUID             string   `json:"wellboreUuid"`
	UniqueWellboreIdentifier string   `json:"uniqueWellboreIdentifier"`
	WellUUID                 string   `json:"wellUuid"`
	UniqueWellIdentifier     string   `json:"uniqueWellIdentifier"`
	WellborePurpose          string   `json:"wellborePurpose"`
	WellboreStatus           string   `json:"wellboreStatus"`
	PerforationAndScreens    []string `json:"perforationAndScreens"`
}

// HasPerforations reports whether any completion marker is not a screen.
func (w WellboreHeader) HasPerforations() bool {
	for _, marker := range w.PerforationAndScreens {
		if marker != ScreenMarker {
			return true
		}
	}
	return false
}

// HasScreens reports whether any completion marker is a screen.
func (w WellboreHeader) HasScreens() bool {
	for _, marker := range w.PerforationAndScreens {
		if marker == ScreenMarker {
			return true
		}
	}
	return false
}

// CompletionTypes classifies the wellbore.
func (w WellboreHeader) CompletionTypes() []CompletionType {
	return completionTypes(w.HasPerforations(), w.HasScreens())
}

// completionTypes returns perforated and/or screened, or none when neither
// flag is set.
func completionTypes(hasPerforations, hasScreens bool) []CompletionType {
	var types []CompletionType
	if hasPerforations {
		types = append(types, CompletionPerforated)
	}
	if hasScreens {
		types = append(types, CompletionScreened)
	}
	if len(types) == 0 {
		types = append(types, CompletionNone)
	}
	return types
}
