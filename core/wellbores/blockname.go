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
	"regexp"
)

// OtherBlock collects wells whose identifier names no block. It always
// sorts after the named blocks.
const OtherBlock = "Other"

// BlockNameFunc maps a unique well identifier to the name of its block.
type BlockNameFunc func(uniqueWellIdentifier string) string

// wellNamePattern matches the block part of identifiers such as
// "NO 15/9-F-1" or "34/10-A-12 H".
var wellNamePattern = regexp.MustCompile(`^(?:NO\s+)?(\d+/\d+)-`)

// BlockNameFromWellIdentifier returns the quadrant/block of a well named
// after the Norwegian convention, or OtherBlock.
func BlockNameFromWellIdentifier(uniqueWellIdentifier string) string {
	match := wellNamePattern.FindStringSubmatch(uniqueWellIdentifier)
	if match == nil {
		return OtherBlock
	}
	return match[1]
}
