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

package tables

import (
	"fmt"
	"strconv"
	"strings"
)

const rowsHeader = "rows"

// ToAscii returns the groups of the collection as an ASCII table: one column
// per grouping column followed by the number of rows in the group.
func (c *Collection) ToAscii() string {
	var sb strings.Builder

	header := append(c.CollectedBy(), rowsHeader)
	cells := make([][]string, len(c.groups))
	for i, g := range c.groups {
		row := make([]string, 0, len(header))
		for _, v := range g.Key.Values() {
			row = append(row, v.String())
		}
		row = append(row, strconv.Itoa(g.Length()))
		cells[i] = row
	}

	colWidths := calculateColumnWidths(header, cells)

	writeSeparator(&sb, colWidths)
	writeRow(&sb, header, colWidths)
	writeSeparator(&sb, colWidths)
	for _, row := range cells {
		writeRow(&sb, row, colWidths)
	}
	writeSeparator(&sb, colWidths)

	return sb.String()
}

// calculateColumnWidths calculates the width needed for each column
func calculateColumnWidths(header []string, cells [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = max(1, len(h))
	}
	for _, row := range cells {
		for i, val := range row {
			if len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}
	return widths
}

func writeSeparator(sb *strings.Builder, widths []int) {
	for _, w := range widths {
		sb.WriteString("|")
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteString("|\n")
}

func writeRow(sb *strings.Builder, row []string, widths []int) {
	for i, w := range widths {
		sb.WriteString("|")
		sb.WriteString(fmt.Sprintf("%-*s", w, row[i]))
	}
	sb.WriteString("|\n")
}
