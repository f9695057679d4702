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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Header names of the wellbore CSV format.
const (
	HeaderWellboreUUID             = "wellboreUuid"
	HeaderUniqueWellboreIdentifier = "uniqueWellboreIdentifier"
	HeaderWellUUID                 = "wellUuid"
	HeaderUniqueWellIdentifier     = "uniqueWellIdentifier"
	HeaderWellborePurpose          = "wellborePurpose"
	HeaderWellboreStatus           = "wellboreStatus"
	HeaderPerforationAndScreens    = "perforationAndScreens"
)

// ErrMissingHeader is returned when a required column is absent.
var ErrMissingHeader = errors.New("missing required header")

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// ListSeparator separates completion markers inside one cell
	ListSeparator string
	// HeaderAliases maps header names found in the file to the standard
	// header names, e.g. "UWI" to "uniqueWellIdentifier"
	HeaderAliases map[string]string
	Logger        zerolog.Logger
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		Delimiter:     ',',
		ListSeparator: ";",
		HeaderAliases: make(map[string]string),
		Logger:        zerolog.Nop(),
	}
}

// ImportFromFile imports wellbore headers from a CSV file.
func ImportFromFile(filepath string, options ImportOptions) ([]WellboreHeader, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ImportFromReader(file, options)
}

// ImportFromReader imports wellbore headers from CSV data with a header row.
// Rows without a wellbore uuid are skipped. A missing completion column
// gives every wellbore an empty completion list.
func ImportFromReader(reader io.Reader, options ImportOptions) ([]WellboreHeader, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headerIndex := make(map[string]int)
	for i, header := range records[0] {
		name := strings.TrimSpace(header)
		if alias, ok := options.HeaderAliases[name]; ok {
			name = alias
		}
		headerIndex[name] = i
	}
	for _, required := range []string{HeaderWellboreUUID, HeaderWellUUID} {
		if _, ok := headerIndex[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingHeader, required)
		}
	}

	separator := options.ListSeparator
	if separator == "" {
		separator = ";"
	}

	field := func(row []string, header string) string {
		i, ok := headerIndex[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := make([]WellboreHeader, 0, len(records)-1)
	skipped := 0
	for _, row := range records[1:] {
		wb := WellboreHeader{
			WellboreUUID:             field(row, HeaderWellboreUUID),
			UniqueWellboreIdentifier: field(row, HeaderUniqueWellboreIdentifier),
			WellUUID:                 field(row, HeaderWellUUID),
			UniqueWellIdentifier:     field(row, HeaderUniqueWellIdentifier),
			WellborePurpose:          field(row, HeaderWellborePurpose),
			WellboreStatus:           field(row, HeaderWellboreStatus),
			PerforationAndScreens:    splitList(field(row, HeaderPerforationAndScreens), separator),
		}
		if wb.WellboreUUID == "" {
			skipped++
			continue
		}
		result = append(result, wb)
	}

	options.Logger.Debug().Int("wellbores", len(result)).Int("skipped", skipped).Msg("wellbore headers imported")
	return result, nil
}

func splitList(value, separator string) []string {
	result := []string{}
	for _, part := range strings.Split(value, separator) {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
