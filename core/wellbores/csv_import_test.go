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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFromReader(t *testing.T) {
	csvData := `wellboreUuid,uniqueWellboreIdentifier,wellUuid,uniqueWellIdentifier,wellborePurpose,wellboreStatus,perforationAndScreens
wb1,NO 15/9-F-1,w1,NO 15/9-F-1,Production,Active,Open; Screen
wb2,NO 15/9-F-1 A,w1,NO 15/9-F-1,Production,Plugged,
,missing,w9,missing,,,
wb3,NO 34/10-B-2,w3,NO 34/10-B-2,Injection,Active,Squeezed
`
	headers, err := ImportFromReader(strings.NewReader(csvData), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, headers, 3)

	assert.Equal(t, WellboreHeader{
		WellboreUUID:             "wb1",
		UniqueWellboreIdentifier: "NO 15/9-F-1",
		WellUUID:                 "w1",
		UniqueWellIdentifier:     "NO 15/9-F-1",
		WellborePurpose:          "Production",
		WellboreStatus:           "Active",
		PerforationAndScreens:    []string{"Open", "Screen"},
	}, headers[0])
	assert.NotNil(t, headers[1].PerforationAndScreens)
	assert.Empty(t, headers[1].PerforationAndScreens)
	assert.Equal(t, []string{"Squeezed"}, headers[2].PerforationAndScreens)
}

func TestImportFromReader_AliasesAndDelimiter(t *testing.T) {
	csvData := "ID\tWELL\tUWI\n" +
		"wb1\tw1\tNO 15/9-F-1\n"

	options := DefaultOptions()
	options.Delimiter = '\t'
	options.HeaderAliases = map[string]string{
		"ID":   HeaderWellboreUUID,
		"WELL": HeaderWellUUID,
		"UWI":  HeaderUniqueWellIdentifier,
	}

	headers, err := ImportFromReader(strings.NewReader(csvData), options)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, "wb1", headers[0].WellboreUUID)
	assert.Equal(t, "w1", headers[0].WellUUID)
	assert.Equal(t, "NO 15/9-F-1", headers[0].UniqueWellIdentifier)
	assert.Empty(t, headers[0].PerforationAndScreens)
}

func TestImportFromReader_Errors(t *testing.T) {
	_, err := ImportFromReader(strings.NewReader("wellboreUuid,wellborePurpose\nwb1,Production\n"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingHeader))
	assert.Contains(t, err.Error(), HeaderWellUUID)

	_, err = ImportFromReader(strings.NewReader(""), DefaultOptions())
	assert.Error(t, err)
}

func TestImportFromFile_Missing(t *testing.T) {
	_, err := ImportFromFile("/nonexistent/wellbores.csv", DefaultOptions())
	assert.Error(t, err)
}
