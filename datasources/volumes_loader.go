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

package datasources

import (
	"fmt"

	"github.com/google/strata/core/inplacevolumes"
	"github.com/google/strata/core/tables"
	"github.com/rs/zerolog"
)

// VolumesLoader implements DataSourceLoader for inplace volume API payloads.
//
// Required config keys:
//   - file_path: Path to a JSON array of inplace volume records
type VolumesLoader struct {
	options inplacevolumes.Options
}

// NewVolumesLoader creates a new inplace volumes loader.
func NewVolumesLoader(logger zerolog.Logger) *VolumesLoader {
	return &VolumesLoader{options: inplacevolumes.Options{Logger: logger}}
}

// SourceType returns "inplace_volumes".
func (l *VolumesLoader) SourceType() string {
	return "inplace_volumes"
}

// Load decodes the records in file_path into one table.
func (l *VolumesLoader) Load(config map[string]string) (*tables.DataTable, error) {
	path := config[KeyFilePath]
	if path == "" {
		return nil, fmt.Errorf("%s is required", KeyFilePath)
	}

	records, err := inplacevolumes.DecodeJSONFile(path)
	if err != nil {
		return nil, err
	}
	return inplacevolumes.FromAPIData(records, l.options)
}
