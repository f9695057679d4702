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

// Package demo provides embedded sample data: inplace volumes of two
// ensembles as API JSON and as textproto, and a set of wellbore headers.
package demo

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/google/strata/core/inplacevolumes"
	"github.com/google/strata/core/tables"
	"github.com/google/strata/core/wellbores"
	"github.com/rs/zerolog"
)

//go:embed data/volumes.json
var volumesJSON []byte

//go:embed data/volumes.textproto
var volumesTextproto []byte

//go:embed data/wellbores.csv
var wellboresCSV []byte

// LoadVolumes decodes the embedded inplace volume records into one table.
func LoadVolumes(logger zerolog.Logger) (*tables.DataTable, error) {
	records, err := inplacevolumes.DecodeJSON(bytes.NewReader(volumesJSON))
	if err != nil {
		return nil, err
	}

	table, err := inplacevolumes.FromAPIData(records, inplacevolumes.Options{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to build volumes table: %w", err)
	}

	logger.Info().Int("records", len(records)).Int("rows", table.Length()).Msg("volumes loaded")
	return table, nil
}

// LoadVolumesTextproto loads the embedded textproto export of the first
// ensemble.
func LoadVolumesTextproto(logger zerolog.Logger) (*tables.DataTable, error) {
	loader := NewProtoTableLoader(logger)
	if err := loader.RegisterFileProto(volumeExportFile()); err != nil {
		return nil, err
	}

	table, err := loader.LoadTextprotoAsTableFromBytes(volumesTextproto, VolumeExportMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to load volumes textproto: %w", err)
	}

	logger.Info().Int("rows", table.Length()).Msg("textproto volumes loaded")
	return table, nil
}

// LoadWellbores imports the embedded wellbore headers.
func LoadWellbores(logger zerolog.Logger) ([]wellbores.WellboreHeader, error) {
	options := wellbores.DefaultOptions()
	options.Logger = logger

	headers, err := wellbores.ImportFromReader(bytes.NewReader(wellboresCSV), options)
	if err != nil {
		return nil, fmt.Errorf("failed to import wellbores: %w", err)
	}

	logger.Info().Int("wellbores", len(headers)).Msg("wellbores loaded")
	return headers, nil
}
