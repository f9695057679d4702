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

// Package datasources loads named tables from configured sources. Loaders
// are registered per source type; tables are loaded lazily and cached.
package datasources

import (
	"github.com/google/strata/core/tables"
)

// Config keys understood by the built-in loaders.
const (
	KeyFilePath      = "file_path"
	KeyProtoFile     = "proto_file"
	KeyDescriptorSet = "descriptor_set"
	KeyMessageType   = "message_type"
)

// Source describes one named table and how to load it.
type Source struct {
	Name       string            `json:"name"`
	SourceType string            `json:"sourceType"`
	Config     map[string]string `json:"config"`
}

// Config is the on-disk list of sources.
type Config struct {
	Sources []Source `json:"sources"`
}

// DataSourceLoader is the interface that all data source loaders must implement.
// Strata provides built-in loaders for inplace volume JSON and textproto.
type DataSourceLoader interface {
	// SourceType returns the type identifier used in config (e.g., "textproto").
	SourceType() string

	// Load retrieves data and returns a DataTable. File paths in config are
	// already resolved against the config directory.
	Load(config map[string]string) (*tables.DataTable, error)
}
