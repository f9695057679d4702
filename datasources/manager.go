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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/strata/core/tables"
	"github.com/rs/zerolog"
)

// Manager handles loading and caching of data sources.
// Source metadata is registered eagerly; data is loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Source metadata indexed by name
	sources map[string]Source

	// Cached tables indexed by source name - populated lazily
	tables map[string]*tables.DataTable

	// Registered loaders indexed by source type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string

	logger zerolog.Logger
}

// NewManager creates a new data source manager.
func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		sources: make(map[string]Source),
		tables:  make(map[string]*tables.DataTable),
		loaders: make(map[string]DataSourceLoader),
		logger:  logger,
	}
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// LoadConfig reads a JSON source list and registers its sources. Relative
// paths in the sources are resolved against the directory of configPath.
func (m *Manager) LoadConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	m.SetBaseDir(filepath.Dir(configPath))
	for _, source := range config.Sources {
		if source.Name == "" {
			return fmt.Errorf("source of type %q has no name", source.SourceType)
		}
		m.AddSource(source)
	}
	m.logger.Debug().Str("config", configPath).Int("sources", len(config.Sources)).Msg("data sources registered")
	return nil
}

// SetBaseDir sets the base directory for resolving relative paths in config.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// AddSource registers a source, replacing any cached table of that name.
func (m *Manager) AddSource(source Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source.Name] = source
	delete(m.tables, source.Name)
}

// GetSourceNames returns all registered source names, sorted.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetSource returns the source registered under name.
func (m *Manager) GetSource(name string) (Source, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	source, ok := m.sources[name]
	return source, ok
}

// LoadData loads data for a source by name.
// Returns cached data if already loaded; otherwise loads from the source.
func (m *Manager) LoadData(sourceName string) (*tables.DataTable, error) {
	m.mu.RLock()
	if table, ok := m.tables[sourceName]; ok {
		m.mu.RUnlock()
		return table, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", sourceName)
	}
	loader, hasLoader := m.loaders[source.SourceType]
	baseDir := m.baseDir
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", source.SourceType)
	}

	table, err := loader.Load(resolveConfigPaths(source.Config, baseDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}

	m.mu.Lock()
	m.tables[sourceName] = table
	m.mu.Unlock()

	m.logger.Debug().Str("source", sourceName).Str("type", source.SourceType).Int("rows", table.Length()).Msg("source loaded")
	return table, nil
}

// resolveConfigPaths resolves relative file paths in config to absolute paths.
func resolveConfigPaths(config map[string]string, baseDir string) map[string]string {
	resolved := make(map[string]string, len(config))
	pathKeys := map[string]bool{
		KeyFilePath:      true,
		KeyProtoFile:     true,
		KeyDescriptorSet: true,
	}

	for k, v := range config {
		if baseDir != "" && pathKeys[k] && v != "" && !filepath.IsAbs(v) {
			resolved[k] = filepath.Join(baseDir, v)
		} else {
			resolved[k] = v
		}
	}
	return resolved
}

// InvalidateCache removes a source from the cache, forcing reload on next access.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, sourceName)
}

// InvalidateAllCaches removes all sources from the cache.
func (m *Manager) InvalidateAllCaches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = make(map[string]*tables.DataTable)
}

// IsLoaded returns whether data for a source is currently cached.
func (m *Manager) IsLoaded(sourceName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[sourceName]
	return ok
}

// GetLoadedSources returns names of all currently loaded (cached) sources, sorted.
func (m *Manager) GetLoadedSources() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
