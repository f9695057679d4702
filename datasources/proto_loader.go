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
	"os"
	"strings"
	"sync"

	"github.com/google/strata/core/protoloader"
	"github.com/google/strata/core/tables"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// ProtoLoader implements DataSourceLoader for protobuf files.
//
// Required config keys:
//   - proto_file: Path to the data file (.textproto or .binpb)
//   - message_type: Fully qualified proto message name
//
// Optional config keys:
//   - descriptor_set: Path to the .pb descriptor set file
//   - format: "textproto" or "binary" (inferred from extension if not specified)
type ProtoLoader struct {
	mu       sync.RWMutex
	registry *protoregistry.Files
	loader   *protoloader.Loader

	// Track loaded descriptor sets to avoid duplicates
	loadedDescriptors map[string]bool
}

// NewProtoLoader creates a new proto loader.
func NewProtoLoader(logger zerolog.Logger) *ProtoLoader {
	registry := new(protoregistry.Files)
	return &ProtoLoader{
		registry:          registry,
		loader:            protoloader.NewLoader(registry, protoloader.Options{Logger: logger}),
		loadedDescriptors: make(map[string]bool),
	}
}

// SourceType returns "proto".
func (l *ProtoLoader) SourceType() string {
	return "proto"
}

// Load loads a protobuf file and returns a DataTable.
func (l *ProtoLoader) Load(config map[string]string) (*tables.DataTable, error) {
	protoFile := config[KeyProtoFile]
	if protoFile == "" {
		return nil, fmt.Errorf("%s is required", KeyProtoFile)
	}

	messageType := config[KeyMessageType]
	if messageType == "" {
		return nil, fmt.Errorf("%s is required", KeyMessageType)
	}

	if descriptorSet := config[KeyDescriptorSet]; descriptorSet != "" {
		if err := l.LoadDescriptorSet(descriptorSet); err != nil {
			return nil, fmt.Errorf("failed to load descriptor set: %w", err)
		}
	}

	format := config["format"]
	if format == "" {
		if strings.HasSuffix(protoFile, ".textproto") {
			format = "textproto"
		} else {
			format = "binary"
		}
	}

	data, err := os.ReadFile(protoFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read proto file: %w", err)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	switch format {
	case "textproto":
		return l.loader.LoadTextprotoAsTable(data, messageType)
	case "binary":
		return l.loader.LoadBinaryProtoAsTable(data, messageType)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected 'textproto' or 'binary')", format)
	}
}

// LoadDescriptorSet loads a .pb descriptor set file into the registry.
func (l *ProtoLoader) LoadDescriptorSet(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loadedDescriptors[path] {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read descriptor set: %w", err)
	}

	if err := l.loadDescriptorSetFromBytes(data); err != nil {
		return err
	}

	l.loadedDescriptors[path] = true
	return nil
}

// LoadDescriptorSetFromBytes loads a descriptor set from raw bytes.
func (l *ProtoLoader) LoadDescriptorSetFromBytes(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadDescriptorSetFromBytes(data)
}

func (l *ProtoLoader) loadDescriptorSetFromBytes(data []byte) error {
	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, fds); err != nil {
		return fmt.Errorf("failed to unmarshal descriptor set: %w", err)
	}

	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return fmt.Errorf("failed to create file descriptors: %w", err)
	}

	var registerErr error
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		if _, err := l.registry.FindFileByPath(fd.Path()); err == nil {
			return true // Already registered, skip
		}
		if err := l.registry.RegisterFile(fd); err != nil {
			registerErr = err
			return false
		}
		return true
	})

	return registerErr
}

// GetRegisteredMessages returns all message names registered in the loader.
func (l *ProtoLoader) GetRegisteredMessages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loader.GetRegisteredMessages()
}
