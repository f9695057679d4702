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

package demo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/strata/core/protoloader"
	"github.com/google/strata/core/tables"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// VolumeExportMessage is the message of the embedded textproto sample.
const VolumeExportMessage = "strata.demo.VolumeExport"

// ProtoTableLoader handles loading proto descriptors and textproto files.
// It manages the proto registry and uses the core protoloader for parsing.
type ProtoTableLoader struct {
	registry *protoregistry.Files
	loader   *protoloader.Loader
}

// NewProtoTableLoader creates a new ProtoTableLoader.
func NewProtoTableLoader(logger zerolog.Logger) *ProtoTableLoader {
	registry := new(protoregistry.Files)
	return &ProtoTableLoader{
		registry: registry,
		loader:   protoloader.NewLoader(registry, protoloader.Options{Logger: logger}),
	}
}

// RegisterFileProto registers a single file descriptor. Files already
// registered under the same path are skipped.
func (l *ProtoTableLoader) RegisterFileProto(file *descriptorpb.FileDescriptorProto) error {
	if _, err := l.registry.FindFileByPath(file.GetName()); err == nil {
		return nil
	}
	fd, err := protodesc.NewFile(file, l.registry)
	if err != nil {
		return fmt.Errorf("failed to create file descriptor: %w", err)
	}
	return l.registry.RegisterFile(fd)
}

// LoadDescriptorSet loads a .pb descriptor set file into the registry.
func (l *ProtoTableLoader) LoadDescriptorSet(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	return l.LoadDescriptorSetFromBytes(data)
}

// LoadDescriptorSetFromBytes loads a descriptor set from raw bytes.
func (l *ProtoTableLoader) LoadDescriptorSetFromBytes(data []byte) error {
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
			return true
		}
		if err := l.registry.RegisterFile(fd); err != nil {
			registerErr = err
			return false
		}
		return true
	})

	return registerErr
}

// LoadDescriptorsFromDirectory loads all .pb (descriptor set) files from a directory.
func (l *ProtoTableLoader) LoadDescriptorsFromDirectory(dirPath string) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read descriptor directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pb") {
			continue
		}
		path := filepath.Join(dirPath, entry.Name())
		if err := l.LoadDescriptorSet(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// LoadTextprotoAsTable loads a textproto file and returns a denormalized DataTable.
func (l *ProtoTableLoader) LoadTextprotoAsTable(textprotoPath, messageName string) (*tables.DataTable, error) {
	return l.loader.LoadTextprotoFile(textprotoPath, messageName)
}

// LoadTextprotoAsTableFromBytes loads textproto content from bytes and returns a denormalized DataTable.
func (l *ProtoTableLoader) LoadTextprotoAsTableFromBytes(data []byte, messageName string) (*tables.DataTable, error) {
	return l.loader.LoadTextprotoAsTable(data, messageName)
}

// LoadTextprotosFromDirectory loads all .textproto files from a directory,
// keyed by file name without extension. messageNameFn maps that name to the
// message to parse.
func (l *ProtoTableLoader) LoadTextprotosFromDirectory(dirPath string, messageNameFn func(tableName string) string) (map[string]*tables.DataTable, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read textproto directory: %w", err)
	}

	result := make(map[string]*tables.DataTable)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".textproto") {
			continue
		}

		tableName := strings.TrimSuffix(entry.Name(), ".textproto")
		table, err := l.LoadTextprotoAsTable(filepath.Join(dirPath, entry.Name()), messageNameFn(tableName))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}
		result[tableName] = table
	}

	return result, nil
}

// GetRegisteredMessages returns all message names registered in the loader.
func (l *ProtoTableLoader) GetRegisteredMessages() []string {
	return l.loader.GetRegisteredMessages()
}

// volumeExportFile describes strata.demo.VolumeExport: an ensemble with
// repeated realizations, each with repeated zone volumes. Field names match
// the column names used by inplace volume tables.
func volumeExportFile() *descriptorpb.FileDescriptorProto {
	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	repeated := descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	field := func(name string, number int32, label *descriptorpb.FieldDescriptorProto_Label, typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
		f := &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(name),
			Number: proto.Int32(number),
			Label:  label,
			Type:   typ.Enum(),
		}
		if typeName != "" {
			f.TypeName = proto.String(typeName)
		}
		return f
	}

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("strata/demo/volumes.proto"),
		Package: proto.String("strata.demo"),
		Syntax:  proto.String("proto2"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Fluid"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("OIL"), Number: proto.Int32(0)},
				{Name: proto.String("GAS"), Number: proto.Int32(1)},
				{Name: proto.String("WATER"), Number: proto.Int32(2)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("VolumeExport"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("ENSEMBLE", 1, optional, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
					field("TABLE_NAME", 2, optional, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
					field("realizations", 3, repeated, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".strata.demo.Realization"),
				},
			},
			{
				Name: proto.String("Realization"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("REAL", 1, optional, descriptorpb.FieldDescriptorProto_TYPE_INT32, ""),
					field("zones", 2, repeated, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".strata.demo.ZoneVolume"),
				},
			},
			{
				Name: proto.String("ZoneVolume"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("ZONE", 1, optional, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
					field("FLUID", 2, optional, descriptorpb.FieldDescriptorProto_TYPE_ENUM, ".strata.demo.Fluid"),
					field("STOIIP", 3, optional, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, ""),
				},
			},
		},
	}
}
