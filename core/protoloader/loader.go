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

// Package protoloader loads textproto and binary protobuf documents into
// DataTables. Message types are looked up in a caller provided registry, so
// exports can be read without generated code.
package protoloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/strata/core/columns"
	"github.com/google/strata/core/tables"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"
)

// ListSeparator joins the elements of repeated scalar fields into one cell.
const ListSeparator = ";"

// Options configures a Loader.
type Options struct {
	Logger zerolog.Logger
}

// DefaultOptions returns options that log nothing.
func DefaultOptions() Options {
	return Options{Logger: zerolog.Nop()}
}

// Loader handles loading textproto files into DataTables using a pre-populated registry.
type Loader struct {
	registry *protoregistry.Files
	logger   zerolog.Logger
}

// NewLoader creates a new Loader with the given proto registry.
// The registry should be pre-populated with all required message descriptors.
func NewLoader(registry *protoregistry.Files, options Options) *Loader {
	return &Loader{
		registry: registry,
		logger:   options.Logger,
	}
}

func (l *Loader) newMessage(messageName string) (*dynamicpb.Message, error) {
	desc, err := l.registry.FindDescriptorByName(protoreflect.FullName(messageName))
	if err != nil {
		return nil, fmt.Errorf("message %q not found in registry: %w", messageName, err)
	}

	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", messageName)
	}

	return dynamicpb.NewMessage(msgDesc), nil
}

// ParseTextproto parses textproto content into a dynamic protobuf message.
func (l *Loader) ParseTextproto(data []byte, messageName string) (protoreflect.Message, error) {
	msg, err := l.newMessage(messageName)
	if err != nil {
		return nil, err
	}

	// Use a resolver that can resolve types from our registry
	opts := prototext.UnmarshalOptions{
		Resolver: l,
	}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse textproto: %w", err)
	}

	return msg.ProtoReflect(), nil
}

// ParseBinaryProto parses wire format content into a dynamic protobuf message.
func (l *Loader) ParseBinaryProto(data []byte, messageName string) (protoreflect.Message, error) {
	msg, err := l.newMessage(messageName)
	if err != nil {
		return nil, err
	}

	opts := proto.UnmarshalOptions{
		Resolver: l,
	}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse binary protobuf: %w", err)
	}

	return msg.ProtoReflect(), nil
}

// FindMessageByName implements protoregistry.MessageTypeResolver
func (l *Loader) FindMessageByName(name protoreflect.FullName) (protoreflect.MessageType, error) {
	desc, err := l.registry.FindDescriptorByName(name)
	if err != nil {
		return nil, err
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", name)
	}
	return dynamicpb.NewMessageType(msgDesc), nil
}

// FindMessageByURL implements protoregistry.MessageTypeResolver
func (l *Loader) FindMessageByURL(url string) (protoreflect.MessageType, error) {
	name := protoreflect.FullName(strings.TrimPrefix(url, "type.googleapis.com/"))
	return l.FindMessageByName(name)
}

// FindExtensionByName implements protoregistry.ExtensionTypeResolver
func (l *Loader) FindExtensionByName(name protoreflect.FullName) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// FindExtensionByNumber implements protoregistry.ExtensionTypeResolver
func (l *Loader) FindExtensionByNumber(message protoreflect.FullName, field protoreflect.FieldNumber) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// HierarchyLevel represents one level in a linear message hierarchy.
type HierarchyLevel struct {
	// FieldDesc is the repeated message field leading to the next level (nil for leaf)
	FieldDesc protoreflect.FieldDescriptor
	// ScalarFields are the non-message fields at this level
	ScalarFields []protoreflect.FieldDescriptor
}

// FindLinearHierarchy walks a message descriptor to find a linear chain of nested repeated messages.
// Returns the hierarchy levels from root to leaf.
func (l *Loader) FindLinearHierarchy(msgDesc protoreflect.MessageDescriptor) []HierarchyLevel {
	var levels []HierarchyLevel
	current := msgDesc

	for current != nil {
		level := HierarchyLevel{}
		var nextLevel protoreflect.MessageDescriptor

		fields := current.Fields()
		for i := 0; i < fields.Len(); i++ {
			fd := fields.Get(i)

			if fd.Kind() == protoreflect.MessageKind && fd.Cardinality() == protoreflect.Repeated && !fd.IsMap() {
				if nextLevel != nil {
					// Only the first repeated message field is followed.
					continue
				}
				level.FieldDesc = fd
				nextLevel = fd.Message()
			} else if fd.Kind() != protoreflect.MessageKind && fd.Kind() != protoreflect.GroupKind {
				level.ScalarFields = append(level.ScalarFields, fd)
			}
		}

		levels = append(levels, level)
		current = nextLevel
	}

	return levels
}

// RowBuilder accumulates denormalized rows from a hierarchical message.
type RowBuilder struct {
	columns        []string                 // Column names in order
	rows           [][]columns.Value        // All extracted rows
	current        map[string]columns.Value // Current row being built
	columnsByLevel [][]string               // Column names grouped by hierarchy level
}

// newRowBuilder creates a new RowBuilder with columns derived from hierarchy levels.
func newRowBuilder(hierarchy []HierarchyLevel) *RowBuilder {
	rb := &RowBuilder{
		current:        make(map[string]columns.Value),
		columnsByLevel: make([][]string, len(hierarchy)),
	}

	for i, level := range hierarchy {
		for _, fd := range level.ScalarFields {
			colName := string(fd.Name())
			rb.columns = append(rb.columns, colName)
			rb.columnsByLevel[i] = append(rb.columnsByLevel[i], colName)
		}
	}

	return rb
}

// clearFromLevel clears all column values at and below the given hierarchy level.
func (rb *RowBuilder) clearFromLevel(level int) {
	for i := level; i < len(rb.columnsByLevel); i++ {
		for _, col := range rb.columnsByLevel[i] {
			rb.current[col] = columns.NullValue()
		}
	}
}

// emitRow adds the current row state to the rows list.
func (rb *RowBuilder) emitRow() {
	row := make([]columns.Value, len(rb.columns))
	for i, col := range rb.columns {
		row[i] = rb.current[col]
	}
	rb.rows = append(rb.rows, row)
}

// Length returns the number of extracted rows.
func (rb *RowBuilder) Length() int {
	return len(rb.rows)
}

// ExtractRows walks a message hierarchy and extracts denormalized rows.
func (l *Loader) ExtractRows(msg protoreflect.Message, hierarchy []HierarchyLevel) *RowBuilder {
	rb := newRowBuilder(hierarchy)
	l.walkHierarchy(msg, hierarchy, 0, rb)
	return rb
}

// walkHierarchy recursively walks the message hierarchy, extracting values.
func (l *Loader) walkHierarchy(msg protoreflect.Message, hierarchy []HierarchyLevel, depth int, rb *RowBuilder) {
	if depth >= len(hierarchy) {
		return
	}

	level := hierarchy[depth]

	for _, fd := range level.ScalarFields {
		rb.current[string(fd.Name())] = fieldValue(msg, fd)
	}

	if level.FieldDesc == nil || depth == len(hierarchy)-1 {
		rb.emitRow()
		return
	}

	list := msg.Get(level.FieldDesc).List()
	if list.Len() == 0 {
		// No children - clear child fields and emit row
		rb.clearFromLevel(depth + 1)
		rb.emitRow()
		return
	}

	for i := 0; i < list.Len(); i++ {
		// Clear child fields before each iteration to avoid stale data
		rb.clearFromLevel(depth + 1)
		l.walkHierarchy(list.Get(i).Message(), hierarchy, depth+1, rb)
	}
}

// fieldValue converts a field of msg into a cell. Unset fields with
// presence and empty lists become null.
func fieldValue(msg protoreflect.Message, fd protoreflect.FieldDescriptor) columns.Value {
	if fd.IsList() {
		list := msg.Get(fd).List()
		if list.Len() == 0 {
			return columns.NullValue()
		}
		parts := make([]string, list.Len())
		for i := 0; i < list.Len(); i++ {
			parts[i] = scalarValue(list.Get(i), fd).String()
		}
		return columns.StringValue(strings.Join(parts, ListSeparator))
	}
	if fd.HasPresence() && !msg.Has(fd) {
		return columns.NullValue()
	}
	return scalarValue(msg.Get(fd), fd)
}

// scalarValue converts a protoreflect.Value to a cell.
func scalarValue(val protoreflect.Value, fd protoreflect.FieldDescriptor) columns.Value {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		if val.Bool() {
			return columns.StringValue("true")
		}
		return columns.StringValue("false")
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return columns.NumberValue(float64(val.Int()))
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return columns.NumberValue(float64(val.Uint()))
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return columns.NumberValue(val.Float())
	case protoreflect.StringKind:
		return columns.StringValue(val.String())
	case protoreflect.BytesKind:
		return columns.StringValue(string(val.Bytes()))
	case protoreflect.EnumKind:
		enumVal := fd.Enum().Values().ByNumber(val.Enum())
		if enumVal != nil {
			return columns.StringValue(string(enumVal.Name()))
		}
		return columns.NumberValue(float64(val.Enum()))
	default:
		return columns.StringValue(val.String())
	}
}

// CreateDataTable creates a DataTable from extracted rows.
func (l *Loader) CreateDataTable(rb *RowBuilder) (*tables.DataTable, error) {
	batch := make([]tables.BatchColumn, len(rb.columns))
	for i, colName := range rb.columns {
		values := make([]columns.Value, len(rb.rows))
		for r, row := range rb.rows {
			values[r] = row[i]
		}
		batch[i] = tables.BatchColumn{Name: colName, Values: values}
	}

	builder := tables.NewBuilder(l.logger)
	if err := builder.AppendBatch(len(rb.rows), batch); err != nil {
		return nil, err
	}
	return builder.Build(), nil
}

// LoadTextprotoAsTable parses textproto content and returns a denormalized DataTable.
// The messageName should be the fully qualified protobuf message name (e.g., "mypackage.Export").
func (l *Loader) LoadTextprotoAsTable(data []byte, messageName string) (*tables.DataTable, error) {
	msg, err := l.ParseTextproto(data, messageName)
	if err != nil {
		return nil, err
	}
	return l.MessageToTable(msg)
}

// LoadBinaryProtoAsTable parses wire format content and returns a denormalized DataTable.
func (l *Loader) LoadBinaryProtoAsTable(data []byte, messageName string) (*tables.DataTable, error) {
	msg, err := l.ParseBinaryProto(data, messageName)
	if err != nil {
		return nil, err
	}
	return l.MessageToTable(msg)
}

// MessageToTable flattens the linear hierarchy of msg into a DataTable.
func (l *Loader) MessageToTable(msg protoreflect.Message) (*tables.DataTable, error) {
	hierarchy := l.FindLinearHierarchy(msg.Descriptor())
	rb := l.ExtractRows(msg, hierarchy)

	if rb.Length() == 0 {
		return nil, fmt.Errorf("no rows extracted from %s", msg.Descriptor().FullName())
	}

	l.logger.Debug().Str("message", string(msg.Descriptor().FullName())).Int("levels", len(hierarchy)).Int("rows", rb.Length()).Msg("message flattened")
	return l.CreateDataTable(rb)
}

// LoadTextprotoFile reads a textproto file and returns a denormalized DataTable.
func (l *Loader) LoadTextprotoFile(path, messageName string) (*tables.DataTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read textproto file: %w", err)
	}
	return l.LoadTextprotoAsTable(data, messageName)
}

// GetRegisteredMessages returns all message names registered in the loader.
func (l *Loader) GetRegisteredMessages() []string {
	var messages []string
	l.registry.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		msgs := fd.Messages()
		for i := 0; i < msgs.Len(); i++ {
			messages = append(messages, string(msgs.Get(i).FullName()))
		}
		return true
	})
	return messages
}
