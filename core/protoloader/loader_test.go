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

package protoloader

import (
	"testing"

	"github.com/google/strata/core/columns"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// newTestRegistry registers strata.test.Export, a list of volume rows.
func newTestRegistry(t *testing.T) *protoregistry.Files {
	t.Helper()
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

	file := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("strata/test/volumes.proto"),
		Package: proto.String("strata.test"),
		Syntax:  proto.String("proto2"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Fluid"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("OIL"), Number: proto.Int32(0)},
				{Name: proto.String("GAS"), Number: proto.Int32(1)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Export"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("ensemble", 1, optional, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
					field("rows", 2, repeated, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".strata.test.Row"),
				},
			},
			{
				Name: proto.String("Row"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("zone", 1, optional, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
					field("real", 2, optional, descriptorpb.FieldDescriptorProto_TYPE_INT32, ""),
					field("stoiip", 3, optional, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, ""),
					field("fluid", 4, optional, descriptorpb.FieldDescriptorProto_TYPE_ENUM, ".strata.test.Fluid"),
					field("wells", 5, repeated, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
				},
			},
		},
	}

	registry := new(protoregistry.Files)
	fd, err := protodesc.NewFile(file, registry)
	if err != nil {
		t.Fatalf("failed to build file descriptor: %v", err)
	}
	if err := registry.RegisterFile(fd); err != nil {
		t.Fatalf("failed to register file: %v", err)
	}
	return registry
}

const exportTextproto = `
ensemble: "ens-1"
rows { zone: "Upper" real: 0 stoiip: 100 fluid: GAS wells: "A-1" wells: "A-2" }
rows { zone: "Lower" real: 1 }
`

// TestLoaderIntegration tests the full workflow with actual proto descriptors.
func TestLoaderIntegration(t *testing.T) {
	loader := NewLoader(newTestRegistry(t), DefaultOptions())

	messages := loader.GetRegisteredMessages()
	if len(messages) != 2 || messages[0] != "strata.test.Export" {
		t.Errorf("unexpected registered messages: %v", messages)
	}

	table, err := loader.LoadTextprotoAsTable([]byte(exportTextproto), "strata.test.Export")
	if err != nil {
		t.Fatalf("LoadTextprotoAsTable error: %v", err)
	}
	if table.Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Length())
	}

	expected := map[string][]string{
		"ensemble": {"ens-1", "ens-1"},
		"zone":     {"Upper", "Lower"},
		"real":     {"0", "1"},
		"stoiip":   {"100", ""},
		"fluid":    {"GAS", ""},
		"wells":    {"A-1;A-2", ""},
	}
	for name, want := range expected {
		col, ok := table.GetColumn(name)
		if !ok {
			t.Errorf("column %q not found", name)
			continue
		}
		for i, w := range want {
			got, _ := col.GetString(i)
			if got != w {
				t.Errorf("%s[%d] = %q, want %q", name, i, got, w)
			}
		}
	}

	stoiip, _ := table.GetColumn("stoiip")
	if v, _ := stoiip.Value(1); !v.IsNull() {
		t.Errorf("unset stoiip should be null, got %v", v)
	}
	realCol, _ := table.GetColumn("real")
	if v, _ := realCol.Value(0); v.Kind() != columns.KindNumber {
		t.Errorf("real should be numeric, got %s", v.Kind())
	}
}

// TestLoaderNoChildren keeps the parent row when the repeated field is empty.
func TestLoaderNoChildren(t *testing.T) {
	loader := NewLoader(newTestRegistry(t), DefaultOptions())

	table, err := loader.LoadTextprotoAsTable([]byte(`ensemble: "ens-2"`), "strata.test.Export")
	if err != nil {
		t.Fatalf("LoadTextprotoAsTable error: %v", err)
	}
	if table.Length() != 1 {
		t.Fatalf("expected 1 row, got %d", table.Length())
	}
	zone, _ := table.GetColumn("zone")
	if v, _ := zone.Value(0); !v.IsNull() {
		t.Errorf("zone should be null, got %v", v)
	}
}

// TestRowBuilder tests the row builder functionality directly.
func TestRowBuilder(t *testing.T) {
	rb := &RowBuilder{
		columns:        []string{"name", "value"},
		current:        make(map[string]columns.Value),
		columnsByLevel: [][]string{{"name"}, {"value"}},
	}

	rb.current["name"] = columns.StringValue("test1")
	rb.current["value"] = columns.NumberValue(100)
	rb.emitRow()

	rb.clearFromLevel(1)
	rb.emitRow()

	if rb.Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", rb.Length())
	}
	if rb.rows[0][0].String() != "test1" || rb.rows[0][1].String() != "100" {
		t.Errorf("unexpected first row: %v", rb.rows[0])
	}
	if rb.rows[1][0].String() != "test1" || !rb.rows[1][1].IsNull() {
		t.Errorf("unexpected second row: %v", rb.rows[1])
	}
}

// TestParseTextprotoMissingMessage tests error handling for unknown message type.
func TestParseTextprotoMissingMessage(t *testing.T) {
	loader := NewLoader(new(protoregistry.Files), DefaultOptions())

	_, err := loader.ParseTextproto([]byte(`name: "test"`), "unknown.Message")
	if err == nil {
		t.Error("expected error for unknown message type, got nil")
	}
	if len(loader.GetRegisteredMessages()) != 0 {
		t.Error("expected empty message list")
	}
}

func TestParseTextprotoInvalid(t *testing.T) {
	loader := NewLoader(newTestRegistry(t), DefaultOptions())

	if _, err := loader.LoadTextprotoAsTable([]byte(`unknown_field: 1`), "strata.test.Export"); err == nil {
		t.Error("expected parse error")
	}
	if _, err := loader.LoadTextprotoFile("does/not/exist.textproto", "strata.test.Export"); err == nil {
		t.Error("expected file error")
	}
}

func TestLoadBinaryProtoAsTable(t *testing.T) {
	loader := NewLoader(newTestRegistry(t), DefaultOptions())

	msg, err := loader.ParseTextproto([]byte(exportTextproto), "strata.test.Export")
	if err != nil {
		t.Fatalf("ParseTextproto error: %v", err)
	}
	data, err := proto.Marshal(msg.Interface())
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	table, err := loader.LoadBinaryProtoAsTable(data, "strata.test.Export")
	if err != nil {
		t.Fatalf("LoadBinaryProtoAsTable error: %v", err)
	}
	if table.Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Length())
	}
	zone, _ := table.GetColumn("zone")
	if got, _ := zone.GetString(1); got != "Lower" {
		t.Errorf("zone[1] = %q, want Lower", got)
	}

	if _, err := loader.LoadBinaryProtoAsTable([]byte{0xff}, "strata.test.Export"); err == nil {
		t.Error("expected error for invalid wire data")
	}
}
