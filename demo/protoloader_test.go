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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/strata/core/inplacevolumes"
	"github.com/google/strata/core/wellbores"
	"github.com/rs/zerolog"
)

func TestLoadVolumes(t *testing.T) {
	table, err := LoadVolumes(zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadVolumes error: %v", err)
	}
	// iter-0: 10 oil + 10 gas rows, iter-1: 6 oil rows.
	if table.Length() != 26 {
		t.Fatalf("expected 26 rows, got %d", table.Length())
	}
	for _, name := range []string{"ENSEMBLE", "TABLE_NAME", "FLUID", "ZONE", "REGION", "REAL", "STOIIP", "BULK", "GIIP"} {
		if !table.HasColumn(name) {
			t.Errorf("expected column %q", name)
		}
	}

	ensembles, err := table.SplitByColumn(inplacevolumes.ColumnEnsemble)
	if err != nil {
		t.Fatalf("SplitByColumn error: %v", err)
	}
	if ensembles.Len() != 2 {
		t.Errorf("expected 2 ensembles, got %d", ensembles.Len())
	}

	if err := inplacevolumes.CheckEnsembleGrouping(table, "ZONE", ""); !errors.Is(err, inplacevolumes.ErrMultipleEnsembles) {
		t.Errorf("expected ErrMultipleEnsembles, got %v", err)
	}
}

func TestLoadVolumesTextproto(t *testing.T) {
	table, err := LoadVolumesTextproto(zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadVolumesTextproto error: %v", err)
	}
	if table.Length() != 6 {
		t.Fatalf("expected 6 rows, got %d", table.Length())
	}

	stoiip, ok := table.GetColumn("STOIIP")
	if !ok {
		t.Fatal("STOIIP column not found")
	}
	if stoiip.CountNulls() != 1 {
		t.Errorf("expected 1 null STOIIP, got %d", stoiip.CountNulls())
	}

	points, err := inplacevolumes.Convergence(table, "STOIIP")
	if err != nil {
		t.Fatalf("Convergence error: %v", err)
	}
	if len(points) != 5 {
		t.Errorf("expected 5 convergence points, got %d", len(points))
	}
}

func TestLoadWellbores(t *testing.T) {
	headers, err := LoadWellbores(zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadWellbores error: %v", err)
	}
	if len(headers) != 8 {
		t.Fatalf("expected 8 wellbores, got %d", len(headers))
	}

	h := wellbores.BuildHierarchy(headers, nil)
	var names []string
	for _, block := range h.Blocks {
		names = append(names, block.Name)
	}
	want := []string{"15/9", "34/10", wellbores.OtherBlock}
	if len(names) != len(want) {
		t.Fatalf("blocks = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("blocks[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if h.Blocks[0].TotalWellbores != 5 {
		t.Errorf("expected 5 wellbores in 15/9, got %d", h.Blocks[0].TotalWellbores)
	}
}

func TestProtoTableLoader_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "iter0.textproto"), volumesTextproto, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewProtoTableLoader(zerolog.Nop())
	if err := loader.RegisterFileProto(volumeExportFile()); err != nil {
		t.Fatalf("RegisterFileProto error: %v", err)
	}
	// Registering twice is a no-op.
	if err := loader.RegisterFileProto(volumeExportFile()); err != nil {
		t.Fatalf("second RegisterFileProto error: %v", err)
	}

	messages := loader.GetRegisteredMessages()
	if len(messages) != 3 || messages[0] != VolumeExportMessage {
		t.Errorf("unexpected registered messages: %v", messages)
	}

	loaded, err := loader.LoadTextprotosFromDirectory(dir, func(string) string { return VolumeExportMessage })
	if err != nil {
		t.Fatalf("LoadTextprotosFromDirectory error: %v", err)
	}
	if len(loaded) != 1 || loaded["iter0"] == nil || loaded["iter0"].Length() != 6 {
		t.Errorf("unexpected tables: %v", loaded)
	}

	if err := loader.LoadDescriptorsFromDirectory(dir); err != nil {
		t.Errorf("LoadDescriptorsFromDirectory with no .pb files: %v", err)
	}
	if err := loader.LoadDescriptorSetFromBytes([]byte("not a descriptor set")); err == nil {
		t.Error("expected error for invalid descriptor set")
	}
}
