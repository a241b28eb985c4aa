package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dougthor42/gdw/internal/model"
)

func TestExportDXF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wafer_map.dxf")

	result, wafer, die := buildTestResult(t)
	if err := ExportDXF(path, result, wafer, die); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	content := string(raw)

	// One circle for the wafer, one for the exclusion boundary, a polyline
	// per die, and a layer per populated state.
	for _, want := range []string{"CIRCLE", "LWPOLYLINE", "LINE", "WAFER", "EXCLUSION", "DIE_PROBE", "DIE_EDGE_EXCL"} {
		if !strings.Contains(content, want) {
			t.Errorf("DXF file missing %q", want)
		}
	}
}

func TestExportDXF_NoFlat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no_flat.dxf")

	wafer, err := model.NewWafer(200, 5, 0, 0)
	if err != nil {
		t.Fatalf("NewWafer failed: %v", err)
	}
	result, _, die := buildTestResult(t)

	if err := ExportDXF(path, result, wafer, die); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
}

func TestExportDXF_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	_, wafer, die := buildTestResult(t)

	err := ExportDXF(filepath.Join(dir, "empty.dxf"), model.GridResult{}, wafer, die)
	if err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}
