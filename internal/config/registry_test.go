package config

import (
	"os"
	"path/filepath"
	"testing"

	"metareflect/internal/meta"
)

func writeTOML(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "types.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadParsesTypesAndWarnsOnMissingSize(t *testing.T) {
	path := writeTOML(t, `
[[types]]
name = "A"
size = 4

[[types]]
name = "B"
`)
	doc, bag, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	if len(doc.Types) != 2 {
		t.Fatalf("expected 2 types, got %d", len(doc.Types))
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one warning for the sizeless type, got %d", bag.Len())
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	path := writeTOML(t, `
[[types]]
size = 4
`)
	if _, _, err := Load(path); err != ErrMissingName {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	path := writeTOML(t, `
[[types]]
name = "A"
size = 4

[[types]]
name = "A"
size = 8
`)
	if _, _, err := Load(path); err == nil {
		t.Fatalf("expected an error for a duplicate type name")
	}
}

func TestApplyWiresInheritance(t *testing.T) {
	path := writeTOML(t, `
[[types]]
name = "Base"
size = 4

[[types]]
name = "Derived"
size = 8
bases = ["Base"]
`)
	doc, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	reg := meta.NewRegistry()
	if err := Apply(reg, doc); err != nil {
		t.Fatalf("Apply returned an error: %v", err)
	}
	base, ok := reg.Find("Base")
	if !ok {
		t.Fatalf("Base was not registered")
	}
	derived, ok := reg.Find("Derived")
	if !ok {
		t.Fatalf("Derived was not registered")
	}
	if !reg.Get(derived).HasBase(base) {
		t.Fatalf("Derived should have Base as a base type")
	}
}

func TestApplyRejectsUnknownBase(t *testing.T) {
	path := writeTOML(t, `
[[types]]
name = "Derived"
size = 8
bases = ["Ghost"]
`)
	doc, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	reg := meta.NewRegistry()
	if err := Apply(reg, doc); err == nil {
		t.Fatalf("expected an error for an unknown base name")
	}
}

func TestExportImportSnapshotRoundTrips(t *testing.T) {
	path := writeTOML(t, `
[[types]]
name = "A"
size = 4
`)
	doc, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	snapPath := filepath.Join(t.TempDir(), "snapshot.mp")
	if err := ExportSnapshot(snapPath, doc); err != nil {
		t.Fatalf("ExportSnapshot returned an error: %v", err)
	}
	got, err := ImportSnapshot(snapPath)
	if err != nil {
		t.Fatalf("ImportSnapshot returned an error: %v", err)
	}
	if len(got.Types) != 1 || got.Types[0].Name != "A" || got.Types[0].Size != 4 {
		t.Fatalf("round-tripped document mismatch: %+v", got)
	}
}
