// Package config loads the TOML documents that seed a meta.Registry with
// user-declared types ahead of a register or bench run.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"

	"metareflect/internal/diag"
	"metareflect/internal/meta"
	"metareflect/internal/source"
)

// TypeSpec describes one [[types]] entry: a named type, its byte size, and
// the names of its direct bases (declared anywhere in the same document, or
// already registered).
type TypeSpec struct {
	Name  string   `toml:"name"`
	Size  uint32   `toml:"size"`
	Bases []string `toml:"bases"`
}

// Document is the full contents of a registry seed file.
type Document struct {
	Types []TypeSpec `toml:"types"`
}

// ErrMissingName indicates a [[types]] entry with no name.
var ErrMissingName = errors.New("config: a [[types]] entry is missing its name")

// Load parses path into a Document, validating that every entry names
// itself and that no name repeats. The returned Bag carries non-fatal
// warnings (an omitted size defaulting to 8, say) tagged with path's FileID
// so a caller can print them alongside real diagnostics; it is never nil.
func Load(path string) (Document, *diag.Bag, error) {
	bag := diag.NewBag(64)

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return Document{}, bag, fmt.Errorf("%s: failed to read file: %w", path, err)
	}
	file := fs.Get(fileID)
	wholeFile := source.Span{File: fileID, Start: 0, End: uint32(len(file.Content))}
	reporter := diag.BagReporter{Bag: bag}

	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return Document{}, bag, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	// Intern every name up front, playing the "external name provider" role
	// spec §2 carves out of the registry itself: two [[types]] entries that
	// spell the same name the same way always resolve to one interned copy.
	names := source.NewInterner()
	seen := make(map[source.StringID]bool, len(doc.Types))
	for i, t := range doc.Types {
		// Normalize to NFC first: a name typed with a combining accent and
		// one typed with its precomposed equivalent must intern to the same
		// StringID, not two lookalike types.
		name := norm.NFC.String(strings.TrimSpace(t.Name))
		if name == "" {
			return Document{}, bag, ErrMissingName
		}
		id := names.Intern(name)
		if seen[id] {
			return Document{}, bag, fmt.Errorf("config: duplicate type name %q", name)
		}
		seen[id] = true
		doc.Types[i].Name = names.MustLookup(id)
		t = doc.Types[i]
		if t.Size == 0 {
			diag.ReportWarning(reporter, diag.RegInfo, wholeFile,
				fmt.Sprintf("type %q has no declared size, defaulting to 8 bytes", name)).Emit()
		}
	}
	return doc, bag, nil
}

// Apply registers every TypeSpec in doc against reg, in file order, then
// wires up bases by name. Every entry is registered before any base is
// wired, so a base may be declared before or after the types that list it
// (or be a pre-existing registration).
func Apply(reg *meta.Registry, doc Document) error {
	ids := make(map[string]meta.TypeID, len(doc.Types))
	for _, t := range doc.Types {
		size := t.Size
		if size == 0 {
			size = 8
		}
		ids[t.Name] = reg.Register(t.Name, size)
	}
	for _, t := range doc.Types {
		if len(t.Bases) == 0 {
			continue
		}
		bases := make([]meta.TypeID, 0, len(t.Bases))
		for _, baseName := range t.Bases {
			id, ok := ids[baseName]
			if !ok {
				id, ok = reg.Find(baseName)
			}
			if !ok {
				return fmt.Errorf("config: type %q names unknown base %q", t.Name, baseName)
			}
			bases = append(bases, id)
		}
		if !reg.AddInheritance(ids[t.Name], bases) {
			return fmt.Errorf("config: failed to wire bases for %q", t.Name)
		}
	}
	return nil
}
