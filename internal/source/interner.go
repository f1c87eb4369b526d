package source

import (
	"slices"
)

// StringID is a stable, dense handle into an Interner. internal/config uses
// it to play the role of the dynamic-value core's external "name provider"
// (spec §2): type names are interned before they ever reach a Registry, so
// two declarations of the same name always resolve to the same backing
// string even if they came from different files.
type StringID uint32

// NoStringID marks the absence of an interned string.
const NoStringID StringID = 0

// Interner deduplicates strings and hands back small, comparable IDs.
type Interner struct {
	byID  []string            // id -> string (byID[0] == "" for NoStringID)
	index map[string]StringID // string -> id
}

// NewInterner returns an empty interner with the sentinel slot reserved.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the StringID for s, interning it on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// Own the bytes so we never alias the caller's buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes is Intern without requiring the caller to allocate a string first.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string for id, or false if id is not known.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup panics if id is not known.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("source: invalid string ID")
	}
	return s
}

// Has reports whether id was produced by this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) >= 0 && int(id) < len(i.byID)
}

// Len returns the number of interned strings, including the sentinel.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of every interned string, indexed by StringID.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
