package source

import (
	"os"
	"testing"
)

func TestFileSetAddAndGet(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.txt", []byte("line1\nline2\n"), 0)
	f := fs.Get(id)
	if f.Path != "a.txt" {
		t.Errorf("unexpected path: %q", f.Path)
	}
	if len(f.LineIdx) != 2 {
		t.Errorf("expected 2 line breaks, got %d", len(f.LineIdx))
	}
}

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte("x"))
	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Error("AddVirtual should set FileVirtual")
	}
}

func TestFileSetGetByPathTracksLatest(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("a.txt", []byte("v1"), 0)
	id2 := fs.Add("a.txt", []byte("v2"), 0)
	if id1 == id2 {
		t.Fatal("re-adding a path must allocate a new FileID")
	}
	f, ok := fs.GetByPath("a.txt")
	if !ok || f.ID != id2 {
		t.Errorf("GetByPath should resolve to the latest version, got id=%v ok=%v", f, ok)
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.txt", []byte("ab\ncd\nef"), 0)
	start, end := fs.Resolve(Span{File: id, Start: 3, End: 5})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("unexpected start position: %+v", start)
	}
	if end.Line != 2 || end.Col != 3 {
		t.Errorf("unexpected end position: %+v", end)
	}
}

func TestFileGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.txt", []byte("one\ntwo\nthree"), 0)
	f := fs.Get(id)
	if f.GetLine(1) != "one" {
		t.Errorf("line 1 = %q", f.GetLine(1))
	}
	if f.GetLine(2) != "two" {
		t.Errorf("line 2 = %q", f.GetLine(2))
	}
	if f.GetLine(3) != "three" {
		t.Errorf("line 3 = %q", f.GetLine(3))
	}
	if f.GetLine(4) != "" {
		t.Errorf("line 4 should be empty, got %q", f.GetLine(4))
	}
}

func TestFileSetLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/crlf.txt"
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %v", f.Flags)
	}
	if string(f.Content) != "a\nb\n" {
		t.Errorf("unexpected normalized content: %q", f.Content)
	}
}
