package machokit

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/machokit/errors"
)

// minimal returns a 32-bit little-endian object file with no load commands.
func minimal() []byte {
	le := binary.LittleEndian
	b := le.AppendUint32(nil, 0xfeedface)
	b = le.AppendUint32(b, 7)
	b = le.AppendUint32(b, 3)
	b = le.AppendUint32(b, 1)
	b = le.AppendUint32(b, 0)
	b = le.AppendUint32(b, 0)
	return le.AppendUint32(b, 0)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.o")
	if err := os.WriteFile(path, minimal(), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if img.Header.Is64() || len(img.Commands) != 0 {
		t.Errorf("header = %+v, commands = %d", img.Header, len(img.Commands))
	}
}

func TestOpenFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := OpenFile(filepath.Join(dir, "missing")); errors.KindOf(err) != errors.KindInternal {
		t.Errorf("missing file: kind = %v", errors.KindOf(err))
	}

	path := filepath.Join(dir, "short")
	if err := os.WriteFile(path, minimal()[:12], 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); errors.KindOf(err) != errors.KindNotFound {
		t.Errorf("truncated header: kind = %v, err = %v", errors.KindOf(err), err)
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open([]byte("not a binary")); errors.KindOf(err) != errors.KindInvalidData {
		t.Errorf("kind = %v, err = %v", errors.KindOf(err), err)
	}
}

func TestMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapped.o")
	if err := os.WriteFile(path, minimal(), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := MapFile(path)
	if err != nil {
		t.Fatalf("MapFile: %v", err)
	}
	if f.Path() != path || f.Size() != len(minimal()) {
		t.Errorf("path = %q, size = %d", f.Path(), f.Size())
	}
	if f.Header.NCmds != 0 {
		t.Errorf("ncmds = %d", f.Header.NCmds)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestMapFile_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := MapFile(empty); errors.KindOf(err) != errors.KindNotFound {
		t.Errorf("empty file: kind = %v, err = %v", errors.KindOf(err), err)
	}

	if _, err := MapFile(filepath.Join(dir, "missing")); err == nil || errors.KindOf(err) != errors.KindInternal {
		t.Errorf("missing file: err = %v", err)
	}
}
