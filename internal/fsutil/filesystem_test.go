package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryFileSystem_RoundTrip(t *testing.T) {
	fs := NewMemoryFileSystem()
	if fs.Exists("a/b.txt") {
		t.Error("file should not exist before write")
	}
	if err := fs.WriteFile("a/b.txt", []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := fs.ReadFile("a/b.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("contents = %q, want %q", data, "hello")
	}
	if !fs.Exists("a/b.txt") {
		t.Error("file should exist after write")
	}
}

func TestMemoryFileSystem_ReadMissing(t *testing.T) {
	fs := NewMemoryFileSystem()
	if _, err := fs.ReadFile("missing.txt"); err == nil {
		t.Error("reading a missing file should fail")
	}
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	fs := NewMemoryFileSystem()
	if err := fs.MkdirAll("x/y/z", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	for _, dir := range []string{"x", "x/y", "x/y/z"} {
		if !fs.Exists(dir) {
			t.Errorf("directory %q should exist", dir)
		}
	}
}

func TestMemoryFileSystem_ReadIsolation(t *testing.T) {
	fs := NewMemoryFileSystem()
	if err := fs.WriteFile("f", []byte("abc"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, _ := fs.ReadFile("f")
	data[0] = 'x'
	again, _ := fs.ReadFile("f")
	if string(again) != "abc" {
		t.Error("ReadFile must return a copy, not the backing slice")
	}
}

func TestOSFileSystem(t *testing.T) {
	fs := OSFileSystem{}
	dir := t.TempDir()
	name := filepath.Join(dir, "sub", "f.txt")
	if err := fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := fs.WriteFile(name, []byte("data"), os.FileMode(0o644)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !fs.Exists(name) {
		t.Error("file should exist")
	}
	data, err := fs.ReadFile(name)
	if err != nil || string(data) != "data" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}
}
