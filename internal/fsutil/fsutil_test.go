package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileOrEmpty_Missing(t *testing.T) {
	got, err := ReadFileOrEmpty(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ReadFileOrEmpty: %v", err)
	}
	if got != "" {
		t.Errorf("content = %q, want empty", got)
	}
}

func TestWriteFileAtomic_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config")

	if err := WriteFileAtomic(path, []byte("first\n"), 0600); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second\n"), 0644); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if string(data) != "second\n" {
		t.Errorf("content = %q, want %q", data, "second\n")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("mode = %o, want 600 (existing mode preserved)", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the target (no temp leftovers)", len(entries))
	}
}

func TestWithLock_CreatesParentAndRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config")

	ran := false
	err := WithLock(path, 0700, func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("WithLock: %v", err)
	}
	if !ran {
		t.Error("callback did not run")
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}

func TestExpandAndContractHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/.ssh/id_work"); got != filepath.Join(home, ".ssh", "id_work") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(abs) = %q", got)
	}
	if got := ContractHome(filepath.Join(home, ".ssh", "id_work")); got != "~/.ssh/id_work" {
		t.Errorf("ContractHome = %q", got)
	}
	if got := ContractHome("/elsewhere/key"); got != "/elsewhere/key" {
		t.Errorf("ContractHome(outside) = %q", got)
	}
}
