package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/KaramelBytes/happydash/internal/utils"
)

func TestSafeWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := utils.SafeWriteFile(path, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := utils.SafeWriteFile(path, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != `{"a":2}` {
		t.Fatalf("got %s", b)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	data := filepath.Join(root, "data", "report.csv")
	deep := filepath.Join(root, "a", "b", "c")
	if err := utils.EnsureDir(filepath.Dir(data)); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := utils.EnsureDir(deep); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(data, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := utils.FindUp(deep, filepath.Join("data", "report.csv"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != data {
		t.Fatalf("got %s, want %s", got, data)
	}

	if got, err := utils.FindUp("", data); err != nil || got != data {
		t.Fatalf("absolute path: %s, %v", got, err)
	}

	_, err = utils.FindUp(deep, "missing.csv")
	if !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
