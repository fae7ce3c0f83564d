package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")

	err := WriteFile(p, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestWriteFileFailure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")

	err := WriteFile(p, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return fmt.Errorf("failed")
	})
	if err == nil {
		t.Errorf("expected error")
	}

	_, err = os.Stat(p)
	if !os.IsNotExist(err) {
		t.Errorf("expected no file at %q", p)
	}
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	dst := filepath.Join(dir, "b")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Move(src, dst); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source still exists")
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}
