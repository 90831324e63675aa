package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	if got := s.Token(); got != "" {
		t.Errorf("Token() on empty store = %q, want \"\"", got)
	}

	if err := s.Save("abc123"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got := s.Token(); got != "abc123" {
		t.Errorf("Token() = %q, want %q", got, "abc123")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if got := s.Token(); got != "" {
		t.Errorf("Token() after Clear() = %q, want \"\"", got)
	}
}

func TestStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewStore(dir)

	if err := s.Save("tok"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "token"))
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}

func TestStoreTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "token"), []byte("  tok-42\n"), 0600); err != nil {
		t.Fatal(err)
	}
	s := NewStore(dir)
	if got := s.Token(); got != "tok-42" {
		t.Errorf("Token() = %q, want %q", got, "tok-42")
	}
}

func TestClearIdempotent(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Clear(); err != nil {
		t.Errorf("Clear() on empty store error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear() error: %v", err)
	}
}
