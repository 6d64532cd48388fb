package storage

import (
	"path/filepath"
	"testing"
)

func TestSaveAndRead(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nested", "dir", "sheet.txt")

	if s.HasFile(path) {
		t.Fatal("HasFile() = true before save")
	}
	if err := s.SaveFile(path, []byte("WORKSHEET")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if !s.HasFile(path) {
		t.Error("HasFile() = false after save")
	}

	data, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "WORKSHEET" {
		t.Errorf("ReadFile() = %q", data)
	}

	stats, err := s.GetFileStats(path)
	if err != nil {
		t.Fatalf("GetFileStats() error = %v", err)
	}
	if stats.SizeBytes != 9 {
		t.Errorf("SizeBytes = %d, want 9", stats.SizeBytes)
	}
}

func TestReadFile_Missing(t *testing.T) {
	s := &Storage{}
	if _, err := s.ReadFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ReadFile() expected error")
	}
	if _, err := s.GetFileStats(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("GetFileStats() expected error")
	}
}
