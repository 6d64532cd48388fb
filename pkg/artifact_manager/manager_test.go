package artifact_manager

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		tags   []string
		ext    string
		want   string
	}{
		{"basic", "The Lighthouse", []string{"key", "adapted", "B1", "en"}, "pdf", "the-lighthouse-key-adapted-b1-en.pdf"},
		{"dotted ext", "sheet", nil, ".docx", "sheet.docx"},
		{"empty prefix", "", []string{"texts"}, "txt", "worksheet-texts.txt"},
		{"skips empty and repeated", "pack", []string{"", "key", "KEY", "!!"}, "txt", "pack-key.txt"},
		{"accents dropped", "Le Phare: été", []string{"fr"}, "txt", "le-phare-t-fr.txt"},
		{"no ext", "pack", []string{"a"}, "", "pack-a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.prefix, tt.tags, tt.ext); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortHash(t *testing.T) {
	a := ShortHash([]byte("one"))
	if len(a) != 12 {
		t.Errorf("ShortHash() length = %d, want 12", len(a))
	}
	if a != ShortHash([]byte("one")) {
		t.Error("ShortHash() not stable")
	}
	if a == ShortHash([]byte("two")) {
		t.Error("ShortHash() collided on different input")
	}
}

func TestManager_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	path, err := m.Save("../escape.txt", []byte("data"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if want := filepath.Join(dir, "escape.txt"); path != want {
		t.Errorf("Save() path = %q, want %q", path, want)
	}

	got, err := os.ReadFile(path)
	if err != nil || string(got) != "data" {
		t.Errorf("saved file = %q, %v", got, err)
	}
}
