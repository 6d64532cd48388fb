package db

import "testing"

func TestInsertExport(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	rec := ExportRecord{
		Title:       "The Lighthouse",
		DocKind:     "exercises",
		Mode:        "adapted",
		Format:      "pdf",
		FilePath:    "wsk-exports/the-lighthouse-exercises-adapted.pdf",
		ContentHash: "abc123def456",
		SizeBytes:   2048,
		PageCount:   2,
		Language:    "en",
	}

	id, err := db.InsertExport(rec)
	if err != nil {
		t.Fatalf("InsertExport() failed: %v", err)
	}
	if id == 0 {
		t.Error("InsertExport() returned 0 ID")
	}

	exports, err := db.ListExports(0)
	if err != nil {
		t.Fatalf("ListExports() failed: %v", err)
	}
	if len(exports) != 1 {
		t.Fatalf("got %d exports, want 1", len(exports))
	}

	got := exports[0]
	rec.ExportID = id
	rec.CreatedAt = got.CreatedAt
	if got != rec {
		t.Errorf("ListExports()[0] = %+v, want %+v", got, rec)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestListExports_Limit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, f := range []string{"txt", "pdf", "docx"} {
		if _, err := db.InsertExport(ExportRecord{Title: "T", DocKind: "texts", Format: f, FilePath: "p." + f, ContentHash: f}); err != nil {
			t.Fatalf("InsertExport() failed: %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"all", 0, 3},
		{"limited", 2, 2},
		{"over", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exports, err := db.ListExports(tt.limit)
			if err != nil {
				t.Fatalf("ListExports() error = %v", err)
			}
			if len(exports) != tt.want {
				t.Errorf("got %d exports, want %d", len(exports), tt.want)
			}
		})
	}

	// newest first
	exports, _ := db.ListExports(1)
	if exports[0].Format != "docx" {
		t.Errorf("newest export format = %q, want docx", exports[0].Format)
	}
}
