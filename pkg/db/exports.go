package db

import (
	"fmt"
	"time"
)

// ExportRecord is one written artifact.
type ExportRecord struct {
	ExportID    int64     `json:"export_id" yaml:"export_id"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Title       string    `json:"title" yaml:"title"`
	DocKind     string    `json:"doc" yaml:"doc"`
	Mode        string    `json:"mode,omitempty" yaml:"mode,omitempty"`
	Format      string    `json:"format" yaml:"format"`
	FilePath    string    `json:"file_path" yaml:"file_path"`
	ContentHash string    `json:"content_hash" yaml:"content_hash"`
	SizeBytes   int64     `json:"size_bytes" yaml:"size_bytes"`
	PageCount   int       `json:"pages,omitempty" yaml:"pages,omitempty"`
	Language    string    `json:"language,omitempty" yaml:"language,omitempty"`
}

// InsertExport records an export, returning the export_id.
func (db *DB) InsertExport(r ExportRecord) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO exports (title, doc_kind, mode, format, file_path, content_hash, size_bytes, page_count, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.Title, r.DocKind, r.Mode, r.Format, r.FilePath, r.ContentHash, r.SizeBytes, r.PageCount, r.Language)
	if err != nil {
		return 0, fmt.Errorf("failed to insert export: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get export ID: %w", err)
	}
	return id, nil
}

// ListExports returns exports newest first. A limit of 0 returns all.
func (db *DB) ListExports(limit int) ([]ExportRecord, error) {
	query := `
		SELECT export_id, created_at, title, doc_kind, mode, format,
		       file_path, content_hash, size_bytes, page_count, language
		FROM exports
		ORDER BY created_at DESC, export_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var exports []ExportRecord
	for rows.Next() {
		var r ExportRecord
		if err := rows.Scan(&r.ExportID, &r.CreatedAt, &r.Title, &r.DocKind, &r.Mode, &r.Format,
			&r.FilePath, &r.ContentHash, &r.SizeBytes, &r.PageCount, &r.Language); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, r)
	}

	return exports, rows.Err()
}
