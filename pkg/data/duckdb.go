package data

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
	archive_id    VARCHAR,
	url           VARCHAR,
	title         VARCHAR,
	typology      VARCHAR,
	directory     VARCHAR,
	pages         INTEGER,
	bytes         BIGINT,
	downloaded_at TIMESTAMP
)`

// Repository keeps the download history in a local DuckDB file.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) SaveDownload(rec *GalleryRecord) error {
	_, err := r.db.Exec(
		`INSERT INTO downloads (archive_id, url, title, typology, directory, pages, bytes, downloaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ArchiveID, rec.URL, rec.Title, rec.Typology, rec.Directory,
		rec.Pages, rec.Bytes, rec.DownloadedAt,
	)
	return err
}

func (r *Repository) ListDownloads() ([]*GalleryRecord, error) {
	rows, err := r.db.Query(
		`SELECT archive_id, url, title, typology, directory, pages, bytes, downloaded_at
		 FROM downloads ORDER BY downloaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*GalleryRecord
	for rows.Next() {
		rec := &GalleryRecord{}
		if err := rows.Scan(
			&rec.ArchiveID, &rec.URL, &rec.Title, &rec.Typology,
			&rec.Directory, &rec.Pages, &rec.Bytes, &rec.DownloadedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) Close() error {
	return r.db.Close()
}
