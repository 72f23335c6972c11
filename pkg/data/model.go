package data

import "time"

// GalleryRecord is one completed download run.
type GalleryRecord struct {
	ArchiveID    string
	URL          string
	Title        string
	Typology     string
	Directory    string
	Pages        int
	Bytes        int64
	DownloadedAt time.Time
}
