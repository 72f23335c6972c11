// Package export writes the per-gallery info.csv summary.
package export

import (
	"encoding/csv"
	"os"

	"github.com/archivio/antenati/pkg/services"
)

// GalleryRows builds the info.csv header and one row per selected page:
// the gallery description fields followed by the page slug and its
// image URL.
func GalleryRows(g *services.Gallery) (header []string, rows [][]string, err error) {
	details, err := g.Details()
	if err != nil {
		return nil, nil, err
	}
	shared := make([]string, 0, len(details))
	for _, d := range details {
		header = append(header, d[0])
		shared = append(shared, d[1])
	}
	header = append(header, "mediatype", "Languages")

	for _, page := range g.Pages() {
		row := make([]string, 0, len(shared)+2)
		row = append(row, shared...)
		row = append(row, page.Slug, page.URL)
		rows = append(rows, row)
	}
	return header, rows, nil
}

// WriteCSV writes a semicolon-separated CSV file.
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
