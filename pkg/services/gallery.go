package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/archivio/antenati/pkg/iiif"
	"github.com/archivio/antenati/pkg/naming"
)

// DirectoryExistsError is surfaced, not handled: whether to reuse an
// existing output directory is the caller's call.
type DirectoryExistsError struct {
	Path string
}

func (e *DirectoryExistsError) Error() string {
	return fmt.Sprintf("directory %s already exists", e.Path)
}

// PageSummary describes one selected page for presentation or export.
type PageSummary struct {
	Label string
	Slug  string
	URL   string
}

// Gallery is an opened Portale Antenati gallery: a resolved manifest
// plus the page range selected for download.
type Gallery struct {
	URL       string
	ArchiveID string
	Manifest  *iiif.Manifest
	DirName   string

	canvases []iiif.Canvas
	log      *zap.Logger
}

// Open resolves the archive ID, fetches the manifest, applies the
// half-open page range [first, last) and derives the directory name.
// Any failure here is fatal: no download state exists yet.
func Open(ctx context.Context, client *iiif.Client, rawurl string, first, last int, log *zap.Logger) (*Gallery, error) {
	if log == nil {
		log = zap.NewNop()
	}
	archiveID, err := iiif.ResolveArchiveID(rawurl)
	if err != nil {
		return nil, err
	}
	manifest, err := client.FetchManifest(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	dirName, err := iiif.DirectoryName(manifest, archiveID)
	if err != nil {
		return nil, err
	}
	g := &Gallery{
		URL:       rawurl,
		ArchiveID: archiveID,
		Manifest:  manifest,
		DirName:   dirName,
		canvases:  manifest.Canvases(first, last),
		log:       log,
	}
	log.Info("gallery opened",
		zap.String("archive_id", archiveID),
		zap.String("dir", dirName),
		zap.Int("pages", len(g.canvases)))
	return g, nil
}

// Len returns the number of selected pages.
func (g *Gallery) Len() int {
	return len(g.canvases)
}

// Info returns the manifest metadata in manifest order.
func (g *Gallery) Info() []iiif.Metadatum {
	return g.Manifest.Metadata
}

// Pages returns a summary of every selected page.
func (g *Gallery) Pages() []PageSummary {
	pages := make([]PageSummary, len(g.canvases))
	for i, c := range g.canvases {
		pages[i] = PageSummary{
			Label: c.Label,
			Slug:  naming.Slug(c.Label),
			URL:   c.ResourceID(),
		}
	}
	return pages
}

// Details returns the gallery description fields in export order. Each
// metadata access may fail independently with MetadataFieldMissingError.
func (g *Gallery) Details() ([][2]string, error) {
	fields := []struct {
		key   string
		label string
	}{
		{"subtitles", iiif.LabelTitle},
		{"category", iiif.LabelTypology},
		{"director", iiif.LabelDate},
		{"comments", iiif.LabelContext},
		{"actors", iiif.LabelHolder},
	}
	details := [][2]string{{"url", g.URL}}
	for _, f := range fields {
		value, err := g.Manifest.MetadataValue(f.label)
		if err != nil {
			return nil, err
		}
		details = append(details, [2]string{f.key, value})
	}
	return details, nil
}

// EnsureDir creates the gallery output directory under base. When the
// directory already exists its path is returned alongside a
// DirectoryExistsError so the caller can decide whether to proceed.
func (g *Gallery) EnsureDir(base string) (string, error) {
	path := g.DirName
	if base != "" {
		path = filepath.Join(base, g.DirName)
	}
	if _, err := os.Stat(path); err == nil {
		return path, &DirectoryExistsError{Path: path}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// Download fetches every selected page into dir and returns the total
// bytes written.
func (g *Gallery) Download(ctx context.Context, dir string, opts Options, sink ProgressSink) (int64, error) {
	engine := NewEngine(opts.Referer, g.log)
	return engine.Run(ctx, g.canvases, dir, opts, sink)
}
