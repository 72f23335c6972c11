package iiif

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Metadata labels used by the Portale Antenati manifests.
const (
	LabelContext  = "Contesto archivistico"
	LabelTitle    = "Titolo"
	LabelTypology = "Tipologia"
	LabelDate     = "Datazione"
	LabelHolder   = "Conservato da"
)

// Manifest is a IIIF Presentation v2 manifest as served by the SAN
// image server. Only the paths the downloader reads are mapped.
type Manifest struct {
	ID        string      `json:"@id"`
	Label     string      `json:"label"`
	Metadata  []Metadatum `json:"metadata"`
	Sequences []Sequence  `json:"sequences"`
}

// Metadatum is one label/value pair from the manifest metadata array.
type Metadatum struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Sequence struct {
	Canvases []Canvas `json:"canvases"`
}

// Canvas is a single page of the gallery.
type Canvas struct {
	Label  string  `json:"label"`
	Images []Image `json:"images"`
}

type Image struct {
	Resource Resource `json:"resource"`
}

type Resource struct {
	ID     string `json:"@id"`
	Format string `json:"format"`
}

// ResourceID returns the image URL of the canvas, or "" when the
// manifest carries no image for it.
func (c Canvas) ResourceID() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[0].Resource.ID
}

// Canvases returns the canvases of the first sequence restricted to the
// half-open range [first, last). A negative last means "to the end".
// Out-of-range bounds are clamped.
func (m *Manifest) Canvases(first, last int) []Canvas {
	var all []Canvas
	if len(m.Sequences) > 0 {
		all = m.Sequences[0].Canvases
	}
	if first < 0 {
		first = 0
	}
	if last < 0 || last > len(all) {
		last = len(all)
	}
	if first > last {
		first = last
	}
	return all[first:last]
}

// MetadataValue returns the value of the first metadata entry whose
// label matches exactly.
func (m *Manifest) MetadataValue(label string) (string, error) {
	for _, md := range m.Metadata {
		if md.Label == label {
			return md.Value, nil
		}
	}
	return "", &MetadataFieldMissingError{Label: label}
}

// DirectoryName derives the output directory name for a gallery from
// its archival context, title, typology and archive ID.
func DirectoryName(m *Manifest, archiveID string) (string, error) {
	context, err := m.MetadataValue(LabelContext)
	if err != nil {
		return "", err
	}
	title, err := m.MetadataValue(LabelTitle)
	if err != nil {
		return "", err
	}
	typology, err := m.MetadataValue(LabelTypology)
	if err != nil {
		return "", err
	}
	return slug.Make(fmt.Sprintf("%s-%s-%s-%s", context, title, typology, archiveID)), nil
}
