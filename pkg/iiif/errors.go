package iiif

import "fmt"

// MalformedLocatorError means a gallery URL does not carry the two
// numeric tokens the archive ID is derived from.
type MalformedLocatorError struct {
	URL string
}

func (e *MalformedLocatorError) Error() string {
	return fmt.Sprintf("cannot get archive ID from %s", e.URL)
}

// UpstreamError is a non-200 HTTP response, at either discovery step or
// an image download.
type UpstreamError struct {
	URL    string
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: HTTP error %d", e.URL, e.Status)
}

// ManifestNotFoundError means the landing page contains no manifest
// reference line.
type ManifestNotFoundError struct {
	URL string
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("no IIIF manifest found at %s", e.URL)
}

// MalformedManifestLineError means the manifest reference line carries
// no quoted manifest URL.
type MalformedManifestLineError struct {
	URL string
}

func (e *MalformedManifestLineError) Error() string {
	return fmt.Sprintf("invalid IIIF manifest line found at %s", e.URL)
}

// MetadataFieldMissingError means a metadata label is absent from the
// manifest.
type MetadataFieldMissingError struct {
	Label string
}

func (e *MetadataFieldMissingError) Error() string {
	return fmt.Sprintf("cannot get %s from manifest", e.Label)
}
