// Package naming derives filesystem-safe names for gallery pages.
package naming

import (
	"fmt"
	"mime"

	gslug "github.com/gosimple/slug"
)

// UnknownContentTypeError means a download returned a media type with
// no known file extension.
type UnknownContentTypeError struct {
	ContentType string
}

func (e *UnknownContentTypeError) Error() string {
	return fmt.Sprintf("unable to guess extension for %q", e.ContentType)
}

// extensions maps the media types the image servers are known to serve
// to conventional file extensions.
var extensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jp2":       ".jp2",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/tiff":      ".tif",
	"image/bmp":       ".bmp",
	"application/pdf": ".pdf",
}

// Slug normalizes a display label into a lower-case ASCII token safe
// for file names and CSV cells. It is idempotent.
func Slug(label string) string {
	return gslug.Make(label)
}

// ExtensionFor maps the media type of a Content-Type header value to a
// file extension, ignoring parameters such as charset.
func ExtensionFor(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", &UnknownContentTypeError{ContentType: contentType}
	}
	ext, ok := extensions[mediaType]
	if !ok {
		return "", &UnknownContentTypeError{ContentType: mediaType}
	}
	return ext, nil
}
