// Package epub bundles a downloaded gallery directory into an EPUB for
// offline reading.
package epub

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	goepub "github.com/go-shiori/go-epub"
)

// Builder compiles the page images of a gallery directory into one
// EPUB, in file-name order.
type Builder struct {
	Title    string // defaults to the directory base name
	MaxWidth int    // pages wider than this are shrunk; 0 keeps originals
}

// BuildFromDir writes the EPUB next to dir and returns its path.
func (b *Builder) BuildFromDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var images []string
	for _, entry := range entries {
		if !entry.IsDir() && isImageFile(entry.Name()) {
			images = append(images, entry.Name())
		}
	}
	if len(images) == 0 {
		return "", fmt.Errorf("no images found in %s", dir)
	}
	sort.Strings(images)

	title := b.Title
	if title == "" {
		title = filepath.Base(dir)
	}
	e, err := goepub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("create EPUB: %w", err)
	}
	e.SetLang("it")

	workDir, err := os.MkdirTemp("", "antenati-epub-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(workDir)

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h1>%s</h1>\n", title))
	for i, name := range images {
		path := filepath.Join(dir, name)
		if b.MaxWidth > 0 {
			if shrunk, err := shrinkToWidth(path, b.MaxWidth, workDir); err == nil {
				path = shrunk
			}
		}
		internal, err := e.AddImage(path, "")
		if err != nil {
			return "", fmt.Errorf("add image %s: %w", name, err)
		}
		body.WriteString(fmt.Sprintf(
			`<div class="page"><img src="%s" alt="Page %d" style="width:100%%;height:auto;"/></div>%s`,
			internal, i+1, "\n",
		))
	}
	if _, err := e.AddSection(body.String(), title, "", ""); err != nil {
		return "", fmt.Errorf("add section: %w", err)
	}

	out := filepath.Join(filepath.Dir(dir), filepath.Base(dir)+".epub")
	if err := e.Write(out); err != nil {
		return "", fmt.Errorf("write EPUB: %w", err)
	}
	return out, nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
