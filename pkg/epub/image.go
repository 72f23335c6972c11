package epub

import (
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// shrinkToWidth scales an image down to maxWidth, preserving aspect
// ratio, and writes the result as JPEG in destDir. Images already
// narrow enough are returned as-is.
func shrinkToWidth(path string, maxWidth int, destDir string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return "", err
	}

	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return path, nil
	}
	height := bounds.Dy() * maxWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	base := filepath.Base(path)
	out := filepath.Join(destDir, base[:len(base)-len(filepath.Ext(base))]+".jpg")
	w, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if err := jpeg.Encode(w, dst, &jpeg.Options{Quality: 85}); err != nil {
		w.Close()
		return "", err
	}
	return out, w.Close()
}
