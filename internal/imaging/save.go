package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when SaveOptions leaves JPEGQuality unset.
const DefaultJPEGQuality = 95

// SaveOptions controls lossy encoders. PNG, GIF, BMP and TIFF ignore it.
type SaveOptions struct {
	// JPEGQuality ranges from 1 to 100. Zero selects DefaultJPEGQuality.
	JPEGQuality int

	// WebPQuality ranges from 1 to 100 and is ignored when WebPLossless is set.
	WebPQuality float32

	// WebPLossless switches the WebP encoder to lossless mode.
	WebPLossless bool
}

// Save encodes img to path, choosing the format from the file extension.
//
// Extensions understood by disintegration/imaging (.png, .jpg, .jpeg, .gif,
// .tif, .tiff, .bmp) go through imaging.Save; .webp is encoded with
// chai2010/webp. Any other extension is an error and nothing is created.
func Save(img image.Image, path string, opts SaveOptions) error {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return saveWebP(img, path, opts)
	}

	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported output format %q: %w", filepath.Ext(path), err)
	}

	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func saveWebP(img image.Image, path string, opts SaveOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	quality := opts.WebPQuality
	if quality <= 0 {
		quality = float32(DefaultJPEGQuality)
	}
	if err := webp.Encode(f, img, &webp.Options{Lossless: opts.WebPLossless, Quality: quality}); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode webp: %w", err)
	}
	return f.Close()
}
