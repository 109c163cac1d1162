// Package imaging resizes uploaded images into smaller variants used by
// the editor's image picker. Scaling uses Catmull-Rom resampling from
// golang.org/x/image and skips variants wider than the source to avoid
// upscaling.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Variant describes a single resized image target.
type Variant struct {
	Name    string // e.g., "thumb", "email"
	Width   int    // Target width in pixels
	Quality int    // JPEG quality 1-100 (ignored for PNG/GIF sources)
}

// DefaultVariants covers the editor thumbnail and the widest size an
// email client will ever display inside the 600px layout.
var DefaultVariants = []Variant{
	{Name: "thumb", Width: 320, Quality: 75},
	{Name: "email", Width: 1200, Quality: 82},
}

// ProcessedImage holds one generated variant ready to write out.
type ProcessedImage struct {
	Name        string
	Width       int
	Height      int
	Data        []byte
	ContentType string
}

// GenerateVariants decodes the source image and produces a resized copy
// for each variant narrower than the original. The source format is
// preserved; JPEG output uses the variant's quality setting.
func GenerateVariants(original []byte, variants []Variant) ([]ProcessedImage, error) {
	if len(variants) == 0 {
		variants = DefaultVariants
	}

	src, format, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}
	origWidth := src.Bounds().Dx()

	var results []ProcessedImage
	for _, v := range variants {
		targetWidth := v.Width
		if origWidth <= targetWidth {
			targetWidth = origWidth
		}

		out, err := encode(scale(src, targetWidth), format, v.Quality)
		if err != nil {
			return nil, fmt.Errorf("imaging: encode %s: %w", v.Name, err)
		}

		height := src.Bounds().Dy() * targetWidth / origWidth
		results = append(results, ProcessedImage{
			Name:        v.Name,
			Width:       targetWidth,
			Height:      height,
			Data:        out,
			ContentType: contentType(format),
		})

		// Anything wider would just be the original again.
		if origWidth <= v.Width {
			break
		}
	}

	return results, nil
}

func scale(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() == width {
		return src
	}
	height := bounds.Dy() * width / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		if quality <= 0 || quality > 100 {
			quality = 80
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func contentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
