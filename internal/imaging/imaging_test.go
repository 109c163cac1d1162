package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateVariantsResizes(t *testing.T) {
	src := testJPEG(t, 1600, 800)

	results, err := GenerateVariants(src, nil)
	if err != nil {
		t.Fatalf("GenerateVariants() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d variants, want 2", len(results))
	}

	thumb := results[0]
	if thumb.Name != "thumb" || thumb.Width != 320 || thumb.Height != 160 {
		t.Errorf("thumb variant = %s %dx%d, want thumb 320x160", thumb.Name, thumb.Width, thumb.Height)
	}
	if thumb.ContentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", thumb.ContentType)
	}

	decoded, _, err := image.Decode(bytes.NewReader(thumb.Data))
	if err != nil {
		t.Fatalf("decode thumb: %v", err)
	}
	if got := decoded.Bounds().Dx(); got != 320 {
		t.Errorf("decoded thumb width = %d, want 320", got)
	}
}

func TestGenerateVariantsNeverUpscales(t *testing.T) {
	src := testJPEG(t, 200, 100)

	results, err := GenerateVariants(src, nil)
	if err != nil {
		t.Fatalf("GenerateVariants() error = %v", err)
	}

	// 200px source is narrower than the thumb target, so only one
	// variant at original width is produced.
	if len(results) != 1 {
		t.Fatalf("got %d variants, want 1", len(results))
	}
	if results[0].Width != 200 {
		t.Errorf("width = %d, want 200 (no upscaling)", results[0].Width)
	}
}

func TestGenerateVariantsPreservesPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 400))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	results, err := GenerateVariants(buf.Bytes(), []Variant{{Name: "thumb", Width: 100}})
	if err != nil {
		t.Fatalf("GenerateVariants() error = %v", err)
	}
	if results[0].ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", results[0].ContentType)
	}
}

func TestGenerateVariantsRejectsGarbage(t *testing.T) {
	if _, err := GenerateVariants([]byte("not an image"), nil); err == nil {
		t.Error("expected decode error for non-image data")
	}
}
