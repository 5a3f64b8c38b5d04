package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func fill(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func createTestJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, fill(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, fill(w, h, color.RGBA{0, 0, 255, 255}))
	return buf.Bytes()
}

func TestProcessJPEG(t *testing.T) {
	photo, err := Process(bytes.NewReader(createTestJPEG(100, 80)))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", photo.MIME)
	}
	if photo.Width != 100 || photo.Height != 80 {
		t.Errorf("expected 100x80, got %dx%d", photo.Width, photo.Height)
	}
	if len(photo.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPNGBecomesJPEG(t *testing.T) {
	photo, err := Process(bytes.NewReader(createTestPNG(100, 100)))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg (always outputs JPEG), got %s", photo.MIME)
	}
}

func TestProcessDownscale(t *testing.T) {
	photo, err := Process(bytes.NewReader(createTestJPEG(2048, 1024)))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != MaxDimension || bounds.Dy() != MaxDimension/2 {
		t.Errorf("expected %dx%d, got %dx%d", MaxDimension, MaxDimension/2, bounds.Dx(), bounds.Dy())
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	if _, err := Process(strings.NewReader("not an image")); err == nil {
		t.Error("expected error for invalid format")
	}
	if _, err := Process(strings.NewReader("GIF89a...")); err == nil {
		t.Error("expected error for GIF")
	}
}

func TestDataURLRoundTrip(t *testing.T) {
	photo, err := Process(bytes.NewReader(createTestPNG(10, 10)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	url := photo.DataURL()
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected data URL prefix: %.40s", url)
	}

	data, mime, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", mime)
	}
	if !bytes.Equal(data, photo.Data) {
		t.Error("decoded data differs from the original")
	}
}

func TestDecodeDataURLInvalid(t *testing.T) {
	tests := []string{
		"",
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:image/png,AAAA",
		"data:image/png;base64,***",
	}
	for _, in := range tests {
		if _, _, err := DecodeDataURL(in); err == nil {
			t.Errorf("DecodeDataURL(%q) expected error", in)
		}
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"text/plain": ".bin",
	}
	for mime, want := range tests {
		if got := Extension(mime); got != want {
			t.Errorf("Extension(%q) = %q, want %q", mime, got, want)
		}
	}
}
