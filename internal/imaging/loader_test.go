package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// encodeTestPNG returns the PNG encoding of a solid-color image.
func encodeTestPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeBytes(t *testing.T) {
	data := encodeTestPNG(t, 10, 8, color.White)

	img, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 10 || bounds.Dy() != 8 {
		t.Errorf("Expected 10x8 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestDecodeBytes_Garbage(t *testing.T) {
	_, err := DecodeBytes([]byte("this is not an image"))
	if err == nil {
		t.Fatal("Expected error for garbage input")
	}
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Expected ErrInvalidImage, got %v", err)
	}
}

func TestDecodeBytes_Empty(t *testing.T) {
	_, err := DecodeBytes(nil)
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Expected ErrInvalidImage for empty buffer, got %v", err)
	}
}

func TestDecode_Truncated(t *testing.T) {
	data := encodeTestPNG(t, 20, 20, color.Black)

	// Truncated PNG streams must fail the same way as garbage.
	_, err := DecodeBytes(data[:len(data)/2])
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Expected ErrInvalidImage for truncated stream, got %v", err)
	}
}

func TestImageCache_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lot.png")
	if err := os.WriteFile(path, encodeTestPNG(t, 16, 12, color.White), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cache := NewImageCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("Expected width 16, got %d", img.Bounds().Dx())
	}

	// Second load hits the cache: removing the file must not matter.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove fixture: %v", err)
	}
	if _, err := cache.Load(path); err != nil {
		t.Errorf("Expected cached load to succeed, got %v", err)
	}

	cache.Evict(path)
	if _, err := cache.Load(path); err == nil {
		t.Error("Expected load to fail after eviction with file removed")
	}
}

func TestImageCache_LoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cache := NewImageCache()
	if _, err := cache.Load(path); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Expected ErrInvalidImage, got %v", err)
	}
}
