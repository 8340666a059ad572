// ABOUTME: Tests for the image codec.
// ABOUTME: Checks decodability and dimensions rather than exact bytes.
package imagecodec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	return img
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	data, err := Encode(testImage(16, 8))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected encoded bytes")
	}

	img := Decode(data)
	if img == nil {
		t.Fatal("expected encoded bytes to decode")
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("decoded bounds = %v, want 16x8", b)
	}
	if !Valid(data) {
		t.Error("Valid() = false for encoded bytes")
	}
}

func TestEncodeNil(t *testing.T) {
	if _, err := Encode(nil); err == nil {
		t.Error("expected error encoding nil image")
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"text", []byte("definitely not an image")},
		{"truncated jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if img := Decode(tt.data); img != nil {
				t.Errorf("Decode(%s) returned an image, want nil", tt.name)
			}
			if Valid(tt.data) {
				t.Errorf("Valid(%s) = true, want false", tt.name)
			}
		})
	}
}

func TestReencodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(4, 4)); err != nil {
		t.Fatalf("png.Encode error: %v", err)
	}

	data, err := Reencode(buf.Bytes())
	if err != nil {
		t.Fatalf("Reencode error: %v", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig error: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}

	if _, err := Reencode([]byte("junk")); err == nil {
		t.Error("expected error re-encoding junk")
	}
}
