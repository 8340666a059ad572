// ABOUTME: Converts between decoded images and the compact bytes stored on entries.
// ABOUTME: Encodes JPEG at a fixed quality and decodes JPEG, PNG, or GIF leniently.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // registers GIF for Decode
	"image/jpeg"
	_ "image/png" // registers PNG for Decode
)

// DefaultQuality is the JPEG quality used for every stored photo (0.8 on a
// 0-1 scale). It is a fixed default and not exposed as a setting.
const DefaultQuality = 80

// ErrNilImage is returned when Encode is handed no image.
var ErrNilImage = errors.New("image is nil")

// Encode compresses img as JPEG at DefaultQuality.
func Encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: DefaultQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode returns the image held in data, or nil when data is empty or not a
// supported encoding. A failed decode means "no image", never an error.
func Decode(data []byte) image.Image {
	if len(data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

// Valid reports whether data decodes to an image.
func Valid(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return false
	}
	return Decode(data) != nil
}

// Reencode decodes any supported input and encodes it with Encode.
func Reencode(data []byte) ([]byte, error) {
	img := Decode(data)
	if img == nil {
		return nil, errors.New("data is not a supported image")
	}
	return Encode(img)
}
