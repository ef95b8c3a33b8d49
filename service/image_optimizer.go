package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log"

	"github.com/disintegration/imaging"
)

const (
	// Max dimension for dashboard property photos
	maxPhotoSize = 1600
	// JPEG quality
	photoQuality = 85
)

// OptimizePropertyPhoto converts an uploaded property photo to a resized
// JPEG suitable for the admin dashboard.
// imageData: raw image bytes (PNG, JPEG, etc.)
// Returns optimized JPEG image bytes.
func OptimizePropertyPhoto(imageData []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Only shrink, never enlarge
	if width > maxPhotoSize || height > maxPhotoSize {
		img = imaging.Fit(img, maxPhotoSize, maxPhotoSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: photoQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	log.Printf("✓ Photo optimized: %s %dx%d -> %d bytes", format, width, height, buf.Len())
	return buf.Bytes(), nil
}
