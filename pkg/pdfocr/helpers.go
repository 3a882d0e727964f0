package pdfocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"strings"

	"golang.org/x/image/tiff"
)

// normalizeCoords rescales hOCR Bounding Box (bbox) coords to the PDF coords.
func normalizeCoords(x, y, hocrW, hocrH, pdfW, pdfH float64) (float64, float64) {
	nx := (x / hocrW) * pdfW
	ny := (y / hocrH) * pdfH
	return nx, ny
}

// getLogger returns the configured logger, defaulting to slog.Default().
func getLogger(config OCRConfig) *slog.Logger {
	if config.Logger == nil {
		return slog.Default()
	}
	return config.Logger
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}

// prepareImage returns the image in a format the PDF writer can embed.
// TIFF scans, often CCITT compressed, are converted to PNG.
func prepareImage(data []byte) ([]byte, string, error) {
	imageType, err := detectImageType(data)
	if err != nil {
		return nil, "", err
	}
	if imageType != "TIFF" {
		return data, imageType, nil
	}

	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode TIFF: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("failed to convert TIFF to PNG: %w", err)
	}
	return buf.Bytes(), "PNG", nil
}
