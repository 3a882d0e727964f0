// Package pdfocr renders digitized land-register sheets to searchable PDFs.
//
// Every page of a .gbx file that has an OCR layout becomes one PDF page of the
// scanned page's size in mm. The recognized words are placed on an invisible
// text layer at their exact positions, so the PDF is searchable and text can
// be selected. When the page images are supplied they are drawn underneath.
// The red strike-through lines of the page are drawn on top and, on request,
// the user's column and row overrides as an overlay.
//
// Main Functions:
//
// - Render: Renders a .gbx file to PDF bytes
package pdfocr

import (
	"fmt"
	"log/slog"

	"github.com/gardar/gbx/pkg/gbx"
)

// Render renders the pages of file that have an OCR layout. images maps page
// numbers to PNG, JPEG or TIFF page images; pages without image only carry the text
// layer and the annotations.
func Render(file *gbx.PdfFile, images map[int][]byte, config OCRConfig) ([]byte, error) {
	if file == nil {
		return nil, fmt.Errorf("no gbx file provided")
	}
	if config.StartPage < 1 {
		return nil, fmt.Errorf("start page must be at least 1, got %d", config.StartPage)
	}

	if config.Font.Name == "" {
		config.Font = DefaultFont
	}
	logger := getLogger(config)

	var pages []int
	for _, n := range file.Seiten() {
		if n < config.StartPage {
			continue
		}
		if _, ok := file.Seite(n); !ok {
			logger.Warn("page has overrides but no OCR layout, skipping", slog.Int("seite", n))
			continue
		}
		pages = append(pages, n)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("gbx file contains no pages with OCR layout from page %d on", config.StartPage)
	}

	prepared := make(map[int][]byte, len(images))
	for n, img := range images {
		if len(img) == 0 {
			return nil, fmt.Errorf("image for page %d is empty", n)
		}
		data, imageType, err := prepareImage(img)
		if err != nil {
			return nil, fmt.Errorf("image for page %d has invalid format: %w", n, err)
		}
		logger.Debug("page image", slog.Int("seite", n), slog.String("type", imageType))
		prepared[n] = data
	}

	out, err := createPDF(file, pages, prepared, config)
	if err != nil {
		return nil, fmt.Errorf("error creating PDF: %w", err)
	}
	return out, nil
}
