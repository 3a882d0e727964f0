package pdfocr

import (
	"bytes"
	"fmt"
	"log/slog"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/gbx/pkg/gbx"
)

// createPDF builds the PDF for the given pages. This function assumes inputs
// have been validated by the caller.
func createPDF(file *gbx.PdfFile, pages []int, images map[int][]byte, config OCRConfig) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator("gbx", true)
	tb := file.Analysiert.Titelblatt
	if tb.Blatt != "" {
		pdf.SetTitle(tb.String(), true)
	}

	logger := getLogger(config)

	for _, n := range pages {
		seite, _ := file.Seite(n)
		w, h := seite.BreiteMm, seite.HoeheMm
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("page %d has no size", n)
		}

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		if img, ok := images[n]; ok {
			imageName := fmt.Sprintf("seite%d", n)
			imageType, err := detectImageType(img)
			if err != nil {
				return nil, fmt.Errorf("failed to detect image type for page %d: %w", n, err)
			}
			opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
			pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(img))
			pdf.ImageOptions(imageName, 0, 0, w, h, false, opts, 0, "")
		}

		hocrW, hocrH := seite.Parsed.Bounds.Width(), seite.Parsed.Bounds.Height()
		transform := func(x, y float64) (float64, float64) {
			return normalizeCoords(x, y, hocrW, hocrH, w, h)
		}

		if hocrW > 0 && hocrH > 0 {
			if err := drawOCRLayer(pdf, seite.Parsed, config.Debug, config.LayerName, n, transform, config.Font); err != nil {
				return nil, fmt.Errorf("failed to draw OCR layer for page %d: %w", n, err)
			}
		} else {
			logger.Warn("page has no image bounds, skipping text layer", slog.Int("seite", n))
		}

		drawRoteLinien(pdf, seite.RoteLinien, config.Colors.RoteLinie)

		if config.Overlay {
			if a, ok := file.AnpassungenSeite[gbx.SeitenID(n)]; ok {
				drawAnpassung(pdf, a, w, config)
			}
		}

		if pdf.Err() {
			return nil, fmt.Errorf("failed to render page %d: %w", n, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
