package pdfocr

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/gbx/pkg/hocr"
)

// drawOCRLayer draws the OCR text onto a layer in a pdf page.
// The pageNum parameter is used to create unique layer names for each page.
func drawOCRLayer(
	pdf *fpdf.Fpdf,
	parsed hocr.ParsedHocr,
	debug bool,
	layerName string,
	pageNum int,
	transform func(x, y float64) (float64, float64),
	fontConfig FontConfig,
) error {
	formattedLayerName := layerName
	if pageNum > 0 {
		formattedLayerName = fmt.Sprintf("%s (Seite %d)", layerName, pageNum)
	}

	layer := pdf.AddLayer(formattedLayerName, true)
	pdf.BeginLayer(layer)
	pdf.SetFont(fontConfig.Name, fontConfig.Style, fontConfig.Size)

	if debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
		pdf.SetDrawColor(255, 0, 0)
	} else {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	encodingErrors := 0
	words := parsed.Words()
	for _, word := range words {
		drawWord(pdf, word, transform, fontConfig, debug, &encodingErrors)
	}

	if !debug {
		pdf.SetAlpha(1.0, "Normal")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.EndLayer()

	// Report encoding errors if more than a threshold
	if len(words) > 0 && encodingErrors > len(words)/10 {
		return fmt.Errorf("character encoding issues in %d of %d words",
			encodingErrors, len(words))
	}

	return nil
}

// drawWord renders a single word onto the PDF layer
func drawWord(pdf *fpdf.Fpdf, word hocr.Word, transform func(x, y float64) (float64, float64),
	fontConfig FontConfig, debug bool, encodingErrors *int) {

	x, y := transform(word.Bounds.MinX, word.Bounds.MinY)
	x2, y2 := transform(word.Bounds.MaxX, word.Bounds.MaxY)
	wordWidth := x2 - x

	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	latin1, err := charmap.ISO8859_1.NewEncoder().String(word.Text)
	if err != nil {
		*encodingErrors++
		return
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > 0 && wordWidth > 0 {
		scale := wordWidth / strWidth
		pdf.SetFontSize(fontConfig.Size * scale)
	}

	_, fontSize := pdf.GetFontSize()
	baseline := y + fontSize*fontConfig.AscentRatio

	pdf.Text(x, baseline, latin1)
	pdf.SetFontSize(fontConfig.Size)

	if debug {
		pdf.Rect(x, y, wordWidth, y2-y, "D")
	}
}
