package pdfocr

import (
	"maps"
	"slices"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/gbx/pkg/gbx"
	"github.com/gardar/gbx/pkg/geom"
)

const (
	roteLinieWidth = 0.6
	overlayWidth   = 0.3
	labelSize      = 6
)

// drawRoteLinien draws the user's strike-through lines. Coordinates are mm.
func drawRoteLinien(pdf *fpdf.Fpdf, linien []geom.Linie, color RGB) {
	if len(linien) == 0 {
		return
	}
	pdf.SetDrawColor(color.R, color.G, color.B)
	pdf.SetLineWidth(roteLinieWidth)
	for _, linie := range linien {
		for i := 1; i < len(linie.Punkte); i++ {
			a, b := linie.Punkte[i-1], linie.Punkte[i]
			pdf.Line(a.X, a.Y, b.X, b.Y)
		}
	}
	pdf.SetDrawColor(0, 0, 0)
}

// drawAnpassung draws the column rectangles and row lines of a page's
// overrides, labelled with their ids, and the corrected page type.
func drawAnpassung(pdf *fpdf.Fpdf, a gbx.AnpassungSeite, pageWidth float64, config OCRConfig) {
	pdf.SetFont(config.Font.Name, config.Font.Style, labelSize)
	pdf.SetLineWidth(overlayWidth)

	if a.KlassifikationNeu != nil {
		pdf.SetTextColor(config.Colors.Spalte.R, config.Colors.Spalte.G, config.Colors.Spalte.B)
		pdf.Text(2, 4, string(*a.KlassifikationNeu))
	}

	c := config.Colors.Spalte
	pdf.SetDrawColor(c.R, c.G, c.B)
	pdf.SetTextColor(c.R, c.G, c.B)
	for _, id := range slices.Sorted(maps.Keys(a.Spalten)) {
		r := a.Spalten[id]
		pdf.Rect(r.MinX, r.MinY, r.Width(), r.Height(), "D")
		pdf.Text(r.MinX+0.5, r.MinY+2.5, id)
	}

	drawZeilen(pdf, a.ZeilenAuto, pageWidth, config.Colors.ZeileAuto, true)
	drawZeilen(pdf, a.Zeilen, pageWidth, config.Colors.Zeile, false)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFontSize(config.Font.Size)
}

func drawZeilen(pdf *fpdf.Fpdf, zeilen map[string]float64, pageWidth float64, color RGB, dashed bool) {
	if len(zeilen) == 0 {
		return
	}
	pdf.SetDrawColor(color.R, color.G, color.B)
	pdf.SetTextColor(color.R, color.G, color.B)
	if dashed {
		pdf.SetDashPattern([]float64{1, 1}, 0)
	}
	for _, id := range slices.Sorted(maps.Keys(zeilen)) {
		y := zeilen[id]
		pdf.Line(0, y, pageWidth, y)
		pdf.Text(pageWidth-pdf.GetStringWidth(id)-1, y-0.5, id)
	}
	if dashed {
		pdf.SetDashPattern([]float64{}, 0)
	}
}
