package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"math"
	"strconv"
	"text/template"

	"golang.org/x/net/html"

	"github.com/gardar/gbx/pkg/geom"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"esc":  html.EscapeString,
	"bbox": formatBBox,
	"conf": func(c float64) string { return strconv.FormatFloat(c, 'f', -1, 64) },
	// hOCR page numbers are 0-based
	"ppageno": func(n int) int { return max(n-1, 0) },
}

// Generate creates an hOCR HTML document from the HOCR struct
// Uses the embedded template to generate a complete HTML document
func Generate(doc *HOCR) (string, error) {
	tmpl, err := template.New("hocr.tmpl").Funcs(templateFuncs).ParseFS(templateFS, "templates/hocr.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing hOCR template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}
	return buf.String(), nil
}

// formatBBox renders a rectangle as an hOCR bbox property with integer pixels
func formatBBox(r geom.Rect) string {
	return fmt.Sprintf("bbox %d %d %d %d",
		int(math.Round(r.MinX)), int(math.Round(r.MinY)),
		int(math.Round(r.MaxX)), int(math.Round(r.MaxY)))
}
