package gdocai

import (
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"golang.org/x/text/unicode/norm"

	"github.com/gardar/gbx/pkg/gbx"
	"github.com/gardar/gbx/pkg/geom"
	"github.com/gardar/gbx/pkg/hocr"
)

// LayoutFromDocument converts every page of a Document AI response to the
// OCR layout of a .gbx file.
func LayoutFromDocument(doc *documentaipb.Document, cfg *Config) (gbx.HocrLayout, error) {
	layout := gbx.HocrLayout{Seiten: make(map[string]gbx.HocrSeite, len(doc.GetPages()))}
	for i, page := range doc.GetPages() {
		n := pageNumber(page, i)
		seite, err := SeiteFromPage(page, doc.GetText(), cfg)
		if err != nil {
			return gbx.HocrLayout{}, fmt.Errorf("page %d: %w", n, err)
		}
		layout.Seiten[gbx.SeitenID(n)] = seite
	}
	return layout, nil
}

// SeiteFromPage converts a single Document AI page. Blocks become content
// areas; paragraphs and lines outside any block get an area of their own.
func SeiteFromPage(page *documentaipb.Document_Page, fullText string, cfg *Config) (gbx.HocrSeite, error) {
	size, err := pageSize(page.GetDimension(), cfg)
	if err != nil {
		return gbx.HocrSeite{}, err
	}

	conv := converter{page: page, fullText: fullText, pxW: size.pxW, pxH: size.pxH}
	parsed := hocr.ParsedHocr{
		Bounds: geom.NewRect(0, 0, size.pxW, size.pxH),
		Careas: []hocr.Area{},
	}

	assignedParagraphs := make(map[int]bool)
	assignedLines := make(map[string]bool)

	for _, block := range page.GetBlocks() {
		area := hocr.Area{Bounds: conv.bounds(block.GetLayout()), Paragraphs: []hocr.Paragraph{}}
		for pidx, para := range page.GetParagraphs() {
			if assignedParagraphs[pidx] || !isElementInParent(para.GetLayout(), block.GetLayout(), fullText) {
				continue
			}
			assignedParagraphs[pidx] = true
			area.Paragraphs = append(area.Paragraphs, conv.paragraph(para, assignedLines))
		}
		parsed.Careas = append(parsed.Careas, area)
	}

	for pidx, para := range page.GetParagraphs() {
		if assignedParagraphs[pidx] {
			continue
		}
		p := conv.paragraph(para, assignedLines)
		parsed.Careas = append(parsed.Careas, hocr.Area{Bounds: p.Bounds, Paragraphs: []hocr.Paragraph{p}})
	}

	for _, line := range page.GetLines() {
		if assignedLines[getLayoutKey(line.GetLayout())] {
			continue
		}
		l := conv.line(line)
		parsed.Careas = append(parsed.Careas, hocr.Area{
			Bounds:     l.Bounds,
			Paragraphs: []hocr.Paragraph{{Bounds: l.Bounds, Lines: []hocr.Line{l}}},
		})
	}

	return gbx.HocrSeite{BreiteMm: size.breiteMm, HoeheMm: size.hoeheMm, Parsed: parsed}, nil
}

type converter struct {
	page     *documentaipb.Document_Page
	fullText string
	pxW, pxH float64
}

func (c converter) paragraph(para *documentaipb.Document_Page_Paragraph, assignedLines map[string]bool) hocr.Paragraph {
	p := hocr.Paragraph{Bounds: c.bounds(para.GetLayout()), Lines: []hocr.Line{}}
	for _, line := range c.page.GetLines() {
		key := getLayoutKey(line.GetLayout())
		if assignedLines[key] || !isElementInParent(line.GetLayout(), para.GetLayout(), c.fullText) {
			continue
		}
		assignedLines[key] = true
		p.Lines = append(p.Lines, c.line(line))
	}
	return p
}

func (c converter) line(line *documentaipb.Document_Page_Line) hocr.Line {
	l := hocr.Line{Bounds: c.bounds(line.GetLayout()), Words: []hocr.Word{}}
	for _, token := range c.page.GetTokens() {
		if !isElementInParent(token.GetLayout(), line.GetLayout(), c.fullText) {
			continue
		}
		text := tokenText(token, c.fullText)
		if text == "" {
			continue
		}
		l.Words = append(l.Words, hocr.Word{
			Bounds:     c.bounds(token.GetLayout()),
			Confidence: math.Round(float64(token.GetLayout().GetConfidence())*1000) / 10,
			Text:       text,
		})
	}
	return l
}

// bounds scales the normalized bounding polygon of a layout to pixels.
func (c converter) bounds(layout *documentaipb.Document_Page_Layout) geom.Rect {
	vertices := layout.GetBoundingPoly().GetNormalizedVertices()
	if len(vertices) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, v := range vertices {
		x := math.Round(float64(v.GetX()) * c.pxW)
		y := math.Round(float64(v.GetY()) * c.pxH)
		r = r.Union(geom.Rect{MinX: x, MinY: y, MaxX: x, MaxY: y})
	}
	return r
}

// tokenText is the text of a token without its break, NFC-normalized.
func tokenText(token *documentaipb.Document_Page_Token, fullText string) string {
	text := textFromLayout(token.GetLayout(), fullText)
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", " ")
	return norm.NFC.String(strings.TrimSpace(text))
}

type seitenGroesse struct {
	breiteMm, hoeheMm float64
	pxW, pxH          float64
}

const mmPerInch = 25.4

// pageSize derives the page size in mm and the pixel space of the tree from
// the page dimension. A configured page format overrides the mm size.
func pageSize(dim *documentaipb.Document_Page_Dimension, cfg *Config) (seitenGroesse, error) {
	if dim == nil || dim.GetWidth() <= 0 || dim.GetHeight() <= 0 {
		return seitenGroesse{}, fmt.Errorf("page has no dimension")
	}
	w, h := float64(dim.GetWidth()), float64(dim.GetHeight())
	dpi := cfg.dpi()

	var s seitenGroesse
	switch strings.ToLower(dim.GetUnit()) {
	case "", "pixels", "pixel", "px":
		s = seitenGroesse{breiteMm: w / dpi * mmPerInch, hoeheMm: h / dpi * mmPerInch, pxW: w, pxH: h}
	case "inches", "inch", "in":
		s = seitenGroesse{breiteMm: w * mmPerInch, hoeheMm: h * mmPerInch}
	case "points", "point", "pt":
		s = seitenGroesse{breiteMm: w / 72 * mmPerInch, hoeheMm: h / 72 * mmPerInch}
	case "cm":
		s = seitenGroesse{breiteMm: w * 10, hoeheMm: h * 10}
	case "mm":
		s = seitenGroesse{breiteMm: w, hoeheMm: h}
	default:
		return seitenGroesse{}, fmt.Errorf("unsupported page dimension unit %q", dim.GetUnit())
	}

	if s.pxW == 0 {
		s.pxW = math.Round(s.breiteMm / mmPerInch * dpi)
		s.pxH = math.Round(s.hoeheMm / mmPerInch * dpi)
	}
	if cfg != nil && cfg.Seite.BreiteMm > 0 && cfg.Seite.HoeheMm > 0 {
		s.breiteMm, s.hoeheMm = cfg.Seite.BreiteMm, cfg.Seite.HoeheMm
	}
	return s, nil
}

// Helper function to check if an element is contained within a parent
func isElementInParent(elementLayout, parentLayout *documentaipb.Document_Page_Layout, fullText string) bool {
	if elementLayout == nil || parentLayout == nil ||
		elementLayout.TextAnchor == nil || parentLayout.TextAnchor == nil ||
		len(elementLayout.TextAnchor.TextSegments) == 0 || len(parentLayout.TextAnchor.TextSegments) == 0 {
		return false
	}

	elementStart := elementLayout.TextAnchor.TextSegments[0].StartIndex
	elementEnd := elementLayout.TextAnchor.TextSegments[0].EndIndex
	parentStart := parentLayout.TextAnchor.TextSegments[0].StartIndex
	parentEnd := parentLayout.TextAnchor.TextSegments[0].EndIndex

	return elementStart >= parentStart && elementEnd <= parentEnd
}

// Helper function to generate a unique key for a layout
func getLayoutKey(layout *documentaipb.Document_Page_Layout) string {
	if layout == nil || layout.TextAnchor == nil || len(layout.TextAnchor.TextSegments) == 0 {
		return ""
	}
	return fmt.Sprintf("%d-%d", layout.TextAnchor.TextSegments[0].StartIndex,
		layout.TextAnchor.TextSegments[0].EndIndex)
}
