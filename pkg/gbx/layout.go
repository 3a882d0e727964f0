package gbx

import (
	"github.com/gardar/gbx/internal/wire"
	"github.com/gardar/gbx/pkg/geom"
	"github.com/gardar/gbx/pkg/hocr"
)

// HocrLayout is the OCR result of a PDF, keyed by page id.
type HocrLayout struct {
	Seiten map[string]HocrSeite `json:"seiten,omitempty"`
}

func (l HocrLayout) IsZero() bool {
	return len(l.Seiten) == 0
}

// HocrSeite is the OCR result of one page. The tree in Parsed is in image
// pixels, the page size and the red lines are in mm.
type HocrSeite struct {
	BreiteMm   float64         `json:"breite_mm"`
	HoeheMm    float64         `json:"hoehe_mm"`
	Parsed     hocr.ParsedHocr `json:"parsed"`
	RoteLinien []geom.Linie    `json:"rote_linien,omitempty"`
}

func (s *HocrSeite) UnmarshalJSON(data []byte) error {
	type plain HocrSeite
	return wire.DecodeRequired(data, (*plain)(s), "breite_mm", "hoehe_mm", "parsed")
}

// pxPerMm is the image resolution of the page. ok is false when the page
// size or the image bounds are degenerate.
func (s HocrSeite) pxPerMm() (sx, sy float64, ok bool) {
	w, h := s.Parsed.Bounds.Width(), s.Parsed.Bounds.Height()
	if s.BreiteMm <= 0 || s.HoeheMm <= 0 || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w / s.BreiteMm, h / s.HoeheMm, true
}

// ToPx converts a rectangle from mm to image pixels.
func (s HocrSeite) ToPx(mm geom.Rect) geom.Rect {
	sx, sy, ok := s.pxPerMm()
	if !ok {
		return geom.Rect{}
	}
	return mm.Scale(sx, sy)
}

// ToMm converts a rectangle from image pixels to mm.
func (s HocrSeite) ToMm(px geom.Rect) geom.Rect {
	sx, sy, ok := s.pxPerMm()
	if !ok {
		return geom.Rect{}
	}
	return geom.Rect{MinX: px.MinX / sx, MinY: px.MinY / sy, MaxX: px.MaxX / sx, MaxY: px.MaxY / sy}
}

// TextIn returns the recognized lines inside a rectangle given in mm, for
// example a column of an AnpassungSeite.
func (s HocrSeite) TextIn(mm geom.Rect) StringOrLines {
	if _, _, ok := s.pxPerMm(); !ok {
		return MultiLine()
	}
	return MultiLine(s.Parsed.LinesIn(s.ToPx(mm))...)
}
