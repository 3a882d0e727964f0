// Package geom holds the plain geometry values of the exchange format.
//
// Units depend on context: page-space values (column overrides, red lines,
// positions of text blocks) are millimeters from the top-left corner of the
// PDF page, image-space values (hOCR bounding boxes) are pixels of the
// rasterized page. Nothing enforces min <= max; callers must tolerate
// degenerate rectangles.
package geom

import (
	"encoding/json"

	"github.com/gardar/gbx/internal/wire"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX float64 `json:"min_x"` // Left coordinate
	MinY float64 `json:"min_y"` // Top coordinate
	MaxX float64 `json:"max_x"` // Right coordinate
	MaxY float64 `json:"max_y"` // Bottom coordinate
}

// NewRect creates a rectangle from its two corners.
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Width of the rectangle, negative for degenerate rectangles.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height of the rectangle, negative for degenerate rectangles.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Punkt {
	return Punkt{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Punkt) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Scale multiplies the x bounds by sx and the y bounds by sy.
func (r Rect) Scale(sx, sy float64) Rect {
	return Rect{MinX: r.MinX * sx, MinY: r.MinY * sy, MaxX: r.MaxX * sx, MaxY: r.MaxY * sy}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Less orders rectangles field by field: MinX, MinY, MaxX, MaxY.
func (r Rect) Less(o Rect) bool {
	switch {
	case r.MinX != o.MinX:
		return r.MinX < o.MinX
	case r.MinY != o.MinY:
		return r.MinY < o.MinY
	case r.MaxX != o.MaxX:
		return r.MaxX < o.MaxX
	default:
		return r.MaxY < o.MaxY
	}
}

func (r *Rect) UnmarshalJSON(data []byte) error {
	type plain Rect
	return wire.DecodeRequired(data, (*plain)(r), "min_x", "min_y", "max_x", "max_y")
}

// Punkt is a point on the PDF page in millimeters.
type Punkt struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p *Punkt) UnmarshalJSON(data []byte) error {
	type plain Punkt
	return wire.DecodeRequired(data, (*plain)(p), "x", "y")
}

// Linie is a red line drawn by the user, as a polyline of n points.
type Linie struct {
	Punkte []Punkt `json:"punkte"`
}

func (l Linie) MarshalJSON() ([]byte, error) {
	type plain Linie
	if l.Punkte == nil {
		l.Punkte = []Punkt{}
	}
	return json.Marshal(plain(l))
}

func (l *Linie) UnmarshalJSON(data []byte) error {
	type plain Linie
	return wire.DecodeRequired(data, (*plain)(l), "punkte")
}

// Bounds returns the smallest rectangle containing every point of the line.
// The zero Rect is returned for a line without points.
func (l Linie) Bounds() Rect {
	if len(l.Punkte) == 0 {
		return Rect{}
	}
	r := Rect{MinX: l.Punkte[0].X, MinY: l.Punkte[0].Y, MaxX: l.Punkte[0].X, MaxY: l.Punkte[0].Y}
	for _, p := range l.Punkte[1:] {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}
