package gbx

import (
	"github.com/gardar/gbx/internal/wire"
	"github.com/gardar/gbx/pkg/geom"
)

// Roetung carries the redaction state shared by every register record. A
// record is redacted ("gerötet") when it is struck through in red on the
// scanned page.
//
// The manual flag always wins: once a user set it, automatic detection can
// only change AutomatischGeroetet.
type Roetung struct {
	AutomatischGeroetet *bool          `json:"automatisch_geroetet,omitempty"`
	ManuellGeroetet     *bool          `json:"manuell_geroetet,omitempty"`
	PositionInPdf       *PositionInPdf `json:"position_in_pdf,omitempty"`
}

// IstGeroetet resolves the redaction state: the manual flag if set, else the
// automatic flag if set, else false.
func (r Roetung) IstGeroetet() bool {
	if r.ManuellGeroetet != nil {
		return *r.ManuellGeroetet
	}
	if r.AutomatischGeroetet != nil {
		return *r.AutomatischGeroetet
	}
	return false
}

// Roetbar is implemented by every record kind and by the entry unions.
type Roetbar interface {
	IstGeroetet() bool
}

// PositionInPdf locates a record on a page, in mm.
type PositionInPdf struct {
	Seite string    `json:"seite"`
	Rect  geom.Rect `json:"rect"`
}

func (p *PositionInPdf) UnmarshalJSON(data []byte) error {
	type plain PositionInPdf
	return wire.DecodeRequired(data, (*plain)(p), "seite", "rect")
}

// countGeroetet counts the redacted records of a list.
func countGeroetet[T Roetbar](records []T) Statistik {
	s := Statistik{Eintraege: len(records)}
	for _, r := range records {
		if r.IstGeroetet() {
			s.Geroetet++
		}
	}
	return s
}
