package gbx

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/gardar/gbx/internal/wire"
)

// PdfFile is the content of a .gbx file: one register sheet with its OCR
// layout and the user's corrections.
type PdfFile struct {
	Digitalisiert    bool                      `json:"digitalisiert"`
	Hocr             HocrLayout                `json:"hocr,omitzero"`
	AnpassungenSeite map[string]AnpassungSeite `json:"anpassungen_seite,omitempty"`
	Analysiert       Grundbuch                 `json:"analysiert"`
}

func (f *PdfFile) UnmarshalJSON(data []byte) error {
	type plain PdfFile
	return wire.DecodeRequired(data, (*plain)(f), "analysiert")
}

// SeitenID formats a 1-based page number as page id.
func SeitenID(seite int) string {
	return strconv.Itoa(seite)
}

// ParseSeitenID parses a page id. Only canonical ids are accepted: decimal
// digits without sign or leading zero, at least 1.
func ParseSeitenID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 || strconv.Itoa(n) != id {
		return 0, fmt.Errorf("%w %q", ErrInvalidSeitenID, id)
	}
	return n, nil
}

// Seiten returns the sorted numbers of all pages that have a layout or an
// override.
func (f PdfFile) Seiten() []int {
	seen := make(map[int]struct{}, len(f.Hocr.Seiten))
	add := func(id string) {
		if n, err := ParseSeitenID(id); err == nil {
			seen[n] = struct{}{}
		}
	}
	for id := range f.Hocr.Seiten {
		add(id)
	}
	for id := range f.AnpassungenSeite {
		add(id)
	}
	return slices.Sorted(maps.Keys(seen))
}

// Validate checks that every page-keyed map only uses canonical page ids and
// that every record position names such a page.
func (f PdfFile) Validate() error {
	for id := range f.Hocr.Seiten {
		if _, err := ParseSeitenID(id); err != nil {
			return fmt.Errorf("hocr: %w", err)
		}
	}
	for id := range f.AnpassungenSeite {
		if _, err := ParseSeitenID(id); err != nil {
			return fmt.Errorf("anpassungen_seite: %w", err)
		}
	}
	for i, pos := range positionen(f.Analysiert) {
		if _, err := ParseSeitenID(pos.Seite); err != nil {
			return fmt.Errorf("position_in_pdf of record %d: %w", i, err)
		}
	}
	return nil
}

// Klassifikation returns the page type the user assigned to a page.
func (f PdfFile) Klassifikation(seite int) (SeitenTyp, bool) {
	a, ok := f.AnpassungenSeite[SeitenID(seite)]
	if !ok || a.KlassifikationNeu == nil {
		return "", false
	}
	return *a.KlassifikationNeu, true
}

// Seite returns the layout of a page.
func (f PdfFile) Seite(seite int) (HocrSeite, bool) {
	s, ok := f.Hocr.Seiten[SeitenID(seite)]
	return s, ok
}

// SetAnpassung returns a copy of f with the overrides of one page replaced.
// An empty override removes the page's entry. f is not modified.
func (f PdfFile) SetAnpassung(seite int, a AnpassungSeite) PdfFile {
	out := f
	out.AnpassungenSeite = maps.Clone(f.AnpassungenSeite)
	if a.IsEmpty() {
		delete(out.AnpassungenSeite, SeitenID(seite))
		return out
	}
	if out.AnpassungenSeite == nil {
		out.AnpassungenSeite = make(map[string]AnpassungSeite)
	}
	out.AnpassungenSeite[SeitenID(seite)] = a
	return out
}

// SetSeite returns a copy of f with the layout of one page replaced. f is not
// modified.
func (f PdfFile) SetSeite(seite int, s HocrSeite) PdfFile {
	out := f
	out.Hocr.Seiten = maps.Clone(f.Hocr.Seiten)
	if out.Hocr.Seiten == nil {
		out.Hocr.Seiten = make(map[string]HocrSeite)
	}
	out.Hocr.Seiten[SeitenID(seite)] = s
	return out
}

// positionen collects the positions of all records that have one.
func positionen(g Grundbuch) []PositionInPdf {
	var out []PositionInPdf
	add := func(r Roetung) {
		if r.PositionInPdf != nil {
			out = append(out, *r.PositionInPdf)
		}
	}
	for _, e := range g.Bestandsverzeichnis.Eintraege {
		switch {
		case e.Flurstueck != nil:
			add(e.Flurstueck.Roetung)
		case e.Recht != nil:
			add(e.Recht.Roetung)
		}
	}
	for _, e := range g.Bestandsverzeichnis.Zuschreibungen {
		add(e.Roetung)
	}
	for _, e := range g.Bestandsverzeichnis.Abschreibungen {
		add(e.Roetung)
	}
	for _, e := range g.Abt1.Eintraege {
		switch {
		case e.V1 != nil:
			add(e.V1.Roetung)
		case e.V2 != nil:
			add(e.V2.Roetung)
		}
	}
	for _, e := range g.Abt1.GrundlagenEintragungen {
		add(e.Roetung)
	}
	for _, e := range g.Abt1.Veraenderungen {
		add(e.Roetung)
	}
	for _, e := range g.Abt1.Loeschungen {
		add(e.Roetung)
	}
	for _, e := range g.Abt2.Eintraege {
		add(e.Roetung)
	}
	for _, e := range g.Abt2.Veraenderungen {
		add(e.Roetung)
	}
	for _, e := range g.Abt2.Loeschungen {
		add(e.Roetung)
	}
	for _, e := range g.Abt3.Eintraege {
		add(e.Roetung)
	}
	for _, e := range g.Abt3.Veraenderungen {
		add(e.Roetung)
	}
	for _, e := range g.Abt3.Loeschungen {
		add(e.Roetung)
	}
	return out
}
