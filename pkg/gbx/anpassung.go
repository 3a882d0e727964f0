package gbx

import (
	"maps"

	"github.com/gardar/gbx/pkg/geom"
)

// AnpassungSeite holds the user's corrections to the layout detected on one
// page: a different page type, column rectangles (mm) and row positions (mm
// from the top), each keyed by an id chosen by the editor.
type AnpassungSeite struct {
	KlassifikationNeu *SeitenTyp           `json:"klassifikation_neu,omitempty"`
	Spalten           map[string]geom.Rect `json:"spalten,omitempty"`
	Zeilen            map[string]float64   `json:"zeilen,omitempty"`
	ZeilenAuto        map[string]float64   `json:"zeilen_auto,omitempty"`
}

func (a AnpassungSeite) IsEmpty() bool {
	return a.KlassifikationNeu == nil && len(a.Spalten) == 0 && len(a.Zeilen) == 0 && len(a.ZeilenAuto) == 0
}

// AlleZeilen merges manual and automatically detected rows. Manual rows win
// on equal ids.
func (a AnpassungSeite) AlleZeilen() map[string]float64 {
	out := maps.Clone(a.ZeilenAuto)
	if out == nil {
		out = make(map[string]float64, len(a.Zeilen))
	}
	maps.Copy(out, a.Zeilen)
	return out
}
