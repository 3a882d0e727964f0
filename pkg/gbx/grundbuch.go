package gbx

import (
	"cmp"

	"github.com/gardar/gbx/internal/wire"
)

// Grundbuch is the analysed content of one register sheet.
type Grundbuch struct {
	Titelblatt          Titelblatt          `json:"titelblatt"`
	Bestandsverzeichnis Bestandsverzeichnis `json:"bestandsverzeichnis,omitzero"`
	Abt1                Abteilung1          `json:"abt1,omitzero"`
	Abt2                Abteilung2          `json:"abt2,omitzero"`
	Abt3                Abteilung3          `json:"abt3,omitzero"`
}

func (g *Grundbuch) UnmarshalJSON(data []byte) error {
	type plain Grundbuch
	return wire.DecodeRequired(data, (*plain)(g), "titelblatt")
}

// Titelblatt identifies a register sheet. It is comparable and can be used
// as a map key.
type Titelblatt struct {
	Amtsgericht  string `json:"amtsgericht"`
	GrundbuchVon string `json:"grundbuch_von"`
	Blatt        string `json:"blatt"`
}

func (t *Titelblatt) UnmarshalJSON(data []byte) error {
	type plain Titelblatt
	return wire.DecodeRequired(data, (*plain)(t), "amtsgericht", "grundbuch_von", "blatt")
}

// Less orders title blocks by court, then district, then sheet.
func (t Titelblatt) Less(o Titelblatt) bool {
	return t.Compare(o) < 0
}

func (t Titelblatt) Compare(o Titelblatt) int {
	return cmp.Or(
		cmp.Compare(t.Amtsgericht, o.Amtsgericht),
		cmp.Compare(t.GrundbuchVon, o.GrundbuchVon),
		cmp.Compare(t.Blatt, o.Blatt),
	)
}

// Key is a stable string form, e.g. "Prenzlau/Ludwigsburg/254".
func (t Titelblatt) Key() string {
	return t.Amtsgericht + "/" + t.GrundbuchVon + "/" + t.Blatt
}

func (t Titelblatt) String() string {
	return "Grundbuch von " + t.GrundbuchVon + " Blatt " + t.Blatt + " (AG " + t.Amtsgericht + ")"
}

// Statistik counts the records of one list and how many of them are redacted.
type Statistik struct {
	Eintraege int
	Geroetet  int
}

func (s Statistik) add(o Statistik) Statistik {
	return Statistik{Eintraege: s.Eintraege + o.Eintraege, Geroetet: s.Geroetet + o.Geroetet}
}

// Geroetet summarizes the redaction state of every record, per section.
func (g Grundbuch) Geroetet() map[Abschnitt]Statistik {
	bv := countGeroetet(g.Bestandsverzeichnis.Eintraege).
		add(countGeroetet(g.Bestandsverzeichnis.Zuschreibungen)).
		add(countGeroetet(g.Bestandsverzeichnis.Abschreibungen))
	abt1 := countGeroetet(g.Abt1.Eintraege).
		add(countGeroetet(g.Abt1.GrundlagenEintragungen)).
		add(countGeroetet(g.Abt1.Veraenderungen)).
		add(countGeroetet(g.Abt1.Loeschungen))
	abt2 := countGeroetet(g.Abt2.Eintraege).
		add(countGeroetet(g.Abt2.Veraenderungen)).
		add(countGeroetet(g.Abt2.Loeschungen))
	abt3 := countGeroetet(g.Abt3.Eintraege).
		add(countGeroetet(g.Abt3.Veraenderungen)).
		add(countGeroetet(g.Abt3.Loeschungen))

	return map[Abschnitt]Statistik{
		AbschnittBestandsverzeichnis: bv,
		AbschnittAbt1:                abt1,
		AbschnittAbt2:                abt2,
		AbschnittAbt3:                abt3,
	}
}
