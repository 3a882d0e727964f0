package gbx

import "github.com/gardar/gbx/internal/wire"

// Abteilung2 lists encumbrances and restrictions other than liens.
type Abteilung2 struct {
	Eintraege      []Abt2Eintrag      `json:"eintraege,omitempty"`
	Veraenderungen []Abt2Veraenderung `json:"veraenderungen,omitempty"`
	Loeschungen    []Abt2Loeschung    `json:"loeschungen,omitempty"`
}

func (a Abteilung2) IsEmpty() bool {
	return len(a.Eintraege) == 0 && len(a.Veraenderungen) == 0 && len(a.Loeschungen) == 0
}

func (a Abteilung2) IsZero() bool {
	return a.IsEmpty()
}

type Abt2Eintrag struct {
	LfdNr int           `json:"lfd_nr"`
	BvNr  StringOrLines `json:"bv_nr,omitzero"`
	Text  StringOrLines `json:"text,omitzero"`
	Roetung
}

func (e *Abt2Eintrag) UnmarshalJSON(data []byte) error {
	type plain Abt2Eintrag
	if err := wire.DecodeRequired(data, (*plain)(e), "lfd_nr"); err != nil {
		return err
	}
	return wire.NonNegative("lfd_nr", e.LfdNr)
}

type Abt2Veraenderung struct {
	LfdNr StringOrLines `json:"lfd_nr,omitzero"`
	Text  StringOrLines `json:"text,omitzero"`
	Roetung
}

type Abt2Loeschung struct {
	LfdNr StringOrLines `json:"lfd_nr,omitzero"`
	Text  StringOrLines `json:"text,omitzero"`
	Roetung
}
