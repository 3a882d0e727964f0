package gbx

import "github.com/gardar/gbx/internal/wire"

// Abteilung3 lists mortgages and land charges.
type Abteilung3 struct {
	Eintraege      []Abt3Eintrag      `json:"eintraege,omitempty"`
	Veraenderungen []Abt3Veraenderung `json:"veraenderungen,omitempty"`
	Loeschungen    []Abt3Loeschung    `json:"loeschungen,omitempty"`
}

func (a Abteilung3) IsEmpty() bool {
	return len(a.Eintraege) == 0 && len(a.Veraenderungen) == 0 && len(a.Loeschungen) == 0
}

func (a Abteilung3) IsZero() bool {
	return a.IsEmpty()
}

type Abt3Eintrag struct {
	LfdNr  int           `json:"lfd_nr"`
	BvNr   StringOrLines `json:"bv_nr,omitzero"`
	Betrag StringOrLines `json:"betrag,omitzero"`
	Text   StringOrLines `json:"text,omitzero"`
	Roetung
}

func (e *Abt3Eintrag) UnmarshalJSON(data []byte) error {
	type plain Abt3Eintrag
	if err := wire.DecodeRequired(data, (*plain)(e), "lfd_nr"); err != nil {
		return err
	}
	return wire.NonNegative("lfd_nr", e.LfdNr)
}

type Abt3Veraenderung struct {
	LfdNr  StringOrLines `json:"lfd_nr,omitzero"`
	Betrag StringOrLines `json:"betrag,omitzero"`
	Text   StringOrLines `json:"text,omitzero"`
	Roetung
}

type Abt3Loeschung struct {
	LfdNr  StringOrLines `json:"lfd_nr,omitzero"`
	Betrag StringOrLines `json:"betrag,omitzero"`
	Text   StringOrLines `json:"text,omitzero"`
	Roetung
}
