package gbx

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gardar/gbx/internal/wire"
)

// Bestandsverzeichnis is the property index of a register sheet.
type Bestandsverzeichnis struct {
	Eintraege      []BvEintrag      `json:"eintraege,omitempty"`
	Zuschreibungen []BvZuschreibung `json:"zuschreibungen,omitempty"`
	Abschreibungen []BvAbschreibung `json:"abschreibungen,omitempty"`
}

func (bv Bestandsverzeichnis) IsEmpty() bool {
	return len(bv.Eintraege) == 0 && len(bv.Zuschreibungen) == 0 && len(bv.Abschreibungen) == 0
}

func (bv Bestandsverzeichnis) IsZero() bool {
	return bv.IsEmpty()
}

// BvEintrag is one entry of the property index: either a land parcel or a
// right attached to another entry. Exactly one field is set.
type BvEintrag struct {
	Flurstueck *BvEintragFlurstueck
	Recht      *BvEintragRecht
}

// BvEintragFlurstueck is a land parcel.
type BvEintragFlurstueck struct {
	LfdNr          int               `json:"lfd_nr"`
	BisherigeLfdNr *int              `json:"bisherige_lfd_nr,omitempty"`
	Flur           int               `json:"flur"`
	Flurstueck     string            `json:"flurstueck,omitempty"`
	Gemarkung      *string           `json:"gemarkung,omitempty"`
	Bezeichnung    *StringOrLines    `json:"bezeichnung,omitempty"`
	Groesse        FlurstueckGroesse `json:"groesse,omitzero"`
	Roetung
}

// BvEintragRecht is a right ("Herrschvermerk") belonging to the entries
// named in ZuNr.
type BvEintragRecht struct {
	LfdNr          int           `json:"lfd_nr"`
	ZuNr           StringOrLines `json:"zu_nr,omitzero"`
	BisherigeLfdNr *int          `json:"bisherige_lfd_nr,omitempty"`
	Text           StringOrLines `json:"text,omitzero"`
	Roetung
}

// NewFlurstueck wraps f as a property index entry.
func NewFlurstueck(f BvEintragFlurstueck) BvEintrag {
	return BvEintrag{Flurstueck: &f}
}

// NewRecht wraps r as a property index entry.
func NewRecht(r BvEintragRecht) BvEintrag {
	return BvEintrag{Recht: &r}
}

func (e BvEintrag) LfdNr() int {
	switch {
	case e.Flurstueck != nil:
		return e.Flurstueck.LfdNr
	case e.Recht != nil:
		return e.Recht.LfdNr
	}
	return 0
}

func (e BvEintrag) BisherigeLfdNr() *int {
	switch {
	case e.Flurstueck != nil:
		return e.Flurstueck.BisherigeLfdNr
	case e.Recht != nil:
		return e.Recht.BisherigeLfdNr
	}
	return nil
}

func (e BvEintrag) IstGeroetet() bool {
	switch {
	case e.Flurstueck != nil:
		return e.Flurstueck.IstGeroetet()
	case e.Recht != nil:
		return e.Recht.IstGeroetet()
	}
	return false
}

func (e BvEintrag) MarshalJSON() ([]byte, error) {
	switch {
	case e.Flurstueck != nil:
		return json.Marshal(e.Flurstueck)
	case e.Recht != nil:
		return json.Marshal(e.Recht)
	}
	return nil, fmt.Errorf("property index entry: %w", ErrEmptyVariant)
}

// UnmarshalJSON tries the parcel shape first and falls back to the right.
func (e *BvEintrag) UnmarshalJSON(data []byte) error {
	var flst BvEintragFlurstueck
	errFlst := json.Unmarshal(data, &flst)
	if errFlst == nil {
		*e = BvEintrag{Flurstueck: &flst}
		return nil
	}

	var recht BvEintragRecht
	errRecht := json.Unmarshal(data, &recht)
	if errRecht == nil {
		*e = BvEintrag{Recht: &recht}
		return nil
	}

	return fmt.Errorf("%w: property index entry: %w", ErrNoVariant, errors.Join(errFlst, errRecht))
}

func (f *BvEintragFlurstueck) UnmarshalJSON(data []byte) error {
	type plain BvEintragFlurstueck
	if err := wire.DecodeRequired(data, (*plain)(f), "lfd_nr", "flur"); err != nil {
		return err
	}
	return errors.Join(
		wire.NonNegative("lfd_nr", f.LfdNr),
		wire.NonNegative("flur", f.Flur),
		wire.NonNegative("bisherige_lfd_nr", deref(f.BisherigeLfdNr)),
	)
}

func (r *BvEintragRecht) UnmarshalJSON(data []byte) error {
	type plain BvEintragRecht
	if err := wire.DecodeRequired(data, (*plain)(r), "lfd_nr"); err != nil {
		return err
	}
	return errors.Join(
		wire.NonNegative("lfd_nr", r.LfdNr),
		wire.NonNegative("bisherige_lfd_nr", deref(r.BisherigeLfdNr)),
	)
}

// BvZuschreibung records parcels added to the sheet.
type BvZuschreibung struct {
	BvNr StringOrLines `json:"bv_nr,omitzero"`
	Text StringOrLines `json:"text,omitzero"`
	Roetung
}

func (z BvZuschreibung) IsEmpty() bool {
	return z.BvNr.IsEmpty() && z.Text.IsEmpty()
}

// BvAbschreibung records parcels removed from the sheet.
type BvAbschreibung struct {
	BvNr StringOrLines `json:"bv_nr,omitzero"`
	Text StringOrLines `json:"text,omitzero"`
	Roetung
}

func (a BvAbschreibung) IsEmpty() bool {
	return a.BvNr.IsEmpty() && a.Text.IsEmpty()
}
