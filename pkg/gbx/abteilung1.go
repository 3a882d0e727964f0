package gbx

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gardar/gbx/internal/wire"
)

// Abteilung1 lists the owners of the sheet's property.
type Abteilung1 struct {
	Eintraege              []Abt1Eintrag         `json:"eintraege,omitempty"`
	GrundlagenEintragungen []Abt1GrundEintragung `json:"grundlagen_eintragungen,omitempty"`
	Veraenderungen         []Abt1Veraenderung    `json:"veraenderungen,omitempty"`
	Loeschungen            []Abt1Loeschung       `json:"loeschungen,omitempty"`
}

func (a Abteilung1) IsEmpty() bool {
	return len(a.Eintraege) == 0 &&
		len(a.GrundlagenEintragungen) == 0 &&
		len(a.Veraenderungen) == 0 &&
		len(a.Loeschungen) == 0
}

func (a Abteilung1) IsZero() bool {
	return a.IsEmpty()
}

// Abt1Eintrag is an ownership entry in either the legacy shape V1, which
// still carries the basis of registration, or the current shape V2. Exactly
// one field is set.
type Abt1Eintrag struct {
	V1 *Abt1EintragV1
	V2 *Abt1EintragV2
}

// Abt1EintragV1 is the legacy ownership entry.
type Abt1EintragV1 struct {
	LfdNr                  int           `json:"lfd_nr"`
	Eigentuemer            StringOrLines `json:"eigentuemer,omitzero"`
	BvNr                   StringOrLines `json:"bv_nr,omitzero"`
	GrundlageDerEintragung StringOrLines `json:"grundlage_der_eintragung,omitzero"`
	Roetung
}

// Abt1EintragV2 is the current ownership entry. The basis of registration
// moved to Abteilung1.GrundlagenEintragungen.
type Abt1EintragV2 struct {
	LfdNr       int           `json:"lfd_nr"`
	Eigentuemer StringOrLines `json:"eigentuemer,omitzero"`
	Version     int           `json:"version"`
	Roetung
}

func NewAbt1EintragV1(e Abt1EintragV1) Abt1Eintrag {
	return Abt1Eintrag{V1: &e}
}

func NewAbt1EintragV2(e Abt1EintragV2) Abt1Eintrag {
	return Abt1Eintrag{V2: &e}
}

func (e Abt1Eintrag) LfdNr() int {
	switch {
	case e.V1 != nil:
		return e.V1.LfdNr
	case e.V2 != nil:
		return e.V2.LfdNr
	}
	return 0
}

func (e Abt1Eintrag) Eigentuemer() StringOrLines {
	switch {
	case e.V1 != nil:
		return e.V1.Eigentuemer
	case e.V2 != nil:
		return e.V2.Eigentuemer
	}
	return StringOrLines{}
}

// BvNr is only recorded by legacy entries; it is empty for V2.
func (e Abt1Eintrag) BvNr() StringOrLines {
	if e.V1 != nil {
		return e.V1.BvNr
	}
	return StringOrLines{}
}

func (e Abt1Eintrag) IstGeroetet() bool {
	switch {
	case e.V1 != nil:
		return e.V1.IstGeroetet()
	case e.V2 != nil:
		return e.V2.IstGeroetet()
	}
	return false
}

func (e Abt1Eintrag) MarshalJSON() ([]byte, error) {
	switch {
	case e.V1 != nil:
		return json.Marshal(e.V1)
	case e.V2 != nil:
		return json.Marshal(e.V2)
	}
	return nil, fmt.Errorf("ownership entry: %w", ErrEmptyVariant)
}

// UnmarshalJSON selects the legacy shape unless the payload carries a
// "version" key, which only the current shape has. Other unknown keys are
// ignored by both shapes.
func (e *Abt1Eintrag) UnmarshalJSON(data []byte) error {
	var v1 Abt1EintragV1
	errV1 := v1.decode(data, "version")
	if errV1 == nil {
		*e = Abt1Eintrag{V1: &v1}
		return nil
	}

	var v2 Abt1EintragV2
	errV2 := json.Unmarshal(data, &v2)
	if errV2 == nil {
		*e = Abt1Eintrag{V2: &v2}
		return nil
	}
	return fmt.Errorf("%w: ownership entry: %w", ErrNoVariant, errors.Join(errV1, errV2))
}

func (e *Abt1EintragV1) UnmarshalJSON(data []byte) error {
	return e.decode(data)
}

func (e *Abt1EintragV1) decode(data []byte, forbidden ...string) error {
	type plain Abt1EintragV1
	if err := wire.DecodeWithout(data, (*plain)(e), forbidden, "lfd_nr"); err != nil {
		return err
	}
	return wire.NonNegative("lfd_nr", e.LfdNr)
}

func (e *Abt1EintragV2) UnmarshalJSON(data []byte) error {
	type plain Abt1EintragV2
	if err := wire.DecodeRequired(data, (*plain)(e), "lfd_nr", "version"); err != nil {
		return err
	}
	return errors.Join(wire.NonNegative("lfd_nr", e.LfdNr), wire.NonNegative("version", e.Version))
}

// Abt1GrundEintragung is the basis of registration for the entries in BvNr.
type Abt1GrundEintragung struct {
	BvNr StringOrLines `json:"bv_nr,omitzero"`
	Text StringOrLines `json:"text,omitzero"`
	Roetung
}

type Abt1Veraenderung struct {
	LfdNr StringOrLines `json:"lfd_nr,omitzero"`
	Text  StringOrLines `json:"text,omitzero"`
	Roetung
}

type Abt1Loeschung struct {
	LfdNr StringOrLines `json:"lfd_nr,omitzero"`
	Text  StringOrLines `json:"text,omitzero"`
	Roetung
}
