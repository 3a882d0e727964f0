package gbx

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/gardar/gbx/internal/wire"
)

// SeitenTyp classifies the column layout of a scanned page. Only the
// constants below are valid.
type SeitenTyp string

const (
	BestandsverzeichnisHorz                       SeitenTyp = "bv-horz"
	BestandsverzeichnisHorzZuUndAbschreibungen    SeitenTyp = "bv-horz-zu-und-abschreibungen"
	BestandsverzeichnisVert                       SeitenTyp = "bv-vert"
	BestandsverzeichnisVertTyp2                   SeitenTyp = "bv-vert-typ2"
	BestandsverzeichnisVertZuUndAbschreibungen    SeitenTyp = "bv-vert-zu-und-abschreibungen"
	BestandsverzeichnisVertZuUndAbschreibungenAlt SeitenTyp = "bv-vert-zu-und-abschreibungen-alt"
	Abt1Horz                                      SeitenTyp = "abt1-horz"
	Abt1Vert                                      SeitenTyp = "abt1-vert"
	Abt1VertTyp2                                  SeitenTyp = "abt1-vert-typ2"
	Abt2HorzVeraenderungen                        SeitenTyp = "abt2-horz-veraenderungen"
	Abt2Horz                                      SeitenTyp = "abt2-horz"
	Abt2VertVeraenderungen                        SeitenTyp = "abt2-vert-veraenderungen"
	Abt2Vert                                      SeitenTyp = "abt2-vert"
	Abt2VertTyp2                                  SeitenTyp = "abt2-vert-typ2"
	Abt3HorzVeraenderungenLoeschungen             SeitenTyp = "abt3-horz-veraenderungen-loeschungen"
	Abt3VertVeraenderungenLoeschungen             SeitenTyp = "abt3-vert-veraenderungen-loeschungen"
	Abt3Horz                                      SeitenTyp = "abt3-horz"
	Abt3VertVeraenderungen                        SeitenTyp = "abt3-vert-veraenderungen"
	Abt3VertLoeschungen                           SeitenTyp = "abt3-vert-loeschungen"
	Abt3Vert                                      SeitenTyp = "abt3-vert"
)

// SeitenTypen lists every valid page type.
var SeitenTypen = []SeitenTyp{
	BestandsverzeichnisHorz,
	BestandsverzeichnisHorzZuUndAbschreibungen,
	BestandsverzeichnisVert,
	BestandsverzeichnisVertTyp2,
	BestandsverzeichnisVertZuUndAbschreibungen,
	BestandsverzeichnisVertZuUndAbschreibungenAlt,
	Abt1Horz,
	Abt1Vert,
	Abt1VertTyp2,
	Abt2HorzVeraenderungen,
	Abt2Horz,
	Abt2VertVeraenderungen,
	Abt2Vert,
	Abt2VertTyp2,
	Abt3HorzVeraenderungenLoeschungen,
	Abt3VertVeraenderungenLoeschungen,
	Abt3Horz,
	Abt3VertVeraenderungen,
	Abt3VertLoeschungen,
	Abt3Vert,
}

// ParseSeitenTyp returns the page type for a wire token.
func ParseSeitenTyp(s string) (SeitenTyp, error) {
	t := SeitenTyp(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownSeitenTyp, s)
	}
	return t, nil
}

func (t SeitenTyp) Valid() bool {
	return slices.Contains(SeitenTypen, t)
}

// Abteilung is the register section whose records the page holds.
func (t SeitenTyp) Abteilung() Abschnitt {
	prefix, _, _ := strings.Cut(string(t), "-")
	switch Abschnitt(prefix) {
	case AbschnittBestandsverzeichnis, AbschnittAbt1, AbschnittAbt2, AbschnittAbt3:
		return Abschnitt(prefix)
	}
	return ""
}

func (t SeitenTyp) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown page type %q", string(t))
	}
	return json.Marshal(string(t))
}

func (t *SeitenTyp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return wire.Wrap(err)
	}
	parsed, err := ParseSeitenTyp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Abschnitt names a section of the register sheet.
type Abschnitt string

const (
	AbschnittBestandsverzeichnis Abschnitt = "bv"
	AbschnittAbt1                Abschnitt = "abt1"
	AbschnittAbt2                Abschnitt = "abt2"
	AbschnittAbt3                Abschnitt = "abt3"
)

// Abschnitte lists the sections in register order.
var Abschnitte = []Abschnitt{
	AbschnittBestandsverzeichnis,
	AbschnittAbt1,
	AbschnittAbt2,
	AbschnittAbt3,
}
