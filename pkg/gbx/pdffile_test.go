package gbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/gbx/pkg/geom"
)

func TestParseSeitenID(t *testing.T) {
	for id, want := range map[string]int{"1": 1, "12": 12, "304": 304} {
		got, err := ParseSeitenID(id)
		require.NoError(t, err, id)
		assert.Equal(t, want, got)
		assert.Equal(t, id, SeitenID(got))
	}

	for _, id := range []string{"", "0", "01", "-1", "+1", "1.0", "eins", " 1"} {
		_, err := ParseSeitenID(id)
		assert.ErrorIs(t, err, ErrInvalidSeitenID, id)
	}
}

func TestPdfFileSeiten(t *testing.T) {
	f := PdfFile{
		Hocr:             HocrLayout{Seiten: map[string]HocrSeite{"2": {}, "10": {}}},
		AnpassungenSeite: map[string]AnpassungSeite{"1": {}, "2": {}},
	}
	assert.Equal(t, []int{1, 2, 10}, f.Seiten())
	assert.Empty(t, PdfFile{}.Seiten())
}

func TestPdfFileValidate(t *testing.T) {
	assert.NoError(t, testPdfFile().Validate())

	f := PdfFile{Hocr: HocrLayout{Seiten: map[string]HocrSeite{"0": {}}}}
	assert.ErrorIs(t, f.Validate(), ErrInvalidSeitenID)

	f = PdfFile{Analysiert: Grundbuch{Abt3: Abteilung3{Loeschungen: []Abt3Loeschung{{
		Roetung: Roetung{PositionInPdf: &PositionInPdf{Seite: "Seite 1"}},
	}}}}}
	assert.ErrorIs(t, f.Validate(), ErrInvalidSeitenID)
}

func TestPdfFileKlassifikation(t *testing.T) {
	f := testPdfFile()

	typ, ok := f.Klassifikation(1)
	assert.True(t, ok)
	assert.Equal(t, BestandsverzeichnisVert, typ)

	_, ok = f.Klassifikation(2)
	assert.False(t, ok)
}

func TestPdfFileSetAnpassung(t *testing.T) {
	f := testPdfFile()
	before := f.AnpassungenSeite["1"]

	changed := f.SetAnpassung(2, AnpassungSeite{KlassifikationNeu: Ptr(Abt2Vert)})
	typ, ok := changed.Klassifikation(2)
	assert.True(t, ok)
	assert.Equal(t, Abt2Vert, typ)
	assert.Len(t, changed.AnpassungenSeite, 2)

	assert.Len(t, f.AnpassungenSeite, 1)
	assert.Equal(t, before, f.AnpassungenSeite["1"])

	cleared := changed.SetAnpassung(1, AnpassungSeite{})
	assert.NotContains(t, cleared.AnpassungenSeite, "1")
	assert.Contains(t, changed.AnpassungenSeite, "1")

	fresh := PdfFile{}.SetAnpassung(3, AnpassungSeite{Zeilen: map[string]float64{"z": 10}})
	assert.Equal(t, []int{3}, fresh.Seiten())
}

func TestPdfFileSetSeite(t *testing.T) {
	f := PdfFile{}
	seite := HocrSeite{BreiteMm: 210, HoeheMm: 297}

	changed := f.SetSeite(4, seite)
	got, ok := changed.Seite(4)
	assert.True(t, ok)
	assert.Equal(t, seite, got)
	assert.Nil(t, f.Hocr.Seiten)
}

func TestAnpassungSeite(t *testing.T) {
	assert.True(t, AnpassungSeite{}.IsEmpty())
	assert.True(t, AnpassungSeite{Spalten: map[string]geom.Rect{}}.IsEmpty())
	assert.False(t, AnpassungSeite{KlassifikationNeu: Ptr(Abt1Horz)}.IsEmpty())

	a := AnpassungSeite{
		Zeilen:     map[string]float64{"a": 10, "b": 20},
		ZeilenAuto: map[string]float64{"b": 21, "c": 30},
	}
	assert.Equal(t, map[string]float64{"a": 10, "b": 20, "c": 30}, a.AlleZeilen())
	assert.Equal(t, map[string]float64{"b": 21, "c": 30}, a.ZeilenAuto)
}

func TestTitelblatt(t *testing.T) {
	a := Titelblatt{Amtsgericht: "Prenzlau", GrundbuchVon: "Ludwigsburg", Blatt: "254"}
	b := Titelblatt{Amtsgericht: "Prenzlau", GrundbuchVon: "Ludwigsburg", Blatt: "3"}
	c := Titelblatt{Amtsgericht: "Angermünde", GrundbuchVon: "Zichow", Blatt: "1"}

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, c.Less(a))
	assert.False(t, a.Less(a))
	assert.Equal(t, "Prenzlau/Ludwigsburg/254", a.Key())

	index := map[Titelblatt]string{a: "a.gbx"}
	assert.Equal(t, "a.gbx", index[Titelblatt{Amtsgericht: "Prenzlau", GrundbuchVon: "Ludwigsburg", Blatt: "254"}])
}
