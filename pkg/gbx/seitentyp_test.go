package gbx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeitenTypTokens(t *testing.T) {
	require.Len(t, SeitenTypen, 20)

	seen := make(map[SeitenTyp]bool)
	for _, typ := range SeitenTypen {
		t.Run(string(typ), func(t *testing.T) {
			assert.False(t, seen[typ], "duplicate token")
			seen[typ] = true

			parsed, err := ParseSeitenTyp(string(typ))
			require.NoError(t, err)
			assert.Equal(t, typ, parsed)

			data, err := json.Marshal(typ)
			require.NoError(t, err)
			var decoded SeitenTyp
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, typ, decoded)

			assert.NotEmpty(t, typ.Abteilung())
		})
	}
}

func TestSeitenTypUnknown(t *testing.T) {
	_, err := ParseSeitenTyp("bv-diagonal")
	assert.ErrorIs(t, err, ErrUnknownSeitenTyp)

	var typ SeitenTyp
	err = json.Unmarshal([]byte(`"Bv-Horz"`), &typ)
	assert.ErrorIs(t, err, ErrUnknownSeitenTyp)
	assert.ErrorIs(t, err, ErrDecode)

	err = json.Unmarshal([]byte(`3`), &typ)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = json.Marshal(SeitenTyp("abt4-horz"))
	assert.Error(t, err)
}

func TestSeitenTypAbteilung(t *testing.T) {
	tests := []struct {
		typ  SeitenTyp
		want Abschnitt
	}{
		{BestandsverzeichnisVertZuUndAbschreibungenAlt, AbschnittBestandsverzeichnis},
		{Abt1VertTyp2, AbschnittAbt1},
		{Abt2HorzVeraenderungen, AbschnittAbt2},
		{Abt3VertLoeschungen, AbschnittAbt3},
		{SeitenTyp("abt4-horz"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Abteilung())
		})
	}
}
