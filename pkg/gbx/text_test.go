package gbx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringOrLinesLines(t *testing.T) {
	tests := []struct {
		name  string
		value StringOrLines
		want  []string
	}{
		{"single line", SingleLine("Wegerecht"), []string{"Wegerecht"}},
		{"string with LF", SingleLine("a\nb"), []string{"a", "b"}},
		{"string with CRLF", SingleLine("a\r\nb\r\n"), []string{"a", "b"}},
		{"final newline adds no line", SingleLine("a\n"), []string{"a"}},
		{"empty line kept", SingleLine("a\n\nb"), []string{"a", "", "b"}},
		{"lone CR at end kept", SingleLine("a\r"), []string{"a\r"}},
		{"line list", MultiLine("a", "b"), []string{"a", "b"}},
		{"from string", FromString("a\r\nb\n"), []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Lines())
		})
	}
}

func TestStringOrLinesEmpty(t *testing.T) {
	var zero StringOrLines
	assert.True(t, zero.IsEmpty())
	assert.False(t, zero.IsMultiLine())
	assert.Empty(t, zero.Lines())
	assert.Equal(t, "", zero.Text())

	assert.True(t, FromString("").IsEmpty())
	assert.True(t, FromString("").IsMultiLine())
	assert.True(t, MultiLine().IsEmpty())
	assert.False(t, MultiLine("").IsEmpty())
	assert.False(t, SingleLine(" ").IsEmpty())
}

func TestStringOrLinesText(t *testing.T) {
	assert.Equal(t, "a\r\nb", MultiLine("a", "b").Text())
	assert.Equal(t, "a\r\nb", SingleLine("a\nb").Text())
	assert.Equal(t, "a\nb", SingleLine("a\nb").String())
	assert.Equal(t, "a\r\nb", MultiLine("a", "b").String())
	assert.Equal(t, "Grundbuch", MultiLine("Grund-", "buch").TextClean())
}

func TestStringOrLinesEqual(t *testing.T) {
	assert.True(t, SingleLine("a\nb").Equal(MultiLine("a", "b")))
	assert.True(t, SingleLine("a\n").Equal(FromString("a")))
	assert.True(t, SingleLine("").Equal(MultiLine()))
	assert.False(t, SingleLine("a b").Equal(MultiLine("a", "b")))
}

func TestStringOrLinesJSON(t *testing.T) {
	data, err := json.Marshal(SingleLine("Auflassung vom 1.2.1999"))
	require.NoError(t, err)
	assert.JSONEq(t, `"Auflassung vom 1.2.1999"`, string(data))

	data, err = json.Marshal(MultiLine("Max", "Mustermann"))
	require.NoError(t, err)
	assert.JSONEq(t, `["Max","Mustermann"]`, string(data))

	data, err = json.Marshal(MultiLine())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	var s StringOrLines
	require.NoError(t, json.Unmarshal([]byte(`"1, 2"`), &s))
	assert.Equal(t, SingleLine("1, 2"), s)

	require.NoError(t, json.Unmarshal([]byte(` ["a", "b"]`), &s))
	assert.Equal(t, MultiLine("a", "b"), s)

	for _, payload := range []string{`42`, `{"text":"a"}`, `[1, 2]`, `true`} {
		err := json.Unmarshal([]byte(payload), &s)
		assert.ErrorIs(t, err, ErrDecode, payload)
	}
}

func TestUnhyphenate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"inline hyphenation", "Grundbu- ch", "Grundbuch"},
		{"across a line break", "Grundbu-\nch", "Grundbuch"},
		{"across a CRLF line break", "Grundbu-\r\nch", "Grundbuch"},
		{"compound kept", "Land- und Forstwirtschaft", "Land- und Forstwirtschaft"},
		{"compound at line end kept", "Land-\nund Forstwirtschaft", "Land-und Forstwirtschaft"},
		{"compound with hyphenation after it", "Ver- und Entsorgungs- leitung", "Ver- und Entsorgungsleitung"},
		{"repeated until no hyphen is left", "Grund- stücks- verkehr", "Grundstücksverkehr"},
		{"umlaut", "Wege- übernahme", "Wegeübernahme"},
		{"uppercase keeps hyphen", "Nord- Süd", "Nord- Süd"},
		{"uppercase on next line keeps hyphen", "Nord-\nSüd", "Nord-Süd"},
		{"no whitespace", "Nord-süd", "Nord-süd"},
		{"two spaces", "Grundbu-  ch", "Grundbu-  ch"},
		{"no-break space", "Grundbu-\u00a0ch", "Grundbuch"},
		{"thin space", "Grundbu-\u2009ch", "Grundbuch"},
		{"lines are concatenated", "Zeile eins\nZeile zwei", "Zeile einsZeile zwei"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unhyphenate(tt.in))
		})
	}
}
