package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/gbx/pkg/gbx"
	"github.com/gardar/gbx/pkg/geom"
)

const scanHocr = `<html><head><meta http-equiv="Content-Type" content="text/html;charset=utf-8"/></head>
<body>
<div class='ocr_page' id='page_1' title='bbox 0 0 2480 3508; ppageno 0'>
 <div class='ocr_carea' title="bbox 100 200 900 330">
  <p class='ocr_par' title="bbox 100 200 900 330">
   <span class='ocr_line' title="bbox 100 200 900 250">
    <span class='ocrx_word' title='bbox 100 200 400 250; x_wconf 96'>Grundbuch</span>
    <span class='ocrx_word' title='bbox 450 200 900 250; x_wconf 91'>Rechts-</span>
   </span>
   <span class='ocr_line' title="bbox 100 280 500 330">
    <span class='ocrx_word' title='bbox 100 280 500 330; x_wconf 88'>anwalt</span>
   </span>
  </p>
 </div>
</div>
</body></html>`

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeSheet(t *testing.T) string {
	t.Helper()
	file := &gbx.PdfFile{
		AnpassungenSeite: map[string]gbx.AnpassungSeite{
			"1": {Spalten: map[string]geom.Rect{"links": geom.NewRect(0, 0, 30, 30)}},
		},
		Analysiert: gbx.Grundbuch{
			Titelblatt: gbx.Titelblatt{Amtsgericht: "Prenzlau", GrundbuchVon: "Ludwigsburg", Blatt: "254"},
			Abt2: gbx.Abteilung2{Eintraege: []gbx.Abt2Eintrag{
				{LfdNr: 1, Text: gbx.SingleLine("Wegerecht")},
				{LfdNr: 2, Roetung: gbx.Roetung{ManuellGeroetet: gbx.Ptr(true)}},
			}},
		},
	}
	path := filepath.Join(t.TempDir(), "blatt.gbx")
	require.NoError(t, gbx.WriteFile(path, file))
	return path
}

func importScan(t *testing.T, sheet string, extra ...string) {
	t.Helper()
	hocrPath := filepath.Join(filepath.Dir(sheet), "scan.hocr")
	require.NoError(t, os.WriteFile(hocrPath, []byte(scanHocr), 0o644))
	args := append([]string{"import-hocr", "-hocr", hocrPath}, extra...)
	require.NoError(t, run(append(args, sheet), io.Discard, discard))
}

func TestRunUsage(t *testing.T) {
	assert.ErrorIs(t, run(nil, io.Discard, discard), errUsage)
	assert.ErrorIs(t, run([]string{"unbekannt"}, io.Discard, discard), errUsage)
	assert.ErrorIs(t, run([]string{"check"}, io.Discard, discard), errUsage)
}

func TestCheck(t *testing.T) {
	sheet := writeSheet(t)

	var out bytes.Buffer
	require.NoError(t, run([]string{"check", sheet}, &out, discard))
	assert.Contains(t, out.String(), "Grundbuch von Ludwigsburg Blatt 254 (AG Prenzlau), 1 Seiten")
	assert.Contains(t, out.String(), "abt2    2 Einträge,   1 gerötet")
	assert.NotContains(t, out.String(), "abt1")

	broken := filepath.Join(t.TempDir(), "kaputt.gbx")
	require.NoError(t, os.WriteFile(broken, []byte(`{"digitalisiert":true}`), 0o644))
	assert.Error(t, run([]string{"check", sheet, broken}, io.Discard, discard))
}

func TestFmt(t *testing.T) {
	sheet := writeSheet(t)
	before, err := gbx.ReadFile(sheet)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run([]string{"fmt", "-compact", sheet}, &out, discard))
	assert.NotContains(t, out.String(), "\n  ")

	require.NoError(t, run([]string{"fmt", "-w", sheet}, io.Discard, discard))
	after, err := gbx.ReadFile(sheet)
	require.NoError(t, err)
	assert.Equal(t, before.Analysiert.Titelblatt, after.Analysiert.Titelblatt)
	assert.Len(t, after.Analysiert.Abt2.Eintraege, 2)
}

func TestImportHocr(t *testing.T) {
	sheet := writeSheet(t)
	importScan(t, sheet)

	file, err := gbx.ReadFile(sheet)
	require.NoError(t, err)
	assert.True(t, file.Digitalisiert)

	seite, ok := file.Seite(1)
	require.True(t, ok)
	assert.InDelta(t, 2480/300.0*25.4, seite.BreiteMm, 1e-9)
	assert.InDelta(t, 3508/300.0*25.4, seite.HoeheMm, 1e-9)
	assert.Len(t, seite.Parsed.Words(), 3)

	_, ok = file.Klassifikation(1)
	assert.False(t, ok)
	assert.Contains(t, file.AnpassungenSeite["1"].Spalten, "links")
}

func TestText(t *testing.T) {
	sheet := writeSheet(t)
	importScan(t, sheet, "-breite-mm", "248", "-hoehe-mm", "350.8")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"whole page", []string{"-seite", "1"}, "Grundbuch Rechts-\r\nanwalt\r\n\n"},
		{"clean", []string{"-clean"}, "Grundbuch Rechtsanwalt\n"},
		{"rectangle", []string{"-rect", "0,0,30,30"}, "Grundbuch\n"},
		{"column", []string{"-spalte", "links"}, "Grundbuch\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			args := append([]string{"text"}, tt.args...)
			require.NoError(t, run(append(args, sheet), &out, discard))
			assert.Equal(t, tt.want, out.String())
		})
	}

	assert.Error(t, run([]string{"text", "-seite", "2", sheet}, io.Discard, discard))
	assert.Error(t, run([]string{"text", "-spalte", "rechts", sheet}, io.Discard, discard))
	assert.ErrorIs(t, run([]string{"text", "-spalte", "links", "-rect", "0,0,1,1", sheet}, io.Discard, discard), errUsage)
}

func TestExportHocr(t *testing.T) {
	sheet := writeSheet(t)
	assert.Error(t, run([]string{"export-hocr", sheet}, io.Discard, discard))

	importScan(t, sheet)
	var out bytes.Buffer
	require.NoError(t, run([]string{"export-hocr", sheet}, &out, discard))
	assert.Contains(t, out.String(), "ocr_page")
	assert.Contains(t, out.String(), "Rechts-")
	assert.Contains(t, out.String(), "Grundbuch von Ludwigsburg Blatt 254")
}

func TestParseRect(t *testing.T) {
	r, err := parseRect("1, 2,3.5,4")
	require.NoError(t, err)
	assert.Equal(t, geom.NewRect(1, 2, 3.5, 4), r)

	for _, s := range []string{"", "1,2,3", "1,2,3,x"} {
		_, err := parseRect(s)
		assert.Error(t, err, s)
	}
}
