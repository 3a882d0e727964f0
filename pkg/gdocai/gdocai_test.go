package gdocai

import (
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/gbx/pkg/gbx"
	"github.com/gardar/gbx/pkg/geom"
)

func anchoredLayout(start, end int64, x0, y0, x1, y1 float32) *documentaipb.Document_Page_Layout {
	return &documentaipb.Document_Page_Layout{
		TextAnchor: &documentaipb.Document_TextAnchor{
			TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{{StartIndex: start, EndIndex: end}},
		},
		Confidence: 0.93,
		BoundingPoly: &documentaipb.BoundingPoly{
			NormalizedVertices: []*documentaipb.NormalizedVertex{
				{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
			},
		},
	}
}

func token(start, end int64, x0, x1, y0, y1 float32) *documentaipb.Document_Page_Token {
	return &documentaipb.Document_Page_Token{Layout: anchoredLayout(start, end, x0, y0, x1, y1)}
}

// titlePage is a scanned title page:
//
//	Amtsgericht Prenzlau
//	Grundbuch von Ludwigsburg Blatt 254
//	Seite 1
//
// The last line belongs to no block or paragraph.
func titlePage() *documentaipb.Document {
	text := "Amtsgericht Prenzlau\nGrundbuch von Ludwigsburg Blatt 254\nSeite 1"
	return &documentaipb.Document{
		Text: text,
		Pages: []*documentaipb.Document_Page{{
			PageNumber: 1,
			Dimension:  &documentaipb.Document_Page_Dimension{Width: 2480, Height: 3508, Unit: "pixels"},
			Blocks: []*documentaipb.Document_Page_Block{
				{Layout: anchoredLayout(0, 21, 0.125, 0.0625, 0.5, 0.125)},
				{Layout: anchoredLayout(21, 57, 0.125, 0.25, 0.75, 0.375)},
			},
			Paragraphs: []*documentaipb.Document_Page_Paragraph{
				{Layout: anchoredLayout(0, 21, 0.125, 0.0625, 0.5, 0.125)},
				{Layout: anchoredLayout(21, 57, 0.125, 0.25, 0.75, 0.375)},
			},
			Lines: []*documentaipb.Document_Page_Line{
				{Layout: anchoredLayout(0, 21, 0.125, 0.0625, 0.5, 0.125)},
				{Layout: anchoredLayout(21, 57, 0.125, 0.25, 0.75, 0.375)},
				{Layout: anchoredLayout(57, 64, 0.5, 0.875, 0.625, 0.9375)},
			},
			Tokens: []*documentaipb.Document_Page_Token{
				token(0, 12, 0.125, 0.25, 0.0625, 0.125),
				token(12, 21, 0.25, 0.5, 0.0625, 0.125),
				token(21, 31, 0.125, 0.25, 0.25, 0.375),
				token(31, 35, 0.25, 0.3125, 0.25, 0.375),
				token(35, 47, 0.3125, 0.5, 0.25, 0.375),
				token(47, 53, 0.5, 0.625, 0.25, 0.375),
				token(53, 57, 0.625, 0.75, 0.25, 0.375),
				token(57, 63, 0.5, 0.5625, 0.875, 0.9375),
				token(63, 64, 0.5625, 0.625, 0.875, 0.9375),
			},
			Image: &documentaipb.Document_Page_Image{Content: []byte{0x89, 'P', 'N', 'G'}, MimeType: "image/png"},
		}},
	}
}

func TestLayoutFromDocument(t *testing.T) {
	layout, err := LayoutFromDocument(titlePage(), &Config{DPI: 300})
	require.NoError(t, err)
	require.Contains(t, layout.Seiten, "1")

	seite := layout.Seiten["1"]
	assert.InDelta(t, 209.97, seite.BreiteMm, 0.01)
	assert.InDelta(t, 297.02, seite.HoeheMm, 0.01)
	assert.Equal(t, geom.NewRect(0, 0, 2480, 3508), seite.Parsed.Bounds)

	require.Len(t, seite.Parsed.Careas, 3)
	first := seite.Parsed.Careas[0]
	assert.Equal(t, geom.NewRect(310, 219, 1240, 439), first.Bounds)
	require.Len(t, first.Paragraphs, 1)
	require.Len(t, first.Paragraphs[0].Lines, 1)

	words := first.Paragraphs[0].Lines[0].Words
	require.Len(t, words, 2)
	assert.Equal(t, "Amtsgericht", words[0].Text)
	assert.Equal(t, 93.0, words[0].Confidence)
	assert.Equal(t, geom.NewRect(310, 219, 620, 439), words[0].Bounds)

	assert.Equal(t,
		"Amtsgericht Prenzlau\n\nGrundbuch von Ludwigsburg Blatt 254\n\nSeite 1\n\n",
		seite.Parsed.Text())
}

func TestLayoutFromDocumentNormalizesText(t *testing.T) {
	doc := titlePage()
	doc.Text = "Amtsgericht Mu\u0308nchen" + doc.Text[20:]

	layout, err := LayoutFromDocument(doc, nil)
	require.NoError(t, err)
	words := layout.Seiten["1"].Parsed.Careas[0].Paragraphs[0].Lines[0].Words
	assert.Equal(t, "M\u00fcnchen", words[1].Text)
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		name     string
		dim      *documentaipb.Document_Page_Dimension
		cfg      *Config
		breite   float64
		hoehe    float64
		pxW, pxH float64
	}{
		{"pixels at 300 dpi", &documentaipb.Document_Page_Dimension{Width: 2480, Height: 3508, Unit: "pixels"}, nil, 209.97, 297.02, 2480, 3508},
		{"pixels at 200 dpi", &documentaipb.Document_Page_Dimension{Width: 1654, Height: 2339}, &Config{DPI: 200}, 210.06, 297.05, 1654, 2339},
		{"inches", &documentaipb.Document_Page_Dimension{Width: 8.5, Height: 11, Unit: "inches"}, nil, 215.9, 279.4, 2550, 3300},
		{"points", &documentaipb.Document_Page_Dimension{Width: 612, Height: 792, Unit: "points"}, nil, 215.9, 279.4, 2550, 3300},
		{"configured format wins", &documentaipb.Document_Page_Dimension{Width: 2480, Height: 3508, Unit: "pixels"}, &Config{Seite: Seitenformat{BreiteMm: 210, HoeheMm: 297}}, 210, 297, 2480, 3508},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pageSize(tt.dim, tt.cfg)
			require.NoError(t, err)
			assert.InDelta(t, tt.breite, got.breiteMm, 0.01)
			assert.InDelta(t, tt.hoehe, got.hoeheMm, 0.01)
			assert.InDelta(t, tt.pxW, got.pxW, 0.5)
			assert.InDelta(t, tt.pxH, got.pxH, 0.5)
		})
	}

	_, err := pageSize(&documentaipb.Document_Page_Dimension{Width: 1, Height: 1, Unit: "furlong"}, nil)
	assert.Error(t, err)
	_, err = pageSize(nil, nil)
	assert.Error(t, err)
}

func TestExtractTitelblatt(t *testing.T) {
	t.Run("from recognized text", func(t *testing.T) {
		tb, missing := ExtractTitelblatt(titlePage(), DefaultTitelblattFelder)
		assert.Equal(t, gbx.Titelblatt{Amtsgericht: "Prenzlau", GrundbuchVon: "Ludwigsburg", Blatt: "254"}, tb)
		assert.Empty(t, missing)
	})

	t.Run("entities win", func(t *testing.T) {
		doc := titlePage()
		doc.Entities = []*documentaipb.Document_Entity{
			{Type: "blatt", MentionText: "254a"},
			{Type: "titelblatt", Properties: []*documentaipb.Document_Entity{
				{Type: "amtsgericht", MentionText: " Angermünde "},
			}},
		}
		tb, missing := ExtractTitelblatt(doc, DefaultTitelblattFelder)
		assert.Equal(t, gbx.Titelblatt{Amtsgericht: "Angermünde", GrundbuchVon: "Ludwigsburg", Blatt: "254a"}, tb)
		assert.Empty(t, missing)
	})

	t.Run("form fields", func(t *testing.T) {
		doc := &documentaipb.Document{
			Text: "Grundbuch von: Zichow",
			Pages: []*documentaipb.Document_Page{{
				FormFields: []*documentaipb.Document_Page_FormField{{
					FieldName:  anchoredLayout(0, 14, 0, 0, 0, 0),
					FieldValue: anchoredLayout(15, 21, 0, 0, 0, 0),
				}},
			}},
		}
		tb, missing := ExtractTitelblatt(doc, DefaultTitelblattFelder)
		assert.Equal(t, "Zichow", tb.GrundbuchVon)
		assert.Equal(t, []string{"amtsgericht", "blatt"}, missing)
	})
}

func TestExtractCustomExtractorFields(t *testing.T) {
	doc := &documentaipb.Document{Entities: []*documentaipb.Document_Entity{
		{Type: "eigentuemer", MentionText: "Max Mustermann"},
		{Type: "eigentuemer", MentionText: "Max Mustermann"},
		{Type: "eigentuemer", MentionText: "Erika Mustermann"},
		{Type: "titelblatt", Properties: []*documentaipb.Document_Entity{
			{Type: "blatt", MentionText: "12"},
		}},
		{Type: "", MentionText: "ignored"},
	}}

	fields := ExtractCustomExtractorFields(doc)
	assert.Equal(t, map[string][]string{
		"eigentuemer":      {"Max Mustermann", "Erika Mustermann"},
		"titelblatt/blatt": {"12"},
		"blatt":            {"12"},
	}, fields)
}

func TestResultFromProto(t *testing.T) {
	result, err := ResultFromProto(titlePage(), &Config{})
	require.NoError(t, err)

	assert.True(t, result.File.Digitalisiert)
	assert.Equal(t, "Ludwigsburg", result.File.Analysiert.Titelblatt.GrundbuchVon)
	assert.Equal(t, []int{1}, result.File.Seiten())
	assert.Equal(t, PageImage{Content: []byte{0x89, 'P', 'N', 'G'}, MimeType: "image/png"}, result.Images[1])
	assert.Empty(t, result.Missing)

	_, err = ResultFromProto(nil, nil)
	assert.Error(t, err)
}

func TestMergePage(t *testing.T) {
	combined := &documentaipb.Document{}
	first := titlePage()
	second := titlePage()

	mergePage(combined, first, 1)
	mergePage(combined, second, 2)

	require.Len(t, combined.Pages, 2)
	assert.Equal(t, int32(2), combined.Pages[1].PageNumber)
	assert.Equal(t, int64(66), combined.Pages[1].Tokens[0].Layout.TextAnchor.TextSegments[0].StartIndex)

	layout, err := LayoutFromDocument(combined, nil)
	require.NoError(t, err)
	assert.Equal(t, layout.Seiten["1"].Parsed.Text(), layout.Seiten["2"].Parsed.Text())
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(&documentaipb.Document{Text: "Blatt 254"})
	require.NoError(t, err)
	assert.Contains(t, out, `"Blatt 254"`)

	out, err = ToJSON(map[string]int{"seiten": 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"seiten":2}`, out)
}
