package gbx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gardar/gbx/pkg/geom"
	"github.com/gardar/gbx/pkg/hocr"
)

func testSeite() HocrSeite {
	line := func(words ...hocr.Word) hocr.Line {
		l := hocr.Line{Bounds: words[0].Bounds, Words: words}
		for _, w := range words[1:] {
			l.Bounds = l.Bounds.Union(w.Bounds)
		}
		return l
	}
	return HocrSeite{
		BreiteMm: 100,
		HoeheMm:  200,
		Parsed: hocr.ParsedHocr{
			Bounds: geom.NewRect(0, 0, 1000, 2000),
			Careas: []hocr.Area{{
				Bounds: geom.NewRect(100, 100, 450, 350),
				Paragraphs: []hocr.Paragraph{{
					Bounds: geom.NewRect(100, 100, 450, 350),
					Lines: []hocr.Line{
						line(
							hocr.Word{Bounds: geom.NewRect(100, 100, 300, 150), Confidence: 90, Text: "Flurstück"},
							hocr.Word{Bounds: geom.NewRect(350, 100, 450, 150), Confidence: 90, Text: "17/3"},
						),
						line(hocr.Word{Bounds: geom.NewRect(100, 300, 200, 350), Confidence: 90, Text: "Weg"}),
					},
				}},
			}},
		},
	}
}

func TestHocrSeiteConversion(t *testing.T) {
	s := testSeite()
	assert.Equal(t, geom.NewRect(10, 20, 30, 40), s.ToPx(geom.NewRect(1, 2, 3, 4)))
	assert.Equal(t, geom.NewRect(1, 2, 3, 4), s.ToMm(geom.NewRect(10, 20, 30, 40)))

	s.BreiteMm = 0
	assert.Equal(t, geom.Rect{}, s.ToPx(geom.NewRect(1, 1, 3, 2)))
}

func TestHocrSeiteTextIn(t *testing.T) {
	s := testSeite()

	tests := []struct {
		name string
		mm   geom.Rect
		want []string
	}{
		{"one word", geom.NewRect(0, 0, 30, 20), []string{"Flurstück"}},
		{"whole text", geom.NewRect(0, 0, 100, 50), []string{"Flurstück 17/3", "Weg"}},
		{"second column", geom.NewRect(35, 0, 50, 50), []string{"17/3"}},
		{"nothing", geom.NewRect(60, 60, 90, 90), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.TextIn(tt.mm)
			assert.True(t, got.IsMultiLine())
			assert.Equal(t, tt.want, got.Lines())
		})
	}

	s.HoeheMm = 0
	assert.True(t, s.TextIn(geom.NewRect(0, 0, 100, 200)).IsEmpty())
}
