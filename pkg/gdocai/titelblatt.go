package gdocai

import (
	"regexp"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/gbx/pkg/gbx"
)

// Title page wording, e.g. "Amtsgericht Prenzlau" and
// "Grundbuch von Ludwigsburg Blatt 254".
var (
	amtsgerichtPattern  = regexp.MustCompile(`(?m)Amtsgericht[ \t]+(\S.*?)[ \t]*$`)
	grundbuchVonPattern = regexp.MustCompile(`(?m)Grundbuch[ \t]+von[ \t]+(\S.*?)(?:[ \t]+Blatt\b.*)?[ \t]*$`)
	blattPattern        = regexp.MustCompile(`\bBlatt[ \t]+(\d+[A-Za-z]?)\b`)
)

// ExtractTitelblatt reads the title block of a sheet. Every part is looked up
// in the custom extractor entities, then in the form fields, then in the
// recognized text. missing names the parts found nowhere; they are left
// empty.
func ExtractTitelblatt(doc *documentaipb.Document, names TitelblattFelder) (tb gbx.Titelblatt, missing []string) {
	entities := ExtractCustomExtractorFields(doc)
	formFields := ExtractFormFields(doc)
	text := doc.GetText()

	lookup := func(name string, pattern *regexp.Regexp) string {
		if values := entities[name]; len(values) > 0 {
			return values[0]
		}
		if values := formFields[formFieldKey(name)]; len(values) > 0 {
			return values[0]
		}
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
		return ""
	}

	tb = gbx.Titelblatt{
		Amtsgericht:  lookup(names.Amtsgericht, amtsgerichtPattern),
		GrundbuchVon: lookup(names.GrundbuchVon, grundbuchVonPattern),
		Blatt:        lookup(names.Blatt, blattPattern),
	}

	if tb.Amtsgericht == "" {
		missing = append(missing, "amtsgericht")
	}
	if tb.GrundbuchVon == "" {
		missing = append(missing, "grundbuch_von")
	}
	if tb.Blatt == "" {
		missing = append(missing, "blatt")
	}
	return tb, missing
}
