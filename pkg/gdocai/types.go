package gdocai

import (
	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/gbx/pkg/gbx"
)

// Result is a digitized sheet together with what Document AI returned.
type Result struct {
	Raw  *documentaipb.Document // Original Document AI response
	File *gbx.PdfFile           // The .gbx content

	// Images maps page numbers to the page images of the response.
	Images map[int]PageImage

	// Missing lists the title block fields that could not be found.
	Missing []string
}

// PageImage is a rendered page as returned by Document AI.
type PageImage struct {
	Content  []byte
	MimeType string
}
