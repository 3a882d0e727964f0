package gdocai

import (
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/gbx/pkg/gbx"
)

// ResultFromProto converts a Document AI response into a digitized sheet.
func ResultFromProto(doc *documentaipb.Document, cfg *Config) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document provided")
	}

	layout, err := LayoutFromDocument(doc, cfg)
	if err != nil {
		return nil, err
	}

	titelblatt, missing := ExtractTitelblatt(doc, cfg.titelblattFelder())

	images := make(map[int]PageImage)
	for i, page := range doc.Pages {
		img, err := ExtractImageFromPage(page)
		if err != nil {
			continue
		}
		images[pageNumber(page, i)] = img
	}

	return &Result{
		Raw: doc,
		File: &gbx.PdfFile{
			Digitalisiert: true,
			Hocr:          layout,
			Analysiert:    gbx.Grundbuch{Titelblatt: titelblatt},
		},
		Images:  images,
		Missing: missing,
	}, nil
}

// pageNumber is the 1-based number of a page, falling back to its position.
func pageNumber(page *documentaipb.Document_Page, index int) int {
	if page.GetPageNumber() > 0 {
		return int(page.GetPageNumber())
	}
	return index + 1
}
