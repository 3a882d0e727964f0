// Package gdocai digitizes scanned land-register sheets with Google Document AI.
//
// A scanned PDF is sent to a Document AI OCR processor. The response is turned
// into the per-page OCR layout of a .gbx file: content areas, paragraphs,
// lines and words with their pixel bounding boxes, the page size in mm and the
// page images. The title block of the sheet is read from custom extractor
// entities, from form fields or, failing both, from the recognized text.
//
// Main Functions:
//
// - ProcessDocument: Sends a document to Google Document AI for processing
// - Scanner: Digitizes sheets with any Processor, pages in parallel
// - Scan: Processes a PDF and returns the digitized .gbx file
// - ScanPages: Processes single-page PDFs as the pages of one sheet
// - ResultFromProto: Converts a Document AI response without calling the API
// - LayoutFromDocument: Converts the pages of a response to an OCR layout
// - ExtractTitelblatt: Reads court, district and sheet number
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai

import (
	"context"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"golang.org/x/sync/errgroup"
)

// DefaultParallel is the number of pages ScanPages sends to Document AI at
// the same time.
const DefaultParallel = 4

// Processor runs OCR on a PDF and returns the Document AI response.
type Processor interface {
	Process(ctx context.Context, pdfBytes []byte) (*documentaipb.Document, error)
}

// CloudProcessor is the Processor of a Document AI processor in Google Cloud.
type CloudProcessor struct {
	Config *Config
}

func (p CloudProcessor) Process(ctx context.Context, pdfBytes []byte) (*documentaipb.Document, error) {
	return ProcessDocument(ctx, pdfBytes, p.Config)
}

// Scanner digitizes sheets with a Processor.
type Scanner struct {
	Processor Processor
	Config    *Config
	Parallel  int // Concurrent page requests of ScanPages (0 = DefaultParallel)
}

// NewScanner returns a Scanner using the Document AI processor of cfg.
func NewScanner(cfg *Config) *Scanner {
	return &Scanner{Processor: CloudProcessor{Config: cfg}, Config: cfg}
}

// Scan processes a PDF with Document AI and returns the digitized sheet.
func Scan(ctx context.Context, pdfBytes []byte, cfg *Config) (*Result, error) {
	return NewScanner(cfg).Scan(ctx, pdfBytes)
}

// ScanPages processes every PDF as one page and combines them into a single
// sheet. Page ids follow the order of pagePdfBytesList.
func ScanPages(ctx context.Context, pagePdfBytesList [][]byte, cfg *Config) (*Result, error) {
	return NewScanner(cfg).ScanPages(ctx, pagePdfBytesList)
}

func (s *Scanner) Scan(ctx context.Context, pdfBytes []byte) (*Result, error) {
	rawDoc, err := s.Processor.Process(ctx, pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}
	return ResultFromProto(rawDoc, s.Config)
}

// ScanPages sends the pages concurrently and merges the responses in input
// order. The first failing page cancels the others.
func (s *Scanner) ScanPages(ctx context.Context, pagePdfBytesList [][]byte) (*Result, error) {
	if len(pagePdfBytesList) == 0 {
		return nil, fmt.Errorf("no pages provided")
	}

	pageDocs := make([]*documentaipb.Document, len(pagePdfBytesList))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel())
	for i, pageBytes := range pagePdfBytesList {
		g.Go(func() error {
			pageDoc, err := s.Processor.Process(gctx, pageBytes)
			if err != nil {
				return fmt.Errorf("failed to process page %d: %w", i+1, err)
			}
			if len(pageDoc.GetPages()) != 1 {
				return fmt.Errorf("expected 1 page in result for page %d, got %d", i+1, len(pageDoc.GetPages()))
			}
			pageDocs[i] = pageDoc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined := &documentaipb.Document{}
	for i, pageDoc := range pageDocs {
		mergePage(combined, pageDoc, i+1)
	}
	return ResultFromProto(combined, s.Config)
}

func (s *Scanner) parallel() int {
	if s.Parallel <= 0 {
		return DefaultParallel
	}
	return s.Parallel
}

// mergePage appends the single page of pageDoc to combined, shifting its
// text anchors behind the text already collected.
func mergePage(combined, pageDoc *documentaipb.Document, pageNumber int) {
	if combined.Text != "" {
		combined.Text += "\n\n"
	}
	offset := int64(len([]rune(combined.Text)))
	combined.Text += pageDoc.Text

	page := pageDoc.Pages[0]
	page.PageNumber = int32(pageNumber)
	shiftLayout(page.Layout, offset)
	for _, b := range page.Blocks {
		shiftLayout(b.Layout, offset)
	}
	for _, p := range page.Paragraphs {
		shiftLayout(p.Layout, offset)
	}
	for _, l := range page.Lines {
		shiftLayout(l.Layout, offset)
	}
	for _, t := range page.Tokens {
		shiftLayout(t.Layout, offset)
	}
	for _, f := range page.FormFields {
		shiftLayout(f.FieldName, offset)
		shiftLayout(f.FieldValue, offset)
	}
	combined.Pages = append(combined.Pages, page)
	combined.Entities = append(combined.Entities, pageDoc.Entities...)
}

func shiftLayout(layout *documentaipb.Document_Page_Layout, offset int64) {
	if layout == nil || layout.TextAnchor == nil {
		return
	}
	for _, seg := range layout.TextAnchor.TextSegments {
		seg.StartIndex += offset
		seg.EndIndex += offset
	}
}
