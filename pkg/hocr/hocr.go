// Package hocr implements the OCR layout tree of a scanned register page and
// its conversion from and to hOCR, the HTML-based standard format for OCR
// results.
//
// This package provides:
//
// - The layout tree stored per page in a .gbx file
// - Functions for parsing hOCR HTML into the layout tree
// - Functions for generating valid hOCR HTML from the layout tree
// - Text extraction in reading order, optionally restricted to a region
//
// The tree is strictly hierarchical:
// Page → Content Areas → Paragraphs → Lines → Words. Every node carries a
// bounding box in pixels from the top-left corner of the page image, words
// additionally carry a recognition confidence.
//
// Key Types:
//
// - ParsedHocr: Layout tree of one page (image bounds plus content areas)
// - Area: Content area with class 'ocr_carea'
// - Paragraph: Paragraph with class 'ocr_par'
// - Line: Line of text with class 'ocr_line'
// - Word: Single word with class 'ocrx_word'
// - HOCR, Page: Parsed hOCR document with page metadata
//
// Main Functions:
//
// - Parse: Parses hOCR HTML into pages
// - Generate: Generates hOCR HTML from pages
package hocr
