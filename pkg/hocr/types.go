package hocr

import (
	"encoding/json"

	"github.com/gardar/gbx/internal/wire"
	"github.com/gardar/gbx/pkg/geom"
)

// HOCR represents a parsed hOCR document
type HOCR struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-capabilities, ...
	Pages    []Page            // Pages in the document
}

// Page is one 'ocr_page' element of an hOCR document
type Page struct {
	ID         string     // Unique identifier
	PageNumber int        // Physical page number (ppageno), 1-based after parsing
	ImageName  string     // Source image filename
	Lang       string     // Language code for this page
	Parsed     ParsedHocr // Layout tree of the page
}

// Class assign 'ocr_page' to 'Page' struct
func (Page) Class() string { return "ocr_page" }

// ParsedHocr is the recognized layout of one page image
type ParsedHocr struct {
	Bounds geom.Rect `json:"bounds"` // Image bounds in pixels
	Careas []Area    `json:"careas"` // Content areas
}

// Area is a content area (column or region)
// Corresponds to hOCR element with class: 'ocr_carea'
type Area struct {
	Bounds     geom.Rect   `json:"bounds"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Class assign 'ocr_carea' to 'Area' struct
func (Area) Class() string { return "ocr_carea" }

// Paragraph is a paragraph within a content area
// Corresponds to hOCR element with class: 'ocr_par'
type Paragraph struct {
	Bounds geom.Rect `json:"bounds"`
	Lines  []Line    `json:"lines"`
}

// Class assign 'ocr_par' to 'Paragraph' struct
func (Paragraph) Class() string { return "ocr_par" }

// Line is a line of text within a paragraph
// Corresponds to hOCR element with class: 'ocr_line'
type Line struct {
	Bounds geom.Rect `json:"bounds"`
	Words  []Word    `json:"words"`
}

// Class assign 'ocr_line' to 'Line' struct
func (Line) Class() string { return "ocr_line" }

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	Bounds     geom.Rect `json:"bounds"`
	Confidence float64   `json:"confidence"` // Recognition confidence (0-100)
	Text       string    `json:"text"`
}

// Class assign 'ocrx_word' to 'Word' struct
func (Word) Class() string { return "ocrx_word" }

// Child lists are always written, an empty list as [].

func (p ParsedHocr) MarshalJSON() ([]byte, error) {
	type plain ParsedHocr
	if p.Careas == nil {
		p.Careas = []Area{}
	}
	return json.Marshal(plain(p))
}

func (p *ParsedHocr) UnmarshalJSON(data []byte) error {
	type plain ParsedHocr
	return wire.DecodeRequired(data, (*plain)(p), "bounds", "careas")
}

func (a Area) MarshalJSON() ([]byte, error) {
	type plain Area
	if a.Paragraphs == nil {
		a.Paragraphs = []Paragraph{}
	}
	return json.Marshal(plain(a))
}

func (a *Area) UnmarshalJSON(data []byte) error {
	type plain Area
	return wire.DecodeRequired(data, (*plain)(a), "bounds", "paragraphs")
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	type plain Paragraph
	if p.Lines == nil {
		p.Lines = []Line{}
	}
	return json.Marshal(plain(p))
}

func (p *Paragraph) UnmarshalJSON(data []byte) error {
	type plain Paragraph
	return wire.DecodeRequired(data, (*plain)(p), "bounds", "lines")
}

func (l Line) MarshalJSON() ([]byte, error) {
	type plain Line
	if l.Words == nil {
		l.Words = []Word{}
	}
	return json.Marshal(plain(l))
}

func (l *Line) UnmarshalJSON(data []byte) error {
	type plain Line
	return wire.DecodeRequired(data, (*plain)(l), "bounds", "words")
}

func (w *Word) UnmarshalJSON(data []byte) error {
	type plain Word
	return wire.DecodeRequired(data, (*plain)(w), "bounds", "confidence", "text")
}
