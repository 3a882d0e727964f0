package pdfocr

import (
	"log/slog"
)

// OCRConfig holds user options for rendering a .gbx file to PDF
type OCRConfig struct {
	Debug     bool         // Show the text layer in red with word boxes
	Overlay   bool         // Draw column and row overrides of every page
	LayerName string       // Base name of OCR layer (page number will be appended)
	StartPage int          // Render pages from this page number on
	Logger    *slog.Logger // Logger for warnings (nil = slog.Default())
	Font      FontConfig
	Colors    Colors
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() OCRConfig {
	return OCRConfig{
		LayerName: "OCR Text", // Will be formatted as "OCR Text (Seite X)" in the final PDF
		StartPage: 1,
		Font:      DefaultFont,
		Colors:    DefaultColors,
	}
}

// FontConfig contains font settings for OCR text rendering
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont sets the default font to Helvetica which is tried and tested for the OCR layer
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}

// RGB is a color with 0-255 components.
type RGB struct{ R, G, B int }

// Colors used for annotations and the overlay.
type Colors struct {
	RoteLinie RGB // user-drawn strike-through lines
	Spalte    RGB // column rectangles
	Zeile     RGB // manual rows
	ZeileAuto RGB // detected rows
}

var DefaultColors = Colors{
	RoteLinie: RGB{220, 0, 0},
	Spalte:    RGB{0, 90, 200},
	Zeile:     RGB{0, 150, 60},
	ZeileAuto: RGB{150, 150, 150},
}
