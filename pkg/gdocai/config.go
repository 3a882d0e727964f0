package gdocai

// DefaultDPI is assumed for pixel dimensions when no page format is
// configured.
const DefaultDPI = 300

// Config holds the Document AI processor and how its output is interpreted.
type Config struct {
	ProjectID   string
	Location    string
	ProcessorID string

	// DPI converts pixel page dimensions to mm and other units to pixels.
	DPI float64
	// Seite, when set, is the physical page size of every scanned page.
	Seite Seitenformat
	// Titelblatt names the extractor entities or form fields holding the
	// title block.
	Titelblatt TitelblattFelder
}

// Seitenformat is a physical page size in mm.
type Seitenformat struct {
	BreiteMm float64
	HoeheMm  float64
}

// TitelblattFelder names the entity types (or form field labels) that carry
// the parts of the title block.
type TitelblattFelder struct {
	Amtsgericht  string
	GrundbuchVon string
	Blatt        string
}

// DefaultTitelblattFelder matches a custom extractor trained with these
// entity types, and the labels printed on the title page.
var DefaultTitelblattFelder = TitelblattFelder{
	Amtsgericht:  "amtsgericht",
	GrundbuchVon: "grundbuch_von",
	Blatt:        "blatt",
}

func (c *Config) dpi() float64 {
	if c == nil || c.DPI <= 0 {
		return DefaultDPI
	}
	return c.DPI
}

func (c *Config) titelblattFelder() TitelblattFelder {
	if c == nil || c.Titelblatt == (TitelblattFelder{}) {
		return DefaultTitelblattFelder
	}
	return c.Titelblatt
}
