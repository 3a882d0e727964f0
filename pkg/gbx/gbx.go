// Package gbx implements the .gbx exchange format for digitized German
// land-register sheets (Grundbuchblätter) and the values derived from it.
//
// A .gbx file bundles, per register sheet, the OCR layout recognized on the
// scanned pages, the user's overrides to that layout and the analysed
// register sheet: the title block plus the four sections Bestandsverzeichnis,
// Abteilung 1, Abteilung 2 and Abteilung 3.
//
// Key Types:
//
// - PdfFile: The exchanged envelope (digitized flag, layout, overrides, sheet)
// - HocrLayout, HocrSeite: OCR layout per page, keyed by page id
// - AnpassungSeite, SeitenTyp: User overrides of a page's layout
// - Grundbuch, Titelblatt: The analysed register sheet
// - BvEintrag, Abt1Eintrag: Entries resolved from several wire shapes
// - StringOrLines: Legal text stored either as one string or as lines
// - FlurstueckGroesse: Parcel area in m² or as ha/a/m²
//
// Main Functions:
//
// - Encode, EncodeIndent: Minimal canonical encoding of a PdfFile
// - Decode, ReadFile: Decoding with defaults restored for omitted fields
// - Unhyphenate: Re-joins words hyphenated across line breaks
//
// Every value is immutable once built: operations return derived values and
// never modify their receiver, so a decoded PdfFile can be shared between
// goroutines as a snapshot. Changes are made by building a new value.
package gbx

// Ptr returns a pointer to v, for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}
