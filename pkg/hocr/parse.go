package hocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/gardar/gbx/pkg/geom"
)

// Parse converts raw hOCR data into a structured HOCR object.
//
// Nodes that skip a level of the hierarchy (a line directly under a page, a
// word directly under a paragraph, ...) are wrapped into synthetic parents
// carrying the child's bounding box, so every page ends up as a strict
// carea → par → line → word tree.
func Parse(data []byte) (HOCR, error) {
	var result HOCR
	result.Metadata = make(map[string]string)

	// Figure out the character encoding
	decoded := data
	if enc := declaredCharset(string(data)); enc != "" && enc != "utf-8" && enc != "utf8" {
		var err error
		decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return result, fmt.Errorf("failed to decode %s: %w", enc, err)
		}
	}

	doc, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR HTML: %w", err)
	}

	extractDocumentMeta(&result, doc)

	// Find and process all ocr_page elements
	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, Page{}.Class()) {
			result.Pages = append(result.Pages, processPage(n, len(result.Pages)+1))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(doc)

	if len(result.Pages) == 0 {
		return result, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return result, nil
}

// declaredCharset returns the lower-cased charset of a <meta> declaration,
// or "" when the document does not declare one.
func declaredCharset(content string) string {
	idx := strings.Index(content, "charset=")
	if idx < 0 {
		return ""
	}
	snippet := content[idx+len("charset="):]
	if len(snippet) > 20 {
		snippet = snippet[:20]
	}
	fields := strings.FieldsFunc(snippet, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' ' || r == '/'
	})
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns nil if the title carries no complete bbox property
func ParseBoundingBoxFromTitle(title string) *geom.Rect {
	props := ParseTitle(title)
	bbox, ok := props["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		v[i] = f
	}
	result := geom.NewRect(v[0], v[1], v[2], v[3])
	return &result
}

// extractDocumentMeta extracts document-level metadata from the head section
func extractDocumentMeta(result *HOCR, doc *html.Node) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				if lang := getAttrVal(n, "lang"); lang != "" {
					result.Language = lang
				} else if lang := getAttrVal(n, "xml:lang"); lang != "" {
					result.Language = lang
				}
			case "title":
				if n.FirstChild != nil {
					result.Title = n.FirstChild.Data
				}
			case "meta":
				name, content := getAttrVal(n, "name"), getAttrVal(n, "content")
				if strings.HasPrefix(name, "ocr-") && content != "" {
					result.Metadata[name] = content
				}
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

// processPage extracts page properties and its layout tree
func processPage(n *html.Node, fallbackNumber int) Page {
	page := Page{
		ID:         getAttrVal(n, "id"),
		Lang:       getAttrVal(n, "lang"),
		PageNumber: fallbackNumber,
	}

	title := getAttrVal(n, "title")
	if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
		page.Parsed.Bounds = *bbox
	}
	props := ParseTitle(title)
	if image, ok := props["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(image[0], `"`)
	}
	if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
		// ppageno is 0-based in hOCR
		if no, err := strconv.Atoi(ppageno[0]); err == nil {
			page.PageNumber = no + 1
		}
	}

	areas, paragraphs, lines, words := collectNodes(n)
	for _, areaNode := range areas {
		page.Parsed.Careas = append(page.Parsed.Careas, processArea(areaNode))
	}
	for _, paragraphNode := range paragraphs {
		paragraph := processParagraph(paragraphNode)
		page.Parsed.Careas = append(page.Parsed.Careas, Area{
			Bounds:     paragraph.Bounds,
			Paragraphs: []Paragraph{paragraph},
		})
	}
	for _, lineNode := range lines {
		line := processLine(lineNode)
		page.Parsed.Careas = append(page.Parsed.Careas, Area{
			Bounds:     line.Bounds,
			Paragraphs: []Paragraph{{Bounds: line.Bounds, Lines: []Line{line}}},
		})
	}
	if line, ok := wrapWords(words); ok {
		page.Parsed.Careas = append(page.Parsed.Careas, Area{
			Bounds:     line.Bounds,
			Paragraphs: []Paragraph{{Bounds: line.Bounds, Lines: []Line{line}}},
		})
	}
	if page.Parsed.Careas == nil {
		page.Parsed.Careas = []Area{}
	}
	return page
}

// processArea extracts area information and its paragraphs
func processArea(n *html.Node) Area {
	area := Area{Paragraphs: []Paragraph{}}
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		area.Bounds = *bbox
	}

	_, paragraphs, lines, words := collectNodes(n)
	for _, paragraphNode := range paragraphs {
		area.Paragraphs = append(area.Paragraphs, processParagraph(paragraphNode))
	}
	for _, lineNode := range lines {
		line := processLine(lineNode)
		area.Paragraphs = append(area.Paragraphs, Paragraph{Bounds: line.Bounds, Lines: []Line{line}})
	}
	if line, ok := wrapWords(words); ok {
		area.Paragraphs = append(area.Paragraphs, Paragraph{Bounds: line.Bounds, Lines: []Line{line}})
	}
	return area
}

// processParagraph extracts paragraph information and its lines
func processParagraph(n *html.Node) Paragraph {
	paragraph := Paragraph{Lines: []Line{}}
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		paragraph.Bounds = *bbox
	}

	_, _, lines, words := collectNodes(n)
	for _, lineNode := range lines {
		paragraph.Lines = append(paragraph.Lines, processLine(lineNode))
	}
	if line, ok := wrapWords(words); ok {
		paragraph.Lines = append(paragraph.Lines, line)
	}
	return paragraph
}

// processLine extracts line information and its words
func processLine(n *html.Node) Line {
	line := Line{Words: []Word{}}
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		line.Bounds = *bbox
	}

	_, _, _, words := collectNodes(n)
	for _, wordNode := range words {
		line.Words = append(line.Words, processWord(wordNode))
	}
	return line
}

// processWord extracts the text, bbox and confidence of a word element
func processWord(n *html.Node) Word {
	var word Word
	title := getAttrVal(n, "title")
	if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
		word.Bounds = *bbox
	}
	if conf, ok := ParseTitle(title)["x_wconf"]; ok && len(conf) > 0 {
		word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
	}
	// Engines emit decomposed umlauts now and then
	word.Text = norm.NFC.String(extractTextContent(n))
	return word
}

// wrapWords puts words found without a parent line into a synthetic line
func wrapWords(nodes []*html.Node) (Line, bool) {
	if len(nodes) == 0 {
		return Line{}, false
	}
	line := Line{Words: make([]Word, 0, len(nodes))}
	for i, wordNode := range nodes {
		word := processWord(wordNode)
		if i == 0 {
			line.Bounds = word.Bounds
		} else {
			line.Bounds = line.Bounds.Union(word.Bounds)
		}
		line.Words = append(line.Words, word)
	}
	return line, true
}

// collectNodes finds the outermost layout descendants of n, grouped by class.
// The search does not descend into a matched node.
func collectNodes(n *html.Node) (areas, paragraphs, lines, words []*html.Node) {
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch {
			case hasClass(node, Area{}.Class()):
				areas = append(areas, node)
				return
			case hasClass(node, Paragraph{}.Class()):
				paragraphs = append(paragraphs, node)
				return
			case isLineNode(node):
				lines = append(lines, node)
				return
			case hasClass(node, Word{}.Class()):
				words = append(words, node)
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return areas, paragraphs, lines, words
}

// extractTextContent gets all text from a node and its children
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractTextContent(c))
	}
	return strings.TrimSpace(text.String())
}

// Tesseract tags headings, captions and floating text as line variants
var lineClasses = []string{Line{}.Class(), "ocr_header", "ocr_caption", "ocr_textfloat"}

func isLineNode(n *html.Node) bool {
	for _, class := range lineClasses {
		if hasClass(n, class) {
			return true
		}
	}
	return false
}

// hasClass reports whether the class attribute of n lists class
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
