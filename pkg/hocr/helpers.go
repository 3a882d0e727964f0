package hocr

import (
	"strings"

	"github.com/gardar/gbx/pkg/geom"
)

// Text extracts all text of the page in reading order of the tree.
// Words of a line are joined by a space, lines are terminated by a newline
// and paragraphs are separated by an empty line.
func (p ParsedHocr) Text() string {
	var builder strings.Builder
	for _, area := range p.Careas {
		for _, para := range area.Paragraphs {
			for _, line := range para.Lines {
				extractLineText(&builder, line.Words)
			}
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// LinesIn returns the text of every line that has at least one word whose
// center lies inside r. Only those words contribute to the line's text.
// r is in the pixel space of the page.
func (p ParsedHocr) LinesIn(r geom.Rect) []string {
	var lines []string
	for _, area := range p.Careas {
		for _, para := range area.Paragraphs {
			for _, line := range para.Lines {
				var inside []Word
				for _, word := range line.Words {
					if r.Contains(word.Bounds.Center()) {
						inside = append(inside, word)
					}
				}
				if len(inside) == 0 {
					continue
				}
				var builder strings.Builder
				extractLineText(&builder, inside)
				lines = append(lines, strings.TrimSuffix(builder.String(), "\n"))
			}
		}
	}
	return lines
}

// Words flattens the tree into its words in reading order
func (p ParsedHocr) Words() []Word {
	var words []Word
	for _, area := range p.Careas {
		for _, para := range area.Paragraphs {
			for _, line := range para.Lines {
				words = append(words, line.Words...)
			}
		}
	}
	return words
}

// IsEmpty reports whether the page carries no recognized words
func (p ParsedHocr) IsEmpty() bool {
	return len(p.Words()) == 0
}

// extractLineText writes the words of one line followed by a newline
func extractLineText(builder *strings.Builder, words []Word) {
	for i, word := range words {
		if i > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(word.Text)
	}
	builder.WriteString("\n")
}
