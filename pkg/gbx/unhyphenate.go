package gbx

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// compoundMarker separates the parts of an elided compound ("Land- und
// Forstwirtschaft"). Its hyphen is never removed.
const compoundMarker = "- und "

// hyphenation matches a hyphen followed by exactly one whitespace or Unicode
// space separator and a lowercase letter. The greedy prefix makes every pass
// remove the last hyphenation of a segment.
var hyphenation = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`(.*)-[\s\p{Z}]([a-züäö])(.*)`)
})

// Unhyphenate joins words that OCR split with a hyphen and concatenates the
// physical lines of text into one string.
//
// Within a line, "- " before a lowercase letter is removed until no such
// hyphen is left. The line break counts as the whitespace as well: a line
// ending in "-" is joined with a next line that starts with a lowercase
// letter. A hyphen before an uppercase letter stays, as does every
// "- und " of an elided compound.
func Unhyphenate(text string) string {
	lines := splitLines(text)

	var out strings.Builder
	for i, line := range lines {
		cleaned := unhyphenateLine(line)
		if i+1 < len(lines) && continuesOnNextLine(cleaned, lines[i+1]) {
			cleaned = strings.TrimSuffix(cleaned, "-")
		}
		out.WriteString(cleaned)
	}
	return out.String()
}

func unhyphenateLine(line string) string {
	re := hyphenation()
	segments := strings.Split(line, compoundMarker)
	for i, segment := range segments {
		for re.MatchString(segment) {
			segment = re.ReplaceAllString(segment, "${1}${2}${3}")
		}
		segments[i] = segment
	}
	return strings.Join(segments, compoundMarker)
}

func continuesOnNextLine(line, next string) bool {
	if !strings.HasSuffix(line, "-") || strings.HasPrefix(next, strings.TrimPrefix(compoundMarker, "- ")) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(next)
	return isLowerLetter(r)
}

func isLowerLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || r == 'ä' || r == 'ö' || r == 'ü'
}
