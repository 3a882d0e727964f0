package gbx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/gardar/gbx/internal/wire"
)

// LineSeparator joins the lines of a StringOrLines into one text. Consumers
// on every platform expect CRLF.
const LineSeparator = "\r\n"

// StringOrLines holds a legal text either as one opaque string or as an
// explicit list of lines. Both forms split into lines the same way: at "\n",
// dropping one "\r" before it, without a trailing empty line for a final
// newline.
//
// The zero value is the empty opaque string. On the wire it is a JSON string
// or a JSON array of strings.
type StringOrLines struct {
	text  string
	lines []string
	multi bool
}

// SingleLine wraps s as an opaque string.
func SingleLine(s string) StringOrLines {
	return StringOrLines{text: s}
}

// MultiLine builds the line-list form from lines.
func MultiLine(lines ...string) StringOrLines {
	return StringOrLines{lines: slices.Clone(lines), multi: true}
}

// FromString splits s into lines. The result is always the line-list form.
func FromString(s string) StringOrLines {
	return StringOrLines{lines: splitLines(s), multi: true}
}

// IsMultiLine reports whether s is stored as a line list.
func (s StringOrLines) IsMultiLine() bool {
	return s.multi
}

// IsEmpty reports whether s has no lines (line list) or no characters (string).
func (s StringOrLines) IsEmpty() bool {
	if s.multi {
		return len(s.lines) == 0
	}
	return s.text == ""
}

// IsZero makes empty texts disappear from the encoding.
func (s StringOrLines) IsZero() bool {
	return s.IsEmpty()
}

// Lines returns the lines of s regardless of its form.
func (s StringOrLines) Lines() []string {
	if s.multi {
		return slices.Clone(s.lines)
	}
	return splitLines(s.text)
}

// Text joins the lines with CRLF.
func (s StringOrLines) Text() string {
	return strings.Join(s.Lines(), LineSeparator)
}

// TextClean is Text with words hyphenated across lines joined again.
func (s StringOrLines) TextClean() string {
	return Unhyphenate(s.Text())
}

// Equal compares line by line, so a string and the equivalent line list are
// equal.
func (s StringOrLines) Equal(o StringOrLines) bool {
	return slices.Equal(s.Lines(), o.Lines())
}

// String returns the opaque string unchanged, or the lines joined with CRLF.
func (s StringOrLines) String() string {
	if s.multi {
		return strings.Join(s.lines, LineSeparator)
	}
	return s.text
}

func (s StringOrLines) MarshalJSON() ([]byte, error) {
	if !s.multi {
		return json.Marshal(s.text)
	}
	if s.lines == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.lines)
}

func (s *StringOrLines) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 {
		switch data[0] {
		case '"':
			var text string
			if err := json.Unmarshal(data, &text); err != nil {
				return wire.Wrap(err)
			}
			*s = SingleLine(text)
			return nil
		case '[':
			var lines []string
			if err := json.Unmarshal(data, &lines); err != nil {
				return wire.Wrap(err)
			}
			*s = StringOrLines{lines: lines, multi: true}
			return nil
		}
	}
	return fmt.Errorf("%w: text must be a string or a list of strings, got %.20s", ErrNoVariant, data)
}

// splitLines splits at "\n" and drops one "\r" right before it. A final line
// ending is optional and the empty string has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	terminated := strings.HasSuffix(s, "\n")
	parts := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i := range parts {
		if i < len(parts)-1 || terminated {
			parts[i] = strings.TrimSuffix(parts[i], "\r")
		}
	}
	return parts
}
