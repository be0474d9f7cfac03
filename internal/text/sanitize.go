// Package text normalizes user-supplied text before it is stored or analysed.
package text

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// controlChars matches ASCII control characters other than tab and newline.
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

	// multipleNewlines matches three or more consecutive newlines.
	multipleNewlines = regexp.MustCompile(`\n{3,}`)

	// unicodeReplacer drops invisible format characters and maps exotic
	// spaces and separators to their plain equivalents.
	unicodeReplacer = strings.NewReplacer(
		"\u2060", "", // word joiner
		"\uFEFF", "", // byte order mark
		"\u00AD", "", // soft hyphen
		"\u200E", "", // left-to-right mark
		"\u200F", "", // right-to-left mark
		"\u2061", "", "\u2062", "", "\u2063", "", "\u2064", "",

		"\u2028", "\n",
		"\u2029", "\n\n",
		"\u200B", " ", // zero width space
		"\u200C", " ",
		"\u205F", " ",
		"\u2009", " ",
		"\u200A", " ",
		"\u202F", " ",
		"\u3000", " ",
		"\u00A0", " ",
	)
)

// Clean normalizes line endings, strips invisible and control characters,
// collapses runs of whitespace within each line and limits blank lines to
// one. The result is trimmed and may be empty.
func Clean(input string) string {
	if input == "" {
		return ""
	}

	s := strings.ReplaceAll(input, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = unicodeReplacer.Replace(s)
	s = controlChars.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = collapseWhitespace(lines[i])
	}

	s = strings.Join(lines, "\n")
	s = multipleNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func collapseWhitespace(line string) string {
	var b strings.Builder
	b.Grow(len(line))

	space := false
	for _, r := range line {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteRune(' ')
				space = true
			}
			continue
		}
		b.WriteRune(r)
		space = false
	}
	return strings.TrimSpace(b.String())
}
