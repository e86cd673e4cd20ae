package quality

import (
	"regexp"
	"strings"
	"unicode"
)

// mojibakeReplacer maps common windows-1252-decoded-as-UTF-8 sequences back to
// their intended characters. Longer sequences are matched first.
var mojibakeReplacer = strings.NewReplacer(
	"â€™", "'",
	"â€˜", "'",
	"â€œ", "\"",
	"â€", "\"",
	"â€“", "-",
	"â€”", "-",
	"â€¢", "-",
	"â€¦", "...",
	"Â ", " ",
)

var (
	// residualMojibakeRe matches leftover artifact fragments after replacement
	residualMojibakeRe = regexp.MustCompile("â€[^\\s]?|�")
	// ooxmlTagRe matches Word-internal XML markup leaked through extraction
	ooxmlTagRe = regexp.MustCompile(`</?[a-z]+:[A-Za-z][^>]*>`)
	// spaceRunRe collapses runs of spaces and tabs within a line
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	// blankRunRe reduces 3+ consecutive newlines to 2
	blankRunRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText strips corruption artifacts and normalizes whitespace without
// altering semantic content. It is a fixed point: running it on its own
// output produces the same string.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF/CR -> LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// Replace known mojibake sequences with their best-effort originals,
	// then drop any residual fragments outright
	content = mojibakeReplacer.Replace(content)
	content = residualMojibakeRe.ReplaceAllString(content, "")

	// Remove leaked OOXML markup
	content = ooxmlTagRe.ReplaceAllString(content, "")

	// Strip control characters, keeping newline and tab for now
	content = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, content)

	// Normalize each line: collapse internal space runs, trim edges
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = spaceRunRe.ReplaceAllString(line, " ")
		cleaned = append(cleaned, strings.TrimSpace(line))
	}
	result := strings.Join(cleaned, "\n")

	// Reduce excessive blank lines and trim the whole document
	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
