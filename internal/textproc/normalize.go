// Package textproc holds the text primitives shared by every extractor:
// normalization, tokenization, section splitting and keyword ranking.
package textproc

import (
	"regexp"
	"strings"
)

var (
	tabsRe     = regexp.MustCompile(`[\t\r]+`)
	newlinesRe = regexp.MustCompile(`\n{3,}`)
)

// Normalize converts non-breaking spaces, collapses tabs and carriage returns
// to a single space, squeezes three or more newlines into two and trims the result.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = tabsRe.ReplaceAllString(text, " ")
	text = newlinesRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
