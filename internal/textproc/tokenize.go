package textproc

import (
	"iter"
	"regexp"
	"strings"
)

// minTokenLen is the shortest token length kept after stopword removal.
const minTokenLen = 3

var tokenRe = regexp.MustCompile(`[a-z][a-z0-9.+/#-]+`)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "to": {}, "of": {},
	"in": {}, "for": {}, "with": {}, "on": {}, "at": {}, "by": {}, "from": {},
	"as": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"this": {}, "that": {}, "it": {}, "i": {}, "we": {}, "you": {}, "they": {},
	"he": {}, "she": {}, "them": {}, "our": {}, "your": {}, "their": {},
	"my": {}, "me": {}, "us": {}, "but": {}, "not": {}, "have": {}, "has": {},
	"had": {}, "will": {}, "can": {}, "also": {}, "into": {},
}

// IsStopword reports whether the lowercase word is filtered by the tokenizer.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// Tokens returns a lazy sequence of lowercase tokens in text order.
// Duplicates are kept; ranging over the sequence again restarts the scan.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
			if len(tok) < minTokenLen || IsStopword(tok) {
				continue
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// Tokenize collects Tokens into a slice.
func Tokenize(text string) []string {
	var out []string
	for tok := range Tokens(text) {
		out = append(out, tok)
	}
	return out
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for tok := range Tokens(text) {
		set[tok] = struct{}{}
	}
	return set
}
