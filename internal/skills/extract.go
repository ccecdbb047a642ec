// Package skills extracts skill names from résumé and job text against a
// candidate vocabulary, using alias tables, fuzzy matching and the skills
// section of the document.
package skills

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/spigell/resume-matcher/internal/textproc"
)

// Mode selects which extraction passes run.
type Mode int

const (
	// Strict matches only exact names and aliases of the candidates. Unmatched
	// skills-section fragments are still reported as extracted skills.
	Strict Mode = iota
	// Permissive adds fuzzy token matching, fuzzy section matching and the
	// KnownTech fallback. It is intentionally noisy.
	Permissive
	// Open discovers vocabulary in unconstrained text: candidates are widened
	// with JobVocabulary for the alias scan, the rest of KnownTech matches by
	// name only, and skills-section fragments are kept as-is.
	Open
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Permissive:
		return "permissive"
	case Open:
		return "open"
	default:
		return "unknown"
	}
}

const (
	minSkillLen = 2
	maxSkillLen = 40
)

var (
	fragmentSplitRe = regexp.MustCompile(`[,|•\n]\s*`)
	spacesRe        = regexp.MustCompile(`\s{2,}`)
)

const fragmentTrimSet = " -–:\t"

// Extractor matches skills in text. The zero value is not usable; call New.
type Extractor struct {
	aliases AliasTable

	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

// New returns an Extractor over the given alias table. A nil table falls back
// to DefaultAliases.
func New(aliases AliasTable) *Extractor {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Extractor{
		aliases:  aliases,
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Aliases returns the table the extractor was built with.
func (e *Extractor) Aliases() AliasTable {
	return e.aliases
}

// Extract returns the skills found in text. Every name is lowercase with a
// length between 2 and 40.
func (e *Extractor) Extract(text string, candidates Set, mode Mode) Set {
	found := make(Set)
	lowered := strings.ToLower(text)

	vocab := candidates.Clone()
	var literal []string
	if mode == Open {
		for _, name := range JobVocabulary {
			vocab.Add(name)
		}
		for _, name := range KnownTech {
			if !vocab.Has(name) {
				literal = append(literal, name)
			}
		}
	}

	vocabList := vocab.Sorted()

	for _, skill := range vocabList {
		if e.containsAny(lowered, e.aliases.Of(skill)) {
			found.Add(skill)
		}
	}
	for _, name := range literal {
		if e.containsAny(lowered, []string{name}) {
			found.Add(name)
		}
	}

	var tokens []string
	if mode == Permissive {
		tokens = textproc.Tokenize(text)
		for _, tok := range tokens {
			for _, skill := range vocabList {
				if e.fuzzyAny(tok, skill) {
					found.Add(skill)
				}
			}
		}
	}

	if block := textproc.SplitSections(text).Skills(); block != "" {
		for _, fragment := range Fragments(block) {
			matched := false
			for _, skill := range vocabList {
				if e.fragmentMatches(fragment, skill, mode) {
					found.Add(skill)
					matched = true
				}
			}
			if !matched && mode != Permissive {
				found.Add(fragment)
			}
		}
	}

	if mode == Permissive {
		for _, tok := range tokens {
			if IsKnownTech(tok) {
				found.Add(tok)
			}
		}
	}

	return clean(found)
}

// Fragments splits a skills block on commas, pipes, bullets and line breaks,
// trimming dashes, colons and whitespace and dropping out-of-range pieces.
func Fragments(block string) []string {
	parts := fragmentSplitRe.Split(strings.ToLower(block), -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(strings.Trim(part, fragmentTrimSet))
		if len(part) < minSkillLen || len(part) > maxSkillLen {
			continue
		}
		out = append(out, part)
	}
	return out
}

func (e *Extractor) fragmentMatches(fragment, skill string, mode Mode) bool {
	match := func(a, b string) bool { return a == b }
	if mode == Permissive {
		match = FuzzyMatch
	}

	if match(fragment, skill) {
		return true
	}
	for _, alias := range e.aliases.Of(skill) {
		if match(fragment, alias) {
			return true
		}
	}
	return false
}

func (e *Extractor) fuzzyAny(token, skill string) bool {
	if FuzzyMatch(token, skill) {
		return true
	}
	for _, alias := range e.aliases.Of(skill) {
		if FuzzyMatch(token, alias) {
			return true
		}
	}
	return false
}

func (e *Extractor) containsAny(text string, aliases []string) bool {
	for _, alias := range aliases {
		if alias == "" {
			continue
		}
		if e.pattern(alias).MatchString(text) {
			return true
		}
	}
	return false
}

// pattern returns a cached case-insensitive whole-word matcher for alias.
func (e *Extractor) pattern(alias string) *regexp.Regexp {
	alias = strings.ToLower(alias)

	e.mu.RLock()
	re, ok := e.patterns[alias]
	e.mu.RUnlock()
	if ok {
		return re
	}

	re = regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `\b`)

	e.mu.Lock()
	e.patterns[alias] = re
	e.mu.Unlock()

	return re
}

// ContainsWord reports whether phrase occurs in text as a whole word, ignoring case.
func (e *Extractor) ContainsWord(text, phrase string) bool {
	return e.containsAny(strings.ToLower(text), []string{phrase})
}

func clean(found Set) Set {
	out := make(Set, len(found))
	for name := range found {
		name = spacesRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), " ")
		if len(name) < minSkillLen || len(name) > maxSkillLen {
			continue
		}
		out.Add(name)
	}
	return out
}

// Set is an unordered set of skill names.
type Set map[string]struct{}

// NewSet builds a set from names, lowercasing and trimming each.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			s.Add(name)
		}
	}
	return s
}

func (s Set) Add(name string) { s[name] = struct{}{} }

func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for name := range s {
		out.Add(name)
	}
	return out
}

// Intersect returns the names present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for name := range s {
		if other.Has(name) {
			out.Add(name)
		}
	}
	return out
}

// Sorted returns the names in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
