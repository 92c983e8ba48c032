package useragent

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/devicekit/pkg/signals"
)

// input is what every rule sees: the raw identification string, its
// lower-cased form for keyword checks, and the platform/touch signals.
type input struct {
	ua       string
	lower    string
	platform string
	touch    bool
}

func newInput(s signals.Signals) input {
	return input{
		ua:       s.UserAgent,
		lower:    strings.ToLower(s.UserAgent),
		platform: s.Platform,
		touch:    s.TouchCapable,
	}
}

func (in input) has(tokens ...string) bool {
	for _, t := range tokens {
		if strings.Contains(in.lower, t) {
			return true
		}
	}
	return false
}

// macIntelTouch catches iPads that report a desktop platform string.
func (in input) macIntelTouch() bool {
	return in.touch && in.platform == "MacIntel"
}

// rule pairs a predicate with the extractor that runs when it matches.
type rule[T any] struct {
	name    string
	match   func(in input) bool
	extract func(in input) T
}

// chain evaluates rules top to bottom; the first match wins. The fallback
// always applies, which makes every chain a total function.
type chain[T any] struct {
	rules    []rule[T]
	fallback rule[T]
}

func (c chain[T]) eval(in input) T {
	for _, r := range c.rules {
		if r.match(in) {
			return r.extract(in)
		}
	}
	return c.fallback.extract(in)
}

func (c chain[T]) names() []string {
	names := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		names = append(names, r.name)
	}
	return append(names, c.fallback.name)
}

// keywordSet is a set of lower-case substrings.
type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		result[word] = struct{}{}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// capture returns the first group of the first pattern that matches, with
// underscores normalized to dots, or Unknown.
func capture(s string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); len(m) > 1 && m[1] != "" {
			return normalizeVersion(m[1])
		}
	}
	return Unknown
}

func normalizeVersion(v string) string {
	v = strings.ReplaceAll(v, "_", ".")
	v = strings.Trim(v, ".")
	if v == "" {
		return Unknown
	}
	return v
}
