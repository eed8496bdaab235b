// Package types provides type definitions for structured data used throughout the tailor-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// KeywordCategory holds the keywords matched for one taxonomy category
type KeywordCategory struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// KeywordSet is the ordered result of keyword extraction. Categories appear in
// taxonomy declaration order and are present even when empty.
type KeywordSet struct {
	Categories []KeywordCategory `json:"categories"`
}

// NewKeywordSet builds a KeywordSet, copying the given categories.
func NewKeywordSet(categories []KeywordCategory) KeywordSet {
	out := make([]KeywordCategory, len(categories))
	for i, c := range categories {
		kws := make([]string, len(c.Keywords))
		copy(kws, c.Keywords)
		out[i] = KeywordCategory{Name: c.Name, Keywords: kws}
	}
	return KeywordSet{Categories: out}
}

// Get returns a copy of the keywords for a category, or nil if the category is unknown
func (s KeywordSet) Get(category string) []string {
	for _, c := range s.Categories {
		if c.Name == category {
			out := make([]string, len(c.Keywords))
			copy(out, c.Keywords)
			return out
		}
	}
	return nil
}

// Has reports whether the category exists in the set (it may be empty)
func (s KeywordSet) Has(category string) bool {
	for _, c := range s.Categories {
		if c.Name == category {
			return true
		}
	}
	return false
}

// Contains reports whether any category holds keyword (case-insensitive)
func (s KeywordSet) Contains(keyword string) bool {
	want := strings.ToLower(strings.TrimSpace(keyword))
	if want == "" {
		return false
	}
	for _, c := range s.Categories {
		for _, kw := range c.Keywords {
			if strings.ToLower(kw) == want {
				return true
			}
		}
	}
	return false
}

// All returns every keyword across categories in order, without duplicates
func (s KeywordSet) All() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range s.Categories {
		for _, kw := range c.Keywords {
			key := strings.ToLower(kw)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, kw)
		}
	}
	return out
}

// Count returns the total number of keywords across all categories
func (s KeywordSet) Count() int {
	n := 0
	for _, c := range s.Categories {
		n += len(c.Keywords)
	}
	return n
}

// KeywordMapping maps a section ID to keywords that may be safely added to it.
// A section without suggestions has no entry; callers treat absent and empty alike.
type KeywordMapping map[string][]string
