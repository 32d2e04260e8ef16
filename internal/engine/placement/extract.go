package placement

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Skills maps every category to the keywords detected for it.
// Slices are never nil; a category with no hits holds an empty slice.
type Skills map[Category][]string

// Extract scans text against the category keyword tables.
// All matching keywords of a category are kept, in table order. When no
// category other than "other" matches, "other" receives the fallback set.
func Extract(text string) Skills {
	lower := strings.ToLower(text)
	out := emptySkills()

	found := false
	for _, c := range Categories {
		for _, kw := range cat.keywords[c] {
			if containsKeyword(lower, kw) {
				out[c] = append(out[c], kw.name)
				found = true
			}
		}
	}
	if !found {
		out[CategoryOther] = FallbackSkills()
	}
	return out
}

func emptySkills() Skills {
	s := make(Skills, len(Categories))
	for _, c := range Categories {
		s[c] = []string{}
	}
	return s
}

func containsKeyword(lower string, kw keyword) bool {
	if kw.lower == "" {
		return false
	}
	if kw.wholeWord {
		if containsWord(lower, kw.lower) {
			return true
		}
	} else if strings.Contains(lower, kw.lower) {
		return true
	}
	for _, a := range kw.aliases {
		if containsWord(lower, a) {
			return true
		}
	}
	return false
}

func containsWord(lower, word string) bool {
	for from := 0; from < len(lower); {
		i := strings.Index(lower[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		if boundaryBefore(lower, start) && boundaryAfter(lower, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// boundaryAfter treats "+" and "#" as part of the token so "c" does not hit
// "c++", and a dot only when another word character follows it.
func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), r == '+', r == '#':
		return false
	case r == '.':
		if i+size >= len(s) {
			return true
		}
		next, _ := utf8.DecodeRuneInString(s[i+size:])
		return !unicode.IsLetter(next) && !unicode.IsDigit(next)
	}
	return true
}

// IsFallbackOnly reports whether no real category was detected.
func (s Skills) IsFallbackOnly() bool {
	for _, c := range Categories {
		if c != CategoryOther && len(s[c]) > 0 {
			return false
		}
	}
	return true
}

// Has reports whether category c has at least one detected skill.
func (s Skills) Has(c Category) bool { return len(s[c]) > 0 }

// HasSkill reports whether the named skill was detected in any category.
func (s Skills) HasSkill(name string) bool {
	for _, c := range Categories {
		for _, sk := range s[c] {
			if strings.EqualFold(sk, name) {
				return true
			}
		}
	}
	return false
}

// All returns every detected skill in category order.
func (s Skills) All() []string {
	var out []string
	for _, c := range Categories {
		out = append(out, s[c]...)
	}
	return out
}

// RealCategoryCount counts non-empty categories, excluding "other".
func (s Skills) RealCategoryCount() int {
	n := 0
	for _, c := range Categories {
		if c != CategoryOther && len(s[c]) > 0 {
			n++
		}
	}
	return n
}

// Normalize returns a copy that carries every category key with a non-nil
// slice and re-applies the fallback invariant.
func (s Skills) Normalize() Skills {
	out := emptySkills()
	for _, c := range Categories {
		out[c] = append(out[c], s[c]...)
	}
	if out.IsFallbackOnly() && len(out[CategoryOther]) == 0 {
		out[CategoryOther] = FallbackSkills()
	}
	return out
}
