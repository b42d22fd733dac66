// Package purge implements the stylesheet purging engine: tokenizer,
// class usage extraction, selector retention and minification.
package purge

import (
	"regexp"
	"sort"
)

// Kind classifies a top-level stylesheet construct
type Kind int

// Construct kinds. Statement and AtBlock cover at-rules other than @media.
const (
	KindRule Kind = iota
	KindComment
	KindRoot
	KindMedia
	KindStatement // @charset "UTF-8"; @import url(...);
	KindAtBlock   // @font-face { ... }, @keyframes spin { ... }
)

// String returns the string representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindComment:
		return "comment"
	case KindRoot:
		return "root"
	case KindMedia:
		return "media"
	case KindStatement:
		return "statement"
	case KindAtBlock:
		return "at-block"
	default:
		return "unknown"
	}
}

// Construct is one top-level unit of a stylesheet
type Construct struct {
	Kind Kind
	Text string // Verbatim source slice, leading whitespace included

	// Rules holds the nested constructs of a media block (nil otherwise)
	Rules []Construct
}

// Selector returns the text before the opening brace, trimmed.
// Comments and statements have no selector.
func (c Construct) Selector() string {
	if c.Kind == KindComment || c.Kind == KindStatement {
		return ""
	}
	return selectorOf(c.Text)
}

// UsageSet is an immutable snapshot of class usage found in project sources
type UsageSet struct {
	Classes  map[string]struct{} // "mb4", "md_flex"
	Prefixes map[string]struct{} // "md"
	Suffixes map[string]struct{} // "flex"
	Combos   map[string]struct{} // "md_flex"
}

// HasClass reports whether name was used verbatim
func (u UsageSet) HasClass(name string) bool {
	_, ok := u.Classes[name]
	return ok
}

// HasPrefix reports whether prefix was seen in a prefix_suffix class
func (u UsageSet) HasPrefix(prefix string) bool {
	_, ok := u.Prefixes[prefix]
	return ok
}

// HasSuffix reports whether suffix was seen in a prefix_suffix class
func (u UsageSet) HasSuffix(suffix string) bool {
	_, ok := u.Suffixes[suffix]
	return ok
}

// HasCombo reports whether the exact prefix_suffix combination was used
func (u UsageSet) HasCombo(combo string) bool {
	_, ok := u.Combos[combo]
	return ok
}

// SortedClasses returns the used classes in lexical order
func (u UsageSet) SortedClasses() []string {
	out := make([]string, 0, len(u.Classes))
	for c := range u.Classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Safelist keeps rules regardless of usage
type Safelist struct {
	Standard []string         // ["html", "body"]: exact selector tokens
	Greedy   []*regexp.Regexp // [^is-]: matched against selector tokens
}

// Empty reports whether the safelist has no entries
func (s Safelist) Empty() bool {
	return len(s.Standard) == 0 && len(s.Greedy) == 0
}

// Options controls filtering
type Options struct {
	Safelist Safelist
}

// FilterStats counts retention decisions made by Filter
type FilterStats struct {
	Kept    int // Rules kept (top-level and inside media)
	Dropped int // Rules dropped
	Media   int // Media blocks kept
}
