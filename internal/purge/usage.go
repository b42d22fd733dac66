package purge

import (
	"regexp"
	"strings"
)

// classAttrPattern matches class="..." and className="..." in either quote style.
// The name must start the text or follow whitespace, '<' or ':' (Vue's :class),
// so data-class and similar attributes do not count.
var classAttrPattern = regexp.MustCompile(`(?:^|[\s<:])(?:class|className)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// UsageAccumulator folds class usage over any number of source texts.
// The zero value is not usable; call NewUsageAccumulator.
type UsageAccumulator struct {
	classes  map[string]struct{}
	prefixes map[string]struct{}
	suffixes map[string]struct{}
	combos   map[string]struct{}
}

// NewUsageAccumulator creates an empty accumulator
func NewUsageAccumulator() *UsageAccumulator {
	return &UsageAccumulator{
		classes:  make(map[string]struct{}),
		prefixes: make(map[string]struct{}),
		suffixes: make(map[string]struct{}),
		combos:   make(map[string]struct{}),
	}
}

// Add extracts every class token from one source text
func (a *UsageAccumulator) Add(source string) {
	for _, m := range classAttrPattern.FindAllStringSubmatch(source, -1) {
		value := m[1]
		if value == "" {
			value = m[2]
		}
		for _, token := range strings.Fields(value) {
			a.addClass(token)
		}
	}
}

func (a *UsageAccumulator) addClass(token string) {
	a.classes[token] = struct{}{}

	// Only single-underscore names decompose into prefix_suffix
	if strings.Count(token, "_") != 1 {
		return
	}
	prefix, suffix, _ := strings.Cut(token, "_")
	a.prefixes[prefix] = struct{}{}
	a.suffixes[suffix] = struct{}{}
	a.combos[token] = struct{}{}
}

// Len returns the number of distinct classes seen so far
func (a *UsageAccumulator) Len() int {
	return len(a.classes)
}

// Snapshot returns a copy of the accumulated sets. Later Add calls do not
// affect a returned snapshot.
func (a *UsageAccumulator) Snapshot() UsageSet {
	return UsageSet{
		Classes:  copySet(a.classes),
		Prefixes: copySet(a.prefixes),
		Suffixes: copySet(a.suffixes),
		Combos:   copySet(a.combos),
	}
}

// ExtractUsage returns the usage sets of a single (concatenated) source text
func ExtractUsage(source string) UsageSet {
	acc := NewUsageAccumulator()
	acc.Add(source)
	return acc.Snapshot()
}

func copySet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
