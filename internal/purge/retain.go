package purge

import "strings"

// Retain reports whether a selector survives purging against usage
func Retain(selector string, usage UsageSet) bool {
	return ClassifySelector(selector).Retained(usage)
}

// Retained applies the retention rule of the selector's shape
func (s Selector) Retained(u UsageSet) bool {
	switch s.Shape {
	case ShapeSimpleClass:
		return u.HasClass(s.Name)
	case ShapeSingleAttr:
		return matchesClassSubstring(s.Name, u)
	case ShapeCompoundAttr:
		return retainCompound(s.Parts, u)
	default:
		return retainOther(s.Text, u)
	}
}

// matchesClassSubstring keeps [class*=name] when a used class equals name
// or starts or ends with it.
func matchesClassSubstring(name string, u UsageSet) bool {
	if u.HasClass(name) {
		return true
	}
	return anyClass(u, func(c string) bool {
		return strings.HasPrefix(c, name) || strings.HasSuffix(c, name)
	})
}

// retainCompound handles selectors made of two or more [class*=X] parts.
// With the clm marker present any other part is enough; otherwise every
// part must resolve.
func retainCompound(parts []string, u UsageSet) bool {
	others := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != clmMarker {
			others = append(others, p)
		}
	}

	if len(others) < len(parts) {
		if len(others) == 0 {
			return anyClass(u, func(c string) bool {
				return strings.Contains(c, clmMarker)
			})
		}
		for _, p := range others {
			if resolvePart(p, u) {
				return true
			}
		}
		return false
	}

	for _, p := range parts {
		if !resolvePart(p, u) {
			return false
		}
	}
	return true
}

// resolvePart checks one [class*=X] substring:
//
//	md_   prefix lookup  (md in Prefixes, or a used class starting with md_)
//	4     suffix lookup  (4 in Suffixes, or a used class ending with _4)
//	md_4  combo lookup   (exact combination or class)
//	gap   class lookup   (broad substring match)
func resolvePart(part string, u UsageSet) bool {
	switch {
	case strings.HasSuffix(part, "_"):
		if u.HasPrefix(strings.TrimSuffix(part, "_")) {
			return true
		}
		return anyClass(u, func(c string) bool {
			return len(c) > len(part) && strings.HasPrefix(c, part)
		})
	case isNumeric(part):
		if u.HasSuffix(part) {
			return true
		}
		return anyClass(u, func(c string) bool {
			return strings.HasSuffix(c, "_"+part)
		})
	case strings.Contains(part, "_"):
		return u.HasCombo(part) || u.HasClass(part)
	default:
		return matchesClassSubstring(part, u)
	}
}

// retainOther keeps a selector when some used class appears in it as ".class"
func retainOther(text string, u UsageSet) bool {
	plain := unescape(text)
	return anyClass(u, func(c string) bool {
		needle := "." + c
		return strings.Contains(text, needle) || strings.Contains(plain, needle)
	})
}

func anyClass(u UsageSet, fn func(string) bool) bool {
	for c := range u.Classes {
		if fn(c) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Retainer decides retention of rules against one usage snapshot
type Retainer struct {
	usage    UsageSet
	safelist Safelist
}

// NewRetainer creates a Retainer
func NewRetainer(usage UsageSet, opts Options) *Retainer {
	return &Retainer{usage: usage, safelist: opts.Safelist}
}

// Keep reports whether a rule with the given selector is kept
func (r *Retainer) Keep(selector string) bool {
	if r.safelisted(selector) {
		return true
	}
	return Retain(selector, r.usage)
}

func (r *Retainer) safelisted(selector string) bool {
	if r.safelist.Empty() {
		return false
	}
	for _, token := range selectorTokens(selector) {
		for _, s := range r.safelist.Standard {
			if token == s {
				return true
			}
		}
		for _, re := range r.safelist.Greedy {
			if re.MatchString(token) {
				return true
			}
		}
	}
	return false
}

// Filter returns the constructs that survive purging, in source order.
// Comments, root blocks, statements and non-media at-blocks are always
// kept. Media blocks are rebuilt around their surviving rules and dropped
// when none survive.
func Filter(constructs []Construct, usage UsageSet, opts Options) ([]Construct, FilterStats) {
	r := NewRetainer(usage, opts)
	var stats FilterStats
	kept, _ := r.filter(constructs, &stats)
	return kept, stats
}

// filter returns the kept constructs and how many of them are rules or
// media blocks (comments do not count toward a media block surviving).
func (r *Retainer) filter(constructs []Construct, stats *FilterStats) ([]Construct, int) {
	kept := make([]Construct, 0, len(constructs))
	survivors := 0

	for _, c := range constructs {
		switch c.Kind {
		case KindRule:
			if r.Keep(c.Selector()) {
				kept = append(kept, c)
				stats.Kept++
				survivors++
			} else {
				stats.Dropped++
			}
		case KindMedia:
			if media, ok := r.filterMedia(c, stats); ok {
				kept = append(kept, media)
				stats.Media++
				survivors++
			}
		default:
			kept = append(kept, c)
		}
	}

	return kept, survivors
}

func (r *Retainer) filterMedia(c Construct, stats *FilterStats) (Construct, bool) {
	rules, survivors := r.filter(c.Rules, stats)
	if survivors == 0 {
		return Construct{}, false
	}

	prelude, _, _ := splitBlock(c.Text)
	consumed := len(prelude) + len(Join(c.Rules))
	tail := c.Text[consumed:]

	return Construct{
		Kind:  KindMedia,
		Text:  prelude + Join(rules) + tail,
		Rules: rules,
	}, true
}
