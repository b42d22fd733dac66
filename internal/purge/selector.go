package purge

import "strings"

// SelectorShape is the retention-relevant shape of a selector
type SelectorShape int

// Selector shapes, decided once per selector
const (
	ShapeOther        SelectorShape = iota // anything else: .btn:hover, .a .b, body
	ShapeSimpleClass                       // .mb4
	ShapeSingleAttr                        // [class*=gap]
	ShapeCompoundAttr                      // [class*=clm][class*=md_]
)

// String returns the string representation of the SelectorShape
func (s SelectorShape) String() string {
	switch s {
	case ShapeSimpleClass:
		return "simple-class"
	case ShapeSingleAttr:
		return "single-attr"
	case ShapeCompoundAttr:
		return "compound-attr"
	default:
		return "other"
	}
}

// clmMarker is the column marker class that compound selectors pair with
// breakpoint prefixes: [class*=clm][class*=md_]
const clmMarker = "clm"

// Selector is a classified selector
type Selector struct {
	Shape SelectorShape
	Text  string   // Trimmed selector text
	Name  string   // Class name (SimpleClass) or substring (SingleAttr)
	Parts []string // Substrings of each [class*=X] (CompoundAttr)
}

// ClassifySelector decides the shape of a selector
func ClassifySelector(selector string) Selector {
	text := strings.TrimSpace(selector)
	sel := Selector{Shape: ShapeOther, Text: text}

	if name, ok := parseSimpleClass(text); ok {
		sel.Shape = ShapeSimpleClass
		sel.Name = name
		return sel
	}

	if parts, ok := parseAttrParts(text); ok {
		if len(parts) == 1 {
			sel.Shape = ShapeSingleAttr
			sel.Name = parts[0]
		} else {
			sel.Shape = ShapeCompoundAttr
			sel.Parts = parts
		}
	}

	return sel
}

// parseSimpleClass accepts ".name" where name is a single (possibly
// escaped) identifier. The returned name is unescaped: ".md\:flex" -> "md:flex".
func parseSimpleClass(text string) (string, bool) {
	if len(text) < 2 || text[0] != '.' {
		return "", false
	}

	var name strings.Builder
	for i := 1; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\\':
			if i+1 >= len(text) {
				return "", false
			}
			i++
			name.WriteByte(text[i])
		case isIdentByte(c):
			name.WriteByte(c)
		default:
			return "", false
		}
	}

	return name.String(), name.Len() > 0
}

// parseAttrParts accepts one or more consecutive [class*=X] parts and
// nothing else. Values may be quoted.
func parseAttrParts(text string) ([]string, bool) {
	const open = "[class*="

	var parts []string
	rest := text
	for rest != "" {
		if !strings.HasPrefix(rest, open) {
			return nil, false
		}
		rest = rest[len(open):]

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, false
		}
		value := strings.Trim(strings.TrimSpace(rest[:end]), `"'`)
		if value == "" {
			return nil, false
		}
		parts = append(parts, value)
		rest = rest[end+1:]
	}

	return parts, len(parts) > 0
}

// isIdentByte reports whether c may appear unescaped in a class name.
// Bytes >= 0x80 belong to multi-byte UTF-8 sequences and are allowed.
func isIdentByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c >= 0x80
}

// unescape drops CSS backslash escapes: "w-1\/2" -> "w-1/2"
func unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// selectorTokens splits a selector into identifier-like tokens:
// "body > .is-open[data-x]" -> ["body", "is-open", "data-x"]
func selectorTokens(selector string) []string {
	return strings.FieldsFunc(unescape(selector), func(r rune) bool {
		if r >= 0x80 {
			return false
		}
		return !isIdentByte(byte(r))
	})
}
