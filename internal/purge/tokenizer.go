package purge

import "strings"

// Tokenize splits a stylesheet into its top-level constructs.
//
// The scan tracks comment state, quoted strings and brace depth. A
// construct closes when depth returns to zero; a comment at depth zero with
// only whitespace before it closes as its own construct. Concatenating the
// Text of the result reproduces the input, except for a trailing tail that
// never closed (whitespace, an unterminated comment or unbalanced braces),
// which is dropped.
func Tokenize(text string) []Construct {
	var out []Construct
	start := 0 // start of the construct being accumulated
	depth := 0
	var quote byte

	for i := 0; i < len(text); i++ {
		c := text[i]

		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '/':
			if i+1 >= len(text) || text[i+1] != '*' {
				continue
			}
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return out
			}
			end = i + 2 + end + 2
			if depth == 0 && isBlank(text[start:i]) {
				out = append(out, Construct{Kind: KindComment, Text: text[start:end]})
				start = end
			}
			i = end - 1
		case '"', '\'':
			quote = c
		case '{':
			depth++
		case '}':
			if depth == 0 {
				// stray closing brace stays in the buffer
				continue
			}
			depth--
			if depth == 0 {
				out = append(out, classify(text[start:i+1]))
				start = i + 1
			}
		case ';':
			if depth == 0 {
				out = append(out, Construct{Kind: KindStatement, Text: text[start : i+1]})
				start = i + 1
			}
		}
	}

	return out
}

// classify tags a completed brace-balanced construct
func classify(text string) Construct {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, ":root"):
		return Construct{Kind: KindRoot, Text: text}
	case strings.HasPrefix(trimmed, "@media"):
		_, body, _ := splitBlock(text)
		return Construct{Kind: KindMedia, Text: text, Rules: Tokenize(body)}
	case strings.HasPrefix(trimmed, "@"):
		return Construct{Kind: KindAtBlock, Text: text}
	default:
		return Construct{Kind: KindRule, Text: text}
	}
}

// splitBlock splits "prelude{body}" into "prelude{", "body" and "}".
// text must be brace-balanced and end with '}'.
func splitBlock(text string) (prelude, body, closing string) {
	open := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if open < 0 || end < open {
		return text, "", ""
	}
	return text[:open+1], text[open+1 : end], text[end:]
}

// selectorOf returns the trimmed text before the first opening brace
func selectorOf(text string) string {
	if idx := strings.IndexByte(text, '{'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// Join concatenates construct texts in order
func Join(constructs []Construct) string {
	var b strings.Builder
	for _, c := range constructs {
		b.WriteString(c.Text)
	}
	return b.String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
