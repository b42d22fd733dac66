package purge

import (
	"regexp"
	"strings"
)

// headerWindow is how far into the text a comment may start and still be
// kept as the license/info header
const headerWindow = 200

var (
	commentPattern     = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	punctSpacePattern  = regexp.MustCompile(`\s*([{}:;,])\s*`)
	trailingSemiBefore = regexp.MustCompile(`;+}`)
	lineBreakPattern   = regexp.MustCompile(`[\r\n]+`)
	spaceRunPattern    = regexp.MustCompile(`\s{2,}`)
)

// Minify compacts CSS text. The first comment starting within the first
// 200 characters is kept verbatim; every other comment is removed.
// Minify(Minify(x)) == Minify(x).
func Minify(text string) string {
	loc := commentPattern.FindStringIndex(text)
	if loc == nil || loc[0] >= headerWindow {
		return strings.TrimSpace(compact(text))
	}

	header := text[loc[0]:loc[1]]
	before := compact(text[:loc[0]])
	after := compact(text[loc[1]:])

	return strings.TrimSpace(before + header + after)
}

// compact applies the comment and whitespace rules to text that holds no
// preserved header
func compact(text string) string {
	text = commentPattern.ReplaceAllString(text, "")
	text = punctSpacePattern.ReplaceAllString(text, "$1")
	text = trailingSemiBefore.ReplaceAllString(text, "}")
	text = lineBreakPattern.ReplaceAllString(text, "")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	return text
}
