package purge

import (
	"sort"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// blockKind tracks what an open brace belongs to
type blockKind int

const (
	blockGroup blockKind = iota // @media, @supports, @layer: contains rules
	blockDecl                   // declaration block: contains properties
)

// groupAtRules hold nested rules rather than declarations
var groupAtRules = map[string]bool{
	"@media":     true,
	"@supports":  true,
	"@layer":     true,
	"@container": true,
	"@document":  true,
	"@keyframes": true,
}

// Inventory lists the class names defined by selectors in a stylesheet,
// sorted and deduplicated. Escapes are resolved: ".md\:flex" -> "md:flex".
func Inventory(content string) []string {
	lexer := css.NewLexer(parse.NewInputString(content))

	seen := make(map[string]bool)
	var stack []blockKind
	preludeGroup := false // current prelude started with a group at-rule

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}

		inDecl := len(stack) > 0 && stack[len(stack)-1] == blockDecl

		switch tt {
		case css.AtKeywordToken:
			if !inDecl && groupAtRules[string(text)] {
				preludeGroup = true
			}
		case css.LeftBraceToken:
			if preludeGroup {
				stack = append(stack, blockGroup)
			} else {
				stack = append(stack, blockDecl)
			}
			preludeGroup = false
		case css.RightBraceToken:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case css.SemicolonToken:
			if !inDecl {
				preludeGroup = false
			}
		case css.DelimToken:
			if inDecl || len(text) == 0 || text[0] != '.' {
				continue
			}
			tt2, name := lexer.Next()
			if tt2 == css.IdentToken {
				seen[unescape(string(name))] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
