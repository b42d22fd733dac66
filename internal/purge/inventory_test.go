package purge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventory(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want []string
	}{
		{
			name: "simple and pseudo",
			css:  ".mb4 { margin-bottom: 4px; } .btn:hover { color: red; }",
			want: []string{"btn", "mb4"},
		},
		{
			name: "descendant and compound",
			css:  ".card .title, .a.b { x: y; }",
			want: []string{"a", "b", "card", "title"},
		},
		{
			name: "media block",
			css:  "@media (min-width: 768px) { .md_flex { display: flex; } }",
			want: []string{"md_flex"},
		},
		{
			name: "escaped names",
			css:  `.md\:flex { display: flex; }`,
			want: []string{"md:flex"},
		},
		{
			name: "declarations are not selectors",
			css:  ".a { width: .5em; background: url(img.png); }",
			want: []string{"a"},
		},
		{
			name: "duplicates",
			css:  ".a{x:y}.a:focus{x:z}",
			want: []string{"a"},
		},
		{
			name: "attribute selectors define no class",
			css:  "[class*=clm][class*=md_] { display: grid; } :root { --a: 1; }",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inventory(tt.css))
		})
	}
}
