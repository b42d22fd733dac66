package nubepurge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClasses(t *testing.T) {
	config := setupProject(t,
		".mb4{margin:4px}\n.f3{font-size:3}\n@media (min-width:768px){.md_flex{display:flex}}",
		map[string]string{
			"index.html":  `<div class="mb4 md_flex">`,
			"widget.tsx":  `<span className="undefined-class">`,
			"README.html": `plain text`,
		},
	)

	report, err := Classes(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, []string{"f3", "mb4", "md_flex"}, report.Defined)
	assert.Equal(t, []string{"mb4", "md_flex", "undefined-class"}, report.Used)
	assert.Equal(t, []string{"f3"}, report.Unused)
}

func TestClasses_MissingStylesheet(t *testing.T) {
	config := setupProject(t, ".a{}", nil)
	config.SourcePath += ".missing"

	_, err := Classes(context.Background(), config)
	require.ErrorIs(t, err, ErrMissingInput)
}
