package nubepurge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nube-system/nubepurge/internal/purge"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// setupProject lays out <tmp>/styles/system.css and <tmp>/src/<files>
func setupProject(t *testing.T, stylesheet string, files map[string]string) Config {
	t.Helper()
	root := t.TempDir()

	source := filepath.Join(root, "styles", "system.css")
	require.NoError(t, os.MkdirAll(filepath.Dir(source), 0o755))
	require.NoError(t, os.WriteFile(source, []byte(stylesheet), 0o644))

	content := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(content, 0o755))
	for name, data := range files {
		path := filepath.Join(content, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	}

	return Config{
		ContentDir: content,
		SourcePath: source,
		Now:        func() time.Time { return fixedNow },
	}
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPurge_KeepsUsedRules(t *testing.T) {
	config := setupProject(t,
		".mb4{margin-bottom:4px}\n.f3{font-size:3}\n",
		map[string]string{"pages/index.astro": `<div class="mb4">`},
	)

	result, err := Purge(context.Background(), config)
	require.NoError(t, err)

	wantOutput := DefaultOutputPath(config.SourcePath)
	assert.Equal(t, wantOutput, result.OutputPath)
	assert.Equal(t, 1, result.RulesKept)
	assert.Equal(t, 1, result.RulesDropped)
	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 1, result.ClassesUsed)
	assert.Equal(t, 2, result.ClassesDefined)
	assert.Equal(t, 1, result.ClassesKept)
	assert.Equal(t, []string{"mb4"}, result.UsedClasses)

	body := ".mb4{margin-bottom:4px}"
	header := purge.Header(purge.HeaderInfo{
		Source:    "system.css",
		Mode:      purge.ModePurged,
		Generated: fixedNow,
		Stats:     purge.SizeStats{OriginalBytes: 41, PurgedBytes: len(body)},
	})
	assert.Equal(t, purge.Assemble(header, body), readOutput(t, wantOutput))
}

func TestPurge_MediaBlocks(t *testing.T) {
	stylesheet := "@media (min-width:768px){.md_flex{display:flex}}"

	tests := []struct {
		name      string
		source    string
		wantKept  bool
		wantStats [3]int // kept, dropped, media
	}{
		{
			name:      "referenced rule keeps block",
			source:    `<div className="md_flex">`,
			wantKept:  true,
			wantStats: [3]int{1, 0, 1},
		},
		{
			name:      "unreferenced block dropped",
			source:    `<div className="flex p_4">`,
			wantKept:  false,
			wantStats: [3]int{0, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := setupProject(t, stylesheet, map[string]string{"App.jsx": tt.source})

			result, err := Purge(context.Background(), config)
			require.NoError(t, err)

			out := readOutput(t, result.OutputPath)
			if tt.wantKept {
				assert.True(t, strings.HasSuffix(out, "\n\n"+stylesheet))
			} else {
				assert.NotContains(t, out, "@media")
				assert.True(t, strings.HasSuffix(out, "*/\n\n"))
			}
			assert.Equal(t, tt.wantStats, [3]int{result.RulesKept, result.RulesDropped, result.MediaKept})
		})
	}
}

func TestPurge_ReductionPercent(t *testing.T) {
	// ten rules of exactly 1000 bytes each, three of them used
	var b strings.Builder
	for i := 0; i < 10; i++ {
		prefix := fmt.Sprintf("\n.c%d{content:\"", i)
		b.WriteString(prefix + strings.Repeat("x", 1000-len(prefix)-2) + "\"}")
	}
	require.Equal(t, 10000, b.Len())

	config := setupProject(t, b.String(), map[string]string{
		"index.html": `<p class="c1 c4"></p><p class="c7"></p>`,
	})

	result, err := Purge(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, purge.SizeStats{OriginalBytes: 10000, PurgedBytes: 3000}, result.Size)
	assert.Equal(t, 70, result.Size.Reduction())
	assert.Contains(t, readOutput(t, result.OutputPath), "Reduction: 70%\n")
}

func TestPurge_Minify(t *testing.T) {
	config := setupProject(t,
		"/* system v1 */\n.mb4 {\n  margin-bottom: 4px;\n}\n\n/* spacing */\n.f3 { font-size: 3; }\n",
		map[string]string{"a.vue": `<div class="mb4 f3">`},
	)
	config.Minify = true

	result, err := Purge(context.Background(), config)
	require.NoError(t, err)
	assert.True(t, result.Minified)

	out := readOutput(t, result.OutputPath)
	assert.True(t, strings.HasSuffix(out, "*/\n\n/* system v1 */.mb4{margin-bottom:4px}.f3{font-size:3}"), out)
	assert.NotContains(t, out, "spacing")
}

func TestPurge_MinSibling(t *testing.T) {
	config := setupProject(t,
		".mb4 {\n  margin-bottom: 4px;\n}\n.f3 { font-size: 3; }\n",
		map[string]string{"a.svelte": `<div class="mb4">`},
	)
	config.MinSibling = true

	result, err := Purge(context.Background(), config)
	require.NoError(t, err)

	wantSibling := strings.TrimSuffix(config.SourcePath, ".css") + ".purged.min.css"
	assert.Equal(t, wantSibling, result.MinSiblingPath)

	sibling := readOutput(t, wantSibling)
	assert.True(t, strings.HasPrefix(sibling, "/*\nThis file is automatically generated from system.css\n"))
	assert.True(t, strings.HasSuffix(sibling, "\n\n.mb4{margin-bottom:4px}"), sibling)
	assert.NotContains(t, sibling, ".f3")
}

func TestPurge_Safelist(t *testing.T) {
	config := setupProject(t,
		"body{margin:0}\n.is-open{display:block}\n.f3{font-size:3}",
		map[string]string{"a.ts": `const x = 1`},
	)
	config.Safelist = purge.Safelist{
		Standard: []string{"body"},
		Greedy:   []*regexp.Regexp{regexp.MustCompile(`^is-`)},
	}

	result, err := Purge(context.Background(), config)
	require.NoError(t, err)

	out := readOutput(t, result.OutputPath)
	assert.Contains(t, out, "body{margin:0}")
	assert.Contains(t, out, ".is-open{display:block}")
	assert.NotContains(t, out, ".f3")
}

func TestPurge_Errors(t *testing.T) {
	tests := []struct {
		name    string
		css     string
		mutate  func(t *testing.T, c *Config)
		wantErr error
	}{
		{
			name: "missing stylesheet",
			css:  ".a{}",
			mutate: func(t *testing.T, c *Config) {
				c.SourcePath = filepath.Join(filepath.Dir(c.SourcePath), "nope.css")
				c.OutputPath = filepath.Join(t.TempDir(), "out.css")
			},
			wantErr: ErrMissingInput,
		},
		{
			name: "missing content root",
			css:  ".a{}",
			mutate: func(t *testing.T, c *Config) {
				c.ContentDir = filepath.Join(c.ContentDir, "missing")
			},
			wantErr: ErrMissingInput,
		},
		{
			name: "content root is a file",
			css:  ".a{}",
			mutate: func(t *testing.T, c *Config) {
				c.ContentDir = c.SourcePath
			},
			wantErr: ErrMissingInput,
		},
		{
			name:    "blank stylesheet",
			css:     "  \n\t\n",
			wantErr: ErrEmptyResult,
		},
		{
			name:    "no complete construct",
			css:     ".a { color: red;",
			wantErr: ErrEmptyResult,
		},
		{
			name: "output directory blocked by a file",
			css:  ".a{}",
			mutate: func(t *testing.T, c *Config) {
				c.OutputPath = filepath.Join(c.SourcePath, "out.css")
			},
			wantErr: ErrWriteFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := setupProject(t, tt.css, map[string]string{"a.html": `<a class="a">`})
			if tt.mutate != nil {
				tt.mutate(t, &config)
			}

			result, err := Purge(context.Background(), config)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)

			if tt.wantErr != ErrWriteFailure {
				_, statErr := os.Stat(config.withDefaults().OutputPath)
				assert.True(t, os.IsNotExist(statErr), "no output on failure")
			}
		})
	}
}

func TestPurge_NoTempFilesLeft(t *testing.T) {
	config := setupProject(t, ".a{}", map[string]string{"a.html": `<a class="a">`})
	config.MinSibling = true

	_, err := Purge(context.Background(), config)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(config.SourcePath))
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"system.css", "system.purged.css", "system.purged.min.css"}, names)

	info, err := os.Stat(filepath.Join(filepath.Dir(config.SourcePath), "system.purged.css"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestPurge_SiblingFailureLeavesNoOutput(t *testing.T) {
	config := setupProject(t, ".a{}\n.b{}", map[string]string{"a.html": `<a class="a">`})
	config.MinSibling = true

	// a non-empty directory where the sibling goes makes its rename fail
	output := DefaultOutputPath(config.SourcePath)
	sibling := MinSiblingPath(output)
	require.NoError(t, os.MkdirAll(filepath.Join(sibling, "keep"), 0o755))

	result, err := Purge(context.Background(), config)
	require.ErrorIs(t, err, ErrWriteFailure)
	assert.Nil(t, result)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "output must not be written")

	entries, err := os.ReadDir(filepath.Dir(output))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, isTempArtifact(e.Name()), "temp file left: %s", e.Name())
	}
}

func TestPurge_SiblingFailureKeepsPreviousOutput(t *testing.T) {
	config := setupProject(t, ".a{}\n.b{}", map[string]string{"a.html": `<a class="a">`})
	config.MinSibling = true

	output := DefaultOutputPath(config.SourcePath)
	require.NoError(t, os.WriteFile(output, []byte("previous run"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(MinSiblingPath(output), "keep"), 0o755))

	_, err := Purge(context.Background(), config)
	require.ErrorIs(t, err, ErrWriteFailure)
	assert.Equal(t, "previous run", readOutput(t, output))
}

func TestWriteFiles_RestoresReplacedTargets(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.css")
	second := filepath.Join(dir, "second.css")
	blocked := filepath.Join(dir, "blocked.css")

	require.NoError(t, os.WriteFile(second, []byte("old second"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "keep"), 0o755))

	// renamed last to first: third and second succeed, the blocked target fails
	err := writeFiles([]pendingFile{
		{Path: blocked, Content: "blocked"},
		{Path: second, Content: "new second"},
		{Path: first, Content: "new first"},
	})
	require.ErrorIs(t, err, ErrWriteFailure)

	assert.Equal(t, "old second", readOutput(t, second))
	_, statErr := os.Stat(first)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPurge_OverwritesPreviousOutput(t *testing.T) {
	config := setupProject(t, ".a{}\n.b{}", map[string]string{"a.html": `<a class="a">`})

	first, err := Purge(context.Background(), config)
	require.NoError(t, err)
	assert.NotContains(t, readOutput(t, first.OutputPath), ".b{}")

	require.NoError(t, os.WriteFile(filepath.Join(config.ContentDir, "a.html"), []byte(`<a class="b">`), 0o644))

	second, err := Purge(context.Background(), config)
	require.NoError(t, err)
	out := readOutput(t, second.OutputPath)
	assert.Contains(t, out, ".b{}")
	assert.NotContains(t, out, ".a{}")
}

func TestKindCounts(t *testing.T) {
	constructs := purge.Tokenize("/* a */\n:root{--x:1}\n.a{}\n.b{}\n@media print{.a{}}")
	assert.Equal(t, map[string]int{"comment": 1, "root": 1, "rule": 2, "media": 1}, kindCounts(constructs))
}

func TestCopy(t *testing.T) {
	stylesheet := ".mb4{margin-bottom:4px}\n.f3{font-size:3}\n"
	config := setupProject(t, stylesheet, nil)
	config.OutputPath = filepath.Join(filepath.Dir(config.SourcePath), "system-styles.css")

	result, err := Copy(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, purge.ModeCopied, result.Mode)
	assert.Equal(t, 2, result.ClassesDefined)
	assert.Equal(t, 2, result.ClassesKept)

	out := readOutput(t, config.OutputPath)
	assert.Contains(t, out, "Last copied: 2026-01-02T03:04:05Z\n")
	assert.NotContains(t, out, "Reduction")
	assert.True(t, strings.HasSuffix(out, "*/\n\n"+stylesheet))
}

func TestCopy_MissingStylesheet(t *testing.T) {
	_, err := Copy(context.Background(), Config{
		SourcePath: filepath.Join(t.TempDir(), "missing.css"),
	})
	require.ErrorIs(t, err, ErrMissingInput)
}

func TestCopy_Cancelled(t *testing.T) {
	config := setupProject(t, ".a{}", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Copy(ctx, config)
	require.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrUnexpected)

	_, statErr := os.Stat(DefaultOutputPath(config.SourcePath))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfigDefaults(t *testing.T) {
	config := Config{}.withDefaults()

	assert.Equal(t, "src", config.ContentDir)
	assert.Equal(t, "styles/system.css", config.SourcePath)
	assert.Equal(t, "styles/system.purged.css", config.OutputPath)
	assert.Equal(t, DefaultExtensions, config.Extensions)
	assert.NotNil(t, config.Logger)
	assert.NotNil(t, config.Now)

	assert.Equal(t, "out/a.purged.min.css", MinSiblingPath("out/a.purged.css"))
}
