package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"first heading", "# Title\nsome content", "Title"},
		{"with spaces", "  # Spaced Title  \n", "Spaced Title"},
		{"multiple headings", "# First\n## Second\n# Third", "First"},
		{"no heading", "just text\nno heading", ""},
		{"empty content", "", ""},
		{"heading with prefix", "text\n# Real Title\nmore", "Real Title"},
		{"level two only", "## Not It\n", ""},
		{"no space after marker", "#Hashtag\n# Real\n", "Real"},
		{"crlf line endings", "intro\r\n# Windows Title\r\nbody", "Windows Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTitle(tt.content))
		})
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"underscores and hyphens", "llm/my_first-post.md", "My First Post"},
		{"repeated separators", "a__b--c.md", "A B C"},
		{"keeps inner case", "intro-to-iOS.md", "Intro To IOS"},
		{"single word", "notes.md", "Notes"},
		{"digit first", "1st_place.md", "1st Place"},
		{"punctuation inside word", "a+b.md", "A+b"},
		{"parenthesis inside word", "foo(bar).md", "Foo(bar)"},
		{"ampersand inside word", "cat&dog.md", "Cat&dog"},
		{"non-ascii first letter", "élan-vital.md", "Élan Vital"},
		{"invalid utf-8", "caf\xe9-notes.md", "Caf\uFFFD Notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, titleFromFilename(tt.path))
		})
	}
}

func TestReadTitle(t *testing.T) {
	root := t.TempDir()
	withHeading := writeFile(t, root, "hello.md", "---\nauthor: x\n---\n\n# Hello World\n\n# Later\n")
	withoutHeading := writeFile(t, root, "plain_notes.md", "no heading here\n")

	assert.Equal(t, "Hello World", readTitle(withHeading))
	assert.Equal(t, "Plain Notes", readTitle(withoutHeading))
	assert.Equal(t, "Missing File", readTitle(filepath.Join(root, "missing-file.md")), "unreadable files fall back to the name")
}

func TestReadTitleInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	latin1 := writeFile(t, root, "cafe_notes.md", "# Caf\xe9 notes\n")

	title := readTitle(latin1)

	assert.Equal(t, "Cafe Notes", title)
	assert.True(t, utf8.ValidString(title))
}

func TestScanStore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.md", "")
	writeFile(t, root, "about.md", "")
	writeFile(t, root, "Zeta.md", "")
	writeFile(t, root, "alpha.md", "")
	writeFile(t, root, "llm/Beta.MD", "")
	writeFile(t, root, "llm/index.md", "")
	writeFile(t, root, "llm/notes.txt", "")
	writeFile(t, root, "agents/deep/gamma.md", "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "folder.md"), 0755))

	articles := scanStore(root, reservedArticles)

	assert.Equal(t, []string{
		"agents/deep/gamma.md",
		"alpha.md",
		"llm/Beta.MD",
		"llm/index.md",
		"Zeta.md",
	}, relPaths(articles))
	for _, a := range articles {
		assert.Equal(t, root, a.Root)
		assert.FileExists(t, a.AbsPath())
	}
}

func TestScanStoreWithoutReserved(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.md", "")
	writeFile(t, root, "b.md", "")

	assert.Equal(t, []string{"b.md", "index.md"}, relPaths(scanStore(root, nil)))
}

func TestScanStoreMissingRoot(t *testing.T) {
	assert.Empty(t, scanStore(filepath.Join(t.TempDir(), "nope"), reservedArticles))
}

func TestScanStoreSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}

	root := t.TempDir()
	target := writeFile(t, t.TempDir(), "target.md", "# Linked\n")
	require.NoError(t, os.Symlink(target, filepath.Join(root, "linked.md")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.md"), filepath.Join(root, "dangling.md")))
	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(root, "dir.md")))

	assert.Equal(t, []string{"linked.md"}, relPaths(scanStore(root, nil)))
}
