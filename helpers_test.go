package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates path (and its parents) under root with content
func writeFile(t *testing.T, root, path, content string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	return full
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func relPaths(articles []Article) []string {
	paths := make([]string, 0, len(articles))
	for _, a := range articles {
		paths = append(paths, a.RelPath)
	}
	return paths
}

// newTestSite lays out docs/ with the reserved pages and an mkdocs.yml
func newTestSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "docs/index.md", "# Welcome\n")
	writeFile(t, root, "docs/about.md", "# About\n")
	writeFile(t, root, "mkdocs.yml", "site_name: Notes\ntheme:\n  name: material\n\nnav:\n  - Home: index.md\n  - About: about.md\n")
	return root
}

func newTestManager(t *testing.T, root string) *ArticleManager {
	t.Helper()
	return NewArticleManager(&Settings{
		Root:         root,
		PublishedDir: "docs",
		DraftDir:     "drafts",
		SiteConfig:   "mkdocs.yml",
	}, nil)
}

// runCommand executes the CLI against root with stdin and returns its output
func runCommand(t *testing.T, root, stdin string, args ...string) (string, string, int) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--root", root}, args...))
	code := execute(cmd)
	return stdout.String(), stderr.String(), code
}
