// index.go
package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// scanStore lists the markdown articles under root, sorted by lower-cased
// relative path. Reserved paths are left out. A missing root has no articles.
func scanStore(root string, reserved map[string]bool) []Article {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}
	// WalkDir does not descend into a symlinked root
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil
	}

	var articles []Article
	_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are treated as absent
			return nil
		}
		if d.IsDir() || !isMarkdown(d.Name()) {
			return nil
		}
		if !isRegularFile(path, d) {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if reserved[rel] {
			return nil
		}

		articles = append(articles, Article{Root: root, RelPath: rel})
		return nil
	})

	sort.SliceStable(articles, func(i, j int) bool {
		return strings.ToLower(articles[i].RelPath) < strings.ToLower(articles[j].RelPath)
	})
	return articles
}

// isRegularFile resolves symlinks so that only links to regular files count.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// readTitle returns the article title from its first level-1 heading, or one
// derived from the file name. It never fails. Headings that are not valid
// UTF-8 count as unreadable.
func readTitle(path string) string {
	if content, err := os.ReadFile(path); err == nil {
		if title := extractTitle(string(content)); title != "" && utf8.ValidString(title) {
			return title
		}
	}
	return titleFromFilename(path)
}

// extractTitle extracts the first "# " heading from markdown content
func extractTitle(content string) string {
	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

// titleFromFilename turns "my_first-post.md" into "My First Post". Only the
// first letter of each word changes case; invalid UTF-8 becomes U+FFFD.
func titleFromFilename(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = base
	}
	name = strings.ToValidUTF8(name, string(utf8.RuneError))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	upper := cases.Upper(language.Und)
	words := strings.Fields(name)
	for i, word := range words {
		_, size := utf8.DecodeRuneInString(word)
		words[i] = upper.String(word[:size]) + word[size:]
	}
	return strings.Join(words, " ")
}
