package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	navKey     = "nav"
	homeLabel  = "Home"
	homePage   = "index.md"
	aboutLabel = "About"
	aboutPage  = "about.md"
)

// navMarker matches the line that starts the generated block. Everything from
// it to the end of the site configuration is replaced on each update.
var navMarker = regexp.MustCompile(`(?m)^nav:\r?$`)

// navSection binds a nav label to a subdirectory of the published store
type navSection struct {
	Label string
	Dir   string
}

// navSections are emitted in this order, and only when they hold articles.
var navSections = []navSection{
	{Label: "LLM Notes", Dir: "llm"},
	{Label: "Agent Architectures", Dir: "agents"},
	{Label: "AI for Science", Dir: "ai_for_science"},
}

// renderNav builds the nav: block for the published store. The output depends
// only on the files present, so repeated calls produce identical text.
//
// Lines are laid out here rather than by the yaml encoder, which switches long
// keys to the explicit "? key" form. Each key and value is still encoded by
// yaml so that titles needing quotes get them.
func renderNav(publishedRoot string) (string, error) {
	articles := scanStore(publishedRoot, reservedArticles)

	var buf strings.Builder
	buf.WriteString(navKey + ":\n")
	if err := writeNavEntry(&buf, navTopIndent, homeLabel, homePage); err != nil {
		return "", err
	}

	for _, section := range navSections {
		prefix := section.Dir + "/"
		var items []Article
		for _, article := range articles {
			if strings.HasPrefix(article.RelPath, prefix) {
				items = append(items, article)
			}
		}
		if len(items) == 0 {
			continue
		}

		label, err := encodeScalar(section.Label)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, "%s- %s:\n", navTopIndent, label)
		for _, article := range items {
			if err := writeNavEntry(&buf, navItemIndent, readTitle(article.AbsPath()), article.RelPath); err != nil {
				return "", err
			}
		}
	}

	if err := writeNavEntry(&buf, navTopIndent, aboutLabel, aboutPage); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const (
	navTopIndent  = "  "
	navItemIndent = "      "
)

// writeNavEntry writes one "- key: value" sequence item
func writeNavEntry(buf *strings.Builder, indent, key, value string) error {
	k, err := encodeScalar(key)
	if err != nil {
		return err
	}
	v, err := encodeScalar(value)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "%s- %s: %s\n", indent, k, v)
	return nil
}

// encodeScalar renders value as a single-line YAML string scalar. Values that
// would read back as numbers or booleans are quoted.
func encodeScalar(value string) (string, error) {
	node := stringNode(strings.ToValidUTF8(value, string(utf8.RuneError)))
	if strings.ContainsAny(node.Value, "\r\n") {
		node.Style = yaml.DoubleQuotedStyle
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("encoding nav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding nav: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// spliceNav replaces the nav: block of document with nav. Without a nav: line
// the block is appended after a blank line. Content before the block is kept
// byte for byte.
func spliceNav(document, nav string) string {
	if loc := navMarker.FindStringIndex(document); loc != nil {
		return document[:loc[0]] + nav
	}
	if !strings.HasSuffix(document, "\n") {
		document += "\n"
	}
	return document + "\n" + nav
}

// stringNode forces string typing so titles such as "2024" or "true" are
// quoted instead of read back as numbers or booleans.
func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
