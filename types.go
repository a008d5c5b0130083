package main

import (
	"path"
	"path/filepath"
	"strings"
)

const markdownExt = ".md"

// reservedArticles live at the published store root and never show up in
// listings or nav sections.
var reservedArticles = map[string]bool{
	"index.md": true,
	"about.md": true,
}

// StoreKind identifies one of the two article stores
type StoreKind int

const (
	StorePublished StoreKind = iota
	StoreDraft
)

func (k StoreKind) String() string {
	switch k {
	case StorePublished:
		return "published"
	case StoreDraft:
		return "draft"
	default:
		return "unknown"
	}
}

// Store is a root directory holding article files
type Store struct {
	Kind StoreKind
	Root string
}

// Reserved returns the relative paths hidden from this store's listings.
func (s Store) Reserved() map[string]bool {
	if s.Kind == StorePublished {
		return reservedArticles
	}
	return nil
}

// Article is a markdown file identified by its slash-separated path relative
// to a store root. Articles are recomputed on every scan.
type Article struct {
	Root    string
	RelPath string
}

// AbsPath returns the article location on disk
func (a Article) AbsPath() string {
	return filepath.Join(a.Root, filepath.FromSlash(a.RelPath))
}

func isMarkdown(name string) bool {
	return strings.EqualFold(path.Ext(name), markdownExt)
}

// MoveStatus represents the outcome of moving one article
type MoveStatus string

const (
	StatusMoved MoveStatus = "moved"
	StatusError MoveStatus = "error"
)

// MoveResult tracks the outcome of moving each article in a batch
type MoveResult struct {
	RelPath string
	Status  MoveStatus
	Error   error
}
