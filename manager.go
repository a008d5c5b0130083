// manager.go
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/adrg/frontmatter"
	"github.com/charmbracelet/log"
)

// ErrSiteConfigMissing is returned when the site configuration to rewrite
// does not exist.
var ErrSiteConfigMissing = errors.New("missing site configuration")

// ArticleManager moves articles between stores and keeps the nav in sync
type ArticleManager struct {
	settings  *Settings
	logger    *log.Logger
	overwrite bool
}

// NewArticleManager creates a manager for the stores described by settings
func NewArticleManager(settings *Settings, logger *log.Logger) *ArticleManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ArticleManager{
		settings: settings,
		logger:   logger,
	}
}

// SetOverwrite sets the overwrite flag
func (am *ArticleManager) SetOverwrite(overwrite bool) {
	am.overwrite = overwrite
}

// Settings returns the settings the manager was created with
func (am *ArticleManager) Settings() *Settings {
	return am.settings
}

// Articles lists the eligible articles of a store
func (am *ArticleManager) Articles(kind StoreKind) []Article {
	store := am.settings.Store(kind)
	articles := scanStore(store.Root, store.Reserved())
	am.logger.Debug("scanned store", "store", kind, "root", store.Root, "articles", len(articles))
	return articles
}

// EnsureDraftStore creates the draft store root if needed
func (am *ArticleManager) EnsureDraftStore() error {
	if err := os.MkdirAll(am.settings.DraftPath(), 0755); err != nil {
		return fmt.Errorf("creating draft store: %w", err)
	}
	return nil
}

// CheckSiteConfig fails with ErrSiteConfigMissing when the site
// configuration is absent
func (am *ArticleManager) CheckSiteConfig() error {
	path := am.settings.SiteConfigPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSiteConfigMissing, path)
		}
		return fmt.Errorf("checking site configuration: %w", err)
	}
	return nil
}

// Move relocates one article between stores using the manager's overwrite policy
func (am *ArticleManager) Move(from, to StoreKind, relPath string) error {
	src := am.settings.Store(from)
	dst := am.settings.Store(to)
	am.logger.Debug("moving article", "path", relPath, "from", from, "to", to, "overwrite", am.overwrite)
	if err := moveArticle(src.Root, dst.Root, relPath, am.overwrite); err != nil {
		return err
	}
	return nil
}

// MoveAll moves articles in order and stops at the first failure. Moves that
// already happened are kept.
func (am *ArticleManager) MoveAll(from, to StoreKind, articles []Article) ([]MoveResult, error) {
	results := make([]MoveResult, 0, len(articles))
	for _, article := range articles {
		if err := am.Move(from, to, article.RelPath); err != nil {
			results = append(results, MoveResult{RelPath: article.RelPath, Status: StatusError, Error: err})
			return results, err
		}
		results = append(results, MoveResult{RelPath: article.RelPath, Status: StatusMoved})
	}
	return results, nil
}

// RenderNav renders the nav: block for the current published store
func (am *ArticleManager) RenderNav() (string, error) {
	return renderNav(am.settings.PublishedPath())
}

// UpdateNav regenerates the nav: block and writes it into the site configuration
func (am *ArticleManager) UpdateNav() error {
	path := am.settings.SiteConfigPath()
	if err := am.CheckSiteConfig(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading site configuration: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading site configuration: %w", err)
	}

	nav, err := am.RenderNav()
	if err != nil {
		return err
	}

	updated := spliceNav(string(data), nav)
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing site configuration: %w", err)
	}
	am.logger.Debug("updated nav", "path", path, "bytes", len(updated))
	return nil
}

// draftMarker is the front matter subset read by FlaggedDrafts
type draftMarker struct {
	Draft bool `yaml:"draft" toml:"draft" json:"draft"`
}

// FlaggedDrafts returns published articles whose front matter sets draft: true.
// Articles with unreadable or malformed front matter are skipped with a warning.
func (am *ArticleManager) FlaggedDrafts() []Article {
	var flagged []Article
	for _, article := range am.Articles(StorePublished) {
		isDraft, err := readDraftMarker(article.AbsPath())
		if err != nil {
			am.logger.Warn("skipping article with unreadable front matter", "path", article.RelPath, "err", err)
			continue
		}
		if isDraft {
			flagged = append(flagged, article)
		}
	}
	return flagged
}

func readDraftMarker(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	var marker draftMarker
	if _, err := frontmatter.Parse(f, &marker); err != nil {
		return false, fmt.Errorf("parsing front matter: %w", err)
	}
	return marker.Draft, nil
}
