package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const (
	navUpdatedMessage = "Updated mkdocs nav."
	selectionPrompt   = "Select items (e.g. 1 2 5-7), Enter to cancel: "
)

// moveAction describes one direction of the publish/unpublish menu
type moveAction struct {
	Label string
	Done  string
	From  StoreKind
	To    StoreKind
}

var (
	unpublishAction = moveAction{Label: "Unpublish", Done: "Unpublished", From: StorePublished, To: StoreDraft}
	publishAction   = moveAction{Label: "Publish", Done: "Published", From: StoreDraft, To: StorePublished}
)

// styles renders headings in color on terminals and as plain text elsewhere
type styles struct {
	heading lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// session reads answers line by line. EOF reads as an empty answer.
type session struct {
	in     *bufio.Reader
	out    io.Writer
	styles styles
}

func newSession(cmd *cobra.Command) *session {
	return &session{
		in:     bufio.NewReader(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		styles: newStyles(cmd.OutOrStdout()),
	}
}

func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// storeLabel renders a store directory as "docs/"
func storeLabel(dir string) string {
	return filepath.ToSlash(filepath.Clean(dir)) + "/"
}

// runList prints both stores, one article per line
func runList(w io.Writer, am *ArticleManager) error {
	st := newStyles(w)
	settings := am.Settings()

	printArticles(w, st, fmt.Sprintf("Published (%s):", storeLabel(settings.PublishedDir)), am.Articles(StorePublished))
	fmt.Fprintln(w)
	printArticles(w, st, fmt.Sprintf("Drafts (%s):", storeLabel(settings.DraftDir)), am.Articles(StoreDraft))
	return nil
}

func printArticles(w io.Writer, st styles, heading string, articles []Article) {
	fmt.Fprintln(w, st.heading.Render(heading))
	if len(articles) == 0 {
		fmt.Fprintln(w, st.muted.Render("  (none)"))
		return
	}
	for _, article := range articles {
		fmt.Fprintf(w, "  - %s\n", article.RelPath)
	}
}

// runInteractive asks for an action and a selection, moves the picked
// articles and regenerates the nav.
func runInteractive(s *session, am *ArticleManager) error {
	if err := am.EnsureDraftStore(); err != nil {
		return err
	}

	settings := am.Settings()
	published := storeLabel(settings.PublishedDir)
	drafts := storeLabel(settings.DraftDir)

	fmt.Fprintln(s.out, s.styles.heading.Render("Choose an action:"))
	fmt.Fprintf(s.out, "  1) Unpublish (move %s -> %s)\n", published, drafts)
	fmt.Fprintf(s.out, "  2) Publish   (move %s -> %s)\n", drafts, published)
	fmt.Fprintln(s.out, "  3) List")

	choice, err := s.prompt("Enter 1/2/3 (or q): ")
	if err != nil {
		return err
	}
	if isQuit(choice) {
		return nil
	}

	var action moveAction
	switch choice {
	case "1":
		action = unpublishAction
	case "2":
		action = publishAction
	case "3":
		return runList(s.out, am)
	default:
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("invalid choice %q", choice)}
	}

	candidates := am.Articles(action.From)
	if len(candidates) == 0 {
		fmt.Fprintf(s.out, "No articles available to %s.\n", strings.ToLower(action.Label))
		return nil
	}

	for i, article := range candidates {
		fmt.Fprintf(s.out, "%2d. %s\n", i+1, article.RelPath)
	}

	raw, err := s.prompt(selectionPrompt)
	if err != nil {
		return err
	}
	selection, err := ParseSelection(raw, len(candidates))
	if err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}
	if selection.Kind != SelectionPicked {
		return nil
	}

	if err := am.CheckSiteConfig(); err != nil {
		return err
	}

	picked := make([]Article, 0, len(selection.Indices))
	for _, idx := range selection.Indices {
		picked = append(picked, candidates[idx-1])
	}
	return applyMoves(s.out, am, action, picked)
}

// applyMoves moves articles in order, reporting each one. A failed move stops
// the batch; the nav is still regenerated for the moves that happened.
func applyMoves(w io.Writer, am *ArticleManager, action moveAction, articles []Article) error {
	results, moveErr := am.MoveAll(action.From, action.To, articles)

	moved := 0
	for _, result := range results {
		if result.Status == StatusMoved {
			fmt.Fprintf(w, "%s: %s\n", action.Done, result.RelPath)
			moved++
		}
	}
	if moved == 0 {
		return moveErr
	}

	if err := am.UpdateNav(); err != nil {
		return errors.Join(moveErr, err)
	}
	fmt.Fprintln(w, navUpdatedMessage)
	return moveErr
}
