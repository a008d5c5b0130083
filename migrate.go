package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type migrateOptions struct {
	assumeYes bool
	dryRun    bool
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var mo migrateOptions
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move published articles marked draft: true to drafts/",
		Long: `Finds published articles whose front matter sets draft: true and moves
them to the draft store, asking for confirmation per article unless --yes is
given. The nav: block is regenerated once at the end if anything moved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := opts.newManager(cmd)
			if err != nil {
				return err
			}
			return runMigrate(newSession(cmd), manager, mo)
		},
	}
	cmd.Flags().BoolVarP(&mo.assumeYes, "yes", "y", false, "move every flagged article without asking")
	cmd.Flags().BoolVar(&mo.dryRun, "dry-run", false, "only list the flagged articles")
	return cmd
}

func runMigrate(s *session, am *ArticleManager, mo migrateOptions) error {
	flagged := am.FlaggedDrafts()
	if len(flagged) == 0 {
		fmt.Fprintln(s.out, "No published articles are marked as drafts.")
		return nil
	}

	fmt.Fprintln(s.out, s.styles.heading.Render(fmt.Sprintf("Found %d published article(s) marked as drafts:", len(flagged))))
	if mo.dryRun {
		for _, article := range flagged {
			fmt.Fprintf(s.out, "  - %s\n", article.RelPath)
		}
		return nil
	}

	if err := am.CheckSiteConfig(); err != nil {
		return err
	}

	var confirmed []Article
	for _, article := range flagged {
		if mo.assumeYes {
			confirmed = append(confirmed, article)
			continue
		}
		answer, err := confirmMove(s, article.RelPath)
		if err != nil {
			return err
		}
		if answer == answerQuit {
			return nil
		}
		if answer == answerYes {
			confirmed = append(confirmed, article)
		} else {
			fmt.Fprintf(s.out, "  SKIP: %s\n", article.RelPath)
		}
	}

	if len(confirmed) == 0 {
		return nil
	}
	return applyMoves(s.out, am, unpublishAction, confirmed)
}

type confirmAnswer int

const (
	answerNo confirmAnswer = iota
	answerYes
	answerQuit
)

func confirmMove(s *session, relPath string) (confirmAnswer, error) {
	for {
		input, err := s.prompt(fmt.Sprintf("  Move %s to drafts? [y/N]: ", relPath))
		if err != nil {
			return answerNo, err
		}
		response := strings.ToLower(input)
		switch {
		case isQuit(response):
			return answerQuit, nil
		case response == "y" || response == "yes":
			return answerYes, nil
		case response == "" || response == "n" || response == "no":
			return answerNo, nil
		default:
			fmt.Fprintln(s.out, "  Please enter y or n.")
		}
	}
}
