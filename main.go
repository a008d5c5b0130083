package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command
type rootOptions struct {
	settingsPath string
	root         string
	listOnly     bool
	overwrite    bool
	debugMode    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "articles",
		Short: "Publish and unpublish MkDocs articles",
		Long: `Moves markdown articles between docs/ (published) and drafts/ and
regenerates the nav: block of mkdocs.yml from what is published.

Without a subcommand an interactive session asks whether to publish,
unpublish or list, then which articles to move (e.g. "1 3 5-7").`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := opts.newManager(cmd)
			if err != nil {
				return err
			}
			if opts.listOnly {
				return runList(cmd.OutOrStdout(), manager)
			}
			return runInteractive(newSession(cmd), manager)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.settingsPath, "config", "", "settings file (default is <root>/.articles.yaml)")
	flags.StringVar(&opts.root, "root", "", "directory holding docs/, drafts/ and mkdocs.yml (default is .)")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "overwrite destination files that already exist")
	flags.BoolVar(&opts.overwrite, "force", false, "alias for --overwrite")
	flags.BoolVar(&opts.debugMode, "debug", false, "enable debug logging")
	_ = flags.MarkHidden("force")

	rootCmd.Flags().BoolVar(&opts.listOnly, "list", false, "list published and draft articles")

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newNavCmd(opts))
	rootCmd.AddCommand(newMigrateCmd(opts))

	return rootCmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List published and draft articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := opts.newManager(cmd)
			if err != nil {
				return err
			}
			return runList(cmd.OutOrStdout(), manager)
		},
	}
}

func newNavCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Regenerate the nav: block of the site configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := opts.newManager(cmd)
			if err != nil {
				return err
			}
			if dryRun {
				nav, err := manager.RenderNav()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), nav)
				return nil
			}
			if err := manager.UpdateNav(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), navUpdatedMessage)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the nav: block instead of writing it")
	return cmd
}

// newManager loads settings and builds the manager for one invocation
func (o *rootOptions) newManager(cmd *cobra.Command) (*ArticleManager, error) {
	logger := newLogger(cmd.ErrOrStderr(), o.debugMode)

	overrides := &ConfigOverrides{}
	if o.settingsPath != "" {
		overrides.SettingsPath = &o.settingsPath
	}
	if o.root != "" {
		overrides.Root = &o.root
	}

	settings, err := loadSettings(overrides)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	logger.Debug("settings loaded",
		"published", settings.PublishedPath(),
		"drafts", settings.DraftPath(),
		"site_config", settings.SiteConfigPath())

	manager := NewArticleManager(settings, logger)
	manager.SetOverwrite(o.overwrite)
	return manager, nil
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "articles",
		Level:  log.WarnLevel,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// execute runs cmd and maps its error to a process exit code
func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	code := exitFailure
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	return code
}

func main() {
	os.Exit(execute(newRootCmd()))
}
