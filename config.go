package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	settingsName = ".articles"
	envPrefix    = "ARTICLES"
)

// ConfigOverrides allows overriding settings from command-line flags
type ConfigOverrides struct {
	SettingsPath *string
	Root         *string
}

// Settings locates the two stores and the site configuration. Relative paths
// resolve against Root.
type Settings struct {
	Root         string `mapstructure:"root"`
	PublishedDir string `mapstructure:"published_dir"`
	DraftDir     string `mapstructure:"draft_dir"`
	SiteConfig   string `mapstructure:"site_config"`
}

// PublishedPath returns the published store root
func (s *Settings) PublishedPath() string {
	return s.resolve(s.PublishedDir)
}

// DraftPath returns the draft store root
func (s *Settings) DraftPath() string {
	return s.resolve(s.DraftDir)
}

// SiteConfigPath returns the site configuration holding the nav: block
func (s *Settings) SiteConfigPath() string {
	return s.resolve(s.SiteConfig)
}

// Store returns the store of the given kind
func (s *Settings) Store(kind StoreKind) Store {
	if kind == StoreDraft {
		return Store{Kind: StoreDraft, Root: s.DraftPath()}
	}
	return Store{Kind: StorePublished, Root: s.PublishedPath()}
}

func (s *Settings) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Root, path)
}

func (s *Settings) validate() error {
	required := []struct{ key, value string }{
		{"root", s.Root},
		{"published_dir", s.PublishedDir},
		{"draft_dir", s.DraftDir},
		{"site_config", s.SiteConfig},
	}
	for _, setting := range required {
		if strings.TrimSpace(setting.value) == "" {
			return fmt.Errorf("setting %s must not be empty", setting.key)
		}
	}
	if filepath.Clean(s.PublishedPath()) == filepath.Clean(s.DraftPath()) {
		return fmt.Errorf("published_dir and draft_dir both resolve to %s", s.PublishedPath())
	}
	return nil
}

// loadSettings reads settings from defaults, an optional settings file and
// ARTICLES_* environment variables, in increasing priority. Flag overrides
// win over all of them.
func loadSettings(overrides *ConfigOverrides) (*Settings, error) {
	v := viper.New()

	v.SetDefault("root", ".")
	v.SetDefault("published_dir", "docs")
	v.SetDefault("draft_dir", "drafts")
	v.SetDefault("site_config", "mkdocs.yml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if overrides == nil {
		overrides = &ConfigOverrides{}
	}
	if overrides.Root != nil {
		v.Set("root", *overrides.Root)
	}

	v.SetConfigType("yaml")
	explicit := overrides.SettingsPath != nil
	if explicit {
		v.SetConfigFile(*overrides.SettingsPath)
	} else {
		v.AddConfigPath(v.GetString("root"))
		v.SetConfigName(settingsName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}
