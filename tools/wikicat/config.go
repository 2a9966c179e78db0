package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-wikicat"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the per-language pipeline configuration.
type Config struct {
	Prefix      string `mapstructure:"prefix"`
	Category    string `mapstructure:"category"`
	Infobox     string `mapstructure:"infobox"`
	File        string `mapstructure:"file"`
	Redirect    string `mapstructure:"redirect"`
	TopLevel    string `mapstructure:"top_level"`
	DataDir     string `mapstructure:"data_dir"`
	MaxArticles int    `mapstructure:"max_articles"`
	MaxDepth    int    `mapstructure:"max_depth"`
	SQLEncoding string `mapstructure:"sql_encoding"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("prefix", "")
	v.SetDefault("category", wikicat.DefaultMarkers.Category)
	v.SetDefault("infobox", wikicat.DefaultMarkers.Infobox)
	v.SetDefault("file", wikicat.DefaultMarkers.File)
	v.SetDefault("redirect", wikicat.DefaultMarkers.Redirect)
	v.SetDefault("top_level", "")
	v.SetDefault("data_dir", "local_data")
	v.SetDefault("max_articles", 0)
	v.SetDefault("max_depth", wikicat.DefaultMaxDepth)
	v.SetDefault("sql_encoding", "raw")
}

// loadConfig reads the config file (if any), then WIKICAT_*
// environment variables, then whatever flags were bound to v.
func loadConfig(v *viper.Viper, fn string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("wikicat")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fn != "" {
		v.SetConfigFile(fn)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %v", fn)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	return c, c.validate()
}

func (c Config) validate() error {
	switch {
	case c.Prefix == "":
		return errors.New("config: prefix is required (e.g. \"da\")")
	case c.Category == "":
		return errors.New("config: category is required")
	case c.MaxDepth <= 0:
		return errors.Errorf("config: max_depth must be positive, got %d", c.MaxDepth)
	}
	_, err := wikicat.ParseDumpEncoding(c.SQLEncoding)
	return err
}

// Markers gets the extraction markers of the configured wiki.
func (c Config) Markers() wikicat.Markers {
	return wikicat.Markers{
		Category: c.Category,
		File:     c.File,
		Infobox:  c.Infobox,
		Redirect: c.Redirect,
	}
}

func (c Config) path(format string) string {
	return filepath.Join(c.DataDir, fmt.Sprintf(format, c.Prefix))
}

func (c Config) categoryLinksDump() string { return c.path("%swiki-latest-categorylinks.sql.gz") }
func (c Config) pageDump() string          { return c.path("%swiki-latest-page.sql.gz") }
func (c Config) articlesDump() string      { return c.path("%swiki-latest-pages-articles.xml.bz2") }
func (c Config) edgesFile() string         { return c.path("%swiki-category-edges.csv") }
func (c Config) resolvedFile() string      { return c.path("%swiki-all-parents.csv") }
func (c Config) articlesFile() string      { return c.path("%swiki-articles.jsonl.gz") }
func (c Config) samplesFile() string       { return c.path("%s/test.jsonl.gz") }
