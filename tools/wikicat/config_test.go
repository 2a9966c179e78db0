package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dustin/go-wikicat"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	fn := filepath.Join(t.TempDir(), "da-config.json")
	require.NoError(t, os.WriteFile(fn, []byte(body), 0644))
	return fn
}

func TestLoadConfig(t *testing.T) {
	fn := writeConfig(t, `{
		"prefix": "da",
		"category": "Kategori",
		"infobox": "Infoboks",
		"file": "Fil",
		"top_level": "Topniveau_for_emner"
	}`)

	c, err := loadConfig(viper.New(), fn)
	require.NoError(t, err)
	assert.Equal(t, "da", c.Prefix)
	assert.Equal(t, "Topniveau_for_emner", c.TopLevel)
	assert.Equal(t, wikicat.DefaultMaxDepth, c.MaxDepth)
	assert.Equal(t, "local_data", c.DataDir)
	assert.Equal(t, wikicat.Markers{
		Category: "Kategori",
		File:     "Fil",
		Infobox:  "Infoboks",
		Redirect: "#REDIRECT",
	}, c.Markers())
	assert.Equal(t, filepath.Join("local_data", "dawiki-latest-categorylinks.sql.gz"),
		c.categoryLinksDump())
	assert.Equal(t, filepath.Join("local_data", "da", "test.jsonl.gz"), c.samplesFile())
}

func TestLoadConfigEnv(t *testing.T) {
	fn := writeConfig(t, `{"prefix": "lv", "category": "Kategorija"}`)
	t.Setenv("WIKICAT_MAX_DEPTH", "3")
	t.Setenv("WIKICAT_DATA_DIR", "/data")

	c, err := loadConfig(viper.New(), fn)
	require.NoError(t, err)
	assert.Equal(t, 3, c.MaxDepth)
	assert.Equal(t, "/data", c.DataDir)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []string{
		`{"category": "Kategori"}`,
		`{"prefix": "da", "max_depth": 0}`,
		`{"prefix": "da", "sql_encoding": "ebcdic"}`,
	}
	for _, body := range tests {
		_, err := loadConfig(viper.New(), writeConfig(t, body))
		assert.Error(t, err, body)
	}

	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
