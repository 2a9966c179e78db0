package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dustin/go-wikicat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLinks = "-- MySQL dump\n" +
	"INSERT INTO `categorylinks` VALUES " +
	"(1,'Topniveau_for_emner','','','','uppercase','subcat')," +
	"(2,'Topniveau_for_emner','','','','uppercase','subcat')," +
	"(3,'Kunst','','','','uppercase','subcat')," +
	"(4,'Film','','','','uppercase','subcat')," +
	"(5,'Samfund','','','','uppercase','subcat');\n" +
	"INSERT INTO `categorylinks` VALUES " +
	"(100,'Danske_film','','','','uppercase','page');\n"

const testPages = "INSERT INTO `page` VALUES " +
	"(1,14,'Kunst',0,0,0.1,'','',1,1,'wikitext',NULL)," +
	"(2,14,'Samfund',0,0,0.1,'','',1,1,'wikitext',NULL)," +
	"(3,14,'Film',0,0,0.1,'','',1,1,'wikitext',NULL)," +
	"(4,14,'Danske_film',0,0,0.1,'','',1,1,'wikitext',NULL)," +
	"(5,14,'Sport',0,0,0.1,'','',1,1,'wikitext',NULL)," +
	"(100,0,'Olsen-banden',0,0,0.1,'','',1,1,'wikitext',NULL);\n"

func xmlPage(title, text string) string {
	return "<page><title>" + title + "</title><ns>0</ns><id>1</id>" +
		"<revision><id>1</id><text>" + text + "</text></revision></page>\n"
}

var testXML = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/">
<siteinfo><sitename>Wikipedia</sitename><dbname>dawiki</dbname></siteinfo>
` +
	xmlPage("Kategori:Film", "[[Kategori:Kunst]]") +
	xmlPage("Olsen-banden", "'''Olsen-banden''' er en film.\n\nMere.\n[[Kategori:Danske film|Olsen]]") +
	xmlPage("Fodbold", "'''Fodbold''' er en sport.\n[[Kategori:Sport]]") +
	xmlPage("Redirect", "#REDIRECT [[Fodbold]]") +
	`</mediawiki>
`

func writeGzip(t *testing.T, fn, data string) {
	f, err := os.Create(fn)
	require.NoError(t, err)
	z := gzip.NewWriter(f)
	_, err = io.WriteString(z, data)
	require.NoError(t, err)
	require.NoError(t, z.Close())
	require.NoError(t, f.Close())
}

func run(t *testing.T, args ...string) string {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), "wikicat %v: %s", args, out.String())
	return out.String()
}

func TestPipeline(t *testing.T) {
	dir := t.TempDir()
	writeGzip(t, filepath.Join(dir, "dawiki-latest-categorylinks.sql.gz"), testLinks)
	writeGzip(t, filepath.Join(dir, "dawiki-latest-page.sql.gz"), testPages)
	xmlfn := filepath.Join(dir, "dawiki-pages.xml")
	require.NoError(t, os.WriteFile(xmlfn, []byte(testXML), 0644))

	cfg := filepath.Join(dir, "da-config.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{
		"prefix": "da",
		"category": "Kategori",
		"infobox": "Infoboks",
		"file": "Fil",
		"top_level": "Topniveau_for_emner"
	}`), 0644))
	common := []string{"--config", cfg, "--data-dir", dir}

	run(t, append([]string{"categories"}, common...)...)
	edges, err := readEdgesFile(filepath.Join(dir, "dawiki-category-edges.csv"))
	require.NoError(t, err)
	assert.Equal(t, []wikicat.CategoryEdge{
		{Child: "Kunst", Parent: "Topniveau_for_emner"},
		{Child: "Samfund", Parent: "Topniveau_for_emner"},
		{Child: "Film", Parent: "Kunst"},
		{Child: "Danske_film", Parent: "Film"},
		{Child: "Sport", Parent: "Samfund"},
	}, edges)

	dbfn := filepath.Join(dir, "graph.db")
	run(t, append([]string{"resolve", "--sqlite", dbfn}, common...)...)
	r, err := os.Open(filepath.Join(dir, "dawiki-all-parents.csv"))
	require.NoError(t, err)
	resolved, err := wikicat.ReadResolved(r)
	r.Close()
	require.NoError(t, err)
	assert.Equal(t, []wikicat.ResolvedEdge{
		{Child: "Film", Parent: "Kunst"},
		{Child: "Sport", Parent: "Samfund"},
		{Child: "Danske_film", Parent: "Kunst"},
	}, resolved)

	out := run(t, "lookup", "--sqlite", dbfn, "Danske_film", "Ukendt")
	assert.Equal(t, "Danske_film\tKunst\nUkendt\t(unresolved)\n", out)

	run(t, append([]string{"articles", "-i", xmlfn}, common...)...)
	articles, err := readArticlesFile(filepath.Join(dir, "dawiki-articles.jsonl.gz"))
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "'''Olsen-banden''' er en film.", articles["Olsen-banden"].Text)
	assert.Equal(t, []string{"Sport"}, articles["Fodbold"].Categories)

	run(t, append([]string{"samples", "--turns", "3", "--batch-size", "2"}, common...)...)
	rc, err := wikicat.Open(filepath.Join(dir, "da", "test.jsonl.gz"))
	require.NoError(t, err)
	defer rc.Close()
	d := json.NewDecoder(rc)
	n := 0
	for {
		var b wikicat.Batch
		if err := d.Decode(&b); err == io.EOF {
			break
		} else {
			require.NoError(t, err)
		}
		n++
		assert.ElementsMatch(t, []string{"Kunst", "Samfund"}, b.Labels)
		for i, s := range b.Sentences {
			if strings.Contains(s, "Fodbold") {
				assert.Equal(t, "Samfund", b.Labels[i])
			}
		}
	}
	assert.Equal(t, 3, n)
}

func TestResolveExplicitTop(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "edges.csv")
	require.NoError(t, writeEdgesFile(in, []wikicat.CategoryEdge{
		{Child: "B", Parent: "A"},
		{Child: "C", Parent: "B"},
	}))
	cfg := filepath.Join(dir, "c.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"prefix": "xx"}`), 0644))
	out := filepath.Join(dir, "resolved.csv")

	run(t, "resolve", "--config", cfg, "-i", in, "-o", out, "--top", "A", "--max-depth", "1")
	got, err := readEdgesFile(out)
	require.NoError(t, err)
	assert.Equal(t, []wikicat.CategoryEdge{{Child: "B", Parent: "A"}}, got)
}

func TestLookupNeedsDatabase(t *testing.T) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"lookup", "Film"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
