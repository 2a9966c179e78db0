package wikicat

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(title, text string) string {
	return `  <page>
    <title>` + title + `</title>
    <ns>0</ns>
    <id>1</id>
    <revision>
      <id>2</id>
      <timestamp>2024-01-01T00:00:00Z</timestamp>
      <model>wikitext</model>
      <text bytes="10" xml:space="preserve">` + text + `</text>
    </revision>
  </page>
`
}

const dumpHead = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10" xml:lang="da">
  <siteinfo>
    <sitename>Wikipedia</sitename>
    <dbname>dawiki</dbname>
    <namespaces>
      <namespace key="0" case="first-letter" />
      <namespace key="14" case="first-letter">Kategori</namespace>
    </namespaces>
  </siteinfo>
`

func testDumpXML() string {
	return dumpHead +
		page("Kategori:Film", "[[Kategori:Kunst]]") +
		page("Olsen-banden", `{{Infoboks film
| navn = Olsen-banden
}}
[[Fil:Olsen.jpg|thumb|Egon]]
'''Olsen-banden''' er en dansk film.

Den blev fulgt op af flere.
[[Kategori:Danske film|Olsen]]
[[Kategori:Film fra 1968]]`) +
		page("Olsenbanden", "#REDIRECT [[Olsen-banden]]") +
		page("Tom", "") +
		page("", "text without a title") +
		page("Karen Blixen", `'''Karen Blixen''' var en forfatter.
[[Kategori:Danske forfattere]]`) +
		`</mediawiki>
`
}

func readArticles(t *testing.T, ar *ArticleReader) []*Article {
	var rv []*Article
	for {
		a, err := ar.Next()
		if err == io.EOF {
			return rv
		}
		require.NoError(t, err)
		rv = append(rv, a)
	}
}

func TestArticleReader(t *testing.T) {
	ar, err := NewArticleReader(strings.NewReader(testDumpXML()), danish, 0)
	require.NoError(t, err)
	assert.Equal(t, "dawiki", ar.SiteInfo().DBName)

	got := readArticles(t, ar)
	exp := []*Article{
		{
			Title:      "Olsen-banden",
			Text:       "'''Olsen-banden''' er en dansk film.",
			Categories: []string{"Danske film|Olsen", "Film fra 1968"},
		},
		{
			Title:      "Karen Blixen",
			Text:       "'''Karen Blixen''' var en forfatter.\n[[Kategori:Danske forfattere]]",
			Categories: []string{"Danske forfattere"},
		},
	}
	assert.Equal(t, exp, got)
	assert.EqualValues(t, 6, ar.Pages())
	assert.EqualValues(t, 2, ar.Articles())
}

func TestArticleReaderMax(t *testing.T) {
	ar, err := NewArticleReader(strings.NewReader(testDumpXML()), danish, 1)
	require.NoError(t, err)

	got := readArticles(t, ar)
	require.Len(t, got, 1)
	assert.Equal(t, "Olsen-banden", got[0].Title)
	// Stops without reading past the article it needed.
	assert.EqualValues(t, 2, ar.Pages())

	_, err = ar.Next()
	assert.Equal(t, io.EOF, err)
}

func TestArticleReaderNoCategoryPages(t *testing.T) {
	var b strings.Builder
	b.WriteString(dumpHead)
	for i := 0; i < 20; i++ {
		b.WriteString(page("Kategori:Side", "[[Kategori:Top]]"))
	}
	b.WriteString("</mediawiki>\n")

	ar, err := NewArticleReader(strings.NewReader(b.String()), danish, 0)
	require.NoError(t, err)
	assert.Empty(t, readArticles(t, ar))
	assert.EqualValues(t, 20, ar.Pages())
}

func TestArticleReaderWithoutSiteInfo(t *testing.T) {
	in := "<mediawiki>" + page("Solo", "Bare tekst.") + "</mediawiki>"
	ar, err := NewArticleReader(strings.NewReader(in), danish, 0)
	require.NoError(t, err)

	got := readArticles(t, ar)
	require.Len(t, got, 1)
	assert.Equal(t, "Bare tekst.", got[0].Text)
	assert.Empty(t, got[0].Categories)
}

func TestArticleReaderTruncated(t *testing.T) {
	in := testDumpXML()
	in = in[:strings.Index(in, "Karen Blixen")]

	ar, err := NewArticleReader(strings.NewReader(in), danish, 0)
	require.NoError(t, err)

	_, err = ar.Next()
	require.NoError(t, err)
	_, err = ar.Next()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}

func TestOpenCompressed(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "articles.jsonl.gz")
	w, err := Create(fn)
	require.NoError(t, err)
	aw := NewArticleWriter(w)
	require.NoError(t, aw.Write(&Article{Title: "A & B", Text: "<x>", Categories: []string{"C"}}))
	require.NoError(t, w.Close())

	r, err := Open(fn)
	require.NoError(t, err)
	defer r.Close()

	ad := NewArticleDecoder(r)
	a, err := ad.Next()
	require.NoError(t, err)
	assert.Equal(t, &Article{Title: "A & B", Text: "<x>", Categories: []string{"C"}}, a)
	_, err = ad.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpenNotGzip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bad.sql.gz")
	require.NoError(t, os.WriteFile(fn, []byte("plain text, not gzip"), 0644))

	_, err := Open(fn)
	assert.Error(t, err)
}

func TestArticleReaderBzip2(t *testing.T) {
	r, err := Open(filepath.Join("testdata", "pages.xml.bz2"))
	require.NoError(t, err)
	defer r.Close()

	ar, err := NewArticleReader(r, danish, 0)
	require.NoError(t, err)
	assert.Equal(t, "dawiki", ar.SiteInfo().DBName)

	got := readArticles(t, ar)
	require.Len(t, got, 1500)
	assert.Equal(t, "Artikel 1", got[0].Title)
	assert.Equal(t, "'''Artikel 1''' handler om emne nummer 7919.", got[0].Text)
	assert.Equal(t, []string{"Emne 1"}, got[0].Categories)
}

func TestArticleReaderBzip2Truncated(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "pages.xml.bz2"))
	require.NoError(t, err)
	fn := filepath.Join(t.TempDir(), "pages.xml.bz2")
	require.NoError(t, os.WriteFile(fn, data[:len(data)*2/3], 0644))

	r, err := Open(fn)
	require.NoError(t, err)
	defer r.Close()

	ar, err := NewArticleReader(r, danish, 0)
	require.NoError(t, err)
	n := 0
	for {
		_, err = ar.Next()
		if err != nil {
			break
		}
		n++
	}
	assert.NotEqual(t, io.EOF, err)
	assert.Positive(t, n)
	assert.Less(t, n, 1500)
}
