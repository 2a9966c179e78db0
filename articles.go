package wikicat

import (
	"io"
	"strings"
)

// Markers are the wiki-specific tokens the extractor looks for.
type Markers struct {
	// Category namespace name, e.g. "Category" or "Kategori".
	Category string
	// File namespace name used in [[File:...]] references.
	File string
	// Infobox template prefix, e.g. "Infobox" or "Infoboks".
	Infobox string
	// Redirect marker; pages whose text contains it are skipped.
	Redirect string
}

// DefaultMarkers are the English wikipedia markers.
var DefaultMarkers = Markers{
	Category: "Category",
	File:     "File",
	Infobox:  "Infobox",
	Redirect: "#REDIRECT",
}

// An Article is the cleaned lead paragraph of a page along with the
// categories its wikitext mentions.
type Article struct {
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Categories []string `json:"categories"`
}

// Extract builds an article out of a page.
//
// ok is false for pages that aren't articles: category pages,
// redirects, and pages without a title or text.
func (m Markers) Extract(p *Page) (a *Article, ok bool) {
	if p.Title == "" || strings.HasPrefix(p.Title, m.Category) {
		return nil, false
	}
	raw := p.Text()
	if raw == "" || (m.Redirect != "" && strings.Contains(raw, m.Redirect)) {
		return nil, false
	}

	return &Article{
		Title:      p.Title,
		Text:       FirstParagraph(CleanText(raw, m)),
		Categories: FindCategories(raw, m.Category),
	}, true
}

// An ArticleReader emits articles from a page dump.
type ArticleReader struct {
	p   *Parser
	m   Markers
	max int

	pages    int64
	articles int64
}

// NewArticleReader gets an article reader over the given
// (decompressed) XML dump.
//
// At most max articles are read; max <= 0 reads the whole dump.
func NewArticleReader(r io.Reader, m Markers, max int) (*ArticleReader, error) {
	p, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	return &ArticleReader{p: p, m: m, max: max}, nil
}

// SiteInfo gets the site info of the underlying dump.
func (ar *ArticleReader) SiteInfo() SiteInfo {
	return ar.p.SiteInfo
}

// Pages reports how many pages have been read so far.
func (ar *ArticleReader) Pages() int64 {
	return ar.pages
}

// Articles reports how many articles have been emitted so far.
func (ar *ArticleReader) Articles() int64 {
	return ar.articles
}

// Next gets the next article.
//
// io.EOF is returned at the end of the dump, or once max articles
// have been read.  Other errors mean the dump is unreadable from that
// point on.
func (ar *ArticleReader) Next() (*Article, error) {
	for {
		if ar.max > 0 && ar.articles >= int64(ar.max) {
			return nil, io.EOF
		}
		p, err := ar.p.Next()
		if err != nil {
			return nil, err
		}
		ar.pages++
		if a, ok := ar.m.Extract(p); ok {
			ar.articles++
			return a, nil
		}
	}
}
