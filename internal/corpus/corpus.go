// Package corpus feeds an extracted article corpus to the store
// loaders.
package corpus

import (
	"io"

	"github.com/dustin/go-wikicat"
)

// A Document is an article as the loaders store it.
type Document struct {
	Title      string   `json:"title" bson:"title"`
	Text       string   `json:"text" bson:"text"`
	Categories []string `json:"categories,omitempty" bson:"categories,omitempty"`
	Topics     []string `json:"topics,omitempty" bson:"topics,omitempty"`
}

// A Source reads Documents from an article JSONL file.
type Source struct {
	r         io.ReadCloser
	ad        *wikicat.ArticleDecoder
	ancestors map[string][]string
	enc       wikicat.DumpEncoding
}

// Open opens an article file.  If resolvedfn isn't empty, the
// resolved edges in it are used to fill in each document's Topics;
// enc is the encoding the table dumps behind them were read with.
func Open(articlesfn, resolvedfn string, enc wikicat.DumpEncoding) (*Source, error) {
	var anc map[string][]string
	if resolvedfn != "" {
		r, err := wikicat.Open(resolvedfn)
		if err != nil {
			return nil, err
		}
		resolved, err := wikicat.ReadResolved(r)
		r.Close()
		if err != nil {
			return nil, err
		}
		anc = wikicat.Ancestors(resolved)
	}

	r, err := wikicat.Open(articlesfn)
	if err != nil {
		return nil, err
	}
	return &Source{r: r, ad: wikicat.NewArticleDecoder(r),
		ancestors: anc, enc: enc}, nil
}

// Next gets the next document; io.EOF at the end.
func (s *Source) Next() (*Document, error) {
	a, err := s.ad.Next()
	if err != nil {
		return nil, err
	}
	return &Document{
		Title:      a.Title,
		Text:       a.Text,
		Categories: a.Categories,
		Topics:     wikicat.Topics(a, s.ancestors, s.enc),
	}, nil
}

// Close closes the underlying file.
func (s *Source) Close() error {
	return s.r.Close()
}
