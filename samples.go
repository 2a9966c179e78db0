package wikicat

import (
	"encoding/json"
	"io"
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"
)

// Topics gets the distinct top-level categories an article's
// category mentions resolve to, in mention order.
//
// enc is the encoding the table dumps behind ancestors were read
// with.
func Topics(a *Article, ancestors map[string][]string, enc DumpEncoding) []string {
	var rv []string
	seen := map[string]bool{}
	for _, c := range a.Categories {
		for _, p := range ancestors[enc.Misread(CategoryKey(c))] {
			if !seen[p] {
				seen[p] = true
				rv = append(rv, p)
			}
		}
	}
	return rv
}

// A LabeledArticle is an article's text tagged with one of its
// top-level categories.
type LabeledArticle struct {
	Title string
	Text  string
	Label string
}

// LabelArticles tags each article with the top-level categories its
// category mentions resolve to.
//
// ancestors maps category titles to their top-level categories (see
// Ancestors).  Only articles with exactly labels distinct top-level
// categories are kept, one LabeledArticle per category.  Output is
// ordered by title.
func LabelArticles(articles map[string]*Article, ancestors map[string][]string,
	labels int, enc DumpEncoding) []LabeledArticle {

	titles := make([]string, 0, len(articles))
	for t := range articles {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	var rv []LabeledArticle
	for _, t := range titles {
		a := articles[t]
		found := Topics(a, ancestors, enc)
		if len(found) != labels {
			continue
		}
		for _, p := range found {
			rv = append(rv, LabeledArticle{Title: a.Title, Text: a.Text, Label: p})
		}
	}
	return rv
}

// A Batch is one clustering task: texts and their labels, in step.
type Batch struct {
	Sentences []string `json:"sentences"`
	Labels    []string `json:"labels"`
}

// Sample draws turns batches of size labeled articles.  Each batch is
// drawn without replacement; batches are independent of each other.
func Sample(rng *rand.Rand, labeled []LabeledArticle, turns, size int) ([]Batch, error) {
	if turns < 0 || size < 0 {
		return nil, errors.Errorf("can't draw %d batches of %d", turns, size)
	}
	if size > len(labeled) {
		return nil, errors.Errorf("can't draw %d of %d labeled articles",
			size, len(labeled))
	}

	rv := make([]Batch, 0, turns)
	for i := 0; i < turns; i++ {
		b := Batch{
			Sentences: make([]string, 0, size),
			Labels:    make([]string, 0, size),
		}
		for _, j := range rng.Perm(len(labeled))[:size] {
			b.Sentences = append(b.Sentences, labeled[j].Text)
			b.Labels = append(b.Labels, labeled[j].Label)
		}
		rv = append(rv, b)
	}
	return rv, nil
}

// WriteBatches writes batches as JSON lines.
func WriteBatches(w io.Writer, batches []Batch) error {
	e := json.NewEncoder(w)
	e.SetEscapeHTML(false)
	for i := range batches {
		if err := e.Encode(&batches[i]); err != nil {
			return errors.Wrapf(err, "writing batch %d", i)
		}
	}
	return nil
}
