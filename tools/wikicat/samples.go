package main

import (
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikicat"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type sampleOpts struct {
	articles, resolved, out string
	turns, size, labels     int
	seed                    uint64
}

func (a *app) samplesCmd() *cobra.Command {
	var o sampleOpts
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Draw labeled clustering batches from the articles and resolved categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.articles == "" {
				o.articles = a.cfg.articlesFile()
			}
			if o.resolved == "" {
				o.resolved = a.cfg.resolvedFile()
			}
			if o.out == "" {
				o.out = a.cfg.samplesFile()
			}
			return a.runSamples(o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.articles, "articles", "", "article JSONL to read")
	f.StringVar(&o.resolved, "resolved", "", "resolved edge CSV to read")
	f.StringVarP(&o.out, "output", "o", "", "batch JSONL to write")
	f.IntVar(&o.turns, "turns", 30, "number of batches")
	f.IntVar(&o.size, "batch-size", 5000, "articles per batch")
	f.IntVar(&o.labels, "labels", 1, "keep articles with exactly this many top-level categories")
	f.Uint64Var(&o.seed, "seed", 1, "random seed")
	return cmd
}

// readArticlesFile loads a corpus keyed by title.  Later duplicates
// replace earlier ones.
func readArticlesFile(fn string) (map[string]*wikicat.Article, error) {
	r, err := wikicat.Open(fn)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rv := map[string]*wikicat.Article{}
	ad := wikicat.NewArticleDecoder(r)
	for {
		art, err := ad.Next()
		if err == io.EOF {
			return rv, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %v", fn)
		}
		rv[art.Title] = art
	}
}

func (a *app) runSamples(o sampleOpts) error {
	enc, err := wikicat.ParseDumpEncoding(a.cfg.SQLEncoding)
	if err != nil {
		return err
	}
	articles, err := readArticlesFile(o.articles)
	if err != nil {
		return err
	}
	rr, err := wikicat.Open(o.resolved)
	if err != nil {
		return err
	}
	resolved, err := wikicat.ReadResolved(rr)
	rr.Close()
	if err != nil {
		return err
	}

	labeled := wikicat.LabelArticles(articles, wikicat.Ancestors(resolved), o.labels,
		enc)
	a.log.Infof("Labeled %s of %s articles",
		humanize.Comma(int64(len(labeled))), humanize.Comma(int64(len(articles))))

	rng := rand.New(rand.NewPCG(o.seed, o.seed))
	batches, err := wikicat.Sample(rng, labeled, o.turns, o.size)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(o.out), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	w, err := wikicat.Create(o.out)
	if err != nil {
		return err
	}
	if err := wikicat.WriteBatches(w, batches); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "closing %v", o.out)
	}
	a.log.Infof("Wrote %d batches of %d to %v", len(batches), o.size, o.out)
	return nil
}
