package main

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikicat"
	"github.com/dustin/go-wikicat/internal/progress"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) articlesCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Extract cleaned lead paragraphs and category mentions from the page dump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				in = a.cfg.articlesDump()
			}
			if out == "" {
				out = a.cfg.articlesFile()
			}
			return a.runArticles(in, out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&in, "input", "i", "", "pages-articles XML dump to read")
	f.StringVarP(&out, "output", "o", "", "article JSONL to write (gzipped if it ends in .gz)")
	f.Int("max-articles", 0, "stop after this many articles (0 for the whole dump)")
	bindFlag(a.v, "max_articles", f.Lookup("max-articles"))
	return cmd
}

func (a *app) runArticles(in, out string) (err error) {
	r, err := wikicat.Open(in)
	if err != nil {
		return err
	}
	defer r.Close()

	ar, err := wikicat.NewArticleReader(r, a.cfg.Markers(), a.cfg.MaxArticles)
	if err != nil {
		return err
	}
	a.log.Infof("Got site info:  %+v", ar.SiteInfo())

	w, err := wikicat.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %v", out)
		}
	}()
	aw := wikicat.NewArticleWriter(w)

	p := progress.New(a.log, "articles", 10000)
	for {
		var art *wikicat.Article
		art, err = ar.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.Done(err)
			return err
		}
		if err = aw.Write(art); err != nil {
			p.Done(err)
			return err
		}
		p.Add()
	}
	p.Done(nil)
	a.log.Infof("Kept %s articles out of %s pages",
		humanize.Comma(ar.Articles()), humanize.Comma(ar.Pages()))
	return nil
}
