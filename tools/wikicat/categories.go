package main

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikicat"
	"github.com/dustin/go-wikicat/internal/progress"
	"github.com/spf13/cobra"
)

func (a *app) categoriesCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Build the category edge list from the categorylinks and page dumps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.cfg.edgesFile()
			}
			return a.runCategories(out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "edge CSV to write")
	return cmd
}

// eachRecord feeds every record of a table dump to fn.
func (a *app) eachRecord(fn string, what string, f func(wikicat.Record)) error {
	enc, err := wikicat.ParseDumpEncoding(a.cfg.SQLEncoding)
	if err != nil {
		return err
	}
	r, err := wikicat.Open(fn)
	if err != nil {
		return err
	}
	defer r.Close()

	a.log.Infof("Reading %s from %v", what, fn)
	dr := wikicat.NewDumpReader(r, enc)
	p := progress.New(a.log, "records", 1000000)
	for {
		rec, err := dr.Next()
		if err == io.EOF {
			p.Done(nil)
			return nil
		}
		if err != nil {
			p.Done(err)
			return err
		}
		p.Add()
		f(rec)
	}
}

func (a *app) runCategories(out string) error {
	var links []wikicat.CategoryLink
	err := a.eachRecord(a.cfg.categoryLinksDump(), "category links", func(rec wikicat.Record) {
		if l, ok := wikicat.ProjectCategoryLink(rec); ok {
			links = append(links, l)
		}
	})
	if err != nil {
		return err
	}

	titles := map[uint64]string{}
	err = a.eachRecord(a.cfg.pageDump(), "category pages", func(rec wikicat.Record) {
		if p, ok := wikicat.ProjectCategoryPage(rec); ok {
			titles[p.ID] = p.Title
		}
	})
	if err != nil {
		return err
	}

	edges := wikicat.JoinEdges(links, titles)
	a.log.Infof("Joined %s subcategory links against %s category pages: %s edges",
		humanize.Comma(int64(len(links))), humanize.Comma(int64(len(titles))),
		humanize.Comma(int64(len(edges))))

	return writeEdgesFile(out, edges)
}

func writeEdgesFile(fn string, edges []wikicat.CategoryEdge) error {
	w, err := wikicat.Create(fn)
	if err != nil {
		return err
	}
	if err := wikicat.WriteEdges(w, edges); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func readEdgesFile(fn string) ([]wikicat.CategoryEdge, error) {
	r, err := wikicat.Open(fn)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return wikicat.ReadEdges(r)
}
