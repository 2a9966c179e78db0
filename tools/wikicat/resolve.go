package main

import (
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikicat"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) resolveCmd() *cobra.Command {
	var in, out, dbfn string
	var top []string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve every category to its top-level categories",
		Long: `Resolve reads the edge list written by "categories" and links every
category to the top-level categories above it.

The top-level set is given with --top, or else taken to be the direct
children of the configured top_level category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				in = a.cfg.edgesFile()
			}
			if out == "" {
				out = a.cfg.resolvedFile()
			}
			return a.runResolve(in, out, dbfn, top)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&in, "input", "i", "", "edge CSV to read")
	f.StringVarP(&out, "output", "o", "", "resolved edge CSV to write")
	f.StringVar(&dbfn, "sqlite", "", "also write edges and resolved edges to this SQLite database")
	f.StringSliceVar(&top, "top", nil, "top-level categories (default: children of top_level)")
	f.Int("max-depth", wikicat.DefaultMaxDepth, "maximum number of resolution waves")
	bindFlag(a.v, "max_depth", f.Lookup("max-depth"))
	return cmd
}

func (a *app) topLevel(edges []wikicat.CategoryEdge, explicit []string) (wikicat.TopLevelSet, error) {
	if len(explicit) > 0 {
		return wikicat.NewTopLevelSet(explicit...), nil
	}
	if a.cfg.TopLevel == "" {
		return nil, errors.New("no top-level categories: set top_level or pass --top")
	}
	top := wikicat.TopLevelFrom(edges, a.cfg.TopLevel)
	if len(top) == 0 {
		return nil, errors.Errorf("category %q has no subcategories", a.cfg.TopLevel)
	}
	return top, nil
}

func (a *app) runResolve(in, out, dbfn string, explicit []string) error {
	edges, err := readEdgesFile(in)
	if err != nil {
		return err
	}
	top, err := a.topLevel(edges, explicit)
	if err != nil {
		return err
	}
	a.log.Infof("Resolving %s edges against %d top-level categories (max depth %d)",
		humanize.Comma(int64(len(edges))), len(top), a.cfg.MaxDepth)

	resolved := wikicat.Resolve(edges, top, a.cfg.MaxDepth)
	anc := wikicat.Ancestors(resolved)
	ambiguous := 0
	for _, ps := range anc {
		if len(ps) > 1 {
			ambiguous++
		}
	}
	a.log.Infof("Resolved %s categories (%s with more than one top-level category)",
		humanize.Comma(int64(len(anc))), humanize.Comma(int64(ambiguous)))

	w, err := wikicat.Create(out)
	if err != nil {
		return err
	}
	if err := wikicat.WriteResolved(w, resolved); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "closing %v", out)
	}

	if dbfn == "" {
		return nil
	}
	db, err := openGraphDB(dbfn)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.store(edges, resolved); err != nil {
		return err
	}
	a.log.Infof("Wrote category graph to %v", dbfn)
	return nil
}
