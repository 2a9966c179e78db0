package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) lookupCmd() *cobra.Command {
	var dbfn string
	cmd := &cobra.Command{
		Use:         "lookup category...",
		Short:       "Print the top-level categories of categories in a graph database",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{noConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openGraphDB(dbfn)
			if err != nil {
				return err
			}
			defer db.Close()

			for _, c := range args {
				ps, err := db.ancestors(c)
				if err != nil {
					return err
				}
				if len(ps) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t(unresolved)\n", c)
					continue
				}
				for _, p := range ps {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c, p)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbfn, "sqlite", "", "graph database written by resolve --sqlite")
	if err := cmd.MarkFlagRequired("sqlite"); err != nil {
		panic(err)
	}
	return cmd
}
