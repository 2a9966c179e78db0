package main

import (
	"database/sql"

	"github.com/dustin/go-wikicat"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const graphSchema = `
CREATE TABLE IF NOT EXISTS category_edges (
	child  TEXT NOT NULL,
	parent TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS category_edges_child ON category_edges(child);
CREATE TABLE IF NOT EXISTS resolved_edges (
	child  TEXT NOT NULL,
	parent TEXT NOT NULL,
	PRIMARY KEY (child, parent)
);
`

// graphDB is a SQLite copy of the category graph, for poking at with
// the sqlite3 shell.
type graphDB struct {
	conn *sql.DB
}

func openGraphDB(fn string) (*graphDB, error) {
	conn, err := sql.Open("sqlite", fn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", fn)
	}
	if _, err := conn.Exec(graphSchema); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return &graphDB{conn: conn}, nil
}

func (g *graphDB) Close() error {
	return g.conn.Close()
}

// store replaces the graph's contents in a single transaction.
func (g *graphDB) store(edges []wikicat.CategoryEdge, resolved []wikicat.ResolvedEdge) error {
	tx, err := g.conn.Begin()
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback()

	for _, q := range []string{"DELETE FROM category_edges", "DELETE FROM resolved_edges"} {
		if _, err := tx.Exec(q); err != nil {
			return errors.Wrap(err, q)
		}
	}

	ins, err := tx.Prepare("INSERT INTO category_edges (child, parent) VALUES (?, ?)")
	if err != nil {
		return errors.Wrap(err, "preparing edge insert")
	}
	defer ins.Close()
	for _, e := range edges {
		if _, err := ins.Exec(e.Child, e.Parent); err != nil {
			return errors.Wrapf(err, "inserting edge %v", e)
		}
	}

	res, err := tx.Prepare("INSERT INTO resolved_edges (child, parent) VALUES (?, ?)")
	if err != nil {
		return errors.Wrap(err, "preparing resolved insert")
	}
	defer res.Close()
	for _, e := range resolved {
		if _, err := res.Exec(e.Child, e.Parent); err != nil {
			return errors.Wrapf(err, "inserting resolved edge %v", e)
		}
	}

	return errors.Wrap(tx.Commit(), "committing graph")
}

// ancestors gets the top-level categories of a category.
func (g *graphDB) ancestors(child string) ([]string, error) {
	rows, err := g.conn.Query(
		"SELECT parent FROM resolved_edges WHERE child = ? ORDER BY parent", child)
	if err != nil {
		return nil, errors.Wrap(err, "querying ancestors")
	}
	defer rows.Close()

	var rv []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, errors.Wrap(err, "scanning ancestor")
		}
		rv = append(rv, p)
	}
	return rv, rows.Err()
}
