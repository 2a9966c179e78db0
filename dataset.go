package wikicat

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

var edgeHeader = []string{"child", "parent"}

// An EdgeWriter writes child,parent pairs as CSV.
type EdgeWriter struct {
	w      *csv.Writer
	header bool
}

// NewEdgeWriter gets an edge writer.  The header row is written with
// the first edge.
func NewEdgeWriter(w io.Writer) *EdgeWriter {
	return &EdgeWriter{w: csv.NewWriter(w)}
}

// Write writes one pair.
func (ew *EdgeWriter) Write(child, parent string) error {
	if !ew.header {
		ew.header = true
		if err := ew.w.Write(edgeHeader); err != nil {
			return errors.Wrap(err, "writing edge header")
		}
	}
	return errors.Wrap(ew.w.Write([]string{child, parent}), "writing edge")
}

// Flush flushes buffered rows.
func (ew *EdgeWriter) Flush() error {
	ew.w.Flush()
	return errors.Wrap(ew.w.Error(), "flushing edges")
}

// WriteEdges writes a whole edge set, header included.
func WriteEdges(w io.Writer, edges []CategoryEdge) error {
	ew := NewEdgeWriter(w)
	if err := ew.w.Write(edgeHeader); err != nil {
		return errors.Wrap(err, "writing edge header")
	}
	ew.header = true
	for _, e := range edges {
		if err := ew.Write(e.Child, e.Parent); err != nil {
			return err
		}
	}
	return ew.Flush()
}

// WriteResolved writes resolved edges in the same layout as
// WriteEdges.
func WriteResolved(w io.Writer, resolved []ResolvedEdge) error {
	edges := make([]CategoryEdge, len(resolved))
	for i, r := range resolved {
		edges[i] = CategoryEdge(r)
	}
	return WriteEdges(w, edges)
}

// ReadEdges reads a CSV written by WriteEdges or WriteResolved.
func ReadEdges(r io.Reader) ([]CategoryEdge, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(edgeHeader)
	cr.ReuseRecord = true

	var rv []CategoryEdge
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return rv, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading edges")
		}
		if line == 1 && rec[0] == edgeHeader[0] && rec[1] == edgeHeader[1] {
			continue
		}
		rv = append(rv, CategoryEdge{Child: rec[0], Parent: rec[1]})
	}
}

// ReadResolved reads a CSV written by WriteResolved.
func ReadResolved(r io.Reader) ([]ResolvedEdge, error) {
	edges, err := ReadEdges(r)
	if err != nil {
		return nil, err
	}
	rv := make([]ResolvedEdge, len(edges))
	for i, e := range edges {
		rv[i] = ResolvedEdge(e)
	}
	return rv, nil
}

// An ArticleWriter writes articles as JSON lines.
type ArticleWriter struct {
	e *json.Encoder
}

// NewArticleWriter gets an article writer.
func NewArticleWriter(w io.Writer) *ArticleWriter {
	e := json.NewEncoder(w)
	e.SetEscapeHTML(false)
	return &ArticleWriter{e: e}
}

// Write writes one article on its own line.
func (aw *ArticleWriter) Write(a *Article) error {
	return errors.Wrapf(aw.e.Encode(a), "writing article %q", a.Title)
}

// An ArticleDecoder reads articles written by an ArticleWriter.
type ArticleDecoder struct {
	d *json.Decoder
	n int64
}

// NewArticleDecoder gets an article decoder.
func NewArticleDecoder(r io.Reader) *ArticleDecoder {
	return &ArticleDecoder{d: json.NewDecoder(bufio.NewReader(r))}
}

// Next gets the next article; io.EOF at the end of the stream.
func (ad *ArticleDecoder) Next() (*Article, error) {
	rv := new(Article)
	err := ad.d.Decode(rv)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding article %d", ad.n+1)
	}
	ad.n++
	return rv, nil
}
