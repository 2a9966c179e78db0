package wikicat

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// InsertPrefix marks the dump lines that carry rows.  Everything else
// in a table dump (DDL, locks, comments) is skipped unparsed.
const InsertPrefix = "INSERT INTO"

// A Record is one parenthesized tuple from a bulk insert.
//
// Fields are positional and still carry their SQL quoting and
// escaping; a Schema gives them names.
type Record []string

type scanState int

const (
	outside scanState = iota
	inTuple
	inString
)

// A TupleScanner pulls Records out of a single INSERT line.
//
// Commas and parentheses inside quoted strings are literal, and a
// backslash inside a string protects the character after it.  A
// tuple still open when the line runs out (mismatched quoting, or a
// truncated line) is dropped.
type TupleScanner struct {
	line  string
	pos   int
	state scanState
	depth int
	esc   bool
	field strings.Builder
	rec   Record
}

// NewTupleScanner gets a scanner over the given line.
func NewTupleScanner(line string) *TupleScanner {
	return &TupleScanner{line: line}
}

func (ts *TupleScanner) endField() {
	ts.rec = append(ts.rec, strings.TrimSpace(ts.field.String()))
	ts.field.Reset()
}

// Next gets the next complete tuple from the line.
//
// ok is false once the line is exhausted.
func (ts *TupleScanner) Next() (rv Record, ok bool) {
	for ts.pos < len(ts.line) {
		c := ts.line[ts.pos]
		ts.pos++

		switch ts.state {
		case outside:
			if c == '(' {
				ts.state = inTuple
				ts.depth = 1
				ts.rec = nil
				ts.field.Reset()
			}
		case inTuple:
			switch c {
			case '\'':
				ts.state = inString
				ts.field.WriteByte(c)
			case '(':
				ts.depth++
				ts.field.WriteByte(c)
			case ')':
				ts.depth--
				if ts.depth > 0 {
					ts.field.WriteByte(c)
					continue
				}
				ts.endField()
				ts.state = outside
				rv, ts.rec = ts.rec, nil
				return rv, true
			case ',':
				if ts.depth == 1 {
					ts.endField()
				} else {
					ts.field.WriteByte(c)
				}
			default:
				ts.field.WriteByte(c)
			}
		case inString:
			ts.field.WriteByte(c)
			switch {
			case ts.esc:
				ts.esc = false
			case c == '\\':
				ts.esc = true
			case c == '\'':
				ts.state = inTuple
			}
		}
	}
	return nil, false
}

// ParseInsert parses every tuple of a single INSERT line.
//
// Lines that aren't bulk inserts produce nothing.
func ParseInsert(line string) []Record {
	if !strings.HasPrefix(line, InsertPrefix) {
		return nil
	}
	var rv []Record
	ts := NewTupleScanner(line)
	for {
		r, ok := ts.Next()
		if !ok {
			return rv
		}
		rv = append(rv, r)
	}
}

// Unquote strips one pair of surrounding single quotes from a field.
//
// Escapes inside the string are left alone.
func Unquote(field string) string {
	if len(field) >= 2 && field[0] == '\'' && field[len(field)-1] == '\'' {
		return field[1 : len(field)-1]
	}
	return field
}

// DumpEncoding selects how a dump's bytes become Go strings.
type DumpEncoding int

const (
	// Raw keeps the bytes as they are.  MediaWiki writes UTF-8, so
	// titles come out intact.
	Raw DumpEncoding = iota
	// Latin1 decodes every byte as an ISO-8859-1 code point,
	// reproducing tools that read dumps as Latin-1 text.
	Latin1
)

// ParseDumpEncoding maps a config value to a DumpEncoding.
func ParseDumpEncoding(s string) (DumpEncoding, error) {
	switch strings.ToLower(s) {
	case "", "raw", "utf-8", "utf8":
		return Raw, nil
	case "latin1", "latin-1", "iso-8859-1":
		return Latin1, nil
	}
	return Raw, errors.Errorf("unknown dump encoding %q", s)
}

// Misread gets the title a dump read with this encoding would hold
// for the UTF-8 title s.  Category mentions from the page dump go
// through it so they match titles from the table dumps.
func (e DumpEncoding) Misread(s string) string {
	if e != Latin1 {
		return s
	}
	rv, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return rv
}

// A DumpReader pulls Records out of a whole table dump, one line in
// memory at a time.
type DumpReader struct {
	r     *bufio.Reader
	ts    *TupleScanner
	done  bool
	lines int64
}

// NewDumpReader gets a dump reader over the given (decompressed)
// stream.
func NewDumpReader(r io.Reader, enc DumpEncoding) *DumpReader {
	if enc == Latin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	return &DumpReader{r: bufio.NewReaderSize(r, 1<<20)}
}

// Lines reports how many lines have been read so far.
func (dr *DumpReader) Lines() int64 {
	return dr.lines
}

// nextInsert advances to the next INSERT line.
func (dr *DumpReader) nextInsert() error {
	for !dr.done {
		line, err := dr.r.ReadBytes('\n')
		switch {
		case err == io.EOF:
			dr.done = true
		case err != nil:
			return errors.Wrapf(err, "reading dump line %d", dr.lines+1)
		}
		if len(line) == 0 {
			continue
		}
		dr.lines++
		if bytes.HasPrefix(line, []byte(InsertPrefix)) {
			dr.ts = NewTupleScanner(string(line))
			return nil
		}
	}
	return io.EOF
}

// Next gets the next Record from the dump.
//
// io.EOF is returned after the last record.  Any other error is a
// read failure of the underlying stream and the dump should not be
// trusted past it.
func (dr *DumpReader) Next() (Record, error) {
	for {
		if dr.ts != nil {
			if rec, ok := dr.ts.Next(); ok {
				return rec, nil
			}
			dr.ts = nil
		}
		if err := dr.nextInsert(); err != nil {
			return nil, err
		}
	}
}
