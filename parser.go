package wikicat

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// The toplevel site info describing basic dump properties.
type SiteInfo struct {
	SiteName   string `xml:"sitename"`
	DBName     string `xml:"dbname"`
	Base       string `xml:"base"`
	Generator  string `xml:"generator"`
	Case       string `xml:"case"`
	Namespaces []struct {
		Key   string `xml:"key,attr"`
		Case  string `xml:"case,attr"`
		Value string `xml:",chardata"`
	} `xml:"namespaces>namespace"`
}

// A revision to a page.
type Revision struct {
	ID        uint64 `xml:"id"`
	Timestamp string `xml:"timestamp"`
	Model     string `xml:"model"`
	Text      string `xml:"text"`
}

// A wiki page.
type Page struct {
	Title     string     `xml:"title"`
	NS        int        `xml:"ns"`
	ID        uint64     `xml:"id"`
	Revisions []Revision `xml:"revision"`
}

// Text gets the wikitext of the page's latest revision.
func (p *Page) Text() string {
	if len(p.Revisions) == 0 {
		return ""
	}
	return p.Revisions[len(p.Revisions)-1].Text
}

// That which emits wiki pages.
//
// Exactly one page is decoded at a time, so memory use doesn't grow
// with the dump.
type Parser struct {
	// The toplevel site info.  Empty if the dump has none.
	SiteInfo SiteInfo

	x       *xml.Decoder
	pending *xml.StartElement
}

// NewParser gets a wikipedia dump parser reading from the given
// (decompressed) reader.
func NewParser(r io.Reader) (*Parser, error) {
	d := xml.NewDecoder(r)
	p := &Parser{x: d}

	// Find the root element, then peek at the first child for
	// siteinfo.
	root := false
	for {
		t, err := d.Token()
		if err == io.EOF && root {
			return p, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading dump header")
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		if !root {
			root = true
			continue
		}
		switch se.Name.Local {
		case "siteinfo":
			if err := d.DecodeElement(&p.SiteInfo, &se); err != nil {
				return nil, errors.Wrap(err, "decoding siteinfo")
			}
		case "page":
			p.pending = &se
		default:
			if err := d.Skip(); err != nil {
				return nil, errors.Wrapf(err, "skipping %v", se.Name.Local)
			}
			continue
		}
		return p, nil
	}
}

// Next gets the next page from the parser.
//
// io.EOF is returned at the end of the dump.
func (p *Parser) Next() (*Page, error) {
	start := p.pending
	p.pending = nil
	for start == nil {
		t, err := p.x.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading page")
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "page" {
			if err := p.x.Skip(); err != nil {
				return nil, errors.Wrapf(err, "skipping %v", se.Name.Local)
			}
			continue
		}
		start = &se
	}

	rv := new(Page)
	if err := p.x.DecodeElement(rv, start); err != nil {
		return nil, errors.Wrap(err, "decoding page")
	}
	return rv, nil
}
