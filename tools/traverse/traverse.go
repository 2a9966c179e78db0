// Survey a wikipedia page dump: how many pages become articles, why
// the rest are skipped, and which categories articles mention most.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/dustin/go-wikicat"
	"github.com/dustin/go-wikicat/internal/logging"
	"github.com/dustin/go-wikicat/internal/progress"
)

const (
	kindArticle  = "article"
	kindCategory = "category"
	kindRedirect = "redirect"
	kindEmpty    = "empty"
)

// classify says what the extractor would make of a page.
func classify(m wikicat.Markers, p *wikicat.Page) (string, *wikicat.Article) {
	if a, ok := m.Extract(p); ok {
		return kindArticle, a
	}
	switch {
	case p.Title == "":
		return kindEmpty, nil
	case strings.HasPrefix(p.Title, m.Category):
		return kindCategory, nil
	case p.Text() == "":
		return kindEmpty, nil
	default:
		return kindRedirect, nil
	}
}

type tally struct {
	kinds    map[string]int64
	mentions map[string]int64
}

func newTally() *tally {
	return &tally{kinds: map[string]int64{}, mentions: map[string]int64{}}
}

func (t *tally) add(kind string, a *wikicat.Article) {
	t.kinds[kind]++
	if a == nil {
		return
	}
	for _, c := range a.Categories {
		t.mentions[wikicat.CategoryKey(c)]++
	}
}

func (t *tally) merge(o *tally) {
	for k, v := range o.kinds {
		t.kinds[k] += v
	}
	for k, v := range o.mentions {
		t.mentions[k] += v
	}
}

type mention struct {
	category string
	count    int64
}

// top gets the n most mentioned categories, most mentioned first.
func (t *tally) top(n int) []mention {
	rv := make([]mention, 0, len(t.mentions))
	for k, v := range t.mentions {
		rv = append(rv, mention{k, v})
	}
	sort.Slice(rv, func(i, j int) bool {
		if rv[i].count != rv[j].count {
			return rv[i].count > rv[j].count
		}
		return rv[i].category < rv[j].category
	})
	if len(rv) > n {
		rv = rv[:n]
	}
	return rv
}

func (t *tally) report(w io.Writer, n int) {
	for _, k := range []string{kindArticle, kindCategory, kindRedirect, kindEmpty} {
		fmt.Fprintf(w, "%-10s %s\n", k, humanize.Comma(t.kinds[k]))
	}
	for _, m := range t.top(n) {
		fmt.Fprintf(w, "  %-40s %s\n", m.category, humanize.Comma(m.count))
	}
}

func pageHandler(m wikicat.Markers, ch <-chan *wikicat.Page, out chan<- *tally,
	wg *sync.WaitGroup) {

	defer wg.Done()
	t := newTally()
	for p := range ch {
		t.add(classify(m, p))
	}
	out <- t
}

func survey(log *zap.SugaredLogger, r io.Reader, m wikicat.Markers,
	workers int) (*tally, error) {

	p, err := wikicat.NewParser(r)
	if err != nil {
		return nil, err
	}
	log.Infof("Got site info:  %v (%v)", p.SiteInfo.SiteName, p.SiteInfo.DBName)

	ch := make(chan *wikicat.Page, 1000)
	out := make(chan *tally, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go pageHandler(m, ch, out, &wg)
	}

	pr := progress.New(log, "pages", 1000)
	for {
		var page *wikicat.Page
		page, err = p.Next()
		if err != nil {
			break
		}
		ch <- page
		pr.Add()
	}
	close(ch)
	wg.Wait()
	close(out)

	rv := newTally()
	for t := range out {
		rv.merge(t)
	}
	if err == io.EOF {
		err = nil
	}
	pr.Done(err)
	return rv, err
}

func main() {
	m := wikicat.DefaultMarkers
	flag.StringVar(&m.Category, "category", m.Category, "Category namespace name")
	flag.StringVar(&m.File, "file", m.File, "File namespace name")
	flag.StringVar(&m.Infobox, "infobox", m.Infobox, "Infobox template prefix")
	flag.StringVar(&m.Redirect, "redirect", m.Redirect, "Redirect marker")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Number of page workers")
	topN := flag.Int("top", 20, "How many categories to list")
	debug := flag.Bool("debug", false, "Debug logging")
	flag.Parse()

	log := logging.MustNew(*debug)
	defer log.Sync()

	if flag.NArg() != 1 {
		log.Fatalf("Usage: traverse [opts] pages-articles.xml.bz2")
	}

	f, err := wikicat.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error opening dump: %v", err)
	}
	defer f.Close()

	t, err := survey(log, f, m, *workers)
	if t != nil {
		t.report(os.Stdout, *topN)
	}
	if err != nil {
		log.Fatalf("Error reading dump: %v", err)
	}
}
