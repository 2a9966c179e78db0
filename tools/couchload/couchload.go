// Load an extracted article corpus into CouchDB
package main

import (
	"flag"
	"io"
	"strings"
	"sync"

	"github.com/dustin/go-couch"
	"go.uber.org/zap"

	"github.com/dustin/go-wikicat"
	"github.com/dustin/go-wikicat/internal/corpus"
	"github.com/dustin/go-wikicat/internal/logging"
	"github.com/dustin/go-wikicat/internal/progress"
)

var wg sync.WaitGroup

type article struct {
	ID  string `json:"_id"`
	Rev string `json:"_rev,omitempty"`
	corpus.Document
}

func escapeTitle(in string) string {
	return strings.Replace(strings.Replace(in, "/", "%2f", -1),
		"+", "%2b", -1)
}

// A title already stored is replaced; later documents win.
func resolveConflict(log *zap.SugaredLogger, db *couch.Database, a *article) {
	log.Debugf("Resolving conflict on %s", a.ID)
	var prev article
	err := db.Retrieve(a.ID, &prev)
	if err != nil {
		log.Warnf("Error retrieving existing %v: %v", a.ID, err)
		return
	}
	if prev.Rev == "" {
		log.Warnf("Got no rev from %v", a.ID)
		return
	}
	if _, err = db.EditWith(a, a.ID, prev.Rev); err != nil {
		log.Warnf("Error updating %v: %v", a.ID, err)
	}
}

func doDoc(log *zap.SugaredLogger, db *couch.Database, d *corpus.Document) {
	a := article{ID: escapeTitle(d.Title), Document: *d}

	_, _, err := db.Insert(&a)
	httpe, isHTTPError := err.(*couch.HTTPError)
	switch {
	case err == nil:
	case isHTTPError && httpe.Status == 409:
		resolveConflict(log, db, &a)
	default:
		log.Warnf("Error inserting %v: %v", a.ID, err)
	}
}

func docHandler(log *zap.SugaredLogger, db couch.Database, ch <-chan *corpus.Document) {
	defer wg.Done()
	for d := range ch {
		doDoc(log, &db, d)
	}
}

func main() {
	workers := flag.Int("workers", 20, "Number of document workers")
	resolvedfn := flag.String("resolved", "", "Resolved category CSV for topics")
	sqlEncoding := flag.String("sql-encoding", "raw",
		"Encoding the table dumps behind -resolved were read with")
	debug := flag.Bool("debug", false, "Debug logging")
	flag.Parse()

	log := logging.MustNew(*debug)
	defer log.Sync()

	if flag.NArg() != 2 {
		log.Fatalf("Usage: couchload [opts] http://localhost:5984/db articles.jsonl.gz")
	}
	dburl, fn := flag.Arg(0), flag.Arg(1)

	db, err := couch.Connect(dburl)
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	enc, err := wikicat.ParseDumpEncoding(*sqlEncoding)
	if err != nil {
		log.Fatalf("Bad -sql-encoding: %v", err)
	}
	src, err := corpus.Open(fn, *resolvedfn, enc)
	if err != nil {
		log.Fatalf("Error opening corpus: %v", err)
	}
	defer src.Close()

	ch := make(chan *corpus.Document, 1000)
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go docHandler(log, db, ch)
	}

	pr := progress.New(log, "articles", 1000)
	for {
		var d *corpus.Document
		d, err = src.Next()
		if err != nil {
			break
		}
		ch <- d
		pr.Add()
	}
	close(ch)
	wg.Wait()
	if err == io.EOF {
		err = nil
	}
	pr.Done(err)
}
