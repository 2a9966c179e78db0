// Load an extracted article corpus into MongoDB
package main

import (
	"flag"
	"io"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/dustin/go-wikicat"
	"github.com/dustin/go-wikicat/internal/corpus"
	"github.com/dustin/go-wikicat/internal/logging"
	"github.com/dustin/go-wikicat/internal/progress"
)

var proc = flag.Int("proc", 8, "How many workers to run.")
var file = flag.String("file", "", "The article corpus.")
var resolvedfn = flag.String("resolved", "", "Resolved category CSV for topics.")
var sqlEncoding = flag.String("sql-encoding", "raw", "Encoding the table dumps behind -resolved were read with.")
var dburl = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
var verbose = flag.Bool("v", false, "Verbose logging?")
var collection = flag.String("collection", "articles", "The collection to store articles in.")
var dbname = flag.String("dbname", "wp", "The database name to use.")

var wg sync.WaitGroup

// Titles are unique within a wiki; a repeated title replaces the
// stored one.
var titleIndex = mgo.Index{
	Key:        []string{"title"},
	Unique:     true,
	Background: true,
}

var topicIndex = mgo.Index{
	Key:        []string{"topics"},
	Background: true,
	Sparse:     true,
}

func docHandler(log *zap.SugaredLogger, c *mgo.Collection, ch <-chan *corpus.Document) {
	defer wg.Done()
	for d := range ch {
		storeDoc(log, c, d)
	}
}

func storeDoc(log *zap.SugaredLogger, c *mgo.Collection, d *corpus.Document) {
	_, err := c.Upsert(bson.M{"title": d.Title}, d)
	switch {
	case err == nil:
	case mgo.IsDup(err):
		// Lost an upsert race on the same title.
		log.Debugf("Duplicate Key Error storing %s", d.Title)
	default:
		log.Warnf("Error storing %s: %s", d.Title, err)
	}
}

func processCorpus(log *zap.SugaredLogger, src *corpus.Source, c *mgo.Collection) {
	ch := make(chan *corpus.Document, 1000)
	for i := 0; i < *proc; i++ {
		wg.Add(1)
		go docHandler(log, c, ch)
	}

	pr := progress.New(log, "articles", 10000)
	var err error
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

func main() {
	flag.Parse()

	log := logging.MustNew(*verbose)
	defer log.Sync()

	if *file == "" {
		log.Fatal("You must supply an article corpus.")
	}
	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error connecting to %v: %v", *dburl, err)
	}
	defer session.Close()

	enc, err := wikicat.ParseDumpEncoding(*sqlEncoding)
	if err != nil {
		log.Fatalf("Bad -sql-encoding: %v", err)
	}
	src, err := corpus.Open(*file, *resolvedfn, enc)
	if err != nil {
		log.Fatalf("Error opening corpus: %v", err)
	}
	defer src.Close()

	c := session.DB(*dbname).C(*collection)
	for _, idx := range []mgo.Index{titleIndex, topicIndex} {
		if err := c.EnsureIndex(idx); err != nil {
			log.Fatalf("Error creating index on %v: %v", idx.Key, err)
		}
	}
	processCorpus(log, src, c)
}
