// Load an extracted article corpus into Couchbase
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/couchbase/go-couchbase"
	"go.uber.org/zap"

	"github.com/dustin/go-wikicat"
	"github.com/dustin/go-wikicat/internal/corpus"
	"github.com/dustin/go-wikicat/internal/logging"
	"github.com/dustin/go-wikicat/internal/progress"
)

var (
	numWorkers = flag.Int("workers", 8, "Number of document workers")
	resolvedfn = flag.String("resolved", "", "Resolved category CSV for topics")
	debug      = flag.Bool("debug", false, "Debug logging")

	sqlEncoding = flag.String("sql-encoding", "raw",
		"Encoding the table dumps behind -resolved were read with")
)

var wg sync.WaitGroup

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] articles.jsonl.gz\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func docHandler(log *zap.SugaredLogger, db *couchbase.Bucket, ch <-chan *corpus.Document) {
	defer wg.Done()
	for d := range ch {
		if err := db.Set(d.Title, 0, d); err != nil {
			log.Warnf("Error setting %v: %v", d.Title, err)
		}
	}
}

func main() {
	couchbaseServer := flag.String("couchbase", "http://localhost:8091/",
		"Couchbase URL")
	couchbaseBucket := flag.String("bucket", "default", "Couchbase bucket")
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	log := logging.MustNew(*debug)
	defer log.Sync()

	db, err := couchbase.GetBucket(*couchbaseServer,
		"default", *couchbaseBucket)
	if err != nil {
		log.Fatalf("Error connecting to couchbase: %v", err)
	}
	defer db.Close()

	enc, err := wikicat.ParseDumpEncoding(*sqlEncoding)
	if err != nil {
		log.Fatalf("Bad -sql-encoding: %v", err)
	}
	src, err := corpus.Open(flag.Arg(0), *resolvedfn, enc)
	if err != nil {
		log.Fatalf("Error opening corpus: %v", err)
	}
	defer src.Close()

	ch := make(chan *corpus.Document, 1000)
	for i := 0; i < *numWorkers; i++ {
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
