// Load an extracted article corpus into ElasticSearch
package main

import (
	"flag"
	"io"
	"sync"

	"github.com/dustin/go-elasticsearch"

	"github.com/dustin/go-wikicat"
	"github.com/dustin/go-wikicat/internal/corpus"
	"github.com/dustin/go-wikicat/internal/logging"
	"github.com/dustin/go-wikicat/internal/progress"
)

var wg = sync.WaitGroup{}

func docBody(d *corpus.Document) map[string]interface{} {
	body := map[string]interface{}{
		"title": d.Title,
		"text":  d.Text,
	}
	if len(d.Categories) > 0 {
		body["categories"] = d.Categories
	}
	if len(d.Topics) > 0 {
		body["topics"] = d.Topics
	}
	return body
}

func docHandler(u, index string, batch int, ch <-chan *corpus.Document) {
	defer wg.Done()
	counter := 0
	es := elasticsearch.ElasticSearch{URL: u}
	bulkLoader := es.Bulk()

	for d := range ch {
		counter++
		if counter > batch {
			bulkLoader.SendBatch()
			counter = 0
		}
		ui := elasticsearch.UpdateInstruction{
			Id:    d.Title,
			Index: index,
			Type:  "article",
			Body:  docBody(d),
		}
		bulkLoader.Update(&ui)
	}
	bulkLoader.Quit()
}

func main() {
	workers := flag.Int("workers", 4, "Number of bulk loaders")
	index := flag.String("index", "wikicat", "Index to load into")
	batch := flag.Int("batch", 1000, "Updates per bulk request")
	resolvedfn := flag.String("resolved", "", "Resolved category CSV for topics")
	sqlEncoding := flag.String("sql-encoding", "raw",
		"Encoding the table dumps behind -resolved were read with")
	debug := flag.Bool("debug", false, "Debug logging")
	flag.Parse()

	log := logging.MustNew(*debug)
	defer log.Sync()

	if flag.NArg() != 2 {
		log.Fatalf("Usage: esload [opts] articles.jsonl.gz http://localhost:9200/")
	}
	filename, esurl := flag.Arg(0), flag.Arg(1)

	enc, err := wikicat.ParseDumpEncoding(*sqlEncoding)
	if err != nil {
		log.Fatalf("Bad -sql-encoding: %v", err)
	}
	src, err := corpus.Open(filename, *resolvedfn, enc)
	if err != nil {
		log.Fatalf("Error opening corpus: %v", err)
	}
	defer src.Close()

	ch := make(chan *corpus.Document, 1000)
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go docHandler(esurl, *index, *batch, ch)
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
