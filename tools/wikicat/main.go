// Command wikicat builds a labeled article corpus from MediaWiki
// dumps.
//
// The usual run, given a language config such as
//
//    {"prefix": "da", "category": "Kategori", "infobox": "Infoboks",
//     "file": "Fil", "top_level": "Topniveau_for_emner"}
//
// and the dumps from http://dumps.wikimedia.org/dawiki/latest/ in
// local_data, is
//
//    wikicat --config da-config.json categories
//    wikicat --config da-config.json resolve
//    wikicat --config da-config.json articles --max-articles 100000
//    wikicat --config da-config.json samples
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
