// Package wikicat turns MediaWiki dumps into a labeled article corpus.
//
// Three dumps feed it, all available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// The categorylinks and page tables (gzipped SQL bulk inserts) become
// a category parent/child graph via DumpReader and the table
// projectors.  The pages-articles XML dump becomes a stream of
// cleaned first paragraphs tagged with their category mentions via
// ArticleReader.  Resolve walks the category graph up to a set of
// top-level categories so articles can be labeled by the top-level
// topic they belong to.
//
// See the programs in the tools subpackages for how these fit
// together.
package wikicat
