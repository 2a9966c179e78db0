package wikicat

import (
	"strconv"
	"strings"
)

// A Schema names the columns of a table dump, in order.
type Schema []string

// CategoryLinksSchema is the column layout of categorylinks.sql.
var CategoryLinksSchema = Schema{
	"cl_from",
	"cl_to",
	"cl_sortkey",
	"cl_timestamp",
	"cl_sortkey_prefix",
	"cl_collation",
	"cl_type",
}

// PageSchema is the column layout of page.sql.
var PageSchema = Schema{
	"page_id",
	"page_namespace",
	"page_title",
	"page_is_redirect",
	"page_is_new",
	"page_random",
	"page_touched",
	"page_links_updated",
	"page_latest",
	"page_len",
	"page_content_model",
	"page_lang",
}

const (
	// CategoryNamespace is the namespace code of category pages.
	CategoryNamespace = "14"
	// SubcatType is the cl_type of a link between two categories.
	SubcatType = "subcat"
)

// Index gets the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, n := range s {
		if n == name {
			return i
		}
	}
	return -1
}

// A Row is a Record interpreted against a Schema.
type Row struct {
	schema Schema
	rec    Record
}

// Project interprets a record against the schema.
//
// Records with the wrong number of fields are malformed and ok is
// false.
func (s Schema) Project(r Record) (Row, bool) {
	if len(r) != len(s) {
		return Row{}, false
	}
	return Row{schema: s, rec: r}, true
}

// Get gets the named field, or "" if the schema has no such column.
func (r Row) Get(name string) string {
	i := r.schema.Index(name)
	if i < 0 {
		return ""
	}
	return r.rec[i]
}

// Record gets the row's fields back in schema order.
func (r Row) Record() Record {
	return append(Record(nil), r.rec...)
}

// CleanTitle removes SQL quote characters from a title.
func CleanTitle(s string) string {
	return strings.Replace(s, "'", "", -1)
}

// A CategoryLink says the category page From is a subcategory of the
// category titled To.
type CategoryLink struct {
	From uint64
	To   string
}

// ProjectCategoryLink projects a categorylinks record.
//
// Only subcategory links survive.
func ProjectCategoryLink(r Record) (CategoryLink, bool) {
	row, ok := CategoryLinksSchema.Project(r)
	if !ok || Unquote(row.Get("cl_type")) != SubcatType {
		return CategoryLink{}, false
	}
	id, err := strconv.ParseUint(row.Get("cl_from"), 10, 64)
	if err != nil {
		return CategoryLink{}, false
	}
	return CategoryLink{From: id, To: CleanTitle(row.Get("cl_to"))}, true
}

// A CategoryPage is a page in the category namespace.
type CategoryPage struct {
	ID    uint64
	Title string
}

// ProjectCategoryPage projects a page record.
//
// Only pages in the category namespace survive.
func ProjectCategoryPage(r Record) (CategoryPage, bool) {
	row, ok := PageSchema.Project(r)
	if !ok || row.Get("page_namespace") != CategoryNamespace {
		return CategoryPage{}, false
	}
	id, err := strconv.ParseUint(row.Get("page_id"), 10, 64)
	if err != nil {
		return CategoryPage{}, false
	}
	return CategoryPage{ID: id, Title: CleanTitle(row.Get("page_title"))}, true
}

// JoinEdges names the child side of each link.
//
// Links from pages that aren't known category pages are dropped.
func JoinEdges(links []CategoryLink, titles map[uint64]string) []CategoryEdge {
	rv := make([]CategoryEdge, 0, len(links))
	for _, l := range links {
		child, ok := titles[l.From]
		if !ok {
			continue
		}
		rv = append(rv, CategoryEdge{Child: child, Parent: l.To})
	}
	return rv
}
