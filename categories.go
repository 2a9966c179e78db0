package wikicat

import (
	"regexp"
	"strings"
	"sync"
)

var categoryREs sync.Map

func categoryRE(prefix string) *regexp.Regexp {
	if re, ok := categoryREs.Load(prefix); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\[\[` + regexp.QuoteMeta(prefix) + `:(.*?)\]\]`)
	actual, _ := categoryREs.LoadOrStore(prefix, re)
	return actual.(*regexp.Regexp)
}

// FindCategories finds all the category mentions within an article
// body, in order.
//
// prefix is the category namespace name of the wiki (Category,
// Kategori, ...).  Mentions are returned raw, sort keys included.
func FindCategories(text, prefix string) []string {
	matches := categoryRE(prefix).FindAllStringSubmatch(text, -1)

	rv := make([]string, 0, len(matches))
	for _, x := range matches {
		rv = append(rv, x[1])
	}

	return rv
}

// CategoryKey normalizes a raw category mention to the form titles
// take in the SQL dumps: sort key dropped, spaces as underscores.
func CategoryKey(mention string) string {
	if i := strings.IndexByte(mention, '|'); i >= 0 {
		mention = mention[:i]
	}
	return strings.Replace(strings.TrimSpace(mention), " ", "_", -1)
}
