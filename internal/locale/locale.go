// Package locale provides canonical locale selection and the deterministic
// string ordering used everywhere output order matters. Comparison is
// locale-aware and numeric-aware ("item2" sorts before "item10").
package locale

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// The collator is shared; collate.Collator is not safe for concurrent use.
var (
	collMu sync.Mutex
	coll   = collate.New(language.English, collate.Numeric)
)

// Compare orders a before b using numeric-aware collation.
// Returns -1, 0 or 1.
func Compare(a, b string) int {
	collMu.Lock()
	defer collMu.Unlock()
	return coll.CompareString(a, b)
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// SortStrings sorts in place using Compare.
func SortStrings(s []string) {
	sort.SliceStable(s, func(i, j int) bool { return Less(s[i], s[j]) })
}

// SelectCanonical picks the canonical locale for an item.
// Empty or unparseable entries are dropped. An empty result set returns
// ("", false); the caller substitutes the default locale for URL purposes
// but records no explicit selection. If the default locale survives the
// filter it wins; otherwise the collation-first survivor does. The choice
// is a pure function of the input set, independent of insertion order.
func SelectCanonical(defaultLocale string, available []string) (string, bool) {
	valid := make([]string, 0, len(available))
	for _, l := range available {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, err := language.Parse(l); err != nil {
			continue
		}
		valid = append(valid, l)
	}
	if len(valid) == 0 {
		return "", false
	}
	for _, l := range valid {
		if l == defaultLocale {
			return l, true
		}
	}
	SortStrings(valid)
	return valid[0], true
}

// CompareURLs orders canonical URLs: shallower paths first, then collation.
func CompareURLs(a, b string) int {
	da, db := pathDepth(a), pathDepth(b)
	if da != db {
		if da < db {
			return -1
		}
		return 1
	}
	return Compare(a, b)
}

// SortURLs sorts canonical URLs in place, path depth ascending then
// collation order.
func SortURLs(urls []string) {
	sort.SliceStable(urls, func(i, j int) bool { return CompareURLs(urls[i], urls[j]) < 0 })
}

func pathDepth(raw string) int {
	u, err := url.Parse(raw)
	p := raw
	if err == nil {
		p = u.Path
	}
	depth := 0
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			depth++
		}
	}
	return depth
}
