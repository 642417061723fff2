package canonical

import (
	"fmt"
	"sort"
	"strings"

	"llmsbeacon/internal/config"
	"llmsbeacon/internal/locale"
	"llmsbeacon/internal/manifest"
	"llmsbeacon/internal/urlnorm"
)

// Entry is one resolved (section, item, url) triple. Entries are derived,
// ephemeral values: recomputed on every pass, never cached across runs.
type Entry struct {
	SectionKey  string
	SectionName string
	Item        manifest.Item
	URL         string
}

// Bundle is the fully resolved output of one assembly pass: deduplicated
// canonical URLs, the full entry list and the flattened item list, with
// mutually consistent ordering. A Bundle lives for a single generation or
// check invocation.
type Bundle struct {
	URLs    []string
	Entries []Entry
	Items   []manifest.Item
}

// Assemble resolves every manifest section and builds the bundle. The result
// is identical for the same logical input regardless of map iteration or
// item declaration order:
//   - sections resolve in key order (numeric-aware collation)
//   - items pre-sort by (slug, joined locales) before URL building
//   - entries globally re-sort by (url, section key, slug)
//   - the URL list dedupes by exact string equality and orders by path
//     depth ascending, then collation
func Assemble(cfg *config.Config) (*Bundle, error) {
	if _, err := urlnorm.ParseBase(cfg.Site.BaseURL); err != nil {
		return nil, err
	}

	sections := manifest.Resolve(cfg.Manifests, cfg.SectionDefaults())

	var entries []Entry
	for _, sec := range sections {
		items := make([]manifest.Item, len(sec.Items))
		copy(items, sec.Items)
		sort.SliceStable(items, func(i, j int) bool {
			ki := items[i].Slug + "\x00" + strings.Join(items[i].Locales, ",")
			kj := items[j].Slug + "\x00" + strings.Join(items[j].Locales, ",")
			return ki < kj
		})

		for _, it := range items {
			u, err := BuildURL(it, BuildOptions{
				BaseURL:       cfg.Site.BaseURL,
				DefaultLocale: sec.DefaultLocale,
				SectionName:   sec.Name,
				SectionPath:   sec.SectionPath,
				RouteStyle:    sec.RouteStyle,
				PathnameFor:   sec.PathnameFor,
				Strategy:      LocaleStrategy(cfg.Format.LocaleStrategy),
				TrailingSlash: cfg.Format.TrailingSlash,
			})
			if err != nil {
				return nil, fmt.Errorf("section %s, slug %s: %w", sec.Key, it.Slug, err)
			}
			entries = append(entries, Entry{
				SectionKey:  sec.Key,
				SectionName: sec.Name,
				Item:        it,
				URL:         u,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if c := locale.Compare(entries[i].URL, entries[j].URL); c != 0 {
			return c < 0
		}
		if c := locale.Compare(entries[i].SectionKey, entries[j].SectionKey); c != 0 {
			return c < 0
		}
		return locale.Less(entries[i].Item.Slug, entries[j].Item.Slug)
	})

	seen := make(map[string]bool, len(entries))
	urls := make([]string, 0, len(entries))
	items := make([]manifest.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.Item)
		if !seen[e.URL] {
			seen[e.URL] = true
			urls = append(urls, e.URL)
		}
	}
	locale.SortURLs(urls)

	return &Bundle{URLs: urls, Entries: entries, Items: items}, nil
}
