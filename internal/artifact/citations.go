package artifact

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"llmsbeacon/internal/canonical"
	"llmsbeacon/internal/config"
	"llmsbeacon/internal/locale"
)

// CitationOptions controls citation index generation. Now is injectable so
// tests can pin the generation timestamp; a nil Now uses the wall clock.
type CitationOptions struct {
	Now func() time.Time
}

type citationIndex struct {
	GeneratedAt string           `json:"generated_at"`
	Site        string           `json:"site"`
	Policy      citationPolicy   `json:"policy"`
	Sources     []citationSource `json:"sources"`
}

type citationPolicy struct {
	RestrictedClaimsEnabled bool   `json:"restricted_claims_enabled"`
	GeoPolicy               string `json:"geo_policy,omitempty"`
	CitationRules           string `json:"citation_rules,omitempty"`
}

type citationSource struct {
	Title    string   `json:"title,omitempty"`
	URL      string   `json:"url"`
	Section  string   `json:"section"`
	Priority int      `json:"priority"`
	Locales  []string `json:"locales,omitempty"`
}

// RenderCitations produces the citation index: every entry as a source,
// sorted by priority descending then URL ascending under numeric-aware
// collation, plus the policy flags and a generation timestamp.
func RenderCitations(cfg *config.Config, bundle *canonical.Bundle, opts CitationOptions) (string, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	sources := make([]citationSource, 0, len(bundle.Entries))
	for _, e := range bundle.Entries {
		sources = append(sources, citationSource{
			Title:    e.Item.Title,
			URL:      e.URL,
			Section:  e.SectionName,
			Priority: e.Item.Priority,
			Locales:  e.Item.Locales,
		})
	}
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Priority != sources[j].Priority {
			return sources[i].Priority > sources[j].Priority
		}
		return locale.Less(sources[i].URL, sources[j].URL)
	})

	index := citationIndex{
		GeneratedAt: now().UTC().Format(time.RFC3339),
		Site:        cfg.Site.BaseURL,
		Policy: citationPolicy{
			RestrictedClaimsEnabled: cfg.Policy.RestrictedClaims,
			GeoPolicy:               cfg.Policy.GeoPolicy,
			CitationRules:           cfg.Policy.CitationRules,
		},
		Sources: sources,
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal citation index: %w", err)
	}
	return FinalizeEOL(string(data), cfg.Format.LineEndings), nil
}
