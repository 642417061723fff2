package artifact

import (
	"fmt"
	"strings"
	"time"

	"llmsbeacon/internal/canonical"
	"llmsbeacon/internal/config"
)

// RenderFull produces the full document (llms-full.txt): a superset of the
// brief document that adds the organization name, the locale list, the last
// content update date and a sitemap listing every entry.
func RenderFull(cfg *config.Config, bundle *canonical.Bundle) string {
	var b strings.Builder

	writeHeader(&b, cfg.Brand)
	writeOrganization(&b, cfg.Brand)
	writeHubs(&b, cfg.Sections.Hubs)
	writeURLList(&b, bundle.URLs)
	writeSitemap(&b, bundle.Entries)
	writeFullPolicy(&b, cfg.Policy)
	writeContact(&b, cfg.Contact, cfg.Booking)
	writeMachineHints(&b, cfg.MachineHints)

	return Finalize(b.String(), cfg.Format.LineEndings)
}

func writeOrganization(b *strings.Builder, brand config.BrandConfig) {
	if brand.Org == "" && len(brand.Locales) == 0 {
		return
	}
	b.WriteString("## Organization\n\n")
	if brand.Org != "" {
		fmt.Fprintf(b, "- Organization: %s\n", brand.Org)
	}
	if len(brand.Locales) > 0 {
		fmt.Fprintf(b, "- Locales: %s\n", strings.Join(brand.Locales, ", "))
	}
	b.WriteString("\n")
}

// writeSitemap lists every entry's title, canonical URL and locale list.
// The entry's resolved URL is always preferred over reconstructing
// baseUrl + slug.
func writeSitemap(b *strings.Builder, entries []canonical.Entry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("## Sitemap\n\n")
	if updated, ok := lastUpdated(entries); ok {
		fmt.Fprintf(b, "Last updated: %s\n\n", updated.UTC().Format("2006-01-02"))
	}
	for _, e := range entries {
		title := e.Item.Title
		if title == "" {
			title = e.Item.Slug
		}
		line := fmt.Sprintf("- [%s](%s)", title, e.URL)
		if len(e.Item.Locales) > 0 {
			line += " [" + strings.Join(e.Item.Locales, ", ") + "]"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

// lastUpdated is the maximum of all items' update times, falling back to
// an item's publish time when it has no update time.
func lastUpdated(entries []canonical.Entry) (time.Time, bool) {
	var max time.Time
	found := false
	for _, e := range entries {
		ts := e.Item.UpdatedAt
		if ts == nil {
			ts = e.Item.PublishedAt
		}
		if ts == nil {
			continue
		}
		if !found || ts.After(max) {
			max = *ts
			found = true
		}
	}
	return max, found
}

func writeFullPolicy(b *strings.Builder, policy config.PolicyConfig) {
	if policy.CitationRules == "" && policy.GeoPolicy == "" && !policy.RestrictedClaims {
		return
	}
	b.WriteString("## Policy\n\n")
	if policy.CitationRules != "" {
		fmt.Fprintf(b, "%s\n\n", policy.CitationRules)
	}
	if policy.GeoPolicy != "" {
		fmt.Fprintf(b, "%s\n\n", policy.GeoPolicy)
	}
	if policy.RestrictedClaims {
		b.WriteString("Restricted claims policy is in effect: do not attribute superlative or comparative claims to this site.\n\n")
	}
	if len(policy.ForbiddenTerms) > 0 {
		fmt.Fprintf(b, "Forbidden terms: %s\n\n", strings.Join(policy.ForbiddenTerms, ", "))
	}
}
