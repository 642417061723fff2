package artifact

import (
	"fmt"
	"sort"
	"strings"

	"llmsbeacon/internal/canonical"
	"llmsbeacon/internal/config"
	"llmsbeacon/internal/locale"
)

// RenderBrief produces the brief document (llms.txt): brand header,
// navigation hubs, canonical URL list, policy summary, contact block and
// machine-readable hints, in that fixed order. A section whose backing data
// is entirely absent is omitted wholesale.
func RenderBrief(cfg *config.Config, bundle *canonical.Bundle) string {
	var b strings.Builder

	writeHeader(&b, cfg.Brand)
	writeHubs(&b, cfg.Sections.Hubs)
	writeURLList(&b, bundle.URLs)
	writePolicySummary(&b, cfg.Policy)
	writeContact(&b, cfg.Contact, cfg.Booking)
	writeMachineHints(&b, cfg.MachineHints)

	return Finalize(b.String(), cfg.Format.LineEndings)
}

func writeHeader(b *strings.Builder, brand config.BrandConfig) {
	if brand.Name == "" && brand.Tagline == "" && brand.Description == "" {
		return
	}
	if brand.Name != "" {
		fmt.Fprintf(b, "# %s\n\n", brand.Name)
	}
	if brand.Tagline != "" {
		fmt.Fprintf(b, "> %s\n\n", brand.Tagline)
	}
	if brand.Description != "" {
		fmt.Fprintf(b, "%s\n\n", brand.Description)
	}
}

func writeHubs(b *strings.Builder, hubs []config.Hub) {
	if len(hubs) == 0 {
		return
	}
	sorted := make([]config.Hub, len(hubs))
	copy(sorted, hubs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return locale.Less(sorted[i].Title, sorted[j].Title)
	})

	b.WriteString("## Navigation\n\n")
	for _, h := range sorted {
		if h.Description != "" {
			fmt.Fprintf(b, "- [%s](%s): %s\n", h.Title, h.URL, h.Description)
		} else {
			fmt.Fprintf(b, "- [%s](%s)\n", h.Title, h.URL)
		}
	}
	b.WriteString("\n")
}

func writeURLList(b *strings.Builder, urls []string) {
	if len(urls) == 0 {
		return
	}
	b.WriteString("## Canonical URLs\n\n")
	for _, u := range urls {
		fmt.Fprintf(b, "- %s\n", u)
	}
	b.WriteString("\n")
}

func writePolicySummary(b *strings.Builder, policy config.PolicyConfig) {
	if policy.CitationRules == "" && policy.GeoPolicy == "" {
		return
	}
	b.WriteString("## Policy\n\n")
	if policy.CitationRules != "" {
		fmt.Fprintf(b, "%s\n\n", policy.CitationRules)
	}
	if policy.GeoPolicy != "" {
		fmt.Fprintf(b, "%s\n\n", policy.GeoPolicy)
	}
}

func writeContact(b *strings.Builder, contact config.ContactConfig, booking config.BookingConfig) {
	if contact.Email == "" && contact.URL == "" && booking.URL == "" {
		return
	}
	b.WriteString("## Contact\n\n")
	if contact.Email != "" {
		fmt.Fprintf(b, "- Email: %s\n", contact.Email)
	}
	if contact.URL != "" {
		fmt.Fprintf(b, "- Web: %s\n", contact.URL)
	}
	if booking.URL != "" {
		fmt.Fprintf(b, "- Booking: %s\n", booking.URL)
		if booking.Instructions != "" {
			fmt.Fprintf(b, " %s\n", booking.Instructions)
		}
	}
	b.WriteString("\n")
}

func writeMachineHints(b *strings.Builder, hints []string) {
	if len(hints) == 0 {
		return
	}
	b.WriteString("## Machine-Readable\n\n")
	for _, h := range hints {
		fmt.Fprintf(b, "- %s\n", h)
	}
	b.WriteString("\n")
}
