// Package canonical resolves manifest items into canonical URLs and
// assembles them into the deterministic bundle the generators consume.
package canonical

import (
	"fmt"
	"net/url"
	"strings"

	"llmsbeacon/internal/locale"
	"llmsbeacon/internal/manifest"
	"llmsbeacon/internal/urlnorm"
)

// LocaleStrategy selects how a non-default locale reaches the URL.
type LocaleStrategy string

const (
	// StrategyPrefix encodes the locale in the path, per the section's
	// route style.
	StrategyPrefix LocaleStrategy = "prefix"
	// StrategySubdomain rewrites the authority to {locale}.{host} instead
	// of inserting a path segment. Mutually exclusive with path insertion.
	StrategySubdomain LocaleStrategy = "subdomain"
)

// BuildOptions carries everything BuildURL needs. All fields are explicit;
// nothing is read from ambient state.
type BuildOptions struct {
	BaseURL       string
	DefaultLocale string
	SectionName   string
	SectionPath   string
	RouteStyle    manifest.RouteStyle
	PathnameFor   manifest.PathnameFunc
	Strategy      LocaleStrategy
	TrailingSlash urlnorm.TrailingSlash
}

type routeInput struct {
	slug          string
	sectionPath   string
	locale        string
	defaultLocale string
	localized     bool // locale differs from default and path insertion is active
}

// routePaths is the dispatch table for path construction. Every entry is a
// pure function of its input.
var routePaths = map[manifest.RouteStyle]func(routeInput) string{
	manifest.RoutePrefix: func(in routeInput) string {
		if in.localized {
			return "/" + in.locale + in.sectionPath + in.slug
		}
		return in.sectionPath + in.slug
	},
	manifest.RouteSuffix: func(in routeInput) string {
		p := in.sectionPath + in.slug
		if in.localized {
			p = strings.TrimSuffix(p, "/") + "/" + in.locale
		}
		return p
	},
	manifest.RouteLocaleSegment: func(in routeInput) string {
		// The locale segment is always present, default locale included:
		// locale-segment sites want an explicit canonical per locale.
		return in.sectionPath + "/" + in.locale + in.slug
	},
}

// BuildURL resolves one item to its canonical absolute URL. Pure: no side
// effects, no hidden state. A canonical override on the item is returned
// verbatim with no further processing.
func BuildURL(item manifest.Item, opts BuildOptions) (string, error) {
	if item.CanonicalOverride != "" {
		return item.CanonicalOverride, nil
	}

	available := item.Locales
	if len(available) == 0 {
		available = []string{opts.DefaultLocale}
	}
	loc, ok := locale.SelectCanonical(opts.DefaultLocale, available)
	if !ok {
		loc = opts.DefaultLocale
	}

	slug := stripSectionPath(item.Slug, opts.SectionPath)

	subdomain := opts.Strategy == StrategySubdomain && loc != opts.DefaultLocale
	pathLocale := loc
	if subdomain {
		// The authority carries the locale; the path stays in its
		// default-locale form.
		pathLocale = opts.DefaultLocale
	}
	in := routeInput{
		slug:          slug,
		sectionPath:   opts.SectionPath,
		locale:        pathLocale,
		defaultLocale: opts.DefaultLocale,
		localized:     loc != opts.DefaultLocale && !subdomain,
	}

	var rawPath string
	switch opts.RouteStyle {
	case manifest.RouteCustom:
		if opts.PathnameFor != nil {
			rawPath = opts.PathnameFor(manifest.PathnameInput{
				Item:          item,
				SectionName:   opts.SectionName,
				Slug:          slug,
				Locale:        loc,
				DefaultLocale: opts.DefaultLocale,
				SectionPath:   opts.SectionPath,
			})
		} else {
			rawPath = opts.SectionPath + slug
		}
	default:
		build, known := routePaths[opts.RouteStyle]
		if !known {
			return "", fmt.Errorf("unknown route style %q", opts.RouteStyle)
		}
		rawPath = build(in)
	}

	normalized, err := urlnorm.Normalize(opts.BaseURL, rawPath, urlnorm.Options{
		TrailingSlash: opts.TrailingSlash,
	})
	if err != nil {
		return "", err
	}

	if subdomain {
		normalized, err = rewriteSubdomain(normalized, loc)
		if err != nil {
			return "", err
		}
	}
	return normalized, nil
}

// stripSectionPath removes the section path from a slug that already carries
// it. A slug equal to the section path collapses to "/".
func stripSectionPath(slug, sectionPath string) string {
	if sectionPath == "" {
		return slug
	}
	if slug == sectionPath {
		return "/"
	}
	if strings.HasPrefix(slug, sectionPath+"/") {
		return strings.TrimPrefix(slug, sectionPath)
	}
	return slug
}

func rewriteSubdomain(raw, loc string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("rewrite subdomain: %w", err)
	}
	host := loc + "." + u.Hostname()
	if port := u.Port(); port != "" {
		host = host + ":" + port
	}
	u.Host = host
	return u.String(), nil
}
