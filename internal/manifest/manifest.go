// Package manifest defines the declarative content description for one site
// section and normalizes its raw configuration shape. It assumes the config
// already passed structural validation and only normalizes, never validates
// cross-field consistency.
package manifest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"llmsbeacon/internal/locale"
)

// RouteStyle is the strategy for encoding locale information into a URL.
type RouteStyle string

const (
	RouteUnset         RouteStyle = ""
	RoutePrefix        RouteStyle = "prefix"
	RouteSuffix        RouteStyle = "suffix"
	RouteLocaleSegment RouteStyle = "locale-segment"
	RouteCustom        RouteStyle = "custom"
)

// DefaultPriority is assigned to items that do not declare one.
const DefaultPriority = 50

// Item is one content page within a section. Items are immutable after
// load; resolution produces derived values and never edits them.
type Item struct {
	Slug              string     `yaml:"slug"`
	Locales           []string   `yaml:"locales"`
	PublishedAt       *time.Time `yaml:"published_at"`
	UpdatedAt         *time.Time `yaml:"updated_at"`
	Priority          int        `yaml:"priority"`
	Title             string     `yaml:"title"`
	Description       string     `yaml:"description"`
	CanonicalOverride string     `yaml:"canonical_override"`
}

// UnmarshalYAML applies the priority default for omitted fields.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	type rawItem Item
	raw := rawItem{Priority: DefaultPriority}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*it = Item(raw)
	return nil
}

// PathnameInput is the argument to a custom pathname function.
type PathnameInput struct {
	Item          Item
	SectionName   string
	Slug          string
	Locale        string
	DefaultLocale string
	SectionPath   string
}

// PathnameFunc produces a raw path for the custom route style. It must be
// pure: the same input always yields the same path.
type PathnameFunc func(PathnameInput) string

// Section is the raw per-section configuration. In YAML a section value may
// be either a plain item list (route style left unset, delegated to the
// site default) or a full section object.
type Section struct {
	Name                  string     `yaml:"name"`
	Items                 []Item     `yaml:"items"`
	SectionPath           string     `yaml:"section_path"`
	RouteStyle            RouteStyle `yaml:"route_style"`
	DefaultLocaleOverride string     `yaml:"default_locale"`

	// PathnameFor cannot come from YAML; callers register it after load
	// for sections with route_style: custom.
	PathnameFor PathnameFunc `yaml:"-"`
}

// UnmarshalYAML accepts both the plain-list and the object form.
func (s *Section) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var items []Item
		if err := value.Decode(&items); err != nil {
			return fmt.Errorf("decode section item list: %w", err)
		}
		*s = Section{Items: items}
		return nil
	}
	type rawSection Section
	var raw rawSection
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("decode section object: %w", err)
	}
	*s = Section(raw)
	return nil
}

// Defaults carries the site-level fallbacks a section inherits.
type Defaults struct {
	RouteStyle   RouteStyle
	Locale       string
	BrandLocales []string
}

// Resolved is a section after shape normalization: display name filled in,
// slugs force-prefixed, route style and default locale settled.
type Resolved struct {
	Key           string
	Name          string
	SectionPath   string
	RouteStyle    RouteStyle
	DefaultLocale string
	PathnameFor   PathnameFunc
	Items         []Item
}

// Resolve normalizes every section, ordered by section key under
// numeric-aware collation. Slugs are force-prefixed with "/". The default
// locale follows one precedence chain everywhere:
// section override, then site default, then first brand locale, then "en".
func Resolve(sections map[string]Section, defaults Defaults) []Resolved {
	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool { return locale.Less(keys[i], keys[j]) })

	out := make([]Resolved, 0, len(keys))
	for _, key := range keys {
		sec := sections[key]

		name := sec.Name
		if name == "" {
			name = key
		}
		style := sec.RouteStyle
		if style == RouteUnset {
			style = defaults.RouteStyle
		}
		if style == RouteUnset {
			style = RoutePrefix
		}

		items := make([]Item, len(sec.Items))
		for i, it := range sec.Items {
			it.Slug = forceSlash(it.Slug)
			items[i] = it
		}

		out = append(out, Resolved{
			Key:           key,
			Name:          name,
			SectionPath:   normalizeSectionPath(sec.SectionPath),
			RouteStyle:    style,
			DefaultLocale: defaultLocaleFor(sec, defaults),
			PathnameFor:   sec.PathnameFor,
			Items:         items,
		})
	}
	return out
}

func defaultLocaleFor(sec Section, defaults Defaults) string {
	if sec.DefaultLocaleOverride != "" {
		return sec.DefaultLocaleOverride
	}
	if defaults.Locale != "" {
		return defaults.Locale
	}
	if len(defaults.BrandLocales) > 0 && defaults.BrandLocales[0] != "" {
		return defaults.BrandLocales[0]
	}
	return "en"
}

func forceSlash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "/"
	}
	if !strings.HasPrefix(s, "/") {
		return "/" + s
	}
	return s
}

// normalizeSectionPath reduces an empty or root section path to "no prefix".
func normalizeSectionPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimSuffix(p, "/")
}
