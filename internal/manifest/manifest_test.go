package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSectionUnmarshal_PlainList(t *testing.T) {
	src := `
- slug: /post-one
  title: Post One
- slug: post-two
`
	var sec Section
	require.NoError(t, yaml.Unmarshal([]byte(src), &sec))

	assert.Equal(t, RouteUnset, sec.RouteStyle, "plain list must leave route style unset")
	require.Len(t, sec.Items, 2)
	assert.Equal(t, "Post One", sec.Items[0].Title)
	assert.Equal(t, DefaultPriority, sec.Items[0].Priority)
}

func TestSectionUnmarshal_Object(t *testing.T) {
	src := `
name: Blog
section_path: /blog
route_style: suffix
default_locale: de
items:
  - slug: /hello
    priority: 90
`
	var sec Section
	require.NoError(t, yaml.Unmarshal([]byte(src), &sec))

	assert.Equal(t, "Blog", sec.Name)
	assert.Equal(t, "/blog", sec.SectionPath)
	assert.Equal(t, RouteSuffix, sec.RouteStyle)
	assert.Equal(t, "de", sec.DefaultLocaleOverride)
	require.Len(t, sec.Items, 1)
	assert.Equal(t, 90, sec.Items[0].Priority)
}

func TestResolve_SectionOrderNumericAware(t *testing.T) {
	sections := map[string]Section{
		"item10": {},
		"item2":  {},
		"alpha":  {},
	}
	resolved := Resolve(sections, Defaults{})
	keys := []string{resolved[0].Key, resolved[1].Key, resolved[2].Key}
	assert.Equal(t, []string{"alpha", "item2", "item10"}, keys)
}

func TestResolve_SlugForcePrefix(t *testing.T) {
	resolved := Resolve(map[string]Section{
		"blog": {Items: []Item{{Slug: "post"}, {Slug: "/kept"}}},
	}, Defaults{})
	require.Len(t, resolved, 1)
	assert.Equal(t, "/post", resolved[0].Items[0].Slug)
	assert.Equal(t, "/kept", resolved[0].Items[1].Slug)
}

func TestResolve_NameDefaultsToKey(t *testing.T) {
	resolved := Resolve(map[string]Section{"docs": {}}, Defaults{})
	assert.Equal(t, "docs", resolved[0].Name)
}

func TestResolve_RouteStyleFallback(t *testing.T) {
	resolved := Resolve(map[string]Section{
		"a": {},
		"b": {RouteStyle: RouteLocaleSegment, SectionPath: "/b"},
	}, Defaults{RouteStyle: RouteSuffix})
	assert.Equal(t, RouteSuffix, resolved[0].RouteStyle, "unset style takes the site default")
	assert.Equal(t, RouteLocaleSegment, resolved[1].RouteStyle, "explicit style wins")

	bare := Resolve(map[string]Section{"a": {}}, Defaults{})
	assert.Equal(t, RoutePrefix, bare[0].RouteStyle, "prefix is the final fallback")
}

func TestResolve_DefaultLocalePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		section  Section
		defaults Defaults
		want     string
	}{
		{"section override wins", Section{DefaultLocaleOverride: "de"}, Defaults{Locale: "en", BrandLocales: []string{"fr"}}, "de"},
		{"site default next", Section{}, Defaults{Locale: "en", BrandLocales: []string{"fr"}}, "en"},
		{"brand locale next", Section{}, Defaults{BrandLocales: []string{"fr", "en"}}, "fr"},
		{"en last resort", Section{}, Defaults{}, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := Resolve(map[string]Section{"s": tt.section}, tt.defaults)
			assert.Equal(t, tt.want, resolved[0].DefaultLocale)
		})
	}
}

func TestResolve_SectionPathNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"blog", "/blog"},
		{"/blog/", "/blog"},
	}
	for _, tt := range tests {
		resolved := Resolve(map[string]Section{"s": {SectionPath: tt.in}}, Defaults{})
		assert.Equal(t, tt.want, resolved[0].SectionPath, "section_path %q", tt.in)
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	sections := map[string]Section{
		"blog": {Items: []Item{{Slug: "post"}}},
	}
	Resolve(sections, Defaults{})
	assert.Equal(t, "post", sections["blog"].Items[0].Slug, "resolution must not edit the source items")
}
