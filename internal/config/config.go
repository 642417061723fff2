package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"llmsbeacon/internal/manifest"
	"llmsbeacon/internal/urlnorm"
)

// Config is the full declarative site description. The core treats a loaded
// Config as immutable; every resolution and generation function takes the
// slice of it that it needs as an explicit argument.
type Config struct {
	Site      SiteConfig                  `yaml:"site"`
	Brand     BrandConfig                 `yaml:"brand"`
	Sections  SectionsConfig              `yaml:"sections"`
	Manifests map[string]manifest.Section `yaml:"manifests"`
	Contact   ContactConfig               `yaml:"contact"`
	Policy    PolicyConfig                `yaml:"policy"`
	Booking   BookingConfig               `yaml:"booking"`

	// MachineHints are URLs pointing machine readers at the generated
	// artifacts and related endpoints.
	MachineHints []string `yaml:"machine_hints"`

	Output  OutputConfig  `yaml:"output"`
	Format  FormatConfig  `yaml:"format"`
	Logging LoggingConfig `yaml:"logging"`
}

// SiteConfig identifies the site being described.
type SiteConfig struct {
	BaseURL           string              `yaml:"base_url"`
	DefaultLocale     string              `yaml:"default_locale"`
	DefaultRouteStyle manifest.RouteStyle `yaml:"default_route_style"`
}

// BrandConfig carries the brand facts rendered into the artifact headers.
type BrandConfig struct {
	Name        string   `yaml:"name"`
	Tagline     string   `yaml:"tagline"`
	Description string   `yaml:"description"`
	Org         string   `yaml:"org"`
	Locales     []string `yaml:"locales"`
}

// Hub is one navigation entry point.
type Hub struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// SectionsConfig holds navigation structure outside the manifests.
type SectionsConfig struct {
	Hubs []Hub `yaml:"hubs"`
}

// ContactConfig is the contact block of the artifacts.
type ContactConfig struct {
	Email string `yaml:"email"`
	URL   string `yaml:"url"`
}

// PolicyConfig carries citation policy text and the lint rule inputs.
type PolicyConfig struct {
	GeoPolicy        string   `yaml:"geo_policy"`
	CitationRules    string   `yaml:"citation_rules"`
	RestrictedClaims bool     `yaml:"restricted_claims"`
	ForbiddenTerms   []string `yaml:"forbidden_terms"`
	AllowedPhrases   []string `yaml:"allowed_phrases"`
}

// BookingConfig describes how readers should initiate contact or bookings.
type BookingConfig struct {
	URL          string `yaml:"url"`
	Instructions string `yaml:"instructions"`
}

// OutputConfig locates the generated artifacts on disk.
type OutputConfig struct {
	Paths OutputPaths `yaml:"paths"`
}

// OutputPaths names the three artifact files.
type OutputPaths struct {
	LLMSTxt     string `yaml:"llms_txt"`
	LLMSFullTxt string `yaml:"llms_full_txt"`
	Citations   string `yaml:"citations"`
}

// All returns the artifact paths in their fixed check order.
func (p OutputPaths) All() []string {
	return []string{p.LLMSTxt, p.LLMSFullTxt, p.Citations}
}

// FormatConfig controls output shape.
type FormatConfig struct {
	TrailingSlash  urlnorm.TrailingSlash `yaml:"trailing_slash"`  // always, never, preserve
	LineEndings    string                `yaml:"line_endings"`    // lf, crlf
	LocaleStrategy string                `yaml:"locale_strategy"` // prefix, subdomain
}

// LoggingConfig configures the category file logs.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			DefaultLocale:     "en",
			DefaultRouteStyle: manifest.RoutePrefix,
		},
		Output: OutputConfig{
			Paths: OutputPaths{
				LLMSTxt:     "llms.txt",
				LLMSFullTxt: "llms-full.txt",
				Citations:   "citations.json",
			},
		},
		Format: FormatConfig{
			TrailingSlash:  urlnorm.TrailingNever,
			LineEndings:    "lf",
			LocaleStrategy: "prefix",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults; a malformed file is a fatal error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BEACON_BASE_URL"); v != "" {
		c.Site.BaseURL = v
	}
	if dir := os.Getenv("BEACON_OUTPUT_DIR"); dir != "" {
		c.Output.Paths.LLMSTxt = filepath.Join(dir, filepath.Base(c.Output.Paths.LLMSTxt))
		c.Output.Paths.LLMSFullTxt = filepath.Join(dir, filepath.Base(c.Output.Paths.LLMSFullTxt))
		c.Output.Paths.Citations = filepath.Join(dir, filepath.Base(c.Output.Paths.Citations))
	}
}

// SectionDefaults derives the fallbacks sections inherit during resolution.
func (c *Config) SectionDefaults() manifest.Defaults {
	return manifest.Defaults{
		RouteStyle:   c.Site.DefaultRouteStyle,
		Locale:       c.Site.DefaultLocale,
		BrandLocales: c.Brand.Locales,
	}
}

// RegisterPathname attaches a custom pathname function to a section.
// Pathname functions cannot come from YAML; embedders register them after
// load for sections with route_style: custom.
func (c *Config) RegisterPathname(sectionKey string, fn manifest.PathnameFunc) error {
	sec, ok := c.Manifests[sectionKey]
	if !ok {
		return fmt.Errorf("no manifest section %q", sectionKey)
	}
	sec.PathnameFor = fn
	c.Manifests[sectionKey] = sec
	return nil
}

// Validate checks structural invariants. A failure here is fatal for the
// run; nothing downstream recovers from a bad site description.
func (c *Config) Validate() error {
	if _, err := urlnorm.ParseBase(c.Site.BaseURL); err != nil {
		return fmt.Errorf("site.base_url: %w", err)
	}

	switch c.Format.TrailingSlash {
	case urlnorm.TrailingAlways, urlnorm.TrailingNever, urlnorm.TrailingPreserve:
	default:
		return fmt.Errorf("format.trailing_slash: unknown policy %q", c.Format.TrailingSlash)
	}
	switch c.Format.LineEndings {
	case "lf", "crlf":
	default:
		return fmt.Errorf("format.line_endings: must be lf or crlf, got %q", c.Format.LineEndings)
	}
	switch c.Format.LocaleStrategy {
	case "prefix", "subdomain":
	default:
		return fmt.Errorf("format.locale_strategy: must be prefix or subdomain, got %q", c.Format.LocaleStrategy)
	}

	for key, sec := range c.Manifests {
		if sec.RouteStyle == manifest.RouteCustom && sec.PathnameFor == nil {
			return fmt.Errorf("manifests.%s: route_style custom requires a registered pathname function", key)
		}
		if sec.RouteStyle == manifest.RouteLocaleSegment && sec.SectionPath == "" {
			return fmt.Errorf("manifests.%s: route_style locale-segment requires section_path", key)
		}
		for i, it := range sec.Items {
			if it.Priority < 0 || it.Priority > 100 {
				return fmt.Errorf("manifests.%s.items[%d]: priority %d out of range 0-100", key, i, it.Priority)
			}
		}
	}

	for _, p := range c.Output.Paths.All() {
		if p == "" {
			return fmt.Errorf("output.paths: all three artifact paths must be set")
		}
	}

	return nil
}
