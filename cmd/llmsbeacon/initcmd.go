package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"llmsbeacon/internal/fsio"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Writes a commented starter config to the --config path. Refuses to
overwrite an existing file unless --force is given.`,
	RunE: runInitCmd,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

const starterConfig = `# llmsbeacon configuration.
# Run "llmsbeacon generate" to render llms.txt, llms-full.txt and
# citations.json from this file.

site:
  base_url: https://example.com
  default_locale: en
  # prefix | suffix | locale-segment | custom
  default_route_style: prefix

brand:
  name: Example
  tagline: A short one-line pitch.
  description: A longer paragraph describing the site.
  org: Example Inc.
  locales: [en]

sections:
  hubs:
    - title: Documentation
      url: https://example.com/docs
      description: Product documentation.

manifests:
  blog:
    name: Blog
    section_path: /blog
    items:
      - slug: /hello-world
        title: Hello World
        priority: 80

contact:
  email: hello@example.com

policy:
  citation_rules: Link to the canonical URL when citing.
  forbidden_terms: []
  allowed_phrases: []

output:
  paths:
    llms_txt: llms.txt
    llms_full_txt: llms-full.txt
    citations: citations.json

format:
  trailing_slash: never   # always | never | preserve
  line_endings: lf        # lf | crlf
  locale_strategy: prefix # prefix | subdomain
`

func runInitCmd(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}
	if err := fsio.WriteText(configPath, starterConfig); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", configPath)
	return nil
}
