package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"llmsbeacon/internal/artifact"
	"llmsbeacon/internal/canonical"
	"llmsbeacon/internal/config"
	"llmsbeacon/internal/fsio"
	"llmsbeacon/internal/logging"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Resolve the manifest and write all three artifacts",
	Long: `Resolves every manifest section into canonical URLs, renders llms.txt,
llms-full.txt and the citation index, and writes them atomically to the
configured output paths. Output is deterministic for a given config; only
the citation timestamp moves between runs.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return generateArtifacts(cfg)
}

// generateArtifacts renders and writes all artifacts. Shared with watch.
func generateArtifacts(cfg *config.Config) error {
	started := time.Now()

	bundle, err := canonical.Assemble(cfg)
	if err != nil {
		return fmt.Errorf("resolve canonical urls: %w", err)
	}
	logger.Info("manifest resolved",
		zap.Int("sections", len(cfg.Manifests)),
		zap.Int("urls", len(bundle.URLs)))

	citations, err := artifact.RenderCitations(cfg, bundle, artifact.CitationOptions{})
	if err != nil {
		return fmt.Errorf("render citations: %w", err)
	}

	outputs := map[string]string{
		cfg.Output.Paths.LLMSTxt:     artifact.RenderBrief(cfg, bundle),
		cfg.Output.Paths.LLMSFullTxt: artifact.RenderFull(cfg, bundle),
		cfg.Output.Paths.Citations:   citations,
	}
	for _, path := range cfg.Output.Paths.All() {
		if err := fsio.WriteText(path, outputs[path]); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("artifact written",
			zap.String("path", path),
			zap.Int("bytes", len(outputs[path])))
	}

	logging.Generate("rendered %d artifacts from %d urls in %s",
		len(outputs), len(bundle.URLs), time.Since(started))
	return nil
}
