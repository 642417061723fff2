package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"llmsbeacon/internal/canonical"
	"llmsbeacon/internal/probe"
	"llmsbeacon/internal/report"
)

var (
	probeConcurrency int
	probeTimeout     time.Duration
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that every canonical URL is live",
	Long: `Resolves the manifest and issues a GET against each canonical URL.
Failures are advisory warnings; probe never changes the artifacts.`,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().IntVar(&probeConcurrency, "concurrency", 8, "Concurrent requests")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 10*time.Second, "Per-request timeout")
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bundle, err := canonical.Assemble(cfg)
	if err != nil {
		return fmt.Errorf("resolve canonical urls: %w", err)
	}

	results, err := probe.Run(context.Background(), bundle.URLs, probe.Options{
		Concurrency: probeConcurrency,
		Timeout:     probeTimeout,
	})
	if err != nil {
		return err
	}

	ok := 0
	for _, r := range results {
		if r.OK() {
			ok++
		}
	}
	logger.Info("probe finished",
		zap.Int("total", len(results)),
		zap.Int("ok", ok))

	styles := report.AutoStyles()
	if issues := probe.ToIssues(results); len(issues) > 0 {
		fmt.Print(styles.Issues(issues))
	}
	fmt.Printf("%d/%d urls answered 2xx\n", ok, len(results))
	return nil
}
