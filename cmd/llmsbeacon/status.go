package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"llmsbeacon/internal/canonical"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved manifest and artifact state",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bundle, err := canonical.Assemble(cfg)
	if err != nil {
		return fmt.Errorf("resolve canonical urls: %w", err)
	}

	fmt.Printf("config:   %s\n", configPath)
	fmt.Printf("site:     %s (default locale %q, route style %q)\n",
		cfg.Site.BaseURL, cfg.Site.DefaultLocale, cfg.Site.DefaultRouteStyle)
	fmt.Printf("sections: %d\n", len(cfg.Manifests))
	fmt.Printf("urls:     %d canonical (%d entries before dedupe)\n",
		len(bundle.URLs), len(bundle.Entries))

	var configMod time.Time
	if info, err := os.Stat(configPath); err == nil {
		configMod = info.ModTime()
	}

	fmt.Println("artifacts:")
	for _, path := range cfg.Output.Paths.All() {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			fmt.Printf("  %-20s missing\n", path)
		case info.Size() == 0:
			fmt.Printf("  %-20s empty\n", path)
		default:
			note := ""
			if !configMod.IsZero() && info.ModTime().Before(configMod) {
				note = " (stale: older than config)"
			}
			fmt.Printf("  %-20s %d bytes, modified %s%s\n",
				path, info.Size(), info.ModTime().Format("2006-01-02 15:04:05"), note)
		}
	}
	return nil
}
