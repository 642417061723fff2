package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"llmsbeacon/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate artifacts whenever the config changes",
	Long: `Runs one generation pass, then watches the config file and regenerates
all artifacts each time it changes. Stops on Ctrl-C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := generateArtifacts(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	cw, err := watch.New(configPath, func(ctx context.Context) {
		// Reload so edits to output paths and format take effect.
		cfg, err := loadConfig()
		if err != nil {
			logger.Error("config reload failed", zap.Error(err))
			return
		}
		if err := generateArtifacts(cfg); err != nil {
			logger.Error("regeneration failed", zap.Error(err))
			return
		}
		fmt.Println("regenerated")
	})
	if err != nil {
		return err
	}
	if err := cw.Start(ctx); err != nil {
		return err
	}
	defer cw.Stop()

	fmt.Printf("watching %s (Ctrl-C to stop)\n", configPath)
	select {
	case <-sigCh:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
	}
	return nil
}
