package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"llmsbeacon/internal/check"
	"llmsbeacon/internal/report"
	"llmsbeacon/internal/types"
)

var (
	failThreshold string
	checkJSON     bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the on-disk artifacts against the config",
	Long: `Re-derives the expected artifacts from the config and compares them to
what is on disk. Reports missing or empty files, policy violations and
the first point of divergence for mismatched content.

Exit status: 0 on pass, 1 on warn, 2 on fail.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&failThreshold, "fail-on", "error", "Disposition threshold: error or warn")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit the full report as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rep, err := check.Run(cfg, check.Options{FailThreshold: failThreshold})
	if err != nil {
		return err
	}
	logger.Info("check finished",
		zap.String("run_id", rep.RunID),
		zap.String("disposition", string(rep.Disposition)),
		zap.Duration("elapsed", rep.Elapsed))

	if checkJSON {
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		styles := report.AutoStyles()
		if out := styles.Issues(rep.Issues); out != "" {
			fmt.Print(out)
		}
		fmt.Println(styles.Summary(rep.Disposition, rep.Errors, rep.Warnings, rep.Infos))
	}

	switch rep.Disposition {
	case types.DispositionWarn:
		os.Exit(1)
	case types.DispositionFail:
		os.Exit(2)
	}
	return nil
}
