package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/beyondcx/metrics-cli/internal/scoring"
)

var scoreSignals scoring.QueueSignals

// scoreCmd scores a hypothetical queue from explicit metrics. Useful for
// checking what a queue would need to reach a tier without running a
// full export through the pipeline.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a queue from explicit metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		score, breakdown := scoring.Score(scoreSignals)
		tier, flags := scoring.Classify(score, scoreSignals)

		out := struct {
			Score     float64  `json:"score"`
			Tier      string   `json:"tier"`
			RedFlags  []string `json:"red_flags,omitempty"`
			Breakdown any      `json:"breakdown"`
		}{Score: score, Tier: string(tier), RedFlags: flags, Breakdown: breakdown}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	scoreCmd.Flags().Float64Var(&scoreSignals.CV, "cv", 0, "AHT coefficient of variation")
	scoreCmd.Flags().Float64Var(&scoreSignals.FCR, "fcr", 0, "strict FCR fraction (0-1)")
	scoreCmd.Flags().Float64Var(&scoreSignals.TransferRate, "transfer", 0, "transfer rate fraction (0-1)")
	scoreCmd.Flags().Float64Var(&scoreSignals.MonthlyVolume, "monthly-volume", 0, "interactions per month")
	scoreCmd.Flags().Float64Var(&scoreSignals.ValidFraction, "valid-fraction", 1, "fraction of valid records (0-1)")
	scoreCmd.Flags().Float64Var(&scoreSignals.AHTMean, "aht", 0, "mean handle time in seconds")
	rootCmd.AddCommand(scoreCmd)
}
