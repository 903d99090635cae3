package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beyondcx/metrics-cli/internal/model"
)

var (
	analyzeOut  string
	analyzeSave bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <export-file>",
	Short: "Analyze an interaction-log export (CSV or XLSX)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, err := buildPipeline(cfg)
		if err != nil {
			return err
		}

		result, runErr := pipeline.RunFile(cmd.Context(), args[0])

		if analyzeSave {
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			run := model.Run{SourceFile: args[0], CreatedAt: time.Now().UTC()}
			if runErr != nil {
				run.ID = model.NewRunID()
				run.Status = model.RunFailed
				run.Error = runErr.Error()
			} else {
				run.ID = result.RunID
				run.Status = model.RunComplete
			}
			if err := st.SaveRun(cmd.Context(), run, result); err != nil {
				zap.L().Warn("save run", zap.Error(err))
			}
		}
		if runErr != nil {
			return runErr
		}

		out := os.Stdout
		if analyzeOut != "" {
			f, err := os.Create(analyzeOut)
			if err != nil {
				return eris.Wrap(err, "analyze: create output file")
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(result), "analyze: encode result")
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "write the result JSON to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "record the run in the configured store")
	rootCmd.AddCommand(analyzeCmd)
}
