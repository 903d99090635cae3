package main

import (
	"context"

	"github.com/beyondcx/metrics-cli/internal/analysis"
	"github.com/beyondcx/metrics-cli/internal/config"
	"github.com/beyondcx/metrics-cli/internal/economics"
	"github.com/beyondcx/metrics-cli/internal/metrics"
	"github.com/beyondcx/metrics-cli/internal/normalize"
	"github.com/beyondcx/metrics-cli/internal/scoring"
	"github.com/beyondcx/metrics-cli/internal/store"
)

// buildPipeline maps the loaded configuration onto the per-stage options.
func buildPipeline(cfg *config.Config) (*analysis.Pipeline, error) {
	segments, err := config.LoadSegmentMap(cfg.Segments.File)
	if err != nil {
		return nil, err
	}

	table := economics.CostTable{
		HumanCPI:     cfg.Economics.HumanCPI,
		BotCPI:       cfg.Economics.BotCPI,
		AssistCPI:    cfg.Economics.AssistCPI,
		AugmentCPI:   cfg.Economics.AugmentCPI,
		AutomateRate: cfg.Economics.AutomateRate,
		AssistRate:   cfg.Economics.AssistRate,
		AugmentRate:  cfg.Economics.AugmentRate,
	}

	opts := analysis.DefaultOptions()
	opts.Normalize = normalize.Options{
		NoiseThresholdSecs:  cfg.Analysis.NoiseThresholdSecs,
		ZombieThresholdSecs: cfg.Analysis.ZombieThresholdSecs,
	}
	opts.Metrics = metrics.Options{
		HourlyLaborCost:    cfg.Analysis.HourlyLaborCost,
		ProductivityFactor: cfg.Analysis.ProductivityFactor,
		Workers:            cfg.Analysis.Workers,
	}
	opts.Scoring = scoring.Options{
		MinSkillVolume:  cfg.Analysis.MinSkillVolume,
		MinQueueVolume:  cfg.Analysis.MinQueueVolume,
		MinValidRecords: cfg.Analysis.MinValidRecords,
		ResolveSegment:  segments.Resolve,
	}
	opts.Economics.Table = table
	opts.Economics.DiscountRate = cfg.Economics.DiscountRate
	opts.Economics.LeadTimeMonths = cfg.Economics.LeadTimeMonths
	opts.Economics.FallbackInvestment = cfg.Economics.FallbackInvestment
	opts.Roadmap.Table = table

	return analysis.New(opts), nil
}

// openStore opens the configured run-history store and runs migrations.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
