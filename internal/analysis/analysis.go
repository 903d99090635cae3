// Package analysis wires the pipeline stages together: normalize,
// aggregate, score, plan, price.
package analysis

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/beyondcx/metrics-cli/internal/economics"
	"github.com/beyondcx/metrics-cli/internal/ingest"
	"github.com/beyondcx/metrics-cli/internal/metrics"
	"github.com/beyondcx/metrics-cli/internal/model"
	"github.com/beyondcx/metrics-cli/internal/normalize"
	"github.com/beyondcx/metrics-cli/internal/roadmap"
	"github.com/beyondcx/metrics-cli/internal/scoring"
)

// Options bundles the per-stage configuration.
type Options struct {
	Normalize normalize.Options
	Metrics   metrics.Options
	Scoring   scoring.Options
	Economics economics.Options
	Roadmap   roadmap.Options
}

func DefaultOptions() Options {
	return Options{
		Normalize: normalize.DefaultOptions(),
		Metrics:   metrics.DefaultOptions(),
		Scoring:   scoring.DefaultOptions(),
		Economics: economics.DefaultOptions(),
		Roadmap:   roadmap.DefaultOptions(),
	}
}

// Pipeline runs the full analysis. The computation itself is pure: the
// same records and options always produce the same metrics, scores,
// tiers and economics. Only RunID and GeneratedAt differ across reruns.
type Pipeline struct {
	opts Options
}

func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// RunFile ingests an export file and analyzes it. A file that yields no
// usable rows is the one fatal condition; everything past ingestion
// degrades instead of failing.
func (p *Pipeline) RunFile(ctx context.Context, path string) (*model.AnalysisResult, error) {
	rowCh, errCh, err := ingest.Stream(ctx, path)
	if err != nil {
		return nil, err
	}

	normalizer := normalize.New(p.opts.Normalize)
	var records []model.InteractionRecord
	for row := range rowCh {
		if rec, ok := normalizer.Record(row); ok {
			records = append(records, rec)
		}
	}
	if err := <-errCh; err != nil {
		return nil, eris.Wrap(err, "analysis: read export")
	}
	if len(records) == 0 {
		return nil, eris.Errorf("analysis: %s contains no usable interaction rows", path)
	}

	result, err := p.Analyze(ctx, records, normalizer.Diagnostics())
	if err != nil {
		return nil, err
	}
	result.SourceFile = path
	return result, nil
}

// Analyze runs the pipeline over normalized records. diag carries the
// normalizer's counters; the drilldown drop counts are merged into it.
func (p *Pipeline) Analyze(ctx context.Context, records []model.InteractionRecord, diag model.Diagnostics) (*model.AnalysisResult, error) {
	started := time.Now()

	aggregator := metrics.NewAggregator(p.opts.Metrics)
	skills, err := aggregator.SkillMetrics(ctx, records)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: aggregate skills")
	}

	volumetry := metrics.Volumetry(records)

	engine := scoring.NewEngine(p.opts.Scoring)
	drilldown, drops := engine.Drilldown(records, volumetry.MonthsSpanned)
	diag.SkillsBelowMinVolume = drops.SkillsBelowMinVolume
	diag.QueuesBelowMinVolume = drops.QueuesBelowMinVolume
	diag.QueuesInsufficientValid = drops.QueuesInsufficientValid

	ranker := roadmap.NewRanker(p.opts.Roadmap)
	opportunities := ranker.Opportunities(drilldown)
	plan := ranker.Build(drilldown)

	builder := economics.NewBuilder(p.opts.Economics)
	econ := builder.Build(drilldown, plan, annualizedCost(skills, volumetry.MonthsSpanned))

	result := &model.AnalysisResult{
		RunID:         model.NewRunID(),
		GeneratedAt:   time.Now().UTC(),
		Skills:        skills,
		Drilldown:     drilldown,
		Economics:     econ,
		Opportunities: opportunities,
		Roadmap:       plan,
		Volumetry:     volumetry,
		Diagnostics:   diag,
	}

	zap.L().Info("analysis complete",
		zap.String("run_id", result.RunID),
		zap.Int("records", len(records)),
		zap.Int("skills", len(skills)),
		zap.Int("opportunities", len(opportunities)),
		zap.Duration("elapsed", time.Since(started)))
	return result, nil
}

// annualizedCost scales the observed portfolio cost to a yearly figure.
func annualizedCost(skills []model.SkillMetrics, months int) float64 {
	if months < 1 {
		months = 1
	}
	var total float64
	for _, s := range skills {
		total += s.TotalCost
	}
	return total / float64(months) * 12
}
