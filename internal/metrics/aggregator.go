package metrics

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/beyondcx/metrics-cli/internal/grouping"
	"github.com/beyondcx/metrics-cli/internal/model"
)

// Options configures the aggregator.
type Options struct {
	HourlyLaborCost    float64 // currency per hour
	ProductivityFactor float64 // effective productivity used to gross up cost
	Workers            int     // per-skill fan-out width; <=0 means GOMAXPROCS
}

// DefaultOptions matches the reference cost assumptions: €20/hour labor at
// 70% effective productivity.
func DefaultOptions() Options {
	return Options{HourlyLaborCost: 20, ProductivityFactor: 0.70}
}

// Aggregator computes per-skill operational metrics.
type Aggregator struct {
	opts Options
}

func NewAggregator(opts Options) *Aggregator {
	if opts.ProductivityFactor <= 0 {
		opts.ProductivityFactor = 0.70
	}
	return &Aggregator{opts: opts}
}

// SkillMetrics groups records by skill and computes each skill's metrics.
// Skills are computed concurrently; each skill only reads its own
// partition, so the fan-out needs no locking. Output order follows the
// first appearance of each skill in the input.
func (a *Aggregator) SkillMetrics(ctx context.Context, records []model.InteractionRecord) ([]model.SkillMetrics, error) {
	skills, groups := grouping.GroupBy(records, func(r model.InteractionRecord) string { return r.Skill })

	out := make([]model.SkillMetrics, len(skills))
	g, ctx := errgroup.WithContext(ctx)
	if a.opts.Workers > 0 {
		g.SetLimit(a.opts.Workers)
	}
	for i, skill := range skills {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = a.skillMetrics(skill, groups[skill])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Debug("aggregated skill metrics",
		zap.Int("skills", len(out)),
		zap.Int("records", len(records)))
	return out, nil
}

func (a *Aggregator) skillMetrics(skill string, records []model.InteractionRecord) model.SkillMetrics {
	stats := Compute(records)
	m := model.SkillMetrics{
		Skill:           skill,
		Volume:          stats.Volume,
		ValidVolume:     stats.ValidVolume,
		AHTMean:         stats.AHTMean,
		AHTStdDev:       stats.AHTStdDev,
		AHTCV:           stats.AHTCV,
		TransferRate:    stats.TransferRate,
		FCRTechnical:    stats.FCRTechnical,
		FCRStrict:       stats.FCRStrict,
		AbandonmentRate: stats.AbandonmentRate,
	}
	m.TotalCost, m.CostPerInteraction = a.cost(records)
	return m
}

// cost prices the non-abandoned subset at the configured labor rate,
// grossed up by the productivity factor.
func (a *Aggregator) cost(records []model.InteractionRecord) (total, perInteraction float64) {
	var costVolume int
	var ahtSum float64
	for _, r := range records {
		if r.Status == model.StatusAbandoned {
			continue
		}
		costVolume++
		ahtSum += r.HandleTime()
	}
	if costVolume == 0 {
		return 0, 0
	}

	ahtForCost := ahtSum / float64(costVolume)
	raw := (ahtForCost / 3600) * a.opts.HourlyLaborCost * float64(costVolume)
	total = raw / a.opts.ProductivityFactor
	return total, total / float64(costVolume)
}
