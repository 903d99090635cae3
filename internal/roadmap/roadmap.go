// Package roadmap ranks automation opportunities and buckets them into a
// phased implementation plan.
package roadmap

import (
	"sort"

	"github.com/beyondcx/metrics-cli/internal/economics"
	"github.com/beyondcx/metrics-cli/internal/model"
)

// Options configures the ranker. The investment fractions are heuristic
// business assumptions: each initiative's build cost is taken as a fixed
// share of its own projected annual savings.
type Options struct {
	Table            economics.CostTable
	MaxOpportunities int
	HighScore        float64 // AUTOMATE queues at or above split into the core wave

	FollowOnMonthlyVolume float64 // AUGMENT+HUMAN_ONLY volume that triggers the follow-on

	AutomateCoreFraction     float64
	AutomateResidualFraction float64
	AssistFraction           float64
	AugmentFraction          float64
	PostStandardization      float64
}

func DefaultOptions() Options {
	return Options{
		Table:                 economics.DefaultCostTable(),
		MaxOpportunities:      10,
		HighScore:             8.0,
		FollowOnMonthlyVolume: 5000,

		AutomateCoreFraction:     0.25,
		AutomateResidualFraction: 0.40,
		AssistFraction:           0.50,
		AugmentFraction:          0.80,
		PostStandardization:      0.60,
	}
}

// Ranker derives opportunities and the phased roadmap from a scored
// drilldown.
type Ranker struct {
	opts Options
}

func NewRanker(opts Options) *Ranker {
	if opts.MaxOpportunities <= 0 {
		opts.MaxOpportunities = 10
	}
	return &Ranker{opts: opts}
}

func queueLabel(q model.QueueMetrics) string {
	if q.Queue == "" {
		return q.Skill
	}
	return q.Skill + "/" + q.Queue
}

func flatten(drilldown []model.SkillDrilldown) []model.QueueMetrics {
	var queues []model.QueueMetrics
	for _, skill := range drilldown {
		queues = append(queues, skill.Queues...)
	}
	return queues
}

// Opportunities flattens all non-HUMAN_ONLY queues, prices each with its
// tier's savings formula, and returns the top entries sorted by savings
// descending. Impact is the savings scaled to [1,10] against the best
// candidate; feasibility is the queue's own score.
func (r *Ranker) Opportunities(drilldown []model.SkillDrilldown) []model.Opportunity {
	var out []model.Opportunity
	for _, q := range flatten(drilldown) {
		if q.Tier == model.TierHumanOnly {
			continue
		}
		out = append(out, model.Opportunity{
			Label:         queueLabel(q),
			Skill:         q.Skill,
			Queue:         q.Queue,
			Tier:          q.Tier,
			MonthlyVolume: q.MonthlyVolume,
			AnnualSavings: r.opts.Table.AnnualSavings(q.Tier, q.MonthlyVolume),
			Feasibility:   q.Score,
		})
	}
	if len(out) == 0 {
		return nil
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AnnualSavings != out[j].AnnualSavings {
			return out[i].AnnualSavings > out[j].AnnualSavings
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > r.opts.MaxOpportunities {
		out = out[:r.opts.MaxOpportunities]
	}

	max := out[0].AnnualSavings
	for i := range out {
		out[i].Rank = i + 1
		if max > 0 {
			out[i].Impact = 1 + 9*out[i].AnnualSavings/max
		} else {
			out[i].Impact = 1
		}
	}
	return out
}

// Build buckets the scored queues into three phases. The AUTOMATE phase
// splits into a high-score core wave and a residual wave; a
// post-standardization automation follow-on is synthesized when the
// AUGMENT and HUMAN_ONLY queues together carry enough volume to be worth
// standardizing first.
func (r *Ranker) Build(drilldown []model.SkillDrilldown) []model.RoadmapInitiative {
	var core, residual, assist, augment, manual []model.QueueMetrics
	for _, q := range flatten(drilldown) {
		switch q.Tier {
		case model.TierAutomate:
			if q.Score >= r.opts.HighScore {
				core = append(core, q)
			} else {
				residual = append(residual, q)
			}
		case model.TierAssist:
			assist = append(assist, q)
		case model.TierAugment:
			augment = append(augment, q)
		default:
			manual = append(manual, q)
		}
	}

	var out []model.RoadmapInitiative
	add := func(phase model.Phase, name string, tier model.Tier, queues []model.QueueMetrics, fraction float64, startMonth int) {
		if len(queues) == 0 {
			return
		}
		init := model.RoadmapInitiative{Phase: phase, Name: name, StartMonth: startMonth}
		for _, q := range queues {
			init.Queues = append(init.Queues, queueLabel(q))
			init.MonthlyVolume += q.MonthlyVolume
		}
		init.AnnualSavings = r.opts.Table.AnnualSavings(tier, init.MonthlyVolume)
		init.Investment = init.AnnualSavings * fraction
		out = append(out, init)
	}

	add(model.PhaseAutomate, "Core automation", model.TierAutomate, core, r.opts.AutomateCoreFraction, 1)
	add(model.PhaseAutomate, "Residual automation", model.TierAutomate, residual, r.opts.AutomateResidualFraction, 4)
	add(model.PhaseAssist, "Agent assistance", model.TierAssist, assist, r.opts.AssistFraction, 7)
	add(model.PhaseAugment, "Agent augmentation", model.TierAugment, augment, r.opts.AugmentFraction, 10)

	var followOnVolume float64
	for _, q := range append(augment, manual...) {
		followOnVolume += q.MonthlyVolume
	}
	if followOnVolume > r.opts.FollowOnMonthlyVolume {
		followOn := append(append([]model.QueueMetrics(nil), augment...), manual...)
		add(model.PhaseAugment, "Post-standardization automation", model.TierAutomate,
			followOn, r.opts.PostStandardization, 13)
	}
	return out
}
