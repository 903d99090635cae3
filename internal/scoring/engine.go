package scoring

import (
	"go.uber.org/zap"

	"github.com/beyondcx/metrics-cli/internal/grouping"
	"github.com/beyondcx/metrics-cli/internal/metrics"
	"github.com/beyondcx/metrics-cli/internal/model"
)

// Options configures the drilldown thresholds.
type Options struct {
	MinSkillVolume  int // skills below this stay out of the drilldown
	MinQueueVolume  int // queues below this are discarded
	MinValidRecords int // minimum valid records for variability stats

	// ResolveSegment maps a (skill, queue) pair to a customer segment
	// name. Optional; the zero value leaves Segment empty.
	ResolveSegment func(skill, queue string) string
}

// DefaultOptions matches the reference thresholds.
func DefaultOptions() Options {
	return Options{MinSkillVolume: 10, MinQueueVolume: 5, MinValidRecords: 3}
}

// DropStats counts the groups excluded from the drilldown. Dropped groups
// still contribute to skill-level totals upstream.
type DropStats struct {
	SkillsBelowMinVolume    int
	QueuesBelowMinVolume    int
	QueuesInsufficientValid int
}

// Engine builds the per-queue drilldown with scores and tiers.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Drilldown groups records by skill and then by original-queue id,
// scores and classifies each surviving queue, and rolls the queues back
// up into volume-weighted skill aggregates. months is the dataset's
// observed span, used to derive monthly volumes.
func (e *Engine) Drilldown(records []model.InteractionRecord, months int) ([]model.SkillDrilldown, DropStats) {
	var drops DropStats
	skills, bySkill := grouping.GroupBy(records, func(r model.InteractionRecord) string { return r.Skill })

	out := make([]model.SkillDrilldown, 0, len(skills))
	for _, skill := range skills {
		skillRecords := bySkill[skill]
		if len(skillRecords) < e.opts.MinSkillVolume {
			drops.SkillsBelowMinVolume++
			continue
		}

		queues := e.queueMetrics(skill, skillRecords, months, &drops)
		if len(queues) == 0 {
			continue
		}
		out = append(out, rollup(skill, queues))
	}

	zap.L().Debug("built drilldown",
		zap.Int("skills", len(out)),
		zap.Int("queues_below_min", drops.QueuesBelowMinVolume),
		zap.Int("queues_insufficient_valid", drops.QueuesInsufficientValid))
	return out, drops
}

func (e *Engine) queueMetrics(skill string, records []model.InteractionRecord, months int, drops *DropStats) []model.QueueMetrics {
	queueIDs, byQueue := grouping.GroupBy(records, func(r model.InteractionRecord) string { return r.Queue })

	out := make([]model.QueueMetrics, 0, len(queueIDs))
	for _, queueID := range queueIDs {
		queueRecords := byQueue[queueID]
		if len(queueRecords) < e.opts.MinQueueVolume {
			drops.QueuesBelowMinVolume++
			continue
		}

		stats := metrics.Compute(queueRecords)
		if stats.ValidVolume < e.opts.MinValidRecords {
			drops.QueuesInsufficientValid++
			continue
		}

		monthly := metrics.MonthlyVolume(stats.Volume, months)
		sig := QueueSignals{
			CV:            stats.AHTCV,
			FCR:           stats.FCRStrict / 100,
			TransferRate:  stats.TransferRate / 100,
			MonthlyVolume: monthly,
			ValidFraction: float64(stats.ValidVolume) / float64(stats.Volume),
			AHTMean:       stats.AHTMean,
		}
		score, breakdown := Score(sig)
		tier, flags := Classify(score, sig)

		qm := model.QueueMetrics{
			Skill:           skill,
			Queue:           queueID,
			Volume:          stats.Volume,
			ValidVolume:     stats.ValidVolume,
			MonthlyVolume:   monthly,
			AHTMean:         stats.AHTMean,
			AHTStdDev:       stats.AHTStdDev,
			AHTCV:           stats.AHTCV,
			TransferRate:    stats.TransferRate,
			FCRTechnical:    stats.FCRTechnical,
			FCRStrict:       stats.FCRStrict,
			AbandonmentRate: stats.AbandonmentRate,
			Score:           score,
			Breakdown:       breakdown,
			Tier:            tier,
			RedFlags:        flags,
		}
		if e.opts.ResolveSegment != nil {
			qm.Segment = e.opts.ResolveSegment(skill, queueID)
		}
		out = append(out, qm)
	}
	return out
}

// rollup aggregates a skill's queues into a volume-weighted summary. The
// skill carries its most automatable queue's tier, and is a priority
// candidate when any queue reached AUTOMATE.
func rollup(skill string, queues []model.QueueMetrics) model.SkillDrilldown {
	d := model.SkillDrilldown{Skill: skill, Tier: model.TierHumanOnly, Queues: queues}

	var score, aht, cv, transfer, fcr, abandon float64
	for _, q := range queues {
		w := float64(q.Volume)
		d.Volume += q.Volume
		d.MonthlyVolume += q.MonthlyVolume
		score += q.Score * w
		aht += q.AHTMean * w
		cv += q.AHTCV * w
		transfer += q.TransferRate * w
		fcr += q.FCRStrict * w
		abandon += q.AbandonmentRate * w
		if q.Tier.Rank() > d.Tier.Rank() {
			d.Tier = q.Tier
		}
		if q.Tier == model.TierAutomate {
			d.PriorityCandidate = true
		}
	}
	if d.Volume > 0 {
		total := float64(d.Volume)
		d.Score = round1(score / total)
		d.AHTMean = aht / total
		d.AHTCV = cv / total
		d.TransferRate = transfer / total
		d.FCRStrict = fcr / total
		d.AbandonmentRate = abandon / total
	}
	return d
}
