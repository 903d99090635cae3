// Package economics builds the tiered TCO savings projection for a
// scored queue portfolio.
package economics

import (
	"math"

	"go.uber.org/zap"

	"github.com/beyondcx/metrics-cli/internal/model"
)

// CostTable holds the per-interaction costs and containment rates behind
// the savings model. All four CPIs are business assumptions carried from
// the reference analysis, not measured quantities.
type CostTable struct {
	HumanCPI   float64
	BotCPI     float64
	AssistCPI  float64
	AugmentCPI float64

	AutomateRate float64 // containment for AUTOMATE queues
	AssistRate   float64
	AugmentRate  float64
}

// DefaultCostTable returns the reference assumptions: human contact
// €2.33, bot €0.15, assisted €1.50, augmented €2.00; containment 70%,
// 30% and 15%.
func DefaultCostTable() CostTable {
	return CostTable{
		HumanCPI:   2.33,
		BotCPI:     0.15,
		AssistCPI:  1.50,
		AugmentCPI: 2.00,

		AutomateRate: 0.70,
		AssistRate:   0.30,
		AugmentRate:  0.15,
	}
}

// TierCPI returns the cost per interaction once the tier's automation is
// in place.
func (t CostTable) TierCPI(tier model.Tier) float64 {
	switch tier {
	case model.TierAutomate:
		return t.BotCPI
	case model.TierAssist:
		return t.AssistCPI
	case model.TierAugment:
		return t.AugmentCPI
	default:
		return t.HumanCPI
	}
}

// Rate returns the containment rate for a tier. HUMAN_ONLY contains
// nothing and so saves nothing.
func (t CostTable) Rate(tier model.Tier) float64 {
	switch tier {
	case model.TierAutomate:
		return t.AutomateRate
	case model.TierAssist:
		return t.AssistRate
	case model.TierAugment:
		return t.AugmentRate
	default:
		return 0
	}
}

// AnnualSavings projects one tier's yearly savings from its monthly
// volume.
func (t CostTable) AnnualSavings(tier model.Tier, monthlyVolume float64) float64 {
	return monthlyVolume * 12 * t.Rate(tier) * (t.HumanCPI - t.TierCPI(tier))
}

// Options configures the model builder.
type Options struct {
	Table          CostTable
	DiscountRate   float64 // annual, e.g. 0.10
	LeadTimeMonths int     // implementation time before savings start
	HorizonYears   int

	FallbackInvestment float64 // used when no roadmap exists yet
	FallbackRecurrent  float64 // fraction of investment, fallback path
	RoadmapRecurrent   float64 // fraction of investment, roadmap path
}

func DefaultOptions() Options {
	return Options{
		Table:              DefaultCostTable(),
		DiscountRate:       0.10,
		LeadTimeMonths:     9,
		HorizonYears:       3,
		FallbackInvestment: 100000,
		FallbackRecurrent:  0.15,
		RoadmapRecurrent:   0.50,
	}
}

// Builder derives the portfolio economic model.
type Builder struct {
	opts Options
}

func NewBuilder(opts Options) *Builder {
	if opts.HorizonYears <= 0 {
		opts.HorizonYears = 3
	}
	return &Builder{opts: opts}
}

// tierOrder fixes the ByTier output ordering.
var tierOrder = []model.Tier{model.TierAutomate, model.TierAssist, model.TierAugment, model.TierHumanOnly}

// Build aggregates the drilldown's queues by tier and projects savings,
// investment, payback, ROI and NPV. currentAnnualCost is the annualized
// human-handled cost of the whole portfolio; the roadmap supplies the
// investment figure, with a fixed fallback when it is empty.
func (b *Builder) Build(drilldown []model.SkillDrilldown, roadmap []model.RoadmapInitiative, currentAnnualCost float64) model.EconomicModel {
	byTier := make(map[model.Tier]*model.TierEconomics, len(tierOrder))
	for _, tier := range tierOrder {
		byTier[tier] = &model.TierEconomics{
			Tier:            tier,
			ContainmentRate: b.opts.Table.Rate(tier),
			TierCPI:         b.opts.Table.TierCPI(tier),
		}
	}
	for _, skill := range drilldown {
		for _, q := range skill.Queues {
			te := byTier[q.Tier]
			if te == nil {
				te = byTier[model.TierHumanOnly]
			}
			te.Queues++
			te.MonthlyVolume += q.MonthlyVolume
		}
	}

	m := model.EconomicModel{CurrentAnnualCost: currentAnnualCost}
	for _, tier := range tierOrder {
		te := byTier[tier]
		te.AnnualSavings = b.opts.Table.AnnualSavings(tier, te.MonthlyVolume)
		m.GrossAnnualSavings += te.AnnualSavings
		m.ByTier = append(m.ByTier, *te)
	}
	m.ProjectedAnnualCost = math.Max(0, currentAnnualCost-m.GrossAnnualSavings)

	if len(roadmap) > 0 {
		for _, init := range roadmap {
			m.InitialInvestment += init.Investment
		}
		m.RecurrentAnnualCost = m.InitialInvestment * b.opts.RoadmapRecurrent
	} else {
		m.InitialInvestment = b.opts.FallbackInvestment
		m.RecurrentAnnualCost = m.InitialInvestment * b.opts.FallbackRecurrent
	}

	m.NetAnnualSavings = m.GrossAnnualSavings - m.RecurrentAnnualCost
	m.PaybackMonths = b.payback(m.InitialInvestment, m.NetAnnualSavings)
	m.ROI3YearPct = b.roi(m.GrossAnnualSavings, m.InitialInvestment, m.RecurrentAnnualCost)
	m.NPV3Year = b.npv(m.InitialInvestment, m.NetAnnualSavings)

	zap.L().Debug("built economic model",
		zap.Float64("gross_annual_savings", m.GrossAnnualSavings),
		zap.Float64("investment", m.InitialInvestment),
		zap.Int("payback_months", m.PaybackMonths))
	return m
}

// payback is the lead time plus the months of net savings needed to
// recover the investment. Zero means not applicable.
func (b *Builder) payback(investment, netAnnual float64) int {
	if netAnnual <= 0 || investment <= 0 {
		return 0
	}
	return b.opts.LeadTimeMonths + int(math.Ceil(investment/(netAnnual/12)))
}

func (b *Builder) roi(grossAnnual, investment, recurrent float64) float64 {
	years := float64(b.opts.HorizonYears)
	totalCost := investment + recurrent*years
	if totalCost <= 0 {
		return 0
	}
	return (grossAnnual*years - totalCost) / totalCost * 100
}

func (b *Builder) npv(investment, netAnnual float64) float64 {
	npv := -investment
	for t := 1; t <= b.opts.HorizonYears; t++ {
		npv += netAnnual / math.Pow(1+b.opts.DiscountRate, float64(t))
	}
	return npv
}
