// Package scoring computes the agentic readiness score and automation
// tier for each (skill, queue) group.
package scoring

import (
	"math"

	"github.com/beyondcx/metrics-cli/internal/model"
)

// QueueSignals is the value object the scorer reads. Rates are fractions
// in [0,1], not percentages.
type QueueSignals struct {
	CV            float64 // AHT coefficient of variation
	FCR           float64 // strict first-contact resolution
	TransferRate  float64
	MonthlyVolume float64
	ValidFraction float64
	AHTMean       float64 // seconds
}

// Sub-score weights. Predictability dominates: a process the agents
// cannot run consistently is not one a machine should run at all.
const (
	weightPredictability = 0.30
	weightResolutivity   = 0.25
	weightVolume         = 0.25
	weightDataQuality    = 0.10
	weightSimplicity     = 0.10
)

// Score computes the five sub-scores and their weighted combination,
// rounded to one decimal in [0,10].
func Score(sig QueueSignals) (float64, model.ScoreBreakdown) {
	b := model.ScoreBreakdown{
		Predictability: predictabilityScore(sig.CV),
		Resolutivity:   0.6*fcrScore(sig.FCR) + 0.4*transferScore(sig.TransferRate),
		Volume:         volumeScore(sig.MonthlyVolume),
		DataQuality:    dataQualityScore(sig.ValidFraction),
		Simplicity:     simplicityScore(sig.AHTMean),
	}
	total := weightPredictability*b.Predictability +
		weightResolutivity*b.Resolutivity +
		weightVolume*b.Volume +
		weightDataQuality*b.DataQuality +
		weightSimplicity*b.Simplicity
	return round1(clamp(total, 0, 10)), b
}

// lerp maps x from [x0,x1] onto [y0,y1] linearly.
func lerp(x, x0, x1, y0, y1 float64) float64 {
	return y0 + (x-x0)/(x1-x0)*(y1-y0)
}

func predictabilityScore(cv float64) float64 {
	switch {
	case cv <= 0.50:
		return 10
	case cv <= 0.65:
		return lerp(cv, 0.50, 0.65, 10, 8)
	case cv <= 0.75:
		return lerp(cv, 0.65, 0.75, 8, 6)
	case cv <= 0.90:
		return lerp(cv, 0.75, 0.90, 6, 3)
	case cv <= 1.10:
		return lerp(cv, 0.90, 1.10, 3, 1)
	default:
		return math.Max(0, 1-(cv-1.10)/0.50)
	}
}

func fcrScore(fcr float64) float64 {
	switch {
	case fcr >= 0.80:
		return 10
	case fcr >= 0.70:
		return lerp(fcr, 0.70, 0.80, 8, 10)
	case fcr >= 0.50:
		return lerp(fcr, 0.50, 0.70, 5, 8)
	case fcr >= 0.30:
		return lerp(fcr, 0.30, 0.50, 2, 5)
	default:
		return fcr / 0.30 * 2
	}
}

func transferScore(t float64) float64 {
	switch {
	case t <= 0.05:
		return 10
	case t <= 0.15:
		return lerp(t, 0.05, 0.15, 10, 8)
	case t <= 0.25:
		return lerp(t, 0.15, 0.25, 8, 5)
	case t <= 0.40:
		return lerp(t, 0.25, 0.40, 5, 2)
	default:
		return math.Max(0, 2-(t-0.40)/0.30*2)
	}
}

func volumeScore(monthly float64) float64 {
	switch {
	case monthly >= 10000:
		return 10
	case monthly >= 5000:
		return lerp(monthly, 5000, 10000, 8, 10)
	case monthly >= 1000:
		return lerp(monthly, 1000, 5000, 6, 8)
	case monthly >= 500:
		return lerp(monthly, 500, 1000, 4, 6)
	case monthly >= 100:
		return lerp(monthly, 100, 500, 1, 4)
	default:
		return math.Max(0, monthly/100)
	}
}

func dataQualityScore(validFrac float64) float64 {
	switch {
	case validFrac >= 0.90:
		return 10
	case validFrac >= 0.75:
		return lerp(validFrac, 0.75, 0.90, 8, 10)
	case validFrac >= 0.50:
		return lerp(validFrac, 0.50, 0.75, 4, 8)
	default:
		return math.Max(0, validFrac/0.50*4)
	}
}

func simplicityScore(ahtSecs float64) float64 {
	switch {
	case ahtSecs <= 180:
		return 10
	case ahtSecs <= 300:
		return lerp(ahtSecs, 180, 300, 10, 8)
	case ahtSecs <= 480:
		return lerp(ahtSecs, 300, 480, 8, 5)
	case ahtSecs <= 720:
		return lerp(ahtSecs, 480, 720, 5, 2)
	default:
		return math.Max(0, 2-(ahtSecs-720)/600*2)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
