// Package metrics aggregates normalized interaction records into per-skill
// and per-group operational statistics.
package metrics

import (
	"math"

	"github.com/beyondcx/metrics-cli/internal/model"
)

// Stats is the common statistical block computed for any group of records
// (a skill or a queue). Handle-time statistics run over the valid subset
// only; the rates run over the whole group. Rates are percentages.
type Stats struct {
	Volume          int
	ValidVolume     int
	AHTMean         float64
	AHTStdDev       float64
	AHTCV           float64
	TransferRate    float64
	FCRTechnical    float64
	FCRStrict       float64
	AbandonmentRate float64
}

// Compute derives the statistical block for one group. Every division
// guards its denominator and degrades to 0; a dirty group never aborts
// the run.
func Compute(records []model.InteractionRecord) Stats {
	s := Stats{Volume: len(records)}
	if s.Volume == 0 {
		return s
	}

	var handleTimes []float64
	var transfers, strictFCR, abandoned int
	for _, r := range records {
		if r.Status == model.StatusValid {
			handleTimes = append(handleTimes, r.HandleTime())
		}
		if r.Transferred {
			transfers++
		}
		if r.FCRStrict {
			strictFCR++
		}
		if r.Status == model.StatusAbandoned {
			abandoned++
		}
	}

	s.ValidVolume = len(handleTimes)
	s.AHTMean, s.AHTStdDev = meanStdDev(handleTimes)
	if s.AHTMean > 0 {
		s.AHTCV = s.AHTStdDev / s.AHTMean
	}

	total := float64(s.Volume)
	s.TransferRate = 100 * float64(transfers) / total
	s.FCRTechnical = 100 - s.TransferRate
	s.FCRStrict = 100 * float64(strictFCR) / total
	s.AbandonmentRate = 100 * float64(abandoned) / total
	return s
}

// meanStdDev returns the mean and population standard deviation.
func meanStdDev(values []float64) (mean, stddev float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / n

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	stddev = math.Sqrt(sq / n)
	return mean, stddev
}
