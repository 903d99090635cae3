package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beyondcx/metrics-cli/internal/model"
)

func goodSignals() QueueSignals {
	return QueueSignals{
		CV:            0.40,
		FCR:           0.80,
		TransferRate:  0.0,
		MonthlyVolume: 2000,
		ValidFraction: 1.0,
		AHTMean:       300,
	}
}

func TestScoreStableQueue(t *testing.T) {
	score, b := Score(goodSignals())

	assert.InDelta(t, 10, b.Predictability, 1e-9)
	assert.InDelta(t, 10, b.Resolutivity, 1e-9) // FCR 0.80 and no transfers both max out
	assert.GreaterOrEqual(t, b.Simplicity, 8.0) // AHT at the 300s band edge
	assert.LessOrEqual(t, b.Simplicity, 10.0)
	assert.InDelta(t, 10, b.DataQuality, 1e-9)
	assert.GreaterOrEqual(t, score, 7.5)
}

func TestScoreRoundedToOneDecimal(t *testing.T) {
	score, _ := Score(goodSignals())
	assert.InDelta(t, score, float64(int(score*10))/10, 1e-9)
}

func TestPredictabilityBands(t *testing.T) {
	assert.InDelta(t, 10, predictabilityScore(0.50), 1e-9)
	assert.InDelta(t, 8, predictabilityScore(0.65), 1e-9)
	assert.InDelta(t, 9, predictabilityScore(0.575), 1e-9) // midpoint of (0.50,0.65]
	assert.InDelta(t, 6, predictabilityScore(0.75), 1e-9)
	assert.InDelta(t, 3, predictabilityScore(0.90), 1e-9)
	assert.InDelta(t, 1, predictabilityScore(1.10), 1e-9)
	assert.InDelta(t, 0.5, predictabilityScore(1.35), 1e-9)
	assert.Zero(t, predictabilityScore(5))
}

func TestVolumeBands(t *testing.T) {
	assert.InDelta(t, 10, volumeScore(10000), 1e-9)
	assert.InDelta(t, 8, volumeScore(5000), 1e-9)
	assert.InDelta(t, 6, volumeScore(1000), 1e-9)
	assert.InDelta(t, 4, volumeScore(500), 1e-9)
	assert.InDelta(t, 1, volumeScore(100), 1e-9)
	assert.InDelta(t, 0.5, volumeScore(50), 1e-9)
	assert.Zero(t, volumeScore(0))
}

func TestTransferBands(t *testing.T) {
	assert.InDelta(t, 10, transferScore(0.05), 1e-9)
	assert.InDelta(t, 8, transferScore(0.15), 1e-9)
	assert.InDelta(t, 5, transferScore(0.25), 1e-9)
	assert.InDelta(t, 2, transferScore(0.40), 1e-9)
	assert.InDelta(t, 0, transferScore(0.70), 1e-9) // tail reaches zero here, modulo rounding
	assert.Zero(t, transferScore(2))
}

func TestSimplicityBands(t *testing.T) {
	assert.InDelta(t, 10, simplicityScore(120), 1e-9)
	assert.InDelta(t, 8, simplicityScore(300), 1e-9)
	assert.InDelta(t, 5, simplicityScore(480), 1e-9)
	assert.InDelta(t, 2, simplicityScore(720), 1e-9)
	assert.Zero(t, simplicityScore(2000))
}

func TestDataQualityBands(t *testing.T) {
	assert.InDelta(t, 10, dataQualityScore(0.95), 1e-9)
	assert.InDelta(t, 8, dataQualityScore(0.75), 1e-9)
	assert.InDelta(t, 4, dataQualityScore(0.50), 1e-9)
	assert.InDelta(t, 2, dataQualityScore(0.25), 1e-9)
}

func TestClassifyAutomate(t *testing.T) {
	sig := goodSignals()
	score, _ := Score(sig)
	tier, flags := Classify(score, sig)

	assert.Equal(t, model.TierAutomate, tier)
	assert.Empty(t, flags)
}

func TestClassifyRedFlagsPrecedeScore(t *testing.T) {
	sig := goodSignals()
	sig.TransferRate = 0.60
	tier, flags := Classify(10, sig)

	assert.Equal(t, model.TierHumanOnly, tier)
	assert.Contains(t, flags, "excessive transfers")
}

func TestClassifyLowVolumeRedFlag(t *testing.T) {
	sig := goodSignals()
	sig.MonthlyVolume = 40
	tier, flags := Classify(10, sig)

	assert.Equal(t, model.TierHumanOnly, tier)
	assert.Contains(t, flags, "volume too low")
}

func TestClassifyGateFallthrough(t *testing.T) {
	sig := goodSignals()

	sig.CV = 0.85 // past the AUTOMATE gate, within ASSIST
	tier, _ := Classify(8.0, sig)
	assert.Equal(t, model.TierAssist, tier)

	sig.CV = 1.0 // past ASSIST too
	tier, _ = Classify(8.0, sig)
	assert.Equal(t, model.TierAugment, tier)

	tier, _ = Classify(2.0, sig)
	assert.Equal(t, model.TierHumanOnly, tier)
}

func TestTierMonotonicity(t *testing.T) {
	// For fixed volume and FCR, lowering CV and transfer rate must never
	// yield a less automatable tier.
	base := goodSignals()
	base.CV = 1.0
	base.TransferRate = 0.35

	prevRank := -1
	for _, step := range []struct{ cv, transfer float64 }{
		{1.0, 0.35}, {0.85, 0.25}, {0.70, 0.15}, {0.50, 0.02},
	} {
		sig := base
		sig.CV = step.cv
		sig.TransferRate = step.transfer
		score, _ := Score(sig)
		tier, _ := Classify(score, sig)

		assert.GreaterOrEqual(t, tier.Rank(), prevRank,
			"cv=%v transfer=%v", step.cv, step.transfer)
		prevRank = tier.Rank()
	}
}
