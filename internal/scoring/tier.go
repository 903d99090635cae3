package scoring

import "github.com/beyondcx/metrics-cli/internal/model"

// Red-flag thresholds. Any single flag forces HUMAN_ONLY regardless of
// the computed score.
const (
	flagCVAbove            = 1.20
	flagTransferAbove      = 0.50
	flagMonthlyVolumeBelow = 50
	flagValidFractionBelow = 0.30
)

// Tier gates, evaluated in order after the red flags; first match wins.
const (
	automateMinScore    = 7.5
	automateMaxCV       = 0.75
	automateMaxTransfer = 0.20
	automateMinFCR      = 0.50

	assistMinScore    = 5.5
	assistMaxCV       = 0.90
	assistMaxTransfer = 0.30

	augmentMinScore = 3.5
)

// RedFlags returns the disqualifying conditions present in the signals,
// in a fixed order.
func RedFlags(sig QueueSignals) []string {
	var flags []string
	if sig.CV > flagCVAbove {
		flags = append(flags, "extreme variability")
	}
	if sig.TransferRate > flagTransferAbove {
		flags = append(flags, "excessive transfers")
	}
	if sig.MonthlyVolume < flagMonthlyVolumeBelow {
		flags = append(flags, "volume too low")
	}
	if sig.ValidFraction < flagValidFractionBelow {
		flags = append(flags, "poor data quality")
	}
	return flags
}

// Classify assigns the automation tier for a scored queue. The decision
// table is total and order-sensitive: red flags first, then the gates
// from most to least automatable.
func Classify(score float64, sig QueueSignals) (model.Tier, []string) {
	if flags := RedFlags(sig); len(flags) > 0 {
		return model.TierHumanOnly, flags
	}
	switch {
	case score >= automateMinScore && sig.CV <= automateMaxCV &&
		sig.TransferRate <= automateMaxTransfer && sig.FCR >= automateMinFCR:
		return model.TierAutomate, nil
	case score >= assistMinScore && sig.CV <= assistMaxCV && sig.TransferRate <= assistMaxTransfer:
		return model.TierAssist, nil
	case score >= augmentMinScore:
		return model.TierAugment, nil
	default:
		return model.TierHumanOnly, nil
	}
}
