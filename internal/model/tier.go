package model

// Tier is the automation readiness classification assigned to a queue.
type Tier string

const (
	TierAutomate  Tier = "AUTOMATE"
	TierAssist    Tier = "ASSIST"
	TierAugment   Tier = "AUGMENT"
	TierHumanOnly Tier = "HUMAN_ONLY"
)

// Rank orders tiers by automation readiness, highest first. AUTOMATE is 3,
// HUMAN_ONLY (and any unknown value) is 0.
func (t Tier) Rank() int {
	switch t {
	case TierAutomate:
		return 3
	case TierAssist:
		return 2
	case TierAugment:
		return 1
	default:
		return 0
	}
}
