// Package model defines the core types shared across the analysis pipeline.
package model

import (
	"strings"
	"time"
)

// RecordStatus classifies an interaction record for statistical purposes.
// Only "valid" records feed the handle-time statistics; the other statuses
// still count toward volume, rates, and cost where documented.
type RecordStatus string

const (
	StatusValid     RecordStatus = "valid"
	StatusNoise     RecordStatus = "noise"
	StatusZombie    RecordStatus = "zombie"
	StatusAbandoned RecordStatus = "abandoned"
)

// ParseRecordStatus maps a raw status label to a RecordStatus. Matching is
// case-insensitive and tolerates the export variants seen in the wild
// ("VALID", "Abandon", "abandoned"). The second return is false when the
// label is unknown or empty.
func ParseRecordStatus(label string) (RecordStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "valid":
		return StatusValid, true
	case "noise":
		return StatusNoise, true
	case "zombie":
		return StatusZombie, true
	case "abandon", "abandoned":
		return StatusAbandoned, true
	default:
		return StatusValid, false
	}
}

// InteractionRecord is one normalized contact event. Records are immutable
// once produced by the normalizer; downstream stages only read them.
type InteractionRecord struct {
	ID               string       `json:"id"`
	StartAt          *time.Time   `json:"start_at,omitempty"` // nil when the source timestamp was unparseable
	Skill            string       `json:"skill"`
	Queue            string       `json:"queue,omitempty"` // original-queue id; empty means unidentified
	Channel          string       `json:"channel"`
	TalkSecs         float64      `json:"talk_secs"`
	HoldSecs         float64      `json:"hold_secs"`
	WrapUpSecs       float64      `json:"wrap_up_secs"`
	AgentID          string       `json:"agent_id"`
	Transferred      bool         `json:"transferred"`
	RepeatedWithin7d bool         `json:"repeated_within_7d"`
	Abandoned        bool         `json:"abandoned"`
	FCRStrict        bool         `json:"fcr_strict"`
	Status           RecordStatus `json:"status"`
}

// HandleTime returns the AHT contribution of the record in seconds
// (talk + hold + wrap-up).
func (r InteractionRecord) HandleTime() float64 {
	return r.TalkSecs + r.HoldSecs + r.WrapUpSecs
}
