package model

// SkillMetrics holds the per-skill aggregate computed by the metrics stage.
// Rates are expressed as percentages in [0,100]; costs in the configured
// currency.
type SkillMetrics struct {
	Skill              string  `json:"skill"`
	Volume             int     `json:"volume"`
	ValidVolume        int     `json:"valid_volume"`
	AHTMean            float64 `json:"aht_mean_secs"`
	AHTStdDev          float64 `json:"aht_stddev_secs"`
	AHTCV              float64 `json:"aht_cv"`
	TransferRate       float64 `json:"transfer_rate_pct"`
	FCRTechnical       float64 `json:"fcr_technical_pct"`
	FCRStrict          float64 `json:"fcr_strict_pct"`
	AbandonmentRate    float64 `json:"abandonment_rate_pct"`
	TotalCost          float64 `json:"total_cost"`
	CostPerInteraction float64 `json:"cost_per_interaction"`
}

// ScoreBreakdown carries the five sub-scores behind a queue score, each on
// the 0-10 scale before weighting.
type ScoreBreakdown struct {
	Predictability float64 `json:"predictability"`
	Resolutivity   float64 `json:"resolutivity"`
	Volume         float64 `json:"volume"`
	DataQuality    float64 `json:"data_quality"`
	Simplicity     float64 `json:"simplicity"`
}

// QueueMetrics is the per-queue aggregate plus its score and tier. A queue
// is identified by the (skill, queue) pair; Queue may be empty when the
// source rows carried no original-queue id, in which case the skill itself
// acts as the queue.
type QueueMetrics struct {
	Skill           string         `json:"skill"`
	Queue           string         `json:"queue,omitempty"`
	Segment         string         `json:"segment,omitempty"`
	Volume          int            `json:"volume"`
	ValidVolume     int            `json:"valid_volume"`
	MonthlyVolume   float64        `json:"monthly_volume"`
	AHTMean         float64        `json:"aht_mean_secs"`
	AHTStdDev       float64        `json:"aht_stddev_secs"`
	AHTCV           float64        `json:"aht_cv"`
	TransferRate    float64        `json:"transfer_rate_pct"`
	FCRTechnical    float64        `json:"fcr_technical_pct"`
	FCRStrict       float64        `json:"fcr_strict_pct"`
	AbandonmentRate float64        `json:"abandonment_rate_pct"`
	Score           float64        `json:"score"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	Tier            Tier           `json:"tier"`
	RedFlags        []string       `json:"red_flags,omitempty"`
}

// SkillDrilldown rolls a skill's queues back up with volume-weighted
// aggregates, for reporting.
type SkillDrilldown struct {
	Skill             string         `json:"skill"`
	Volume            int            `json:"volume"`
	MonthlyVolume     float64        `json:"monthly_volume"`
	AHTMean           float64        `json:"aht_mean_secs"`
	AHTCV             float64        `json:"aht_cv"`
	TransferRate      float64        `json:"transfer_rate_pct"`
	FCRStrict         float64        `json:"fcr_strict_pct"`
	AbandonmentRate   float64        `json:"abandonment_rate_pct"`
	Score             float64        `json:"score"`
	Tier              Tier           `json:"tier"`
	PriorityCandidate bool           `json:"priority_candidate"`
	Queues            []QueueMetrics `json:"queues"`
}
