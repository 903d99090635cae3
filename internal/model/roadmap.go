package model

// Opportunity is one ranked automation candidate. Impact is scaled to
// [1,10] across the candidate set; Feasibility is the queue's score.
type Opportunity struct {
	Rank          int     `json:"rank"`
	Label         string  `json:"label"`
	Skill         string  `json:"skill"`
	Queue         string  `json:"queue,omitempty"`
	Tier          Tier    `json:"tier"`
	MonthlyVolume float64 `json:"monthly_volume"`
	AnnualSavings float64 `json:"annual_savings"`
	Impact        float64 `json:"impact"`
	Feasibility   float64 `json:"feasibility"`
}

// Phase identifies a roadmap wave.
type Phase string

const (
	PhaseAutomate Phase = "automate"
	PhaseAssist   Phase = "assist"
	PhaseAugment  Phase = "augment"
)

// RoadmapInitiative groups queues of one tier into a deployable wave with
// its own investment and savings projection.
type RoadmapInitiative struct {
	Phase         Phase    `json:"phase"`
	Name          string   `json:"name"`
	Queues        []string `json:"queues"`
	MonthlyVolume float64  `json:"monthly_volume"`
	AnnualSavings float64  `json:"annual_savings"`
	Investment    float64  `json:"investment"`
	StartMonth    int      `json:"start_month"`
}
