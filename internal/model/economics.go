package model

// TierEconomics is the savings contribution of a single tier to the
// portfolio model.
type TierEconomics struct {
	Tier            Tier    `json:"tier"`
	Queues          int     `json:"queues"`
	MonthlyVolume   float64 `json:"monthly_volume"`
	ContainmentRate float64 `json:"containment_rate"`
	TierCPI         float64 `json:"tier_cpi"`
	AnnualSavings   float64 `json:"annual_savings"`
}

// EconomicModel is the portfolio-level business case built from the tiered
// queues. Monetary values are in the configured currency; PaybackMonths is
// zero when net annual savings are not positive.
type EconomicModel struct {
	CurrentAnnualCost   float64         `json:"current_annual_cost"`
	ProjectedAnnualCost float64         `json:"projected_annual_cost"`
	GrossAnnualSavings  float64         `json:"gross_annual_savings"`
	InitialInvestment   float64         `json:"initial_investment"`
	RecurrentAnnualCost float64         `json:"recurrent_annual_cost"`
	NetAnnualSavings    float64         `json:"net_annual_savings"`
	PaybackMonths       int             `json:"payback_months"`
	ROI3YearPct         float64         `json:"roi_3yr_pct"`
	NPV3Year            float64         `json:"npv_3yr"`
	ByTier              []TierEconomics `json:"by_tier"`
}
