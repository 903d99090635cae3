package model

import (
	"time"

	"github.com/google/uuid"
)

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// ChannelVolume is one channel's share of total volume.
type ChannelVolume struct {
	Channel string  `json:"channel"`
	Volume  int     `json:"volume"`
	Pct     float64 `json:"pct"`
}

// VolumetrySummary describes when and where the traffic arrived.
type VolumetrySummary struct {
	TotalRecords   int             `json:"total_records"`
	DateStart      *time.Time      `json:"date_start,omitempty"`
	DateEnd        *time.Time      `json:"date_end,omitempty"`
	MonthsSpanned  int             `json:"months_spanned"`
	Channels       []ChannelVolume `json:"channels"`
	HourlyVolume   [24]int         `json:"hourly_volume"`
	WeekdayVolume  [7]int          `json:"weekday_volume"` // Sunday-first, matching time.Weekday
	PeakVolume     int             `json:"peak_volume"`    // 10:00-19:59
	OffPeakVolume  int             `json:"off_peak_volume"`
	MonthlyVolumes map[string]int  `json:"monthly_volumes,omitempty"` // "2024-01" -> count
	SeasonalityCV  float64         `json:"seasonality_cv"`
	HighlySeasonal bool            `json:"highly_seasonal"`
}

// Diagnostics counts the defensive defaults the normalizer applied. The
// pipeline never fails on dirty rows; these counters are how the dirt
// stays visible.
type Diagnostics struct {
	RowsRead                int                  `json:"rows_read"`
	RowsDropped             int                  `json:"rows_dropped"`
	BadTimestamps           int                  `json:"bad_timestamps"`
	NumericDefaults         int                  `json:"numeric_defaults"`
	BooleanDefaults         int                  `json:"boolean_defaults"`
	StatusCounts            map[RecordStatus]int `json:"status_counts"`
	SkillsBelowMinVolume    int                  `json:"skills_below_min_volume"`
	QueuesBelowMinVolume    int                  `json:"queues_below_min_volume"`
	QueuesInsufficientValid int                  `json:"queues_insufficient_valid"`
}

// AnalysisResult is the complete output of one pipeline run.
type AnalysisResult struct {
	RunID         string              `json:"run_id"`
	SourceFile    string              `json:"source_file,omitempty"`
	GeneratedAt   time.Time           `json:"generated_at"`
	Skills        []SkillMetrics      `json:"skills"`
	Drilldown     []SkillDrilldown    `json:"drilldown"`
	Economics     EconomicModel       `json:"economics"`
	Opportunities []Opportunity       `json:"opportunities"`
	Roadmap       []RoadmapInitiative `json:"roadmap"`
	Volumetry     VolumetrySummary    `json:"volumetry"`
	Diagnostics   Diagnostics         `json:"diagnostics"`
}

// RunStatus is the terminal state of a stored run.
type RunStatus string

const (
	RunComplete RunStatus = "complete"
	RunFailed   RunStatus = "failed"
)

// Run is the persistence wrapper around an analysis result.
type Run struct {
	ID         string    `json:"id"`
	SourceFile string    `json:"source_file"`
	Status     RunStatus `json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
