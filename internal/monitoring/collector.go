// Package monitoring summarizes stored run history for the runs CLI and
// the HTTP API.
package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/beyondcx/metrics-cli/internal/model"
	"github.com/beyondcx/metrics-cli/internal/store"
)

// Snapshot holds a point-in-time view of recent analysis activity.
type Snapshot struct {
	RunsTotal    int     `json:"runs_total"`
	RunsComplete int     `json:"runs_complete"`
	RunsFailed   int     `json:"runs_failed"`
	FailRate     float64 `json:"fail_rate"`

	// Aggregated over the complete runs in the window.
	TotalRecordsAnalyzed int     `json:"total_records_analyzed"`
	TotalGrossSavings    float64 `json:"total_gross_savings"`
	AutomateQueues       int     `json:"automate_queues"`

	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Collector gathers run statistics from the store.
type Collector struct {
	store store.Store
}

func NewCollector(st store.Store) *Collector {
	return &Collector{store: st}
}

// Collect summarizes the runs created within the lookback window.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*Snapshot, error) {
	snap := &Snapshot{
		LookbackHours: lookbackHours,
		CollectedAt:   time.Now().UTC(),
	}
	cutoff := snap.CollectedAt.Add(-time.Duration(lookbackHours) * time.Hour)

	runs, err := c.store.ListRuns(ctx, store.RunFilter{Limit: 10000})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list runs")
	}

	for _, r := range runs {
		if r.CreatedAt.Before(cutoff) {
			continue
		}
		snap.RunsTotal++
		switch r.Status {
		case model.RunComplete:
			snap.RunsComplete++
		case model.RunFailed:
			snap.RunsFailed++
			continue
		}

		_, result, err := c.store.GetRun(ctx, r.ID)
		if err != nil {
			return nil, eris.Wrapf(err, "monitoring: load run %s", r.ID)
		}
		if result == nil {
			continue
		}
		snap.TotalRecordsAnalyzed += result.Volumetry.TotalRecords
		snap.TotalGrossSavings += result.Economics.GrossAnnualSavings
		for _, skill := range result.Drilldown {
			for _, q := range skill.Queues {
				if q.Tier == model.TierAutomate {
					snap.AutomateQueues++
				}
			}
		}
	}

	if snap.RunsTotal > 0 {
		snap.FailRate = float64(snap.RunsFailed) / float64(snap.RunsTotal)
	}
	return snap, nil
}
