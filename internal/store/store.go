// Package store persists completed analysis runs. The pipeline itself is
// pure and in-memory; the store only records what a run produced so past
// analyses can be listed and re-fetched.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/beyondcx/metrics-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the run-history persistence interface.
type Store interface {
	SaveRun(ctx context.Context, run model.Run, result *model.AnalysisResult) error
	GetRun(ctx context.Context, runID string) (*model.Run, *model.AnalysisResult, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)
	DeleteRun(ctx context.Context, runID string) error

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a store for the configured driver.
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(databaseURL)
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
