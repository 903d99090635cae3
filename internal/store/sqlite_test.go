package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondcx/metrics-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string) (model.Run, *model.AnalysisResult) {
	run := model.Run{
		ID:         id,
		SourceFile: "export.csv",
		Status:     model.RunComplete,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	result := &model.AnalysisResult{
		RunID: id,
		Skills: []model.SkillMetrics{
			{Skill: "Ventas", Volume: 120, ValidVolume: 100, AHTMean: 240},
		},
		Economics: model.EconomicModel{GrossAnnualSavings: 50000},
	}
	return run, result
}

func TestSQLiteSaveGetRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, result := sampleRun("run-1")
	require.NoError(t, s.SaveRun(ctx, run, result))

	got, gotResult, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, model.RunComplete, got.Status)
	require.NotNil(t, gotResult)
	assert.Equal(t, result.Skills, gotResult.Skills)
	assert.InDelta(t, 50000, gotResult.Economics.GrossAnnualSavings, 1e-9)
}

func TestSQLiteSaveFailedRunWithoutResult(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run := model.Run{ID: "run-err", SourceFile: "bad.csv", Status: model.RunFailed, Error: "no usable rows"}
	require.NoError(t, s.SaveRun(ctx, run, nil))

	got, result, err := s.GetRun(ctx, "run-err")
	require.NoError(t, err)
	assert.Equal(t, model.RunFailed, got.Status)
	assert.Equal(t, "no usable rows", got.Error)
	assert.Nil(t, result)
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	s := newTestSQLite(t)
	_, _, err := s.GetRun(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSQLiteListRuns(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		run, result := sampleRun(id)
		run.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		if id == "c" {
			run.Status = model.RunFailed
		}
		require.NoError(t, s.SaveRun(ctx, run, result))
	}

	runs, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].ID, "newest first")

	failed, err := s.ListRuns(ctx, RunFilter{Status: model.RunFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "c", failed[0].ID)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteDeleteRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, result := sampleRun("run-del")
	require.NoError(t, s.SaveRun(ctx, run, result))
	require.NoError(t, s.DeleteRun(ctx, "run-del"))

	_, _, err := s.GetRun(ctx, "run-del")
	assert.Error(t, err)

	err = s.DeleteRun(ctx, "run-del")
	assert.Error(t, err, "second delete reports not found")
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	assert.Error(t, err)
}
